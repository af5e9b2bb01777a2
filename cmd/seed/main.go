package main

import (
	"log"

	"salon-dina-backend/config"
	"salon-dina-backend/models"
	"salon-dina-backend/seed"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	log.Println("Running AutoMigrate...")
	err := config.DB.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Therapist{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.DailyTreatment{},
		&models.CustomerFeedback{},
		&models.MonthlyBookkeeping{},
		&models.TherapistMonthlyStats{},
		&models.FeedbackPromptLog{},
	)
	if err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := seed.Run(config.DB); err != nil {
		log.Fatal("Seeding failed:", err)
	}
	log.Println("Seeding completed")
}
