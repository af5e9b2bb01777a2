package main

import (
	"fmt"
	"log"
	"os"

	"salon-dina-backend/config"
	"salon-dina-backend/models"
	"salon-dina-backend/routes"
	"salon-dina-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
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
}

func main() {
	notify := services.NewNotifyService(config.DB)
	notify.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
