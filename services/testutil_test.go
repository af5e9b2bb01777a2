package services

import (
	"testing"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database. A single connection
// keeps the :memory: database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Therapist{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.DailyTreatment{},
		&models.CustomerFeedback{},
		&models.MonthlyBookkeeping{},
		&models.TherapistMonthlyStats{},
	))
	return db
}

func createTherapist(t *testing.T, db *gorm.DB, initial string, baseFee int64, rate float64) models.Therapist {
	t.Helper()
	therapist := models.Therapist{
		Initial:             initial,
		FullName:            "Therapist " + initial,
		Status:              models.TherapistActive,
		BaseFeePerTreatment: baseFee,
		CommissionRate:      rate,
	}
	require.NoError(t, db.Create(&therapist).Error)
	return therapist
}

func createService(t *testing.T, db *gorm.DB, name string, price int64) models.Service {
	t.Helper()
	service := models.Service{
		Name:        name,
		Category:    "Facial",
		NormalPrice: price,
		Duration:    60,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func createCustomer(t *testing.T, db *gorm.DB, name, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Phone: phone}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

// bookAndComplete runs a treatment through booking and completion with the
// given actual price and tip, returning the completed row.
func bookAndComplete(t *testing.T, svc *TreatmentService, therapist models.Therapist, service models.Service, date time.Time, actualPrice, tip int64) *models.DailyTreatment {
	t.Helper()

	booked, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         date,
		CustomerName: "Walk-in",
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
		TipAmount:    tip,
	})
	require.NoError(t, err)

	completed, err := svc.CompleteTreatment(booked.ID, CompleteTreatmentInput{
		EndTime:       date.Add(11 * time.Hour),
		ActualPrice:   actualPrice,
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)
	return completed
}

func daysAgo(n int) time.Time {
	return utils.BeginningOfDay(time.Now()).AddDate(0, 0, -n)
}
