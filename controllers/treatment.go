// controllers/treatment.go
package controllers

import (
	"net/http"
	"time"

	"salon-dina-backend/config"
	"salon-dina-backend/models"
	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateTreatmentInput defines the expected JSON structure for booking a treatment
type CreateTreatmentInput struct {
	Date          string     `json:"date" binding:"required"` // YYYY-MM-DD
	CustomerID    *uuid.UUID `json:"customerId"`
	CustomerName  string     `json:"customerName"`
	ServiceID     uuid.UUID  `json:"serviceId" binding:"required"`
	ServicePrice  *int64     `json:"servicePrice"`
	TherapistID   uuid.UUID  `json:"therapistId" binding:"required"`
	TipAmount     int64      `json:"tipAmount" binding:"min=0"`
	PaymentMethod string     `json:"paymentMethod"`
	StartTime     *string    `json:"startTime"` // HH:MM or RFC3339
	Notes         string     `json:"notes"`
}

// CompleteTreatmentInput defines the expected JSON structure for closing out a treatment
type CompleteTreatmentInput struct {
	EndTime       string  `json:"endTime" binding:"required"` // HH:MM or RFC3339
	ActualPrice   int64   `json:"actualPrice" binding:"min=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,oneof=cash transfer qris"`
	Notes         *string `json:"notes"`
}

// UpdateTreatmentInput defines the expected JSON structure for editing a booking
type UpdateTreatmentInput struct {
	Date          *string `json:"date"`
	CustomerName  *string `json:"customerName"`
	TipAmount     *int64  `json:"tipAmount"`
	PaymentMethod *string `json:"paymentMethod"`
	StartTime     *string `json:"startTime"`
	Notes         *string `json:"notes"`
}

// GetTreatments lists the treatments for one day (?date=YYYY-MM-DD, default today)
func GetTreatments(c *gin.Context) {
	date := time.Now()
	if c.Query("date") != "" {
		parsed, err := parseDate(c.Query("date"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	svc := services.NewTreatmentService(config.DB, nil)
	treatments, err := svc.ListByDate(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"treatments": treatments,
		"summary":    services.AggregateDay(treatments),
	})
}

// GetTreatment retrieves one treatment with its feedback
func GetTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	svc := services.NewTreatmentService(config.DB, nil)
	treatment, err := svc.GetTreatment(treatmentUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, treatment)
}

// CreateTreatment books a new treatment
func CreateTreatment(c *gin.Context) {
	var input CreateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var startTime *time.Time
	if input.StartTime != nil && *input.StartTime != "" {
		parsed, err := parseTimeOfDay(*input.StartTime, date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid startTime format")
			return
		}
		startTime = &parsed
	}

	svc := services.NewTreatmentService(config.DB, nil)
	treatment, err := svc.CreateTreatment(services.CreateTreatmentInput{
		Date:          date,
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		ServiceID:     input.ServiceID,
		ServicePrice:  input.ServicePrice,
		TherapistID:   input.TherapistID,
		TipAmount:     input.TipAmount,
		PaymentMethod: models.PaymentMethod(input.PaymentMethod),
		StartTime:     startTime,
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusCreated, treatment)
}

// CompleteTreatment closes out a booked treatment and moves it to feedback-pending
func CompleteTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var input CompleteTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	endTime, err := parseTimeOfDay(input.EndTime, time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid endTime format")
		return
	}

	svc := services.NewTreatmentService(config.DB, services.NewNotifyService(config.DB))
	treatment, err := svc.CompleteTreatment(treatmentUUID, services.CompleteTreatmentInput{
		EndTime:       endTime,
		ActualPrice:   input.ActualPrice,
		PaymentMethod: models.PaymentMethod(input.PaymentMethod),
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, treatment)
}

// UpdateTreatment edits a booking
func UpdateTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var input UpdateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svcInput := services.UpdateTreatmentInput{
		CustomerName: input.CustomerName,
		TipAmount:    input.TipAmount,
		Notes:        input.Notes,
	}

	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		svcInput.Date = &date
	}
	if input.PaymentMethod != nil {
		method := models.PaymentMethod(*input.PaymentMethod)
		svcInput.PaymentMethod = &method
	}
	if input.StartTime != nil && *input.StartTime != "" {
		day := time.Now()
		if svcInput.Date != nil {
			day = *svcInput.Date
		}
		parsed, err := parseTimeOfDay(*input.StartTime, day)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid startTime format")
			return
		}
		svcInput.StartTime = &parsed
	}

	svc := services.NewTreatmentService(config.DB, nil)
	treatment, err := svc.UpdateTreatment(treatmentUUID, svcInput)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, treatment)
}

// DeleteTreatment removes a treatment and its feedback
func DeleteTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	svc := services.NewTreatmentService(config.DB, nil)
	if err := svc.DeleteTreatment(treatmentUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Treatment deleted successfully"})
}
