// controllers/therapist.go
package controllers

import (
	"errors"
	"net/http"

	"salon-dina-backend/config"
	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTherapistInput defines the expected JSON structure for creating a therapist.
// CommissionRate is always a fraction (0.12 = 12%); percentage-to-fraction
// conversion is the form's job, never the API's.
type CreateTherapistInput struct {
	Initial             string  `json:"initial" binding:"required,min=1,max=3"`
	FullName            string  `json:"fullName" binding:"required"`
	Phone               string  `json:"phone"`
	BaseFeePerTreatment int64   `json:"baseFeePerTreatment" binding:"min=0"`
	CommissionRate      float64 `json:"commissionRate" binding:"min=0,max=1"`
	Status              *string `json:"status"`
}

// UpdateTherapistInput defines the expected JSON structure for updating a therapist
type UpdateTherapistInput struct {
	Initial             *string  `json:"initial"`
	FullName            *string  `json:"fullName"`
	Phone               *string  `json:"phone"`
	BaseFeePerTreatment *int64   `json:"baseFeePerTreatment"`
	CommissionRate      *float64 `json:"commissionRate"`
	Status              *string  `json:"status"`
}

// CreateTherapist creates a new therapist
func CreateTherapist(c *gin.Context) {
	var input CreateTherapistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := models.TherapistActive
	if input.Status != nil {
		status = models.TherapistStatus(*input.Status)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status: must be active, inactive or on_leave")
			return
		}
	}

	// Initial is the natural key
	var existing models.Therapist
	if err := config.DB.Where("initial = ?", input.Initial).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Therapist with this initial already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	therapist := models.Therapist{
		Initial:             input.Initial,
		FullName:            input.FullName,
		Phone:               input.Phone,
		Status:              status,
		BaseFeePerTreatment: input.BaseFeePerTreatment,
		CommissionRate:      input.CommissionRate,
	}

	if err := config.DB.Create(&therapist).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create therapist")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, therapist)
}

// GetTherapists retrieves all therapists
func GetTherapists(c *gin.Context) {
	var therapists []models.Therapist
	query := config.DB.Order("initial ASC")
	if c.Query("status") != "" {
		status := models.TherapistStatus(c.Query("status"))
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&therapists).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve therapists")
		return
	}

	utils.RespondWithData(c, http.StatusOK, therapists)
}

// GetTherapist retrieves a specific therapist by ID
func GetTherapist(c *gin.Context) {
	therapistUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid therapist ID format")
		return
	}

	var therapist models.Therapist
	if err := config.DB.Where("id = ?", therapistUUID).First(&therapist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Therapist not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, therapist)
}

// UpdateTherapist updates an existing therapist
func UpdateTherapist(c *gin.Context) {
	therapistUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid therapist ID format")
		return
	}

	var input UpdateTherapistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var therapist models.Therapist
	if err := config.DB.Where("id = ?", therapistUUID).First(&therapist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Therapist not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Initial != nil {
		if len(*input.Initial) < 1 || len(*input.Initial) > 3 {
			utils.RespondWithError(c, http.StatusBadRequest, "Initial must be 1-3 characters")
			return
		}
		if therapist.Initial != *input.Initial {
			var existing models.Therapist
			if err := config.DB.Where("initial = ?", *input.Initial).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another therapist with this initial already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		therapist.Initial = *input.Initial
	}
	if input.FullName != nil {
		therapist.FullName = *input.FullName
	}
	if input.Phone != nil {
		therapist.Phone = *input.Phone
	}
	if input.BaseFeePerTreatment != nil {
		if *input.BaseFeePerTreatment < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Base fee must not be negative")
			return
		}
		therapist.BaseFeePerTreatment = *input.BaseFeePerTreatment
	}
	if input.CommissionRate != nil {
		if *input.CommissionRate < 0 || *input.CommissionRate > 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Commission rate must be a fraction between 0 and 1")
			return
		}
		therapist.CommissionRate = *input.CommissionRate
	}
	if input.Status != nil {
		status := models.TherapistStatus(*input.Status)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status: must be active, inactive or on_leave")
			return
		}
		therapist.Status = status
	}

	if err := config.DB.Save(&therapist).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update therapist")
		return
	}

	utils.RespondWithData(c, http.StatusOK, therapist)
}

// DeleteTherapist permanently deletes a therapist. Hard delete keeps the
// unique initial free for reuse; past treatments keep their name snapshot.
// Therapists who merely leave should be set to inactive instead.
func DeleteTherapist(c *gin.Context) {
	therapistUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid therapist ID format")
		return
	}

	result := config.DB.Unscoped().Where("id = ?", therapistUUID).Delete(&models.Therapist{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete therapist")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Therapist not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Therapist deleted successfully"})
}
