// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a catalog entry
type CreateServiceInput struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	NormalPrice  int64  `json:"normalPrice" binding:"required,min=0"`
	PromoPrice   *int64 `json:"promoPrice"`
	Duration     int    `json:"duration" binding:"min=0"` // in minutes
	TherapistFee *int64 `json:"therapistFee"`
	Popularity   int    `json:"popularity" binding:"min=0,max=10"`
}

// UpdateServiceInput defines the expected JSON structure for updating a catalog entry
type UpdateServiceInput struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	NormalPrice  *int64  `json:"normalPrice"`
	PromoPrice   *int64  `json:"promoPrice"`
	Duration     *int    `json:"duration"`
	TherapistFee *int64  `json:"therapistFee"`
	Popularity   *int    `json:"popularity"`
	IsActive     *bool   `json:"isActive"`
}

// CreateService creates a new treatment catalog entry
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.PromoPrice != nil && *input.PromoPrice < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Promo price must not be negative")
		return
	}

	service := models.Service{
		Name:         input.Name,
		Category:     input.Category,
		NormalPrice:  input.NormalPrice,
		PromoPrice:   input.PromoPrice,
		Duration:     input.Duration,
		TherapistFee: input.TherapistFee,
		Popularity:   input.Popularity,
		IsActive:     true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, service)
}

// GetServices retrieves the treatment catalog
func GetServices(c *gin.Context) {
	var services []models.Service
	query := config.DB.Order("category ASC, name ASC")
	if c.Query("category") != "" {
		query = query.Where("category = ?", c.Query("category"))
	}
	if err := query.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	utils.RespondWithData(c, http.StatusOK, services)
}

// GetService retrieves a specific catalog entry by ID
func GetService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ?", serviceUUID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, service)
}

// UpdateService updates an existing catalog entry
func UpdateService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ?", serviceUUID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.NormalPrice != nil {
		if *input.NormalPrice < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Normal price must not be negative")
			return
		}
		service.NormalPrice = *input.NormalPrice
	}
	if input.PromoPrice != nil {
		if *input.PromoPrice < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Promo price must not be negative")
			return
		}
		service.PromoPrice = input.PromoPrice
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.TherapistFee != nil {
		service.TherapistFee = input.TherapistFee
	}
	if input.Popularity != nil {
		if *input.Popularity < 0 || *input.Popularity > 10 {
			utils.RespondWithError(c, http.StatusBadRequest, "Popularity must be between 0 and 10")
			return
		}
		service.Popularity = *input.Popularity
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	utils.RespondWithData(c, http.StatusOK, service)
}

// DeleteService soft deletes a catalog entry
func DeleteService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("id = ?", serviceUUID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// GetCategories retrieves the service categories
func GetCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := config.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	utils.RespondWithData(c, http.StatusOK, categories)
}

// CreateCategory creates a service category
func CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.ServiceCategory
	if err := config.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Category already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.ServiceCategory{Name: input.Name}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, category)
}
