// controllers/feedback.go
package controllers

import (
	"net/http"

	"salon-dina-backend/config"
	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateFeedbackInput defines the expected JSON structure for the survey.
// Ratings outside 1-5 are clamped, not rejected.
type CreateFeedbackInput struct {
	DailyTreatmentID uuid.UUID `json:"dailyTreatmentId" binding:"required"`
	OverallRating    int       `json:"overallRating" binding:"required"`
	ServiceQuality   int       `json:"serviceQuality" binding:"required"`
	TherapistService int       `json:"therapistService" binding:"required"`
	Cleanliness      int       `json:"cleanliness" binding:"required"`
	ValueForMoney    int       `json:"valueForMoney" binding:"required"`
	Comment          string    `json:"comment"`
	WouldRecommend   *bool     `json:"wouldRecommend" binding:"required"`
}

// CheckFeedbackInput is the list view's batch query
type CheckFeedbackInput struct {
	TreatmentIDs []uuid.UUID `json:"treatmentIds" binding:"required,min=1"`
}

// CreateFeedback records the post-treatment survey, at most once per treatment
func CreateFeedback(c *gin.Context) {
	var input CreateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewTreatmentService(config.DB, nil)
	feedback, err := svc.SubmitFeedback(services.SubmitFeedbackInput{
		DailyTreatmentID: input.DailyTreatmentID,
		OverallRating:    input.OverallRating,
		ServiceQuality:   input.ServiceQuality,
		TherapistService: input.TherapistService,
		Cleanliness:      input.Cleanliness,
		ValueForMoney:    input.ValueForMoney,
		Comment:          input.Comment,
		WouldRecommend:   *input.WouldRecommend,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusCreated, feedback)
}

// CheckFeedback answers which treatments already have feedback
func CheckFeedback(c *gin.Context) {
	var input CheckFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewTreatmentService(config.DB, nil)
	result, err := svc.CheckFeedback(input.TreatmentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, result)
}

// SkipFeedback dismisses the feedback prompt for a completed treatment
func SkipFeedback(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	svc := services.NewTreatmentService(config.DB, nil)
	if err := svc.SkipFeedback(treatmentUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Feedback skipped"})
}
