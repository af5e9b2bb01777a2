package controllers

import (
	"net/http"
	"time"

	"salon-dina-backend/config"
	"salon-dina-backend/models"
	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
)

// DashboardOverview is the landing page payload: today's ledger fold plus a
// few whole-business counters.
type DashboardOverview struct {
	Today            services.DailySummary `json:"today"`
	TodayFormatted   map[string]string     `json:"todayFormatted"`
	PendingFeedback  int64                 `json:"pendingFeedback"`
	TotalCustomers   int64                 `json:"totalCustomers"`
	ActiveTherapists int64                 `json:"activeTherapists"`
	VipCustomers     int64                 `json:"vipCustomers"`
}

// GetDashboardOverview returns today's summary and quick stats
func GetDashboardOverview(c *gin.Context) {
	svc := services.NewTreatmentService(config.DB, nil)
	treatments, err := svc.ListByDate(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	overview := DashboardOverview{
		Today: services.AggregateDay(treatments),
	}
	overview.TodayFormatted = map[string]string{
		"totalRevenue":       utils.FormatRupiah(overview.Today.TotalRevenue),
		"totalTherapistFees": utils.FormatRupiah(overview.Today.TotalTherapistFees),
		"totalTips":          utils.FormatRupiah(overview.Today.TotalTips),
		"netProfit":          utils.FormatRupiah(overview.Today.NetProfit),
	}

	if err := config.DB.Model(&models.DailyTreatment{}).
		Where("feedback_status = ?", models.FeedbackPending).
		Count(&overview.PendingFeedback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Model(&models.Customer{}).
		Count(&overview.TotalCustomers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Model(&models.Customer{}).
		Where("is_vip = ?", true).
		Count(&overview.VipCustomers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Model(&models.Therapist{}).
		Where("status = ?", models.TherapistActive).
		Count(&overview.ActiveTherapists).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithData(c, http.StatusOK, overview)
}
