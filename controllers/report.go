// controllers/report.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"salon-dina-backend/config"
	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetReport aggregates completed treatments for one period
// (?period=daily|weekly|monthly|yearly&date=YYYY-MM-DD)
func GetReport(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")

	date := time.Now()
	if c.Query("date") != "" {
		parsed, err := parseDate(c.Query("date"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	svc := services.NewReportService(config.DB)
	summary, err := svc.Summarize(period, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, summary)
}

// ExportMonthlyReport streams the yearly report as CSV (?year=YYYY)
func ExportMonthlyReport(c *gin.Context) {
	year := time.Now().Year()
	if c.Query("year") != "" {
		y, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}

	svc := services.NewReportService(config.DB)
	rows, err := svc.MonthlyReportRows(year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	csv := services.BuildMonthlyReportCSV(rows)

	c.Header("Content-Disposition", "attachment; filename=laporan-bulanan-"+strconv.Itoa(year)+".csv")
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

// GetTherapistMonthlyStats lists per-therapist aggregates for one month
// (?month=1-12&year=YYYY, default current month)
func GetTherapistMonthlyStats(c *gin.Context) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if c.Query("month") != "" {
		m, err := strconv.Atoi(c.Query("month"))
		if err != nil || m < 1 || m > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
			return
		}
		month = m
	}
	if c.Query("year") != "" {
		y, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}

	// Refresh before reading so the admin page never shows stale numbers.
	statsSvc := services.NewStatsService(config.DB)
	if err := statsSvc.RecomputeMonthlyStats(time.Month(month), year); err != nil {
		respondServiceError(c, err)
		return
	}

	var stats []struct {
		TherapistID    string  `json:"therapistId"`
		Initial        string  `json:"initial"`
		FullName       string  `json:"fullName"`
		TreatmentCount int     `json:"treatmentCount"`
		TotalRevenue   int64   `json:"totalRevenue"`
		TotalFees      int64   `json:"totalFees"`
		TotalTips      int64   `json:"totalTips"`
		AverageRating  float64 `json:"averageRating"`
	}
	err := config.DB.Table("therapist_monthly_stats").
		Select("therapist_monthly_stats.therapist_id, therapists.initial, therapists.full_name, "+
			"therapist_monthly_stats.treatment_count, therapist_monthly_stats.total_revenue, "+
			"therapist_monthly_stats.total_fees, therapist_monthly_stats.total_tips, "+
			"therapist_monthly_stats.average_rating").
		Joins("JOIN therapists ON therapists.id = therapist_monthly_stats.therapist_id").
		Where("therapist_monthly_stats.month = ? AND therapist_monthly_stats.year = ?", month, year).
		Where("therapist_monthly_stats.deleted_at IS NULL").
		Order("therapist_monthly_stats.total_fees DESC").
		Scan(&stats).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}

	utils.RespondWithData(c, http.StatusOK, stats)
}
