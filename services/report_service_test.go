package services

import (
	"strings"
	"testing"
	"time"

	"salon-dina-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDaily(t *testing.T) {
	db := newTestDB(t)
	treatments := NewTreatmentService(db, nil)
	reports := NewReportService(db)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Body Scrub & Spa", 200000)

	bookAndComplete(t, treatments, therapist, service, daysAgo(1), 200000, 10000)
	bookAndComplete(t, treatments, therapist, service, daysAgo(2), 200000, 0)

	summary, err := reports.Summarize("daily", daysAgo(1))
	require.NoError(t, err)

	assert.Equal(t, int64(200000), summary.Revenue)
	assert.Equal(t, 1, summary.Treatments)
	// Fees are base + commission; the payout adds the tip.
	assert.Equal(t, int64(35000), summary.TherapistFees)
	assert.Equal(t, int64(45000), summary.TherapistPayout)
}

func TestSummarizeExcludesIncompleteTreatments(t *testing.T) {
	db := newTestDB(t)
	treatments := NewTreatmentService(db, nil)
	reports := NewReportService(db)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Hair Spa", 125000)

	bookAndComplete(t, treatments, therapist, service, daysAgo(1), 125000, 0)
	_, err := treatments.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(1),
		CustomerName: "Walk-in",
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
	})
	require.NoError(t, err)

	summary, err := reports.Summarize("daily", daysAgo(1))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Treatments)
	assert.Equal(t, int64(125000), summary.Revenue)
}

func TestSummarizeInvalidPeriod(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)

	_, err := reports.Summarize("quarterly", time.Now())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestMonthlyReportRows(t *testing.T) {
	db := newTestDB(t)
	treatments := NewTreatmentService(db, nil)
	reports := NewReportService(db)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Facial Brightening", 150000)
	free := createService(t, db, "Loyalty Reward", 0)

	day := daysAgo(1)
	bookAndComplete(t, treatments, therapist, service, day, 150000, 0)
	bookAndComplete(t, treatments, therapist, free, day, 0, 0)

	rows, err := reports.MonthlyReportRows(day.Year())
	require.NoError(t, err)
	require.Len(t, rows, 12)

	row := rows[int(day.Month())-1]
	assert.Equal(t, int(day.Month()), row.Month)
	assert.Equal(t, day.Year(), row.Year)
	assert.Equal(t, int64(150000), row.TotalRevenue)
	assert.Equal(t, 2, row.TotalTreatments)
	assert.Equal(t, 1, row.FreeTreatments)
}

func TestBuildMonthlyReportCSV(t *testing.T) {
	rows := []MonthlyReportRow{
		{ID: 1, Month: 1, Year: 2026, TotalRevenue: 4500000, TotalTherapistFees: 900000, TotalTreatments: 30, FreeTreatments: 2},
		{ID: 2, Month: 2, Year: 2026},
	}

	csv := BuildMonthlyReportCSV(rows)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "id,month,year,totalRevenue,totalTherapistFees,totalTreatments,freeTreatments", lines[0])
	assert.Equal(t, "1,1,2026,4500000,900000,30,2", lines[1])
	assert.Equal(t, "2,2,2026,0,0,0,0", lines[2])
}

func TestRecomputeMonthlyStats(t *testing.T) {
	db := newTestDB(t)
	treatments := NewTreatmentService(db, nil)
	stats := NewStatsService(db)

	therapist := createTherapist(t, db, "SR", 12500, 0.12)
	service := createService(t, db, "Manicure Pedicure", 120000)

	day := daysAgo(1)
	completed := bookAndComplete(t, treatments, therapist, service, day, 120000, 5000)
	_, err := treatments.SubmitFeedback(SubmitFeedbackInput{
		DailyTreatmentID: completed.ID,
		OverallRating:    4,
	})
	require.NoError(t, err)

	require.NoError(t, stats.RecomputeMonthlyStats(day.Month(), day.Year()))
	// Rerun to prove the upsert does not duplicate rows.
	require.NoError(t, stats.RecomputeMonthlyStats(day.Month(), day.Year()))

	var rows []models.TherapistMonthlyStats
	require.NoError(t, db.Where("therapist_id = ?", therapist.ID).Find(&rows).Error)
	require.Len(t, rows, 1)

	// 12.500 base + 12% of 120.000 = 26.900 fee, tip on top.
	assert.Equal(t, 1, rows[0].TreatmentCount)
	assert.Equal(t, int64(120000), rows[0].TotalRevenue)
	assert.Equal(t, int64(26900), rows[0].TotalFees)
	assert.Equal(t, int64(5000), rows[0].TotalTips)
	assert.InDelta(t, 4.0, rows[0].AverageRating, 0.001)
}
