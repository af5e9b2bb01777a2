package services

import (
	"strconv"
	"strings"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"gorm.io/gorm"
)

// ReportService answers the period report and export queries. Everything is
// rederived from completed treatments; nothing here writes.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// PeriodSummary aggregates completed treatments for one reporting window.
// TherapistFees excludes tips, TherapistPayout includes them; the UI picks
// whichever total it wants to show.
type PeriodSummary struct {
	Revenue         int64 `json:"revenue"`
	Treatments      int   `json:"treatments"`
	Customers       int   `json:"customers"`
	TherapistFees   int64 `json:"therapistFees"`
	TherapistPayout int64 `json:"therapistPayout"`
}

// Summarize computes the report for period "daily", "weekly", "monthly" or
// "yearly", anchored at date. Weeks start on Monday.
func (s *ReportService) Summarize(period string, date time.Time) (PeriodSummary, error) {
	var start, end time.Time
	day := utils.BeginningOfDay(date)

	switch period {
	case "daily":
		start, end = day, day.AddDate(0, 0, 1)
	case "weekly":
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case "monthly":
		start, end = utils.MonthRange(date.Month(), date.Year())
	case "yearly":
		start, end = utils.YearRange(date.Year())
	default:
		return PeriodSummary{}, validationErr("period", "must be daily, weekly, monthly or yearly")
	}

	var agg struct {
		Revenue   int64
		Cnt       int
		Customers int
		Fees      int64
		Payout    int64
	}
	err := s.db.Model(&models.DailyTreatment{}).
		Select("COALESCE(SUM(CASE WHEN actual_price > 0 THEN actual_price ELSE service_price END), 0) AS revenue, "+
			"COUNT(*) AS cnt, "+
			"COUNT(DISTINCT customer_name) AS customers, "+
			"COALESCE(SUM(therapist_earnings - tip_amount), 0) AS fees, "+
			"COALESCE(SUM(therapist_earnings), 0) AS payout").
		Where("end_time IS NOT NULL AND date >= ? AND date < ?", start, end).
		Scan(&agg).Error
	if err != nil {
		return PeriodSummary{}, err
	}

	return PeriodSummary{
		Revenue:         agg.Revenue,
		Treatments:      agg.Cnt,
		Customers:       agg.Customers,
		TherapistFees:   agg.Fees,
		TherapistPayout: agg.Payout,
	}, nil
}

// MonthlyReportRow is one line of the yearly export.
type MonthlyReportRow struct {
	ID                 int   `json:"id"`
	Month              int   `json:"month"`
	Year               int   `json:"year"`
	TotalRevenue       int64 `json:"totalRevenue"`
	TotalTherapistFees int64 `json:"totalTherapistFees"`
	TotalTreatments    int   `json:"totalTreatments"`
	FreeTreatments     int   `json:"freeTreatments"`
}

// MonthlyReportRows builds the twelve per-month rows for one year from
// completed treatments. Free treatments are those charged at zero (loyalty
// rewards).
func (s *ReportService) MonthlyReportRows(year int) ([]MonthlyReportRow, error) {
	rows := make([]MonthlyReportRow, 0, 12)
	for m := time.January; m <= time.December; m++ {
		start, end := utils.MonthRange(m, year)

		var agg struct {
			Revenue int64
			Fees    int64
			Cnt     int
			Free    int
		}
		err := s.db.Model(&models.DailyTreatment{}).
			Select("COALESCE(SUM(CASE WHEN actual_price > 0 THEN actual_price ELSE service_price END), 0) AS revenue, "+
				"COALESCE(SUM(therapist_earnings - tip_amount), 0) AS fees, "+
				"COUNT(*) AS cnt, "+
				"COALESCE(SUM(CASE WHEN actual_price = 0 AND service_price = 0 THEN 1 ELSE 0 END), 0) AS free").
			Where("end_time IS NOT NULL AND date >= ? AND date < ?", start, end).
			Scan(&agg).Error
		if err != nil {
			return nil, err
		}

		rows = append(rows, MonthlyReportRow{
			ID:                 int(m),
			Month:              int(m),
			Year:               year,
			TotalRevenue:       agg.Revenue,
			TotalTherapistFees: agg.Fees,
			TotalTreatments:    agg.Cnt,
			FreeTreatments:     agg.Free,
		})
	}
	return rows, nil
}

// BuildMonthlyReportCSV renders the export. Plain comma joins, no quoting:
// every field is numeric.
func BuildMonthlyReportCSV(rows []MonthlyReportRow) string {
	var b strings.Builder
	b.WriteString("id,month,year,totalRevenue,totalTherapistFees,totalTreatments,freeTreatments\n")
	for _, r := range rows {
		fields := []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			strconv.FormatInt(r.TotalRevenue, 10),
			strconv.FormatInt(r.TotalTherapistFees, 10),
			strconv.Itoa(r.TotalTreatments),
			strconv.Itoa(r.FreeTreatments),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return b.String()
}
