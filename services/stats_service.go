package services

import (
	"errors"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer aggregates are denormalized for list views; instead of patching
// them incrementally on every write they are rederived with one query, always
// inside the transaction that touched the treatments.
const (
	vipVisitThreshold    = 20
	vipSpendingThreshold = 5_000_000
	loyaltyCycleVisits   = 10 // every 10th visit earns a free treatment
)

// RecomputeCustomerAggregates rederives TotalVisits, TotalSpending,
// LoyaltyVisits, IsVip and LastVisit from the customer's treatments.
func RecomputeCustomerAggregates(tx *gorm.DB, customerID uuid.UUID) error {
	var agg struct {
		Visits   int64
		Spending int64
	}
	err := tx.Model(&models.DailyTreatment{}).
		Select("COUNT(*) AS visits, " +
			"COALESCE(SUM(CASE WHEN end_time IS NOT NULL AND actual_price > 0 THEN actual_price ELSE service_price END), 0) AS spending").
		Where("customer_id = ?", customerID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	// MAX(date) comes back untyped on the sqlite driver, so the last visit is
	// read from the newest row instead of an aggregate column.
	var lastVisit *time.Time
	var latest models.DailyTreatment
	err = tx.Select("date").
		Where("customer_id = ?", customerID).
		Order("date DESC").
		First(&latest).Error
	switch {
	case err == nil:
		lastVisit = &latest.Date
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return tx.Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"total_visits":   agg.Visits,
			"total_spending": agg.Spending,
			"loyalty_visits": agg.Visits % loyaltyCycleVisits,
			"is_vip":         agg.Visits >= vipVisitThreshold || agg.Spending >= vipSpendingThreshold,
			"last_visit":     lastVisit,
		}).Error
}

// RecomputeTherapistTotals rederives lifetime TotalTreatments and
// TotalEarnings from completed treatments.
func RecomputeTherapistTotals(tx *gorm.DB, therapistID uuid.UUID) error {
	var agg struct {
		Cnt      int64
		Earnings int64
	}
	err := tx.Model(&models.DailyTreatment{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(therapist_earnings), 0) AS earnings").
		Where("therapist_id = ? AND end_time IS NOT NULL", therapistID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Therapist{}).
		Where("id = ?", therapistID).
		Updates(map[string]interface{}{
			"total_treatments": agg.Cnt,
			"total_earnings":   agg.Earnings,
		}).Error
}

// RefreshTherapistAverageRating recomputes the therapist's average overall
// rating across all collected feedback. Left NULL until the first rating.
func RefreshTherapistAverageRating(tx *gorm.DB, therapistID uuid.UUID) error {
	var agg struct {
		Cnt int64
		Avg float64
	}
	err := tx.Table("customer_feedbacks").
		Select("COUNT(*) AS cnt, COALESCE(AVG(customer_feedbacks.overall_rating), 0) AS avg").
		Joins("JOIN daily_treatments ON daily_treatments.id = customer_feedbacks.daily_treatment_id").
		Where("daily_treatments.therapist_id = ? AND customer_feedbacks.deleted_at IS NULL", therapistID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	if agg.Cnt == 0 {
		return tx.Model(&models.Therapist{}).
			Where("id = ?", therapistID).
			Update("average_rating", nil).Error
	}
	return tx.Model(&models.Therapist{}).
		Where("id = ?", therapistID).
		Update("average_rating", agg.Avg).Error
}

// StatsService maintains the derived per-month therapist aggregates.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// RecomputeMonthlyStats rebuilds TherapistMonthlyStats for one month from
// completed treatments and their feedback. Upserts by (therapist, month,
// year), so reruns are safe.
func (s *StatsService) RecomputeMonthlyStats(month time.Month, year int) error {
	start, end := utils.MonthRange(month, year)

	var rows []struct {
		TherapistID uuid.UUID
		Cnt         int
		Revenue     int64
		Fees        int64
		Tips        int64
	}
	err := s.db.Model(&models.DailyTreatment{}).
		Select("therapist_id, COUNT(*) AS cnt, "+
			"COALESCE(SUM(CASE WHEN actual_price > 0 THEN actual_price ELSE service_price END), 0) AS revenue, "+
			"COALESCE(SUM(therapist_earnings - tip_amount), 0) AS fees, "+
			"COALESCE(SUM(tip_amount), 0) AS tips").
		Where("end_time IS NOT NULL AND date >= ? AND date < ?", start, end).
		Group("therapist_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			var avg float64
			err := tx.Table("customer_feedbacks").
				Select("COALESCE(AVG(customer_feedbacks.overall_rating), 0)").
				Joins("JOIN daily_treatments ON daily_treatments.id = customer_feedbacks.daily_treatment_id").
				Where("daily_treatments.therapist_id = ? AND daily_treatments.date >= ? AND daily_treatments.date < ?",
					r.TherapistID, start, end).
				Where("customer_feedbacks.deleted_at IS NULL").
				Scan(&avg).Error
			if err != nil {
				return err
			}

			var stats models.TherapistMonthlyStats
			err = tx.Where(models.TherapistMonthlyStats{
				TherapistID: r.TherapistID,
				Month:       int(month),
				Year:        year,
			}).Assign(models.TherapistMonthlyStats{
				TreatmentCount: r.Cnt,
				TotalRevenue:   r.Revenue,
				TotalFees:      r.Fees,
				TotalTips:      r.Tips,
				AverageRating:  avg,
			}).FirstOrCreate(&stats).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
