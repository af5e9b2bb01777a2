package services

import (
	"errors"
	"sort"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailySummary is a fold over one day's treatments. Fees and tips are
// reported separately: tips pass through to the therapist in full, so they
// appear in TotalPayout but never reduce NetProfit.
type DailySummary struct {
	TotalRevenue       int64 `json:"totalRevenue"`
	TotalTherapistFees int64 `json:"totalTherapistFees"` // base fee + commission, excluding tips
	TotalTips          int64 `json:"totalTips"`
	TotalPayout        int64 `json:"totalPayout"` // fees + tips
	NetProfit          int64 `json:"netProfit"`   // revenue - fees (tips excluded)
	TreatmentCount     int   `json:"treatmentCount"`
}

// AggregateDay folds a day's treatments into revenue and fee totals.
// Revenue counts every row at its charged price (actual price once completed,
// catalog snapshot before). Fees and tips only accrue on completed rows,
// since earnings are computed at completion time.
func AggregateDay(treatments []models.DailyTreatment) DailySummary {
	var s DailySummary
	for _, t := range treatments {
		s.TreatmentCount++
		s.TotalRevenue += chargedPrice(&t)
		if !t.Completed() {
			continue
		}
		s.TotalTips += t.TipAmount
		s.TotalTherapistFees += t.TherapistEarnings - t.TipAmount
	}
	s.TotalPayout = s.TotalTherapistFees + s.TotalTips
	s.NetProfit = s.TotalRevenue - s.TotalTherapistFees
	return s
}

func chargedPrice(t *models.DailyTreatment) int64 {
	if t.Completed() && t.ActualPrice > 0 {
		return t.ActualPrice
	}
	return t.ServicePrice
}

// RecomputeRunningTotals rederives TotalExpense, NetIncome and RunningTotal
// for every row, in date order (stable, so equal dates keep insertion order).
// It mutates and returns rows; persistence is the caller's job. Running it
// twice on the same rows yields identical output.
func RecomputeRunningTotals(rows []models.MonthlyBookkeeping) []models.MonthlyBookkeeping {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	var running int64
	for i := range rows {
		r := &rows[i]
		r.TotalExpense = r.OperationalCost + r.SalaryExpense + r.TherapistFee + r.OtherExpenses
		r.NetIncome = r.DailyRevenue - r.TotalExpense
		running += r.NetIncome
		r.RunningTotal = running
	}
	return rows
}

// LedgerService owns the monthly bookkeeping table. Every write triggers a
// full-table running-total recompute before it returns; a single late-dated
// backfill invalidates every subsequent row, so no incremental patching.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// LedgerEntryInput carries the five hand-entered amounts for one day.
// Derived fields are never accepted from callers.
type LedgerEntryInput struct {
	Date            time.Time `json:"date"`
	DailyRevenue    int64     `json:"dailyRevenue"`
	OperationalCost int64     `json:"operationalCost"`
	SalaryExpense   int64     `json:"salaryExpense"`
	TherapistFee    int64     `json:"therapistFee"`
	OtherExpenses   int64     `json:"otherExpenses"`
}

func (in *LedgerEntryInput) validate() error {
	if in.Date.IsZero() {
		return validationErr("date", "is required")
	}
	if utils.IsFutureDate(in.Date) {
		return validationErr("date", "must not be in the future")
	}
	amounts := []struct {
		field string
		value int64
	}{
		{"dailyRevenue", in.DailyRevenue},
		{"operationalCost", in.OperationalCost},
		{"salaryExpense", in.SalaryExpense},
		{"therapistFee", in.TherapistFee},
		{"otherExpenses", in.OtherExpenses},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return validationErr(a.field, "must not be negative")
		}
	}
	return nil
}

// ListEntries returns the ledger rows for one month, oldest first.
func (s *LedgerService) ListEntries(month time.Month, year int) ([]models.MonthlyBookkeeping, error) {
	start, end := utils.MonthRange(month, year)

	var rows []models.MonthlyBookkeeping
	err := s.db.Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// CreateEntry validates and inserts one ledger row, then recomputes the
// whole table's running totals inside the same transaction.
func (s *LedgerService) CreateEntry(input LedgerEntryInput) (*models.MonthlyBookkeeping, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	day := utils.BeginningOfDay(input.Date)

	// One entry per calendar day.
	var count int64
	if err := s.db.Model(&models.MonthlyBookkeeping{}).
		Where("date = ?", day).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEntry
	}

	row := models.MonthlyBookkeeping{
		Date:            day,
		DailyRevenue:    input.DailyRevenue,
		OperationalCost: input.OperationalCost,
		SalaryExpense:   input.SalaryExpense,
		TherapistFee:    input.TherapistFee,
		OtherExpenses:   input.OtherExpenses,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return translateDBError(err, ErrDuplicateEntry)
		}
		return recomputeAndPersist(tx)
	})
	if err != nil {
		return nil, err
	}

	// Reload so the caller sees the recomputed derived fields.
	if err := s.db.First(&row, "id = ?", row.ID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateEntry edits the hand-entered amounts (and optionally the date) of an
// existing row and recomputes running totals. Moving a row onto a day that
// already has a different entry is rejected.
func (s *LedgerService) UpdateEntry(id uuid.UUID, input LedgerEntryInput) (*models.MonthlyBookkeeping, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var row models.MonthlyBookkeeping
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	day := utils.BeginningOfDay(input.Date)
	if !utils.SameDay(day, row.Date) {
		var count int64
		if err := s.db.Model(&models.MonthlyBookkeeping{}).
			Where("date = ? AND id <> ?", day, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateEntry
		}
	}

	row.Date = day
	row.DailyRevenue = input.DailyRevenue
	row.OperationalCost = input.OperationalCost
	row.SalaryExpense = input.SalaryExpense
	row.TherapistFee = input.TherapistFee
	row.OtherExpenses = input.OtherExpenses

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return translateDBError(err, ErrDuplicateEntry)
		}
		return recomputeAndPersist(tx)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&row, "id = ?", row.ID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteEntry removes a row and recomputes every remaining running total.
// The delete is hard: a soft-deleted tombstone would keep the day occupied in
// the unique date index and block re-entering that day forever.
func (s *LedgerService) DeleteEntry(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().Delete(&models.MonthlyBookkeeping{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return recomputeAndPersist(tx)
	})
}

// Recompute re-runs the full running-total pass outside of any entry write,
// e.g. after seeding historical rows.
func (s *LedgerService) Recompute() error {
	return s.db.Transaction(recomputeAndPersist)
}

func recomputeAndPersist(tx *gorm.DB) error {
	var rows []models.MonthlyBookkeeping
	if err := tx.Order("date ASC").Find(&rows).Error; err != nil {
		return err
	}

	rows = RecomputeRunningTotals(rows)

	for i := range rows {
		err := tx.Model(&models.MonthlyBookkeeping{}).
			Where("id = ?", rows[i].ID).
			Updates(map[string]interface{}{
				"total_expense": rows[i].TotalExpense,
				"net_income":    rows[i].NetIncome,
				"running_total": rows[i].RunningTotal,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
