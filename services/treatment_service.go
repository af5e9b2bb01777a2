package services

import (
	"errors"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackNotifier delivers the post-completion feedback prompt. Sending is
// best effort: a failed prompt never rolls back a completion, the treatment
// just stays in the pending state and the daily sweep retries it.
type FeedbackNotifier interface {
	SendFeedbackPrompt(treatment models.DailyTreatment)
}

// TreatmentService owns the daily treatment lifecycle:
// booked -> completed -> feedback pending -> collected | skipped.
type TreatmentService struct {
	db       *gorm.DB
	notifier FeedbackNotifier
}

func NewTreatmentService(db *gorm.DB, notifier FeedbackNotifier) *TreatmentService {
	return &TreatmentService{db: db, notifier: notifier}
}

type CreateTreatmentInput struct {
	Date          time.Time
	CustomerID    *uuid.UUID
	CustomerName  string
	ServiceID     uuid.UUID
	ServicePrice  *int64 // overrides the catalog effective price when set
	TherapistID   uuid.UUID
	TipAmount     int64
	PaymentMethod models.PaymentMethod
	StartTime     *time.Time
	Notes         string
}

// CreateTreatment books a treatment, snapshotting the service name/price and
// therapist name so later catalog edits never rewrite history.
func (s *TreatmentService) CreateTreatment(input CreateTreatmentInput) (*models.DailyTreatment, error) {
	if input.Date.IsZero() {
		return nil, validationErr("date", "is required")
	}
	if input.TipAmount < 0 {
		return nil, validationErr("tipAmount", "must not be negative")
	}
	if input.ServicePrice != nil && *input.ServicePrice < 0 {
		return nil, validationErr("servicePrice", "must not be negative")
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.Valid() {
		return nil, validationErr("paymentMethod", "must be cash, transfer or qris")
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var therapist models.Therapist
	if err := s.db.First(&therapist, "id = ?", input.TherapistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if therapist.Status != models.TherapistActive {
		return nil, validationErr("therapistId", "therapist is not active")
	}

	customerName := input.CustomerName
	if input.CustomerID != nil {
		var customer models.Customer
		if err := s.db.First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if customerName == "" {
			customerName = customer.Name
		}
	}
	if customerName == "" {
		return nil, validationErr("customerName", "is required")
	}

	price := service.EffectivePrice()
	if input.ServicePrice != nil {
		price = *input.ServicePrice
	}

	treatment := models.DailyTreatment{
		Date:           utils.BeginningOfDay(input.Date),
		CustomerID:     input.CustomerID,
		CustomerName:   customerName,
		ServiceID:      service.ID,
		ServiceName:    service.Name,
		ServicePrice:   price,
		TherapistID:    therapist.ID,
		TherapistName:  therapist.FullName,
		TipAmount:      input.TipAmount,
		PaymentMethod:  input.PaymentMethod,
		StartTime:      input.StartTime,
		Notes:          input.Notes,
		FeedbackStatus: models.FeedbackNone,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&treatment).Error; err != nil {
			return err
		}
		if treatment.CustomerID != nil {
			return RecomputeCustomerAggregates(tx, *treatment.CustomerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &treatment, nil
}

type CompleteTreatmentInput struct {
	EndTime       time.Time
	ActualPrice   int64
	PaymentMethod models.PaymentMethod
	Notes         *string
}

// CompleteTreatment closes out a booked treatment: finalizes the price and
// payment method, computes the therapist's earnings from the actual price,
// and moves the feedback state to pending. The customer gets the feedback
// prompt after the write commits; prompt failures do not undo anything.
func (s *TreatmentService) CompleteTreatment(id uuid.UUID, input CompleteTreatmentInput) (*models.DailyTreatment, error) {
	var treatment models.DailyTreatment
	if err := s.db.First(&treatment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if treatment.Completed() {
		return nil, validationErr("treatment", "is already completed")
	}
	if input.EndTime.IsZero() {
		return nil, validationErr("endTime", "is required")
	}
	if input.ActualPrice < 0 {
		return nil, validationErr("actualPrice", "must not be negative")
	}
	if !input.PaymentMethod.Valid() {
		return nil, validationErr("paymentMethod", "must be cash, transfer or qris")
	}

	var therapist models.Therapist
	if err := s.db.First(&therapist, "id = ?", treatment.TherapistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	earnings, err := ComputeTherapistEarnings(
		therapist.BaseFeePerTreatment,
		therapist.CommissionRate,
		input.ActualPrice,
		treatment.TipAmount,
	)
	if err != nil {
		return nil, err
	}

	endTime := input.EndTime
	treatment.EndTime = &endTime
	treatment.ActualPrice = input.ActualPrice
	treatment.PaymentMethod = input.PaymentMethod
	treatment.TherapistEarnings = earnings
	treatment.FeedbackStatus = models.FeedbackPending
	if input.Notes != nil {
		treatment.Notes = *input.Notes
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&treatment).Error; err != nil {
			return err
		}
		if err := RecomputeTherapistTotals(tx, treatment.TherapistID); err != nil {
			return err
		}
		if treatment.CustomerID != nil {
			return RecomputeCustomerAggregates(tx, *treatment.CustomerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SendFeedbackPrompt(treatment)
	}
	return &treatment, nil
}

type SubmitFeedbackInput struct {
	DailyTreatmentID uuid.UUID
	OverallRating    int
	ServiceQuality   int
	TherapistService int
	Cleanliness      int
	ValueForMoney    int
	Comment          string
	WouldRecommend   bool
}

// SubmitFeedback records the post-treatment survey, at most once per
// treatment. Ratings are clamped to 1-5. The unique index on
// daily_treatment_id backs up the pre-check against concurrent submissions.
func (s *TreatmentService) SubmitFeedback(input SubmitFeedbackInput) (*models.CustomerFeedback, error) {
	var treatment models.DailyTreatment
	if err := s.db.First(&treatment, "id = ?", input.DailyTreatmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !treatment.Completed() {
		return nil, validationErr("treatment", "is not completed yet")
	}

	has, err := s.HasFeedback(treatment.ID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrDuplicateFeedback
	}

	feedback := models.CustomerFeedback{
		DailyTreatmentID: treatment.ID,
		CustomerID:       treatment.CustomerID,
		OverallRating:    utils.ClampRating(input.OverallRating),
		ServiceQuality:   utils.ClampRating(input.ServiceQuality),
		TherapistService: utils.ClampRating(input.TherapistService),
		Cleanliness:      utils.ClampRating(input.Cleanliness),
		ValueForMoney:    utils.ClampRating(input.ValueForMoney),
		Comment:          input.Comment,
		WouldRecommend:   input.WouldRecommend,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return translateDBError(err, ErrDuplicateFeedback)
		}
		if err := tx.Model(&models.DailyTreatment{}).
			Where("id = ?", treatment.ID).
			Update("feedback_status", models.FeedbackCollected).Error; err != nil {
			return err
		}
		return RefreshTherapistAverageRating(tx, treatment.TherapistID)
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// SkipFeedback marks the prompt as dismissed. Terminal, but calling it again
// on an already-skipped treatment is a no-op rather than an error.
func (s *TreatmentService) SkipFeedback(id uuid.UUID) error {
	var treatment models.DailyTreatment
	if err := s.db.First(&treatment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !treatment.Completed() {
		return validationErr("treatment", "is not completed yet")
	}
	if treatment.FeedbackStatus == models.FeedbackCollected {
		return ErrDuplicateFeedback
	}
	if treatment.FeedbackStatus == models.FeedbackSkipped {
		return nil
	}

	return s.db.Model(&models.DailyTreatment{}).
		Where("id = ?", id).
		Update("feedback_status", models.FeedbackSkipped).Error
}

// HasFeedback reports whether a feedback row exists for the treatment.
func (s *TreatmentService) HasFeedback(treatmentID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.CustomerFeedback{}).
		Where("daily_treatment_id = ?", treatmentID).
		Count(&count).Error
	return count > 0, err
}

type FeedbackCheckResult struct {
	HasFeedback bool       `json:"hasFeedback"`
	Rating      *int       `json:"rating,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

// CheckFeedback answers the list view's batch question: which of these
// treatments already have feedback, and what was the overall rating.
func (s *TreatmentService) CheckFeedback(treatmentIDs []uuid.UUID) (map[string]FeedbackCheckResult, error) {
	result := make(map[string]FeedbackCheckResult, len(treatmentIDs))
	for _, id := range treatmentIDs {
		result[id.String()] = FeedbackCheckResult{}
	}

	var feedbacks []models.CustomerFeedback
	if err := s.db.Where("daily_treatment_id IN ?", treatmentIDs).
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}

	for i := range feedbacks {
		f := feedbacks[i]
		rating := f.OverallRating
		submittedAt := f.CreatedAt
		result[f.DailyTreatmentID.String()] = FeedbackCheckResult{
			HasFeedback: true,
			Rating:      &rating,
			SubmittedAt: &submittedAt,
		}
	}
	return result, nil
}

// GetTreatment loads one treatment with its feedback, if any.
func (s *TreatmentService) GetTreatment(id uuid.UUID) (*models.DailyTreatment, error) {
	var treatment models.DailyTreatment
	err := s.db.Preload("Feedback").First(&treatment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &treatment, nil
}

// ListByDate returns the treatments booked for one calendar day.
func (s *TreatmentService) ListByDate(date time.Time) ([]models.DailyTreatment, error) {
	day := utils.BeginningOfDay(date)
	next := day.AddDate(0, 0, 1)

	var treatments []models.DailyTreatment
	err := s.db.Preload("Feedback").
		Where("date >= ? AND date < ?", day, next).
		Order("created_at ASC").
		Find(&treatments).Error
	return treatments, err
}

type UpdateTreatmentInput struct {
	Date          *time.Time
	CustomerName  *string
	TipAmount     *int64
	PaymentMethod *models.PaymentMethod
	StartTime     *time.Time
	Notes         *string
}

// UpdateTreatment edits booking fields that do not affect money already
// computed. Tip changes on a completed treatment recompute the earnings.
func (s *TreatmentService) UpdateTreatment(id uuid.UUID, input UpdateTreatmentInput) (*models.DailyTreatment, error) {
	var treatment models.DailyTreatment
	if err := s.db.First(&treatment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, validationErr("date", "is required")
		}
		treatment.Date = utils.BeginningOfDay(*input.Date)
	}
	if input.CustomerName != nil {
		if *input.CustomerName == "" {
			return nil, validationErr("customerName", "is required")
		}
		treatment.CustomerName = *input.CustomerName
	}
	if input.TipAmount != nil {
		if *input.TipAmount < 0 {
			return nil, validationErr("tipAmount", "must not be negative")
		}
		treatment.TipAmount = *input.TipAmount
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.Valid() {
			return nil, validationErr("paymentMethod", "must be cash, transfer or qris")
		}
		treatment.PaymentMethod = *input.PaymentMethod
	}
	if input.StartTime != nil {
		treatment.StartTime = input.StartTime
	}
	if input.Notes != nil {
		treatment.Notes = *input.Notes
	}

	if treatment.Completed() && input.TipAmount != nil {
		var therapist models.Therapist
		if err := s.db.First(&therapist, "id = ?", treatment.TherapistID).Error; err != nil {
			return nil, err
		}
		earnings, err := ComputeTherapistEarnings(
			therapist.BaseFeePerTreatment,
			therapist.CommissionRate,
			treatment.ActualPrice,
			treatment.TipAmount,
		)
		if err != nil {
			return nil, err
		}
		treatment.TherapistEarnings = earnings
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&treatment).Error; err != nil {
			return err
		}
		if err := RecomputeTherapistTotals(tx, treatment.TherapistID); err != nil {
			return err
		}
		if treatment.CustomerID != nil {
			return RecomputeCustomerAggregates(tx, *treatment.CustomerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &treatment, nil
}

// DeleteTreatment removes a treatment (and its feedback, 1:1) and rederives
// the affected therapist and customer aggregates.
func (s *TreatmentService) DeleteTreatment(id uuid.UUID) error {
	var treatment models.DailyTreatment
	if err := s.db.First(&treatment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("daily_treatment_id = ?", id).
			Delete(&models.CustomerFeedback{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&treatment).Error; err != nil {
			return err
		}
		if err := RecomputeTherapistTotals(tx, treatment.TherapistID); err != nil {
			return err
		}
		if err := RefreshTherapistAverageRating(tx, treatment.TherapistID); err != nil {
			return err
		}
		if treatment.CustomerID != nil {
			return RecomputeCustomerAggregates(tx, *treatment.CustomerID)
		}
		return nil
	})
}
