package services

import (
	"testing"
	"time"

	"salon-dina-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promptRecorder captures feedback prompts instead of sending WhatsApp
// messages.
type promptRecorder struct {
	sent []models.DailyTreatment
}

func (r *promptRecorder) SendFeedbackPrompt(t models.DailyTreatment) {
	r.sent = append(r.sent, t)
}

func TestCreateTreatmentSnapshotsCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Facial Brightening", 150000)

	treatment, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(0),
		CustomerName: "Rina",
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Facial Brightening", treatment.ServiceName)
	assert.Equal(t, int64(150000), treatment.ServicePrice)
	assert.Equal(t, therapist.FullName, treatment.TherapistName)
	assert.Equal(t, models.FeedbackNone, treatment.FeedbackStatus)
	assert.False(t, treatment.Completed())

	// Renaming the service afterwards must not rewrite history.
	require.NoError(t, db.Model(&models.Service{}).
		Where("id = ?", service.ID).
		Update("name", "Renamed").Error)
	reloaded, err := svc.GetTreatment(treatment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Facial Brightening", reloaded.ServiceName)
}

func TestCreateTreatmentRejectsInactiveTherapist(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "AY", 10000, 0.08)
	require.NoError(t, db.Model(&models.Therapist{}).
		Where("id = ?", therapist.ID).
		Update("status", models.TherapistOnLeave).Error)
	service := createService(t, db, "Creambath", 100000)

	_, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(0),
		CustomerName: "Dewi",
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateTreatmentUnknownService(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)
	therapist := createTherapist(t, db, "DN", 15000, 0.10)

	_, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(0),
		CustomerName: "Dewi",
		ServiceID:    uuid.New(),
		TherapistID:  therapist.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTreatment(t *testing.T) {
	db := newTestDB(t)
	recorder := &promptRecorder{}
	svc := NewTreatmentService(db, recorder)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Body Scrub & Spa", 200000)

	booked, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(0),
		CustomerName: "Rina",
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
		TipAmount:    10000,
	})
	require.NoError(t, err)

	completed, err := svc.CompleteTreatment(booked.ID, CompleteTreatmentInput{
		EndTime:       time.Now(),
		ActualPrice:   200000,
		PaymentMethod: models.PaymentQris,
	})
	require.NoError(t, err)

	// 15.000 base + 10% of 200.000 + 10.000 tip.
	assert.Equal(t, int64(45000), completed.TherapistEarnings)
	assert.Equal(t, models.FeedbackPending, completed.FeedbackStatus)
	assert.True(t, completed.Completed())
	require.Len(t, recorder.sent, 1)
	assert.Equal(t, completed.ID, recorder.sent[0].ID)

	// Lifetime totals follow completion.
	var reloaded models.Therapist
	require.NoError(t, db.First(&reloaded, "id = ?", therapist.ID).Error)
	assert.Equal(t, 1, reloaded.TotalTreatments)
	assert.Equal(t, int64(45000), reloaded.TotalEarnings)
}

func TestCompleteTreatmentTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Hair Spa", 125000)
	completed := bookAndComplete(t, svc, therapist, service, daysAgo(0), 125000, 0)

	_, err := svc.CompleteTreatment(completed.ID, CompleteTreatmentInput{
		EndTime:       time.Now(),
		ActualPrice:   125000,
		PaymentMethod: models.PaymentCash,
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSubmitFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "SR", 12500, 0.12)
	service := createService(t, db, "Manicure Pedicure", 120000)
	completed := bookAndComplete(t, svc, therapist, service, daysAgo(0), 120000, 0)

	feedback, err := svc.SubmitFeedback(SubmitFeedbackInput{
		DailyTreatmentID: completed.ID,
		OverallRating:    5,
		ServiceQuality:   9, // clamped to 5
		TherapistService: 4,
		Cleanliness:      0, // clamped to 1
		ValueForMoney:    4,
		WouldRecommend:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, feedback.OverallRating)
	assert.Equal(t, 5, feedback.ServiceQuality)
	assert.Equal(t, 1, feedback.Cleanliness)

	reloaded, err := svc.GetTreatment(completed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackCollected, reloaded.FeedbackStatus)
	require.NotNil(t, reloaded.Feedback)

	var therapistRow models.Therapist
	require.NoError(t, db.First(&therapistRow, "id = ?", therapist.ID).Error)
	require.NotNil(t, therapistRow.AverageRating)
	assert.InDelta(t, 5.0, *therapistRow.AverageRating, 0.001)
}

func TestSubmitFeedbackOncePerTreatment(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Facial Brightening", 150000)
	completed := bookAndComplete(t, svc, therapist, service, daysAgo(0), 150000, 0)

	_, err := svc.SubmitFeedback(SubmitFeedbackInput{DailyTreatmentID: completed.ID, OverallRating: 4})
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(SubmitFeedbackInput{DailyTreatmentID: completed.ID, OverallRating: 1})
	assert.ErrorIs(t, err, ErrDuplicateFeedback)

	// Exactly one row made it to the table.
	var count int64
	require.NoError(t, db.Model(&models.CustomerFeedback{}).
		Where("daily_treatment_id = ?", completed.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitFeedbackRequiresCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Facial Brightening", 150000)

	booked, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(0),
		CustomerName: "Maya",
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
	})
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(SubmitFeedbackInput{DailyTreatmentID: booked.ID, OverallRating: 5})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSkipFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "WL", 12500, 0.10)
	service := createService(t, db, "Traditional Massage", 180000)
	completed := bookAndComplete(t, svc, therapist, service, daysAgo(0), 180000, 0)

	require.NoError(t, svc.SkipFeedback(completed.ID))

	reloaded, err := svc.GetTreatment(completed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackSkipped, reloaded.FeedbackStatus)

	// Skipping again is a no-op.
	require.NoError(t, svc.SkipFeedback(completed.ID))

	// But submitting feedback after a skip still works once...
	_, err = svc.SubmitFeedback(SubmitFeedbackInput{DailyTreatmentID: completed.ID, OverallRating: 4})
	require.NoError(t, err)

	// ...after which skip reports the conflict.
	assert.ErrorIs(t, svc.SkipFeedback(completed.ID), ErrDuplicateFeedback)
}

func TestCheckFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Hair Spa", 125000)

	withFeedback := bookAndComplete(t, svc, therapist, service, daysAgo(0), 125000, 0)
	without := bookAndComplete(t, svc, therapist, service, daysAgo(0), 125000, 0)

	_, err := svc.SubmitFeedback(SubmitFeedbackInput{DailyTreatmentID: withFeedback.ID, OverallRating: 4})
	require.NoError(t, err)

	result, err := svc.CheckFeedback([]uuid.UUID{withFeedback.ID, without.ID})
	require.NoError(t, err)
	require.Len(t, result, 2)

	got := result[withFeedback.ID.String()]
	assert.True(t, got.HasFeedback)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	assert.NotNil(t, got.SubmittedAt)

	assert.False(t, result[without.ID.String()].HasFeedback)
}

func TestUpdateTreatmentTipRecomputesEarnings(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Body Scrub & Spa", 200000)
	completed := bookAndComplete(t, svc, therapist, service, daysAgo(0), 200000, 0)
	assert.Equal(t, int64(35000), completed.TherapistEarnings)

	tip := int64(10000)
	updated, err := svc.UpdateTreatment(completed.ID, UpdateTreatmentInput{TipAmount: &tip})
	require.NoError(t, err)
	assert.Equal(t, int64(45000), updated.TherapistEarnings)
}

func TestDeleteTreatmentCleansUpAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Facial Brightening", 150000)
	customer := createCustomer(t, db, "Rina", "+6281311111101")

	booked, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:         daysAgo(0),
		CustomerID:   &customer.ID,
		ServiceID:    service.ID,
		TherapistID:  therapist.ID,
	})
	require.NoError(t, err)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, 1, reloaded.TotalVisits)

	require.NoError(t, svc.DeleteTreatment(booked.ID))

	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, 0, reloaded.TotalVisits)

	_, err = svc.GetTreatment(booked.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTreatmentLifecycleTracksLastVisit(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Hair Spa", 125000)
	customer := createCustomer(t, db, "Dewi", "+6281311111102")

	booked, err := svc.CreateTreatment(CreateTreatmentInput{
		Date:        daysAgo(2),
		CustomerID:  &customer.ID,
		ServiceID:   service.ID,
		TherapistID: therapist.ID,
	})
	require.NoError(t, err)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	require.NotNil(t, reloaded.LastVisit)
	assert.True(t, reloaded.LastVisit.Equal(daysAgo(2)))

	// Removing the only visit clears the marker again. Load into a fresh
	// struct: GORM leaves a reused destination field untouched when the
	// column scans back as NULL.
	require.NoError(t, svc.DeleteTreatment(booked.ID))
	var afterDelete models.Customer
	require.NoError(t, db.First(&afterDelete, "id = ?", customer.ID).Error)
	assert.Nil(t, afterDelete.LastVisit)
}

func TestListByDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewTreatmentService(db, nil)

	therapist := createTherapist(t, db, "DN", 15000, 0.10)
	service := createService(t, db, "Hair Spa", 125000)

	bookAndComplete(t, svc, therapist, service, daysAgo(1), 125000, 0)
	bookAndComplete(t, svc, therapist, service, daysAgo(1), 125000, 5000)
	bookAndComplete(t, svc, therapist, service, daysAgo(2), 125000, 0)

	treatments, err := svc.ListByDate(daysAgo(1))
	require.NoError(t, err)
	assert.Len(t, treatments, 2)

	summary := AggregateDay(treatments)
	assert.Equal(t, int64(250000), summary.TotalRevenue)
	assert.Equal(t, int64(5000), summary.TotalTips)
}
