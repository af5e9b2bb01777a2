package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentQris     PaymentMethod = "qris"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentQris:
		return true
	}
	return false
}

// FeedbackStatus is persisted on the treatment itself so "has the customer
// been asked" never has to be reconstructed from side tables or client caches.
type FeedbackStatus string

const (
	FeedbackNone      FeedbackStatus = "none"    // not yet completed, not asked
	FeedbackPending   FeedbackStatus = "pending" // completed, prompt offered
	FeedbackCollected FeedbackStatus = "collected"
	FeedbackSkipped   FeedbackStatus = "skipped"
)

type DailyTreatment struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time `gorm:"index;not null" json:"date"`

	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	CustomerName string     `gorm:"not null" json:"customerName"`

	ServiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName string    `gorm:"not null" json:"serviceName"`
	// ServicePrice is a snapshot of the catalog price at booking time; the
	// live Service row may change afterwards.
	ServicePrice int64 `gorm:"not null" json:"servicePrice"`
	// ActualPrice is the price charged at completion (0 until completed).
	ActualPrice int64 `gorm:"default:0" json:"actualPrice"`

	TherapistID   uuid.UUID `gorm:"type:uuid;index;not null" json:"therapistId"`
	TherapistName string    `gorm:"not null" json:"therapistName"`
	// TherapistEarnings = baseFee + commission + tip, computed at completion.
	TherapistEarnings int64 `gorm:"default:0" json:"therapistEarnings"`

	TipAmount     int64         `gorm:"default:0" json:"tipAmount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20)" json:"paymentMethod"`

	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Notes     string     `json:"notes"`

	FeedbackStatus FeedbackStatus    `gorm:"type:varchar(20);default:'none'" json:"feedbackStatus"`
	Feedback       *CustomerFeedback `gorm:"foreignKey:DailyTreatmentID" json:"feedback,omitempty"`

	gorm.Model
}

// Completed means the treatment has been closed out with an end time.
func (t *DailyTreatment) Completed() bool {
	return t.EndTime != nil
}

func (t *DailyTreatment) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
