package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerFeedback is the post-treatment survey, at most one per treatment
// (enforced by the unique index on DailyTreatmentID).
type CustomerFeedback struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DailyTreatmentID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"dailyTreatmentId"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`

	OverallRating    int `gorm:"not null" json:"overallRating"`
	ServiceQuality   int `gorm:"not null" json:"serviceQuality"`
	TherapistService int `gorm:"not null" json:"therapistService"`
	Cleanliness      int `gorm:"not null" json:"cleanliness"`
	ValueForMoney    int `gorm:"not null" json:"valueForMoney"`

	Comment        string `gorm:"type:text" json:"comment"`
	WouldRecommend bool   `gorm:"default:true" json:"wouldRecommend"`

	gorm.Model
}

func (f *CustomerFeedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
