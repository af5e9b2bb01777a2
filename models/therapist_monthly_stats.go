package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TherapistMonthlyStats is a derived aggregate per (therapist, month, year),
// recomputable in full from daily_treatments and customer_feedbacks.
type TherapistMonthlyStats struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	TherapistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_therapist_month,priority:1" json:"therapistId"`
	Month       int       `gorm:"not null;uniqueIndex:idx_therapist_month,priority:2" json:"month"`
	Year        int       `gorm:"not null;uniqueIndex:idx_therapist_month,priority:3" json:"year"`

	TreatmentCount int     `gorm:"default:0" json:"treatmentCount"`
	TotalRevenue   int64   `gorm:"default:0" json:"totalRevenue"`
	TotalFees      int64   `gorm:"default:0" json:"totalFees"`
	TotalTips      int64   `gorm:"default:0" json:"totalTips"`
	AverageRating  float64 `gorm:"default:0" json:"averageRating"`

	gorm.Model
}

func (s *TherapistMonthlyStats) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
