package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TherapistStatus string

const (
	TherapistActive   TherapistStatus = "active"
	TherapistInactive TherapistStatus = "inactive"
	TherapistOnLeave  TherapistStatus = "on_leave"
)

func (s TherapistStatus) Valid() bool {
	switch s {
	case TherapistActive, TherapistInactive, TherapistOnLeave:
		return true
	}
	return false
}

// DisplayID returns the Indonesian label shown in the admin UI. Status values
// in the data layer are always the enum constants, never display strings.
func (s TherapistStatus) DisplayID() string {
	switch s {
	case TherapistActive:
		return "Aktif"
	case TherapistInactive:
		return "Tidak Aktif"
	case TherapistOnLeave:
		return "Cuti"
	}
	return string(s)
}

type Therapist struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// Initial is the 1-3 character shorthand shown everywhere in the UI and
	// the natural key for seeding upserts.
	Initial  string          `gorm:"size:3;uniqueIndex;not null" json:"initial"`
	FullName string          `gorm:"not null" json:"fullName"`
	Phone    string          `json:"phone"`
	Status   TherapistStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	BaseFeePerTreatment int64 `gorm:"default:0" json:"baseFeePerTreatment"`
	// CommissionRate is a fraction in [0,1]. The data layer never stores
	// percentages; conversion happens at the form boundary only.
	CommissionRate float64 `gorm:"default:0" json:"commissionRate"`

	TotalTreatments int      `gorm:"default:0" json:"totalTreatments"`
	TotalEarnings   int64    `gorm:"default:0" json:"totalEarnings"`
	AverageRating   *float64 `json:"averageRating"`

	Treatments []DailyTreatment `gorm:"foreignKey:TherapistID" json:"-"`

	gorm.Model
}

func (t *Therapist) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
