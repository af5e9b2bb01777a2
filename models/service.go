package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	gorm.Model
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type Service struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Category string    `gorm:"default:'General'" json:"category"`

	NormalPrice int64  `gorm:"not null" json:"normalPrice"`
	PromoPrice  *int64 `json:"promoPrice"`
	Duration    int    `json:"duration"` // in minutes

	IsActive     bool   `gorm:"default:true" json:"isActive"`
	TherapistFee *int64 `json:"therapistFee"`
	Popularity   int    `gorm:"default:0" json:"popularity"` // 0-10

	Treatments []DailyTreatment `gorm:"foreignKey:ServiceID" json:"-"`

	gorm.Model
}

// EffectivePrice is the promo price when set, otherwise the normal price.
func (s *Service) EffectivePrice() int64 {
	if s.PromoPrice != nil {
		return *s.PromoPrice
	}
	return s.NormalPrice
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
