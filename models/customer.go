package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"uniqueIndex;not null" json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`

	// Derived aggregates, recomputed from daily_treatments on every
	// treatment write (see services.RecomputeCustomerAggregates).
	TotalVisits   int   `gorm:"default:0" json:"totalVisits"`
	TotalSpending int64 `gorm:"default:0" json:"totalSpending"`
	LoyaltyVisits int   `gorm:"default:0" json:"loyaltyVisits"`

	IsVip     bool       `gorm:"default:false" json:"isVip"`
	LastVisit *time.Time `json:"lastVisit"`

	Treatments []DailyTreatment `gorm:"foreignKey:CustomerID" json:"-"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
