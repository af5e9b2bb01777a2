package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthlyBookkeeping is one ledger row per calendar day. TotalExpense,
// NetIncome and RunningTotal are derived by the ledger recompute and must
// never be hand-edited directly.
type MonthlyBookkeeping struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time `gorm:"uniqueIndex;not null" json:"date"`

	DailyRevenue    int64 `gorm:"default:0" json:"dailyRevenue"`
	OperationalCost int64 `gorm:"default:0" json:"operationalCost"`
	SalaryExpense   int64 `gorm:"default:0" json:"salaryExpense"`
	TherapistFee    int64 `gorm:"default:0" json:"therapistFee"`
	OtherExpenses   int64 `gorm:"default:0" json:"otherExpenses"`

	TotalExpense int64 `gorm:"default:0" json:"totalExpense"`
	NetIncome    int64 `gorm:"default:0" json:"netIncome"`
	// RunningTotal is the prefix sum of NetIncome over all rows dated at or
	// before this one. Any write to any row invalidates every later value.
	RunningTotal int64 `gorm:"default:0" json:"runningTotal"`

	gorm.Model
}

func (m *MonthlyBookkeeping) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
