// models/feedback_prompt_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackPromptLog records every outbound feedback request so a failed send
// can be retried by the daily sweep without re-prompting customers who
// already got the message.
type FeedbackPromptLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	DailyTreatmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	Phone            string    `gorm:"type:varchar(32)"`
	Channel          string    `gorm:"type:varchar(20)"` // whatsapp, sms
	Message          string    `gorm:"type:text"`
	Status           string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage     string    `gorm:"type:text"`
	SentAt           time.Time

	gorm.Model
}

func (l *FeedbackPromptLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
