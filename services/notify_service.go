// services/notify_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotifyService sends the post-treatment feedback prompt over WhatsApp/SMS
// and runs the daily maintenance sweep. It satisfies FeedbackNotifier.
type NotifyService struct {
	db     *gorm.DB
	client *twilio.RestClient
	stats  *StatsService
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		db:    db,
		stats: NewStatsService(db),
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the daily sweep at 9 AM: retry feedback prompts for
// yesterday's still-pending treatments, then refresh this month's therapist
// stats.
func (s *NotifyService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.ResendPendingPrompts(time.Now().AddDate(0, 0, -1))

		now := time.Now()
		if err := s.stats.RecomputeMonthlyStats(now.Month(), now.Year()); err != nil {
			log.Printf("Failed to recompute monthly stats: %v", err)
		}
	})

	c.Start()
	log.Println("Feedback prompt scheduler started")
}

// SendFeedbackPrompt messages the customer right after completion. Best
// effort: every outcome is logged to feedback_prompt_logs and nothing here
// can fail the completion that triggered it.
func (s *NotifyService) SendFeedbackPrompt(treatment models.DailyTreatment) {
	if treatment.CustomerID == nil {
		log.Printf("Treatment %s: walk-in without customer record, skipping feedback prompt", treatment.ID)
		return
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", *treatment.CustomerID).Error; err != nil {
		log.Printf("Treatment %s: failed to load customer for feedback prompt: %v", treatment.ID, err)
		return
	}
	if customer.Phone == "" {
		return
	}

	message := fmt.Sprintf(
		"Halo %s, terima kasih sudah melakukan perawatan %s di Salon Dina! Mohon luangkan waktu untuk menilai layanan kami (1-5).",
		customer.Name, treatment.ServiceName,
	)

	// WhatsApp for E.164 numbers, SMS otherwise
	channel := "sms"
	to := customer.Phone
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send feedback prompt to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Feedback prompt sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Feedback prompt sent to %s, but no SID returned", customer.Phone)
	}

	promptLog := models.FeedbackPromptLog{
		DailyTreatmentID: treatment.ID,
		Phone:            customer.Phone,
		Channel:          channel,
		Message:          message,
		Status:           status,
		ErrorMessage:     errorMsg,
		SentAt:           time.Now(),
	}
	if err := s.db.Create(&promptLog).Error; err != nil {
		log.Printf("Failed to log feedback prompt for treatment %s: %v", treatment.ID, err)
	}
}

// ResendPendingPrompts retries the prompt for treatments completed on the
// given day that are still pending and never had a successful send.
func (s *NotifyService) ResendPendingPrompts(date time.Time) {
	day := utils.BeginningOfDay(date)
	next := day.AddDate(0, 0, 1)

	var treatments []models.DailyTreatment
	err := s.db.Where("date >= ? AND date < ? AND feedback_status = ?", day, next, models.FeedbackPending).
		Find(&treatments).Error
	if err != nil {
		log.Printf("Failed to fetch pending-feedback treatments: %v", err)
		return
	}

	for _, t := range treatments {
		var sent int64
		err := s.db.Model(&models.FeedbackPromptLog{}).
			Where("daily_treatment_id = ? AND status = ?", t.ID, "sent").
			Count(&sent).Error
		if err != nil {
			log.Printf("Treatment %s: failed to check prompt log: %v", t.ID, err)
			continue
		}
		if sent > 0 {
			continue
		}
		s.SendFeedbackPrompt(t)
	}
}
