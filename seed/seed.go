// Package seed populates reference data and, on an empty database, a month
// of historical sample data. Safe to run repeatedly: reference entities
// upsert by their natural keys and the historical step bails out unless its
// tables are empty.
package seed

import (
	"log"
	"math/rand"
	"os"
	"time"

	"salon-dina-backend/models"
	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

// Run seeds the database and finishes with a full recompute of every
// derived aggregate.
func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedCategories(db); err != nil {
		return err
	}
	therapists, err := seedTherapists(db)
	if err != nil {
		return err
	}
	customers, err := seedCustomers(db)
	if err != nil {
		return err
	}
	catalog, err := seedServices(db)
	if err != nil {
		return err
	}
	if err := seedHistory(db, therapists, customers, catalog); err != nil {
		return err
	}
	return recomputeAll(db, therapists, customers)
}

// seedAdmin upserts the admin account by username. The password is only set
// on first creation, never overwritten on reruns.
func seedAdmin(db *gorm.DB) error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "salondina123"
	}

	var admin models.Admin
	err := db.Where(models.Admin{Username: "admin"}).
		Attrs(models.Admin{Password: password, Name: "Admin Salon Dina"}).
		FirstOrCreate(&admin).Error
	if err != nil {
		return err
	}
	log.Printf("Admin ready: %s", admin.Username)
	return nil
}

func seedCategories(db *gorm.DB) error {
	names := []string{"Facial", "Body Treatment", "Hair Care", "Nail Care", "Massage"}
	for _, name := range names {
		var category models.ServiceCategory
		err := db.Where(models.ServiceCategory{Name: name}).
			FirstOrCreate(&category).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// seedTherapists upserts by initial, so reruns refresh fees and rates
// without duplicating anyone.
func seedTherapists(db *gorm.DB) ([]models.Therapist, error) {
	defs := []models.Therapist{
		{Initial: "DN", FullName: "Dina Novita", Phone: "+6281234567801", Status: models.TherapistActive, BaseFeePerTreatment: 15000, CommissionRate: 0.10},
		{Initial: "SR", FullName: "Sari Rahayu", Phone: "+6281234567802", Status: models.TherapistActive, BaseFeePerTreatment: 12500, CommissionRate: 0.12},
		{Initial: "WL", FullName: "Wulan Lestari", Phone: "+6281234567803", Status: models.TherapistActive, BaseFeePerTreatment: 12500, CommissionRate: 0.10},
		{Initial: "AY", FullName: "Ayu Yuliana", Phone: "+6281234567804", Status: models.TherapistOnLeave, BaseFeePerTreatment: 10000, CommissionRate: 0.08},
	}

	out := make([]models.Therapist, 0, len(defs))
	for _, def := range defs {
		var therapist models.Therapist
		err := db.Where(models.Therapist{Initial: def.Initial}).
			Assign(models.Therapist{
				FullName:            def.FullName,
				Phone:               def.Phone,
				Status:              def.Status,
				BaseFeePerTreatment: def.BaseFeePerTreatment,
				CommissionRate:      def.CommissionRate,
			}).
			FirstOrCreate(&therapist).Error
		if err != nil {
			return nil, err
		}
		out = append(out, therapist)
	}
	return out, nil
}

// seedCustomers upserts by phone.
func seedCustomers(db *gorm.DB) ([]models.Customer, error) {
	defs := []models.Customer{
		{Name: "Rina Anggraini", Phone: "+6281311111101", Email: "rina@gmail.com", Address: "Jl. Melati No. 3"},
		{Name: "Dewi Kartika", Phone: "+6281311111102", Email: "dewi.k@gmail.com", Address: "Jl. Kenanga No. 12"},
		{Name: "Siti Nurhaliza", Phone: "+6281311111103", Address: "Jl. Mawar No. 8"},
		{Name: "Maya Puspita", Phone: "+6281311111104", Email: "maya.p@yahoo.com"},
		{Name: "Lia Amalia", Phone: "+6281311111105"},
	}

	out := make([]models.Customer, 0, len(defs))
	for _, def := range defs {
		var customer models.Customer
		err := db.Where(models.Customer{Phone: def.Phone}).
			Assign(models.Customer{
				Name:    def.Name,
				Email:   def.Email,
				Address: def.Address,
			}).
			FirstOrCreate(&customer).Error
		if err != nil {
			return nil, err
		}
		out = append(out, customer)
	}
	return out, nil
}

// seedServices uses find-by-name-then-create rather than upsert; reruns do
// not duplicate only because the check precedes creation. Fine for a
// one-shot CLI bootstrap, not for concurrent callers.
func seedServices(db *gorm.DB) ([]models.Service, error) {
	defs := []models.Service{
		{Name: "Facial Brightening", Category: "Facial", NormalPrice: 150000, Duration: 60, Popularity: 8},
		{Name: "Facial Acne Treatment", Category: "Facial", NormalPrice: 175000, PromoPrice: ptr(int64(150000)), Duration: 75, Popularity: 7},
		{Name: "Body Scrub & Spa", Category: "Body Treatment", NormalPrice: 200000, Duration: 90, Popularity: 9},
		{Name: "Creambath", Category: "Hair Care", NormalPrice: 100000, Duration: 45, Popularity: 6},
		{Name: "Hair Spa", Category: "Hair Care", NormalPrice: 125000, Duration: 60, Popularity: 7},
		{Name: "Manicure Pedicure", Category: "Nail Care", NormalPrice: 120000, Duration: 60, Popularity: 5},
		{Name: "Traditional Massage", Category: "Massage", NormalPrice: 180000, Duration: 90, Popularity: 8},
	}

	out := make([]models.Service, 0, len(defs))
	for _, def := range defs {
		var service models.Service
		err := db.Where("name = ?", def.Name).First(&service).Error
		if err == nil {
			out = append(out, service)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		service = def
		service.IsActive = true
		if err := db.Create(&service).Error; err != nil {
			return nil, err
		}
		out = append(out, service)
	}
	return out, nil
}

// seedHistory generates 30 days of completed treatments plus matching ledger
// rows, but only on an empty database (count-check guard keeps reruns
// idempotent). The generator is deterministically seeded.
func seedHistory(db *gorm.DB, therapists []models.Therapist, customers []models.Customer, catalog []models.Service) error {
	var treatmentCount int64
	if err := db.Model(&models.DailyTreatment{}).Count(&treatmentCount).Error; err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(42))
	today := utils.BeginningOfDay(time.Now())
	methods := []models.PaymentMethod{models.PaymentCash, models.PaymentTransfer, models.PaymentQris}

	if treatmentCount == 0 {
		active := make([]models.Therapist, 0, len(therapists))
		for _, t := range therapists {
			if t.Status == models.TherapistActive {
				active = append(active, t)
			}
		}

		for offset := 30; offset >= 1; offset-- {
			day := today.AddDate(0, 0, -offset)
			perDay := 2 + rng.Intn(4)

			for i := 0; i < perDay; i++ {
				therapist := active[rng.Intn(len(active))]
				customer := customers[rng.Intn(len(customers))]
				service := catalog[rng.Intn(len(catalog))]

				price := service.EffectivePrice()
				tip := int64(rng.Intn(3)) * 5000

				earnings, err := services.ComputeTherapistEarnings(
					therapist.BaseFeePerTreatment, therapist.CommissionRate, price, tip)
				if err != nil {
					return err
				}

				start := day.Add(time.Duration(10+i*2) * time.Hour)
				end := start.Add(time.Duration(service.Duration) * time.Minute)

				treatment := models.DailyTreatment{
					Date:              day,
					CustomerID:        &customer.ID,
					CustomerName:      customer.Name,
					ServiceID:         service.ID,
					ServiceName:       service.Name,
					ServicePrice:      price,
					ActualPrice:       price,
					TherapistID:       therapist.ID,
					TherapistName:     therapist.FullName,
					TherapistEarnings: earnings,
					TipAmount:         tip,
					PaymentMethod:     methods[rng.Intn(len(methods))],
					StartTime:         &start,
					EndTime:           &end,
					FeedbackStatus:    models.FeedbackPending,
				}
				if err := db.Create(&treatment).Error; err != nil {
					return err
				}

				// Roughly half the customers answer the survey.
				if rng.Intn(2) == 0 {
					rating := 3 + rng.Intn(3)
					feedback := models.CustomerFeedback{
						DailyTreatmentID: treatment.ID,
						CustomerID:       treatment.CustomerID,
						OverallRating:    rating,
						ServiceQuality:   utils.ClampRating(rating + rng.Intn(2) - 1),
						TherapistService: rating,
						Cleanliness:      utils.ClampRating(rating + rng.Intn(2)),
						ValueForMoney:    utils.ClampRating(rating - rng.Intn(2)),
						WouldRecommend:   rating >= 4,
					}
					if err := db.Create(&feedback).Error; err != nil {
						return err
					}
					err = db.Model(&models.DailyTreatment{}).
						Where("id = ?", treatment.ID).
						Update("feedback_status", models.FeedbackCollected).Error
					if err != nil {
						return err
					}
				}
			}
		}
		log.Println("Historical treatments seeded")
	}

	var ledgerCount int64
	if err := db.Model(&models.MonthlyBookkeeping{}).Count(&ledgerCount).Error; err != nil {
		return err
	}

	if ledgerCount == 0 {
		for offset := 30; offset >= 1; offset-- {
			day := today.AddDate(0, 0, -offset)
			next := day.AddDate(0, 0, 1)

			var treatments []models.DailyTreatment
			if err := db.Where("date >= ? AND date < ?", day, next).Find(&treatments).Error; err != nil {
				return err
			}
			summary := services.AggregateDay(treatments)

			row := models.MonthlyBookkeeping{
				Date:            day,
				DailyRevenue:    summary.TotalRevenue,
				OperationalCost: 75000,
				SalaryExpense:   100000,
				TherapistFee:    summary.TotalTherapistFees,
				OtherExpenses:   int64(rng.Intn(3)) * 25000,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		}
		log.Println("Bookkeeping rows seeded")
	}

	return nil
}

// recomputeAll rederives every denormalized aggregate after seeding.
func recomputeAll(db *gorm.DB, therapists []models.Therapist, customers []models.Customer) error {
	for _, c := range customers {
		if err := services.RecomputeCustomerAggregates(db, c.ID); err != nil {
			return err
		}
	}
	for _, t := range therapists {
		if err := services.RecomputeTherapistTotals(db, t.ID); err != nil {
			return err
		}
		if err := services.RefreshTherapistAverageRating(db, t.ID); err != nil {
			return err
		}
	}

	if err := services.NewLedgerService(db).Recompute(); err != nil {
		return err
	}

	stats := services.NewStatsService(db)
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	for _, m := range []time.Time{lastMonth, thisMonth} {
		if err := stats.RecomputeMonthlyStats(m.Month(), m.Year()); err != nil {
			return err
		}
	}
	return nil
}
