// controllers/bookkeeping.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"salon-dina-backend/config"
	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerEntryRequest carries the five hand-entered amounts for one day.
// Derived fields (totalExpense, netIncome, runningTotal) are computed
// server-side and never accepted from the client.
type LedgerEntryRequest struct {
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	DailyRevenue    int64  `json:"dailyRevenue"`
	OperationalCost int64  `json:"operationalCost"`
	SalaryExpense   int64  `json:"salaryExpense"`
	TherapistFee    int64  `json:"therapistFee"`
	OtherExpenses   int64  `json:"otherExpenses"`
}

func (r *LedgerEntryRequest) toInput() (services.LedgerEntryInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return services.LedgerEntryInput{}, err
	}
	return services.LedgerEntryInput{
		Date:            date,
		DailyRevenue:    r.DailyRevenue,
		OperationalCost: r.OperationalCost,
		SalaryExpense:   r.SalaryExpense,
		TherapistFee:    r.TherapistFee,
		OtherExpenses:   r.OtherExpenses,
	}, nil
}

// GetMonthlyBookkeeping lists the ledger rows for one month
// (?month=1-12&year=YYYY, default current month)
func GetMonthlyBookkeeping(c *gin.Context) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if c.Query("month") != "" {
		m, err := strconv.Atoi(c.Query("month"))
		if err != nil || m < 1 || m > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
			return
		}
		month = m
	}
	if c.Query("year") != "" {
		y, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}

	svc := services.NewLedgerService(config.DB)
	rows, err := svc.ListEntries(time.Month(month), year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var monthNet int64
	for _, r := range rows {
		monthNet += r.NetIncome
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"entries":        rows,
		"monthNetIncome": monthNet,
	})
}

// CreateMonthlyBookkeeping adds one ledger row and recomputes running totals
func CreateMonthlyBookkeeping(c *gin.Context) {
	var req LedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	svc := services.NewLedgerService(config.DB)
	row, err := svc.CreateEntry(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusCreated, row)
}

// UpdateMonthlyBookkeeping edits one ledger row and recomputes running totals
func UpdateMonthlyBookkeeping(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var req LedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	svc := services.NewLedgerService(config.DB)
	row, err := svc.UpdateEntry(entryUUID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, row)
}

// DeleteMonthlyBookkeeping removes one ledger row and recomputes running totals
func DeleteMonthlyBookkeeping(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	svc := services.NewLedgerService(config.DB)
	if err := svc.DeleteEntry(entryUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
