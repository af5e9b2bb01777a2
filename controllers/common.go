package controllers

import (
	"errors"
	"net/http"
	"time"

	"salon-dina-backend/services"
	"salon-dina-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the services error taxonomy onto HTTP codes.
// Anything outside the taxonomy is reported as a generic database error.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateEntry),
		errors.Is(err, services.ErrDuplicateFeedback):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// parseDate parses the YYYY-MM-DD format used by all date query params and
// request bodies.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// parseTimeOfDay accepts either a full RFC3339 timestamp or a bare HH:MM
// clock anchored to the given day.
func parseTimeOfDay(s string, day time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
