package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 15, 9, 26, 535, time.Local)
	got := BeginningOfDay(ts)
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local), got)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, time.March, 14, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, time.March, 14, 22, 30, 0, 0, time.Local)
	nextDay := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestIsFutureDate(t *testing.T) {
	assert.False(t, IsFutureDate(time.Now()))
	assert.False(t, IsFutureDate(time.Now().AddDate(0, 0, -1)))
	assert.True(t, IsFutureDate(time.Now().AddDate(0, 0, 1)))
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.February, 2026)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), end)

	// December rolls into the next year.
	start, end = MonthRange(time.December, 2025)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), end)
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 1, ClampRating(-3))
	assert.Equal(t, 1, ClampRating(0))
	assert.Equal(t, 3, ClampRating(3))
	assert.Equal(t, 5, ClampRating(5))
	assert.Equal(t, 5, ClampRating(10))
}
