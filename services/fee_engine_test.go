package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTherapistEarnings(t *testing.T) {
	// Rp 15.000 base + 10% of Rp 200.000 + Rp 10.000 tip.
	got, err := ComputeTherapistEarnings(15000, 0.10, 200000, 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), got)
}

func TestComputeTherapistEarningsRoundsHalfUp(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		rate  float64
		want  int64
	}{
		{"exact", 200000, 0.10, 20000},
		{"half rounds up", 155, 0.10, 16},
		{"below half rounds down", 154, 0.10, 15},
		{"zero rate", 200000, 0, 0},
		{"full rate", 12345, 1.0, 12345},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeTherapistEarnings(0, tc.rate, tc.price, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeTherapistEarningsMonotonicInPrice(t *testing.T) {
	var prev int64 = -1
	for price := int64(0); price <= 100000; price += 997 {
		got, err := ComputeTherapistEarnings(10000, 0.12, price, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestComputeTherapistEarningsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		baseFee int64
		rate    float64
		price   int64
		tip     int64
	}{
		{"negative base fee", -1, 0.10, 100000, 0},
		{"negative rate", 10000, -0.01, 100000, 0},
		{"rate above one", 10000, 1.5, 100000, 0},
		{"negative price", 10000, 0.10, -100, 0},
		{"negative tip", 10000, 0.10, 100000, -500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeTherapistEarnings(tc.baseFee, tc.rate, tc.price, tc.tip)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}
