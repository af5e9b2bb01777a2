package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1500, "Rp 1.500"},
		{125000, "Rp 125.000"},
		{1250000, "Rp 1.250.000"},
		{1000000000, "Rp 1.000.000.000"},
		{-75000, "-Rp 75.000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRupiah(tc.amount))
	}
}
