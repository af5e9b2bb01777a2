// utils/currency.go
package utils

import "strconv"

// FormatRupiah renders an integer Rupiah amount the way the admin UI shows
// it: "Rp 1.250.000". There is no fractional currency.
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}
