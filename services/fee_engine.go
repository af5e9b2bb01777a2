package services

import "math"

// ComputeTherapistEarnings returns what a therapist takes home for one
// completed treatment:
//
//	baseFee + round(servicePrice * commissionRate) + tipAmount
//
// All amounts are integer Rupiah. The commission term is rounded half-up
// exactly once; sums are never rounded again. Negative operands and rates
// above 1 are rejected with a ValidationError.
func ComputeTherapistEarnings(baseFee int64, commissionRate float64, servicePrice, tipAmount int64) (int64, error) {
	if baseFee < 0 {
		return 0, validationErr("baseFee", "must not be negative")
	}
	if commissionRate < 0 {
		return 0, validationErr("commissionRate", "must not be negative")
	}
	if commissionRate > 1 {
		return 0, validationErr("commissionRate", "must be a fraction between 0 and 1")
	}
	if servicePrice < 0 {
		return 0, validationErr("servicePrice", "must not be negative")
	}
	if tipAmount < 0 {
		return 0, validationErr("tipAmount", "must not be negative")
	}

	commission := int64(math.Floor(float64(servicePrice)*commissionRate + 0.5))
	return baseFee + commission + tipAmount, nil
}
