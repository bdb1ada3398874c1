package economy

import (
	"errors"
	"math"
)

// ErrNonPositiveRate rejects a misconfigured conversion rate. Rates come
// from the admin settings row, so hitting this is a configuration fault,
// not bad user input.
var ErrNonPositiveRate = errors.New("conversion rate must be positive")

// UsdCentsToGold converts a USD amount in cents to GOLD at the purchase
// rate (GOLD per dollar). The result is floored; working in cents keeps
// repeated conversions from leaking fractional gold.
func UsdCentsToGold(usdCents int64, purchaseRate float64) (int64, error) {
	if purchaseRate <= 0 {
		return 0, ErrNonPositiveRate
	}
	return int64(math.Floor(float64(usdCents) * purchaseRate / 100)), nil
}

// GoldToUsdCents values a GOLD amount in cents at the withdraw rate
// (GOLD per dollar). Rounding to currency precision happens here, at the
// persistence boundary, and nowhere mid-calculation.
func GoldToUsdCents(gold int64, withdrawRate float64) (int64, error) {
	if withdrawRate <= 0 {
		return 0, ErrNonPositiveRate
	}
	return int64(math.Round(float64(gold) * 100 / withdrawRate)), nil
}

// DollarsToCents converts a client-supplied dollar amount to cents.
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}
