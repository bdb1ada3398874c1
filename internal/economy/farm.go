package economy

import (
	"math"
	"time"

	"aurora_backend/internal/domain"
)

// FarmAccrual is the pending passive income projection for a user.
// It is a pure read; claiming is a separate, mutating operation.
type FarmAccrual struct {
	// Gold pending since the last claim, floored.
	Gold int64 `json:"gold"`
	// Hours and Minutes split the elapsed time for display.
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	// RatePerHour is the base rate before boost multipliers.
	RatePerHour float64 `json:"rate_per_hour"`
}

// CalculateFarmAccrual computes pending GOLD from owned NFTs, active
// boosts and elapsed time since the last claim. now is injected so tests
// can use fixed time. Zero NFTs yields a zero accrual, not an error;
// negative elapsed time (clock skew) clamps to zero.
func CalculateFarmAccrual(
	nfts []domain.NFTInstance,
	boosts []domain.BoostInstance,
	lastClaimedAt time.Time,
	baseMultiplier float64,
	now time.Time,
) FarmAccrual {
	var perHour int64
	for _, nft := range nfts {
		if nft.Template != nil {
			perHour += nft.Template.GoldPerHour
		}
	}
	baseRate := baseMultiplier * float64(perHour)

	activeMultiplier := 1.0
	for _, boost := range boosts {
		if boost.Active(now) && boost.Template != nil {
			activeMultiplier *= boost.Template.Multiplier
		}
	}

	elapsed := now.Sub(lastClaimedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	elapsedHours := elapsed.Hours()

	return FarmAccrual{
		Gold:        int64(math.Floor(baseRate * activeMultiplier * elapsedHours)),
		Hours:       int(elapsed / time.Hour),
		Minutes:     int(elapsed % time.Hour / time.Minute),
		RatePerHour: baseRate,
	}
}
