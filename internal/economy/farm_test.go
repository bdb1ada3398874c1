package economy

import (
	"testing"
	"time"

	"aurora_backend/internal/domain"
)

func nftWithRate(gph int64) domain.NFTInstance {
	return domain.NFTInstance{Template: &domain.NFTTemplate{GoldPerHour: gph}}
}

func boostWith(multiplier float64, expiresAt time.Time) domain.BoostInstance {
	return domain.BoostInstance{
		ExpiresAt: expiresAt,
		Template:  &domain.BoostTemplate{Multiplier: multiplier},
	}
}

func TestCalculateFarmAccrualBasic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-2 * time.Hour)

	farm := CalculateFarmAccrual([]domain.NFTInstance{nftWithRate(10)}, nil, last, 1, now)

	if farm.Gold != 20 {
		t.Fatalf("expected 20 gold, got %d", farm.Gold)
	}
	if farm.Hours != 2 || farm.Minutes != 0 {
		t.Fatalf("expected 2h0m, got %dh%dm", farm.Hours, farm.Minutes)
	}
	if farm.RatePerHour != 10 {
		t.Fatalf("expected rate 10, got %v", farm.RatePerHour)
	}
}

func TestCalculateFarmAccrualNoNFTs(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	farm := CalculateFarmAccrual(nil, nil, now.Add(-5*time.Hour), 1, now)

	if farm.Gold != 0 {
		t.Fatalf("expected 0 gold, got %d", farm.Gold)
	}
	if farm.Hours != 5 {
		t.Fatalf("expected 5 hours elapsed, got %d", farm.Hours)
	}
}

func TestCalculateFarmAccrualClockSkew(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// last claim in the future; clamps to zero instead of going negative
	farm := CalculateFarmAccrual([]domain.NFTInstance{nftWithRate(10)}, nil, now.Add(time.Hour), 1, now)

	if farm.Gold != 0 || farm.Hours != 0 || farm.Minutes != 0 {
		t.Fatalf("expected zero accrual, got %+v", farm)
	}
}

func TestCalculateFarmAccrualBoosts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Hour)
	nfts := []domain.NFTInstance{nftWithRate(10)}

	// active boosts multiply together
	boosts := []domain.BoostInstance{
		boostWith(2, now.Add(time.Hour)),
		boostWith(1.5, now.Add(time.Hour)),
	}
	farm := CalculateFarmAccrual(nfts, boosts, last, 1, now)
	if farm.Gold != 30 {
		t.Fatalf("expected 30 gold with stacked boosts, got %d", farm.Gold)
	}

	// expired boost contributes nothing
	expired := []domain.BoostInstance{boostWith(2, now.Add(-time.Minute))}
	farm = CalculateFarmAccrual(nfts, expired, last, 1, now)
	if farm.Gold != 10 {
		t.Fatalf("expected 10 gold with expired boost, got %d", farm.Gold)
	}
}

func TestCalculateFarmAccrualBaseMultiplier(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	farm := CalculateFarmAccrual([]domain.NFTInstance{nftWithRate(10)}, nil, now.Add(-time.Hour), 1.5, now)

	if farm.Gold != 15 {
		t.Fatalf("expected 15 gold, got %d", farm.Gold)
	}
	if farm.RatePerHour != 15 {
		t.Fatalf("expected rate 15, got %v", farm.RatePerHour)
	}
}

func TestCalculateFarmAccrualFloors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	// 10 gph over 30 minutes = 5.0, over 33 minutes = 5.5 -> floors to 5
	farm := CalculateFarmAccrual([]domain.NFTInstance{nftWithRate(10)}, nil, now.Add(-33*time.Minute), 1, now)

	if farm.Gold != 5 {
		t.Fatalf("expected 5 gold, got %d", farm.Gold)
	}
	if farm.Hours != 0 || farm.Minutes != 33 {
		t.Fatalf("expected 0h33m, got %dh%dm", farm.Hours, farm.Minutes)
	}
}
