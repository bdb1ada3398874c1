package economy

import (
	"errors"
	"testing"
)

func TestUsdCentsToGold(t *testing.T) {
	// 10 USD at 10 gold per dollar
	gold, err := UsdCentsToGold(1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gold != 100 {
		t.Fatalf("expected 100 gold, got %d", gold)
	}

	// fractional result floors
	gold, err = UsdCentsToGold(199, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gold != 19 {
		t.Fatalf("expected 19 gold, got %d", gold)
	}

	// zero is fine
	gold, err = UsdCentsToGold(0, 10)
	if err != nil || gold != 0 {
		t.Fatalf("expected 0 gold, got %d err %v", gold, err)
	}
}

func TestUsdCentsToGoldBadRate(t *testing.T) {
	if _, err := UsdCentsToGold(1000, 0); !errors.Is(err, ErrNonPositiveRate) {
		t.Fatalf("expected ErrNonPositiveRate, got %v", err)
	}
	if _, err := UsdCentsToGold(1000, -5); !errors.Is(err, ErrNonPositiveRate) {
		t.Fatalf("expected ErrNonPositiveRate, got %v", err)
	}
}

func TestGoldToUsdCents(t *testing.T) {
	// 100 gold at 20 gold per dollar = 5 USD
	cents, err := GoldToUsdCents(100, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cents != 500 {
		t.Fatalf("expected 500 cents, got %d", cents)
	}

	// rounds to the nearest cent
	cents, err = GoldToUsdCents(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cents != 33 {
		t.Fatalf("expected 33 cents, got %d", cents)
	}

	if _, err := GoldToUsdCents(100, 0); !errors.Is(err, ErrNonPositiveRate) {
		t.Fatalf("expected ErrNonPositiveRate, got %v", err)
	}
}

func TestDollarsToCents(t *testing.T) {
	if c := DollarsToCents(9.99); c != 999 {
		t.Fatalf("expected 999, got %d", c)
	}
	if c := DollarsToCents(10); c != 1000 {
		t.Fatalf("expected 1000, got %d", c)
	}
	// float artifacts round away
	if c := DollarsToCents(0.1 + 0.2); c != 30 {
		t.Fatalf("expected 30, got %d", c)
	}
}
