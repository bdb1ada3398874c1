package service

import (
	"testing"
	"time"
)

func TestSignAdTokenDeterministic(t *testing.T) {
	sig1 := SignAdToken("token-abc", "secret")
	sig2 := SignAdToken("token-abc", "secret")
	if sig1 != sig2 {
		t.Fatal("same token+secret must produce the same signature")
	}
	if sig1 == "" {
		t.Fatal("signature must not be empty")
	}

	if SignAdToken("token-abc", "other-secret") == sig1 {
		t.Fatal("different secrets must produce different signatures")
	}
	if SignAdToken("token-xyz", "secret") == sig1 {
		t.Fatal("different tokens must produce different signatures")
	}
}

func TestVerifyAdToken(t *testing.T) {
	token := "4f5c9a10-1234-5678-9abc-def012345678"
	secret := "aurora-secret-token"
	sig := SignAdToken(token, secret)

	if !VerifyAdToken(token, sig, secret) {
		t.Fatal("valid signature rejected")
	}
	if VerifyAdToken(token, sig, "wrong-secret") {
		t.Fatal("signature accepted under wrong secret")
	}
	if VerifyAdToken("other-token", sig, secret) {
		t.Fatal("signature accepted for wrong token")
	}
	if VerifyAdToken(token, "deadbeef", secret) {
		t.Fatal("bogus signature accepted")
	}
	if VerifyAdToken(token, "", secret) {
		t.Fatal("empty signature accepted")
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 3, 1, 17, 45, 12, 999, time.UTC)
	sod := startOfDay(at)
	if sod.Hour() != 0 || sod.Minute() != 0 || sod.Second() != 0 || sod.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", sod)
	}
	if sod.Day() != at.Day() || sod.Month() != at.Month() || sod.Year() != at.Year() {
		t.Fatalf("start of day changed the date: %v", sod)
	}
}
