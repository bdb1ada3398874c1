package service

import (
	"testing"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
}

func TestJWTRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	initTestJWT(t)

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
	if _, err := ParseJWT(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestAdminJWTSeparateFromUserJWT(t *testing.T) {
	initTestJWT(t)

	adminToken, err := GenerateAdminJWT()
	if err != nil {
		t.Fatalf("generate admin: %v", err)
	}
	if err := ParseAdminJWT(adminToken); err != nil {
		t.Fatalf("parse admin: %v", err)
	}

	// a user token must not pass admin validation
	userToken, err := GenerateJWT(1)
	if err != nil {
		t.Fatalf("generate user: %v", err)
	}
	if err := ParseAdminJWT(userToken); err == nil {
		t.Fatal("user token accepted as admin")
	}

	// an admin token carries no user identity
	if _, err := ParseJWT(adminToken); err == nil {
		t.Fatal("admin token accepted as user")
	}
}
