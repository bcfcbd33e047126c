package jwthandling

import (
	"testing"
	"time"
)

func TestAdminUserTokenRoundTrip(t *testing.T) {
	token, err := GenerateNewAdminUserToken(time.Minute, "doorchief", "test-sign-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, valid, err := ValidateAdminUserToken(token, "test-sign-key")
	if err != nil || !valid {
		t.Fatalf("expected valid token, got valid=%v err=%v", valid, err)
	}
	if claims.Username != "doorchief" {
		t.Errorf("unexpected username in claims: %s", claims.Username)
	}
}

func TestAdminUserTokenWrongKey(t *testing.T) {
	token, err := GenerateNewAdminUserToken(time.Minute, "doorchief", "test-sign-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, valid, err := ValidateAdminUserToken(token, "other-key")
	if valid || err == nil {
		t.Errorf("expected invalid token with wrong key, got valid=%v err=%v", valid, err)
	}
}

func TestAdminUserTokenExpired(t *testing.T) {
	token, err := GenerateNewAdminUserToken(-time.Minute, "doorchief", "test-sign-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, valid, _ := ValidateAdminUserToken(token, "test-sign-key")
	if valid {
		t.Error("expected expired token to be invalid")
	}
}
