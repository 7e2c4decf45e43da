package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	signed, claims, err := GenerateToken(42, time.Minute, "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if claims.TokenID == "" {
		t.Error("empty jti claim")
	}

	parsed, err := ValidateToken(signed, "secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("sub = %d, want 42", parsed.UserID)
	}
	if parsed.TokenID != claims.TokenID {
		t.Errorf("jti = %q, want %q", parsed.TokenID, claims.TokenID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signed, _, err := GenerateToken(1, time.Minute, "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(signed, "other"); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	signed, _, err := GenerateToken(1, -time.Minute, "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(signed, "secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}
