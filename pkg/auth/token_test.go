package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

func tokenTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "token-test-secret",
		Issuer:            "agencydesk-test",
		ExpirationMinutes: 15,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := tokenTestConfig()
	employeeID := uuid.New()
	payload := AccessTokenPayload{
		UserID:     uuid.New(),
		Role:       enums.UserRoleEmployee,
		EmployeeID: &employeeID,
		Name:       "Sara Adel",
		JTI:        "session-1",
	}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("expected user id %s got %s", payload.UserID, claims.UserID)
	}
	if claims.Role != enums.UserRoleEmployee {
		t.Fatalf("expected employee role got %s", claims.Role)
	}
	if claims.EmployeeID == nil || *claims.EmployeeID != employeeID {
		t.Fatalf("expected employee id %s got %v", employeeID, claims.EmployeeID)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1 got %s", claims.ID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := tokenTestConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := tokenTestConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
		JTI:    "expired-session",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expiry validation to fail")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("lenient parse: %v", err)
	}
	if claims.ID != "expired-session" {
		t.Fatalf("expected jti recoverable from expired token, got %s", claims.ID)
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	if _, err := MintAccessToken(tokenTestConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("superuser"),
	}); err == nil {
		t.Fatal("expected role validation to fail")
	}
}
