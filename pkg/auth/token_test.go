package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/pkg/config"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret!",
		Issuer:            "campusmarket-test",
		ExpirationMinutes: 15,
	}
}

func testPayload() AccessTokenPayload {
	return AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "thabo@campus.example",
		Role:   enums.UserRoleBuyer,
		JTI:    "access-id-1",
	}
}

func TestMintAndParse(t *testing.T) {
	cfg := testConfig()
	payload := testPayload()

	token, err := MintAccessToken(cfg, time.Now().UTC(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != payload.UserID || claims.Email != payload.Email || claims.Role != payload.Role {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID != "access-id-1" {
		t.Fatalf("jti mismatch: %q", claims.ID)
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	payload := testPayload()
	payload.Role = enums.UserRole("SUPERUSER")

	if _, err := MintAccessToken(testConfig(), time.Now().UTC(), payload); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestMintGeneratesJTIWhenMissing(t *testing.T) {
	payload := testPayload()
	payload.JTI = ""

	token, err := MintAccessToken(testConfig(), time.Now().UTC(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := ParseAccessToken(testConfig(), token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(testConfig(), time.Now().UTC(), testPayload())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testConfig()
	other.Secret = "a-completely-different-secret-value"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := MintAccessToken(testConfig(), time.Now().UTC(), testPayload())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testConfig()
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestExpiredTokenOnlyParsesWithAllowExpired(t *testing.T) {
	cfg := testConfig()
	token, err := MintAccessToken(cfg, time.Now().UTC().Add(-time.Hour), testPayload())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expired token must fail strict parse")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("allow-expired parse: %v", err)
	}
	if claims.ID != "access-id-1" {
		t.Fatalf("jti mismatch: %q", claims.ID)
	}
}
