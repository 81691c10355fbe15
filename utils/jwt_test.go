package utils

import (
	"strings"
	"testing"
	"time"

	"blogapi/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Email: "a@x.com", IsAdmin: true}

	token, err := m.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@x.com" || !claims.IsAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected one hour lifetime, got %s", got)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateJWT(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenManager("two", time.Hour).ValidateJWT(token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateJWT(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateJWT(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestValidateJWTRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenManager("secret", time.Hour).ValidateJWT(token); err == nil {
		t.Fatalf("expected unsigned token to be rejected")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := NewTokenManager("secret", time.Hour).ValidateJWT(strings.Repeat("x", 20)); err == nil {
		t.Fatalf("expected malformed token error")
	}
}
