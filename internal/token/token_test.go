package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/token"
)

const testKey = "token-test-secret-at-least-32-ch!"

func TestIssueVerify_Roundtrip(t *testing.T) {
	m := token.NewManager([]byte(testKey), time.Hour)

	signed, err := m.Issue("user-1", "ann@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want %q", userID, "user-1")
	}
}

func TestVerify_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "user-1",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = token.NewManager([]byte(testKey), time.Hour).Verify(signed)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	m := token.NewManager([]byte(testKey), time.Hour)
	signed, err := m.Issue("user-1", "ann@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := token.NewManager([]byte("a-different-32-char-signing-key!!"), time.Hour)
	if _, err := other.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := token.NewManager([]byte(testKey), time.Hour).Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_NotAToken(t *testing.T) {
	if _, err := token.NewManager([]byte(testKey), time.Hour).Verify("not.a.jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
