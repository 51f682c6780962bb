package utils

import (
	"testing"
	"time"
)

const sessionSecret = "unit-test-session-secret-0123456789abcdef"

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager(sessionSecret, time.Hour)

	token, err := m.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %s", claims.Username)
	}
	if claims.JTI == "" {
		t.Error("expected a non-empty jti")
	}
}

func TestSessionUniqueJTI(t *testing.T) {
	m := NewSessionManager(sessionSecret, time.Hour)

	a, _ := m.Issue(1, "a")
	b, _ := m.Issue(1, "a")

	ca, err := m.Validate(a)
	if err != nil {
		t.Fatalf("Validate(a) failed: %v", err)
	}
	cb, err := m.Validate(b)
	if err != nil {
		t.Fatalf("Validate(b) failed: %v", err)
	}

	if ca.JTI == cb.JTI {
		t.Error("expected distinct jti per issued session")
	}
}

func TestSessionExpired(t *testing.T) {
	m := NewSessionManager(sessionSecret, -time.Minute)

	token, err := m.Issue(1, "a")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Validate(token); err == nil {
		t.Error("expected expired token to fail validation")
	}
}

func TestSessionWrongSecret(t *testing.T) {
	m := NewSessionManager(sessionSecret, time.Hour)
	other := NewSessionManager("another-session-secret-0123456789abcdef", time.Hour)

	token, _ := m.Issue(1, "a")
	if _, err := other.Validate(token); err == nil {
		t.Error("expected token signed with a different secret to fail")
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	if err != nil {
		t.Fatalf("GenerateVerificationCode failed: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("expected 6-digit code, got %q", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Errorf("expected numeric code, got %q", code)
		}
	}
}
