package tokens

import (
	"testing"
	"time"

	"github.com/Muskan6505/Local-helpHub/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour, nil)

	u := &models.User{ID: 42, Email: "maya@example.com", Name: "Maya"}
	tok, err := m.IssueAccess(u)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	claims, err := m.ParseAccess(tok)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "maya@example.com" || claims.Name != "Maya" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseAccessRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Minute, time.Hour, nil)
	verifier := NewManager("secret-b", time.Minute, time.Hour, nil)

	tok, err := issuer.IssueAccess(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := verifier.ParseAccess(tok); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseAccessRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour, nil)

	tok, err := m.IssueAccess(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := m.ParseAccess(tok); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour, nil)
	if _, err := m.ParseAccess("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
