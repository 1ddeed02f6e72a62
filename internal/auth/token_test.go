package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	tk := NewTokens("secret", time.Hour)
	raw, err := tk.Issue("u1", RoleStaff)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tk.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != RoleStaff {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParseRejectsWrongSecretAndExpired(t *testing.T) {
	issued := NewTokens("secret", time.Hour)
	raw, _ := issued.Issue("u1", RoleCustomer)

	if _, err := NewTokens("other", time.Hour).Parse(raw); err != ErrInvalidToken {
		t.Fatalf("wrong secret: err=%v", err)
	}

	late := NewTokens("secret", time.Hour)
	late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := late.Parse(raw); err != ErrInvalidToken {
		t.Fatalf("expired: err=%v", err)
	}

	if _, err := issued.Parse("garbage"); err != ErrInvalidToken {
		t.Fatalf("garbage: err=%v", err)
	}
}

func TestRoles(t *testing.T) {
	if !RoleAdmin.IsStaff() || !RoleStaff.IsStaff() || RoleCustomer.IsStaff() {
		t.Fatalf("IsStaff mismatch")
	}
	if Role("chef").Valid() {
		t.Fatalf("unknown role must be invalid")
	}
}
