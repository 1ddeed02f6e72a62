package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestValidID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{uuid.NewString(), true},
		{"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a", true},
		{"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2", false},
		{"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a'", false},
		{"abc", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidID(c.id); got != c.want {
			t.Errorf("ValidID(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestDec(t *testing.T) {
	if got := Dec("12.50"); !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("Dec = %s", got)
	}
	if got := Dec("nope"); !got.IsZero() {
		t.Fatalf("Dec(malformed) = %s, want 0", got)
	}
}
