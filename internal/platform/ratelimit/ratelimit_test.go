package ratelimit

import (
	"net/http/httptest"
	"testing"
)

func TestAllowPerIP(t *testing.T) {
	p := PerHour(2)

	if !p.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if !p.Allow("10.0.0.1") {
		t.Fatal("second request should pass")
	}
	if p.Allow("10.0.0.1") {
		t.Fatal("third request should be denied")
	}
	if !p.Allow("10.0.0.2") {
		t.Fatal("another ip must have its own bucket")
	}
}

func TestAllowNChargesFullCost(t *testing.T) {
	p := PerHour(10)

	if !p.AllowN("10.0.0.1", 7) {
		t.Fatal("a 7-token request should pass with 10 available")
	}
	if p.AllowN("10.0.0.1", 7) {
		t.Fatal("a second 7-token request should be denied with 3 left")
	}
	if !p.AllowN("10.0.0.1", 3) {
		t.Fatal("the remaining 3 tokens should still be spendable")
	}
}

func TestAllowNClampsOversizedCost(t *testing.T) {
	p := PerHour(5)

	// Costs above the burst drain the whole budget rather than being
	// unpayable forever.
	if !p.AllowN("10.0.0.1", 100) {
		t.Fatal("an oversized request should spend the full budget")
	}
	if p.Allow("10.0.0.1") {
		t.Fatal("the budget should be empty afterwards")
	}
}

func TestAllowNTreatsNonPositiveAsOne(t *testing.T) {
	p := PerHour(1)

	if !p.AllowN("10.0.0.1", 0) {
		t.Fatal("a zero-cost request should charge one token")
	}
	if p.Allow("10.0.0.1") {
		t.Fatal("that token should be gone")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:61324"
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Fatalf("expected the host part, got %q", got)
	}

	r.RemoteAddr = "203.0.113.7"
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Fatalf("expected the raw address back, got %q", got)
	}
}
