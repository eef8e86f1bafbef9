package snapshot

import (
	"testing"
	"time"

	"github.com/whoiscaerus/traderank/internal/model"
)

func fixtureInputs() ([]model.Endorsement, map[string]time.Time, map[string]model.PerformanceMetrics) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	endorsements := []model.Endorsement{
		{EndorserID: "alice", EndorseeID: "bob", Weight: 0.4, CreatedAt: created},
		{EndorserID: "carol", EndorseeID: "bob", Weight: 0.6, CreatedAt: created},
	}
	tenure := map[string]time.Time{
		"alice": created,
		"bob":   created.AddDate(0, -3, 0),
	}
	metrics := map[string]model.PerformanceMetrics{
		"bob": {WinRate: 0.65, SharpeRatio: 1.5, ProfitFactor: 2.0},
	}
	return endorsements, tenure, metrics
}

func TestFingerprint_Deterministic(t *testing.T) {
	e, u, m := fixtureInputs()

	first := Fingerprint(e, u, m)
	second := Fingerprint(e, u, m)

	if first != second {
		t.Errorf("fingerprints differ across runs: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(first))
	}
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	e, u, m := fixtureInputs()
	want := Fingerprint(e, u, m)

	// Reverse the endorsement slice; map iteration order is already random.
	reversed := []model.Endorsement{e[1], e[0]}
	if got := Fingerprint(reversed, u, m); got != want {
		t.Errorf("fingerprint depends on input order: %s vs %s", got, want)
	}
}

func TestFingerprint_SensitiveToChange(t *testing.T) {
	e, u, m := fixtureInputs()
	want := Fingerprint(e, u, m)

	e[0].Weight = 0.41
	if got := Fingerprint(e, u, m); got == want {
		t.Error("fingerprint unchanged after weight change")
	}
}

func TestFingerprint_IgnoresRevoked(t *testing.T) {
	e, u, m := fixtureInputs()
	want := Fingerprint(e, u, m)

	revoked := time.Now()
	withRevoked := append(e, model.Endorsement{
		EndorserID: "mallory", EndorseeID: "bob", Weight: 0.5, RevokedAt: &revoked,
	})
	if got := Fingerprint(withRevoked, u, m); got != want {
		t.Error("revoked endorsement changed the fingerprint")
	}
}

func TestShort(t *testing.T) {
	if got := Short("abcdef0123456789"); got != "abcdef012345" {
		t.Errorf("Short() = %q, want %q", got, "abcdef012345")
	}
	if got := Short("abc"); got != "abc" {
		t.Errorf("Short() = %q, want %q", got, "abc")
	}
}
