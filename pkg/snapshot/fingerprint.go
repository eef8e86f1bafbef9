package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/whoiscaerus/traderank/internal/model"
)

// Fingerprint computes a deterministic SHA256 digest of one computation pass's
// input snapshot: the active endorsements, the tenure map, and the performance
// metrics. Two passes over identical inputs always produce identical
// fingerprints, which makes the engine's determinism guarantee checkable from
// the audit log alone.
func Fingerprint(
	endorsements []model.Endorsement,
	tenure map[string]time.Time,
	metrics map[string]model.PerformanceMetrics,
) string {
	lines := make([]string, 0, len(endorsements)+len(tenure)+len(metrics))

	for i := range endorsements {
		e := &endorsements[i]
		if !e.Active() {
			continue
		}
		lines = append(lines, fmt.Sprintf("e|%s|%s|%.10f", e.EndorserID, e.EndorseeID, e.Weight))
	}
	for id, createdAt := range tenure {
		lines = append(lines, fmt.Sprintf("u|%s|%d", id, createdAt.UTC().Unix()))
	}
	for id, m := range metrics {
		lines = append(lines, fmt.Sprintf("m|%s|%.10f|%.10f|%.10f", id, m.WinRate, m.SharpeRatio, m.ProfitFactor))
	}

	sort.Strings(lines)

	h := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 characters of a fingerprint, for compact
// audit-log notes and log fields.
func Short(fingerprint string) string {
	if len(fingerprint) <= 12 {
		return fingerprint
	}
	return fingerprint[:12]
}
