package model

import "time"

// Endorsement is a directed, weighted claim that one user vouches for another.
// Endorsements are never physically deleted; revocation sets RevokedAt.
type Endorsement struct {
	ID          string     `json:"id"`
	EndorserID  string     `json:"endorserId"`
	EndorseeID  string     `json:"endorseeId"`
	Weight      float64    `json:"weight"`
	Reason      *string    `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	RevokedAt   *time.Time `json:"-"`
}

// Active reports whether the endorsement participates in scoring.
func (e *Endorsement) Active() bool {
	return e.RevokedAt == nil
}

// PerformanceMetrics holds the trading performance signals supplied by the
// external analytics provider for one user.
type PerformanceMetrics struct {
	WinRate      float64 `json:"winRate"`
	SharpeRatio  float64 `json:"sharpeRatio"`
	ProfitFactor float64 `json:"profitFactor"`
}

// Neutral defaults applied when the analytics provider has no data for a user.
const (
	DefaultWinRate      = 0.5
	DefaultSharpeRatio  = 0.0
	DefaultProfitFactor = 1.0
)

// NeutralMetrics returns the documented defaults for users without
// performance data.
func NeutralMetrics() PerformanceMetrics {
	return PerformanceMetrics{
		WinRate:      DefaultWinRate,
		SharpeRatio:  DefaultSharpeRatio,
		ProfitFactor: DefaultProfitFactor,
	}
}
