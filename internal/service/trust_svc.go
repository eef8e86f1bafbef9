package service

import (
	"math"
	"time"

	"github.com/whoiscaerus/traderank/internal/graph"
	"github.com/whoiscaerus/traderank/internal/model"
)

// AlgorithmVersion is recorded in every trust_calculation_logs row. Bump on
// any change to the scoring formulas.
const AlgorithmVersion = "1.0.0"

const (
	performanceWeight = 0.50
	tenureWeight      = 0.20
	endorsementWeight = 0.30

	// Performance sub-weights
	winRateWeight      = 0.50
	sharpeWeight       = 0.30
	profitFactorWeight = 0.20

	// Full tenure factor after one year
	tenureDaysMax = 365.0

	// Tier thresholds on the composite score
	goldThreshold   = 75.0
	silverThreshold = 50.0
)

// TrustService computes the three component scores and the composite trust
// score. All methods are pure: no I/O, no shared state.
type TrustService struct{}

func NewTrustService() *TrustService {
	return &TrustService{}
}

// PerformanceScore converts trading metrics into a 0-100 component:
//
//	win_component    = max(0, (win_rate - 0.5) * 500), capped at 100, weight 0.5
//	sharpe_component = sharpe_ratio * 50,              capped at 100, weight 0.3
//	profit_component = max(0, (profit_factor-1) * 50), capped at 100, weight 0.2
func (s *TrustService) PerformanceScore(m model.PerformanceMetrics) float64 {
	win := clamp01to100(math.Max(0, (m.WinRate-0.5)*500))
	sharpe := clamp01to100(m.SharpeRatio * 50)
	profit := clamp01to100(math.Max(0, (m.ProfitFactor-1.0)*50))

	score := win*winRateWeight + sharpe*sharpeWeight + profit*profitFactorWeight
	return clamp01to100(score)
}

// TenureScore is a linear ramp from 0 at account creation to 100 at one year.
func (s *TrustService) TenureScore(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	if days < 0 {
		return 0
	}
	return clamp01to100(days / tenureDaysMax * 100)
}

// EndorsementScore converts a user's capped incoming endorsement weight into a
// 0-100 component, normalized by the maximum conceivable weight for the
// population: populationSize * MaxEdgeWeight. A user with zero incoming edges
// scores 0.
func (s *TrustService) EndorsementScore(g *graph.Graph, userID string, populationSize int) float64 {
	if populationSize <= 0 {
		return 0
	}
	sum := g.IncomingWeight(userID)
	if sum == 0 {
		return 0
	}
	return clamp01to100(sum / (float64(populationSize) * graph.MaxEdgeWeight) * 100)
}

// Composite combines the three components with the fixed 50/20/30 weighting,
// rounded to two decimals and clamped to [0, 100].
func (s *TrustService) Composite(performance, tenure, endorsement float64) float64 {
	score := performance*performanceWeight + tenure*tenureWeight + endorsement*endorsementWeight
	return clamp01to100(round2(score))
}

// TierFor classifies a composite score: gold >= 75, silver >= 50, else bronze.
func (s *TrustService) TierFor(score float64) model.Tier {
	switch {
	case score >= goldThreshold:
		return model.TierGold
	case score >= silverThreshold:
		return model.TierSilver
	default:
		return model.TierBronze
	}
}

func clamp01to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
