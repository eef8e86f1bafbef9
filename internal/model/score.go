package model

import "time"

// Tier is the bronze/silver/gold classification derived from the composite score.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Tiers lists all tiers in ascending order. Used for stable iteration when
// reporting distributions.
var Tiers = []Tier{TierBronze, TierSilver, TierGold}

// TrustScore is the single current reputation record for a user. Exactly one
// row exists per user; it is atomically replaced on every recomputation.
type TrustScore struct {
	UserID               string    `json:"userId"`
	Score                float64   `json:"score"`
	PerformanceComponent float64   `json:"performanceComponent"`
	TenureComponent      float64   `json:"tenureComponent"`
	EndorsementComponent float64   `json:"endorsementComponent"`
	Tier                 Tier      `json:"tier"`
	Percentile           int       `json:"percentile"`
	CalculatedAt         time.Time `json:"calculatedAt"`
	ValidUntil           time.Time `json:"validUntil"`
}

// TrustCalculationLog is one immutable audit record of a recomputation event.
// Rows are append-only and never updated or deleted.
type TrustCalculationLog struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	PreviousScore    *float64  `json:"previousScore"`
	NewScore         float64   `json:"newScore"`
	InputGraphNodes  int       `json:"inputGraphNodes"`
	InputGraphEdges  int       `json:"inputGraphEdges"`
	AlgorithmVersion string    `json:"algorithmVersion"`
	CalculatedAt     time.Time `json:"calculatedAt"`
	Notes            string    `json:"notes,omitempty"`
}

// ScoreResponse is the API response for score lookups and single-user
// recomputation previews.
type ScoreResponse struct {
	UserID               string    `json:"userId"`
	Score                float64   `json:"score"`
	Tier                 Tier      `json:"tier"`
	Percentile           int       `json:"percentile"`
	PerformanceComponent float64   `json:"performanceComponent"`
	TenureComponent      float64   `json:"tenureComponent"`
	EndorsementComponent float64   `json:"endorsementComponent"`
	CalculatedAt         time.Time `json:"calculatedAt"`
	ValidUntil           time.Time `json:"validUntil"`
}

// RecomputeSummary is the API response after a full batch recomputation.
type RecomputeSummary struct {
	UsersScored      int          `json:"usersScored"`
	DurationMs       int64        `json:"durationMs"`
	TierDistribution map[Tier]int `json:"tierDistribution"`
}

// LeaderboardEntry is one row of the top-scores listing.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"userId"`
	Score      float64 `json:"score"`
	Tier       Tier    `json:"tier"`
	Percentile int     `json:"percentile"`
}

// StatsResponse is the API response for population statistics.
type StatsResponse struct {
	TotalUsers         int          `json:"totalUsers"`
	ScoredUsers        int          `json:"scoredUsers"`
	ActiveEndorsements int          `json:"activeEndorsements"`
	AverageScore       float64      `json:"averageScore"`
	TierDistribution   map[Tier]int `json:"tierDistribution"`
}
