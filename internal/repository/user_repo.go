package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whoiscaerus/traderank/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// ListActiveUsersWithTenure returns the creation timestamp of every active
// user. This is the identity/tenure snapshot for one computation pass; a user
// absent from it cannot be scored.
func (r *UserRepo) ListActiveUsersWithTenure(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, created_at
		FROM users
		WHERE deactivated_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var createdAt time.Time
		if err := rows.Scan(&id, &createdAt); err != nil {
			return nil, err
		}
		out[id] = createdAt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStats returns aggregate statistics across users, endorsements and scores.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deactivated_at IS NULL) AS total_users,
			(SELECT COUNT(*) FROM trust_scores)                       AS scored_users,
			(SELECT COUNT(*) FROM endorsements WHERE revoked_at IS NULL) AS active_endorsements,
			(SELECT COALESCE(AVG(score), 0) FROM trust_scores)        AS average_score`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.ScoredUsers,
		&stats.ActiveEndorsements, &stats.AverageScore,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT tier, COUNT(*)
		FROM trust_scores
		GROUP BY tier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TierDistribution = make(map[model.Tier]int, len(model.Tiers))
	for _, t := range model.Tiers {
		stats.TierDistribution[t] = 0
	}
	for rows.Next() {
		var tier model.Tier
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		stats.TierDistribution[tier] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}
