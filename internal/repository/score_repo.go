package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whoiscaerus/traderank/internal/model"
)

// ScoreUpsert is one user's recomputation result plus the audit context
// recorded alongside it.
type ScoreUpsert struct {
	Score      model.TrustScore
	GraphNodes int
	GraphEdges int
	Notes      string
}

// ScoreRepo owns the trust_scores table (one row per user, atomically
// replaced) and the append-only trust_calculation_logs table.
type ScoreRepo struct {
	pool *pgxpool.Pool
}

func NewScoreRepo(pool *pgxpool.Pool) *ScoreRepo {
	return &ScoreRepo{pool: pool}
}

// GetByUserID returns a user's current trust score.
// Returns pgx.ErrNoRows if the user has never been scored.
func (r *ScoreRepo) GetByUserID(ctx context.Context, userID string) (*model.TrustScore, error) {
	query := `
		SELECT user_id, score, performance_component, tenure_component,
		       endorsement_component, tier, percentile, calculated_at, valid_until
		FROM trust_scores
		WHERE user_id = $1`

	var s model.TrustScore
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.Score, &s.PerformanceComponent, &s.TenureComponent,
		&s.EndorsementComponent, &s.Tier, &s.Percentile, &s.CalculatedAt, &s.ValidUntil,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetTop returns the highest-scored users, ties broken by user_id for a
// stable ordering.
func (r *ScoreRepo) GetTop(ctx context.Context, limit int) ([]model.TrustScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, score, performance_component, tenure_component,
		       endorsement_component, tier, percentile, calculated_at, valid_until
		FROM trust_scores
		ORDER BY score DESC, user_id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TrustScore
	for rows.Next() {
		var s model.TrustScore
		if err := rows.Scan(&s.UserID, &s.Score, &s.PerformanceComponent, &s.TenureComponent,
			&s.EndorsementComponent, &s.Tier, &s.Percentile, &s.CalculatedAt, &s.ValidUntil); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLogsByUser returns a user's most recent calculation log entries,
// newest first.
func (r *ScoreRepo) ListLogsByUser(ctx context.Context, userID string, limit int) ([]model.TrustCalculationLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, previous_score, new_score, input_graph_nodes,
		       input_graph_edges, algorithm_version, calculated_at, notes
		FROM trust_calculation_logs
		WHERE user_id = $1
		ORDER BY calculated_at DESC, id
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TrustCalculationLog
	for rows.Next() {
		var l model.TrustCalculationLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.PreviousScore, &l.NewScore,
			&l.InputGraphNodes, &l.InputGraphEdges, &l.AlgorithmVersion,
			&l.CalculatedAt, &l.Notes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceAll commits an entire pass's results as one transaction. For every
// user it captures the previous score, atomically upserts the trust_scores
// row, and appends one audit log entry. Any failure rolls back the whole
// pass; nothing is partially written.
func (r *ScoreRepo) ReplaceAll(ctx context.Context, upserts []ScoreUpsert, algorithmVersion string) error {
	if len(upserts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range upserts {
		if err := r.replaceInTx(ctx, tx, &upserts[i], algorithmVersion); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceOne commits a single user's result in its own transaction.
func (r *ScoreRepo) ReplaceOne(ctx context.Context, u ScoreUpsert, algorithmVersion string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.replaceInTx(ctx, tx, &u, algorithmVersion); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ScoreRepo) replaceInTx(ctx context.Context, tx pgx.Tx, u *ScoreUpsert, algorithmVersion string) error {
	s := &u.Score

	// Capture the previous score for the audit trail. NULL on first
	// computation.
	var previous *float64
	err := tx.QueryRow(ctx, `SELECT score FROM trust_scores WHERE user_id = $1`, s.UserID).Scan(&previous)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}

	// Atomic replace: a single upsert keyed by user_id, never a delete
	// followed by an insert, so there is no window with no row.
	_, err = tx.Exec(ctx, `
		INSERT INTO trust_scores (user_id, score, performance_component, tenure_component,
		                          endorsement_component, tier, percentile, calculated_at, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE
		SET score = EXCLUDED.score,
		    performance_component = EXCLUDED.performance_component,
		    tenure_component = EXCLUDED.tenure_component,
		    endorsement_component = EXCLUDED.endorsement_component,
		    tier = EXCLUDED.tier,
		    percentile = EXCLUDED.percentile,
		    calculated_at = EXCLUDED.calculated_at,
		    valid_until = EXCLUDED.valid_until`,
		s.UserID, s.Score, s.PerformanceComponent, s.TenureComponent,
		s.EndorsementComponent, s.Tier, s.Percentile, s.CalculatedAt, s.ValidUntil)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO trust_calculation_logs (id, user_id, previous_score, new_score,
		                                    input_graph_nodes, input_graph_edges,
		                                    algorithm_version, calculated_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), s.UserID, previous, s.Score,
		u.GraphNodes, u.GraphEdges, algorithmVersion, s.CalculatedAt, u.Notes)
	return err
}
