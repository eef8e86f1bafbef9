package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whoiscaerus/traderank/internal/model"
)

type EndorsementRepo struct {
	pool *pgxpool.Pool
}

func NewEndorsementRepo(pool *pgxpool.Pool) *EndorsementRepo {
	return &EndorsementRepo{pool: pool}
}

// ListActive returns all non-revoked endorsements. The result is the
// endorsement snapshot for one computation pass.
func (r *EndorsementRepo) ListActive(ctx context.Context) ([]model.Endorsement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, endorser_id, endorsee_id, weight, reason, created_at, revoked_at
		FROM endorsements
		WHERE revoked_at IS NULL
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Endorsement
	for rows.Next() {
		var e model.Endorsement
		if err := rows.Scan(&e.ID, &e.EndorserID, &e.EndorseeID, &e.Weight,
			&e.Reason, &e.CreatedAt, &e.RevokedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountActive returns the number of non-revoked endorsements.
func (r *EndorsementRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM endorsements WHERE revoked_at IS NULL`).Scan(&n)
	return n, err
}
