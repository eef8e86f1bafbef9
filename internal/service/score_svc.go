package service

import (
	"context"

	"github.com/whoiscaerus/traderank/internal/model"
	"github.com/whoiscaerus/traderank/internal/repository"
)

// ScoreService is the read path over the score store and audit log.
type ScoreService struct {
	repo *repository.ScoreRepo
}

func NewScoreService(repo *repository.ScoreRepo) *ScoreService {
	return &ScoreService{repo: repo}
}

// GetCurrentScore returns a user's current score with its full component
// breakdown. Propagates pgx.ErrNoRows when the user has never been scored.
func (s *ScoreService) GetCurrentScore(ctx context.Context, userID string) (*model.ScoreResponse, error) {
	sc, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.ScoreResponse{
		UserID:               sc.UserID,
		Score:                sc.Score,
		Tier:                 sc.Tier,
		Percentile:           sc.Percentile,
		PerformanceComponent: sc.PerformanceComponent,
		TenureComponent:      sc.TenureComponent,
		EndorsementComponent: sc.EndorsementComponent,
		CalculatedAt:         sc.CalculatedAt,
		ValidUntil:           sc.ValidUntil,
	}, nil
}

// Leaderboard returns the top-scored users in rank order.
func (s *ScoreService) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	scores, err := s.repo.GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(scores))
	for i := range scores {
		entries[i] = model.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     scores[i].UserID,
			Score:      scores[i].Score,
			Tier:       scores[i].Tier,
			Percentile: scores[i].Percentile,
		}
	}
	return entries, nil
}

// History returns a user's most recent calculation log entries, newest first.
func (s *ScoreService) History(ctx context.Context, userID string, limit int) ([]model.TrustCalculationLog, error) {
	return s.repo.ListLogsByUser(ctx, userID, limit)
}
