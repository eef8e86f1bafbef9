package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/whoiscaerus/traderank/internal/analytics"
	"github.com/whoiscaerus/traderank/internal/graph"
	"github.com/whoiscaerus/traderank/internal/model"
	"github.com/whoiscaerus/traderank/internal/repository"
	"github.com/whoiscaerus/traderank/pkg/snapshot"
)

// ErrUserNotFound is returned when a recomputation targets a user with no
// tenure/identity record.
var ErrUserNotFound = errors.New("user not found")

// EndorsementSource supplies the active endorsement snapshot for a pass.
type EndorsementSource interface {
	ListActive(ctx context.Context) ([]model.Endorsement, error)
}

// UserSource supplies the identity/tenure snapshot for a pass.
type UserSource interface {
	ListActiveUsersWithTenure(ctx context.Context) (map[string]time.Time, error)
}

// ScoreStore persists pass results: atomic per-user replacement of the
// current score plus an append-only audit entry, all-or-nothing per call.
type ScoreStore interface {
	ReplaceAll(ctx context.Context, upserts []repository.ScoreUpsert, algorithmVersion string) error
	ReplaceOne(ctx context.Context, u repository.ScoreUpsert, algorithmVersion string) error
}

// RecomputeService orchestrates trust score recomputation. One invocation is
// one pass: a complete, consistent snapshot of endorsements, tenure and
// performance data is taken up front, every user is scored against that same
// snapshot, and results are committed as a single unit of work.
type RecomputeService struct {
	endorsements EndorsementSource
	users        UserSource
	analytics    analytics.Provider
	scores       ScoreStore
	cache        *CacheService
	trust        *TrustService
	scoreTTL     time.Duration
	log          zerolog.Logger

	now func() time.Time
}

func NewRecomputeService(
	endorsements EndorsementSource,
	users UserSource,
	provider analytics.Provider,
	scores ScoreStore,
	cache *CacheService,
	scoreTTL time.Duration,
	log zerolog.Logger,
) *RecomputeService {
	return &RecomputeService{
		endorsements: endorsements,
		users:        users,
		analytics:    provider,
		scores:       scores,
		cache:        cache,
		trust:        NewTrustService(),
		scoreTTL:     scoreTTL,
		log:          log.With().Str("component", "recompute").Logger(),
		now:          time.Now,
	}
}

// passSnapshot is the fixed input of one pass.
type passSnapshot struct {
	endorsements []model.Endorsement
	tenure       map[string]time.Time
	metrics      map[string]model.PerformanceMetrics
	fingerprint  string
}

// fetchSnapshot loads the three input snapshots concurrently. The reads are
// independent I/O; scoring starts only once all three have arrived.
func (s *RecomputeService) fetchSnapshot(ctx context.Context) (*passSnapshot, error) {
	var (
		snap     passSnapshot
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(stage string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", stage, err)
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		e, err := s.endorsements.ListActive(ctx)
		if err != nil {
			fail("fetch endorsements", err)
			return
		}
		snap.endorsements = e
	}()

	userIDsCh := make(chan []string, 1)
	go func() {
		defer wg.Done()
		u, err := s.users.ListActiveUsersWithTenure(ctx)
		if err != nil {
			fail("fetch users", err)
			close(userIDsCh)
			return
		}
		snap.tenure = u

		ids := make([]string, 0, len(u))
		for id := range u {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		userIDsCh <- ids
	}()

	// Metrics depend on the user list, so this read starts as soon as the
	// tenure snapshot is in, concurrently with the endorsement read.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ids, ok := <-userIDsCh
		if !ok {
			return
		}
		m, err := s.analytics.FetchMetrics(ctx, ids)
		if err != nil {
			fail("fetch performance metrics", err)
			return
		}
		snap.metrics = m
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	snap.fingerprint = snapshot.Fingerprint(snap.endorsements, snap.tenure, snap.metrics)
	return &snap, nil
}

// populationSize is the count of all users participating in the pass: graph
// nodes, users with tenure data, and users with performance data.
func populationSize(g *graph.Graph, snap *passSnapshot) int {
	seen := make(map[string]struct{})
	for _, n := range g.Nodes() {
		seen[n] = struct{}{}
	}
	for id := range snap.tenure {
		seen[id] = struct{}{}
	}
	for id := range snap.metrics {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// metricsFor returns a user's performance metrics, falling back to the
// documented neutral defaults when the analytics provider has no data.
func metricsFor(snap *passSnapshot, userID string) model.PerformanceMetrics {
	if m, ok := snap.metrics[userID]; ok {
		return m
	}
	return model.NeutralMetrics()
}

// computePass scores every user with a tenure record against the snapshot.
// Users are processed in sorted order so identical snapshots yield identical
// results, row for row.
func (s *RecomputeService) computePass(snap *passSnapshot, calculatedAt time.Time) []repository.ScoreUpsert {
	g := graph.Build(snap.endorsements)
	population := populationSize(g, snap)

	userIDs := make([]string, 0, len(snap.tenure))
	for id := range snap.tenure {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	composites := make(map[string]float64, len(userIDs))
	upserts := make([]repository.ScoreUpsert, 0, len(userIDs))
	notes := "snapshot " + snapshot.Short(snap.fingerprint)

	for _, id := range userIDs {
		perf := s.trust.PerformanceScore(metricsFor(snap, id))
		tenure := s.trust.TenureScore(snap.tenure[id], calculatedAt)
		endorse := s.trust.EndorsementScore(g, id, population)
		composite := s.trust.Composite(perf, tenure, endorse)
		composites[id] = composite

		upserts = append(upserts, repository.ScoreUpsert{
			Score: model.TrustScore{
				UserID:               id,
				Score:                composite,
				PerformanceComponent: perf,
				TenureComponent:      tenure,
				EndorsementComponent: endorse,
				Tier:                 s.trust.TierFor(composite),
				CalculatedAt:         calculatedAt,
				ValidUntil:           calculatedAt.Add(s.scoreTTL),
			},
			GraphNodes: g.NodeCount(),
			GraphEdges: g.EdgeCount(),
			Notes:      notes,
		})
	}

	percentiles := Percentiles(composites)
	for i := range upserts {
		upserts[i].Score.Percentile = percentiles[upserts[i].Score.UserID]
	}

	return upserts
}

// RecomputeAll runs one batch pass: every active user is scored and the
// results are committed as one transaction. On any failure the entire pass
// aborts with nothing written; the caller owns retry policy.
func (s *RecomputeService) RecomputeAll(ctx context.Context) (*model.RecomputeSummary, error) {
	start := s.now()

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		Metrics.PassFailures.Inc()
		return nil, err
	}

	if len(snap.tenure) == 0 {
		s.log.Info().Msg("no active users, nothing to score")
		return &model.RecomputeSummary{TierDistribution: emptyDistribution()}, nil
	}

	upserts := s.computePass(snap, start.UTC())

	if err := s.scores.ReplaceAll(ctx, upserts, AlgorithmVersion); err != nil {
		Metrics.PassFailures.Inc()
		return nil, fmt.Errorf("persist pass (%d users computed): %w", len(upserts), err)
	}

	// Telemetry and cache invalidation happen only after a successful commit.
	distribution := emptyDistribution()
	for i := range upserts {
		distribution[upserts[i].Score.Tier]++
	}
	for tier, count := range distribution {
		Metrics.TierGauge.WithLabelValues(string(tier)).Set(float64(count))
	}
	duration := s.now().Sub(start)
	Metrics.PassDuration.Observe(duration.Seconds())
	Metrics.UsersScored.Add(float64(len(upserts)))

	if s.cache != nil {
		userIDs := make([]string, 0, len(upserts))
		for i := range upserts {
			userIDs = append(userIDs, upserts[i].Score.UserID)
		}
		if err := s.cache.InvalidateScores(ctx, userIDs...); err != nil {
			s.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}

	s.log.Info().
		Int("users_scored", len(upserts)).
		Dur("duration", duration).
		Str("snapshot", snapshot.Short(snap.fingerprint)).
		Msg("batch pass complete")

	return &model.RecomputeSummary{
		UsersScored:      len(upserts),
		DurationMs:       duration.Milliseconds(),
		TierDistribution: distribution,
	}, nil
}

// RecomputeOne recomputes a single user on demand. The full population
// snapshot is still required for a meaningful percentile. When persist is
// false the result is a preview and nothing is written; when true the user's
// row is replaced and audited exactly as in a batch pass.
func (s *RecomputeService) RecomputeOne(ctx context.Context, userID string, persist bool) (*model.ScoreResponse, error) {
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := snap.tenure[userID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	upserts := s.computePass(snap, s.now().UTC())

	var target *repository.ScoreUpsert
	for i := range upserts {
		if upserts[i].Score.UserID == userID {
			target = &upserts[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if persist {
		if err := s.scores.ReplaceOne(ctx, *target, AlgorithmVersion); err != nil {
			return nil, fmt.Errorf("persist score for %s: %w", userID, err)
		}
		if s.cache != nil {
			if err := s.cache.InvalidateScores(ctx, userID); err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("cache invalidation failed")
			}
		}
	}

	sc := &target.Score
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

func emptyDistribution() map[model.Tier]int {
	d := make(map[model.Tier]int, len(model.Tiers))
	for _, t := range model.Tiers {
		d[t] = 0
	}
	return d
}
