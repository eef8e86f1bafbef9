package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/whoiscaerus/traderank/internal/model"
)

// Provider supplies per-user trading performance metrics. The scoring engine
// treats the returned map as an immutable snapshot for one computation pass;
// users absent from the map get neutral defaults downstream.
type Provider interface {
	FetchMetrics(ctx context.Context, userIDs []string) (map[string]model.PerformanceMetrics, error)
}

const (
	requestTimeout = 10 * time.Second
	batchSize      = 500

	// Outbound throttle: the analytics API allows 10 req/s per key.
	requestsPerSecond = 10
	burst             = 5
)

// Client fetches performance metrics from the external analytics service over
// HTTP, in batches, throttled with a token-bucket limiter.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		log:     log.With().Str("component", "analytics").Logger(),
	}
}

type batchRequest struct {
	UserIDs []string `json:"userIds"`
}

type batchResponse struct {
	Metrics map[string]model.PerformanceMetrics `json:"metrics"`
}

// FetchMetrics retrieves metrics for the given users. Users unknown to the
// analytics service are simply absent from the result.
func (c *Client) FetchMetrics(ctx context.Context, userIDs []string) (map[string]model.PerformanceMetrics, error) {
	out := make(map[string]model.PerformanceMetrics, len(userIDs))

	for start := 0; start < len(userIDs); start += batchSize {
		end := min(start+batchSize, len(userIDs))

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		batch, err := c.fetchBatch(ctx, userIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetch metrics batch [%d:%d]: %w", start, end, err)
		}
		for id, m := range batch {
			out[id] = m
		}
	}

	c.log.Debug().
		Int("requested", len(userIDs)).
		Int("returned", len(out)).
		Msg("metrics fetched")

	return out, nil
}

func (c *Client) fetchBatch(ctx context.Context, userIDs []string) (map[string]model.PerformanceMetrics, error) {
	body, err := json.Marshal(batchRequest{UserIDs: userIDs})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/metrics/batch", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics returned status %d", resp.StatusCode)
	}

	var decoded batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode analytics response: %w", err)
	}
	return decoded.Metrics, nil
}
