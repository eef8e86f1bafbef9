package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/whoiscaerus/traderank/internal/model"
)

func TestFetchMetrics(t *testing.T) {
	known := map[string]model.PerformanceMetrics{
		"bob": {WinRate: 0.65, SharpeRatio: 1.5, ProfitFactor: 2.0},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/metrics/batch" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		resp := batchResponse{Metrics: make(map[string]model.PerformanceMetrics)}
		for _, id := range req.UserIDs {
			if m, ok := known[id]; ok {
				resp.Metrics[id] = m
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", zerolog.Nop())

	got, err := client.FetchMetrics(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("FetchMetrics: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d metrics entries, want 1", len(got))
	}
	if got["bob"] != known["bob"] {
		t.Errorf("metrics for bob = %+v, want %+v", got["bob"], known["bob"])
	}
	if _, ok := got["alice"]; ok {
		t.Error("alice has no metrics and must be absent from the result")
	}
}

func TestFetchMetrics_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", zerolog.Nop())

	if _, err := client.FetchMetrics(context.Background(), []string{"bob"}); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestFetchMetrics_NoUsers(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", zerolog.Nop())

	got, err := client.FetchMetrics(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchMetrics(nil): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries for empty request, want 0", len(got))
	}
}
