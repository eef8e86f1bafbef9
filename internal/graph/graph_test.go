package graph

import (
	"reflect"
	"testing"
	"time"

	"github.com/whoiscaerus/traderank/internal/model"
)

func TestClampWeight(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"negative clamps to zero", -0.3, 0.0},
		{"zero stays zero", 0.0, 0.0},
		{"below cap passes through", 0.4, 0.4},
		{"exactly cap", 0.5, 0.5},
		{"above cap clamps", 0.6, 0.5},
		{"far above cap clamps", 100.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampWeight(tt.raw); got != tt.want {
				t.Errorf("ClampWeight(%.2f) = %.2f, want %.2f", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuild_WeightCapInvariant(t *testing.T) {
	endorsements := []model.Endorsement{
		{EndorserID: "a", EndorseeID: "b", Weight: 0.9},
		{EndorserID: "c", EndorseeID: "b", Weight: -1.0},
		{EndorserID: "d", EndorseeID: "b", Weight: 0.25},
		{EndorserID: "a", EndorseeID: "c", Weight: 12.0},
	}

	g := Build(endorsements)

	for _, n := range g.Nodes() {
		for _, e := range g.Incoming(n) {
			if e.Weight < 0 || e.Weight > MaxEdgeWeight {
				t.Errorf("edge %s->%s weight %.2f outside [0, %.2f]", e.From, e.To, e.Weight, MaxEdgeWeight)
			}
		}
	}

	// 0.5 (capped from 0.9) + 0 (clamped from -1) + 0.25
	if got := g.IncomingWeight("b"); got != 0.75 {
		t.Errorf("IncomingWeight(b) = %.2f, want 0.75", got)
	}
}

func TestBuild_SkipsRevoked(t *testing.T) {
	revoked := time.Now()
	endorsements := []model.Endorsement{
		{EndorserID: "a", EndorseeID: "b", Weight: 0.4},
		{EndorserID: "c", EndorseeID: "b", Weight: 0.4, RevokedAt: &revoked},
	}

	g := Build(endorsements)

	if got := g.IncomingWeight("b"); got != 0.4 {
		t.Errorf("IncomingWeight(b) = %.2f, want 0.4 (revoked edge must not count)", got)
	}
	if g.HasNode("c") {
		t.Error("revoked endorsement must not introduce node c")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBuild_SkipsSelfLoops(t *testing.T) {
	g := Build([]model.Endorsement{
		{EndorserID: "a", EndorseeID: "a", Weight: 0.5},
	})

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 for self-loop", g.EdgeCount())
	}
	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0 for self-loop", g.NodeCount())
	}
}

func TestGraph_Incoming(t *testing.T) {
	g := New()
	g.AddEdge("a", "b", 0.3)
	g.AddEdge("c", "b", 0.2)

	in := g.Incoming("b")
	if len(in) != 2 {
		t.Fatalf("Incoming(b) returned %d edges, want 2", len(in))
	}

	// Mutating the returned slice must not affect the graph.
	in[0].Weight = 99
	if got := g.IncomingWeight("b"); got != 0.5 {
		t.Errorf("IncomingWeight(b) = %.2f after caller mutation, want 0.5", got)
	}

	if got := g.Incoming("a"); got != nil {
		t.Errorf("Incoming(a) = %v, want nil for node with no incoming edges", got)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	g := New()
	g.AddEdge("alice", "bob", 0.4)
	g.AddEdge("carol", "bob", 0.9) // capped to 0.5
	g.AddEdge("bob", "carol", 0.1)
	g.nodes["isolated"] = struct{}{}

	restored := Import(g.Export())

	if !reflect.DeepEqual(g.Export(), restored.Export()) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", restored.Export(), g.Export())
	}
	if restored.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount() = %d, want %d", restored.NodeCount(), g.NodeCount())
	}
	if restored.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", restored.EdgeCount(), g.EdgeCount())
	}
	if !restored.HasNode("isolated") {
		t.Error("isolated node lost in round trip")
	}
}

func TestExport_Canonical(t *testing.T) {
	// Two graphs built in different insertion orders must export identically.
	g1 := New()
	g1.AddEdge("a", "c", 0.2)
	g1.AddEdge("b", "c", 0.3)

	g2 := New()
	g2.AddEdge("b", "c", 0.3)
	g2.AddEdge("a", "c", 0.2)

	if !reflect.DeepEqual(g1.Export(), g2.Export()) {
		t.Errorf("exports differ for equal graphs:\n g1=%+v\n g2=%+v", g1.Export(), g2.Export())
	}
}
