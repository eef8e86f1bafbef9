package graph

import (
	"sort"

	"github.com/whoiscaerus/traderank/internal/model"
)

// MaxEdgeWeight is the anti-gaming cap: no single endorsement may contribute
// more than this toward a recipient's endorsement score, regardless of the
// weight it claims.
const MaxEdgeWeight = 0.5

// Edge is one capped, directed endorsement edge.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Graph is a weighted directed endorsement graph. Nodes are user IDs; each
// edge carries a weight clamped to [0, MaxEdgeWeight]. The zero value is not
// usable; construct with New or Build.
type Graph struct {
	nodes    map[string]struct{}
	incoming map[string][]Edge
	edges    int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]struct{}),
		incoming: make(map[string][]Edge),
	}
}

// Build constructs a graph from the given endorsements, skipping revoked
// edges and self-loops. Weights outside [0, MaxEdgeWeight] are clamped.
func Build(endorsements []model.Endorsement) *Graph {
	g := New()
	for i := range endorsements {
		e := &endorsements[i]
		if !e.Active() {
			continue
		}
		g.AddEdge(e.EndorserID, e.EndorseeID, e.Weight)
	}
	return g
}

// ClampWeight clamps a raw endorsement weight into [0, MaxEdgeWeight].
// Negative inputs become 0; anything above the cap becomes the cap.
func ClampWeight(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw > MaxEdgeWeight {
		return MaxEdgeWeight
	}
	return raw
}

// AddEdge adds a directed edge from endorser to endorsee with the clamped
// weight. Both endpoints become nodes. Self-loops are ignored.
func (g *Graph) AddEdge(from, to string, rawWeight float64) {
	if from == to {
		return
	}
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	g.incoming[to] = append(g.incoming[to], Edge{
		From:   from,
		To:     to,
		Weight: ClampWeight(rawWeight),
	})
	g.edges++
}

// Nodes returns all node IDs in lexicographic order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// HasNode reports whether the given user appears in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Incoming returns the capped incoming edges of a node. The result is a copy;
// mutating it does not affect the graph.
func (g *Graph) Incoming(id string) []Edge {
	in := g.incoming[id]
	if len(in) == 0 {
		return nil
	}
	out := make([]Edge, len(in))
	copy(out, in)
	return out
}

// IncomingWeight returns the sum of capped incoming edge weights of a node.
func (g *Graph) IncomingWeight(id string) float64 {
	var sum float64
	for _, e := range g.incoming[id] {
		sum += e.Weight
	}
	return sum
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}
