package graph

import "sort"

// Export is a plain node-list/edge-list representation of a graph, used for
// persistence-free serialization (caching, test fixtures). Importing an
// export yields a structurally equal graph.
type Export struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Export returns the graph as a sorted node list and edge list. Sorting makes
// the representation canonical, so equal graphs export identically.
func (g *Graph) Export() Export {
	edges := make([]Edge, 0, g.edges)
	for _, in := range g.incoming {
		edges = append(edges, in...)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Weight < edges[j].Weight
	})
	return Export{
		Nodes: g.Nodes(),
		Edges: edges,
	}
}

// Import reconstructs a graph from an exported representation. Isolated nodes
// (no edges) are preserved. Edge weights pass through ClampWeight again, so an
// import can never violate the weight cap.
func Import(ex Export) *Graph {
	g := New()
	for _, n := range ex.Nodes {
		g.nodes[n] = struct{}{}
	}
	for _, e := range ex.Edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}
