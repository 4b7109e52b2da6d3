package graph

import "sync"

// Graph is an in-memory undirected graph keyed by display name. Edges are
// unweighted and deduplicated; adding an existing edge is a no-op, and
// self-loops are rejected. Node insertion order is preserved.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]bool
	order []string
	edges map[pair]bool
}

// pair is a normalized unordered edge key
type pair struct {
	a, b string
}

func makePair(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		edges: make(map[pair]bool),
	}
}

// AddNode inserts a node if not present. Returns true if the node was added.
func (g *Graph) AddNode(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addNodeLocked(name)
}

func (g *Graph) addNodeLocked(name string) bool {
	if g.nodes[name] {
		return false
	}
	g.nodes[name] = true
	g.order = append(g.order, name)
	return true
}

// AddEdge inserts an undirected edge between a and b, creating either node if
// needed. Self-loops are never added. Returns true if a new edge was recorded.
func (g *Graph) AddEdge(a, b string) bool {
	if a == b {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(a)
	g.addNodeLocked(b)

	key := makePair(a, b)
	if g.edges[key] {
		return false
	}
	g.edges[key] = true
	return true
}

// HasEdge reports whether an edge exists between a and b in either direction.
func (g *Graph) HasEdge(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges[makePair(a, b)]
}

// Nodes returns all node names in insertion order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// Edges returns all edges as normalized name pairs.
func (g *Graph) Edges() [][2]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([][2]string, 0, len(g.edges))
	for key := range g.edges {
		edges = append(edges, [2]string{key.a, key.b})
	}
	return edges
}

// Stats returns current node and edge counts.
func (g *Graph) Stats() (nodeCount, edgeCount int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes), len(g.edges)
}
