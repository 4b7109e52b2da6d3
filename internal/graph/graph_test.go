package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddNodePreservesInsertionOrder(t *testing.T) {
	g := New()

	assert.True(t, g.AddNode("Alice"))
	assert.True(t, g.AddNode("Bob"))
	assert.False(t, g.AddNode("Alice"))

	assert.Equal(t, []string{"Alice", "Bob"}, g.Nodes())
}

func TestAddEdgeIsIdempotent(t *testing.T) {
	g := New()

	assert.True(t, g.AddEdge("Alice", "Bob"))
	assert.False(t, g.AddEdge("Alice", "Bob"))
	assert.False(t, g.AddEdge("Bob", "Alice"))

	nodeCount, edgeCount := g.Stats()
	assert.Equal(t, 2, nodeCount)
	assert.Equal(t, 1, edgeCount)
}

func TestAddEdgeRejectsSelfLoops(t *testing.T) {
	g := New()

	assert.False(t, g.AddEdge("Alice", "Alice"))

	nodeCount, edgeCount := g.Stats()
	assert.Equal(t, 0, nodeCount)
	assert.Equal(t, 0, edgeCount)
}

func TestAddEdgeCreatesMissingNodes(t *testing.T) {
	g := New()
	g.AddNode("Alice")
	g.AddEdge("Alice", "Bob")

	assert.Equal(t, []string{"Alice", "Bob"}, g.Nodes())
}

func TestHasEdgeIsSymmetric(t *testing.T) {
	g := New()
	g.AddEdge("Alice", "Bob")

	assert.True(t, g.HasEdge("Alice", "Bob"))
	assert.True(t, g.HasEdge("Bob", "Alice"))
	assert.False(t, g.HasEdge("Alice", "Carol"))
}

func TestEdgesReturnsNormalizedPairs(t *testing.T) {
	g := New()
	g.AddEdge("Carol", "Bob")

	edges := g.Edges()
	assert.Len(t, edges, 1)
	assert.Equal(t, [2]string{"Bob", "Carol"}, edges[0])
}
