package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestUpsertPlayerIsIdempotent(t *testing.T) {
	store := newTestStorage(t)

	first, err := store.UpsertPlayer("1", "alice", "Alice")
	require.NoError(t, err)

	second, err := store.UpsertPlayer("1", "alice", "Alice Renamed")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	player, err := store.GetPlayer("1")
	require.NoError(t, err)
	require.NotNil(t, player)
	assert.Equal(t, "Alice Renamed", player.PersonaName)
}

func TestGetPlayerNotFound(t *testing.T) {
	store := newTestStorage(t)

	player, err := store.GetPlayer("missing")
	require.NoError(t, err)
	assert.Nil(t, player)
}

func TestLoadPlayersDiscoveryOrder(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.UpsertPlayer("1", "", "Alice")
	require.NoError(t, err)
	_, err = store.UpsertPlayer("2", "", "Bob")
	require.NoError(t, err)

	players, err := store.LoadPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].PersonaName)
	assert.Equal(t, "Bob", players[1].PersonaName)
}

func TestUpsertEdgeNormalizesPairs(t *testing.T) {
	store := newTestStorage(t)

	alice, err := store.UpsertNode("Alice")
	require.NoError(t, err)
	bob, err := store.UpsertNode("Bob")
	require.NoError(t, err)

	require.NoError(t, store.UpsertEdge(alice, bob))
	require.NoError(t, store.UpsertEdge(bob, alice))

	edges, err := store.LoadEdges()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, [2]string{"Alice", "Bob"}, edges[0])
}

func TestUpsertNodeIsIdempotent(t *testing.T) {
	store := newTestStorage(t)

	first, err := store.UpsertNode("Alice")
	require.NoError(t, err)
	second, err := store.UpsertNode("Alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
