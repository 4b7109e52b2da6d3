package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hviken/teamscope/internal/detector"
	"github.com/hviken/teamscope/internal/graph"
)

func TestWriteTableListsPlayersInDiscoveryOrder(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, []detector.Player{
		{SteamID: "1", Name: "Alice"},
		{SteamID: "2", Name: "Bob"},
	})

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "https://steamcommunity.com/profiles/1/?l=english")
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
}

func TestRenderGraphWritesStandaloneHTML(t *testing.T) {
	g := graph.New()
	g.AddEdge("Alice", "Bob")
	g.AddNode("Hermit")

	path := filepath.Join(t.TempDir(), "network.html")
	require.NoError(t, RenderGraph(path, "Team Network", g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "Bob")
	assert.Contains(t, html, "Hermit")
}
