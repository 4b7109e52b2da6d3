package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/olekukonko/tablewriter"

	"github.com/hviken/teamscope/internal/detector"
	"github.com/hviken/teamscope/internal/graph"
	"github.com/hviken/teamscope/internal/steam"
)

// WriteTable renders the found-players table, one row per player in discovery
// order.
func WriteTable(w io.Writer, players []detector.Player) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "SteamID", "Link"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, player := range players {
		table.Append([]string{player.Name, player.SteamID, steam.ProfileURL(player.SteamID)})
	}

	table.Render()
}

// RenderGraph writes the relationship network as a standalone interactive HTML
// file with a force-layout graph.
func RenderGraph(path, title string, g *graph.Graph) error {
	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1600px",
			Height:    "900px",
		}),
	)

	nodes := make([]opts.GraphNode, 0, len(g.Nodes()))
	for _, name := range g.Nodes() {
		nodes = append(nodes, opts.GraphNode{Name: name, SymbolSize: 20})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges()))
	for _, edge := range g.Edges() {
		links = append(links, opts.GraphLink{Source: edge[0], Target: edge[1]})
	}

	chart.AddSeries("team", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "force",
			Force:  &opts.GraphForce{Repulsion: 400, EdgeLength: 80},
			Roam:   true,
		}),
		charts.WithLabelOpts(opts.Label{Show: true, Position: "right"}),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer file.Close()

	if err := chart.Render(file); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}

	return nil
}
