package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hviken/teamscope/internal/battlemetrics"
	"github.com/hviken/teamscope/internal/config"
	"github.com/hviken/teamscope/internal/detector"
	"github.com/hviken/teamscope/internal/graph"
	"github.com/hviken/teamscope/internal/metrics"
	"github.com/hviken/teamscope/internal/report"
	"github.com/hviken/teamscope/internal/steam"
	"github.com/hviken/teamscope/internal/storage"
	"github.com/hviken/teamscope/internal/version"
)

const (
	configFile     = "teamscope.json"
	requestTimeout = 10 * time.Second
)

var (
	flagServerID     string
	flagSteamIDs     []string
	flagDepth        int
	flagComments     bool
	flagCommentPages int
	flagDebug        bool
	flagGraphPath    string
	flagDBPath       string
	flagStatsPath    string
)

var rootCmd = &cobra.Command{
	Use:   "teamscope",
	Short: "Detect likely teams on a game server from Steam friend networks",
	Long: `teamscope reads the active player roster of a BattleMetrics server and
crawls the friend networks (and optionally profile comment authors) of one or
more seed Steam profiles, depth-bounded, matching every related profile's name
against the roster. The result is a table of players likely to be playing
together and an interactive HTML visualization of who is connected to whom.`,
	SilenceUsage: true,
	Run:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagServerID, "server-id", "b", "", "BattleMetrics server id")
	rootCmd.Flags().StringSliceVarP(&flagSteamIDs, "steam-id", "s", nil, "steam id(s) of the profile(s) to inspect (repeatable)")
	rootCmd.Flags().IntVarP(&flagDepth, "depth", "r", config.DefaultDepth, "maximum crawl depth")
	rootCmd.Flags().BoolVarP(&flagComments, "comments", "c", false, "also search profile comment authors")
	rootCmd.Flags().IntVarP(&flagCommentPages, "comment-pages", "p", config.DefaultCommentPages, "comment pages to read per profile")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagGraphPath, "graph", config.DefaultGraphPath, "output path for the network visualization")
	rootCmd.Flags().StringVar(&flagDBPath, "db", config.DefaultDBPath, "path to the results database")
	rootCmd.Flags().StringVar(&flagStatsPath, "stats", config.DefaultStatsPath, "output path for run statistics")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	// Configure logging
	logrus.SetLevel(logrus.InfoLevel)
	if flagDebug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.Infof("teamscope v%s starting...", version.Version)

	// Merge CLI values with the persisted configuration; CLI wins per field.
	// Validation runs before any network activity.
	cfg := &config.Config{ServerID: flagServerID, SteamIDs: flagSteamIDs}

	persisted, err := config.Load(configFile)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	cfg.Merge(persisted)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	logrus.Infof("Configuration: server=%s, seeds=%d, depth=%d, comments=%t, comment_pages=%d",
		cfg.ServerID, len(cfg.SteamIDs), flagDepth, flagComments, flagCommentPages)

	// Initialize stats tracker and clients
	tracker := metrics.NewTracker()
	steamClient := steam.NewClient(requestTimeout, tracker.AddFetch)
	rosterClient := battlemetrics.NewClient(requestTimeout)

	// Fetch the active roster
	roster, err := rosterClient.Players(cfg.ServerID)
	if err != nil {
		logrus.Fatalf("Failed to fetch server roster: %v", err)
	}
	logrus.Infof("Server roster: %d active players", len(roster))

	// Run the crawl
	g := graph.New()
	d := detector.New(detector.Options{
		MaxDepth:        flagDepth,
		SearchComments:  flagComments,
		MaxCommentPages: flagCommentPages,
	}, steamClient, roster, g, tracker.AddCrawl)

	found, err := d.Run(cfg.SteamIDs)
	if err != nil {
		logrus.Fatalf("Crawl failed: %v", err)
	}

	// Report results
	fmt.Println()
	fmt.Println("Team detection result:")
	fmt.Println()
	report.WriteTable(os.Stdout, found)
	fmt.Println()

	if err := report.RenderGraph(flagGraphPath, "Team Network", g); err != nil {
		logrus.Fatalf("Failed to render network visualization: %v", err)
	}
	logrus.Infof("Team network written to %s", flagGraphPath)

	// Persist the run
	store, err := storage.NewStorage(flagDBPath)
	if err != nil {
		logrus.Errorf("Failed to open results database: %v", err)
	} else {
		defer store.Close()
		if err := persistRun(store, found, g); err != nil {
			logrus.Errorf("Failed to persist run: %v", err)
		} else {
			logrus.Infof("Results persisted to %s", flagDBPath)
		}
	}

	// Final stats
	logrus.Info("Final stats: " + tracker.Summary())
	if err := tracker.WriteToFile(flagStatsPath); err != nil {
		logrus.Errorf("Failed to write stats: %v", err)
	} else {
		logrus.Infof("Stats written to %s", flagStatsPath)
	}

	// Write back the resolved configuration for the next run
	if err := cfg.Save(configFile); err != nil {
		logrus.Errorf("Failed to write config: %v", err)
	}
}

// persistRun writes found players and the final graph to the results database.
func persistRun(store *storage.Storage, found []detector.Player, g *graph.Graph) error {
	for _, player := range found {
		if _, err := store.UpsertPlayer(player.SteamID, player.CustomID, player.Name); err != nil {
			return err
		}
	}

	nodeIDs := make(map[string]int)
	for _, name := range g.Nodes() {
		nodeID, err := store.UpsertNode(name)
		if err != nil {
			return err
		}
		nodeIDs[name] = nodeID
	}

	for _, edge := range g.Edges() {
		if err := store.UpsertEdge(nodeIDs[edge[0]], nodeIDs[edge[1]]); err != nil {
			return err
		}
	}

	return nil
}
