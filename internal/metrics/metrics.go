package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Stats captures one run's counters for export on exit
type Stats struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ProfilesVisited int       `json:"profiles_visited"`
	ProfilesSkipped int       `json:"profiles_skipped"`
	DepthStops      int       `json:"depth_stops"`
	RosterMatches   int       `json:"roster_matches"`
	DirectEdges     int       `json:"direct_edges"`
	InferredEdges   int       `json:"inferred_edges"`
	PagesFetched    int       `json:"pages_fetched"`
	CacheHits       int       `json:"cache_hits"`
}

// Tracker holds and manages run statistics
type Tracker struct {
	mu   sync.Mutex
	data Stats
}

// NewTracker creates a new statistics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: Stats{
			StartTime: time.Now(),
		},
	}
}

// AddCrawl records counter deltas reported by the crawl engine
func (t *Tracker) AddCrawl(visited, skipped, stopped, matched, direct, inferred int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.ProfilesVisited += visited
	t.data.ProfilesSkipped += skipped
	t.data.DepthStops += stopped
	t.data.RosterMatches += matched
	t.data.DirectEdges += direct
	t.data.InferredEdges += inferred
}

// AddFetch records counter deltas reported by the page fetcher
func (t *Tracker) AddFetch(pagesFetched, cacheHits int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PagesFetched += pagesFetched
	t.data.CacheHits += cacheHits
}

// GetSnapshot returns a copy of current statistics
func (t *Tracker) GetSnapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

// WriteToFile exports statistics to a JSON file
func (t *Tracker) WriteToFile(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data.EndTime = time.Now()

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}

	return nil
}

// Summary returns a one-line human-readable view of the current counters
func (t *Tracker) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Profiles: %d visited, %d skipped, %d depth-stopped | Matches: %d | Edges: %d direct, %d inferred | Pages: %d fetched, %d cache hits",
		t.data.ProfilesVisited,
		t.data.ProfilesSkipped,
		t.data.DepthStops,
		t.data.RosterMatches,
		t.data.DirectEdges,
		t.data.InferredEdges,
		t.data.PagesFetched,
		t.data.CacheHits,
	)
}
