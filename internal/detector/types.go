package detector

import "github.com/hviken/teamscope/internal/steam"

// Options holds the crawl parameters supplied by the CLI.
type Options struct {
	MaxDepth        int
	SearchComments  bool
	MaxCommentPages int
}

// ProfileSource is the relationship source the engine crawls. Implemented by
// steam.Client; tests substitute a fixture-backed stub.
type ProfileSource interface {
	Profile(steamID string) (steam.Profile, error)
	SteamIDForVanity(customID string) (string, error)
	Friends(steamID string) ([]steam.Person, error)
	CommentAuthors(steamID string, page int) (int, []steam.Person, error)
}

// Player is a fully visited profile. CustomID is empty when the profile has no
// vanity URL; by the time a Player exists its resolution is complete, so empty
// means "none", not "unknown".
type Player struct {
	SteamID  string
	CustomID string
	Name     string
}

// Snapshot records the raw related people gathered during one visit, before
// any filtering. Immutable once written; pass-2 edge inference reads it after
// the crawl completes.
type Snapshot struct {
	Player Player
	People []steam.Person
}

// StatsFunc receives counter deltas from the engine.
type StatsFunc func(visited, skipped, stopped, matched, directEdges, inferredEdges int)

// entry is one frontier item: a profile pending a visit at a given depth.
// The steam id is always resolved before enqueueing.
type entry struct {
	steamID string
	depth   int
}
