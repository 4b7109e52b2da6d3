package detector

import (
	"fmt"

	"github.com/hviken/teamscope/internal/graph"
	"github.com/hviken/teamscope/internal/steam"
	"github.com/sirupsen/logrus"
)

// Detector runs one team-detection crawl: a depth-bounded breadth-first
// traversal of the seed profiles' relationship networks, filtered against the
// server roster. All mutable crawl state is owned by the Detector instance and
// torn down with it; nothing is package-global.
type Detector struct {
	opts   Options
	source ProfileSource
	roster map[string]bool
	g      *graph.Graph

	frontier  *worklist
	visited   map[string]bool
	found     []Player
	snapshots []Snapshot

	statsCallback StatsFunc
}

// New creates a detector for one run. statsCallback may be nil.
func New(opts Options, source ProfileSource, roster []string, g *graph.Graph, statsCallback StatsFunc) *Detector {
	rosterSet := make(map[string]bool, len(roster))
	for _, name := range roster {
		rosterSet[name] = true
	}

	return &Detector{
		opts:          opts,
		source:        source,
		roster:        rosterSet,
		g:             g,
		frontier:      newWorklist(),
		visited:       make(map[string]bool),
		statsCallback: statsCallback,
	}
}

// Run crawls from the given seed steam ids and returns the found players in
// discovery order. Any fetch or extraction failure aborts the whole run: the
// result would otherwise silently miss edges.
func (d *Detector) Run(seeds []string) ([]Player, error) {
	for _, steamID := range seeds {
		d.frontier.push(entry{steamID: steamID, depth: 0})
	}

	for {
		e, ok := d.frontier.pop()
		if !ok {
			break
		}
		if err := d.visit(e); err != nil {
			return nil, fmt.Errorf("crawl aborted at %s (depth %d): %w", e.steamID, e.depth, err)
		}
	}

	d.inferEdges()

	nodes, edges := d.g.Stats()
	logrus.Infof("Crawl complete: %d players found, graph has %d nodes and %d edges",
		len(d.found), nodes, edges)
	return d.found, nil
}

// Snapshots returns the per-visit snapshots recorded so far.
func (d *Detector) Snapshots() []Snapshot {
	return d.snapshots
}

// visit processes one frontier entry: depth check, visited check, resolution,
// candidate gathering, filtering, pass-1 edges and frontier expansion.
func (d *Detector) visit(e entry) error {
	if e.depth >= d.opts.MaxDepth {
		logrus.Debugf("Depth limit reached at %s (depth=%d)", e.steamID, e.depth)
		d.reportStats(0, 0, 1, 0, 0, 0)
		return nil
	}

	// The visited check keys on the steam id alone: it is the one identifier
	// every profile is guaranteed to have, which is what bounds the traversal
	// over a cyclic friend graph.
	if d.visited[e.steamID] {
		logrus.Debugf("Already visited %s, skipping", e.steamID)
		d.reportStats(0, 1, 0, 0, 0, 0)
		return nil
	}
	d.visited[e.steamID] = true

	profile, err := d.source.Profile(e.steamID)
	if err != nil {
		return err
	}

	player := Player{SteamID: profile.SteamID, CustomID: profile.CustomID, Name: profile.Name}
	d.found = append(d.found, player)
	d.g.AddNode(player.Name)
	d.reportStats(1, 0, 0, 0, 0, 0)

	logrus.Infof("Visiting %q (%s) at depth %d", player.Name, player.SteamID, e.depth)

	people, err := d.gatherPeople(profile)
	if err != nil {
		return err
	}

	// Snapshot keeps the raw gathered list so pass-2 inference can later see
	// relationships the roster filter is about to drop.
	d.snapshots = append(d.snapshots, Snapshot{Player: player, People: people})

	people = dedupPeople(people)
	people = removeSelf(people, player.SteamID, player.CustomID)
	people = matchRoster(people, d.roster)
	d.reportStats(0, 0, 0, len(people), 0, 0)

	// Pass-1 edges fire at the matching profile's perspective, whether or not
	// the candidate is ever visited. They are never retracted.
	for _, p := range people {
		if d.g.AddEdge(player.Name, p.Name) {
			d.reportStats(0, 0, 0, 0, 1, 0)
			logrus.Debugf("Direct edge: %q <-> %q", player.Name, p.Name)
		}
	}

	people = excludeFound(people, d.found)

	for _, p := range people {
		next := p.SteamID
		if next == "" {
			next, err = d.source.SteamIDForVanity(p.CustomID)
			if err != nil {
				return err
			}
		}
		d.frontier.push(entry{steamID: next, depth: e.depth + 1})
	}

	return nil
}

// gatherPeople collects the candidate related identities for one profile:
// the friends list when visible, then comment authors page by page when
// enabled. Private visibility is not an error, it just contributes nothing.
func (d *Detector) gatherPeople(profile steam.Profile) ([]steam.Person, error) {
	var people []steam.Person

	if profile.FriendsPublic {
		friends, err := d.source.Friends(profile.SteamID)
		if err != nil {
			return nil, err
		}
		people = append(people, friends...)
	}

	if d.opts.SearchComments && d.opts.MaxCommentPages > 0 && profile.CommentsPublic {
		// Stop paging once the reported total is consumed. Under-reading is
		// tolerated; the page cap bounds the loop regardless.
		remaining := profile.CommentCount
		for page := 1; page <= d.opts.MaxCommentPages; page++ {
			if remaining <= 0 {
				break
			}
			read, authors, err := d.source.CommentAuthors(profile.SteamID, page)
			if err != nil {
				return nil, err
			}
			remaining -= read
			people = append(people, authors...)
		}
	}

	return people, nil
}

// inferEdges is the post-crawl second pass: connect any two found players
// where one appears in the other's raw snapshot, recovering clique structure
// between profiles that were each discovered via a third party. Both iteration
// orders run, so the inference is symmetric.
func (d *Detector) inferEdges() {
	for i, outer := range d.snapshots {
		for j, inner := range d.snapshots {
			if i == j {
				continue
			}
			if outer.Player.SteamID == inner.Player.SteamID {
				continue
			}
			if outer.Player.CustomID != "" && outer.Player.CustomID == inner.Player.CustomID {
				continue
			}

			for _, p := range inner.People {
				steamIDMatch := p.SteamID != "" && p.SteamID == outer.Player.SteamID
				customIDMatch := outer.Player.CustomID != "" && p.CustomID == outer.Player.CustomID

				if steamIDMatch || customIDMatch {
					if d.g.AddEdge(outer.Player.Name, inner.Player.Name) {
						d.reportStats(0, 0, 0, 0, 0, 1)
						logrus.Debugf("Inferred edge: %q <-> %q", outer.Player.Name, inner.Player.Name)
					}
					break
				}
			}
		}
	}
}

func (d *Detector) reportStats(visited, skipped, stopped, matched, direct, inferred int) {
	if d.statsCallback != nil {
		d.statsCallback(visited, skipped, stopped, matched, direct, inferred)
	}
}
