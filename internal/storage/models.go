package storage

import "time"

// Player is one discovered profile as persisted
type Player struct {
	PlayerID     int
	SteamID      string
	CustomID     string
	PersonaName  string
	DiscoveredAt time.Time
}

// Node is one graph node as persisted. Nodes are keyed by display name and may
// include roster-matched names that never reached full visitation.
type Node struct {
	NodeID int
	Name   string
}

// Edge is one undirected relationship edge as persisted
type Edge struct {
	EdgeID     int
	FromNodeID int
	ToNodeID   int
}
