package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage persists finished runs so detection results accumulate across
// sessions.
type Storage struct {
	db *sql.DB
}

// NewStorage creates a new Storage instance, opening/creating the DB and initializing schema
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	storage := &Storage{db: db}

	// Initialize schema
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// initSchema creates tables and indices if they don't exist
func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		player_id INTEGER PRIMARY KEY AUTOINCREMENT,
		steam_id TEXT UNIQUE NOT NULL,
		custom_id TEXT,
		persona_name TEXT,
		discovered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS nodes (
		node_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS edges (
		edge_id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_node_id INTEGER NOT NULL,
		to_node_id INTEGER NOT NULL,
		FOREIGN KEY (from_node_id) REFERENCES nodes(node_id),
		FOREIGN KEY (to_node_id) REFERENCES nodes(node_id),
		UNIQUE(from_node_id, to_node_id)
	);

	CREATE INDEX IF NOT EXISTS idx_players_steam ON players(steam_id);
	CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
	CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_node_id);
	CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_node_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// UpsertPlayer inserts a discovered player or refreshes its identity fields.
// Returns the player_id of the inserted/existing row.
func (s *Storage) UpsertPlayer(steamID, customID, personaName string) (int, error) {
	_, err := s.db.Exec(`
		INSERT INTO players (steam_id, custom_id, persona_name)
		VALUES (?, ?, ?)
		ON CONFLICT(steam_id) DO UPDATE SET
			custom_id = EXCLUDED.custom_id,
			persona_name = EXCLUDED.persona_name
	`, steamID, customID, personaName)

	if err != nil {
		return 0, fmt.Errorf("failed to upsert player: %w", err)
	}

	var playerID int
	err = s.db.QueryRow("SELECT player_id FROM players WHERE steam_id = ?", steamID).Scan(&playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve player_id: %w", err)
	}

	return playerID, nil
}

// UpsertNode inserts a graph node if its name is new.
// Returns the node_id of the inserted/existing node.
func (s *Storage) UpsertNode(name string) (int, error) {
	_, err := s.db.Exec(`
		INSERT INTO nodes (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name)

	if err != nil {
		return 0, fmt.Errorf("failed to upsert node: %w", err)
	}

	var nodeID int
	err = s.db.QueryRow("SELECT node_id FROM nodes WHERE name = ?", name).Scan(&nodeID)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve node_id: %w", err)
	}

	return nodeID, nil
}

// UpsertEdge inserts an edge between two node ids. The pair is normalized so
// the undirected edge is stored once; inserting it again is a no-op.
func (s *Storage) UpsertEdge(fromID, toID int) error {
	if toID < fromID {
		fromID, toID = toID, fromID
	}

	_, err := s.db.Exec(`
		INSERT INTO edges (from_node_id, to_node_id)
		VALUES (?, ?)
		ON CONFLICT(from_node_id, to_node_id) DO NOTHING
	`, fromID, toID)

	if err != nil {
		return fmt.Errorf("failed to upsert edge: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by steam id, returns nil if not found
func (s *Storage) GetPlayer(steamID string) (*Player, error) {
	var player Player
	err := s.db.QueryRow(`
		SELECT player_id, steam_id, custom_id, persona_name, discovered_at
		FROM players
		WHERE steam_id = ?
	`, steamID).Scan(&player.PlayerID, &player.SteamID, &player.CustomID, &player.PersonaName, &player.DiscoveredAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// LoadPlayers returns all persisted players in discovery order
func (s *Storage) LoadPlayers() ([]*Player, error) {
	rows, err := s.db.Query(`
		SELECT player_id, steam_id, custom_id, persona_name, discovered_at
		FROM players
		ORDER BY player_id ASC
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		var player Player
		if err := rows.Scan(&player.PlayerID, &player.SteamID, &player.CustomID, &player.PersonaName, &player.DiscoveredAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

// LoadEdges returns all persisted edges as name pairs
func (s *Storage) LoadEdges() ([][2]string, error) {
	rows, err := s.db.Query(`
		SELECT a.name, b.name
		FROM edges e
		JOIN nodes a ON a.node_id = e.from_node_id
		JOIN nodes b ON b.node_id = e.to_node_id
		ORDER BY e.edge_id ASC
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to load edges: %w", err)
	}
	defer rows.Close()

	var edges [][2]string
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, [2]string{from, to})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edges: %w", err)
	}

	return edges, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}
