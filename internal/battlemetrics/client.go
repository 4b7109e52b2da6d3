package battlemetrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://api.battlemetrics.com"

// Client reads the active player roster for a server from the BattleMetrics
// API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a roster client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// serverResponse models the slice of the API document the roster needs: the
// included player resources and their display names.
type serverResponse struct {
	Included []struct {
		Type       string `json:"type"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"included"`
}

// Players returns the display names of players currently on the server, in
// document order.
func (c *Client) Players(serverID string) ([]string, error) {
	url := fmt.Sprintf("%s/servers/%s?include=player", c.baseURL, serverID)
	logrus.Debugf("Requesting %s", url)

	res, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server %s: %w", serverID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server %s request returned status %d", serverID, res.StatusCode)
	}

	var doc serverResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse server %s response: %w", serverID, err)
	}

	var players []string
	for _, resource := range doc.Included {
		if resource.Type != "" && resource.Type != "player" {
			continue
		}
		players = append(players, resource.Attributes.Name)
	}

	logrus.Debugf("Server %s roster: %d players", serverID, len(players))
	return players, nil
}
