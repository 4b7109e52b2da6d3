package steam

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// ErrExtraction is returned when an expected pattern is missing from fetched
// content. The steam id is the sole dedup key of the crawl, so there is no
// degraded path when it cannot be extracted.
var ErrExtraction = errors.New("expected pattern not found in page content")

// Client fetches and parses community pages. All fetches go through the page
// cache, and every vanity id encountered anywhere is recorded in the
// translation table, so each page is requested at most once per run.
type Client struct {
	collector *colly.Collector
	cache     *pageCache

	vanityMu sync.Mutex
	vanity   map[string]string // custom id -> steam id

	// Reports (pagesFetched, cacheHits) deltas; a plain callback keeps the
	// client decoupled from the metrics tracker.
	statsCallback func(pagesFetched, cacheHits int)
}

// NewClient creates a client with the given request timeout. statsCallback may
// be nil.
func NewClient(timeout time.Duration, statsCallback func(int, int)) *Client {
	// Revisits must be allowed: the page cache is the authority on dedup, and
	// the same URL can legitimately be requested from a cloned collector.
	collector := colly.NewCollector(colly.AllowURLRevisit())
	collector.SetRequestTimeout(timeout)

	return &Client{
		collector:     collector,
		cache:         newPageCache(),
		vanity:        make(map[string]string),
		statsCallback: statsCallback,
	}
}

// fetch performs one blocking GET and returns the body. A transport error or
// non-2xx status is an error; callers treat it as fatal to the run.
func (c *Client) fetch(url string) (string, error) {
	logrus.Debugf("Requesting %s", url)

	var body string
	var reqErr error

	col := c.collector.Clone()
	col.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("request to %s failed with status %d: %w", url, r.StatusCode, err)
		} else {
			reqErr = fmt.Errorf("request to %s failed: %w", url, err)
		}
	})

	if err := col.Visit(url); err != nil {
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	col.Wait()

	if reqErr != nil {
		return "", reqErr
	}

	c.reportStats(1, 0)
	return body, nil
}

func (c *Client) reportStats(pagesFetched, cacheHits int) {
	if c.statsCallback != nil {
		c.statsCallback(pagesFetched, cacheHits)
	}
}

// registerVanity records a custom id -> steam id binding. First write wins;
// the binding is immutable for the run.
func (c *Client) registerVanity(customID, steamID string) {
	if customID == "" || steamID == "" {
		return
	}

	c.vanityMu.Lock()
	defer c.vanityMu.Unlock()
	if _, ok := c.vanity[customID]; !ok {
		c.vanity[customID] = steamID
	}
}

func (c *Client) lookupVanity(customID string) (string, bool) {
	c.vanityMu.Lock()
	defer c.vanityMu.Unlock()
	steamID, ok := c.vanity[customID]
	return steamID, ok
}

// profileContent returns the profile page for a steam id, memoized. A fetched
// page that reveals a vanity id also populates the translation table.
func (c *Client) profileContent(steamID string) (string, error) {
	if content, ok := c.cache.getProfile(steamID); ok {
		logrus.Debugf("Profile cache hit for steam id %s", steamID)
		c.reportStats(0, 1)
		return content, nil
	}

	content, err := c.fetch(ProfileURL(steamID))
	if err != nil {
		return "", err
	}

	c.cache.putProfile(steamID, content)
	c.registerVanity(extractCustomID(content), steamID)
	return content, nil
}

// profileContentByVanity returns the profile page for a vanity id, memoized
// under the steam id the page reveals.
func (c *Client) profileContentByVanity(customID string) (string, error) {
	if steamID, ok := c.lookupVanity(customID); ok && c.cache.hasProfile(steamID) {
		logrus.Debugf("Profile cache hit for vanity id %s", customID)
		c.reportStats(0, 1)
		content, _ := c.cache.getProfile(steamID)
		return content, nil
	}

	content, err := c.fetch(VanityURL(customID))
	if err != nil {
		return "", err
	}

	steamID := extractSteamID(content)
	if steamID == "" {
		return "", fmt.Errorf("steam id missing from profile page for vanity id %q: %w", customID, ErrExtraction)
	}

	c.registerVanity(customID, steamID)
	if !c.cache.hasProfile(steamID) {
		c.cache.putProfile(steamID, content)
	}
	return content, nil
}

// Profile fetches and parses a profile by steam id.
func (c *Client) Profile(steamID string) (Profile, error) {
	content, err := c.profileContent(steamID)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		SteamID:        steamID,
		CustomID:       extractCustomID(content),
		Name:           extractPersonaName(content),
		FriendsPublic:  friendsListPublic(content),
		CommentsPublic: commentsPublic(content),
	}
	if p.CommentsPublic {
		p.CommentCount = extractCommentCount(content)
	}

	logrus.Debugf("Profile %s: name=%q custom=%q friends_public=%t comments_public=%t",
		steamID, p.Name, p.CustomID, p.FriendsPublic, p.CommentsPublic)
	return p, nil
}

// SteamIDForVanity resolves a vanity id to the permanent steam id, fetching
// the profile page on a translation table miss.
func (c *Client) SteamIDForVanity(customID string) (string, error) {
	if steamID, ok := c.lookupVanity(customID); ok {
		logrus.Debugf("Vanity table hit: %s -> %s", customID, steamID)
		return steamID, nil
	}

	content, err := c.profileContentByVanity(customID)
	if err != nil {
		return "", err
	}

	steamID := extractSteamID(content)
	if steamID == "" {
		return "", fmt.Errorf("steam id missing from profile page for vanity id %q: %w", customID, ErrExtraction)
	}
	return steamID, nil
}

// Friends fetches and parses a profile's friends list. Every friend that
// exposes a vanity id feeds the translation table.
func (c *Client) Friends(steamID string) ([]Person, error) {
	content, ok := c.cache.getFriends(steamID)
	if ok {
		logrus.Debugf("Friends cache hit for steam id %s", steamID)
		c.reportStats(0, 1)
	} else {
		var err error
		content, err = c.fetch(FriendsURL(steamID))
		if err != nil {
			return nil, err
		}
		c.cache.putFriends(steamID, content)
	}

	friends := extractFriends(content)
	for _, friend := range friends {
		c.registerVanity(friend.CustomID, friend.SteamID)
	}

	logrus.Debugf("Friends list for %s: %d entries", steamID, len(friends))
	return friends, nil
}

// CommentAuthors fetches one page of a profile's comment thread and returns
// the number of comments read on the page plus the deduplicated authors.
func (c *Client) CommentAuthors(steamID string, page int) (int, []Person, error) {
	content, ok := c.cache.getComments(steamID, page)
	if ok {
		logrus.Debugf("Comments cache hit for steam id %s page %d", steamID, page)
		c.reportStats(0, 1)
	} else {
		var err error
		content, err = c.fetch(CommentsURL(steamID, page))
		if err != nil {
			return 0, nil, err
		}
		c.cache.putComments(steamID, page, content)
	}

	read, authors := extractCommentAuthors(content)
	logrus.Debugf("Comments page %d for %s: %d comments read, %d authors", page, steamID, read, len(authors))
	return read, authors, nil
}
