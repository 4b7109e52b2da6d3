package steam

import (
	"fmt"
	"sync"
)

// pageCache memoizes raw page content for the lifetime of one run. Profile and
// friends pages are keyed by steam id, comment pages by a steamid@page
// composite key. Entries are never invalidated: the community's id bindings
// are treated as immutable for the run's duration.
type pageCache struct {
	mu       sync.RWMutex
	profiles map[string]string
	friends  map[string]string
	comments map[string]string
}

func newPageCache() *pageCache {
	return &pageCache{
		profiles: make(map[string]string),
		friends:  make(map[string]string),
		comments: make(map[string]string),
	}
}

func (pc *pageCache) getProfile(steamID string) (string, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	content, ok := pc.profiles[steamID]
	return content, ok
}

func (pc *pageCache) putProfile(steamID, content string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.profiles[steamID] = content
}

func (pc *pageCache) hasProfile(steamID string) bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	_, ok := pc.profiles[steamID]
	return ok
}

func (pc *pageCache) getFriends(steamID string) (string, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	content, ok := pc.friends[steamID]
	return content, ok
}

func (pc *pageCache) putFriends(steamID, content string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.friends[steamID] = content
}

func (pc *pageCache) getComments(steamID string, page int) (string, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	content, ok := pc.comments[commentsKey(steamID, page)]
	return content, ok
}

func (pc *pageCache) putComments(steamID string, page int, content string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.comments[commentsKey(steamID, page)] = content
}

// commentsKey creates the composite memo key for one comment page
func commentsKey(steamID string, page int) string {
	return fmt.Sprintf("%s@%d", steamID, page)
}
