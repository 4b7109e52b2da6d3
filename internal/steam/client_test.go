package steam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests below pre-seed the page cache and translation table, so no request
// ever leaves the process.

func TestSteamIDForVanityUsesTranslationTable(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.registerVanity("alicerules", "76561198000000001")

	steamID, err := c.SteamIDForVanity("alicerules")
	require.NoError(t, err)
	assert.Equal(t, "76561198000000001", steamID)
}

func TestRegisterVanityFirstWriteWins(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.registerVanity("alicerules", "76561198000000001")
	c.registerVanity("alicerules", "76561198000000099")

	steamID, ok := c.lookupVanity("alicerules")
	assert.True(t, ok)
	assert.Equal(t, "76561198000000001", steamID)
}

func TestRegisterVanityIgnoresEmptyIDs(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.registerVanity("", "76561198000000001")
	c.registerVanity("alicerules", "")

	_, ok := c.lookupVanity("")
	assert.False(t, ok)
	_, ok = c.lookupVanity("alicerules")
	assert.False(t, ok)
}

func TestProfileServedFromCache(t *testing.T) {
	var fetched, hits int
	c := NewClient(time.Second, func(f, h int) {
		fetched += f
		hits += h
	})
	c.cache.putProfile("76561198000000001", profilePage)

	profile, err := c.Profile("76561198000000001")
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, "alicerules", profile.CustomID)
	assert.True(t, profile.FriendsPublic)
	assert.True(t, profile.CommentsPublic)
	assert.Equal(t, 1024, profile.CommentCount)

	assert.Equal(t, 0, fetched)
	assert.Equal(t, 1, hits)
}

func TestVanityRoundTrip(t *testing.T) {
	// Resolving alias -> steam id -> alias lands back on the original alias.
	c := NewClient(time.Second, nil)
	c.registerVanity("alicerules", "76561198000000001")
	c.cache.putProfile("76561198000000001", profilePage)

	steamID, err := c.SteamIDForVanity("alicerules")
	require.NoError(t, err)

	profile, err := c.Profile(steamID)
	require.NoError(t, err)
	assert.Equal(t, "alicerules", profile.CustomID)
}

func TestProfileWithoutVanityResolvesToEmpty(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.cache.putProfile("76561198000000009", privateProfilePage)

	profile, err := c.Profile("76561198000000009")
	require.NoError(t, err)
	assert.Equal(t, "", profile.CustomID)
}

func TestFriendsServedFromCachePopulatesTranslationTable(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.cache.putFriends("76561198000000001", friendsPage)

	friends, err := c.Friends("76561198000000001")
	require.NoError(t, err)
	require.Len(t, friends, 2)

	steamID, ok := c.lookupVanity("carolplays")
	assert.True(t, ok)
	assert.Equal(t, "76561198000000003", steamID)
}

func TestCommentAuthorsServedFromCache(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.cache.putComments("76561198000000001", 1, commentsPage)

	read, authors, err := c.CommentAuthors("76561198000000001", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, read)
	assert.Len(t, authors, 2)
}

func TestCommentsCacheKeyIncludesPage(t *testing.T) {
	c := NewClient(time.Second, nil)
	c.cache.putComments("76561198000000001", 1, commentsPage)

	_, ok := c.cache.getComments("76561198000000001", 2)
	assert.False(t, ok)
	_, ok = c.cache.getComments("76561198000000001", 1)
	assert.True(t, ok)
}
