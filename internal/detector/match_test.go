package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hviken/teamscope/internal/steam"
)

func TestSameIdentity(t *testing.T) {
	a := steam.Person{SteamID: "1", CustomID: "alice", Name: "Alice"}

	assert.True(t, sameIdentity(a, steam.Person{SteamID: "1", Name: "Other"}))
	assert.True(t, sameIdentity(a, steam.Person{CustomID: "alice", Name: "Other"}))
	assert.False(t, sameIdentity(a, steam.Person{SteamID: "2", CustomID: "bob"}))

	// Names never establish identity.
	assert.False(t, sameIdentity(a, steam.Person{SteamID: "2", Name: "Alice"}))

	// Absent identifiers never match each other.
	assert.False(t, sameIdentity(steam.Person{Name: "X"}, steam.Person{Name: "X"}))
}

func TestDedupPeopleKeepsFirstOccurrence(t *testing.T) {
	people := []steam.Person{
		{SteamID: "1", Name: "Alice", Source: steam.SourceFriend},
		{SteamID: "2", Name: "Bob"},
		{SteamID: "1", Name: "Alice", Source: steam.SourceComment},
		{CustomID: "bob", Name: "Bob"},
		{CustomID: "bob", Name: "Bobby"},
	}

	out := dedupPeople(people)
	assert.Len(t, out, 4)
	assert.Equal(t, steam.SourceFriend, out[0].Source)
}

func TestRemoveSelf(t *testing.T) {
	people := []steam.Person{
		{SteamID: "1", Name: "Alice"},
		{CustomID: "alice", Name: "Alice"},
		{SteamID: "2", Name: "Bob"},
	}

	out := removeSelf(people, "1", "alice")
	assert.Len(t, out, 1)
	assert.Equal(t, "2", out[0].SteamID)
}

func TestRemoveSelfWithoutVanityKeepsVanityOnlyPeople(t *testing.T) {
	// A profile with no vanity id must not match people whose vanity id is
	// merely unknown.
	people := []steam.Person{
		{CustomID: "", SteamID: "", Name: "Mystery"},
	}

	out := removeSelf(people, "1", "")
	assert.Len(t, out, 1)
}

func TestMatchRoster(t *testing.T) {
	roster := map[string]bool{"Alice": true, "Bob": true}
	people := []steam.Person{
		{SteamID: "1", Name: "Alice"},
		{SteamID: "2", Name: "Dan"},
		{SteamID: "3", Name: "Bob"},
	}

	out := matchRoster(people, roster)
	assert.Len(t, out, 2)
	assert.Equal(t, "Alice", out[0].Name)
	assert.Equal(t, "Bob", out[1].Name)
}

func TestExcludeFound(t *testing.T) {
	found := []Player{
		{SteamID: "1", CustomID: "alice", Name: "Alice"},
	}
	people := []steam.Person{
		{SteamID: "1", Name: "Alice"},
		{CustomID: "alice", Name: "Alice"},
		{SteamID: "2", Name: "Bob"},
	}

	out := excludeFound(people, found)
	assert.Len(t, out, 1)
	assert.Equal(t, "2", out[0].SteamID)
}

func TestWorklistIsFIFO(t *testing.T) {
	w := newWorklist()
	w.push(entry{steamID: "1", depth: 0})
	w.push(entry{steamID: "2", depth: 1})

	assert.Equal(t, 2, w.size())

	e, ok := w.pop()
	assert.True(t, ok)
	assert.Equal(t, "1", e.steamID)

	e, ok = w.pop()
	assert.True(t, ok)
	assert.Equal(t, "2", e.steamID)

	_, ok = w.pop()
	assert.False(t, ok)
}
