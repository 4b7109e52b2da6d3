package steam

// Provenance tags for extracted person records
const (
	SourceFriend  = "friend"
	SourceComment = "comment"
)

// Person is a partially identified profile reference extracted from a friends
// list or a comment thread. Either identifier may be empty when the page did
// not expose it; an empty identifier means "not known", and equality checks
// must never treat two empty identifiers as a match.
type Person struct {
	SteamID  string
	CustomID string
	Name     string
	Source   string
}

// Profile is a fully resolved Steam profile. CustomID is empty when the
// profile never claimed a vanity URL, which is a normal state.
type Profile struct {
	SteamID        string
	CustomID       string
	Name           string
	FriendsPublic  bool
	CommentsPublic bool
	CommentCount   int
}
