package steam

import "fmt"

const communityBase = "https://steamcommunity.com"

// ProfileURL returns the profile page URL for a steam id.
func ProfileURL(steamID string) string {
	return fmt.Sprintf("%s/profiles/%s/?l=english", communityBase, steamID)
}

// VanityURL returns the profile page URL for a vanity (custom) id.
func VanityURL(customID string) string {
	return fmt.Sprintf("%s/id/%s/?l=english", communityBase, customID)
}

// FriendsURL returns the friends list page URL for a steam id.
func FriendsURL(steamID string) string {
	return fmt.Sprintf("%s/profiles/%s/friends/?l=english", communityBase, steamID)
}

// CommentsURL returns the URL for one page of a profile's comment thread.
func CommentsURL(steamID string, page int) string {
	return fmt.Sprintf("%s/profiles/%s/allcomments/?l=english&ctp=%d", communityBase, steamID, page)
}
