package steam

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns mirror the markup of live community pages. The steam id is embedded
// in script data rather than DOM attributes, so extraction is plain text
// matching over the fetched content.
var (
	steamIDPattern  = regexp.MustCompile(`,"steamid":"(.*?)",`)
	customIDPattern = regexp.MustCompile(`g_rgProfileData = \{"url":"https://steamcommunity\.com/id/(.*?)/`)
	personaPattern  = regexp.MustCompile(`(?s)<div class="persona_name" style="font-size: 24px;">.*?<span class="actual_persona_name">(.*?)</span>`)

	friendPattern = regexp.MustCompile(`(?s)data-steamid="(.+?)".*?href="https://steamcommunity\.com/(.+?)">.*?<div class="friend_block_content">(.+?)<br>`)

	commentAuthorByIDPattern     = regexp.MustCompile(`(?s)hoverunderline commentthread_author_link" href="https://steamcommunity\.com/profiles/(.*?)".*?<bdi>(.*?)</bdi>`)
	commentAuthorByVanityPattern = regexp.MustCompile(`(?s)hoverunderline commentthread_author_link" href="https://steamcommunity\.com/id/(.*?)".*?<bdi>(.*?)</bdi>`)
	commentCountPattern          = regexp.MustCompile(`<spanid="commentthread_profile_\d+_totalcount">(.*?)</span>`)

	whitespacePattern = regexp.MustCompile(`\s+`)
	nonDigitPattern   = regexp.MustCompile(`[^0-9]`)
)

// extractSteamID pulls the permanent 64-bit id out of profile page content.
// Returns "" when the pattern is absent.
func extractSteamID(content string) string {
	m := steamIDPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractCustomID pulls the vanity id out of profile page content. Profiles
// without a vanity URL yield "".
func extractCustomID(content string) string {
	m := customIDPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractPersonaName pulls the display name out of profile page content.
func extractPersonaName(content string) string {
	m := personaPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

// squeeze removes all whitespace and lowercases, normalizing markup whose
// indentation varies between page renders.
func squeeze(content string) string {
	return strings.ToLower(whitespacePattern.ReplaceAllString(content, ""))
}

// friendsListPublic reports whether the profile page links to a visible
// friends list.
func friendsListPublic(content string) bool {
	return strings.Contains(squeeze(content), `/friends/"><spanclass="count_link_label">friends</span>`)
}

// commentsPublic reports whether the profile page shows a comment thread.
func commentsPublic(content string) bool {
	return strings.Contains(squeeze(content), `<spanclass="commentthread_header_label">comments</span>`)
}

// extractCommentCount returns the profile's reported total comment count, or 0
// when the marker is missing or unparseable.
func extractCommentCount(content string) int {
	m := commentCountPattern.FindStringSubmatch(squeeze(content))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(nonDigitPattern.ReplaceAllString(m[1], ""))
	if err != nil {
		return 0
	}
	return n
}

// extractFriends parses a friends list page into person records. Friend blocks
// always carry the steam id; the vanity id is only present when the friend's
// profile link uses the /id/ form.
func extractFriends(content string) []Person {
	matches := friendPattern.FindAllStringSubmatch(content, -1)

	friends := make([]Person, 0, len(matches))
	for _, m := range matches {
		steamID, path, name := m[1], m[2], m[3]

		customID := ""
		if strings.HasPrefix(path, "id/") {
			customID = strings.TrimPrefix(path, "id/")
		}

		friends = append(friends, Person{
			SteamID:  steamID,
			CustomID: customID,
			Name:     name,
			Source:   SourceFriend,
		})
	}

	return friends
}

// extractCommentAuthors parses one comment thread page. It returns the number
// of comments read on the page (before dedup, so the caller can track progress
// against the profile's total count) and the deduplicated author records.
// Authors linked via /profiles/ carry a steam id, authors linked via /id/ only
// a vanity id.
func extractCommentAuthors(content string) (int, []Person) {
	byID := commentAuthorByIDPattern.FindAllStringSubmatch(content, -1)
	byVanity := commentAuthorByVanityPattern.FindAllStringSubmatch(content, -1)

	read := len(byID) + len(byVanity)

	var authors []Person
	seenSteamID := make(map[string]bool)
	seenCustomID := make(map[string]bool)

	for _, m := range byID {
		steamID, name := m[1], m[2]
		if seenSteamID[steamID] {
			continue
		}
		seenSteamID[steamID] = true
		authors = append(authors, Person{SteamID: steamID, Name: name, Source: SourceComment})
	}

	for _, m := range byVanity {
		customID, name := m[1], m[2]
		if seenCustomID[customID] {
			continue
		}
		seenCustomID[customID] = true
		authors = append(authors, Person{CustomID: customID, Name: name, Source: SourceComment})
	}

	return read, authors
}
