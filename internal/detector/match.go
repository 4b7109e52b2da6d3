package detector

import "github.com/hviken/teamscope/internal/steam"

// sameIdentity reports whether two person records refer to the same profile.
// Equality requires a non-empty identifier match on either scheme; display
// names are never used, and absent identifiers never match each other.
func sameIdentity(a, b steam.Person) bool {
	if a.SteamID != "" && a.SteamID == b.SteamID {
		return true
	}
	if a.CustomID != "" && a.CustomID == b.CustomID {
		return true
	}
	return false
}

// dedupPeople removes duplicate person records by identity equality, keeping
// the first occurrence. Candidate lists are small, so the quadratic scan is
// fine.
func dedupPeople(people []steam.Person) []steam.Person {
	var out []steam.Person
	for _, p := range people {
		exists := false
		for _, kept := range out {
			if sameIdentity(p, kept) {
				exists = true
				break
			}
		}
		if !exists {
			out = append(out, p)
		}
	}
	return out
}

// removeSelf drops records referring to the visited profile itself, matched by
// either identifier.
func removeSelf(people []steam.Person, steamID, customID string) []steam.Person {
	var out []steam.Person
	for _, p := range people {
		if p.SteamID != "" && p.SteamID == steamID {
			continue
		}
		if customID != "" && p.CustomID == customID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchRoster keeps people whose display name is currently on the server
// roster. Matching is exact name equality: two different profiles sharing a
// name are indistinguishable here, a known limitation of the roster source,
// which exposes names only.
func matchRoster(people []steam.Person, roster map[string]bool) []steam.Person {
	var out []steam.Person
	for _, p := range people {
		if roster[p.Name] {
			out = append(out, p)
		}
	}
	return out
}

// excludeFound drops people already present in the found-players list, by
// identity equality.
func excludeFound(people []steam.Person, found []Player) []steam.Person {
	var out []steam.Person
	for _, p := range people {
		exists := false
		for _, f := range found {
			if p.SteamID != "" && p.SteamID == f.SteamID {
				exists = true
				break
			}
			if p.CustomID != "" && p.CustomID == f.CustomID {
				exists = true
				break
			}
		}
		if !exists {
			out = append(out, p)
		}
	}
	return out
}
