package heuristic

import (
	"sort"
	"strings"
)

// commonWords is the bundled wordlist used by the substitution and
// dictionary-word factors. Entries are lowercase, at least four characters
// long, and ordered longest-first so that FindCommonWord reports the most
// specific match ("football" before "ball" would matter if both appeared).
//
// The list covers the words and names that dominate public leak
// compilations. It is intentionally small: the offline breach corpus handles
// exact matches against full leaked passwords; this list only needs to catch
// dictionary cores embedded in otherwise-decorated passwords.
var commonWords = []string{
	// Passwords about passwords
	"passwort", "password", "passw0rd", "letmein", "trustno1", "secret",
	"qwertyuiop", "iloveyou", "whatever", "sunshine", "princess",
	"superman", "batman", "starwars", "pokemon", "welcome", "master",
	"shadow", "dragon", "monkey", "freedom", "ninja", "login", "admin",
	"root",

	// Sports and teams
	"football", "baseball", "soccer", "hockey", "liverpool", "chelsea",
	"arsenal", "lakers", "yankees",

	// Common first names
	"michael", "jennifer", "jessica", "michelle", "charlie", "daniel",
	"anthony", "matthew", "jordan", "ashley", "nicole", "hannah",
	"thomas", "robert", "andrew", "joshua", "amanda", "justin",
	"taylor", "austin", "tyler", "maria", "david", "james",

	// Everyday words
	"computer", "internet", "samsung", "summer", "winter", "cheese",
	"banana", "coffee", "flower", "cookie", "orange", "purple", "silver",
	"golden", "pepper", "ginger", "angel", "happy", "peace", "money",
	"love",
}

func init() {
	// Longest-first ordering makes the detected word deterministic when a
	// password contains several overlapping entries.
	sort.SliceStable(commonWords, func(i, j int) bool {
		return len(commonWords[i]) > len(commonWords[j])
	})
}

// minDictionaryWordLength is the shortest common-word substring that counts
// as a dictionary hit. Shorter fragments ("love" yes, "ann" no) produce too
// many false positives on random strings.
const minDictionaryWordLength = 4

// FindCommonWord reports the longest bundled common word contained in s.
// The input should already be lowercased; matching is exact substring
// containment. Returns false when no word of at least
// minDictionaryWordLength characters is present.
func FindCommonWord(s string) (string, bool) {
	if len(s) < minDictionaryWordLength {
		return "", false
	}
	for _, word := range commonWords {
		if len(word) < minDictionaryWordLength {
			continue
		}
		if strings.Contains(s, word) {
			return word, true
		}
	}
	return "", false
}
