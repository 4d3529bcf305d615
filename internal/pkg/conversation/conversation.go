// Package conversation derives conversation keys from participant identities.
package conversation

import (
	"sort"
	"strings"
)

// Separator joins the two sorted identities of a key. Identities are UUIDs and never contain it.
const Separator = "_"

// Key returns the same string for (a, b) and (b, a).
func Key(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, Separator)
}

// Participants splits a key back into its two identities.
func Participants(key string) (string, string, bool) {
	a, b, ok := strings.Cut(key, Separator)
	if !ok || a == "" || b == "" || strings.Contains(b, Separator) {
		return "", "", false
	}
	return a, b, true
}

// Other returns the counterpart of userID in the conversation.
// It reports false when userID is not a participant.
func Other(key, userID string) (string, bool) {
	a, b, ok := Participants(key)
	if !ok {
		return "", false
	}

	switch userID {
	case a:
		return b, true
	case b:
		return a, true
	default:
		return "", false
	}
}

// Has reports whether userID is one of the participants of key.
func Has(key, userID string) bool {
	_, ok := Other(key, userID)
	return ok
}
