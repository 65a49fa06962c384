package logic

import (
	"strings"

	"npisearch/internal/domain"
)

// FilterItems returns the items whose title or subtitle contains query,
// ignoring case, in their original order. A blank query matches nothing.
// items is never modified.
func FilterItems(items []domain.Item, query string) []domain.Item {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	q := strings.ToLower(query)
	var matches []domain.Item
	for _, item := range items {
		if MatchesItem(item, q) {
			matches = append(matches, item)
		}
	}
	return matches
}

// MatchesItem checks a single item against an already lowercased query
func MatchesItem(item domain.Item, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(item.Title), lowerQuery) {
		return true
	}
	return item.HasSubtitle && strings.Contains(strings.ToLower(item.Subtitle), lowerQuery)
}
