package utils

import "strings"

// SplitList turns comma-separated text into a trimmed, non-empty ordered
// list. Used for project tags and about-page skills.
func SplitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
