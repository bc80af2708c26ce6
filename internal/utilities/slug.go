package utilities

import "strings"

// Slugify derives a URL-safe slug from a title: lowercase, whitespace runs
// become single hyphens, and anything outside [a-z0-9-] is stripped. The
// result is deterministic for a fixed title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
