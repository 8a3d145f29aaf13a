package util

import "strings"

// Slug lowercases s, collapses runs of non-alphanumeric characters into
// single underscores, and truncates to maxLen. Used for embedding topics and
// difficulty tiers in generated identifiers.
func Slug(s string, maxLen int) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimSuffix(out[:maxLen], "_")
	}
	return out
}
