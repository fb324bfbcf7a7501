package scraper

import (
	"regexp"
	"strings"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// emailDenylist: an extracted address containing any of these substrings
// (case-insensitive) is a role/placeholder address, not a real contact.
var emailDenylist = []string{"noreply", "no-reply", "donotreply", "example", "sentry", "test@"}

// Clean trims text and collapses interior whitespace runs to single spaces.
// Idempotent: Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StripHTML replaces angle-bracket tags with a single space and trims.
// Entities are not decoded; malformed tags are removed best-effort.
func StripHTML(text string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(text, " "))
}

// ExtractEmail returns the first email-shaped token in text that does not
// match the denylist, or "" if none qualifies.
func ExtractEmail(text string) string {
	for _, candidate := range emailRe.FindAllString(text, -1) {
		lower := strings.ToLower(candidate)
		bad := false
		for _, deny := range emailDenylist {
			if strings.Contains(lower, deny) {
				bad = true
				break
			}
		}
		if !bad {
			return candidate
		}
	}
	return ""
}

// truncate caps s at n characters (runes, so multi-byte text is not split
// mid-character).
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
