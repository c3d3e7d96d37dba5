package webhook

import "strings"

// SanitizePlainText strips angle brackets and ASCII control characters
// (0x00-0x1F, 0x7F), then trims leading/trailing whitespace. Applied to
// free-text fields before persistence; never to URLs, enums, or numbers.
func SanitizePlainText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '<' || r == '>' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
