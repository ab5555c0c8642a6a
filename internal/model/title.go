package model

import "strings"

// MaxTitleLength is the number of characters kept when deriving a title.
const MaxTitleLength = 30

// GenerateTitle derives a session title from the first user message. Length
// is counted in runes so Japanese text is not cut mid-character.
func GenerateTitle(content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) <= MaxTitleLength {
		return trimmed
	}
	return string(runes[:MaxTitleLength]) + "..."
}
