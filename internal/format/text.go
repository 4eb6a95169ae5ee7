// Package format turns raw backend strings into display-ready values. Every
// function here is pure and never fails; bad input degrades to a marker or to
// the input itself.
package format

import (
	"regexp"
	"strings"

	"github.com/kapu/figures-review-go/internal/constants"
)

// FallbackText returns the trimmed value, or the fallback marker when blank.
func FallbackText(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return constants.Markers.Fallback
}

// SplitPipeList splits on "|", trims each part and drops empty ones.
func SplitPipeList(value string) []string {
	parts := strings.Split(value, "|")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

var (
	newlineRuns   = regexp.MustCompile(`[\r\n]+`)
	ordinalPrefix = regexp.MustCompile(`^\d+[).\-\s]+`)
)

// ParseQuoteList splits a quote blob into individual quotes. Pipe-delimited
// text wins over newline-delimited text. Leading "1)", "2.", "3 -" style
// numbering is removed until none is left, so parsing is idempotent.
func ParseQuoteList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}

	var parts []string
	if strings.Contains(value, "|") {
		parts = SplitPipeList(value)
	} else {
		parts = newlineRuns.Split(value, -1)
	}

	quotes := make([]string, 0, len(parts))
	for _, part := range parts {
		if quote := stripOrdinal(strings.TrimSpace(part)); quote != "" {
			quotes = append(quotes, quote)
		}
	}
	return quotes
}

func stripOrdinal(s string) string {
	for {
		stripped := strings.TrimSpace(ordinalPrefix.ReplaceAllString(s, ""))
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// BioText renders a challenges field: several pipe parts become one per line,
// anything else goes through FallbackText.
func BioText(raw string) string {
	parts := SplitPipeList(raw)
	if len(parts) > 1 {
		return strings.Join(parts, "\n")
	}
	return FallbackText(raw)
}

// QuoteEntry pairs a quote with the image candidate at the same position.
type QuoteEntry struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	HasImage bool   `json:"has_image"`
}

// QuoteEntries parses the quote blob and attaches images by index. The two
// lists are not guaranteed to line up; a missing or non-http candidate just
// means no image for that quote.
func QuoteEntries(quotes, imagePaths string) []QuoteEntry {
	parsed := ParseQuoteList(quotes)
	candidates := SplitPipeList(imagePaths)

	entries := make([]QuoteEntry, 0, len(parsed))
	for i, text := range parsed {
		entry := QuoteEntry{Text: text}
		if i < len(candidates) && isHTTPURL(candidates[i]) {
			entry.ImageURL = candidates[i]
			entry.HasImage = true
		}
		entries = append(entries, entry)
	}
	return entries
}

// ImageLabel is what a text view shows in place of the image.
func (e QuoteEntry) ImageLabel() string {
	if e.HasImage {
		return e.ImageURL
	}
	return constants.Markers.ImagePending
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
