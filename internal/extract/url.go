// Package extract interprets inbound share payloads and talks to the recipe
// extraction service.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bunchesapp/bunches-go/internal/domain"
)

var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// trailingPunctuation is stripped from URL candidates; share sheets routinely
// append sentence punctuation to pasted links.
const trailingPunctuation = ".,;:!?)]}>\"'"

// FirstURL returns the first well-formed http(s) URL in free text.
func FirstURL(text string) (string, error) {
	for _, match := range urlPattern.FindAllString(text, -1) {
		candidate := strings.TrimRight(match, trailingPunctuation)
		if candidate == "" {
			continue
		}
		parsed, err := url.Parse(candidate)
		if err != nil || parsed.Host == "" {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrNoURLFound, truncate(text, 80))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
