package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunchesapp/bunches-go/internal/domain"
)

func TestFirstURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare url",
			text: "https://example.com/recipes/tacos",
			want: "https://example.com/recipes/tacos",
		},
		{
			name: "url mid sentence with trailing period",
			text: "You have to try this https://example.com/tacos. So good!",
			want: "https://example.com/tacos",
		},
		{
			name: "parenthesized url",
			text: "the recipe (https://example.com/pie) from grandma",
			want: "https://example.com/pie",
		},
		{
			name: "trailing exclamation and question marks",
			text: "make this https://example.com/cake!?",
			want: "https://example.com/cake",
		},
		{
			name: "quoted url",
			text: `she sent "https://example.com/soup" yesterday`,
			want: "https://example.com/soup",
		},
		{
			name: "http scheme",
			text: "old blog at http://legacy.example.com/bread",
			want: "http://legacy.example.com/bread",
		},
		{
			name: "first of two urls wins",
			text: "try https://example.com/first then https://example.com/second",
			want: "https://example.com/first",
		},
		{
			name: "query parameters survive",
			text: "https://example.com/r?id=42&ref=share",
			want: "https://example.com/r?id=42&ref=share",
		},
		{
			name: "uppercase scheme",
			text: "HTTPS://EXAMPLE.COM/LOUD",
			want: "HTTPS://EXAMPLE.COM/LOUD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FirstURL(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstURL_NoURL(t *testing.T) {
	for _, text := range []string{
		"",
		"no links here",
		"ftp://example.com/not-http",
		"https:// broken",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := FirstURL(text)
			assert.ErrorIs(t, err, domain.ErrNoURLFound)
		})
	}
}
