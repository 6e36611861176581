package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenterText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		fill  string
		want  string
	}{
		{"even padding", "ab", 6, "=", "==ab=="},
		{"odd padding leans right", "abc", 6, "=", "=abc=="},
		{"space fill by default", "ab", 4, "", " ab "},
		{"wider than width unchanged", "abcdef", 4, "=", "abcdef"},
		{"exact width unchanged", "abcd", 4, "=", "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CenterText(tt.text, tt.width, tt.fill))
		})
	}
}

func TestCenterTextWideRunes(t *testing.T) {
	// CJK runes are two columns wide.
	got := CenterText("日本", 8, "=")
	assert.Equal(t, "==日本==", got)
	assert.Equal(t, 8, GetDisplayWidth(got))
}

func TestBanner(t *testing.T) {
	got := Banner("20210501T201001", 50)

	assert.Equal(t, 50, GetDisplayWidth(got))
	assert.Contains(t, got, "=20210501T201001=")
	assert.True(t, strings.HasPrefix(got, "="))
	assert.True(t, strings.HasSuffix(got, "="))
}

func TestTerminalWidthFallsBack(t *testing.T) {
	// Test runners do not attach a terminal to stdout.
	assert.Equal(t, DefaultBannerWidth, TerminalWidth())
}
