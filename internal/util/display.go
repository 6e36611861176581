package util

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultBannerWidth is used when the terminal width cannot be determined.
const DefaultBannerWidth = 50

// GetDisplayWidth calculates the actual display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TerminalWidth returns the current terminal width, or DefaultBannerWidth
// when stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultBannerWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultBannerWidth
	}
	return width
}

// CenterText centers text within the given width using the given fill string.
// Text wider than the requested width is returned unchanged.
func CenterText(text string, width int, fill string) string {
	textWidth := GetDisplayWidth(text)
	if textWidth >= width {
		return text
	}
	if fill == "" {
		fill = " "
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(fill, padding) + text + strings.Repeat(fill, width-padding-textWidth)
}

// Banner renders a session identifier centered in a fixed-width "=" banner.
func Banner(text string, width int) string {
	return CenterText(text, width, "=")
}
