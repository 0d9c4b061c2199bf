package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// splitLines splits text on literal "\n" escapes, the multi-line convention
// of the diagram language.
func splitLines(text string) []string {
	return strings.Split(text, `\n`)
}

// textWidth measures text in user units: the widest escaped line in display
// cells times CharWidth. Display cells (not bytes or runes) keep wide
// characters from underestimating the box.
func (c Config) textWidth(text string) float64 {
	max := 0
	for _, line := range splitLines(text) {
		if w := runewidth.StringWidth(line); w > max {
			max = w
		}
	}
	return float64(max) * c.CharWidth
}

// textHeight measures the height of (possibly multi-line) text.
func (c Config) textHeight(text string) float64 {
	return float64(len(splitLines(text))) * c.LineHeight
}
