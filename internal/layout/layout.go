// Package layout implements greedy word wrapping and vertical cursor
// accounting for fixed-geometry pages.
//
// Coordinates are top-down: a cursor value is the distance of a baseline
// from the top edge of the page, so the cursor grows as lines are added.
// The package never creates pages; callers compare the cursor against their
// bottom margin with Fits and start a new page themselves.
package layout

import "strings"

// LineSpacing is the ratio between line pitch and font size.
const LineSpacing = 1.5

// Measure returns the rendered width of text at the active font and size.
type Measure func(text string) float64

// Line is one wrapped line and the baseline it is drawn on.
type Line struct {
	Text     string
	Baseline float64
}

// Engine wraps text for one font size and line width.
type Engine struct {
	Measure  Measure
	FontSize float64
	MaxWidth float64
}

// LineHeight returns the pitch between consecutive baselines at size.
func LineHeight(size float64) float64 {
	return size * LineSpacing
}

// Pitch returns the line pitch for the engine's font size.
func (e Engine) Pitch() float64 {
	return LineHeight(e.FontSize)
}

// Lay wraps text and assigns baselines starting at y. It returns the lines
// and the cursor one pitch below the last baseline. Empty text yields no
// lines and returns y unchanged.
func (e Engine) Lay(text string, y float64) ([]Line, float64) {
	wrapped := e.Wrap(text)
	lines := make([]Line, len(wrapped))
	for i, s := range wrapped {
		lines[i] = Line{Text: s, Baseline: y}
		y += e.Pitch()
	}
	return lines, y
}

// Height returns the vertical space the wrapped text occupies.
func (e Engine) Height(text string) float64 {
	return float64(len(e.Wrap(text))) * e.Pitch()
}

// Wrap splits text into lines no wider than MaxWidth. Newlines force a
// break; a single word wider than MaxWidth is kept whole on its own line.
func (e Engine) Wrap(text string) []string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		out = append(out, e.wrapParagraph(paragraph)...)
	}
	return out
}

func (e Engine) wrapParagraph(paragraph string) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := line + word + " "
		if line != "" && e.Measure(candidate) > e.MaxWidth {
			lines = append(lines, strings.TrimSuffix(line, " "))
			line = word + " "
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, strings.TrimSuffix(line, " "))
	}
	return lines
}

// Fits reports whether a cursor at y is still above the bottom limit.
func Fits(y, bottom float64) bool {
	return y <= bottom
}

// Truncate shortens text from the end until it fits maxWidth, appending
// ellipsis when anything was removed. The ellipsis alone is returned when
// not even one character fits.
func Truncate(text string, measure Measure, maxWidth float64, ellipsis string) string {
	if measure(text) <= maxWidth {
		return text
	}
	runes := []rune(strings.TrimSpace(text))
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}
