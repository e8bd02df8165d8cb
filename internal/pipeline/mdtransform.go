package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// ==text== highlight syntax; the PDF keeps the text only.
	highlightPattern = regexp.MustCompile(`==(.+?)==`)
)

// prepareMarkdown normalizes a description before parsing: line endings
// become \n, highlight markers are unwrapped, and runs of blank lines are
// compressed to one.
func prepareMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = unwrapHighlights(content)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// unwrapHighlights drops ==...== markers outside fenced code blocks.
// Setext underlines are left alone.
func unwrapHighlights(content string) string {
	if !strings.Contains(content, "==") {
		return content
	}
	lines := strings.Split(content, "\n")
	fenced := false
	for i, line := range lines {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
			continue
		}
		if !fenced && strings.Trim(line, "= \t") != "" {
			lines[i] = highlightPattern.ReplaceAllString(line, "$1")
		}
	}
	return strings.Join(lines, "\n")
}
