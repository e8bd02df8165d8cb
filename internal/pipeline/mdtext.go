package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrMarkdown indicates a Markdown description could not be flattened.
var ErrMarkdown = errors.New("markdown conversion failed")

// TextConverter flattens Markdown to plain paragraphs.
type TextConverter interface {
	ToText(ctx context.Context, content string) (string, error)
}

// GoldmarkText flattens Markdown with goldmark's GFM parser. Headings and
// paragraphs become lines, list items are prefixed with "- ", table rows
// are joined with " | " and emphasis is dropped.
type GoldmarkText struct {
	md goldmark.Markdown
}

// NewGoldmarkText creates a GoldmarkText with GFM extensions.
func NewGoldmarkText() *GoldmarkText {
	return &GoldmarkText{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// ToText converts content. Goldmark has no context support, so parsing
// runs in a goroutine and ctx is checked around it.
func (g *GoldmarkText) ToText(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrMarkdown, r)}
			}
		}()
		source := []byte(prepareMarkdown(content))
		doc := g.md.Parser().Parse(text.NewReader(source))
		done <- result{text: flatten(doc, source)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

// flatten collects one line per text block.
func flatten(doc ast.Node, source []byte) string {
	var lines []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			var b strings.Builder
			inline(n, source, &b)
			line := strings.TrimSpace(b.String())
			if line == "" {
				return ast.WalkSkipChildren, nil
			}
			if item, ok := n.Parent().(*ast.ListItem); ok && item.FirstChild() == n {
				line = strings.Repeat("  ", listDepth(item)-1) + "- " + line
			}
			lines = append(lines, line)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				lines = append(lines, strings.TrimRight(string(seg.Value(source)), "\r\n"))
			}
			return ast.WalkSkipChildren, nil

		case *east.TableHeader, *east.TableRow:
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				var b strings.Builder
				inline(c, source, &b)
				cells = append(cells, strings.TrimSpace(b.String()))
			}
			lines = append(lines, strings.Join(cells, " | "))
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(lines, "\n")
}

// inline writes the text of n's inline children.
func inline(n ast.Node, source []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			switch {
			case c.HardLineBreak():
				b.WriteByte('\n')
			case c.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(source))
		case *ast.RawHTML:
		case *east.TaskCheckBox:
			if c.IsChecked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		default:
			inline(c, source, b)
		}
	}
}

func listDepth(n ast.Node) int {
	depth := 0
	for p := n; p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return max(depth, 1)
}
