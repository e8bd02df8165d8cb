// Package render wraps the third-party PDF libraries used to draw, inspect
// and recombine documents:
//   - fpdf draws generated A4 pages (Canvas)
//   - pdfcpu merges documents and collects pages in a given order (Compose)
//   - ledongthuc/pdf reads page inventories and text (Inspect, PageText)
//
// Every string drawn on a Canvas is folded to ASCII first, because the
// standard Times fonts only carry a single-byte code page.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dendoesit/carte/internal/layout"
	"github.com/dendoesit/carte/internal/textnorm"
)

// A4 page size in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// ErrCanvas indicates the PDF writer entered its error state.
var ErrCanvas = errors.New("PDF canvas error")

// fontFamily is the standard Type1 family every generated page uses.
const fontFamily = "Times"

// Style selects a face of the Times family.
type Style string

// Font styles.
const (
	Regular Style = ""
	Bold    Style = "B"
	Italic  Style = "I"
)

// Color is an RGB color with 0-255 components.
type Color struct{ R, G, B int }

// Colors used on generated pages.
var (
	Black = Color{0, 0, 0}
	Red   = Color{200, 0, 0}
	Gray  = Color{110, 110, 110}
	Rule  = Color{180, 180, 180}
)

// Metadata is written to the document information dictionary.
type Metadata struct {
	Title   string
	Subject string
	Creator string
	Created time.Time
}

// Canvas draws A4 pages with the standard Times fonts.
// Coordinates are in points measured from the top-left corner.
type Canvas struct {
	pdf *fpdf.Fpdf
}

// NewCanvas creates an empty document. No page exists until AddPage.
func NewCanvas(meta Metadata) *Canvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: A4Width, Ht: A4Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)

	if meta.Title != "" {
		pdf.SetTitle(textnorm.Normalize(meta.Title), false)
	}
	if meta.Subject != "" {
		pdf.SetSubject(textnorm.Normalize(meta.Subject), false)
	}
	if meta.Creator != "" {
		pdf.SetCreator(textnorm.Normalize(meta.Creator), false)
	}
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
		pdf.SetModificationDate(meta.Created)
	}

	pdf.SetFont(fontFamily, string(Regular), 12)
	return &Canvas{pdf: pdf}
}

// AddPage appends a blank A4 page and makes it current.
func (c *Canvas) AddPage() {
	c.pdf.AddPage()
	c.SetColor(Black)
}

// Pages returns the number of pages added so far.
func (c *Canvas) Pages() int {
	return c.pdf.PageCount()
}

// SetFont selects the Times face and size for subsequent text.
func (c *Canvas) SetFont(style Style, size float64) {
	c.pdf.SetFont(fontFamily, string(style), size)
}

// SetColor sets the text color.
func (c *Canvas) SetColor(col Color) {
	c.pdf.SetTextColor(col.R, col.G, col.B)
}

// Width returns the width of s in the current font.
func (c *Canvas) Width(s string) float64 {
	return c.pdf.GetStringWidth(textnorm.Normalize(s))
}

// Measure returns a width function bound to a font face and size.
func (c *Canvas) Measure(style Style, size float64) layout.Measure {
	return func(s string) float64 {
		c.SetFont(style, size)
		return c.Width(s)
	}
}

// Text draws s with its baseline at y.
func (c *Canvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, textnorm.Normalize(s))
}

// TextCentered draws s horizontally centered on the page.
func (c *Canvas) TextCentered(y float64, s string) {
	c.Text((A4Width-c.Width(s))/2, y, s)
}

// TextRight draws s so that it ends at x.
func (c *Canvas) TextRight(x, y float64, s string) {
	c.Text(x-c.Width(s), y, s)
}

// Rule draws a horizontal line from x1 to x2 at y.
func (c *Canvas) Rule(x1, x2, y float64, col Color, width float64) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, y, x2, y)
}

// FillRect draws a filled rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
	c.pdf.Rect(x, y, w, h, "F")
}

// Err returns the writer's sticky error, if any.
func (c *Canvas) Err() error {
	if c.pdf.Err() {
		return fmt.Errorf("%w: %v", ErrCanvas, c.pdf.Error())
	}
	return nil
}

// Bytes serializes the document. The canvas must not be used afterwards.
func (c *Canvas) Bytes() ([]byte, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCanvas, err)
	}
	return buf.Bytes(), nil
}
