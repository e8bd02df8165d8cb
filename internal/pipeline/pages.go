package pipeline

import (
	"fmt"
	"strconv"

	"github.com/dendoesit/carte/internal/attachment"
	"github.com/dendoesit/carte/internal/layout"
	"github.com/dendoesit/carte/internal/render"
)

// Page geometry, in points from the top-left corner.
const (
	margin      = 50.0
	contentTop  = 100.0
	bottomLimit = render.A4Height - 100
	valueOffset = 150.0
	fieldGap    = 10.0

	bodySize    = 12.0
	headingSize = 16.0
)

// Fixed texts drawn on generated pages.
const (
	generalHeading   = "Date generale"
	continuedSuffix  = " (continuare)"
	attachedNotice   = "Document PDF atașat (urmează imediat):"
	failedNotice     = "Eroare la încărcarea documentului PDF:"
	noDocumentNotice = "Niciun document atașat."
	fileLabel        = "Fișier: "
)

// sectionHeading returns "<ordinal>. <title>".
func sectionHeading(ordinal int, c Category) string {
	return strconv.Itoa(ordinal) + ". " + c.Title()
}

// drawTitlePage draws the cover of the dossier.
func drawTitlePage(c *render.Canvas, p *Project) {
	c.AddPage()

	c.SetFont(render.Bold, 36)
	c.TextCentered(250, p.Title)

	c.SetFont(render.Regular, 24)
	c.TextCentered(300, p.Subtitle)

	if p.Name != "" {
		e := layout.Engine{Measure: c.Measure(render.Bold, 28), FontSize: 28, MaxWidth: render.A4Width - 2*margin}
		lines, _ := e.Lay(p.Name, 400)
		c.SetFont(render.Bold, 28)
		for _, l := range lines {
			c.TextCentered(l.Baseline, l.Text)
		}
	}

	const detailsX, detailsY, detailsStep = 100.0, 500.0, 30.0
	valueWidth := render.A4Width - margin - (detailsX + 100)
	y := detailsY
	for _, f := range p.Details {
		if blank(f.Value) {
			continue
		}
		c.SetFont(render.Bold, bodySize)
		c.Text(detailsX, y, f.Label)
		c.SetFont(render.Regular, bodySize)
		c.Text(detailsX+100, y, layout.Truncate(f.Value, c.Measure(render.Regular, bodySize), valueWidth, "..."))
		y += detailsStep
	}

	if p.Date != "" {
		c.SetFont(render.Regular, bodySize)
		c.TextCentered(render.A4Height-100, p.Date)
	}
}

// drawGeneralPages draws label/value rows, starting a new page whenever the
// cursor passes the bottom limit. It returns the number of pages drawn.
func drawGeneralPages(c *render.Canvas, fields []Field) int {
	pages := 0
	var y float64
	newPage := func() {
		c.AddPage()
		pages++
		heading := generalHeading
		if pages > 1 {
			heading += continuedSuffix
		}
		c.SetFont(render.Bold, headingSize)
		c.Text(margin, margin, heading)
		c.Rule(margin, render.A4Width-margin, margin+8, render.Rule, 0.5)
		y = contentTop
	}
	newPage()

	labelEngine := layout.Engine{Measure: c.Measure(render.Bold, bodySize), FontSize: bodySize, MaxWidth: valueOffset - fieldGap}
	valueEngine := layout.Engine{Measure: c.Measure(render.Regular, bodySize), FontSize: bodySize, MaxWidth: render.A4Width - 2*margin - valueOffset}

	for _, f := range fields {
		if blank(f.Value) {
			continue
		}
		if !layout.Fits(y, bottomLimit) {
			newPage()
		}

		labels := labelEngine.Wrap(f.Label)
		values := valueEngine.Wrap(f.Value)
		rows := max(len(labels), len(values))
		for i := 0; i < rows; i++ {
			if i > 0 && !layout.Fits(y, bottomLimit) {
				newPage()
			}
			if i < len(labels) {
				c.SetFont(render.Bold, bodySize)
				c.Text(margin, y, labels[i])
			}
			if i < len(values) {
				c.SetFont(render.Regular, bodySize)
				c.Text(margin+valueOffset, y, values[i])
			}
			y += valueEngine.Pitch()
		}
		y += fieldGap
	}
	return pages
}

// drawBanner draws the page opening a category.
func drawBanner(c *render.Canvas, ordinal int, cat Category, projectName string, items int) {
	c.AddPage()

	e := layout.Engine{Measure: c.Measure(render.Bold, 28), FontSize: 28, MaxWidth: render.A4Width - 2*margin}
	lines, y := e.Lay(sectionHeading(ordinal, cat), render.A4Height/2-40)
	c.SetFont(render.Bold, 28)
	for _, l := range lines {
		c.TextCentered(l.Baseline, l.Text)
	}

	c.Rule(margin*2, render.A4Width-margin*2, y-10, render.Black, 1)

	c.SetFont(render.Regular, 14)
	c.SetColor(render.Gray)
	c.TextCentered(y+20, fmt.Sprintf("%d %s", items, plural(items, "document", "documente")))
	if projectName != "" {
		c.TextCentered(y+42, projectName)
	}
	c.SetColor(render.Black)
}

// itemStatus is what the heading page says about the attachment.
type itemStatus struct {
	doc  *attachment.Document
	err  *attachment.Error
	name string
}

// drawItemHeading draws the page introducing a checklist item.
func drawItemHeading(c *render.Canvas, ordinal int, cat Category, item Item, st itemStatus) {
	c.AddPage()

	c.SetFont(render.Regular, 10)
	c.SetColor(render.Gray)
	c.Text(margin, margin, sectionHeading(ordinal, cat))
	c.Rule(margin, render.A4Width-margin, margin+6, render.Rule, 0.5)
	c.SetColor(render.Black)

	width := render.A4Width - 2*margin
	title := layout.Engine{Measure: c.Measure(render.Bold, headingSize), FontSize: headingSize, MaxWidth: width}
	lines, y := title.Lay(item.Label, contentTop)
	c.SetFont(render.Bold, headingSize)
	for _, l := range lines {
		c.Text(margin, l.Baseline, l.Text)
	}
	y += 20

	body := layout.Engine{Measure: c.Measure(render.Regular, bodySize), FontSize: bodySize, MaxWidth: width}
	switch {
	case st.doc != nil:
		c.SetFont(render.Regular, bodySize)
		c.Text(margin, y, attachedNotice)
		y += body.Pitch()
		c.SetFont(render.Bold, bodySize)
		c.Text(margin, y, layout.Truncate(st.doc.Name, c.Measure(render.Bold, bodySize), width, "..."))
		y += body.Pitch()
		c.SetFont(render.Regular, 10)
		c.SetColor(render.Gray)
		c.Text(margin, y, fmt.Sprintf("%d %s", st.doc.Info.Pages, plural(st.doc.Info.Pages, "pagină", "pagini")))
		c.SetColor(render.Black)

	case st.err != nil:
		c.SetColor(render.Red)
		c.SetFont(render.Bold, bodySize)
		c.Text(margin, y, failedNotice)
		y += body.Pitch()
		reason, ry := body.Lay(st.err.Reason(), y)
		c.SetFont(render.Regular, bodySize)
		for _, l := range reason {
			c.Text(margin, l.Baseline, l.Text)
		}
		y = ry
		c.SetFont(render.Regular, 10)
		c.Text(margin, y, fileLabel+layout.Truncate(st.name, c.Measure(render.Regular, 10), width-40, "..."))
		c.SetColor(render.Black)

	default:
		c.SetFont(render.Italic, bodySize)
		c.SetColor(render.Gray)
		c.Text(margin, y, noDocumentNotice)
		c.SetColor(render.Black)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
