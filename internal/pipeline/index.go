package pipeline

import (
	"fmt"
	"strconv"

	"github.com/dendoesit/carte/internal/layout"
	"github.com/dendoesit/carte/internal/render"
)

// Borderou page geometry.
const (
	tocHeadingY   = 60.0
	tocCategoryY  = 90.0
	tocColumnsY   = 120.0
	tocRuleY      = 126.0
	tocRowsTop    = 145.0
	tocRowSize    = 11.0
	tocRowPitch   = tocRowSize * layout.LineSpacing
	tocBottom     = render.A4Height - 60
	tocIndent     = 20.0
	tocPageColumn = 60.0
)

const (
	tocHeading    = "BORDEROU"
	tocNameColumn = "Denumire document"
	tocPageHeader = "Pagina"
)

// RowsPerPage is the number of rows a single borderou page holds.
func RowsPerPage() int {
	span := tocBottom - tocRowsTop
	return int(span/tocRowPitch) + 1
}

// TocSection is the borderou of one emitted category.
type TocSection struct {
	Category Category
	Ordinal  int
	Banner   int // staging index of the banner page
	Rows     []TocEntry
	Pages    int
}

// Index holds the borderou sections in emission order.
type Index struct {
	Sections []TocSection
}

// TotalPages returns the number of borderou pages across all sections.
func (ix Index) TotalPages() int {
	n := 0
	for _, s := range ix.Sections {
		n += s.Pages
	}
	return n
}

// CompileIndex builds one borderou section per staged category. A section
// whose rows do not fit on one page continues on further pages.
func CompileIndex(st *Staging) Index {
	per := RowsPerPage()
	ix := Index{Sections: make([]TocSection, 0, len(st.Sections))}
	for _, s := range st.Sections {
		pages := (len(s.Entries) + per - 1) / per
		ix.Sections = append(ix.Sections, TocSection{
			Category: s.Category,
			Ordinal:  s.Ordinal,
			Banner:   s.Range.Start,
			Rows:     s.Entries,
			Pages:    max(pages, 1),
		})
	}
	return ix
}

// TocPages is the scratch document holding every borderou page.
type TocPages struct {
	PDF   []byte
	Pages int
}

// Render draws every borderou page into a scratch document of its own.
// number maps a staging page index to the page number printed beside it.
func (ix Index) Render(meta render.Metadata, number func(stagingIdx int) int) (*TocPages, error) {
	if len(ix.Sections) == 0 {
		return &TocPages{}, nil
	}

	c := render.NewCanvas(meta)
	per := RowsPerPage()
	for _, s := range ix.Sections {
		for page := 0; page < s.Pages; page++ {
			from := min(page*per, len(s.Rows))
			to := min(from+per, len(s.Rows))
			drawTocPage(c, s, page, s.Rows[from:to], number)
		}
	}

	data, err := c.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: rendering borderou: %v", ErrSerialization, err)
	}
	if c.Pages() != ix.TotalPages() {
		return nil, fmt.Errorf("%w: borderou has %d pages, expected %d", ErrSerialization, c.Pages(), ix.TotalPages())
	}
	return &TocPages{PDF: data, Pages: c.Pages()}, nil
}

func drawTocPage(c *render.Canvas, s TocSection, page int, rows []TocEntry, number func(int) int) {
	c.AddPage()
	right := render.A4Width - margin

	heading := tocHeading
	if page > 0 {
		heading += continuedSuffix
	}
	c.SetFont(render.Bold, 18)
	c.TextCentered(tocHeadingY, heading)

	c.SetFont(render.Bold, 14)
	category := sectionHeading(s.Ordinal, s.Category)
	pageText := strconv.Itoa(number(s.Banner))
	c.Text(margin, tocCategoryY, layout.Truncate(category, c.Measure(render.Bold, 14), right-margin-tocPageColumn, "..."))
	c.TextRight(right, tocCategoryY, pageText)

	c.SetFont(render.Bold, 10)
	c.SetColor(render.Gray)
	c.Text(margin, tocColumnsY, tocNameColumn)
	c.TextRight(right, tocColumnsY, tocPageHeader)
	c.SetColor(render.Black)
	c.Rule(margin, right, tocRuleY, render.Rule, 0.5)

	y := tocRowsTop
	for _, row := range rows {
		x, style := margin, render.Regular
		if row.Level == LevelSubItem {
			x, style = margin+tocIndent, render.Italic
		}
		c.SetFont(style, tocRowSize)
		name := layout.Truncate(row.Name, c.Measure(style, tocRowSize), right-x-tocPageColumn, "...")
		c.Text(x, y, name)
		c.SetFont(render.Regular, tocRowSize)
		c.TextRight(right, y, strconv.Itoa(number(row.Page)))
		y += tocRowPitch
	}
}
