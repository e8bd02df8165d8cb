package pipeline

import (
	"fmt"

	"github.com/dendoesit/carte/internal/render"
)

// Sources of the final document, as render.PageRef parts.
const (
	SourceStaging = 0
	SourceIndex   = 1
)

// Plan is the final page order. Order[i] is the page printed as number i+1.
type Plan struct {
	Order []render.PageRef
	final []int // staging index -> 1-based final number
}

// BuildPlan walks title, general data, then for each staged category its
// borderou pages followed by its banner and content. The staging ranges
// must cover the staging document contiguously.
func BuildPlan(st *Staging, ix Index) (*Plan, error) {
	if len(ix.Sections) != len(st.Sections) {
		return nil, fmt.Errorf("%w: %d borderou sections for %d categories", ErrSerialization, len(ix.Sections), len(st.Sections))
	}
	if st.Title.Empty() {
		return nil, fmt.Errorf("%w: staging document has no title page", ErrSerialization)
	}

	p := &Plan{
		Order: make([]render.PageRef, 0, st.Pages+ix.TotalPages()),
		final: make([]int, st.Pages),
	}
	cursor := 0
	appendRange := func(r PageRange) error {
		if r.Start != cursor || r.End < r.Start || r.End > st.Pages {
			return fmt.Errorf("%w: staging range [%d,%d) does not follow page %d", ErrSerialization, r.Start, r.End, cursor)
		}
		for i := r.Start; i < r.End; i++ {
			p.Order = append(p.Order, render.PageRef{Part: SourceStaging, Page: i})
			p.final[i] = len(p.Order)
		}
		cursor = r.End
		return nil
	}

	if err := appendRange(st.Title); err != nil {
		return nil, err
	}
	if !st.General.Empty() {
		if err := appendRange(st.General); err != nil {
			return nil, err
		}
	}

	toc := 0
	for i, s := range st.Sections {
		if ix.Sections[i].Category != s.Category {
			return nil, fmt.Errorf("%w: borderou %d is %s, category is %s", ErrSerialization, i, ix.Sections[i].Category, s.Category)
		}
		for j := 0; j < ix.Sections[i].Pages; j++ {
			p.Order = append(p.Order, render.PageRef{Part: SourceIndex, Page: toc})
			toc++
		}
		if err := appendRange(s.Range); err != nil {
			return nil, err
		}
	}

	if cursor != st.Pages {
		return nil, fmt.Errorf("%w: ranges cover %d of %d staging pages", ErrSerialization, cursor, st.Pages)
	}
	return p, nil
}

// Len returns the number of pages of the final document.
func (p *Plan) Len() int {
	return len(p.Order)
}

// FinalNumber returns the 1-based final page number of a staging page, or 0
// when the index is out of range.
func (p *Plan) FinalNumber(stagingIdx int) int {
	if stagingIdx < 0 || stagingIdx >= len(p.final) {
		return 0
	}
	return p.final[stagingIdx]
}
