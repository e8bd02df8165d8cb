package pipeline

import (
	"context"
	"fmt"

	"github.com/dendoesit/carte/internal/render"
)

// Output is the serialized final document.
type Output struct {
	PDF   []byte
	Pages int
	Plan  *Plan
}

// Assemble orders the staging pages and the borderou pages into a new
// document. Borderou numbers come from the plan, so they match final
// positions. Failures are ErrSerialization; no partial buffer is returned.
func Assemble(ctx context.Context, st *Staging, ix Index, meta render.Metadata) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, err := BuildPlan(st, ix)
	if err != nil {
		return nil, err
	}

	toc, err := ix.Render(meta, plan.FinalNumber)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := []render.Part{SourceStaging: {PDF: st.PDF, Pages: st.Pages}}
	if toc.Pages > 0 {
		parts = append(parts, render.Part{PDF: toc.PDF, Pages: toc.Pages})
	}

	pdf, err := render.Compose(parts, plan.Order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return &Output{PDF: pdf, Pages: plan.Len(), Plan: plan}, nil
}
