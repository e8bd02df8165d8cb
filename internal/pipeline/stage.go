package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dendoesit/carte/internal/attachment"
	"github.com/dendoesit/carte/internal/render"
)

// DefaultWorkers bounds concurrent attachment prefetches.
const DefaultWorkers = 4

// Creator is written to the information dictionary of every document.
const Creator = "carte"

// Loader resolves and validates one attachment.
type Loader interface {
	Load(ctx context.Context, src attachment.Source) (*attachment.Document, error)
}

// Compile-time interface check.
var _ Loader = (*attachment.Loader)(nil)

// Stager builds the staging document of one export.
type Stager struct {
	loader  Loader
	logger  *slog.Logger
	workers int
}

// NewStager creates a Stager. A nil logger discards output; workers below
// one use DefaultWorkers.
func NewStager(loader Loader, logger *slog.Logger, workers int) *Stager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Stager{loader: loader, logger: logger, workers: workers}
}

// prefetched is the outcome of loading one item's attachment.
type prefetched struct {
	doc *attachment.Document
	err *attachment.Error
}

// Stage draws every generated page, embeds each valid attachment right
// after its item and returns the staging document with its recorded
// ranges. Attachment failures are annotated in place and reported in
// Staging.Failures; only ErrStaging and context errors are returned.
func (s *Stager) Stage(ctx context.Context, p *Project) (*Staging, error) {
	start := time.Now()

	loaded, err := s.prefetch(ctx, p)
	defer func() {
		for _, r := range loaded {
			r.doc.Release()
		}
	}()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("attachments prefetched", "count", len(loaded), "duration", time.Since(start))

	st := &Staging{Ranges: make(map[string]PageRange)}
	c := render.NewCanvas(render.Metadata{
		Title:   p.Name,
		Subject: p.Title,
		Creator: Creator,
		Created: p.Created,
	})

	// parts[0] is the generated document, filled in once drawing is done.
	parts := []render.Part{{}}
	var order []render.PageRef
	emit := func(n int) {
		for i := c.Pages() - n; i < c.Pages(); i++ {
			order = append(order, render.PageRef{Part: 0, Page: i})
		}
	}
	record := func(unit string, from int) PageRange {
		r := PageRange{Start: from, End: len(order)}
		st.Ranges[unit] = r
		return r
	}

	drawTitlePage(c, p)
	emit(1)
	st.Title = record(UnitTitle, 0)

	if hasValue(p.General) {
		from := len(order)
		emit(drawGeneralPages(c, p.General))
		st.General = record(UnitGeneral, from)
	}

	next := 0
	ordinal := 0
	for _, cat := range Categories {
		items := p.Sections[cat]
		if len(items) == 0 {
			continue
		}
		ordinal++
		section := StagedSection{Category: cat, Ordinal: ordinal}
		from := len(order)

		drawBanner(c, ordinal, cat, p.Name, len(items))
		emit(1)

		for _, item := range items {
			var status itemStatus
			if item.Attachment != nil {
				status = itemStatus{doc: loaded[next].doc, err: loaded[next].err, name: item.Attachment.DisplayName()}
				next++
			}

			itemFrom := len(order)
			section.Entries = append(section.Entries, TocEntry{Level: LevelSection, Name: item.Label, Page: itemFrom})
			drawItemHeading(c, ordinal, cat, item, status)
			emit(1)

			switch {
			case status.doc != nil:
				part := len(parts)
				parts = append(parts, render.Part{PDF: status.doc.Bytes(), Pages: status.doc.Info.Pages})
				attFrom := len(order)
				for pg := 0; pg < status.doc.Info.Pages; pg++ {
					order = append(order, render.PageRef{Part: part, Page: pg})
				}
				record(AttachmentUnit(cat, item.ID), attFrom)
				section.Entries = append(section.Entries, TocEntry{Level: LevelSubItem, Name: status.doc.Name, Page: attFrom})

			case status.err != nil:
				s.logger.Warn("attachment not embedded",
					"category", cat.Key(),
					"item", item.ID,
					"kind", string(status.err.Kind),
					"reason", status.err.Reason(),
					"error", status.err)
				st.Failures = append(st.Failures, Failure{
					Category:  cat,
					ItemID:    item.ID,
					ItemLabel: item.Label,
					Err:       status.err,
				})
			}
			record(ItemUnit(cat, item.ID), itemFrom)
		}

		section.Range = record(cat.Key(), from)
		st.Sections = append(st.Sections, section)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generated, err := c.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaging, err)
	}
	parts[0] = render.Part{PDF: generated, Pages: c.Pages()}

	st.Pages = len(order)
	if len(parts) == 1 {
		st.PDF = generated
	} else {
		st.PDF, err = render.Compose(parts, order)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStaging, err)
		}
	}

	s.logger.Debug("staging document built",
		"pages", st.Pages,
		"attachments", len(parts)-1,
		"failures", len(st.Failures),
		"duration", time.Since(start))
	return st, nil
}

// prefetch loads every attachment of p in canonical order. Loads run in
// parallel; results keep their position. Only a context error aborts.
func (s *Stager) prefetch(ctx context.Context, p *Project) ([]prefetched, error) {
	var sources []attachment.Source
	for _, cat := range Categories {
		for _, item := range p.Sections[cat] {
			if item.Attachment != nil {
				sources = append(sources, *item.Attachment)
			}
		}
	}

	results := make([]prefetched, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, src := range sources {
		g.Go(func() error {
			doc, err := s.loader.Load(gctx, src)
			if err == nil {
				results[i].doc = doc
				return nil
			}
			var aerr *attachment.Error
			if errors.As(err, &aerr) {
				results[i].err = aerr
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func hasValue(fields []Field) bool {
	for _, f := range fields {
		if !blank(f.Value) {
			return true
		}
	}
	return false
}

// blank reports whether a field value prints nothing.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
