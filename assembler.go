package carte

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dendoesit/carte/internal/attachment"
	"github.com/dendoesit/carte/internal/pipeline"
	"github.com/dendoesit/carte/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Loader        = (*attachment.Loader)(nil)
	_ pipeline.TextConverter = (*pipeline.GoldmarkText)(nil)
	_ Fetcher                = (*attachment.HTTPFetcher)(nil)
	_ Fetcher                = (*attachment.S3Fetcher)(nil)
)

// Assembler builds technical dossiers. It holds configuration only: every
// call to Assemble starts from fresh documents, so one Assembler may serve
// concurrent exports.
type Assembler struct {
	cfg      assemblerConfig
	text     pipeline.TextConverter
	fetchers map[string]Fetcher
}

// NewAssembler creates an Assembler with default configuration.
// Use options to customize fetching, logging and the title page.
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		cfg:  defaultConfig(),
		text: pipeline.NewGoldmarkText(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg.workers <= 0 {
		a.cfg.workers = pipeline.DefaultWorkers
	}
	if a.cfg.rateLimit < 0 {
		return nil, fmt.Errorf("rate limit must not be negative, got %g", a.cfg.rateLimit)
	}

	a.fetchers = make(map[string]Fetcher, len(a.cfg.fetchers)+3)
	httpFetcher := &attachment.HTTPFetcher{
		Client:    a.cfg.httpClient,
		UserAgent: a.cfg.userAgent,
		MaxSize:   a.cfg.maxSize,
	}
	if httpFetcher.Client == nil {
		httpFetcher.Client = &http.Client{}
	}
	a.fetchers["http"] = httpFetcher
	a.fetchers["https"] = httpFetcher

	switch {
	case a.cfg.s3Client != nil:
		a.fetchers["s3"] = &attachment.S3Fetcher{Client: a.cfg.s3Client, MaxSize: a.cfg.maxSize}
	case a.cfg.s3Config != nil:
		a.fetchers["s3"] = &lazyS3{opts: attachment.S3Options{
			Region:   a.cfg.s3Config.Region,
			Endpoint: a.cfg.s3Config.Endpoint,
			MaxSize:  a.cfg.maxSize,
		}}
	}

	for scheme, f := range a.cfg.fetchers {
		a.fetchers[scheme] = f
	}
	return a, nil
}

// Assemble builds the dossier of in.Record. Attachment problems never fail
// the export; they are printed on the item page and listed in
// Result.Failures. Errors are ErrInvalidRecord, ErrInvalidDate,
// ErrStagingFailure, ErrSerializationFailure or a context error, and come
// with a nil Result. Recovers from internal panics.
func (a *Assembler) Assemble(ctx context.Context, in Input) (result *Result, err error) {
	exportID := uuid.NewString()
	logger := a.cfg.logger.With("export_id", exportID)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("export aborted", "panic", r)
			result, err = nil, fmt.Errorf("%w: internal error: %v", ErrStagingFailure, r)
		}
	}()

	if err := in.Record.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dateValue := in.Date
	if dateValue == "" {
		dateValue = "auto"
	}
	date, err := ResolveDate(dateValue, a.cfg.clock())
	if err != nil {
		return nil, err
	}

	project, err := a.buildProject(ctx, in.Record, date)
	if err != nil {
		return nil, err
	}

	stager := pipeline.NewStager(a.newLoader(in.BaseDir), logger, a.cfg.workers)
	st, err := stager.Stage(ctx, project)
	if err != nil {
		return nil, err
	}

	ix := pipeline.CompileIndex(st)
	out, err := pipeline.Assemble(ctx, st, ix, render.Metadata{
		Title:   in.Record.Name,
		Subject: a.cfg.title,
		Creator: pipeline.Creator,
		Created: project.Created,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("export assembled",
		"record", in.Record.Name,
		"pages", out.Pages,
		"sections", len(ix.Sections),
		"failures", len(st.Failures),
		"duration", time.Since(start))

	return &Result{
		PDF:      out.PDF,
		Pages:    out.Pages,
		Failures: toFailures(st.Failures),
		Order:    toOrder(out.Plan),
		Index:    toIndex(st, ix, out.Plan),
		ExportID: exportID,
	}, nil
}

// newLoader creates the attachment loader of one export.
func (a *Assembler) newLoader(baseDir string) *attachment.Loader {
	opts := []attachment.Option{
		attachment.WithTimeout(a.cfg.timeout),
		attachment.WithMaxSize(a.cfg.maxSize),
		attachment.WithBaseDir(baseDir),
	}
	if a.cfg.rateLimit > 0 {
		opts = append(opts, attachment.WithRateLimit(a.cfg.rateLimit, a.cfg.rateBurst))
	}
	for scheme, f := range a.fetchers {
		opts = append(opts, attachment.WithFetcher(scheme, f))
	}
	return attachment.NewLoader(opts...)
}
