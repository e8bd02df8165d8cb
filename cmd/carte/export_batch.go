package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/dendoesit/carte"
	"github.com/dendoesit/carte/internal/fileutil"
	"github.com/dendoesit/carte/internal/hints"
)

// Exporter is the interface for the dossier assembler.
type Exporter interface {
	Assemble(ctx context.Context, in carte.Input) (*carte.Result, error)
}

// Compile-time interface implementation check.
var _ Exporter = (*carte.Assembler)(nil)

// Pool abstracts assembler pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Exporter, error)
	Release(Exporter)
	Size() int
}

// poolAdapter exposes a carte.AssemblerPool as a Pool.
type poolAdapter struct {
	pool *carte.AssemblerPool
}

var _ Pool = (*poolAdapter)(nil)

func (p *poolAdapter) Acquire(ctx context.Context) (Exporter, error) {
	a, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Release panics when given an Exporter the pool did not create.
func (p *poolAdapter) Release(e Exporter) {
	a, ok := e.(*carte.Assembler)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", e))
	}
	p.pool.Release(a)
}

func (p *poolAdapter) Size() int { return p.pool.Size() }

// ExportResult holds the outcome of a single record.
type ExportResult struct {
	RecordPath string
	OutputPath string
	Pages      int
	Failures   []carte.AttachmentFailure
	S3Failures int // failures of s3:// attachments, for hints
	Err        error
	Duration   time.Duration
}

// exportBatch exports records concurrently using the assembler pool.
// Results are in job order.
func exportBatch(ctx context.Context, pool Pool, jobs []exportJob, params *exportParams, env *Environment) []ExportResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))
	results := make([]ExportResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			asm, err := pool.Acquire(ctx)
			if err != nil {
				for idx := range queue {
					results[idx] = ExportResult{RecordPath: jobs[idx].RecordPath, Err: err}
				}
				return
			}
			defer pool.Release(asm)

			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = ExportResult{RecordPath: jobs[idx].RecordPath, Err: err}
					continue
				}
				results[idx] = exportRecord(ctx, asm, jobs[idx], params, env)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// exportRecord assembles one record and writes its PDF.
func exportRecord(ctx context.Context, asm Exporter, job exportJob, params *exportParams, env *Environment) ExportResult {
	start := time.Now()
	result := ExportResult{RecordPath: job.RecordPath, OutputPath: job.OutputPath}
	if job.Err != nil {
		result.Err = job.Err
		return result
	}

	res, err := asm.Assemble(ctx, carte.Input{
		Record:  job.Record,
		BaseDir: filepath.Dir(job.RecordPath),
		Date:    params.date,
	})
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", job.RecordPath, err)
		result.Duration = time.Since(start)
		return result
	}
	result.Pages = res.Pages
	result.Failures = res.Failures
	result.S3Failures = countS3Failures(job.Record, res.Failures)

	if params.stdout {
		result.OutputPath = "stdout"
		if _, err := env.Stdout.Write(res.PDF); err != nil {
			result.Err = fmt.Errorf("%w: stdout: %v", ErrWritePDF, err)
		}
		result.Duration = time.Since(start)
		return result
	}

	if dir := filepath.Dir(job.OutputPath); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			result.Err = fmt.Errorf("%w: creating output directory: %v", ErrWritePDF, err)
			result.Duration = time.Since(start)
			return result
		}
	}
	// #nosec G306 -- dossiers are meant to be readable
	if err := fileutil.WriteFileAtomic(job.OutputPath, res.PDF, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	result.Duration = time.Since(start)
	return result
}

// countS3Failures counts the failures that come from s3:// attachments.
func countS3Failures(rec *carte.ProjectRecord, failures []carte.AttachmentFailure) int {
	n := 0
	for _, f := range failures {
		for _, item := range rec.Categories.Items(f.Category) {
			if item.ID == f.ItemID && item.Attachment != nil && fileutil.IsS3URI(item.Attachment.URL) {
				n++
			}
		}
	}
	return n
}

// ResultSummary holds the counts of a batch.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Missing   int // attachments not embedded in written documents
}

// countResults tallies exported, failed and missing attachments.
func countResults(results []ExportResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Missing += len(r.Failures)
	}
	return summary
}

// printResults writes one line per record to out and failures to errOut.
func printResults(results []ExportResult, quiet, verbose bool, out, errOut io.Writer) ResultSummary {
	summary := countResults(results)
	var s3Failures int
	var timedOut bool

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "FAILED %s: %v\n", r.RecordPath, r.Err)
			continue
		}

		for _, f := range r.Failures {
			fmt.Fprintf(errOut, "WARNING %s: %s/%s %q: %s\n", r.RecordPath, f.Category, f.ItemID, f.ItemLabel, f.Reason)
			if errors.Is(f.Err, context.DeadlineExceeded) {
				timedOut = true
			}
		}
		s3Failures += r.S3Failures

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(out, "%s -> %s (%d pages, %v)\n", r.RecordPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(out, "Created %s\n", r.OutputPath)
		}
	}

	if s3Failures > 0 {
		if hint := hints.ForS3Access(); hint != "" {
			fmt.Fprintf(errOut, "%d S3 attachment(s) failed%s\n", s3Failures, hint)
		}
	}
	if timedOut {
		fmt.Fprintf(errOut, "some attachments timed out%s\n", hints.ForTimeout())
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(out, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}

// firstError returns the first export error of a batch.
func firstError(results []ExportResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
