package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/dendoesit/carte"
	"github.com/dendoesit/carte/internal/config"
	"github.com/dendoesit/carte/internal/hints"
	"github.com/dendoesit/carte/internal/yamlutil"
)

// Sentinel errors for export operations.
var (
	ErrNoInput            = errors.New("no record specified")
	ErrReadRecord         = errors.New("failed to read record file")
	ErrParseRecord        = errors.New("failed to parse record file")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrStdoutMultiple     = errors.New("--stdout accepts a single record")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrAttachmentsMissing = errors.New("attachments not embedded")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxRecordSize bounds a record file. Records reference attachments by
// path or URL, so they stay small.
const maxRecordSize = 8 << 20

// Maximum concurrent exports accepted from --workers.
const maxWorkers = 32

// exportParams groups parameters shared across the records of a batch.
type exportParams struct {
	date   string // resolved once for the whole batch
	stdout bool
}

// runExportCmd runs the export command and returns its exit code.
func runExportCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseExportFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printExportUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printExportUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env)

	if err := runExport(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags.common.config))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runExport orchestrates a batch export.
func runExport(ctx context.Context, positional []string, flags *exportFlags, env *Environment) error {
	if err := validateWorkers(flags.fetch.workers); err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if flags.output.stdout && len(positional) > 1 {
		return ErrStdoutMultiple
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.Fetch.TimeoutDuration()
	if err != nil {
		return err
	}

	date, err := carte.ResolveDate(cfg.Document.Date, env.Now())
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, cfg.Log.Level, cfg.Log.Format, flags.common.verbose, flags.common.quiet)
	if flags.common.verbose {
		if applied := describeEnv(envCfg); applied != "" {
			fmt.Fprintf(env.Stderr, "Environment: %s\n", applied)
		}
	}

	jobs := planExports(positional, cfg.Output.Dir)

	workers := flags.fetch.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(carte.ResolvePoolSize(workers), len(jobs))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := &poolAdapter{pool: carte.NewAssemblerPool(poolSize, buildOptions(cfg, timeout, env, logger)...)}

	params := &exportParams{date: date, stdout: flags.output.stdout}
	results := exportBatch(ctx, pool, jobs, params, env)

	report := env.Stdout
	if params.stdout {
		report = env.Stderr
	}
	summary := printResults(results, flags.common.quiet, flags.common.verbose, report, env.Stderr)

	if err := ctx.Err(); err != nil {
		return err
	}
	if summary.Failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d of %d export(s) failed: %w", summary.Failed, len(results), firstError(results))
	}
	if summary.Missing > 0 {
		if flags.fetch.strict {
			return fmt.Errorf("%w: %d attachment(s)%s", ErrAttachmentsMissing, summary.Missing, hints.ForAttachmentFailures(true))
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "%d attachment(s) not embedded%s\n", summary.Missing, hints.ForAttachmentFailures(false))
		}
	}
	return nil
}

// loadConfig loads the config named by the flag, then CARTE_CONFIG. With
// neither set, the default name is tried and a missing file is not an error.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name != "" {
		return config.LoadConfig(name)
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *exportFlags, cfg *config.Config) error {
	if flags.output.dir != "" {
		cfg.Output.Dir = flags.output.dir
	}
	if flags.fetch.timeout != "" {
		d, err := time.ParseDuration(flags.fetch.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.fetch.timeout)
		}
		if d <= 0 {
			return fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, d)
		}
		cfg.Fetch.Timeout = d.String()
	}
	if flags.fetch.maxSize > 0 {
		cfg.Fetch.MaxSize = flags.fetch.maxSize
	}
	if flags.fetch.prefetch > 0 {
		cfg.Fetch.Workers = flags.fetch.prefetch
	}
	if flags.fetch.rateLimit > 0 {
		cfg.Fetch.RateLimit = flags.fetch.rateLimit
	}
	if flags.fetch.s3Region != "" {
		cfg.S3.Region = flags.fetch.s3Region
	}
	if flags.fetch.s3Endpoint != "" {
		cfg.S3.Endpoint = flags.fetch.s3Endpoint
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.subtitle != "" {
		cfg.Document.Subtitle = flags.document.subtitle
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
	return nil
}

// buildOptions translates the merged configuration into Assembler options.
// S3 is always enabled: the client is only built for records that use it.
func buildOptions(cfg *config.Config, timeout time.Duration, env *Environment, logger *slog.Logger) []carte.Option {
	opts := []carte.Option{
		carte.WithLogger(logger),
		carte.WithClock(env.Now),
		carte.WithTitles(cfg.Document.Title, cfg.Document.Subtitle),
		carte.WithS3(carte.S3Config{Region: cfg.S3.Region, Endpoint: cfg.S3.Endpoint}),
	}
	if timeout > 0 {
		opts = append(opts, carte.WithFetchTimeout(timeout))
	}
	if cfg.Fetch.MaxSize > 0 {
		opts = append(opts, carte.WithMaxAttachmentSize(cfg.Fetch.MaxSize))
	}
	if cfg.Fetch.Workers > 0 {
		opts = append(opts, carte.WithPrefetchWorkers(cfg.Fetch.Workers))
	}
	if cfg.Fetch.UserAgent != "" {
		opts = append(opts, carte.WithUserAgent(cfg.Fetch.UserAgent))
	}
	if cfg.Fetch.RateLimit > 0 {
		opts = append(opts, carte.WithRateLimit(cfg.Fetch.RateLimit, int(math.Ceil(cfg.Fetch.RateLimit))))
	}
	return opts
}

// validateWorkers checks the --workers value.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// exportJob is one record of a batch. A job whose record could not be read
// carries Err and is reported without being exported.
type exportJob struct {
	RecordPath string
	OutputPath string
	Record     *carte.ProjectRecord
	Err        error
}

// planExports reads every record and assigns distinct output paths in
// argument order. Two records with the same project name get "-2", "-3"...
func planExports(paths []string, outputDir string) []exportJob {
	jobs := make([]exportJob, len(paths))
	used := make(map[string]int)
	for i, p := range paths {
		jobs[i].RecordPath = p
		rec, err := readRecord(p)
		if err != nil {
			jobs[i].Err = err
			continue
		}
		jobs[i].Record = rec

		name := carte.OutputFilename(rec.Name)
		used[name]++
		if n := used[name]; n > 1 {
			name = strings.TrimSuffix(name, carte.FilenameSuffix) + "-" + strconv.Itoa(n) + carte.FilenameSuffix
		}
		jobs[i].OutputPath = filepath.Join(outputDir, name)
	}
	return jobs
}

// readRecord decodes a YAML or JSON record file and validates it.
func readRecord(path string) (*carte.ProjectRecord, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided record path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadRecord, err)
	}

	var rec carte.ProjectRecord
	if err := yamlutil.UnmarshalStrict(data, &rec, yamlutil.WithMaxSize(maxRecordSize)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseRecord, path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
