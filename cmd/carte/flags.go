package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// outputFlags holds output destination flags.
type outputFlags struct {
	dir    string
	stdout bool
}

// fetchFlags holds attachment fetching flags.
type fetchFlags struct {
	timeout    string
	maxSize    int64
	workers    int
	prefetch   int
	rateLimit  float64
	s3Region   string
	s3Endpoint string
	strict     bool
}

// documentFlags holds title page flags.
type documentFlags struct {
	date     string
	title    string
	subtitle string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common   commonFlags
	output   outputFlags
	fetch    fetchFlags
	document documentFlags
}

// initFlags holds flags for the init command.
type initFlags struct {
	common    commonFlags
	template  string
	templates string
	name      string
	output    string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.BoolVar(&f.stdout, "stdout", false, "write the PDF to stdout (one record only)")
}

// addFetchFlags adds attachment fetching flags to a FlagSet.
func addFetchFlags(fs *flag.FlagSet, f *fetchFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-attachment timeout (e.g., 30s, 2m)")
	fs.Int64Var(&f.maxSize, "max-size", 0, "max bytes per attachment (0 = default)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent exports (0 = auto)")
	fs.IntVar(&f.prefetch, "prefetch", 0, "parallel attachment fetches per export (0 = default)")
	fs.Float64Var(&f.rateLimit, "rate-limit", 0, "remote fetches per second (0 = unlimited)")
	fs.StringVar(&f.s3Region, "s3-region", "", "AWS region for s3:// attachments")
	fs.StringVar(&f.s3Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
	fs.BoolVar(&f.strict, "strict", false, "exit with an error when an attachment is not embedded")
}

// addDocumentFlags adds title page flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.date, "date", "", "title page date (\"auto\" = today)")
	fs.StringVar(&f.title, "title", "", "title page heading")
	fs.StringVar(&f.subtitle, "subtitle", "", "title page subheading")
}

// newExportFlagSet registers every export flag on a fresh FlagSet.
// Parsing and shell completion share it.
func newExportFlagSet(f *exportFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addFetchFlags(fs, &f.fetch)
	addDocumentFlags(fs, &f.document)

	fs.Usage = func() {} // callers print usage
	return fs
}

// newInitFlagSet registers every init flag on a fresh FlagSet.
func newInitFlagSet(f *initFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.template, "template", "", "checklist template name")
	fs.StringVar(&f.templates, "templates", "", "directory holding templates/<name>.yaml")
	fs.StringVar(&f.name, "name", "", "project name")
	fs.StringVarP(&f.output, "output", "o", "", "record file to write (default: stdout)")

	fs.Usage = func() {}
	return fs
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := newExportFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := newInitFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
