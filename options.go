package carte

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dendoesit/carte/internal/attachment"
)

// Default title page texts.
const (
	DefaultTitle    = "CARTEA TEHNICĂ"
	DefaultSubtitle = "A CONSTRUCȚIEI"
)

// DefaultUserAgent is sent with HTTP attachment requests.
const DefaultUserAgent = "carte"

// Fetcher resolves an attachment locator to bytes. Implementations must
// honor ctx.
type Fetcher = attachment.Fetcher

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc = attachment.FetcherFunc

// S3API is the subset of the AWS S3 client used for s3:// attachments.
type S3API = attachment.S3API

// S3Config configures the S3 client built on first use of an s3:// locator.
// Credentials come from the default AWS chain.
type S3Config struct {
	Region   string
	Endpoint string // S3-compatible stores; enables path-style addressing
}

// Option configures an Assembler.
type Option func(*Assembler)

type assemblerConfig struct {
	logger     *slog.Logger
	timeout    time.Duration
	maxSize    int64
	workers    int
	fetchers   map[string]Fetcher
	httpClient *http.Client
	userAgent  string
	s3Client   S3API
	s3Config   *S3Config
	rateLimit  float64
	rateBurst  int
	clock      func() time.Time
	title      string
	subtitle   string
}

func defaultConfig() assemblerConfig {
	return assemblerConfig{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:   attachment.DefaultTimeout,
		maxSize:   attachment.DefaultMaxSize,
		fetchers:  make(map[string]Fetcher),
		userAgent: DefaultUserAgent,
		clock:     time.Now,
		title:     DefaultTitle,
		subtitle:  DefaultSubtitle,
	}
}

// WithLogger sets the structured logger. Attachment failures are logged at
// Warn, timings at Debug. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.cfg.logger = l
		}
	}
}

// WithFetchTimeout bounds each attachment fetch. A timed-out attachment is
// reported like any other attachment failure.
func WithFetchTimeout(d time.Duration) Option {
	return func(a *Assembler) {
		if d > 0 {
			a.cfg.timeout = d
		}
	}
}

// WithMaxAttachmentSize caps the bytes accepted for one attachment.
func WithMaxAttachmentSize(n int64) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.cfg.maxSize = n
		}
	}
}

// WithPrefetchWorkers sets how many attachments are fetched and validated
// in parallel. Pages are still copied in checklist order.
func WithPrefetchWorkers(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.cfg.workers = n
		}
	}
}

// WithFetcher registers f for a locator scheme ("file", "http", "https",
// "s3", or any custom one). It takes precedence over built-in fetchers.
func WithFetcher(scheme string, f Fetcher) Option {
	return func(a *Assembler) {
		if f != nil {
			a.cfg.fetchers[strings.ToLower(scheme)] = f
		}
	}
}

// WithHTTPClient sets the client used for http(s) attachments.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Assembler) {
		a.cfg.httpClient = c
	}
}

// WithUserAgent sets the User-Agent of HTTP attachment requests.
func WithUserAgent(ua string) Option {
	return func(a *Assembler) {
		if ua != "" {
			a.cfg.userAgent = ua
		}
	}
}

// WithS3Client sets the client used for s3:// attachments.
func WithS3Client(c S3API) Option {
	return func(a *Assembler) {
		a.cfg.s3Client = c
	}
}

// WithS3 enables s3:// attachments with a client built from the default
// AWS configuration when the first S3 attachment is fetched.
func WithS3(cfg S3Config) Option {
	return func(a *Assembler) {
		a.cfg.s3Config = &cfg
	}
}

// WithRateLimit limits remote attachment fetches to perSecond requests per
// export. Local files are not throttled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(a *Assembler) {
		a.cfg.rateLimit = perSecond
		a.cfg.rateBurst = burst
	}
}

// WithClock sets the time source for "auto" dates and document metadata.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.cfg.clock = now
		}
	}
}

// WithTitles replaces the title page heading and subheading. Empty values
// keep the defaults.
func WithTitles(title, subtitle string) Option {
	return func(a *Assembler) {
		if title != "" {
			a.cfg.title = title
		}
		if subtitle != "" {
			a.cfg.subtitle = subtitle
		}
	}
}
