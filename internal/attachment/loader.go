// Package attachment resolves attachment references to bytes and checks
// that they hold a usable PDF document.
//
// Every failure is reported as an *Error tagged with a Kind; callers embed
// what they can and annotate the rest. Only context cancellation of the
// caller's own context is returned untagged, so that an export can abort.
package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single attachment fetch.
const DefaultTimeout = 30 * time.Second

// Source references an attachment. Exactly one of Data, Path or URL is set.
type Source struct {
	Name string
	Data []byte
	Path string
	URL  string
}

// Validate checks that exactly one locator is set.
func (s Source) Validate() error {
	n := 0
	if s.Data != nil {
		n++
	}
	if s.Path != "" {
		n++
	}
	if s.URL != "" {
		n++
	}
	if n != 1 {
		return fmt.Errorf("%w: %q sets %d of data, path and url", ErrInvalidSource, s.Name, n)
	}
	return nil
}

// DisplayName returns Name, or the last element of the locator.
func (s Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	switch {
	case s.Path != "":
		return filepath.Base(s.Path)
	case s.URL != "":
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return path.Base(u.Path)
		}
		return s.URL
	}
	return "document.pdf"
}

// Document is a resolved, validated attachment. The loader's copy of the
// bytes is held until Release.
type Document struct {
	Name string
	Info Info
	data []byte
}

// Bytes returns the document content, or nil after Release.
func (d *Document) Bytes() []byte {
	return d.data
}

// Release drops the held buffer. Safe to call more than once.
func (d *Document) Release() {
	if d != nil {
		d.data = nil
	}
}

// Loader resolves and validates attachments for one export.
type Loader struct {
	fetchers map[string]Fetcher
	timeout  time.Duration
	maxSize  int64
	baseDir  string
	limiter  *rate.Limiter
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher registers f for a locator scheme ("file", "http", "s3", ...).
func WithFetcher(scheme string, f Fetcher) Option {
	return func(l *Loader) {
		l.fetchers[strings.ToLower(scheme)] = f
	}
}

// WithTimeout bounds each fetch. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithMaxSize caps the size of a single attachment.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// WithRateLimit limits remote fetches to perSecond requests with the given
// burst. Local files are never throttled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(l *Loader) {
		if perSecond > 0 {
			l.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

// NewLoader creates a Loader with file and HTTP(S) fetchers registered.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fetchers: make(map[string]Fetcher),
		timeout:  DefaultTimeout,
		maxSize:  DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(l)
	}

	if _, ok := l.fetchers["file"]; !ok {
		l.fetchers["file"] = &FileFetcher{MaxSize: l.maxSize}
	}
	httpFetcher := &HTTPFetcher{MaxSize: l.maxSize, UserAgent: "carte"}
	for _, scheme := range []string{"http", "https"} {
		if _, ok := l.fetchers[scheme]; !ok {
			l.fetchers[scheme] = httpFetcher
		}
	}
	return l
}

// Load resolves src and validates the result.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	data, err := l.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}

	info, err := Validate(data)
	if err != nil {
		var aerr *Error
		if errors.As(err, &aerr) {
			aerr.Source = src.DisplayName()
		}
		return nil, err
	}

	return &Document{Name: src.DisplayName(), Info: *info, data: data}, nil
}

// Resolve returns a private copy of the attachment bytes. Cancellation of
// ctx itself is returned as ctx.Err(); a fetch timeout is fetch-failed.
func (l *Loader) Resolve(ctx context.Context, src Source) ([]byte, error) {
	name := src.DisplayName()
	if err := src.Validate(); err != nil {
		return nil, newError(KindFetchFailed, name, err)
	}

	if src.Data != nil {
		if len(src.Data) == 0 {
			return nil, newError(KindEmpty, name, nil)
		}
		if int64(len(src.Data)) > l.maxSize {
			return nil, newError(KindFetchFailed, name, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(src.Data)))
		}
		return bytes.Clone(src.Data), nil
	}

	scheme, locator, err := l.locate(src)
	if err != nil {
		return nil, newError(KindFetchFailed, name, err)
	}
	fetcher, ok := l.fetchers[scheme]
	if !ok {
		return nil, newError(KindFetchFailed, name, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme))
	}

	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if l.limiter != nil && scheme != "file" {
		if err := l.limiter.Wait(fetchCtx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, newError(KindFetchFailed, name, err)
		}
	}

	data, err := fetcher.Fetch(fetchCtx, locator)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || fetchCtx.Err() != nil {
			err = fmt.Errorf("timed out after %s: %w", l.timeout, err)
		}
		return nil, newError(KindFetchFailed, name, err)
	}
	if len(data) == 0 {
		return nil, newError(KindEmpty, name, nil)
	}
	if int64(len(data)) > l.maxSize {
		return nil, newError(KindFetchFailed, name, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data)))
	}
	return data, nil
}

// locate maps a source to a fetcher scheme and the locator it receives.
func (l *Loader) locate(src Source) (scheme, locator string, err error) {
	if src.Path != "" {
		return "file", l.resolvePath(src.Path), nil
	}

	u, err := url.Parse(src.URL)
	if err != nil {
		return "", "", err
	}
	scheme = strings.ToLower(u.Scheme)
	switch scheme {
	case "":
		return "file", l.resolvePath(src.URL), nil
	case "file":
		return "file", l.resolvePath(u.Path), nil
	}
	return scheme, src.URL, nil
}

func (l *Loader) resolvePath(p string) string {
	if l.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.baseDir, p)
}
