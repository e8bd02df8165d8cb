package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultMaxSize caps the bytes read for a single attachment.
const DefaultMaxSize int64 = 64 << 20

// Fetch errors, wrapped into a fetch-failed *Error by the Loader.
var (
	ErrTooLarge          = errors.New("attachment exceeds size limit")
	ErrHTTPStatus        = errors.New("unexpected HTTP status")
	ErrUnsupportedScheme = errors.New("unsupported locator scheme")
)

// Fetcher turns a locator into bytes. Implementations must honor ctx.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, locator string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return f(ctx, locator)
}

// FileFetcher reads attachments from the local filesystem.
type FileFetcher struct {
	MaxSize int64
}

// Fetch reads the file at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Clean(path)) // #nosec G304 -- locator comes from the project record
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if limit := maxSize(f.MaxSize); info.Size() > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, info.Size(), limit)
	}

	return readLimited(file, f.MaxSize)
}

// HTTPFetcher downloads attachments with GET requests.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	MaxSize   int64
}

// Fetch downloads url and requires a 200 response.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf, */*;q=0.5")
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	if limit := maxSize(f.MaxSize); resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, resp.ContentLength, limit)
	}

	return readLimited(resp.Body, f.MaxSize)
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	limit = maxSize(limit)
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

func maxSize(n int64) int64 {
	if n <= 0 {
		return DefaultMaxSize
	}
	return n
}

// Compile-time interface checks.
var (
	_ Fetcher = (*FileFetcher)(nil)
	_ Fetcher = (*HTTPFetcher)(nil)
	_ Fetcher = FetcherFunc(nil)
)
