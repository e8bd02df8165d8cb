package carte

import (
	"context"
	"sync"

	"github.com/dendoesit/carte/internal/attachment"
)

// lazyS3 builds the S3 client on the first s3:// fetch, so records without
// S3 attachments never load AWS configuration. A failed build is not kept:
// the next fetch tries again.
type lazyS3 struct {
	opts  attachment.S3Options
	build func(context.Context, attachment.S3Options) (*attachment.S3Fetcher, error) // nil = attachment.NewS3Fetcher

	mu      sync.Mutex
	fetcher *attachment.S3Fetcher
}

func (l *lazyS3) Fetch(ctx context.Context, locator string) ([]byte, error) {
	f, err := l.client(ctx)
	if err != nil {
		return nil, err
	}
	return f.Fetch(ctx, locator)
}

func (l *lazyS3) client(ctx context.Context) (*attachment.S3Fetcher, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fetcher != nil {
		return l.fetcher, nil
	}

	build := l.build
	if build == nil {
		build = attachment.NewS3Fetcher
	}
	// The client outlives the export that happens to build it.
	f, err := build(context.WithoutCancel(ctx), l.opts)
	if err != nil {
		return nil, err
	}
	l.fetcher = f
	return f, nil
}

var _ Fetcher = (*lazyS3)(nil)
