package attachment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrInvalidS3Locator indicates a malformed s3://bucket/key locator.
var ErrInvalidS3Locator = errors.New("invalid S3 locator")

// S3API is the subset of the S3 client used to fetch attachments.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads attachments stored as S3 objects (s3://bucket/key).
type S3Fetcher struct {
	Client  S3API
	MaxSize int64
}

// S3Options configures NewS3Fetcher.
type S3Options struct {
	Region   string
	Endpoint string // custom endpoint for S3-compatible stores; enables path-style addressing
	MaxSize  int64
}

// NewS3Fetcher builds a fetcher from the default AWS credential chain.
func NewS3Fetcher(ctx context.Context, opts S3Options) (*S3Fetcher, error) {
	var loadOpts []func(*awscfg.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(opts.Region))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Fetcher{Client: client, MaxSize: opts.MaxSize}, nil
}

// Fetch downloads the object named by locator.
func (f *S3Fetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	bucket, key, err := ParseS3Locator(locator)
	if err != nil {
		return nil, err
	}

	out, err := f.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting s3://%s/%s: %w", bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()

	if limit := maxSize(f.MaxSize); aws.ToInt64(out.ContentLength) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, aws.ToInt64(out.ContentLength), limit)
	}

	return readLimited(out.Body, f.MaxSize)
}

// ParseS3Locator splits s3://bucket/key into its parts.
func ParseS3Locator(locator string) (bucket, key string, err error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidS3Locator, err)
	}
	if !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("%w: scheme %q", ErrInvalidS3Locator, u.Scheme)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidS3Locator, locator)
	}
	return u.Host, key, nil
}

// Compile-time interface check.
var _ Fetcher = (*S3Fetcher)(nil)
