// Package objectstorage implements collab.ObjectStorageClient against
// Amazon S3 and S3-compatible services, the way pkg/file's S3Storage
// implements its own Storage interface against the same SDK.
package objectstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/commercecore/pkg/collab"
)

// Client defines the subset of the AWS SDK S3 client Store needs. Narrower
// than pkg/file's S3Client since Store never lists or batch-deletes.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Presigner defines the presign operations Store needs. *s3.PresignClient
// satisfies this; tests supply a fake.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4PresignedHTTPRequest, error)
}

// v4PresignedHTTPRequest mirrors the fields of *v4.PresignedHTTPRequest
// that Store reads, so this package doesn't need to import the signer
// package just to name the return type.
type v4PresignedHTTPRequest struct {
	URL    string
	Method string
}

// Config contains the connection settings for Store.
type Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // optional, for S3-compatible services
	ForcePathStyle bool   // for MinIO and similar
}

// Option configures a Store beyond Config.
type Option func(*options)

type options struct {
	client        Client
	presigner     Presigner
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3.Options)
}

// WithClient sets a pre-configured S3 client, for tests.
func WithClient(c Client) Option {
	return func(o *options) { o.client = c }
}

// WithPresigner sets a pre-configured presign client, for tests.
func WithPresigner(p Presigner) Option {
	return func(o *options) { o.presigner = p }
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithConfigOption adds a custom AWS config load option.
func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) { o.configOptions = append(o.configOptions, opt) }
}

// WithClientOption adds a custom S3 client option.
func WithClientOption(opt func(*s3.Options)) Option {
	return func(o *options) { o.clientOptions = append(o.clientOptions, opt) }
}

// Store implements collab.ObjectStorageClient against S3. Safe for
// concurrent use.
type Store struct {
	client    Client
	presigner Presigner
	bucket    string
}

var _ collab.ObjectStorageClient = (*Store)(nil)

// New builds a Store. With no WithClient/WithPresigner override it loads
// default AWS credentials the way pkg/file.NewS3Storage does.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.client != nil && o.presigner != nil {
		return &Store{client: o.client, presigner: o.presigner, bucket: cfg.Bucket}, nil
	}

	awsOptions := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	if o.httpClient != nil {
		awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
	}
	awsOptions = append(awsOptions, o.configOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	realClient := s3.NewFromConfig(awsConfig, func(opt *s3.Options) {
		if cfg.Endpoint != "" {
			opt.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		opt.UsePathStyle = cfg.ForcePathStyle
		for _, clientOpt := range o.clientOptions {
			clientOpt(opt)
		}
	})

	presignClient := s3.NewPresignClient(realClient)

	client := o.client
	if client == nil {
		client = realClient
	}
	presigner := o.presigner
	if presigner == nil {
		presigner = presignAdapter{presignClient}
	}

	return &Store{client: client, presigner: presigner, bucket: cfg.Bucket}, nil
}

// presignAdapter narrows *s3.PresignClient's output to v4PresignedHTTPRequest.
type presignAdapter struct {
	c *s3.PresignClient
}

func (a presignAdapter) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4PresignedHTTPRequest, error) {
	req, err := a.c.PresignPutObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &v4PresignedHTTPRequest{URL: req.URL, Method: req.Method}, nil
}

func (a presignAdapter) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4PresignedHTTPRequest, error) {
	req, err := a.c.PresignGetObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &v4PresignedHTTPRequest{URL: req.URL, Method: req.Method}, nil
}

// PresignedUpload returns a short-lived PUT URL for key. The caller must
// send the Content-Type header back exactly as returned.
func (s *Store) PresignedUpload(ctx context.Context, key, contentType string, ttl time.Duration) (collab.PresignedUpload, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return collab.PresignedUpload{}, classifyError(err, "presign upload")
	}
	return collab.PresignedUpload{
		URL:     req.URL,
		Headers: map[string]string{"Content-Type": contentType},
	}, nil
}

// SignedDownload returns a short-lived GET URL for key.
func (s *Store) SignedDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", classifyError(err, "presign download")
	}
	return req.URL, nil
}

// Upload streams body to key directly, bypassing presigning — used when
// the core itself holds the bytes (derivative re-upload, report export).
func (s *Store) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return classifyError(err, "upload")
	}
	return nil
}

// Download fetches key. The caller must close the returned reader.
func (s *Store) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyError(err, "download")
	}
	return out.Body, nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyError(err, "delete")
	}
	return nil
}

func classifyError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrOperationTimeout, operation)
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s", ErrAccessDenied, operation)
		case "NoSuchKey":
			return fmt.Errorf("%w: %s", ErrNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("objectstorage: %s failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
		}
	}
	return fmt.Errorf("objectstorage: %s failed: %w", operation, err)
}
