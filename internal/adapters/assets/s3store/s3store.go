// Package s3store keeps scanned images in an S3 compatible bucket (AWS, R2, MinIO)
package s3store

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	perr "producescan/internal/platform/errors"
)

// Options configures the bucket client
type Options struct {
	Bucket string
	// Endpoint overrides the AWS endpoint, required for R2 and MinIO
	Endpoint string
	// Region defaults to auto which R2 expects
	Region    string
	AccessKey string
	SecretKey string
	// Prefix is prepended to every object key
	Prefix string
	// PublicBaseURL builds returned locations, empty returns s3://bucket/key
	PublicBaseURL string
	// PathStyle addresses the bucket in the path, MinIO needs it
	PathStyle bool
}

// putter is the slice of the s3 client Store uses
type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store writes objects into one bucket
type Store struct {
	api    putter
	bucket string
	prefix string
	public string
}

// New loads the default AWS config chain with optional static credentials and endpoint
func New(ctx context.Context, o Options) (*Store, error) {
	if strings.TrimSpace(o.Bucket) == "" {
		return nil, perr.InvalidArgf("asset bucket is required")
	}
	if o.Region == "" {
		o.Region = "auto"
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" || o.SecretKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "load aws config")
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
		so.UsePathStyle = o.PathStyle
	})
	return newStore(client, o), nil
}

func newStore(api putter, o Options) *Store {
	return &Store{
		api:    api,
		bucket: o.Bucket,
		prefix: strings.Trim(o.Prefix, "/"),
		public: strings.TrimRight(o.PublicBaseURL, "/"),
	}
}

// Put uploads body under the prefixed key and returns where it can be found
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if key == "" || strings.Contains(key, "..") {
		return "", perr.WithField(perr.InvalidArgf("asset key %q is invalid", key), "key")
	}
	full := key
	if s.prefix != "" {
		full = s.prefix + "/" + key
	}
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(full),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "put object %s", full)
	}
	if s.public != "" {
		return s.public + "/" + full, nil
	}
	return "s3://" + s.bucket + "/" + full, nil
}
