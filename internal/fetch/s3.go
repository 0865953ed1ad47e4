package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the subset of the S3 client used for downloads
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher downloads resume bytes from S3 or an S3-compatible store such as R2
type S3Fetcher struct {
	client        objectGetter
	defaultBucket string
	maxBytes      int64
}

// NewS3Fetcher builds an S3 client from static credentials
func NewS3Fetcher(ctx context.Context, cfg Config) (*S3Fetcher, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	endpoint := cfg.ResolvedEndpoint()
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Fetcher(client, cfg.Bucket, cfg.MaxObjectBytes), nil
}

func newS3Fetcher(client objectGetter, defaultBucket string, maxBytes int64) *S3Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxObjectBytes
	}
	return &S3Fetcher{client: client, defaultBucket: defaultBucket, maxBytes: maxBytes}
}

// Fetch downloads the object named by an s3:// URI. It returns the object
// bytes and the base name of the key, which carries the file extension.
func (f *S3Fetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	bucket, key, err := ParseS3URI(uri, f.defaultBucket)
	if err != nil {
		return nil, "", err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", &Error{URI: uri, Message: "failed to get object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(out.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", &Error{URI: uri, Message: "failed to read object body", Cause: err}
	}
	if n > f.maxBytes {
		return nil, "", &Error{URI: uri, Message: fmt.Sprintf("object exceeds %d bytes", f.maxBytes)}
	}

	return buf.Bytes(), path.Base(key), nil
}
