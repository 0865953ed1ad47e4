// Package fetch retrieves resume documents from S3-compatible object storage.
package fetch

import (
	"fmt"
	"strings"
)

// S3Scheme is the URI scheme accepted by ParseS3URI
const S3Scheme = "s3://"

// DefaultMaxObjectBytes caps the size of a downloaded resume
const DefaultMaxObjectBytes int64 = 10 << 20

// Error represents an error during object retrieval.
type Error struct {
	URI     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URI, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URI, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds the object storage settings. When AccountID is set and
// Endpoint is empty, the Cloudflare R2 endpoint for that account is used.
type Config struct {
	AccountID      string `mapstructure:"account_id"`
	Endpoint       string `mapstructure:"endpoint"`
	Region         string `mapstructure:"region"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UsePathStyle   bool   `mapstructure:"use_path_style"`
	MaxObjectBytes int64  `mapstructure:"max_object_bytes"`
}

// ResolvedEndpoint returns the endpoint URL the client should use, or "" for the AWS default
func (c Config) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	}
	return ""
}

// IsS3URI reports whether the location refers to object storage rather than a local path
func IsS3URI(location string) bool {
	return strings.HasPrefix(strings.ToLower(location), S3Scheme)
}

// ParseS3URI splits s3://bucket/key into its parts. A URI of the form s3:///key
// or s3://key-without-bucket falls back to defaultBucket.
func ParseS3URI(uri, defaultBucket string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", &Error{URI: uri, Message: "not an s3:// URI"}
	}
	rest := uri[len(S3Scheme):]

	bucket, key, found := strings.Cut(rest, "/")
	if !found {
		bucket, key = "", rest
	}
	if bucket == "" {
		bucket = defaultBucket
	}
	key = strings.TrimLeft(key, "/")

	if bucket == "" {
		return "", "", &Error{URI: uri, Message: "no bucket in URI and no default bucket configured"}
	}
	if key == "" {
		return "", "", &Error{URI: uri, Message: "object key is empty"}
	}
	return bucket, key, nil
}
