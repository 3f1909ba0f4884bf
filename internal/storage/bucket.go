// Package storage opens the object storage bucket partition snapshots live in.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/thanos-io/objstore"
	"github.com/thanos-io/objstore/providers/filesystem"
	"github.com/thanos-io/objstore/providers/s3"
)

// New opens a bucket from a URL:
//
//	s3://endpoint/bucket[/prefix][?region=...&insecure=true]
//	filesystem:///path/to/dir
//	inmemory://
func New(_ context.Context, bucketURL string) (objstore.Bucket, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("parsing bucket URL: %w", err)
	}

	switch u.Scheme {
	case "s3":
		return newS3(u)
	case "filesystem":
		if err := os.MkdirAll(u.Path, 0o755); err != nil {
			return nil, fmt.Errorf("creating bucket dir: %w", err)
		}
		return filesystem.NewBucket(u.Path)
	case "inmemory":
		return objstore.NewInMemBucket(), nil
	default:
		return nil, fmt.Errorf("unsupported bucket scheme: %q", u.Scheme)
	}
}

func newS3(u *url.URL) (objstore.Bucket, error) {
	bucketName, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is empty")
	}

	region := u.Query().Get("region")
	if region == "" {
		region = "us-east-1"
	}

	var bucket objstore.Bucket
	bucket, err := s3.NewBucketWithConfig(
		log.NewNopLogger(),
		s3.Config{
			Bucket:    bucketName,
			Endpoint:  u.Host,
			Region:    region,
			Insecure:  u.Query().Get("insecure") == "true",
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		"skyplan",
		func(tpt http.RoundTripper) http.RoundTripper { return tpt },
	)
	if err != nil {
		return nil, fmt.Errorf("creating S3 bucket: %w", err)
	}

	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		bucket = objstore.NewPrefixedBucket(bucket, prefix)
	}
	return bucket, nil
}
