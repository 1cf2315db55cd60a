// publish/backend.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"google.golang.org/api/option"
)

const (
	GCSCredentialsEnv = "NATTRACK_GCS_CREDENTIALS"
	S3EndpointEnv     = "NATTRACK_S3_ENDPOINT"
	S3AccessKeyEnv    = "NATTRACK_S3_ACCESS_KEY"
	S3SecretKeyEnv    = "NATTRACK_S3_SECRET_KEY"

	xmlContentType = "application/xml"
)

// Backend stores objects in a bucket (or pretends to).
type Backend interface {
	Store(ctx context.Context, path string, r io.Reader) (int64, error)
	Close()
}

type CountingWriter struct {
	io.Writer
	N int64
}

func (cw *CountingWriter) Write(b []byte) (int, error) {
	n, err := cw.Writer.Write(b)
	cw.N += int64(n)
	return n, err
}

type SinkWriter struct{}

func (w *SinkWriter) Write(b []byte) (int, error) {
	return len(b), nil
}

// DryRunBackend accepts everything and stores nothing. Stored records the
// size of each object that would have been written.
type DryRunBackend struct {
	Stored map[string]int64
}

func (d *DryRunBackend) Store(ctx context.Context, path string, r io.Reader) (int64, error) {
	cw := &CountingWriter{Writer: &SinkWriter{}}
	if _, err := io.Copy(cw, r); err != nil {
		return cw.N, err
	}
	if d.Stored == nil {
		d.Stored = make(map[string]int64)
	}
	d.Stored[path] = cw.N
	return cw.N, nil
}

func (d *DryRunBackend) Close() {}

type GCSBackend struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// MakeGCSBackend returns a backend for the named bucket using the service
// account credentials in the NATTRACK_GCS_CREDENTIALS environment variable.
func MakeGCSBackend(ctx context.Context, bucketName string) (Backend, error) {
	credsJSON := os.Getenv(GCSCredentialsEnv)
	if credsJSON == "" {
		return nil, fmt.Errorf("%s environment variable not set: %w", GCSCredentialsEnv, ErrNoCredentials)
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credsJSON)))
	if err != nil {
		return nil, err
	}

	return &GCSBackend{
		client: client,
		bucket: client.Bucket(bucketName),
	}, nil
}

func (g *GCSBackend) Store(ctx context.Context, path string, r io.Reader) (int64, error) {
	objw := g.bucket.Object(path).NewWriter(ctx)
	objw.ContentType = xmlContentType
	n, err := io.Copy(objw, r)
	if err != nil {
		objw.Close()
		return n, err
	}
	return n, objw.Close()
}

func (g *GCSBackend) Close() { g.client.Close() }

type S3Backend struct {
	client *s3.Client
	bucket string
}

// MakeS3Backend returns a backend for the named bucket. Credentials and
// region come from the AWS SDK's default chain unless both
// NATTRACK_S3_ACCESS_KEY and NATTRACK_S3_SECRET_KEY are set.
// NATTRACK_S3_ENDPOINT selects an S3-compatible service instead of AWS.
func MakeS3Backend(ctx context.Context, bucketName string) (Backend, error) {
	var opts []func(*config.LoadOptions) error
	if key, secret := os.Getenv(S3AccessKeyEnv), os.Getenv(S3SecretKeyEnv); key != "" && secret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv(S3EndpointEnv)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Backend{client: client, bucket: bucketName}, nil
}

func (b *S3Backend) Store(ctx context.Context, path string, r io.Reader) (int64, error) {
	// PutObject needs a seekable body to compute the payload hash, so
	// buffer the object; the XML files are small.
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(xmlContentType),
	})
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (b *S3Backend) Close() {}
