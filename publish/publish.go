// publish/publish.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package publish uploads the generated track files to cloud storage so
// that they can be distributed to other controllers.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mmp/nattrack/log"
)

var (
	ErrMissingBucket = errors.New("Publish target has no bucket name")
	ErrNoCredentials = errors.New("No storage credentials provided")
	ErrUnknownScheme = errors.New("Unknown publish target scheme")
)

// Target is a parsed publish destination of the form
// scheme://bucket/prefix, where scheme is gs, s3 or dryrun.
type Target struct {
	Scheme string
	Bucket string
	Prefix string
}

func ParseTarget(s string) (Target, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Target{}, err
	}

	t := Target{
		Scheme: strings.ToLower(u.Scheme),
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}
	switch t.Scheme {
	case "gs", "s3":
		if t.Bucket == "" {
			return Target{}, fmt.Errorf("%s: %w", s, ErrMissingBucket)
		}
	case "dryrun":
	default:
		return Target{}, fmt.Errorf("%s: %w", s, ErrUnknownScheme)
	}
	return t, nil
}

func (t Target) String() string {
	return t.Scheme + "://" + path.Join(t.Bucket, t.Prefix)
}

// Key returns the object name used for the file name.
func (t Target) Key(name string) string {
	if t.Prefix == "" {
		return name
	}
	return t.Prefix + "/" + name
}

// Publisher stores files in a Backend under a Target's prefix.
type Publisher struct {
	Target  Target
	Backend Backend
	Logger  *log.Logger
}

// Open parses target and connects to the corresponding storage backend.
func Open(ctx context.Context, target string, lg *log.Logger) (*Publisher, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	var b Backend
	switch t.Scheme {
	case "gs":
		b, err = MakeGCSBackend(ctx, t.Bucket)
	case "s3":
		b, err = MakeS3Backend(ctx, t.Bucket)
	case "dryrun":
		b = &DryRunBackend{}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}

	lg.Info("Publishing enabled", "target", t.String())
	return &Publisher{Target: t, Backend: b, Logger: lg}, nil
}

func (p *Publisher) Publish(ctx context.Context, name string, data []byte) error {
	key := p.Target.Key(name)
	n, err := p.Backend.Store(ctx, key, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s/%s: %w", p.Target.Bucket, key, err)
	}
	p.Logger.Info("Published", "target", p.Target.Scheme, "bucket", p.Target.Bucket, "key", key, "bytes", n)
	return nil
}

func (p *Publisher) Close() {
	if p != nil && p.Backend != nil {
		p.Backend.Close()
	}
}
