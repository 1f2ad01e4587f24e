// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish writes rendered charts to a local directory or a
// Cloud Storage bucket.
package publish

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// A Publisher stores named files.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) error
}

// Dir publishes files into a local directory, creating it on first
// use.
type Dir string

func (d Dir) Publish(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(string(d), 0777); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(string(d), name), data, 0666)
}

// GCS publishes files as objects in a Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	Bucket string
	Prefix string // object name prefix, without trailing slash
}

// ParseGCSURL splits a "gs://bucket/prefix" URL. The prefix may be
// empty.
func ParseGCSURL(u string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(u, "gs://") {
		return "", "", fmt.Errorf("malformed Cloud Storage URL %q, want gs://bucket/prefix", u)
	}
	bucket, prefix, _ = strings.Cut(strings.TrimPrefix(u, "gs://"), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("malformed Cloud Storage URL %q: no bucket", u)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// NewGCS connects to Cloud Storage for the bucket and prefix named by
// url. If credentials is not empty, it names a service account JSON
// file; otherwise the default credentials are used.
func NewGCS(ctx context.Context, url, credentials string) (*GCS, error) {
	bucket, prefix, err := ParseGCSURL(url)
	if err != nil {
		return nil, err
	}
	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCS{client: client, Bucket: bucket, Prefix: prefix}, nil
}

// ObjectName returns the object that Publish writes for name.
func (g *GCS) ObjectName(name string) string {
	if g.Prefix == "" {
		return name
	}
	return path.Join(g.Prefix, name)
}

func (g *GCS) Publish(ctx context.Context, name string, data []byte) error {
	obj := g.ObjectName(name)
	w := g.client.Bucket(g.Bucket).Object(obj).NewWriter(ctx)
	w.ContentType = ContentType(name)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gs://%s/%s: %w", g.Bucket, obj, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gs://%s/%s: %w", g.Bucket, obj, err)
	}
	return nil
}

// Close releases the storage client.
func (g *GCS) Close() error {
	return g.client.Close()
}

// ContentType returns the media type of a file named name.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".svg":
		// Not every system's MIME table knows SVG.
		return "image/svg+xml"
	case ".csv":
		return "text/csv; charset=utf-8"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Multi publishes every file to each of its publishers in order,
// stopping at the first error.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, name string, data []byte) error {
	for _, p := range m {
		if err := p.Publish(ctx, name, data); err != nil {
			return err
		}
	}
	return nil
}
