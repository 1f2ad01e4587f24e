// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseGCSURL(t *testing.T) {
	for _, test := range []struct {
		url, bucket, prefix string
		ok                  bool
	}{
		{"gs://charts", "charts", "", true},
		{"gs://charts/", "charts", "", true},
		{"gs://charts/rt/2026/", "charts", "rt/2026", true},
		{"gs:///rt", "", "", false},
		{"s3://charts/rt", "", "", false},
		{"charts", "", "", false},
	} {
		bucket, prefix, err := ParseGCSURL(test.url)
		if (err == nil) != test.ok || bucket != test.bucket || prefix != test.prefix {
			t.Errorf("ParseGCSURL(%q) = %q, %q, %v", test.url, bucket, prefix, err)
		}
	}
}

func TestObjectName(t *testing.T) {
	g := &GCS{Bucket: "b"}
	if got := g.ObjectName("cpu-time.png"); got != "cpu-time.png" {
		t.Errorf("ObjectName without prefix = %q", got)
	}
	g.Prefix = "rt/run1"
	if got := g.ObjectName("cpu-time.png"); got != "rt/run1/cpu-time.png" {
		t.Errorf("ObjectName = %q", got)
	}
}

func TestContentType(t *testing.T) {
	for name, want := range map[string]string{
		"a.png":  "image/png",
		"a.svg":  "image/svg+xml",
		"a.pdf":  "application/pdf",
		"a.csv":  "text/csv; charset=utf-8",
		"a.zzzq": "application/octet-stream",
	} {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "png")
	ctx := context.Background()
	if err := Dir(dir).Publish(ctx, "cpu-time.png", []byte("data")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "cpu-time.png"))
	if err != nil || string(got) != "data" {
		t.Errorf("published file = %q, %v", got, err)
	}
}

type failing struct{ n *int }

func (f failing) Publish(ctx context.Context, name string, data []byte) error {
	*f.n++
	return errors.New("boom")
}

func TestMulti(t *testing.T) {
	dir := t.TempDir()
	var calls int
	m := Multi{Dir(dir), failing{&calls}, failing{&calls}}
	if err := m.Publish(context.Background(), "x.png", nil); err == nil {
		t.Fatal("Publish succeeded")
	}
	if calls != 1 {
		t.Errorf("failing publisher called %d times, want 1", calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "x.png")); err != nil {
		t.Errorf("first publisher did not write: %v", err)
	}
}
