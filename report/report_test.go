// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rtbench/rtplot/chart"
	"github.com/rtbench/rtplot/grid"
	"github.com/rtbench/rtplot/results"
)

func smallGrid() *grid.Grid {
	return &grid.Grid{
		SqrtSpheres:  []int{2},
		RaysPerPixel: []int{1, 10},
		Depths:       []int{5},
		Resolutions:  []int{100, 400, 1600},
	}
}

func TestFrame(t *testing.T) {
	g := smallGrid()
	tab := results.NewTable(g)
	tab.Set(grid.Cell{SqrtSpheres: 2, RaysPerPixel: 10, Depth: 5, Resolution: 400}, results.Measurement{1, 2, 3, 4, 5, 6})
	tab.Set(grid.Cell{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5, Resolution: 1600}, results.Measurement{6, 5, 4, 3, 2, 1})

	f := Frame(tab)
	if f.Len() != 2 {
		t.Fatalf("Frame has %d rows, want 2", f.Len())
	}
	want := []string{"sqrt_spheres", "rays_per_pixel", "depth", "resolution",
		"t_gpu", "cpp_gpu", "t_transfer", "cpp_transfer", "t_cpu", "cpp_cpu"}
	if diff := cmp.Diff(want, f.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	// Grid order: rays per pixel 1 comes before 10.
	if diff := cmp.Diff([]int{1, 10}, f.MustColumn("rays_per_pixel")); diff != "" {
		t.Errorf("rays_per_pixel mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 5}, f.MustColumn("t_cpu")); diff != "" {
		t.Errorf("t_cpu mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, tab); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 3 || !strings.Contains(lines[0], "cpp_cpu") {
		t.Errorf("Dump output:\n%s", buf.String())
	}

	buf.Reset()
	if err := Dump(&buf, results.NewTable(g)); err != nil || buf.Len() != 0 {
		t.Errorf("Dump of empty table = %q, %v", buf.String(), err)
	}
}

func TestSummarize(t *testing.T) {
	g := smallGrid()
	tab := results.NewTable(g)
	// Series rpp=1: speed-ups 2, 8 and an absent cell.
	tab.Set(grid.Cell{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5, Resolution: 100}, results.Measurement{results.GPUTime: 1, results.TransferTime: 1, results.CPUTime: 4})
	tab.Set(grid.Cell{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5, Resolution: 400}, results.Measurement{results.GPUTime: 1, results.TransferTime: 1, results.CPUTime: 16})

	sums, err := Summarize(tab, chart.Views()[6])
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	s := sums[0]
	if s.Series != (grid.Series{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5}) || s.N != 2 || s.Min != 2 || s.Max != 8 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.GeoMean-4) > 1e-12 {
		t.Errorf("GeoMean = %v, want 4", s.GeoMean)
	}
	if e := sums[1]; e.N != 0 || !math.IsNaN(e.GeoMean) || !math.IsNaN(e.Min) {
		t.Errorf("empty series summary = %+v", e)
	}

	var buf bytes.Buffer
	if err := PrintSummaries(&buf, chart.Views()[6], sums); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"CPU/GPU time speed-up", "geomean", "NaN"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintSummaries output lacks %q:\n%s", want, out)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTML(&buf, Page{
		Title:  "Ray tracing <benchmark>",
		Source: "result.csv",
		Charts: []ChartRef{
			{Title: "CPU time [µs]", File: "cpu-time.png"},
			{Title: "CPU/GPU time speed-up", File: "speedup-time.png"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<img src="cpu-time.png"`,
		`<img src="speedup-time.png"`,
		`Ray tracing &lt;benchmark&gt;`,
		`<code>result.csv</code>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page lacks %q:\n%s", want, out)
		}
	}
}
