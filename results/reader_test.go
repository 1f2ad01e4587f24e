// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rtbench/rtplot/grid"
)

const header = "sqrt_s;rpp;rd;res;t_opencl;cpp_opencl;t_transfer;cpp_transfer;t_cpu;cpp_cpu\n"

// synthetic returns a results file covering every cell of g. Cell i
// has value 10*i+k+1 for metric k.
func synthetic(g *grid.Grid) string {
	var b strings.Builder
	b.WriteString(header)
	for i, c := range g.Cells() {
		fmt.Fprintf(&b, "%d;%d;%d;%d", c.SqrtSpheres, c.RaysPerPixel, c.Depth, c.Resolution)
		for k := 0; k < int(NumMetrics); k++ {
			fmt.Fprintf(&b, ";%d.5", 10*i+k+1)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestReadScenario(t *testing.T) {
	// A grid whose smallest resolution is 36000 rather than 36864.
	g := grid.Default()
	g.Resolutions = append([]int{36000}, g.Resolutions[1:]...)

	tab, err := Read(strings.NewReader(header+"2;1;5;36000;100.0;90.0;10.0;8.0;500.0;480.0\n"), "result.csv", g)
	if err != nil {
		t.Fatal(err)
	}
	c := grid.Cell{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5, Resolution: 36000}
	want := Measurement{100, 90, 10, 8, 500, 480}
	got, err := tab.At(c)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("At(%v) = %v, want %v", c, got, want)
	}
	if v, _ := tab.Value(c, GPUTime); v != 100 {
		t.Errorf("GPUTime = %v, want 100", v)
	}
	if v, _ := tab.Value(c, CPUCycles); v != 480 {
		t.Errorf("CPUCycles = %v, want 480", v)
	}
	if tab.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tab.Len())
	}
}

func TestReadZeroInit(t *testing.T) {
	g := grid.Default()
	tab, err := Read(strings.NewReader(header+"6;10;15;921600;1;2;3;4;5;6\n"), "", g)
	if err != nil {
		t.Fatal(err)
	}
	set := grid.Cell{SqrtSpheres: 6, RaysPerPixel: 10, Depth: 15, Resolution: 921600}
	for _, c := range g.Cells() {
		m, err := tab.At(c)
		if err != nil {
			t.Fatal(err)
		}
		if c == set {
			if !tab.Has(c) {
				t.Errorf("Has(%v) = false", c)
			}
			continue
		}
		if m != (Measurement{}) {
			t.Errorf("At(%v) = %v, want zero", c, m)
		}
		if tab.Has(c) {
			t.Errorf("Has(%v) = true", c)
		}
	}
	if got, want := len(tab.Missing()), g.Len()-1; got != want {
		t.Errorf("len(Missing()) = %d, want %d", got, want)
	}
}

func TestReadRoundTrip(t *testing.T) {
	g := grid.Default()
	tab, err := Read(strings.NewReader(synthetic(g)), "", g)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != g.Len() {
		t.Fatalf("Len() = %d, want %d", tab.Len(), g.Len())
	}
	for i, c := range g.Cells() {
		m, _ := tab.At(c)
		for k := range m {
			want, _ := strconv.ParseFloat(fmt.Sprintf("%d.5", 10*i+k+1), 64)
			if m[k] != want {
				t.Errorf("%v %s = %v, want %v", c, Metric(k), m[k], want)
			}
		}
	}
}

func TestReadDeterministic(t *testing.T) {
	g := grid.Default()
	path := filepath.Join(t.TempDir(), "result.csv")
	if err := os.WriteFile(path, []byte(synthetic(g)), 0666); err != nil {
		t.Fatal(err)
	}
	a, err := ReadFile(path, g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ReadFile(path, g)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("two reads of the same file differ")
	}
}

func TestReadHeaderOnly(t *testing.T) {
	for _, in := range []string{"", header, "not;a;real;header\n"} {
		tab, err := Read(strings.NewReader(in), "", grid.Default())
		if err != nil {
			t.Errorf("Read(%q): %v", in, err)
			continue
		}
		if tab.Len() != 0 {
			t.Errorf("Read(%q).Len() = %d, want 0", in, tab.Len())
		}
	}
}

func TestReadDuplicateOverwrites(t *testing.T) {
	in := header + "2;1;5;36864;1;1;1;1;1;1\n2;1;5;36864;2;2;2;2;2;2\n"
	tab, err := Read(strings.NewReader(in), "", grid.Default())
	if err != nil {
		t.Fatal(err)
	}
	m, _ := tab.At(grid.Cell{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5, Resolution: 36864})
	if m[GPUTime] != 2 || tab.Len() != 1 {
		t.Errorf("got %v (len %d), want later row to win", m, tab.Len())
	}
}

func TestReadErrors(t *testing.T) {
	for _, test := range []struct {
		name    string
		rows    string
		line    int
		msg     string
		notGrid bool
	}{
		{"nine fields", "2;1;5;36864;100.0;90.0;10.0;8.0;500.0\n", 2, "expected 10 fields, found 9", false},
		{"eleven fields", "2;1;5;36864;1;2;3;4;5;6;7\n", 2, "expected 10 fields, found 11", false},
		{"float key", "2;1;5;36864.0;1;2;3;4;5;6\n", 2, "field 4", false},
		{"bad value", "2;1;5;36864;1;2;x;4;5;6\n", 2, "field 7 (t_transfer)", false},
		{"off grid", "2;1;5;36864;1;2;3;4;5;6\n2;1;5;36000;1;2;3;4;5;6\n", 3, "cell spheres=2/rpp=1/depth=5/res=36000", true},
		{"bad depth", "2;1;7;36864;1;2;3;4;5;6\n", 2, "cell", true},
	} {
		t.Run(test.name, func(t *testing.T) {
			tab, err := Read(strings.NewReader(header+test.rows), "in.csv", grid.Default())
			if tab != nil {
				t.Errorf("Read returned a partial table")
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Read error = %v, want *SyntaxError", err)
			}
			if serr.FileName != "in.csv" || serr.Line != test.line {
				t.Errorf("error at %s:%d, want in.csv:%d", serr.FileName, serr.Line, test.line)
			}
			if !strings.Contains(serr.Msg, test.msg) {
				t.Errorf("error message %q does not contain %q", serr.Msg, test.msg)
			}
			if got := errors.Is(err, grid.ErrNotInGrid); got != test.notGrid {
				t.Errorf("errors.Is(err, ErrNotInGrid) = %v, want %v", got, test.notGrid)
			}
		})
	}
}

func TestReadBlanksTrimmed(t *testing.T) {
	tab, err := Read(strings.NewReader(header+" 2; 1;5 ;36864; 1.5;2;3;4;5;6 \n"), "", grid.Default())
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := tab.Value(grid.Cell{SqrtSpheres: 2, RaysPerPixel: 1, Depth: 5, Resolution: 36864}, GPUTime); v != 1.5 {
		t.Errorf("GPUTime = %v, want 1.5", v)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), grid.Default())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile error = %v, want ErrNotExist", err)
	}
}

func TestWriteRead(t *testing.T) {
	g := grid.Default()
	tab := NewTable(g)
	for i, c := range g.Cells() {
		if i%5 != 0 {
			continue
		}
		if err := tab.Set(c, Measurement{float64(i), 0.1, 1e-9, 3, 1e12, 0}); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := Write(&buf, tab); err != nil {
		t.Fatal(err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if diff := cmp.Diff(strings.Join(Header(), ";"), first); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	back, err := Read(&buf, "", g)
	if err != nil {
		t.Fatal(err)
	}
	if !tab.Equal(back) {
		t.Error("Read(Write(t)) differs from t")
	}
}
