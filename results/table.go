// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results reads, holds and writes ray-tracing benchmark
// results.
//
// A results file is semicolon-separated text with one header line and
// one line per measured grid cell:
//
//	sqrt_spheres;rays_per_pixel;depth;resolution;t_gpu;cpp_gpu;t_transfer;cpp_transfer;t_cpu;cpp_cpu
//	2;1;5;36864;100.0;90.0;10.0;8.0;500.0;480.0
//
// The "t_" columns are elapsed times in microseconds. The "cpp_"
// columns are the same measurements expressed in cycles per pixel.
package results

import (
	"fmt"
	"math"

	"github.com/rtbench/rtplot/grid"
)

// A Metric selects one measured column of a results file.
type Metric int

// Metrics in file column order.
const (
	GPUTime Metric = iota
	GPUCycles
	TransferTime
	TransferCycles
	CPUTime
	CPUCycles

	NumMetrics
)

var metricNames = [NumMetrics]string{
	GPUTime:        "t_gpu",
	GPUCycles:      "cpp_gpu",
	TransferTime:   "t_transfer",
	TransferCycles: "cpp_transfer",
	CPUTime:        "t_cpu",
	CPUCycles:      "cpp_cpu",
}

// String returns the column name of m.
func (m Metric) String() string {
	if m < 0 || m >= NumMetrics {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// Unit returns the unit of m.
func (m Metric) Unit() string {
	switch m {
	case GPUTime, TransferTime, CPUTime:
		return "µs"
	case GPUCycles, TransferCycles, CPUCycles:
		return "cycles/px"
	}
	return ""
}

// A Measurement holds the six measured values of one grid cell,
// indexed by Metric.
type Measurement [NumMetrics]float64

// A Table holds one Measurement per cell of a grid.
//
// Every cell starts out as a zero Measurement, so a cell that was never
// set reads back as zero; use Has to tell a missing cell from a
// measured zero. A Table never grows beyond its grid.
type Table struct {
	Grid *grid.Grid

	values  []Measurement
	present []bool
	n       int
}

// NewTable returns an empty table over g.
func NewTable(g *grid.Grid) *Table {
	return &Table{
		Grid:    g,
		values:  make([]Measurement, g.Len()),
		present: make([]bool, g.Len()),
	}
}

// Set records m as the measurement of cell c, replacing any earlier
// measurement. It fails if c is not a cell of the table's grid.
func (t *Table) Set(c grid.Cell, m Measurement) error {
	i, err := t.Grid.Index(c)
	if err != nil {
		return err
	}
	if !t.present[i] {
		t.present[i] = true
		t.n++
	}
	t.values[i] = m
	return nil
}

// At returns the measurement of cell c. Cells that were never set
// yield a zero Measurement.
func (t *Table) At(c grid.Cell) (Measurement, error) {
	i, err := t.Grid.Index(c)
	if err != nil {
		return Measurement{}, err
	}
	return t.values[i], nil
}

// Value returns metric m of cell c.
func (t *Table) Value(c grid.Cell, m Metric) (float64, error) {
	meas, err := t.At(c)
	if err != nil {
		return 0, err
	}
	return meas[m], nil
}

// Has reports whether cell c was set.
func (t *Table) Has(c grid.Cell) bool {
	i, err := t.Grid.Index(c)
	return err == nil && t.present[i]
}

// Len returns the number of cells that were set.
func (t *Table) Len() int {
	return t.n
}

// Missing returns the cells of the grid that were never set, in cell
// order.
func (t *Table) Missing() []grid.Cell {
	var out []grid.Cell
	for i, c := range t.Grid.Cells() {
		if !t.present[i] {
			out = append(out, c)
		}
	}
	return out
}

// Each calls f for every cell that was set, in cell order.
func (t *Table) Each(f func(c grid.Cell, m Measurement)) {
	for i, c := range t.Grid.Cells() {
		if t.present[i] {
			f(c, t.values[i])
		}
	}
}

// Equal reports whether t and u hold the same cells with the same
// measurements, counting NaN as equal to NaN. Their grids must list
// the same cells in the same order.
func (t *Table) Equal(u *Table) bool {
	if len(t.values) != len(u.values) || t.n != u.n {
		return false
	}
	tc, uc := t.Grid.Cells(), u.Grid.Cells()
	for i := range t.values {
		if tc[i] != uc[i] || t.present[i] != u.present[i] || !sameMeasurement(t.values[i], u.values[i]) {
			return false
		}
	}
	return true
}

func sameMeasurement(a, b Measurement) bool {
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}
