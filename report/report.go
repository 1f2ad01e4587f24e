// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report prints benchmark result tables and per-series
// summaries, and writes an HTML index of rendered charts.
package report

import (
	"io"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/rtbench/rtplot/chart"
	"github.com/rtbench/rtplot/grid"
	"github.com/rtbench/rtplot/results"
)

// Frame returns the cells of t that were set as a columnar table, one
// row per cell in grid order. Its columns are the four grid keys
// followed by one column per metric.
func Frame(t *results.Table) *table.Table {
	var spheres, rpp, depth, res []int
	var vals [results.NumMetrics][]float64
	t.Each(func(c grid.Cell, m results.Measurement) {
		spheres = append(spheres, c.SqrtSpheres)
		rpp = append(rpp, c.RaysPerPixel)
		depth = append(depth, c.Depth)
		res = append(res, c.Resolution)
		for i, v := range m {
			vals[i] = append(vals[i], v)
		}
	})
	b := table.NewBuilder(nil).
		Add("sqrt_spheres", spheres).
		Add("rays_per_pixel", rpp).
		Add("depth", depth).
		Add("resolution", res)
	for i, col := range vals {
		b.Add(results.Metric(i).String(), col)
	}
	return b.Done()
}

// Dump prints the cells of t that were set.
func Dump(w io.Writer, t *results.Table) error {
	if t.Len() == 0 {
		return nil
	}
	return table.Fprint(w, Frame(t), "%d", "%d", "%d", "%d", "%.6g", "%.6g", "%.6g", "%.6g", "%.6g", "%.6g")
}

// A Summary describes the values of one series of a view across
// resolutions.
type Summary struct {
	Series grid.Series
	// N is the number of values that are positive and finite. Min,
	// Max and GeoMean are computed over those values only, and are
	// NaN if N is 0.
	N                 int
	Min, Max, GeoMean float64
}

// Summarize summarizes every series of view v of t, in grid order.
func Summarize(t *results.Table, v chart.View) ([]Summary, error) {
	g := t.Grid
	out := make([]Summary, 0, len(g.Series()))
	for _, s := range g.Series() {
		var xs []float64
		for _, res := range g.Resolutions {
			m, err := t.At(s.At(res))
			if err != nil {
				return nil, err
			}
			if x := v.Value(m); x > 0 && !math.IsInf(x, 0) {
				xs = append(xs, x)
			}
		}
		sum := Summary{Series: s, N: len(xs), Min: math.NaN(), Max: math.NaN(), GeoMean: math.NaN()}
		if len(xs) > 0 {
			sum.Min, sum.Max = stats.Bounds(xs)
			sum.GeoMean = stats.GeoMean(xs)
		}
		out = append(out, sum)
	}
	return out, nil
}

// PrintSummaries prints sums, which describe view v, as a table.
func PrintSummaries(w io.Writer, v chart.View, sums []Summary) error {
	if len(sums) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, v.YLabel+"\n"); err != nil {
		return err
	}
	var spheres, rpp, depth, n []int
	var min, geo, max []float64
	for _, s := range sums {
		spheres = append(spheres, grid.SphereCount(s.Series.SqrtSpheres))
		rpp = append(rpp, s.Series.RaysPerPixel)
		depth = append(depth, s.Series.Depth)
		n = append(n, s.N)
		min = append(min, s.Min)
		geo = append(geo, s.GeoMean)
		max = append(max, s.Max)
	}
	tab := table.NewBuilder(nil).
		Add("spheres", spheres).
		Add("rays/px", rpp).
		Add("depth", depth).
		Add("n", n).
		Add("min", min).
		Add("geomean", geo).
		Add("max", max).
		Done()
	if err := table.Fprint(w, tab, "%d", "%d", "%d", "%d", "%.4g", "%.4g", "%.4g"); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
