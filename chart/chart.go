// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws ray-tracing benchmark results as line charts,
// one line per (scene complexity, rays per pixel, depth) series with
// resolution on the x axis.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/rtbench/rtplot/results"
)

// XLabel labels the x axis of every chart.
const XLabel = "resolution in pixels"

// ErrNoData is returned by Plot when a view has no point that can be
// drawn.
var ErrNoData = errors.New("no drawable points")

// Options control how charts are drawn and exported.
type Options struct {
	// LogScale draws both axes on a logarithmic scale. Values that
	// are not positive cannot be drawn on a log scale and are dropped.
	LogScale bool

	// Width and Height are the exported chart size.
	Width, Height vg.Length
	// DPI is the resolution of raster output.
	DPI int

	// Warn, if non-nil, is told about dropped points.
	Warn func(format string, args ...interface{})
}

// DefaultOptions returns log-log charts of 20cm by 15cm at 150 DPI.
func DefaultOptions() Options {
	return Options{
		LogScale: true,
		Width:    20 * vg.Centimeter,
		Height:   15 * vg.Centimeter,
		DPI:      150,
	}
}

// Plot draws view v of table t with encoding enc.
//
// Series are drawn in grid order. Points whose value is NaN or
// infinite, or not positive on a log scale, are dropped and the line
// is broken around them.
func Plot(t *results.Table, v View, enc *Encoding, opts Options) (*plot.Plot, error) {
	g := t.Grid
	if err := enc.Validate(g); err != nil {
		return nil, err
	}

	pl := plot.New()
	pl.Title.Text = v.Title
	pl.X.Label.Text = XLabel
	pl.Y.Label.Text = v.YLabel
	if opts.LogScale {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{}
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xDD}
	grid.Horizontal.Color = color.Gray{0xDD}
	pl.Add(grid)

	drawn, dropped := 0, 0
	for _, s := range g.Series() {
		xys := make(plotter.XYs, len(g.Resolutions))
		for i, res := range g.Resolutions {
			m, err := t.At(s.At(res))
			if err != nil {
				return nil, err
			}
			xys[i] = plotter.XY{X: float64(res), Y: v.Value(m)}
		}
		segs, n := drawable(xys, opts.LogScale)
		dropped += n
		for _, seg := range segs {
			line, points, err := plotter.NewLinePoints(seg)
			if err != nil {
				return nil, fmt.Errorf("%s: series %v: %w", v.Name, s, err)
			}
			line.LineStyle = enc.lineStyle(s)
			points.GlyphStyle = enc.glyphStyle(s)
			pl.Add(line, points)
			drawn += len(seg)
		}
	}
	if drawn == 0 {
		return nil, fmt.Errorf("%s: %w", v.Name, ErrNoData)
	}
	if dropped > 0 && opts.Warn != nil {
		opts.Warn("%s: dropped %d of %d points that cannot be drawn\n", v.Name, dropped, g.Len())
	}
	if opts.LogScale {
		// A degenerate range would be widened by ±1, which can
		// reach zero on a log axis.
		widen(&pl.X)
		widen(&pl.Y)
	}

	for _, e := range enc.Legend(g) {
		pl.Legend.Add(e.Label, e.Thumb)
	}
	pl.Legend.Top = true
	pl.Legend.Left = true

	return pl, nil
}

// drawable splits xys into runs of consecutive drawable points and
// reports how many points were dropped.
func drawable(xys plotter.XYs, logScale bool) (segs []plotter.XYs, dropped int) {
	ok := func(v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		return !logScale || v > 0
	}
	var cur plotter.XYs
	for _, xy := range xys {
		if ok(xy.X) && ok(xy.Y) {
			cur = append(cur, xy)
			continue
		}
		dropped++
		if len(cur) > 0 {
			segs = append(segs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs, dropped
}

func widen(a *plot.Axis) {
	if a.Min == a.Max {
		a.Min /= 2
		a.Max *= 2
	}
}

// Formats lists the export formats understood by Render, which are
// also the file extensions of the output.
var Formats = []string{"png", "svg", "pdf"}

// Render draws pl in the given format ("png", "svg" or "pdf") and
// writes it to w.
func Render(w io.Writer, pl *plot.Plot, format string, opts Options) error {
	var can vg.CanvasWriterTo
	switch format {
	case "png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(opts.Width, opts.Height),
			vgimg.UseDPI(opts.DPI),
			vgimg.UseBackgroundColor(color.White))}
	case "svg":
		can = vgsvg.New(opts.Width, opts.Height)
	case "pdf":
		can = vgpdf.New(opts.Width, opts.Height)
	default:
		return fmt.Errorf("chart: unknown format %q", format)
	}
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}
