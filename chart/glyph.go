// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	cosπover4 = vg.Length(.707106781202420)
)

// strokeGlyph strokes the open polylines of a glyph with a thin pen.
func strokeGlyph(c *draw.Canvas, sty draw.GlyphStyle, lines ...[]vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	for _, l := range lines {
		p := make(vg.Path, 0, len(l))
		p.Move(l[0])
		for _, pt := range l[1:] {
			p.Line(pt)
		}
		c.Stroke(p)
	}
}

// CrossGlyph is a glyph that draws a big X.
// This version draws a heavier X than draw.CrossGlyph.
type CrossGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius * cosπover4
	strokeGlyph(c, sty,
		[]vg.Point{{X: pt.X - r, Y: pt.Y - r}, {X: pt.X + r, Y: pt.Y + r}},
		[]vg.Point{{X: pt.X - r, Y: pt.Y + r}, {X: pt.X + r, Y: pt.Y - r}})
}

// TriDown draws an open downward-pointing triangle with a bar.
type TriDown struct{}

// DrawGlyph implements the Glyph interface.
func (TriDown) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius * cosπover4
	strokeGlyph(c, sty,
		[]vg.Point{{X: pt.X - r, Y: pt.Y + r}, {X: pt.X, Y: pt.Y - r}, {X: pt.X + r, Y: pt.Y + r}},
		[]vg.Point{{X: pt.X - r, Y: pt.Y}, {X: pt.X + r, Y: pt.Y}})
}

// TriUp draws an open upward-pointing triangle with a bar.
type TriUp struct{}

// DrawGlyph implements the Glyph interface.
func (TriUp) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius * cosπover4
	strokeGlyph(c, sty,
		[]vg.Point{{X: pt.X - r, Y: pt.Y - r}, {X: pt.X, Y: pt.Y + r}, {X: pt.X + r, Y: pt.Y - r}},
		[]vg.Point{{X: pt.X - r, Y: pt.Y}, {X: pt.X + r, Y: pt.Y}})
}

// StarGlyph draws a filled five-pointed star.
type StarGlyph struct{}

// starInner is the ratio of the inner to the outer radius of StarGlyph.
const starInner = 0.45

// DrawGlyph implements the Glyph interface.
func (StarGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.FillPolygon(sty.Color, starPoints(pt, sty.Radius))
}

// starPoints returns the ten vertices of a star centered on pt, with
// the first point straight up.
func starPoints(pt vg.Point, r vg.Length) []vg.Point {
	pts := make([]vg.Point, 10)
	for i := range pts {
		rad := r
		if i%2 == 1 {
			rad = r * starInner
		}
		θ := math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = vg.Point{
			X: pt.X + rad*vg.Length(math.Cos(θ)),
			Y: pt.Y + rad*vg.Length(math.Sin(θ)),
		}
	}
	return pts
}
