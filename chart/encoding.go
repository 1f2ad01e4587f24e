// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rtbench/rtplot/grid"
)

// An Encoding maps grid axes to visual attributes. The same encoding
// is used for every view so that charts can be compared side by side.
type Encoding struct {
	// Markers gives the point glyph of each bounce depth.
	Markers map[int]draw.GlyphDrawer
	// Dashes gives the line dash pattern of each scene complexity.
	// A nil pattern is a solid line.
	Dashes map[int][]vg.Length
	// Colors gives the line and point color of each rays-per-pixel
	// value.
	Colors map[int]color.Color

	LineWidth   vg.Length
	GlyphRadius vg.Length
}

var markerPalette = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.PlusGlyph{},
	StarGlyph{},
	TriUp{},
	TriDown{},
	CrossGlyph{},
	draw.SquareGlyph{},
	draw.RingGlyph{},
}

var dashPalette = [][]vg.Length{
	nil,                                                      // solid
	{vg.Points(1), vg.Points(2)},                             // dotted
	{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)}, // dash-dot
	{vg.Points(6), vg.Points(3)},                             // dashed
	{vg.Points(10), vg.Points(3)},                            // long dash
}

var colorPalette = []color.Color{
	color.Black,
	color.NRGBA{0xBF, 0xBF, 0x00, 0xFF}, // olive yellow
	color.NRGBA{0x00, 0x80, 0x00, 0xFF}, // green
	color.NRGBA{0xFF, 0x00, 0x00, 0xFF}, // red
	color.NRGBA{0x00, 0x00, 0xFF, 0xFF}, // blue
	color.NRGBA{0xBF, 0x00, 0xBF, 0xFF}, // magenta
	color.NRGBA{0x00, 0xBF, 0xBF, 0xFF}, // cyan
}

// DefaultEncoding assigns markers, dash patterns and colors to the
// values of g by axis position. It fails if an axis has more values
// than the corresponding palette.
func DefaultEncoding(g *grid.Grid) (*Encoding, error) {
	if len(g.Depths) > len(markerPalette) {
		return nil, fmt.Errorf("chart: %d depths, but only %d markers", len(g.Depths), len(markerPalette))
	}
	if len(g.SqrtSpheres) > len(dashPalette) {
		return nil, fmt.Errorf("chart: %d scene complexities, but only %d line styles", len(g.SqrtSpheres), len(dashPalette))
	}
	if len(g.RaysPerPixel) > len(colorPalette) {
		return nil, fmt.Errorf("chart: %d rays-per-pixel values, but only %d colors", len(g.RaysPerPixel), len(colorPalette))
	}
	enc := &Encoding{
		Markers:     make(map[int]draw.GlyphDrawer),
		Dashes:      make(map[int][]vg.Length),
		Colors:      make(map[int]color.Color),
		LineWidth:   vg.Points(1),
		GlyphRadius: vg.Points(3),
	}
	for i, d := range g.Depths {
		enc.Markers[d] = markerPalette[i]
	}
	for i, s := range g.SqrtSpheres {
		enc.Dashes[s] = dashPalette[i]
	}
	for i, rpp := range g.RaysPerPixel {
		enc.Colors[rpp] = colorPalette[i]
	}
	return enc, nil
}

// Validate checks that every axis value of g has a visual attribute.
func (e *Encoding) Validate(g *grid.Grid) error {
	for _, d := range g.Depths {
		if _, ok := e.Markers[d]; !ok {
			return fmt.Errorf("chart: no marker for depth %d", d)
		}
	}
	for _, s := range g.SqrtSpheres {
		if _, ok := e.Dashes[s]; !ok {
			return fmt.Errorf("chart: no line style for sqrt spheres %d", s)
		}
	}
	for _, rpp := range g.RaysPerPixel {
		if _, ok := e.Colors[rpp]; !ok {
			return fmt.Errorf("chart: no color for %d rays per pixel", rpp)
		}
	}
	return nil
}

func (e *Encoding) lineStyle(s grid.Series) draw.LineStyle {
	return draw.LineStyle{
		Color:  e.Colors[s.RaysPerPixel],
		Width:  e.LineWidth,
		Dashes: e.Dashes[s.SqrtSpheres],
	}
}

func (e *Encoding) glyphStyle(s grid.Series) draw.GlyphStyle {
	return draw.GlyphStyle{
		Color:  e.Colors[s.RaysPerPixel],
		Radius: e.GlyphRadius,
		Shape:  e.Markers[s.Depth],
	}
}

// A LegendEntry is one line of a chart legend.
type LegendEntry struct {
	Label string
	Thumb plot.Thumbnailer
}

// Legend returns the legend of g: depths with their markers, scene
// sizes with their line styles, and rays per pixel with their colors.
// Markers and line styles are drawn in black.
func (e *Encoding) Legend(g *grid.Grid) []LegendEntry {
	var out []LegendEntry
	for _, d := range g.Depths {
		out = append(out, LegendEntry{
			Label: fmt.Sprintf("Rays depth:%d", d),
			Thumb: glyphThumb{Color: color.Black, Radius: e.GlyphRadius, Shape: e.Markers[d]},
		})
	}
	for _, s := range g.SqrtSpheres {
		out = append(out, LegendEntry{
			Label: fmt.Sprintf("Number of spheres:%d", grid.SphereCount(s)),
			Thumb: lineThumb{Color: color.Black, Width: e.LineWidth, Dashes: e.Dashes[s]},
		})
	}
	for _, rpp := range g.RaysPerPixel {
		out = append(out, LegendEntry{
			Label: fmt.Sprintf("Rays per pixel:%d", rpp),
			Thumb: lineThumb{Color: e.Colors[rpp], Width: e.LineWidth},
		})
	}
	return out
}

type glyphThumb draw.GlyphStyle

// Thumbnail implements the plot.Thumbnailer interface.
func (g glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle(g), c.Center())
}

type lineThumb draw.LineStyle

// Thumbnail implements the plot.Thumbnailer interface.
func (l lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(draw.LineStyle(l), c.Min.X, y, c.Max.X, y)
}
