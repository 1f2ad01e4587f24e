// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid defines the parameter space of the ray-tracing
// benchmark: the discrete values of scene complexity, rays per pixel,
// bounce depth and output resolution that a results file is expected
// to cover.
//
// The grid is the full Cartesian product of its four axes. Cells are
// ordered with scene complexity outermost, then rays per pixel, then
// depth, then resolution; this is also the order in which charts draw
// their lines.
package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotInGrid is wrapped by errors reporting a key that is not one
// of the values of its axis.
var ErrNotInGrid = errors.New("not in grid")

// A Grid is the set of parameter values swept by a benchmark run.
type Grid struct {
	// SqrtSpheres is the scene-complexity parameter: the scene holds
	// a SqrtSpheres×SqrtSpheres field of spheres (see SphereCount).
	SqrtSpheres []int `json:"sqrt_spheres"`
	// RaysPerPixel is the number of primary rays cast per pixel.
	RaysPerPixel []int `json:"rays_per_pixel"`
	// Depths is the maximum number of bounces per ray.
	Depths []int `json:"depths"`
	// Resolutions is the number of pixels of the rendered image,
	// in increasing order.
	Resolutions []int `json:"resolutions"`
}

// A Cell names one point of the grid.
type Cell struct {
	SqrtSpheres  int
	RaysPerPixel int
	Depth        int
	Resolution   int
}

func (c Cell) String() string {
	return fmt.Sprintf("spheres=%d/rpp=%d/depth=%d/res=%d", c.SqrtSpheres, c.RaysPerPixel, c.Depth, c.Resolution)
}

// A Series is a grid cell without its resolution. Charts draw one line
// per Series, with resolution on the x axis.
type Series struct {
	SqrtSpheres  int
	RaysPerPixel int
	Depth        int
}

// At returns the cell of s at resolution res.
func (s Series) At(res int) Cell {
	return Cell{s.SqrtSpheres, s.RaysPerPixel, s.Depth, res}
}

func (s Series) String() string {
	return fmt.Sprintf("spheres=%d/rpp=%d/depth=%d", s.SqrtSpheres, s.RaysPerPixel, s.Depth)
}

// DefaultWidths are the horizontal resolutions of the reference run.
var DefaultWidths = []int{256, 640, 1280, 1920, 2560, 3840, 7680}

// Default returns the grid of the reference benchmark run.
func Default() *Grid {
	return &Grid{
		SqrtSpheres:  []int{2, 6, 11},
		RaysPerPixel: []int{1, 10, 50, 100},
		Depths:       []int{5, 15, 50},
		Resolutions:  Resolutions(DefaultWidths, 16, 9),
	}
}

// Resolutions returns the pixel counts of images of the given widths
// at aspect ratio aspectW:aspectH. Heights are not rounded to whole
// lines, so 256 wide at 16:9 is 256*256*9/16 = 36864 pixels.
func Resolutions(widths []int, aspectW, aspectH int) []int {
	res := make([]int, len(widths))
	for i, w := range widths {
		res[i] = w * w * aspectH / aspectW
	}
	return res
}

// SphereCount returns the number of spheres in a scene with complexity
// parameter sqrt. The scene adds four fixed spheres to the field.
func SphereCount(sqrt int) int {
	return sqrt*sqrt + 4
}

// Len returns the number of cells in g.
func (g *Grid) Len() int {
	return len(g.SqrtSpheres) * len(g.RaysPerPixel) * len(g.Depths) * len(g.Resolutions)
}

func position(axis []int, v int) int {
	for i, x := range axis {
		if x == v {
			return i
		}
	}
	return -1
}

// Index returns the dense position of c in g, in cell order.
func (g *Grid) Index(c Cell) (int, error) {
	type axis struct {
		name   string
		values []int
		v      int
	}
	idx := 0
	for _, a := range []axis{
		{"sqrt spheres", g.SqrtSpheres, c.SqrtSpheres},
		{"rays per pixel", g.RaysPerPixel, c.RaysPerPixel},
		{"depth", g.Depths, c.Depth},
		{"resolution", g.Resolutions, c.Resolution},
	} {
		p := position(a.values, a.v)
		if p < 0 {
			return -1, fmt.Errorf("%s %d: %w", a.name, a.v, ErrNotInGrid)
		}
		idx = idx*len(a.values) + p
	}
	return idx, nil
}

// Contains reports whether c is a cell of g.
func (g *Grid) Contains(c Cell) bool {
	_, err := g.Index(c)
	return err == nil
}

// Series returns every line of g in drawing order.
func (g *Grid) Series() []Series {
	out := make([]Series, 0, len(g.SqrtSpheres)*len(g.RaysPerPixel)*len(g.Depths))
	for _, s := range g.SqrtSpheres {
		for _, rpp := range g.RaysPerPixel {
			for _, d := range g.Depths {
				out = append(out, Series{s, rpp, d})
			}
		}
	}
	return out
}

// Cells returns every cell of g in cell order, so that Cells()[i] has
// index i.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, g.Len())
	for _, s := range g.Series() {
		for _, res := range g.Resolutions {
			out = append(out, s.At(res))
		}
	}
	return out
}

// Validate checks that every axis is non-empty and holds distinct
// positive values.
func (g *Grid) Validate() error {
	for _, a := range []struct {
		name   string
		values []int
	}{
		{"sqrt_spheres", g.SqrtSpheres},
		{"rays_per_pixel", g.RaysPerPixel},
		{"depths", g.Depths},
		{"resolutions", g.Resolutions},
	} {
		if len(a.values) == 0 {
			return fmt.Errorf("grid: axis %s is empty", a.name)
		}
		seen := make(map[int]bool, len(a.values))
		for _, v := range a.values {
			if v <= 0 {
				return fmt.Errorf("grid: axis %s: value %d is not positive", a.name, v)
			}
			if seen[v] {
				return fmt.Errorf("grid: axis %s: duplicate value %d", a.name, v)
			}
			seen[v] = true
		}
	}
	return nil
}

// Load decodes a JSON grid description from r and validates it.
func Load(r io.Reader) (*Grid, error) {
	var g Grid
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}
