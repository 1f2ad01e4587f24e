// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rtbench/rtplot/grid"
)

// Header returns the header line written by Write.
func Header() []string {
	hdr := []string{"sqrt_spheres", "rays_per_pixel", "depth", "resolution"}
	for m := Metric(0); m < NumMetrics; m++ {
		hdr = append(hdr, m.String())
	}
	return hdr
}

// Write writes the cells of t that were set to w in results file
// format, in cell order. Read of the output yields a table equal to t.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = Comma
	if err := cw.Write(Header()); err != nil {
		return err
	}
	row := make([]string, NumFields)
	var err error
	t.Each(func(c grid.Cell, m Measurement) {
		if err != nil {
			return
		}
		row[0] = strconv.Itoa(c.SqrtSpheres)
		row[1] = strconv.Itoa(c.RaysPerPixel)
		row[2] = strconv.Itoa(c.Depth)
		row[3] = strconv.Itoa(c.Resolution)
		for i, v := range m {
			row[4+i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		err = cw.Write(row)
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
