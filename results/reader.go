// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rtbench/rtplot/grid"
)

// Comma is the field separator of results files.
const Comma = ';'

// NumFields is the number of fields of every data line: the four grid
// keys followed by one value per Metric.
const NumFields = 4 + int(NumMetrics)

// A SyntaxError reports a malformed line of a results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
	Err      error // underlying error, if any
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.FileName, e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ReadFile reads the results file at path into a table over g.
func ReadFile(path string, g *grid.Grid) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path, g)
}

// Read parses a results file from r into a new table over g.
// fileName is used in error messages only.
//
// The first line is a header and is skipped without being checked.
// Every other line must have exactly NumFields fields. Read stops at
// the first malformed line or off-grid key and returns no table in
// that case.
func Read(r io.Reader, fileName string, g *grid.Grid) (*Table, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)
	cr.Comma = Comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	t := NewTable(g)
	for first := true; ; first = false {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &SyntaxError{fileName, perr.StartLine, "malformed line", perr.Err}
			}
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		if first {
			continue
		}
		line, _ := cr.FieldPos(0)
		c, m, msg, err := parseRecord(rec)
		if msg != "" {
			return nil, &SyntaxError{fileName, line, msg, err}
		}
		if err := t.Set(c, m); err != nil {
			return nil, &SyntaxError{fileName, line, "cell " + c.String(), err}
		}
	}
	return t, nil
}

// parseRecord converts one data line. On failure it returns a
// non-empty message and, for conversion failures, the strconv error.
func parseRecord(rec []string) (c grid.Cell, m Measurement, msg string, err error) {
	if len(rec) != NumFields {
		return c, m, fmt.Sprintf("expected %d fields, found %d", NumFields, len(rec)), nil
	}
	keys := []*int{&c.SqrtSpheres, &c.RaysPerPixel, &c.Depth, &c.Resolution}
	for i, k := range keys {
		v, err := strconv.Atoi(strings.TrimSpace(rec[i]))
		if err != nil {
			return c, m, fmt.Sprintf("field %d", i+1), err
		}
		*k = v
	}
	for i := range m {
		f := len(keys) + i
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[f]), 64)
		if err != nil {
			return c, m, fmt.Sprintf("field %d (%s)", f+1, Metric(i)), err
		}
		m[i] = v
	}
	return c, m, "", nil
}
