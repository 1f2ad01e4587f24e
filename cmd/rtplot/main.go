// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rtplot draws comparison charts of ray-tracing benchmark results.
//
// Usage:
//
//	rtplot [options] [result.csv]
//
// Rtplot reads a semicolon-separated results file (result.csv by
// default) holding CPU, OpenCL GPU and memory transfer measurements
// over a grid of scene complexities, rays per pixel, ray depths and
// resolutions, and writes eight log-log charts: one per measured metric
// and two CPU/GPU speed-up charts.
//
// Charts are written as PNG files into the directory named by -png
// ("charts" by default), and optionally as SVG and PDF. Each file is
// named after its view, for example cpu-time.png or speedup-cycles.svg.
//
// Results can be saved in and reloaded from a SQL database with -db,
// -save and -run. With -gcs, every chart is also uploaded to a Cloud
// Storage bucket.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/plot/vg"

	"github.com/rtbench/rtplot/chart"
	"github.com/rtbench/rtplot/grid"
	"github.com/rtbench/rtplot/internal/publish"
	"github.com/rtbench/rtplot/report"
	"github.com/rtbench/rtplot/results"
	"github.com/rtbench/rtplot/storage/db"
)

// errUsage reports bad command-line arguments. Usage has already been
// printed.
var errUsage = errors.New("usage")

func main() {
	err := rtplot(os.Stdout, os.Stderr, os.Args[1:])
	if err == errUsage {
		os.Exit(2)
	}
	if err != nil {
		fail("rtplot: %v\n", err)
	}
}

type config struct {
	input    string
	gridFile string

	pngDir, svgDir, pdfDir string

	logScale      bool
	width, height float64 // cm
	dpi           int

	htmlFile string
	summary  bool
	dump     bool
	csvFile  string

	dsn   string
	save  bool
	runID int64
	list  bool

	gcsURL         string
	gcsCredentials string
}

func parseFlags(stderr io.Writer, args []string) (*config, error) {
	c := &config{
		input:    "result.csv",
		pngDir:   "charts",
		logScale: true,
		width:    20,
		height:   15,
		dpi:      150,
		runID:    -1,
	}

	flags := flag.NewFlagSet("rtplot", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: rtplot [options] [result.csv]\n")
		fmt.Fprintf(stderr, "options:\n")
		flags.PrintDefaults()
	}

	flags.StringVar(&c.gridFile, "grid", c.gridFile, "Read the parameter grid from this JSON `file`")

	flags.StringVar(&c.pngDir, "png", c.pngDir, "Directory to write png chart(s) into, empty for none")
	flags.StringVar(&c.svgDir, "svg", c.svgDir, "Directory to write svg chart(s) into")
	flags.StringVar(&c.pdfDir, "pdf", c.pdfDir, "Directory to write pdf chart(s) into")

	flags.BoolVar(&c.logScale, "log", c.logScale, "Use a log scale in the charts")
	flags.Float64Var(&c.width, "width", c.width, "Chart width in `cm`")
	flags.Float64Var(&c.height, "height", c.height, "Chart height in `cm`")
	flags.IntVar(&c.dpi, "dpi", c.dpi, "Resolution of png charts")

	flags.StringVar(&c.htmlFile, "html", c.htmlFile, "Write an HTML index of the png charts to this `file`")
	flags.BoolVar(&c.summary, "summary", c.summary, "Print per-series summaries of the speed-up charts")
	flags.BoolVar(&c.dump, "dump", c.dump, "Print the results table")
	flags.StringVar(&c.csvFile, "csv", c.csvFile, "Write the results table to this `file` in input form")

	flags.StringVar(&c.dsn, "db", c.dsn, "Results database as `driver:dsn`, for example sqlite3:results.db")
	flags.BoolVar(&c.save, "save", c.save, "Save the results as a new run in the -db database")
	flags.Int64Var(&c.runID, "run", c.runID, "Read run `id` from the -db database instead of a results file")
	flags.BoolVar(&c.list, "list", c.list, "List the runs in the -db database and exit")

	flags.StringVar(&c.gcsURL, "gcs", c.gcsURL, "Also upload every chart under this gs://bucket/prefix `URL`")
	flags.StringVar(&c.gcsCredentials, "gcs-credentials", c.gcsCredentials, "Service account JSON `file` for -gcs")

	if err := flags.Parse(args); err != nil {
		// flags has printed the problem and usage.
		return nil, errUsage
	}
	switch flags.NArg() {
	case 0:
	case 1:
		c.input = flags.Arg(0)
	default:
		flags.Usage()
		return nil, errUsage
	}

	if (c.save || c.runID >= 0 || c.list) && c.dsn == "" {
		return nil, fmt.Errorf("-save, -run and -list need -db")
	}
	if c.save && c.runID >= 0 {
		return nil, fmt.Errorf("-save and -run are exclusive")
	}
	if c.htmlFile != "" && c.pngDir == "" {
		return nil, fmt.Errorf("-html needs -png")
	}
	if c.width <= 0 || c.height <= 0 || c.dpi <= 0 {
		return nil, fmt.Errorf("chart size and resolution must be positive")
	}
	return c, nil
}

func rtplot(stdout, stderr io.Writer, args []string) error {
	c, err := parseFlags(stderr, args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	logger := log.New(stderr, "rtplot: ", 0)
	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(stderr, format, args...)
	}

	g := grid.Default()
	if c.gridFile != "" {
		f, err := os.Open(c.gridFile)
		if err != nil {
			return err
		}
		g, err = grid.Load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", c.gridFile, err)
		}
	}
	enc, err := chart.DefaultEncoding(g)
	if err != nil {
		return err
	}

	var d *db.DB
	if c.dsn != "" {
		driver, dsn, err := db.ParseDSN(c.dsn)
		if err != nil {
			return err
		}
		d, err = db.OpenSQL(driver, dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer d.Close()
	}
	if c.list {
		runs, err := d.ListRuns(ctx)
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Fprintf(stdout, "%d\t%s\t%s\n", r.ID, r.Created.Format(time.RFC3339), r.Source)
		}
		return nil
	}

	// Ingest.
	var t *results.Table
	source := c.input
	if c.runID >= 0 {
		run, rt, err := d.LoadRun(ctx, c.runID, g)
		if err != nil {
			return err
		}
		t, source = rt, fmt.Sprintf("run %d (%s)", run.ID, run.Source)
		logger.Printf("loaded %d cells of run %d", t.Len(), run.ID)
	} else {
		t, err = results.ReadFile(c.input, g)
		if err != nil {
			return err
		}
		logger.Printf("read %d of %d cells from %s", t.Len(), g.Len(), c.input)
	}

	if c.save {
		run, err := d.NewRun(ctx, c.input)
		if err != nil {
			return err
		}
		if err := run.Insert(ctx, t); err != nil {
			return err
		}
		logger.Printf("saved run %d", run.ID)
	}

	if c.dump {
		if err := report.Dump(stdout, t); err != nil {
			return err
		}
	}
	if c.csvFile != "" {
		if err := writeCSV(c.csvFile, t); err != nil {
			return err
		}
	}

	var gcs *publish.GCS
	if c.gcsURL != "" {
		gcs, err = publish.NewGCS(ctx, c.gcsURL, c.gcsCredentials)
		if err != nil {
			return err
		}
		defer gcs.Close()
	}
	dirs := map[string]string{"png": c.pngDir, "svg": c.svgDir, "pdf": c.pdfDir}
	pubs := make(map[string]publish.Publisher)
	for _, format := range chart.Formats {
		var m publish.Multi
		if dirs[format] != "" {
			m = append(m, publish.Dir(dirs[format]))
		}
		if gcs != nil && len(m) > 0 {
			m = append(m, gcs)
		}
		if len(m) > 0 {
			pubs[format] = m
		}
	}

	opts := chart.DefaultOptions()
	opts.LogScale = c.logScale
	opts.Width = vg.Length(c.width) * vg.Centimeter
	opts.Height = vg.Length(c.height) * vg.Centimeter
	opts.DPI = c.dpi
	opts.Warn = warn

	page := report.Page{Title: "Ray tracing benchmark", Source: source}
	var buf bytes.Buffer
	for _, v := range chart.Views() {
		pl, err := chart.Plot(t, v, enc, opts)
		if errors.Is(err, chart.ErrNoData) {
			warn("%s: %v, chart skipped\n", v.Name, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", v.Name, err)
		}
		for _, format := range chart.Formats {
			pub := pubs[format]
			if pub == nil {
				continue
			}
			buf.Reset()
			if err := chart.Render(&buf, pl, format, opts); err != nil {
				return fmt.Errorf("%s: %w", v.Name, err)
			}
			name := v.Name + "." + format
			if err := pub.Publish(ctx, name, buf.Bytes()); err != nil {
				return err
			}
			if format == "png" {
				page.Charts = append(page.Charts, report.ChartRef{Title: v.YLabel, File: name})
			}
		}
	}

	if c.htmlFile != "" {
		if err := writeHTML(c.htmlFile, c.pngDir, page); err != nil {
			return err
		}
	}

	if c.summary {
		for _, v := range chart.Views() {
			if !v.Derived {
				continue
			}
			sums, err := report.Summarize(t, v)
			if err != nil {
				return err
			}
			if err := report.PrintSummaries(stdout, v, sums); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCSV(path string, t *results.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := results.Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeHTML writes page to path, linking the charts in pngDir relative
// to the page.
func writeHTML(path, pngDir string, page report.Page) error {
	rel := pngDir
	absPage, err1 := filepath.Abs(filepath.Dir(path))
	absPNG, err2 := filepath.Abs(pngDir)
	if err1 == nil && err2 == nil {
		if r, err := filepath.Rel(absPage, absPNG); err == nil {
			rel = r
		}
	}
	for i := range page.Charts {
		page.Charts[i].File = filepath.ToSlash(filepath.Join(rel, page.Charts[i].File))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteHTML(f, page); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
