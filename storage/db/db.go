// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores benchmark result tables in a SQL database, one
// run per ingested results file.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/rtbench/rtplot/grid"
	"github.com/rtbench/rtplot/results"
)

// ErrNoRun is returned by LoadRun for an unknown run ID.
var ErrNoRun = errors.New("no such run")

// DB is a high-level interface to a database of benchmark runs. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun         *sql.Stmt
	insertMeasurement *sql.Stmt
}

// ParseDSN splits a "driver:dsn" string, such as
// "sqlite3:results.db" or "mysql:user@tcp(host)/perf".
func ParseDSN(s string) (driverName, dataSourceName string, err error) {
	driverName, dataSourceName, ok := strings.Cut(s, ":")
	if !ok || driverName == "" || dataSourceName == "" {
		return "", "", fmt.Errorf("malformed database %q, want driver:dsn", s)
	}
	return driverName, dataSourceName, nil
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// Every connection to ":memory:" is a new database.
		db.SetMaxOpenConns(1)
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Source VARCHAR(1024),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Measurements (
	RunID BIGINT UNSIGNED,
	SqrtSpheres INTEGER,
	RaysPerPixel INTEGER,
	Depth INTEGER,
	Resolution INTEGER,
	GPUTime DOUBLE,
	GPUCycles DOUBLE,
	TransferTime DOUBLE,
	TransferCycles DOUBLE,
	CPUTime DOUBLE,
	CPUCycles DOUBLE,
	PRIMARY KEY (RunID, SqrtSpheres, RaysPerPixel, Depth, Resolution),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Source, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare("INSERT INTO Measurements VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is overridden by tests.
var now = time.Now

// A Run is one stored results table.
type Run struct {
	ID      int64
	Source  string // file the results were read from
	Created time.Time

	db *DB
}

// NewRun records a new, empty run read from source.
func (db *DB) NewRun(ctx context.Context, source string) (*Run, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertRun.ExecContext(ctx, source, created.Unix())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Source: source, Created: created, db: db}, nil
}

// Insert stores every cell of t that was set, in one transaction.
// NaN values are stored as NULL.
func (r *Run) Insert(ctx context.Context, t *results.Table) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertMeasurement)
	args := make([]interface{}, 5+results.NumMetrics)
	t.Each(func(c grid.Cell, m results.Measurement) {
		if err != nil {
			return
		}
		args[0], args[1], args[2], args[3], args[4] = r.ID, c.SqrtSpheres, c.RaysPerPixel, c.Depth, c.Resolution
		for i, v := range m {
			if math.IsNaN(v) {
				args[5+i] = nil
			} else {
				args[5+i] = v
			}
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			err = fmt.Errorf("insert %v: %w", c, err)
		}
	})
	return err
}

// LoadRun reads run id back into a table over g. Stored cells that are
// not in g are an error.
func (db *DB) LoadRun(ctx context.Context, id int64, g *grid.Grid) (*Run, *results.Table, error) {
	run := &Run{ID: id, db: db}
	var created int64
	err := db.sql.QueryRowContext(ctx, "SELECT Source, Created FROM Runs WHERE RunID = ?", id).Scan(&run.Source, &created)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("run %d: %w", id, ErrNoRun)
	}
	if err != nil {
		return nil, nil, err
	}
	run.Created = time.Unix(created, 0).UTC()

	rows, err := db.sql.QueryContext(ctx, `SELECT SqrtSpheres, RaysPerPixel, Depth, Resolution,
		GPUTime, GPUCycles, TransferTime, TransferCycles, CPUTime, CPUCycles
		FROM Measurements WHERE RunID = ?`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	t := results.NewTable(g)
	for rows.Next() {
		var c grid.Cell
		var vals [results.NumMetrics]sql.NullFloat64
		dest := []interface{}{&c.SqrtSpheres, &c.RaysPerPixel, &c.Depth, &c.Resolution}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		var m results.Measurement
		for i, v := range vals {
			if v.Valid {
				m[i] = v.Float64
			} else {
				m[i] = math.NaN()
			}
		}
		if err := t.Set(c, m); err != nil {
			return nil, nil, fmt.Errorf("run %d: %w", id, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return run, t, nil
}

// ListRuns returns every stored run, oldest first.
func (db *DB) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Source, Created FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		r := &Run{db: db}
		var created int64
		if err := rows.Scan(&r.ID, &r.Source, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountRuns returns the number of stored runs.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
