// Package store keeps a history of finished runs in a SQLite database.
//
// Each run is one row of the runs table. Scalar KPIs live in their own
// columns so they can be listed and ordered cheaply; tours, history, points,
// snapshots and parameters are stored as JSON text.
//
// The database is opened through database/sql with the pure-Go
// modernc.org/sqlite driver, so no cgo toolchain is needed.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/gatsp/cities"
	"github.com/katalvlaran/gatsp/genetic"
	"github.com/katalvlaran/gatsp/tsp"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

var (
	// ErrNotFound is returned by Get when no run has the given id.
	ErrNotFound = errors.New("store: run not found")

	// ErrClosed is returned when the store is used after Close.
	ErrClosed = errors.New("store: closed")
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	created_at      INTEGER NOT NULL,
	cities          INTEGER NOT NULL,
	best_fitness    REAL    NOT NULL,
	initial_fitness REAL    NOT NULL,
	best_generation INTEGER NOT NULL,
	elapsed_ns      INTEGER NOT NULL,
	params          TEXT    NOT NULL,
	best_tour       TEXT    NOT NULL,
	history         TEXT    NOT NULL,
	snapshots       TEXT    NOT NULL,
	points          TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at);
`

const columns = `id, created_at, cities, best_fitness, initial_fitness,
	best_generation, elapsed_ns, params, best_tour, history, snapshots, points`

// Record is one stored run.
type Record struct {
	ID             string
	CreatedAt      time.Time
	Cities         int
	BestFitness    float64
	InitialFitness float64
	BestGeneration int
	Elapsed        time.Duration
	Params         genetic.Params
	Best           tsp.Tour
	History        []float64
	Snapshots      map[int]genetic.Snapshot
	Points         []cities.Point // nil when the instance was not generated from points
}

// NewRecord collects a finished run into a Record. ID and CreatedAt are left
// empty for Save to fill.
func NewRecord(n int, points []cities.Point, params genetic.Params, res genetic.Result, elapsed time.Duration) Record {
	return Record{
		Cities:         n,
		BestFitness:    res.BestFitness,
		InitialFitness: res.InitialFitness,
		BestGeneration: res.BestGeneration,
		Elapsed:        elapsed,
		Params:         params,
		Best:           res.Best,
		History:        res.History,
		Snapshots:      res.Snapshots,
		Points:         points,
	}
}

// Improvement returns the relative gain of the best length over the initial
// best length in percent.
func (r Record) Improvement() float64 {
	return genetic.Result{InitialFitness: r.InitialFitness, BestFitness: r.BestFitness}.Improvement()
}

// Store is a run history backed by one SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema. path ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil

	return err
}

// Save inserts rec. A missing ID is filled with a random UUID and a zero
// CreatedAt with the current time; the stored record is returned.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if s.db == nil {
		return Record{}, ErrClosed
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	var (
		blobs [5]string
		err   error
	)
	for i, v := range []interface{}{rec.Params, rec.Best, rec.History, rec.Snapshots, rec.Points} {
		if blobs[i], err = encode(v); err != nil {
			return Record{}, fmt.Errorf("store: save %s: %w", rec.ID, err)
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UnixNano(), rec.Cities, rec.BestFitness, rec.InitialFitness,
		rec.BestGeneration, int64(rec.Elapsed),
		blobs[0], blobs[1], blobs[2], blobs[3], blobs[4],
	)
	if err != nil {
		return Record{}, fmt.Errorf("store: save %s: %w", rec.ID, err)
	}

	return rec, nil
}

// Get loads the run with the given id (ErrNotFound if absent).
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if s.db == nil {
		return Record{}, ErrClosed
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM runs WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: get %s: %w", id, err)
	}

	return rec, nil
}

// List returns up to limit runs, newest first. limit ≤ 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}

	return out, nil
}

// scanner is the common part of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec       Record
		createdAt int64
		elapsed   int64
		params    string
		best      string
		history   string
		snapshots string
		points    string
	)
	err := sc.Scan(&rec.ID, &createdAt, &rec.Cities, &rec.BestFitness, &rec.InitialFitness,
		&rec.BestGeneration, &elapsed, &params, &best, &history, &snapshots, &points)
	if err != nil {
		return Record{}, err
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.Elapsed = time.Duration(elapsed)

	for _, f := range []struct {
		text string
		dst  interface{}
	}{
		{params, &rec.Params},
		{best, &rec.Best},
		{history, &rec.History},
		{snapshots, &rec.Snapshots},
		{points, &rec.Points},
	} {
		if err = json.Unmarshal([]byte(f.text), f.dst); err != nil {
			return Record{}, fmt.Errorf("decode %s: %w", rec.ID, err)
		}
	}

	return rec, nil
}

func encode(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
