package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"

	"avgprice/internal/provider"

	_ "modernc.org/sqlite"
)

const (
	// Memory is the reserved location for a transient database that never touches disk.
	Memory = ":memory:"
	// DefaultLocation is used by binaries when no location is configured.
	DefaultLocation = "prices.db"
)

// Fixture is seeded into the store on every Read unless overridden with WithFixture.
var Fixture = []provider.Price{
	{Name: "rice", Value: 1000},
	{Name: "buckwheat", Value: 5000},
	{Name: "pasta", Value: 3000},
}

const schema = `CREATE TABLE IF NOT EXISTS prices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	price REAL NOT NULL
)`

// Source reads prices from a throwaway SQLite database.
//
// Each Read opens the location, seeds the fixture, reads every row and, for
// on-disk locations, deletes the database file afterwards, whether or not the
// read succeeded. A file that already exists at the location is read together
// with the fixture and then removed; one that is not a database is just removed.
type Source struct {
	location string
	fixture  []provider.Price
}

// Option configures a Source.
type Option func(*Source)

// WithFixture replaces the rows seeded on every Read. A nil or empty slice disables seeding.
func WithFixture(rows []provider.Price) Option {
	return func(s *Source) {
		s.fixture = append([]provider.Price(nil), rows...)
	}
}

// New returns a Source for location. Use Memory for an ephemeral store.
func New(location string, opts ...Option) *Source {
	s := &Source{location: location, fixture: Fixture}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the configured storage location.
func (s *Source) Location() string { return s.location }

// SetLocation swaps the storage location used by subsequent reads.
func (s *Source) SetLocation(location string) { s.location = location }

// Read seeds and reads the store at the configured location.
func (s *Source) Read(ctx context.Context) (prices []provider.Price, err error) {
	location := s.location
	if location != Memory {
		// registered first so it runs after Close, and also when Open fails on an unusable file
		defer func() {
			rmErr := os.Remove(location)
			if rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
				prices, err = nil, provider.NewStorageError("removing "+location, rmErr)
			}
		}()
	}
	db, err := Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := Seed(ctx, db, s.fixture); err != nil {
		return nil, err
	}
	return Prices(ctx, db)
}

// Open opens the database at location and makes sure the prices table exists.
func Open(ctx context.Context, location string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", location)
	if err != nil {
		return nil, provider.NewStorageError("opening "+location, err)
	}
	// every connection to :memory: gets its own database
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, provider.NewStorageError("opening "+location, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, provider.NewStorageError("creating schema", err)
	}
	return db, nil
}

// Seed inserts rows into the prices table.
func Seed(ctx context.Context, db *sql.DB, rows []provider.Price) error {
	for _, r := range rows {
		if _, err := db.ExecContext(ctx, `INSERT INTO prices (name, price) VALUES (?, ?)`, r.Name, r.Value); err != nil {
			return provider.NewStorageError("seeding prices", err)
		}
	}
	return nil
}

// Prices returns every row of the prices table in insertion order.
func Prices(ctx context.Context, db *sql.DB) ([]provider.Price, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, price FROM prices ORDER BY id`)
	if err != nil {
		return nil, provider.NewStorageError("querying prices", err)
	}
	defer rows.Close()

	out := []provider.Price{}
	for rows.Next() {
		var p provider.Price
		if err := rows.Scan(&p.Name, &p.Value); err != nil {
			return nil, provider.NewStorageError("scanning price", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.NewStorageError("querying prices", err)
	}
	return out, nil
}
