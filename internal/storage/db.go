// Package storage persists tracked publications in SQLite
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the publist SQLite database
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database and makes sure the schema exists
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection serializes writes and keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	storage := &DB{db: db}
	if err := storage.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return storage, nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.db.Close()
}

// EnsureSchema creates the publist table if it doesn't exist.
// Safe to call before every command.
func (d *DB) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS publist (
		author TEXT NOT NULL,
		url TEXT NOT NULL,
		pub INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_publist_author ON publist(author);
	CREATE INDEX IF NOT EXISTS idx_publist_pub ON publist(pub);
	`

	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// Insert stores a new publication and returns its rowid
func (d *DB) Insert(ctx context.Context, author, url string, publishedAt time.Time) (int64, error) {
	if author == "" {
		return 0, errors.New("insert publication: missing author")
	}
	if url == "" {
		return 0, errors.New("insert publication: missing url")
	}

	res, err := d.db.ExecContext(ctx,
		"INSERT INTO publist (author, url, pub) VALUES (?, ?, ?)",
		author, url, publishedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert publication: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert publication: read rowid: %w", err)
	}
	return id, nil
}

// IDsByAuthor returns the rowids of every publication by author, oldest first
func (d *DB) IDsByAuthor(ctx context.Context, author string) ([]int64, error) {
	return d.queryIDs(ctx, "SELECT rowid FROM publist WHERE author = ? ORDER BY rowid", author)
}

// IDsSince returns the rowids of publications tracked at or after t, oldest first
func (d *DB) IDsSince(ctx context.Context, t time.Time) ([]int64, error) {
	return d.queryIDs(ctx, "SELECT rowid FROM publist WHERE pub >= ? ORDER BY rowid", t.Unix())
}

func (d *DB) queryIDs(ctx context.Context, query string, arg any) ([]int64, error) {
	rows, err := d.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query publication ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan publication id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Get retrieves a publication by rowid, or nil if there is none
func (d *DB) Get(ctx context.Context, id int64) (*Publication, error) {
	pub := &Publication{}
	var ts int64

	err := d.db.QueryRowContext(ctx,
		"SELECT rowid, author, url, pub FROM publist WHERE rowid = ?", id,
	).Scan(&pub.ID, &pub.Author, &pub.URL, &ts)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get publication %d: %w", id, err)
	}

	pub.PublishedAt = time.Unix(ts, 0)
	return pub, nil
}

// Count returns the total number of tracked publications
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM publist").Scan(&count); err != nil {
		return 0, fmt.Errorf("count publications: %w", err)
	}
	return count, nil
}
