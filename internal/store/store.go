// Package store handles SQLite persistence of the mock dataset.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/creatordesk/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for collection data.
type Store struct {
	db *sql.DB
}

// Counts reports the number of rows per collection.
type Counts struct {
	Members     int
	Sales       int
	Posts       int
	Collections int
	Downloads   int
}

// Total sums every collection.
func (c Counts) Total() int {
	return c.Members + c.Sales + c.Posts + c.Collections + c.Downloads
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS members (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			tier TEXT NOT NULL,
			status TEXT NOT NULL,
			joined_at TEXT NOT NULL,
			lifetime_cents INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			buyer TEXT NOT NULL,
			email TEXT NOT NULL,
			product TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			status TEXT NOT NULL,
			sold_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			kind TEXT NOT NULL,
			access TEXT NOT NULL,
			status TEXT NOT NULL,
			published_at TEXT NOT NULL,
			likes INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS collections (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			visibility TEXT NOT NULL,
			post_count INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS download_groups (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			format TEXT NOT NULL,
			files INTEGER NOT NULL,
			size_bytes INTEGER NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed replaces every collection with ds in one transaction.
func (s *Store) Seed(ctx context.Context, ds model.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for _, table := range []string{"members", "sales", "posts", "collections", "download_groups"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO members (id, name, email, tier, status, joined_at, lifetime_cents) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.Members, func(m model.Member) []any {
			return []any{m.ID, m.Name, m.Email, m.Tier, m.Status, formatTime(m.JoinedAt), m.LifetimeCents}
		}); err != nil {
		return err
	}
	if err = insertAll(ctx, tx,
		`INSERT INTO sales (id, buyer, email, product, amount_cents, status, sold_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.Sales, func(v model.Sale) []any {
			return []any{v.ID, v.Buyer, v.Email, v.Product, v.AmountCents, v.Status, formatTime(v.SoldAt)}
		}); err != nil {
		return err
	}
	if err = insertAll(ctx, tx,
		`INSERT INTO posts (id, title, kind, access, status, published_at, likes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.Posts, func(p model.Post) []any {
			return []any{p.ID, p.Title, p.Kind, p.Access, p.Status, formatTime(p.PublishedAt), p.Likes}
		}); err != nil {
		return err
	}
	if err = insertAll(ctx, tx,
		`INSERT INTO collections (id, title, visibility, post_count, updated_at) VALUES (?, ?, ?, ?, ?)`,
		ds.Collections, func(c model.Collection) []any {
			return []any{c.ID, c.Title, c.Visibility, c.PostCount, formatTime(c.UpdatedAt)}
		}); err != nil {
		return err
	}
	if err = insertAll(ctx, tx,
		`INSERT INTO download_groups (id, title, format, files, size_bytes, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.Downloads, func(d model.DownloadGroup) []any {
			return []any{d.ID, d.Title, d.Format, d.Files, d.SizeBytes, d.Status, formatTime(d.CreatedAt)}
		}); err != nil {
		return err
	}

	return tx.Commit()
}

// Counts returns the row count of every collection.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	targets := []struct {
		table string
		dst   *int
	}{
		{"members", &c.Members},
		{"sales", &c.Sales},
		{"posts", &c.Posts},
		{"collections", &c.Collections},
		{"download_groups", &c.Downloads},
	}
	for _, target := range targets {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+target.table).Scan(target.dst); err != nil {
			return Counts{}, err
		}
	}
	return c, nil
}

// ListMembers returns members in insertion order.
func (s *Store) ListMembers(ctx context.Context) ([]model.Member, error) {
	return queryAll(ctx, s.db,
		`SELECT id, name, email, tier, status, joined_at, lifetime_cents FROM members ORDER BY seq`,
		func(rows *sql.Rows) (model.Member, error) {
			var m model.Member
			var joined string
			if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Tier, &m.Status, &joined, &m.LifetimeCents); err != nil {
				return m, err
			}
			var err error
			m.JoinedAt, err = parseTime(joined)
			return m, err
		})
}

// ListSales returns sales in insertion order.
func (s *Store) ListSales(ctx context.Context) ([]model.Sale, error) {
	return queryAll(ctx, s.db,
		`SELECT id, buyer, email, product, amount_cents, status, sold_at FROM sales ORDER BY seq`,
		func(rows *sql.Rows) (model.Sale, error) {
			var v model.Sale
			var sold string
			if err := rows.Scan(&v.ID, &v.Buyer, &v.Email, &v.Product, &v.AmountCents, &v.Status, &sold); err != nil {
				return v, err
			}
			var err error
			v.SoldAt, err = parseTime(sold)
			return v, err
		})
}

// ListPosts returns posts in insertion order.
func (s *Store) ListPosts(ctx context.Context) ([]model.Post, error) {
	return queryAll(ctx, s.db,
		`SELECT id, title, kind, access, status, published_at, likes FROM posts ORDER BY seq`,
		func(rows *sql.Rows) (model.Post, error) {
			var p model.Post
			var published string
			if err := rows.Scan(&p.ID, &p.Title, &p.Kind, &p.Access, &p.Status, &published, &p.Likes); err != nil {
				return p, err
			}
			var err error
			p.PublishedAt, err = parseTime(published)
			return p, err
		})
}

// ListCollections returns collections in insertion order.
func (s *Store) ListCollections(ctx context.Context) ([]model.Collection, error) {
	return queryAll(ctx, s.db,
		`SELECT id, title, visibility, post_count, updated_at FROM collections ORDER BY seq`,
		func(rows *sql.Rows) (model.Collection, error) {
			var c model.Collection
			var updated string
			if err := rows.Scan(&c.ID, &c.Title, &c.Visibility, &c.PostCount, &updated); err != nil {
				return c, err
			}
			var err error
			c.UpdatedAt, err = parseTime(updated)
			return c, err
		})
}

// ListDownloads returns download groups in insertion order.
func (s *Store) ListDownloads(ctx context.Context) ([]model.DownloadGroup, error) {
	return queryAll(ctx, s.db,
		`SELECT id, title, format, files, size_bytes, status, created_at FROM download_groups ORDER BY seq`,
		func(rows *sql.Rows) (model.DownloadGroup, error) {
			var d model.DownloadGroup
			var created string
			if err := rows.Scan(&d.ID, &d.Title, &d.Format, &d.Files, &d.SizeBytes, &d.Status, &created); err != nil {
				return d, err
			}
			var err error
			d.CreatedAt, err = parseTime(created)
			return d, err
		})
}

func insertAll[T any](ctx context.Context, tx *sql.Tx, query string, items []T, args func(T) []any) error {
	if len(items) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, args(item)...); err != nil {
			return err
		}
	}
	return nil
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
