package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

const catalogComponent = "catalog"

// ErrNoCatalog is returned when reading a database that was never imported into.
var ErrNoCatalog = errors.New("database has no catalog_items table")

var catalogMigrations = []Migration{
	{
		Version:     1,
		Description: "create catalog_items",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE catalog_items (
					position           INTEGER PRIMARY KEY,
					id                 INTEGER NOT NULL UNIQUE,
					language           TEXT    NOT NULL DEFAULT '',
					title              TEXT    NOT NULL DEFAULT '',
					overview           TEXT    NOT NULL DEFAULT '',
					vote_average       REAL    NOT NULL DEFAULT 0,
					popularity         REAL    NOT NULL DEFAULT 0,
					release_date       TEXT    NOT NULL DEFAULT '',
					poster_path        TEXT    NOT NULL DEFAULT '',
					runtime            INTEGER NOT NULL DEFAULT 0,
					keywords           TEXT    NOT NULL DEFAULT '[]',
					genres             TEXT    NOT NULL DEFAULT '[]',
					cast_members       TEXT    NOT NULL DEFAULT '[]',
					director           TEXT    NOT NULL DEFAULT '[]',
					studio             TEXT    NOT NULL DEFAULT '[]',
					streaming_services TEXT    NOT NULL DEFAULT '[]'
				)`)
			return err
		},
	},
}

// MigrateCatalog creates or upgrades the catalog schema.
func (s *Store) MigrateCatalog(ctx context.Context) error {
	return s.Migrate(ctx, catalogComponent, catalogMigrations)
}

// ImportItems replaces the stored catalog with items, preserving their order.
// The replacement is atomic: on error the previous contents remain.
func (s *Store) ImportItems(ctx context.Context, items []pkgcatalog.Item) error {
	if err := s.MigrateCatalog(ctx); err != nil {
		return err
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_items"); err != nil {
			return fmt.Errorf("clear catalog_items: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO catalog_items (
				position, id, language, title, overview, vote_average, popularity,
				release_date, poster_path, runtime, keywords, genres, cast_members,
				director, studio, streaming_services
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range items {
			it := &items[i]
			lists, err := encodeLists(it)
			if err != nil {
				return fmt.Errorf("encode item %d: %w", it.ID, err)
			}
			args := []any{
				i, it.ID, it.Language, it.Title, it.Overview, it.VoteAverage, it.Popularity,
				it.ReleaseDate, it.PosterPath, it.Runtime,
			}
			for _, l := range lists {
				args = append(args, l)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert item %d: %w", it.ID, err)
			}
		}
		return nil
	})
}

// LoadItems returns the stored items in import order. It only reads: a
// database without the catalog table yields ErrNoCatalog.
func (s *Store) LoadItems(ctx context.Context) ([]pkgcatalog.Item, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'catalog_items'",
	).Scan(&n)
	if err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if n == 0 {
		return nil, ErrNoCatalog
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, language, title, overview, vote_average, popularity,
		       release_date, poster_path, runtime, keywords, genres, cast_members,
		       director, studio, streaming_services
		FROM catalog_items
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query catalog_items: %w", err)
	}
	defer rows.Close()

	var items []pkgcatalog.Item
	for rows.Next() {
		var (
			it    pkgcatalog.Item
			lists [6]string
		)
		if err := rows.Scan(
			&it.ID, &it.Language, &it.Title, &it.Overview, &it.VoteAverage, &it.Popularity,
			&it.ReleaseDate, &it.PosterPath, &it.Runtime,
			&lists[0], &lists[1], &lists[2], &lists[3], &lists[4], &lists[5],
		); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		if err := decodeLists(&it, lists); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", it.ID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog_items: %w", err)
	}
	return items, nil
}

// LoadCatalog builds an immutable catalog from the stored items.
func (s *Store) LoadCatalog(ctx context.Context) (*pkgcatalog.Catalog, error) {
	items, err := s.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	return pkgcatalog.New(items)
}

// listFields returns the list columns of it in schema order.
func listFields(it *pkgcatalog.Item) []*pkgcatalog.StringList {
	return []*pkgcatalog.StringList{
		&it.Keywords, &it.Genres, &it.Cast, &it.Director, &it.Studio, &it.StreamingServices,
	}
}

func encodeLists(it *pkgcatalog.Item) ([6]string, error) {
	var out [6]string
	for i, l := range listFields(it) {
		b, err := json.Marshal(*l)
		if err != nil {
			return out, err
		}
		out[i] = string(b)
	}
	return out, nil
}

func decodeLists(it *pkgcatalog.Item, cols [6]string) error {
	for i, l := range listFields(it) {
		if err := json.Unmarshal([]byte(cols[i]), l); err != nil {
			return err
		}
	}
	return nil
}
