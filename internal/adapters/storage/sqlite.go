package storage

// sqlite.go: cache local del catálogo de items.
//
// Estrategia:
//   - `catalog_snapshots`: una fila por descarga de /items (id uuid + fecha en unix nanos).
//   - `catalog_items`: los items del snapshot, con su posición original.
//   - SaveItems reemplaza todo en una transacción; solo existe un snapshot.
//   - Las órdenes nunca se guardan: cambian en minutos y se leen siempre de la API.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalog_snapshots (
    id         TEXT PRIMARY KEY,
    fetched_at INTEGER NOT NULL, -- unix nanos UTC
    total      INTEGER  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS catalog_items (
    snapshot_id TEXT    NOT NULL REFERENCES catalog_snapshots(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    id          TEXT    NOT NULL,
    url_name    TEXT    NOT NULL,
    item_name   TEXT    NOT NULL DEFAULT '',
    thumb       TEXT    NOT NULL DEFAULT '',
    vaulted     INTEGER,
    PRIMARY KEY (snapshot_id, position)
);

CREATE INDEX IF NOT EXISTS idx_catalog_fetched ON catalog_snapshots(fetched_at DESC);
`

// SQLiteCatalog implementa ports.ItemCatalog usando SQLite (pure Go, sin CGo).
type SQLiteCatalog struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteCatalog abre (o crea) la base de datos en la ruta dada y aplica el schema.
func NewSQLiteCatalog(path string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteCatalog: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteCatalog: apply schema: %w", err)
	}

	return &SQLiteCatalog{db: db, now: time.Now}, nil
}

// SaveItems reemplaza el snapshot guardado por items.
func (s *SQLiteCatalog) SaveItems(ctx context.Context, items []domain.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveItems: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("storage.SaveItems: clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_snapshots`); err != nil {
		return fmt.Errorf("storage.SaveItems: clear snapshots: %w", err)
	}

	snapshotID := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_snapshots (id, fetched_at, total) VALUES (?, ?, ?)`,
		snapshotID, s.now().UnixNano(), len(items),
	); err != nil {
		return fmt.Errorf("storage.SaveItems: insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_items
			(snapshot_id, position, id, url_name, item_name, thumb, vaulted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveItems: prepare: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		var vaulted sql.NullBool
		if it.Vaulted != nil {
			vaulted = sql.NullBool{Bool: *it.Vaulted, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			snapshotID, i, it.ID, it.URLName, it.ItemName, it.Thumb, vaulted,
		); err != nil {
			return fmt.Errorf("storage.SaveItems: insert %s: %w", it.URLName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveItems: commit: %w", err)
	}
	return nil
}

// LoadItems devuelve los items del snapshot si tiene menos de maxAge.
// Devuelve domain.ErrCatalogStale si no hay snapshot o si caducó.
func (s *SQLiteCatalog) LoadItems(ctx context.Context, maxAge time.Duration) ([]domain.Item, error) {
	var snapshotID string
	var fetchedNanos int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at FROM catalog_snapshots ORDER BY fetched_at DESC LIMIT 1`,
	).Scan(&snapshotID, &fetchedNanos)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCatalogStale
	}
	if err != nil {
		return nil, fmt.Errorf("storage.LoadItems: query snapshot: %w", err)
	}

	if maxAge > 0 && s.now().Sub(time.Unix(0, fetchedNanos)) > maxAge {
		return nil, domain.ErrCatalogStale
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url_name, item_name, thumb, vaulted
		FROM catalog_items
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadItems: query items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		var vaulted sql.NullBool
		if err := rows.Scan(&it.ID, &it.URLName, &it.ItemName, &it.Thumb, &vaulted); err != nil {
			return nil, fmt.Errorf("storage.LoadItems: scan: %w", err)
		}
		if vaulted.Valid {
			v := vaulted.Bool
			it.Vaulted = &v
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.LoadItems: rows: %w", err)
	}
	return items, nil
}

// Close cierra la conexión a la base de datos limpiamente.
func (s *SQLiteCatalog) Close() error {
	return s.db.Close()
}
