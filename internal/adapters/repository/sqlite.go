package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/okian/matchday/pkg/logger"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore persists saves in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewSQLiteStore opens (or creates) the database at path and runs migrations.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db, logger: logger.Get().Named("sqlite-store")}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.logger.Info(ctx, "sqlite save store opened", logger.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS saves (
		slot       TEXT PRIMARY KEY,
		player     TEXT NOT NULL,
		team       TEXT NOT NULL,
		week       INTEGER NOT NULL,
		last_saved INTEGER NOT NULL,
		doc        BLOB NOT NULL
	)`)
	return err
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, slot Slot, doc []byte) error {
	if err := ValidSlot(slot.Name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO saves (slot, player, team, week, last_saved, doc)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			player = excluded.player,
			team = excluded.team,
			week = excluded.week,
			last_saved = excluded.last_saved,
			doc = excluded.doc`,
		slot.Name, slot.Player, slot.Team, slot.Week, slot.LastSaved.UnixMilli(), doc)
	if err != nil {
		return fmt.Errorf("put save %s: %w", slot.Name, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, slot string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM saves WHERE slot = ?`, slot).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("get save %s: %w", slot, err)
	}
	return doc, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete save %s: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete save %s: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, player, team, week, last_saved FROM saves ORDER BY last_saved DESC, slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var (
			sl Slot
			ms int64
		)
		if err := rows.Scan(&sl.Name, &sl.Player, &sl.Team, &sl.Week, &ms); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		sl.LastSaved = time.UnixMilli(ms).UTC()
		out = append(out, sl)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
