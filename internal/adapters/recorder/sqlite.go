package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/okian/matchday/pkg/logger"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const defaultMatchLimit = 20

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(ctx context.Context, path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	r := &SQLiteRecorder{db: db}
	if err := r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Get().Named("recorder").Info(ctx, "sqlite recorder opened", logger.String("path", path))
	return r, nil
}

func (r *SQLiteRecorder) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			career_id     TEXT NOT NULL,
			week          INTEGER NOT NULL,
			opponent      TEXT NOT NULL,
			home_score    INTEGER NOT NULL,
			away_score    INTEGER NOT NULL,
			goals         INTEGER NOT NULL,
			rating        REAL NOT NULL,
			international INTEGER NOT NULL,
			played_at     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_career ON matches(career_id, played_at)`,

		`CREATE TABLE IF NOT EXISTS seasons (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			career_id       TEXT NOT NULL,
			team            TEXT NOT NULL,
			previous_league INTEGER NOT NULL,
			league_id       INTEGER NOT NULL,
			movement        TEXT NOT NULL,
			ended_at        INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seasons_career ON seasons(career_id)`,
	}
	for _, s := range stmts {
		if _, err := r.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordMatch implements Recorder.
func (r *SQLiteRecorder) RecordMatch(ctx context.Context, m MatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO matches
		(career_id, week, opponent, home_score, away_score, goals, rating, international, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CareerID, m.Week, m.Opponent, m.HomeScore, m.AwayScore, m.Goals, m.Rating,
		boolInt(m.International), m.PlayedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// RecordSeason implements Recorder.
func (r *SQLiteRecorder) RecordSeason(ctx context.Context, s SeasonRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO seasons
		(career_id, team, previous_league, league_id, movement, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.CareerID, s.Team, s.PreviousLeague, s.LeagueID, s.Movement, s.EndedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

// Matches implements Recorder.
func (r *SQLiteRecorder) Matches(ctx context.Context, careerID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	rows, err := r.db.QueryContext(ctx, `SELECT career_id, week, opponent, home_score, away_score,
			goals, rating, international, played_at
		FROM matches WHERE career_id = ? ORDER BY played_at DESC, id DESC LIMIT ?`, careerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var (
			m    MatchRecord
			intl int
			ms   int64
		)
		if err := rows.Scan(&m.CareerID, &m.Week, &m.Opponent, &m.HomeScore, &m.AwayScore,
			&m.Goals, &m.Rating, &intl, &ms); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.International = intl == 1
		m.PlayedAt = time.UnixMilli(ms).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close implements Recorder.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
