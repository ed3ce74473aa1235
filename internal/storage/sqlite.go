// Package storage provides SQLite-based persistence for session recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-reflex/internal/replay"
	"github.com/vovakirdan/tui-reflex/internal/round"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// timeLayout sorts lexically in creation order.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Summary describes a stored recording without its event log.
type Summary struct {
	ID         uuid.UUID
	Seed       int64
	Config     round.Config
	Rounds     int
	EventCount int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			time_limit REAL NOT NULL,
			points_per_correct INTEGER NOT NULL,
			options INTEGER NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at DESC);

		CREATE TABLE IF NOT EXISTS recording_events (
			recording_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			delta REAL NOT NULL DEFAULT 0,
			target INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (recording_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores rec and its events in one transaction.
func (s *Store) SaveRecording(rec replay.Recording) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	cfg := rec.Config
	_, err = tx.Exec(
		`INSERT INTO recordings
		 (id, seed, lives, time_limit, points_per_correct, options, rounds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		rec.Seed,
		cfg.InitialLives,
		cfg.TimeLimitSeconds,
		cfg.PointsPerCorrectAnswer,
		cfg.OptionCount,
		rec.Rounds(),
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save recording: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO recording_events (recording_id, seq, kind, delta, target)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range rec.Events {
		if _, err := stmt.Exec(rec.ID.String(), i, string(ev.Kind), ev.Delta, ev.Target); err != nil {
			return fmt.Errorf("storage: cannot save event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return nil
}

// Recording loads a recording with its full event log.
// Returns ErrNotFound if no recording has the given ID.
func (s *Store) Recording(id uuid.UUID) (replay.Recording, error) {
	rec := replay.Recording{ID: id}
	var createdAt any

	err := s.db.QueryRow(
		`SELECT seed, lives, time_limit, points_per_correct, options, created_at
		 FROM recordings
		 WHERE id = ?`,
		id.String(),
	).Scan(
		&rec.Seed,
		&rec.Config.InitialLives,
		&rec.Config.TimeLimitSeconds,
		&rec.Config.PointsPerCorrectAnswer,
		&rec.Config.OptionCount,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, ErrNotFound
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT kind, delta, target
		 FROM recording_events
		 WHERE recording_id = ?
		 ORDER BY seq`,
		id.String(),
	)
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var ev replay.Event
		if err := rows.Scan(&kind, &ev.Delta, &ev.Target); err != nil {
			return replay.Recording{}, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		if ev.Kind, err = replay.ParseKind(kind); err != nil {
			return replay.Recording{}, fmt.Errorf("storage: %w", err)
		}
		rec.Events = append(rec.Events, ev)
	}

	if err := rows.Err(); err != nil {
		return replay.Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ResolveID finds the recording whose ID starts with prefix.
// A full ID resolves without touching the database.
func (s *Store) ResolveID(prefix string) (uuid.UUID, error) {
	if id, err := uuid.Parse(prefix); err == nil {
		return id, nil
	}
	if prefix == "" {
		return uuid.Nil, ErrNotFound
	}

	rows, err := s.db.Query(
		"SELECT id FROM recordings WHERE id LIKE ? LIMIT 2",
		strings.ToLower(prefix)+"%",
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return uuid.Nil, ErrNotFound
	case 1:
		return uuid.Parse(ids[0])
	default:
		return uuid.Nil, fmt.Errorf("storage: prefix %q matches more than one recording", prefix)
	}
}

// RecentRecordings lists the newest recordings first.
func (s *Store) RecentRecordings(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.seed, r.lives, r.time_limit, r.points_per_correct, r.options,
		        r.rounds, r.created_at,
		        (SELECT COUNT(*) FROM recording_events e WHERE e.recording_id = r.id)
		 FROM recordings r
		 ORDER BY r.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var id string
		var createdAt any
		if err := rows.Scan(
			&id,
			&sum.Seed,
			&sum.Config.InitialLives,
			&sum.Config.TimeLimitSeconds,
			&sum.Config.PointsPerCorrectAnswer,
			&sum.Config.OptionCount,
			&sum.Rounds,
			&createdAt,
			&sum.EventCount,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("storage: bad recording id %q: %w", id, err)
		}
		sum.CreatedAt = parseTime(createdAt)
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// DeleteRecording removes a recording and its events.
// Returns ErrNotFound if no recording has the given ID.
func (s *Store) DeleteRecording(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	res, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM recording_events WHERE recording_id = ?", id.String()); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string values returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
