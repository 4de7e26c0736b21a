package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/weekly"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id              TEXT PRIMARY KEY,
	file            TEXT NOT NULL,
	start_time      TEXT NOT NULL,
	timestamp       TEXT NOT NULL,
	iso_year        INTEGER NOT NULL,
	iso_week        INTEGER NOT NULL,
	distance_m      REAL NOT NULL DEFAULT 0,
	timer_s         REAL NOT NULL DEFAULT 0,
	avg_speed       REAL NOT NULL DEFAULT 0,
	avg_temperature REAL NOT NULL DEFAULT 0,
	ascent          REAL NOT NULL DEFAULT 0,
	descent         REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS sessions_week ON sessions (iso_year, iso_week);
`

// Store keeps exported sessions in a SQLite file.
type Store struct {
	db     *sql.DB
	dbPath string
}

// WeekTotal is one row of the weekly rollup.
type WeekTotal struct {
	Week   weekly.WeekID
	Totals weekly.Totals
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema in %s: %w", s.dbPath, err)
	}
	return nil
}

// SessionID is stable per source file name, so exporting the same archive
// twice updates rows instead of duplicating them.
func SessionID(rec session.Record) string {
	name := filepath.Base(rec.Path)
	if rec.Path == "" {
		name = rec.Timestamp.Format(session.Layout)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func (s *Store) UpsertSession(ctx context.Context, rec session.Record) error {
	id := SessionID(rec)
	week := weekly.WeekOf(rec.Timestamp)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, file, start_time, timestamp, iso_year, iso_week,
		                      distance_m, timer_s, avg_speed, avg_temperature, ascent, descent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			file = excluded.file,
			start_time = excluded.start_time,
			timestamp = excluded.timestamp,
			iso_year = excluded.iso_year,
			iso_week = excluded.iso_week,
			distance_m = excluded.distance_m,
			timer_s = excluded.timer_s,
			avg_speed = excluded.avg_speed,
			avg_temperature = excluded.avg_temperature,
			ascent = excluded.ascent,
			descent = excluded.descent`,
		id,
		filepath.Base(rec.Path),
		rec.StartTime.UTC().Format(session.Layout),
		rec.Timestamp.UTC().Format(session.Layout),
		week.Year,
		week.Week,
		rec.DistanceMeters,
		rec.TimerSeconds,
		rec.AvgSpeed,
		rec.AvgTemperature,
		rec.TotalAscent,
		rec.TotalDescent,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session %s: %w", id, err)
	}
	log.Tracef("upserted session %s (%s)", id, rec.Path)
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// WeeklyTotals rolls the stored sessions up per ISO week, oldest first.
// Timer seconds are truncated per session before summing.
func (s *Store) WeeklyTotals(ctx context.Context) ([]WeekTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT iso_year, iso_week, SUM(distance_m), SUM(CAST(timer_s AS INTEGER)), COUNT(*)
		FROM sessions
		GROUP BY iso_year, iso_week
		ORDER BY iso_year, iso_week`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly totals: %w", err)
	}
	defer rows.Close()

	var totals []WeekTotal
	for rows.Next() {
		var wt WeekTotal
		if err := rows.Scan(
			&wt.Week.Year,
			&wt.Week.Week,
			&wt.Totals.DistanceMeters,
			&wt.Totals.TimerSeconds,
			&wt.Totals.Rides,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly totals: %w", err)
		}
		totals = append(totals, wt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weekly totals: %w", err)
	}
	return totals, nil
}
