// Package storage provides SQLite-based persistence for recorded runs.
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

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/replay"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

var _ replay.RunSaver = (*Store)(nil)

// GameStats contains aggregated statistics for a single game variant.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LongestRun uint64 // Most ticks survived
	LastPlayed time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			run_seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			moves TEXT NOT NULL,
			score INTEGER NOT NULL,
			high_score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			finished_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at DESC);
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

// SaveRun records a finished run. Saving the same run ID twice is an error.
func (s *Store) SaveRun(run replay.Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, run_seed, config, moves, score, high_score,
		                   length, ticks, end_reason, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.GameID, run.RunSeed, run.Config, run.Moves, run.Score, run.HighScore,
		run.Length, int64(run.Ticks), run.EndReason, run.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

const runColumns = `run_id, game_id, run_seed, config, moves, score, high_score,
		        length, ticks, end_reason, finished_at`

// Stored timestamps use a fixed layout so they sort as text.
const timeLayout = "2006-01-02 15:04:05.000"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (replay.Run, error) {
	var run replay.Run
	var ticks int64
	var finishedAt any

	if err := row.Scan(
		&run.ID,
		&run.GameID,
		&run.RunSeed,
		&run.Config,
		&run.Moves,
		&run.Score,
		&run.HighScore,
		&run.Length,
		&ticks,
		&run.EndReason,
		&finishedAt,
	); err != nil {
		return replay.Run{}, err
	}
	run.Ticks = uint64(ticks)
	run.FinishedAt = parseTime(finishedAt)
	return run, nil
}

// parseTime accepts what the driver hands back for a DATETIME column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v.UTC()
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// RunByID retrieves a run by its ID. A unique prefix of the ID is accepted.
func (s *Store) RunByID(id string) (replay.Run, error) {
	if id == "" {
		return replay.Run{}, ErrRunNotFound
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE run_id = ? OR run_id LIKE ? ESCAPE '\'
		 ORDER BY run_id = ? DESC
		 LIMIT 2`,
		id, escapeLike(id)+"%", id,
	)
	if err != nil {
		return replay.Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var found []replay.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return replay.Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return replay.Run{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch {
	case len(found) == 0:
		return replay.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case found[0].ID == id || len(found) == 1:
		return found[0], nil
	default:
		return replay.Run{}, fmt.Errorf("storage: run prefix %q is ambiguous", id)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty gameID matches every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]replay.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// AllRuns retrieves every run for the given game in the order they finished.
// An empty gameID matches every game.
func (s *Store) AllRuns(gameID string) ([]replay.Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY finished_at ASC, id ASC`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]replay.Run, error) {
	defer rows.Close()

	var runs []replay.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRuns removes all runs for the given game, or every run when gameID
// is empty. It returns how many runs were removed.
func (s *Store) DeleteRuns(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR game_id = ?", gameID, gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}
	return n, nil
}

// GetStats retrieves aggregated statistics for a specific game.
func (s *Store) GetStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(ticks), 0), MAX(finished_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.LongestRun, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(ticks), MAX(finished_at)
		 FROM runs
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var s GameStats
		var lastPlayed string
		if err := rows.Scan(&s.GameID, &s.GamesCount, &s.HighScore, &s.AvgScore, &s.TotalScore, &s.LongestRun, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		s.LastPlayed = parseTime(lastPlayed)
		stats[s.GameID] = &s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
