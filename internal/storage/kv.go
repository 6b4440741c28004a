package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Highscore persistence keys. The value lives in the kv table under the
// game's ID, expiring a year after it was last raised.
const (
	HighScoreName = "highscore"
	HighScoreTTL  = 365 * 24 * time.Hour
)

// querier is the subset of *sql.DB and *sql.Tx the kv helpers need.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// GetInt reads a named integer. Missing and expired values read as 0.
func (s *Store) GetInt(scope, name string) (int, error) {
	return s.getInt(s.db, scope, name)
}

func (s *Store) getInt(q querier, scope, name string) (int, error) {
	var value, expiresAt int64
	err := q.QueryRow(
		"SELECT value, expires_at FROM kv WHERE scope = ? AND name = ?",
		scope, name,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s/%s: %w", scope, name, err)
	}

	if expiresAt != 0 && expiresAt <= s.now().Unix() {
		return 0, nil
	}
	return int(value), nil
}

// SetInt writes a named integer. A ttl <= 0 never expires.
func (s *Store) SetInt(scope, name string, value int, ttl time.Duration) error {
	return s.setInt(s.db, scope, name, value, ttl)
}

func (s *Store) setInt(q querier, scope, name string, value int, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).Unix()
	}

	_, err := q.Exec(
		`INSERT INTO kv (scope, name, value, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(scope, name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		scope, name, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", scope, name, err)
	}
	return nil
}

// HighScore returns the persisted highscore for gameID, 0 if none.
func (s *Store) HighScore(gameID string) (int, error) {
	return s.GetInt(gameID, HighScoreName)
}

// SubmitHighScore raises the persisted highscore to score if it is
// higher and returns the value stored afterwards. Read and write share
// one transaction.
func (s *Store) SubmitHighScore(gameID string, score int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	current, err := s.getInt(tx, gameID, HighScoreName)
	if err != nil {
		return 0, err
	}
	if score <= current {
		return current, nil
	}

	if err := s.setInt(tx, gameID, HighScoreName, score, HighScoreTTL); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit highscore: %w", err)
	}
	return score, nil
}

// Ensure Store implements HighScoreStore
var _ core.HighScoreStore = (*Store)(nil)
