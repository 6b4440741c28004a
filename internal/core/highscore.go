package core

import "sync"

// HighScoreStore persists one best score per game.
// A game that has never been scored reads as 0.
type HighScoreStore interface {
	HighScore(gameID string) (int, error)
	// SubmitHighScore stores score if it beats the stored value and
	// returns the value stored afterwards.
	SubmitHighScore(gameID string, score int) (int, error)
}

// MemoryHighScores is an in-process HighScoreStore.
type MemoryHighScores struct {
	mu     sync.Mutex
	scores map[string]int
}

// NewMemoryHighScores creates an empty in-memory store.
func NewMemoryHighScores() *MemoryHighScores {
	return &MemoryHighScores{scores: make(map[string]int)}
}

// HighScore returns the stored score for gameID.
func (m *MemoryHighScores) HighScore(gameID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[gameID], nil
}

// SubmitHighScore keeps the larger of the stored and submitted scores.
func (m *MemoryHighScores) SubmitHighScore(gameID string, score int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.scores[gameID] {
		m.scores[gameID] = score
	}
	return m.scores[gameID], nil
}
