package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSaveRunDetails(t *testing.T) {
	store := openTemp(t)

	if _, err := store.SaveRun(ScoreEntry{GameID: "runner", Score: 420, Ticks: 300, Coins: 2}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.SaveScore("runner", 100)

	top, err := store.TopScores("runner", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 1 || top[0].Ticks != 300 || top[0].Coins != 2 {
		t.Errorf("TopScores() = %+v", top)
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}

	stats, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 420 || stats.TotalCoins != 2 || stats.TotalScore != 520 {
		t.Errorf("GetGameStats() = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["runner"] == nil || all["runner"].GamesCount != 2 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestGetSetInt(t *testing.T) {
	store := openTemp(t)

	v, err := store.GetInt("runner", "missing")
	if err != nil || v != 0 {
		t.Errorf("missing value = %d, %v; expected 0, nil", v, err)
	}

	if err := store.SetInt("runner", "lives", 3, 0); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := store.SetInt("runner", "lives", 5, 0); err != nil {
		t.Fatalf("SetInt() overwrite failed: %v", err)
	}
	if v, _ := store.GetInt("runner", "lives"); v != 5 {
		t.Errorf("GetInt() = %d, expected 5", v)
	}
	if v, _ := store.GetInt("other", "lives"); v != 0 {
		t.Errorf("scopes should be separate, got %d", v)
	}
}

func TestIntExpiry(t *testing.T) {
	store := openTemp(t)
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	store.SetInt("runner", "bonus", 9, time.Hour)
	if v, _ := store.GetInt("runner", "bonus"); v != 9 {
		t.Errorf("fresh value = %d, expected 9", v)
	}

	now = now.Add(2 * time.Hour)
	if v, _ := store.GetInt("runner", "bonus"); v != 0 {
		t.Errorf("expired value = %d, expected 0", v)
	}
}

func TestSubmitHighScore(t *testing.T) {
	store := openTemp(t)

	tests := []struct {
		score    int
		expected int
	}{
		{100, 100},
		{50, 100},
		{100, 100},
		{250, 250},
		{0, 250},
	}
	for _, tc := range tests {
		got, err := store.SubmitHighScore("runner", tc.score)
		if err != nil {
			t.Fatalf("SubmitHighScore(%d) failed: %v", tc.score, err)
		}
		if got != tc.expected {
			t.Errorf("SubmitHighScore(%d) = %d, expected %d", tc.score, got, tc.expected)
		}
		if hs, _ := store.HighScore("runner"); hs != tc.expected {
			t.Errorf("HighScore() = %d after submitting %d, expected %d", hs, tc.score, tc.expected)
		}
	}

	if hs, _ := store.HighScore("runner_classic"); hs != 0 {
		t.Errorf("other variant highscore = %d, expected 0", hs)
	}
}

func TestHighScoreExpiresAfterAYear(t *testing.T) {
	store := openTemp(t)
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	store.SubmitHighScore("runner", 300)

	now = now.Add(HighScoreTTL - time.Minute)
	if hs, _ := store.HighScore("runner"); hs != 300 {
		t.Errorf("highscore before expiry = %d, expected 300", hs)
	}

	now = now.Add(2 * time.Minute)
	if hs, _ := store.HighScore("runner"); hs != 0 {
		t.Errorf("highscore after expiry = %d, expected 0", hs)
	}

	// An expired value is beaten by any positive score
	if got, _ := store.SubmitHighScore("runner", 10); got != 10 {
		t.Errorf("SubmitHighScore() = %d, expected 10", got)
	}
}

func TestHighScoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SubmitHighScore("runner", 777)
	store.ClearScores("runner")
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if hs, _ := store.HighScore("runner"); hs != 777 {
		t.Errorf("HighScore() after reopen = %d, expected 777", hs)
	}
}
