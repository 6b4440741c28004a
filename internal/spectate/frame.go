// Package spectate streams live game frames to websocket viewers.
package spectate

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Frame is one rendered game frame plus the HUD numbers.
type Frame struct {
	Game      string   `msgpack:"game"`
	Tick      int      `msgpack:"tick"`
	Score     int      `msgpack:"score"`
	HighScore int      `msgpack:"highscore"`
	Speed     float64  `msgpack:"speed"`
	GameOver  bool     `msgpack:"game_over"`
	Paused    bool     `msgpack:"paused"`
	Rows      []string `msgpack:"rows"`
}

// NewFrame builds a frame from a game state and its rendered screen.
func NewFrame(game string, tick int, speed float64, state core.GameState, screen *core.Screen) Frame {
	return Frame{
		Game:      game,
		Tick:      tick,
		Score:     state.Score,
		HighScore: state.HighScore,
		Speed:     speed,
		GameOver:  state.GameOver,
		Paused:    state.Paused,
		Rows:      screen.Rows(),
	}
}

// Encode serialises a frame for the wire.
func Encode(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("spectate: encode frame: %w", err)
	}
	return data, nil
}

// Decode parses a frame received from the wire.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("spectate: decode frame: %w", err)
	}
	return f, nil
}
