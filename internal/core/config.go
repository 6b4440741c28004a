package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best persisted score, as last read from the store
	GameOver  bool // Whether the game has ended
	Paused    bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventJump EventKind = iota + 1
	EventLand
	EventCoin
	EventSpawn
	EventCrash
	EventNewHighScore
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventLand:
		return "land"
	case EventCoin:
		return "coin"
	case EventSpawn:
		return "spawn"
	case EventCrash:
		return "crash"
	case EventNewHighScore:
		return "new_highscore"
	default:
		return "unknown"
	}
}

// Event is emitted by a simulation step. Value carries a kind-specific
// number: the bonus for coins, the final score for crashes.
type Event struct {
	Kind  EventKind
	Tick  int
	Value int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
