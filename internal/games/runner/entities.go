package runner

import "github.com/vovakirdan/tui-runner/internal/core"

// Kind identifies an entity type for anchors, sprites and spawning.
type Kind int

const (
	KindPlayer Kind = iota
	KindObstacle
	KindFlyer
	KindPlatform
	KindCoin
	kindCount
)

// String returns the name used in config files and sprite sheets.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindFlyer:
		return "flyer"
	case KindPlatform:
		return "platform"
	case KindCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// ParseKind maps a config name back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindPlayer; k < kindCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Player is the runner. X never changes; the world scrolls past it.
type Player struct {
	X, Y     float64
	W, H     float64
	VY       float64
	OnGround bool
}

// Bounds returns the logical rectangle.
func (p Player) Bounds() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// Bottom returns the y-coordinate of the player's feet.
func (p Player) Bottom() float64 {
	return p.Y + p.H
}

// Obstacle is a fatal entity: a ground obstacle or a flyer.
// Flyers also move vertically by VY each step.
type Obstacle struct {
	Kind Kind
	X, Y float64
	W, H float64
	VY   float64
}

// Bounds returns the logical rectangle.
func (o Obstacle) Bounds() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}

// Platform is a one-way surface: it catches the player from above only.
type Platform struct {
	X, Y float64
	W, H float64
}

// Bounds returns the logical rectangle.
func (p Platform) Bounds() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// Coin is a bonus pickup. A collected coin stays in place, undrawn,
// until it scrolls off.
type Coin struct {
	X, Y      float64
	W, H      float64
	Collected bool
}

// Bounds returns the logical rectangle.
func (c Coin) Bounds() core.RectF {
	return core.NewRectF(c.X, c.Y, c.W, c.H)
}

type bounded interface {
	Bounds() core.RectF
}

// cull drops entities whose right edge is left of the surface, in place.
func cull[T bounded](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if it.Bounds().Right() >= 0 {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
