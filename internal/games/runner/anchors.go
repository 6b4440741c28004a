package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Anchor aligns a kind's artwork with its logical bounds.
// DX/DY shift the drawn rectangle; Margin shrinks the hit rectangle.
type Anchor struct {
	DX, DY float64
	Margin float64
}

// Anchors holds one Anchor per entity kind.
type Anchors [kindCount]Anchor

// NewAnchors reads anchors from config. Unknown names are ignored and
// missing kinds get the zero anchor.
func NewAnchors(m map[string]config.AnchorConfig) Anchors {
	var a Anchors
	for name, ac := range m {
		k, ok := ParseKind(name)
		if !ok {
			continue
		}
		a[k] = Anchor{DX: ac.DX, DY: ac.DY, Margin: ac.Margin}
	}
	return a
}

// VisualRect is where a kind's artwork is drawn.
func (a Anchors) VisualRect(k Kind, bounds core.RectF) core.RectF {
	an := a[k]
	return bounds.Translate(an.DX, an.DY)
}

// HitRect is the rectangle used for collision. It is derived from the
// visual rectangle so drawing and collision share one offset.
func (a Anchors) HitRect(k Kind, bounds core.RectF) core.RectF {
	an := a[k]
	return a.VisualRect(k, bounds).Translate(-an.DX, -an.DY).Inset(an.Margin)
}
