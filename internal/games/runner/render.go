package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// SpriteSource yields sprites by name and whether each is ready.
type SpriteSource interface {
	Sprite(name string) (assets.Sprite, bool)
}

// Visual characters for terminal rendering
const (
	PlaceholderChar = '█'
	GroundEdgeChar  = '▀'
	GroundChar      = '░'
	GroundAltChar   = '▒'
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// PlaceholderColor is the solid colour drawn for a kind whose sprite is
// not ready.
func PlaceholderColor(k Kind) core.Color {
	switch k {
	case KindPlayer:
		return core.ColorBrightWhite
	case KindObstacle:
		return core.ColorRed
	case KindFlyer:
		return core.ColorMagenta
	case KindPlatform:
		return core.ColorBrown
	case KindCoin:
		return core.ColorYellow
	default:
		return core.ColorDefault
	}
}

// viewport projects world pixels onto screen cells.
type viewport struct {
	sx, sy float64
	top    int
	cols   int
	rows   int
}

func newViewport(dst *core.Screen, w *World) viewport {
	cols := dst.Width()
	rows := dst.Height() - hudRows
	wc := w.cfg.World
	return viewport{
		sx:   float64(cols) / wc.Width,
		sy:   float64(rows) / wc.Height,
		top:  hudRows,
		cols: cols,
		rows: rows,
	}
}

// project maps a world rectangle to the cells it covers. Anything with a
// positive size covers at least one cell.
func (v viewport) project(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X * v.sx))
	x1 := int(math.Ceil(r.Right() * v.sx))
	y0 := int(math.Floor(r.Y * v.sy))
	y1 := int(math.Ceil(r.Bottom() * v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, v.top+y0, x1-x0, y1-y0)
}

// playfield is the screen area below the HUD.
func (v viewport) playfield() core.Rect {
	return core.NewRect(0, v.top, v.cols, v.rows)
}

// Render draws w into dst. It reads the world and never changes it.
func Render(dst *core.Screen, w *World, sprites SpriteSource, highScore int) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	v := newViewport(dst, w)
	drawGround(dst, w, v)

	for _, pl := range w.Platforms {
		drawEntity(dst, w, v, sprites, KindPlatform, pl.Bounds())
	}
	for _, c := range w.Coins {
		if !c.Collected {
			drawEntity(dst, w, v, sprites, KindCoin, c.Bounds())
		}
	}
	for _, o := range w.Obstacles {
		drawEntity(dst, w, v, sprites, o.Kind, o.Bounds())
	}
	drawEntity(dst, w, v, sprites, KindPlayer, w.Player.Bounds())

	// HUD is drawn last so nothing scrolls over it
	hud := fmt.Sprintf(" Score: %d | Highscore: %d | Speed: %.2f ", w.Score, highScore, w.Speed)
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ')
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)

	if w.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if w.Halted {
		dst.Tint(v.playfield(), core.ColorGray)
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Highscore: %d", w.Score, core.Max(highScore, w.Score)),
			"R restart  |  Q quit")
	}
}

// drawGround fills the strip from the ground art line to the bottom of
// the world. The texture shifts with the distance run.
func drawGround(dst *core.Screen, w *World, v viewport) {
	wc := w.cfg.World
	top := wc.GroundY - wc.GroundStrip
	r := v.project(core.NewRectF(0, top, wc.Width, wc.Height-top))
	shift := int(w.Distance * v.sx)

	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if y == r.Y {
				dst.SetColor(x, y, GroundEdgeChar, core.ColorBrightGreen)
				continue
			}
			ch := GroundChar
			if ((x+shift)/2+y)%2 == 0 {
				ch = GroundAltChar
			}
			dst.SetColor(x, y, ch, core.ColorGreen)
		}
	}
}

// drawEntity draws the kind's sprite stretched over its visual rectangle,
// or a solid placeholder when the sprite is not ready yet.
func drawEntity(dst *core.Screen, w *World, v viewport, sprites SpriteSource, k Kind, bounds core.RectF) {
	r := v.project(w.anchors.VisualRect(k, bounds))

	var sprite assets.Sprite
	ready := false
	if sprites != nil {
		sprite, ready = sprites.Sprite(k.String())
	}
	if !ready {
		dst.DrawRectColor(r, PlaceholderChar, PlaceholderColor(k))
		return
	}

	for cy := 0; cy < r.H; cy++ {
		for cx := 0; cx < r.W; cx++ {
			u := (float64(cx) + 0.5) / float64(r.W)
			vv := (float64(cy) + 0.5) / float64(r.H)
			if ch, c, ok := sprite.At(u, vv); ok {
				dst.SetColor(r.X+cx, r.Y+cy, ch, c)
			}
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = core.Max(boxW, len(l))
	}
	boxW += 4
	boxH := 4 + len(lines)
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRectColor(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.Tint(box, core.ColorBrightWhite)

	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	for i, l := range lines {
		dst.DrawText(box.X+(boxW-len(l))/2, box.Y+3+i, l)
	}
}
