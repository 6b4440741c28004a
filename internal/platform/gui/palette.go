// Package gui runs the runner in an ebiten window. The window shows the
// world at its native pixel size; sprites from the shared library are
// rasterised one pixel per cell and scaled onto their visual rectangles.
package gui

import (
	"image"
	"image/color"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Scene colours
var (
	SkyColor    = color.RGBA{R: 0x02, G: 0xa6, B: 0xff, A: 0xff}
	GroundColor = color.RGBA{R: 0x04, G: 0xff, B: 0x00, A: 0xff}
	OverlayTint = color.RGBA{A: 0x66} // black at 0.4 alpha
)

// GroundHeight is the height of the ground band drawn from GroundY - 12.
const GroundHeight = 50

// rgba maps terminal colours onto pixels.
var rgba = map[core.Color]color.RGBA{
	core.ColorDefault:       {R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
	core.ColorRed:           {R: 0xcc, G: 0x22, B: 0x22, A: 0xff},
	core.ColorGreen:         {R: 0x22, G: 0xaa, B: 0x22, A: 0xff},
	core.ColorYellow:        {R: 0xdd, G: 0xbb, B: 0x11, A: 0xff},
	core.ColorBlue:          {R: 0x22, G: 0x44, B: 0xcc, A: 0xff},
	core.ColorMagenta:       {R: 0xaa, G: 0x22, B: 0xaa, A: 0xff},
	core.ColorCyan:          {R: 0x11, G: 0xaa, B: 0xaa, A: 0xff},
	core.ColorWhite:         {R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff},
	core.ColorBrightRed:     {R: 0xff, G: 0x55, B: 0x55, A: 0xff},
	core.ColorBrightGreen:   {R: 0x55, G: 0xff, B: 0x55, A: 0xff},
	core.ColorBrightYellow:  {R: 0xff, G: 0xff, B: 0x55, A: 0xff},
	core.ColorBrightBlue:    {R: 0x55, G: 0x77, B: 0xff, A: 0xff},
	core.ColorBrightMagenta: {R: 0xff, G: 0x55, B: 0xff, A: 0xff},
	core.ColorBrightCyan:    {R: 0x55, G: 0xff, B: 0xff, A: 0xff},
	core.ColorBrightWhite:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	core.ColorOrange:        {R: 0xff, G: 0x88, B: 0x00, A: 0xff},
	core.ColorGray:          {R: 0x88, G: 0x88, B: 0x88, A: 0xff},
	core.ColorBrown:         {R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff},
	core.ColorSky:           SkyColor,
}

// RGBA returns the pixel colour for a terminal colour.
func RGBA(c core.Color) color.RGBA {
	if v, ok := rgba[c]; ok {
		return v
	}
	return rgba[core.ColorDefault]
}

// Rasterize turns a sprite into an image with one pixel per cell.
// Transparent cells stay fully transparent.
func Rasterize(s assets.Sprite) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y, row := range s.Rows {
		for x, r := range row {
			if r == ' ' {
				continue
			}
			img.SetRGBA(x, y, RGBA(s.Palette[r]))
		}
	}
	return img
}
