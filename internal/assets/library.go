// Package assets loads sprite art for the runner's frontends.
// Sprites are decoded in the background; frontends poll readiness each
// frame and draw a placeholder until a sprite is available.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/core"
)

//go:embed sprites.yaml
var embedded embed.FS

// DefaultFile is the sprite sheet name inside the embedded FS.
const DefaultFile = "sprites.yaml"

// ErrNotLoaded is returned by Err before loading finishes.
var ErrNotLoaded = errors.New("assets: loading not finished")

// Sprite is a block of text art with a per-rune palette.
type Sprite struct {
	Name    string
	Rows    [][]rune
	Palette map[rune]core.Color
	Width   int
	Height  int
}

// At samples the sprite at normalised coordinates u, v in [0, 1).
// Transparent cells (spaces) report ok == false.
func (s Sprite) At(u, v float64) (r rune, c core.Color, ok bool) {
	if s.Width == 0 || s.Height == 0 {
		return ' ', core.ColorDefault, false
	}
	x := core.Clamp(int(u*float64(s.Width)), 0, s.Width-1)
	y := core.Clamp(int(v*float64(s.Height)), 0, s.Height-1)
	r = s.Rows[y][x]
	if r == ' ' {
		return r, core.ColorDefault, false
	}
	return r, s.Palette[r], true
}

type sheetFile struct {
	Sprites map[string]spriteFile `yaml:"sprites"`
}

type spriteFile struct {
	Palette map[string]string `yaml:"palette"`
	Rows    []string          `yaml:"rows"`
}

// Library holds sprites keyed by name.
type Library struct {
	mu      sync.RWMutex
	sprites map[string]Sprite
	err     error
	done    chan struct{}
	started bool
	logger  *log.Logger
}

// NewLibrary creates an empty library. Nothing is ready until a load runs.
func NewLibrary(logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{
		sprites: make(map[string]Sprite),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns a shared library loading the embedded sprite sheet.
func Default() *Library {
	defaultOnce.Do(func() {
		defaultLib = NewLibrary(nil)
		defaultLib.LoadAsync(embedded, DefaultFile)
	})
	return defaultLib
}

// Open returns a library loading DefaultFile from dir, or the shared
// embedded library when dir is empty.
func Open(dir string, logger *log.Logger) *Library {
	if dir == "" {
		return Default()
	}
	l := NewLibrary(logger)
	l.LoadAsync(os.DirFS(dir), DefaultFile)
	return l
}

// Embedded exposes the built-in sprite sheet.
func Embedded() fs.FS {
	return embedded
}

// LoadAsync decodes the sprite sheet at path on a new goroutine.
// Only the first call on a library has any effect.
func (l *Library) LoadAsync(fsys fs.FS, path string) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	go func() {
		defer close(l.done)
		err := l.load(fsys, path)

		l.mu.Lock()
		l.err = err
		l.mu.Unlock()

		if err != nil {
			l.logger.Warn("sprite sheet not loaded, using placeholders", "path", path, "error", err)
		}
	}()
}

// load decodes the sheet and publishes sprites one at a time.
func (l *Library) load(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("assets: read %s: %w", path, err)
	}

	var sheet sheetFile
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return fmt.Errorf("assets: parse %s: %w", path, err)
	}

	var errs []error
	for name, raw := range sheet.Sprites {
		sprite, err := decodeSprite(name, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l.mu.Lock()
		l.sprites[name] = sprite
		l.mu.Unlock()
	}
	return errors.Join(errs...)
}

// decodeSprite pads rows to a rectangle and resolves the palette.
func decodeSprite(name string, raw spriteFile) (Sprite, error) {
	if len(raw.Rows) == 0 {
		return Sprite{}, fmt.Errorf("assets: sprite %q has no rows", name)
	}

	palette := make(map[rune]core.Color, len(raw.Palette))
	for key, colorName := range raw.Palette {
		runes := []rune(key)
		if len(runes) != 1 {
			return Sprite{}, fmt.Errorf("assets: sprite %q: palette key %q must be one character", name, key)
		}
		c, ok := core.ParseColor(colorName)
		if !ok {
			return Sprite{}, fmt.Errorf("assets: sprite %q: unknown color %q", name, colorName)
		}
		palette[runes[0]] = c
	}

	width := 0
	rows := make([][]rune, len(raw.Rows))
	for i, row := range raw.Rows {
		rows[i] = []rune(row)
		width = core.Max(width, len(rows[i]))
	}
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], ' ')
		}
	}

	return Sprite{
		Name:    name,
		Rows:    rows,
		Palette: palette,
		Width:   width,
		Height:  len(rows),
	}, nil
}

// Sprite returns the named sprite and whether it is ready to draw.
func (l *Library) Sprite(name string) (Sprite, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sprites[name]
	return s, ok
}

// Names returns the names of the ready sprites.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.sprites))
	for name := range l.sprites {
		names = append(names, name)
	}
	return names
}

// Wait blocks until loading finishes or ctx is done.
func (l *Library) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the load error, or ErrNotLoaded while loading is pending.
func (l *Library) Err() error {
	select {
	case <-l.done:
	default:
		return ErrNotLoaded
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}
