// Package config loads the optional gorast.yaml file. Every field has a
// default, so a missing file yields the built-in 800x600 setup.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/kjkrol/gorast/pkg/framebuffer"
	"github.com/kjkrol/gorast/pkg/gfx"
)

const FileName = "gorast.yaml"

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultBackend = "sdl"
	DefaultColor   = "#FFFF0000"
)

// Config mirrors gorast.yaml.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
}

type WindowConfig struct {
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	Title      string `yaml:"title,omitempty"`
	Borderless *bool  `yaml:"borderless,omitempty"`
}

type RenderConfig struct {
	// ClearColor accepts #RRGGBB, #AARRGGBB, 0xAARRGGBB or a CSS colour name.
	ClearColor string `yaml:"clear_color,omitempty"`
	// EventsPerFrame caps how many input events one frame consumes.
	EventsPerFrame int `yaml:"events_per_frame,omitempty"`
}

type BackendConfig struct {
	Name     string `yaml:"name,omitempty"`
	Frames   int    `yaml:"frames,omitempty"`
	Snapshot string `yaml:"snapshot,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved holds validated values ready to be handed to the frame driver.
type Resolved struct {
	Window         gfx.WindowConfig
	ClearColor     uint32
	EventsPerFrame int
	Backend        string
	Options        gfx.BackendOptions
	LogLevel       slog.Level
}

var ErrInvalid = errors.New("invalid configuration")

// LoadOptional reads path if it exists. A missing file is not an error.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// Resolve applies defaults and validates.
func (c *Config) Resolve() (*Resolved, error) {
	width := c.Window.Width
	if width == 0 {
		width = DefaultWidth
	}
	height := c.Window.Height
	if height == 0 {
		height = DefaultHeight
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: window size %dx%d", ErrInvalid, width, height)
	}
	borderless := true
	if c.Window.Borderless != nil {
		borderless = *c.Window.Borderless
	}

	colorSpec := strings.TrimSpace(c.Render.ClearColor)
	if colorSpec == "" {
		colorSpec = DefaultColor
	}
	clearColor, err := ParseColor(colorSpec)
	if err != nil {
		return nil, err
	}

	events := c.Render.EventsPerFrame
	if events < 0 {
		return nil, fmt.Errorf("%w: events_per_frame %d", ErrInvalid, events)
	}
	if events == 0 {
		events = 1
	}

	backend := strings.TrimSpace(c.Backend.Name)
	if backend == "" {
		backend = DefaultBackend
	}
	if c.Backend.Frames < 0 {
		return nil, fmt.Errorf("%w: backend frames %d", ErrInvalid, c.Backend.Frames)
	}

	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Window: gfx.WindowConfig{
			Width:      width,
			Height:     height,
			Title:      c.Window.Title,
			Borderless: borderless,
		},
		ClearColor:     clearColor,
		EventsPerFrame: events,
		Backend:        backend,
		Options: gfx.BackendOptions{
			Frames:   c.Backend.Frames,
			Snapshot: c.Backend.Snapshot,
		},
		LogLevel: level,
	}, nil
}

// ParseColor turns a colour spec into packed 0xAARRGGBB. Six hex digits
// mean an opaque colour.
func ParseColor(spec string) (uint32, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if c, ok := colornames.Map[s]; ok {
		return framebuffer.Pack(c), nil
	}
	var hex string
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"):
		hex = s[2:]
	default:
		return 0, fmt.Errorf("%w: colour %q", ErrInvalid, spec)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: colour %q: %v", ErrInvalid, spec, err)
	}
	switch len(hex) {
	case 6:
		return uint32(v) | 0xFF000000, nil
	case 8:
		return uint32(v), nil
	default:
		return 0, fmt.Errorf("%w: colour %q needs 6 or 8 hex digits", ErrInvalid, spec)
	}
}

func parseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return level, nil
}
