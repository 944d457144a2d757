package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"carousel/internal/carousel"
	"carousel/internal/domain"
	"carousel/internal/eventbus"
)

var (
	// ErrConfigNotFound is returned when a deck file does not exist
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidAlign is returned for an unknown align value
	ErrInvalidAlign = errors.New("invalid align")
	// ErrInvalidOrientation is returned for an unknown orientation value
	ErrInvalidOrientation = errors.New("invalid orientation")
	// ErrInvalidNumber is returned for out-of-range numeric settings
	ErrInvalidNumber = errors.New("invalid number")
)

// Config represents a deck file
type Config struct {
	Version  int              `toml:"version"`
	Title    string           `toml:"title"`
	Carousel CarouselSettings `toml:"carousel"`
	Slides   []SlideConfig    `toml:"slides"`
}

// CarouselSettings mirrors carousel.Options in file form
type CarouselSettings struct {
	Value              string              `toml:"value"`
	ItemsPerView       int                 `toml:"items_per_view"`
	Gap                float64             `toml:"gap"`
	Align              string              `toml:"align"`
	Rewind             bool                `toml:"rewind"`
	AutoPlayIntervalMs int                 `toml:"autoplay_interval_ms"`
	Move               int                 `toml:"move"`
	Orientation        string              `toml:"orientation"`
	MaxItemHeight      float64             `toml:"max_item_height"`
	Mousewheel         bool                `toml:"mousewheel"`
	Draggable          bool                `toml:"draggable"`
	DragTimeoutMs      int                 `toml:"drag_timeout_ms"`
	Sensitivity        SensitivitySettings `toml:"sensitivity"`
}

// SensitivitySettings holds drag speed multipliers
type SensitivitySettings struct {
	Pointer float64 `toml:"pointer"`
	Touch   float64 `toml:"touch"`
}

// SlideConfig is one slide of the deck
type SlideConfig struct {
	Value string `toml:"value,omitempty"`
	Title string `toml:"title"`
	Body  string `toml:"body,multiline"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default deck location
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "carousel", "deck.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the default deck, falling back to DefaultConfig when absent
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the default deck location
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Slides: len(cfg.Slides)})
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

// Parse decodes a deck on top of the defaults and validates it
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Slides = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum strings and numeric ranges
func (c *Config) Validate() error {
	s := c.Carousel
	if !carousel.Alignment(s.Align).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAlign, s.Align)
	}
	if !carousel.Orientation(s.Orientation).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, s.Orientation)
	}
	switch {
	case s.ItemsPerView < 1:
		return fmt.Errorf("%w: items_per_view must be at least 1", ErrInvalidNumber)
	case s.Move < 1:
		return fmt.Errorf("%w: move must be at least 1", ErrInvalidNumber)
	case s.Gap < 0:
		return fmt.Errorf("%w: gap must not be negative", ErrInvalidNumber)
	case s.MaxItemHeight < 0:
		return fmt.Errorf("%w: max_item_height must not be negative", ErrInvalidNumber)
	case s.AutoPlayIntervalMs < 0 || s.DragTimeoutMs < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidNumber)
	case s.Sensitivity.Pointer <= 0 || s.Sensitivity.Touch <= 0:
		return fmt.Errorf("%w: sensitivity must be positive", ErrInvalidNumber)
	}
	return nil
}

// Options converts the carousel settings to core options
func (c *Config) Options() carousel.Options {
	s := c.Carousel
	opts := carousel.DefaultOptions()
	opts.Value = s.Value
	opts.ItemsPerView = s.ItemsPerView
	opts.Move = s.Move
	opts.Gap = s.Gap
	opts.Align = carousel.Alignment(s.Align)
	opts.Orientation = carousel.Orientation(s.Orientation)
	opts.MaxItemHeight = s.MaxItemHeight
	opts.Rewind = s.Rewind
	opts.Draggable = s.Draggable
	opts.Mousewheel = s.Mousewheel
	opts.AutoPlayInterval = time.Duration(s.AutoPlayIntervalMs) * time.Millisecond
	opts.DragTimeout = time.Duration(s.DragTimeoutMs) * time.Millisecond
	opts.Sensitivity = carousel.Sensitivity{Pointer: s.Sensitivity.Pointer, Touch: s.Sensitivity.Touch}
	return opts
}

// Deck converts the slide list to the domain model
func (c *Config) Deck() domain.Deck {
	deck := domain.Deck{Title: c.Title, Slides: make([]domain.Slide, len(c.Slides))}
	for i, s := range c.Slides {
		deck.Slides[i] = domain.Slide{Value: s.Value, Title: s.Title, Body: s.Body}
	}
	return deck
}

// DefaultConfig returns the documented defaults and a small demo deck
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Title:   "carousel",
		Carousel: CarouselSettings{
			ItemsPerView: carousel.DefaultItemsPerView,
			Align:        string(carousel.AlignStart),
			Move:         carousel.DefaultMove,
			Orientation:  string(carousel.Horizontal),
			Draggable:    true,
			Sensitivity: SensitivitySettings{
				Pointer: carousel.DefaultPointer,
				Touch:   carousel.DefaultTouch,
			},
		},
		Slides: demoSlides(),
	}
}

func demoSlides() []SlideConfig {
	return []SlideConfig{
		{Value: "welcome", Title: "Welcome", Body: "# Welcome\n\nDrag with the mouse, scroll the wheel, or use **←/→** on the dots below."},
		{Value: "stops", Title: "Stops", Body: "# Valid stops\n\nThe carousel only rests where a full page of slides is visible."},
		{Value: "rewind", Title: "Rewind", Body: "# Rewind\n\nWith `rewind = true` the arrow keys wrap around. The wheel never does."},
		{Value: "autoplay", Title: "Autoplay", Body: "# Autoplay\n\nSet `autoplay_interval_ms`. Any drag or key press pauses it; **space** resumes."},
		{Value: "pager", Title: "Pager", Body: "# Pager\n\nPress **o** to read the current slide full screen."},
	}
}
