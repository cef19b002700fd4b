package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fkcurrie/hub75-golang/internal/types"
	"github.com/fkcurrie/hub75-golang/pkg/gpio"
	"github.com/fkcurrie/hub75-golang/pkg/hub75"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Chip    string              `json:"chip"`
	Pins    gpio.PinMap         `json:"pins"`
	Display types.DisplayConfig `json:"display"`
	Render  types.RenderConfig  `json:"render"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadOrDefault loads the configuration from path, or returns the default
// configuration when path does not exist. Any other error, including an
// invalid configuration, is returned as is.
func LoadOrDefault(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("No config at %s, using default configuration", path)
		return DefaultConfig(), nil
	}
	return config, err
}

// DefaultConfig returns the default configuration: a 64x32 panel on an
// Adafruit RGB Matrix Bonnet.
func DefaultConfig() *Config {
	return &Config{
		Chip: "gpiochip0",
		Pins: gpio.BonnetPinMap,
		Display: types.DisplayConfig{
			Panel:          "64x32",
			BrightnessBits: 4,
			ErrorPolicy:    "propagate",
		},
		Render: types.RenderConfig{
			UpdateInterval: 50,
			Pattern:        "cycle",
			Color:          "#ff0000",
			BackoffMin:     10,
			BackoffMax:     1000,
		},
	}
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	if c.Chip == "" {
		return fmt.Errorf("%w: chip must be set", ErrInvalidConfig)
	}
	panel, err := hub75.ParsePanel(c.Display.Panel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Display.BrightnessBits < 1 || c.Display.BrightnessBits > 8 {
		return fmt.Errorf("%w: brightness_bits must be between 1 and 8, got %d",
			ErrInvalidConfig, c.Display.BrightnessBits)
	}
	if _, err := hub75.ParseErrorPolicy(c.Display.ErrorPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Pins.Validate(panel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Render.UpdateInterval <= 0 {
		return fmt.Errorf("%w: update_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.Render.BackoffMin <= 0 || c.Render.BackoffMax < c.Render.BackoffMin {
		return fmt.Errorf("%w: backoff must satisfy 0 < backoff_min_ms <= backoff_max_ms", ErrInvalidConfig)
	}
	return nil
}

// Panel returns the configured panel geometry
func (c *Config) Panel() hub75.Panel {
	panel, _ := hub75.ParsePanel(c.Display.Panel)
	return panel
}

// DriverConfig converts the display section into a hub75.Config
func (c *Config) DriverConfig() (*hub75.Config, error) {
	panel, err := hub75.ParsePanel(c.Display.Panel)
	if err != nil {
		return nil, err
	}
	policy, err := hub75.ParseErrorPolicy(c.Display.ErrorPolicy)
	if err != nil {
		return nil, err
	}
	return &hub75.Config{
		Panel:          panel,
		BrightnessBits: uint8(c.Display.BrightnessBits),
		Policy:         policy,
	}, nil
}

// UpdateInterval returns the content update interval
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Render.UpdateInterval) * time.Millisecond
}
