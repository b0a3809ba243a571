package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for settings the simulation cannot run with
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the simulation and the terminal driver
type Config struct {
	PixelWidth   int           `json:"pixel_width"`
	PixelHeight  int           `json:"pixel_height"`
	CellSize     int           `json:"cell_size"`
	StepInterval time.Duration `json:"step_interval"`

	FrameRate     time.Duration `json:"frame_rate"`
	Workers       int           `json:"workers"` // 0 means one per CPU
	UseMemoryPool bool          `json:"use_memory_pool"`
	RandomDensity float64       `json:"random_density"`
	Seed          int64         `json:"seed"`
	SeedPatterns  bool          `json:"seed_patterns"`
	StartRunning  bool          `json:"start_running"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		PixelWidth:    1200,
		PixelHeight:   960,
		CellSize:      24,
		StepInterval:  50 * time.Millisecond,
		FrameRate:     16 * time.Millisecond,
		Workers:       0,
		UseMemoryPool: true,
		RandomDensity: 0,
		Seed:          1,
		SeedPatterns:  true,
		StartRunning:  false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid settings in file: %+v", filename)
	}

	return config, nil
}

// Validate checks the timing and driver settings. Grid geometry is checked when the
// grid is built.
func (c Config) Validate() error {
	switch {
	case c.StepInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] step_interval must be positive, got %v", c.StepInterval)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame_rate must be positive, got %v", c.FrameRate)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must not be negative, got %d", c.Workers)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density must be within [0,1], got %v", c.RandomDensity)
	}
	return nil
}
