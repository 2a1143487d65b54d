// Package config loads and validates the run configuration for the beam
// vibration analysis CLI. Values come from a YAML file; unset fields fall
// back to a typical strain-gauge bench setup (70 Hz cutoff, 5 kHz
// sampling, 4th-order filter, 10% crop fraction, 25.5×0.8 mm steel strip).
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-modal/measure/modulus"
	"github.com/cwbudde/algo-modal/vibration"
)

// Config is the full CLI configuration.
type Config struct {
	Input struct {
		Dir string `yaml:"dir" default:"data" validate:"required"`
	} `yaml:"input"`

	Output struct {
		Dir     string `yaml:"dir" default:"output" validate:"required"`
		Results string `yaml:"results" default:"beam_analysis.csv" validate:"required"`
	} `yaml:"output"`

	Filter struct {
		CutoffHz     float64 `yaml:"cutoff_hz" default:"70" validate:"gt=0"`
		SampleRateHz float64 `yaml:"sample_rate_hz" default:"5000" validate:"gt=0"`
		Order        int     `yaml:"order" default:"4" validate:"gte=1"`
	} `yaml:"filter"`

	Crop struct {
		Fraction float64 `yaml:"fraction" default:"0.1" validate:"gt=0,lte=1"`
	} `yaml:"crop"`

	Beam struct {
		WidthM      float64 `yaml:"width_m" default:"0.0255" validate:"gt=0"`
		ThicknessM  float64 `yaml:"thickness_m" default:"0.0008" validate:"gt=0"`
		DensityKgM3 float64 `yaml:"density_kg_m3" default:"7700" validate:"gt=0"`
	} `yaml:"beam"`

	Workers int `yaml:"workers" default:"1" validate:"gte=1"`

	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
}

// Default returns the configuration with every field at its default.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config: apply defaults: %w", err)
	}

	return &c, nil
}

// Load reads a YAML configuration file, fills unset fields with defaults,
// and validates the result. An empty path yields the pure defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read: %w", err)
		}

		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}

		// Re-apply defaults for fields the file left zero-valued.
		if err := defaults.Set(c); err != nil {
			return nil, fmt.Errorf("config: apply defaults: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}

	// Nyquist is a cross-field constraint the tag validator cannot express.
	if c.Filter.CutoffHz >= c.Filter.SampleRateHz/2 {
		return fmt.Errorf("config: cutoff %g Hz must be below Nyquist %g Hz",
			c.Filter.CutoffHz, c.Filter.SampleRateHz/2)
	}

	return nil
}

// Analysis maps the configuration onto the core pipeline's parameters.
func (c *Config) Analysis() vibration.Config {
	return vibration.Config{
		CutoffHz:     c.Filter.CutoffHz,
		SampleRateHz: c.Filter.SampleRateHz,
		FilterOrder:  c.Filter.Order,
		CropFraction: c.Crop.Fraction,
		Geometry: modulus.Geometry{
			WidthM:      c.Beam.WidthM,
			ThicknessM:  c.Beam.ThicknessM,
			DensityKgM3: c.Beam.DensityKgM3,
		},
	}
}
