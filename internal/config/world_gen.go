package config

import (
	"fmt"

	"voxelstream/internal/world"
)

// Generator types.
const (
	GeneratorNoise = "noise"
	GeneratorFlat  = "flat"
)

// Block store layouts.
const (
	StoreSparse = "sparse"
	StoreDense  = "dense"
)

// NoiseSettings mirrors world.NoiseConfig with YAML tags.
type NoiseSettings struct {
	Seed        int64   `yaml:"seed"`
	Type        string  `yaml:"type"`
	Octaves     int     `yaml:"octaves"`
	Gain        float64 `yaml:"gain"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Frequency   float64 `yaml:"frequency"`
	HeightScale int     `yaml:"height_scale"`
}

func defaultNoise() NoiseSettings {
	d := world.DefaultNoiseConfig()
	return NoiseSettings{
		Seed:        d.Seed,
		Type:        string(d.Type),
		Octaves:     d.Octaves,
		Gain:        d.Gain,
		Lacunarity:  d.Lacunarity,
		Frequency:   d.Frequency,
		HeightScale: d.HeightScale,
	}
}

// NoiseConfig converts the settings for world.NewHeightField.
func (n NoiseSettings) NoiseConfig() world.NoiseConfig {
	return world.NoiseConfig{
		Seed:        n.Seed,
		Type:        world.NoiseType(n.Type),
		Octaves:     n.Octaves,
		Gain:        n.Gain,
		Lacunarity:  n.Lacunarity,
		Frequency:   n.Frequency,
		HeightScale: n.HeightScale,
	}
}

// HeightSource builds the terrain height function selected by cfg.
func (c *Config) HeightSource() (world.HeightSource, error) {
	switch c.Generator {
	case GeneratorFlat:
		return world.FlatField{Height: c.FlatHeight}, nil
	case GeneratorNoise:
		hf, err := world.NewHeightField(c.Noise.NoiseConfig())
		if err != nil {
			return nil, fmt.Errorf("height field: %w", err)
		}
		return hf, nil
	default:
		return nil, fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.Generator)
	}
}

// NewGenerator builds the chunk generator selected by cfg.
func (c *Config) NewGenerator() (*world.Generator, error) {
	hs, err := c.HeightSource()
	if err != nil {
		return nil, err
	}
	return world.NewGenerator(hs, c.MarkSurface), nil
}
