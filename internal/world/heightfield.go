package world

import (
	"fmt"
	"math"
)

// NoiseType selects the single-octave noise used by a HeightField.
type NoiseType string

const (
	NoiseOpenSimplex NoiseType = "opensimplex"
	NoiseValue       NoiseType = "value"
)

// NoiseConfig shapes the fractal height field. It is fixed at construction time.
type NoiseConfig struct {
	Seed        int64
	Type        NoiseType
	Octaves     int
	Gain        float64
	Lacunarity  float64
	Frequency   float64
	HeightScale int
}

// DefaultNoiseConfig returns the stock terrain settings.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:        420,
		Type:        NoiseOpenSimplex,
		Octaves:     4,
		Gain:        0.5,
		Lacunarity:  2.0,
		Frequency:   0.01,
		HeightScale: ChunkSize,
	}
}

// Validate rejects settings that cannot produce a height field.
func (c NoiseConfig) Validate() error {
	switch c.Type {
	case NoiseOpenSimplex, NoiseValue:
	default:
		return fmt.Errorf("noise: unknown type %q", c.Type)
	}
	if c.Octaves < 1 {
		return fmt.Errorf("noise: octaves must be >= 1, got %d", c.Octaves)
	}
	if c.Gain <= 0 {
		return fmt.Errorf("noise: gain must be > 0, got %g", c.Gain)
	}
	if c.Lacunarity <= 0 {
		return fmt.Errorf("noise: lacunarity must be > 0, got %g", c.Lacunarity)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("noise: frequency must be > 0, got %g", c.Frequency)
	}
	if c.HeightScale < 0 {
		return fmt.Errorf("noise: height scale must be >= 0, got %d", c.HeightScale)
	}
	return nil
}

// HeightField is a deterministic fractal (fBm) 2D height function.
// It holds no mutable state and is safe for concurrent use.
type HeightField struct {
	cfg      NoiseConfig
	octaves  []noiseSource
	bounding float64
}

// NewHeightField builds the per-octave noise sources for cfg.
func NewHeightField(cfg NoiseConfig) (*HeightField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hf := &HeightField{cfg: cfg, octaves: make([]noiseSource, cfg.Octaves)}
	amp := 1.0
	sum := 0.0
	for i := range cfg.Octaves {
		hf.octaves[i] = newNoiseSource(cfg.Type, cfg.Seed+int64(i))
		sum += amp
		amp *= cfg.Gain
	}
	hf.bounding = 1 / sum
	return hf, nil
}

// Config returns the settings the field was built with.
func (h *HeightField) Config() NoiseConfig {
	return h.cfg
}

// Sample returns the raw fractal value at world (x, z), in [-1, 1].
func (h *HeightField) Sample(x, z float64) float64 {
	freq := h.cfg.Frequency
	amp := 1.0
	sum := 0.0
	for _, src := range h.octaves {
		sum += src.Eval2(x*freq, z*freq) * amp
		amp *= h.cfg.Gain
		freq *= h.cfg.Lacunarity
	}
	return clamp(sum*h.bounding, -1, 1)
}

// Normalized maps Sample into [0, 1].
func (h *HeightField) Normalized(x, z float64) float64 {
	return clamp((h.Sample(x, z)+1)/2, 0, 1)
}

// HeightAt returns the terrain height in blocks for the world column (x, z).
func (h *HeightField) HeightAt(x, z int) int {
	return int(math.Floor(h.Normalized(float64(x), float64(z)) * float64(h.cfg.HeightScale)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FlatField is a constant-height field.
type FlatField struct {
	Height int
}

// HeightAt returns the fixed height.
func (f FlatField) HeightAt(_, _ int) int {
	return f.Height
}
