// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbs

// Config holds one named configuration's flat coordinate vectors (spec
// §4.1: "CSystemData owns five CData configurations, each holding a
// single flat vector of ODE2 coordinates, ODE2 velocities, ODE2
// accelerations, ODE1 coordinates, AE coordinates (Lagrange multipliers),
// and Data coordinates").
type Config struct {
	ODE2Coords []float64
	ODE2Vels   []float64
	ODE2Accs   []float64
	ODE1Coords []float64
	ODE1Vels   []float64
	AECoords   []float64 // Lagrange multipliers
	DataCoords []float64
}

// Resize allocates all seven arrays to the given sizes, zeroing them.
func (c *Config) Resize(nODE2, nODE1, nAE, nData int) {
	c.ODE2Coords = make([]float64, nODE2)
	c.ODE2Vels = make([]float64, nODE2)
	c.ODE2Accs = make([]float64, nODE2)
	c.ODE1Coords = make([]float64, nODE1)
	c.ODE1Vels = make([]float64, nODE1)
	c.AECoords = make([]float64, nAE)
	c.DataCoords = make([]float64, nData)
}

// Slice returns the backing array for a given coordinate kind.
func (c *Config) Slice(kind CoordinateKind) []float64 {
	switch kind {
	case ODE2:
		return c.ODE2Coords
	case ODE1:
		return c.ODE1Coords
	case AE:
		return c.AECoords
	default:
		return c.DataCoords
	}
}

// CopyFrom copies every array from src into c (used for
// StartOfStep<-Current commits and backup/restore on divergence, spec §5).
func (c *Config) CopyFrom(src *Config) {
	copy(c.ODE2Coords, src.ODE2Coords)
	copy(c.ODE2Vels, src.ODE2Vels)
	copy(c.ODE2Accs, src.ODE2Accs)
	copy(c.ODE1Coords, src.ODE1Coords)
	copy(c.ODE1Vels, src.ODE1Vels)
	copy(c.AECoords, src.AECoords)
	copy(c.DataCoords, src.DataCoords)
}

// CData owns the five named configurations (spec §3 Configurations). It
// is the single shared coordinate store every node reads/writes through,
// via the offsets AssembleCoordinates assigns it.
type CData struct {
	configs [5]Config // indexed by ConfigurationType - 1 (ConfigNone has no storage)
}

// Config returns the configuration vector set for cfg.
func (d *CData) Config(cfg ConfigurationType) *Config {
	if cfg == ConfigNone {
		panic("mbs.CData: ConfigNone has no storage")
	}
	return &d.configs[cfg-1]
}

// ForEachConfig applies fn to every one of the five configurations, used
// by AssembleInitializeSystemCoordinates-style bulk resizing.
func (d *CData) ForEachConfig(fn func(cfg ConfigurationType, c *Config)) {
	for _, cfg := range []ConfigurationType{ConfigReference, ConfigInitial, ConfigCurrent, ConfigStartOfStep, ConfigVisualization} {
		fn(cfg, d.Config(cfg))
	}
}
