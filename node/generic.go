// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "github.com/slyandsmart/EXUDYN-sub000/mbs"

// GenericODE2 carries a user-declared number of second-order coordinates,
// with no position/rotation semantics attached (spec §3 "GenericODE2/
// ODE1/Data"); used by superelement/FE reduced-coordinate bodies and by
// user-defined connectors that need scalar state of their own. Unlike
// Point/RigidBody*, a GenericODE2 coordinate is not a displacement added
// to a fixed reference: ANCF nodes in particular store absolute position
// and slope values directly, so the node carries its own ReferenceValues
// to seed every configuration at assembly time.
type GenericODE2 struct {
	base
	ReferenceValues []float64
}

// NewGenericODE2 allocates a GenericODE2 node with n coordinates, seeded
// from reference (nil means "start at zero", matching the displacement
// nodes' implicit zero reference).
func NewGenericODE2(n int, reference []float64) *GenericODE2 {
	g := &GenericODE2{ReferenceValues: reference}
	g.kind = mbs.NodeTypeGenericODE2
	g.nODE2 = n
	return g
}

// SeedReference copies ReferenceValues into the node's ODE2Coords slice
// at cfg, called once per configuration by
// System.AssembleInitializeSystemCoordinates.
func (g *GenericODE2) SeedReference(cfg mbs.ConfigurationType) {
	if g.ReferenceValues == nil {
		return
	}
	copy(g.ode2(cfg), g.ReferenceValues)
}

// Coordinates returns the n coordinate values at cfg (absolute values, not
// displacements from ReferenceValues).
func (g *GenericODE2) Coordinates(cfg mbs.ConfigurationType) []float64 { return g.ode2(cfg) }
func (g *GenericODE2) Velocities(cfg mbs.ConfigurationType) []float64  { return g.ode2Vel(cfg) }
func (g *GenericODE2) Accelerations(cfg mbs.ConfigurationType) []float64 {
	return g.ode2Acc(cfg)
}

// GenericODE1 carries a user-declared number of first-order coordinates
// (spec §3): state q with only q̇ meaningful, no acceleration level.
type GenericODE1 struct {
	base
}

// NewGenericODE1 allocates a GenericODE1 node with n coordinates.
func NewGenericODE1(n int) *GenericODE1 {
	g := &GenericODE1{}
	g.kind = mbs.NodeTypeGenericODE1
	g.nODE1 = n
	return g
}

func (g *GenericODE1) Coordinates(cfg mbs.ConfigurationType) []float64 {
	c := g.store.Config(cfg)
	return c.ODE1Coords[g.offODE1 : g.offODE1+g.nODE1]
}

func (g *GenericODE1) Velocities(cfg mbs.ConfigurationType) []float64 {
	c := g.store.Config(cfg)
	return c.ODE1Vels[g.offODE1 : g.offODE1+g.nODE1]
}

// GenericData carries a user-declared number of Data coordinates: discrete
// / state-event quantities that PostNewtonStep compares against and
// PostDiscontinuousIterationStep commits (spec §3, §4.7).
type GenericData struct {
	base
}

// NewGenericData allocates a GenericData node with n coordinates.
func NewGenericData(n int) *GenericData {
	g := &GenericData{}
	g.kind = mbs.NodeTypeGenericData
	g.nData = n
	return g
}

func (g *GenericData) Coordinates(cfg mbs.ConfigurationType) []float64 { return g.dataCoords(cfg) }

var (
	_ mbs.Node = (*GenericODE2)(nil)
	_ mbs.Node = (*GenericODE1)(nil)
	_ mbs.Node = (*GenericData)(nil)
)
