// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node implements the typed coordinate carriers of spec §3 Nodes:
// Point, PointGround, RigidBodyEP, RigidBodyRxyz, RigidBodyRotVec (the
// Lie-group data variant) and the three generic node kinds. Every rigid-
// body node implements mbs.RigidBodyNode through the five rotation
// primitives of package rotation so object/marker code never special-cases
// a parameterization (spec §9).
package node

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// base is embedded by every node type; it owns the global-offset
// bookkeeping (spec §9 "Coordinate ownership": "Nodes own their slots in
// the global coordinate vector as a range [offset, offset+n)").
type base struct {
	kind                        mbs.NodeType
	store                       *mbs.CData
	nODE2, nODE1, nAE, nData    int
	offODE2, offODE1, offAE, offData int
}

func (b *base) Type() mbs.NodeType { return b.kind }
func (b *base) NumODE2() int       { return b.nODE2 }
func (b *base) NumODE1() int       { return b.nODE1 }
func (b *base) NumAE() int         { return b.nAE }
func (b *base) NumData() int       { return b.nData }

func (b *base) Offset(kind mbs.CoordinateKind) int {
	switch kind {
	case mbs.ODE2:
		return b.offODE2
	case mbs.ODE1:
		return b.offODE1
	case mbs.AE:
		return b.offAE
	default:
		return b.offData
	}
}

func (b *base) SetOffset(kind mbs.CoordinateKind, offset int) {
	switch kind {
	case mbs.ODE2:
		b.offODE2 = offset
	case mbs.ODE1:
		b.offODE1 = offset
	case mbs.AE:
		b.offAE = offset
	default:
		b.offData = offset
	}
}

// SetStore attaches the shared coordinate storage; called once by
// Assemble.
func (b *base) SetStore(store *mbs.CData) { b.store = store }

func (b *base) ode2(cfg mbs.ConfigurationType) []float64 {
	c := b.store.Config(cfg)
	return c.ODE2Coords[b.offODE2 : b.offODE2+b.nODE2]
}
func (b *base) ode2Vel(cfg mbs.ConfigurationType) []float64 {
	c := b.store.Config(cfg)
	return c.ODE2Vels[b.offODE2 : b.offODE2+b.nODE2]
}
func (b *base) ode2Acc(cfg mbs.ConfigurationType) []float64 {
	c := b.store.Config(cfg)
	return c.ODE2Accs[b.offODE2 : b.offODE2+b.nODE2]
}
func (b *base) dataCoords(cfg mbs.ConfigurationType) []float64 {
	c := b.store.Config(cfg)
	return c.DataCoords[b.offData : b.offData+b.nData]
}
func (b *base) aeCoords(cfg mbs.ConfigurationType) []float64 {
	c := b.store.Config(cfg)
	return c.AECoords[b.offAE : b.offAE+b.nAE]
}

// vec3FromSlice reads 3 consecutive values of s starting at local index i
// as a Vec3. It adds nothing; callers that need "reference + displacement"
// (spec §3 "Each node stores only displacements relative to reference
// coordinates") add the reference vector themselves.
func vec3FromSlice(s []float64, i int) linalg.Vec3 {
	return linalg.Vec3{s[i], s[i+1], s[i+2]}
}
