// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import "github.com/slyandsmart/EXUDYN-sub000/mbs"

// CoordinateConstraint enforces marker1.VectorValue - marker0.VectorValue
// == Offset (both markers are always read), the simplest AE-contributing
// connector (spec §4.5 constraint connector
// pseudocode, single scalar row).
type CoordinateConstraint struct {
	Markers [2]int
	Offset  float64
}

func (c *CoordinateConstraint) Category() mbs.ObjectCategory { return mbs.ObjectConstraint }
func (c *CoordinateConstraint) MarkerNumbers() [2]int        { return c.Markers }
func (c *CoordinateConstraint) NumConstraintEquations() int  { return 1 }

func (c *CoordinateConstraint) ComputeODE2LHS(markerData [2]*mbs.MarkerData, t float64, out []float64) error {
	return nil
}

// ComputeAlgebraicEquations returns g=q1-q0-Offset at position level, or
// ġ=q̇1-q̇0 at velocity level (spec §2 DAE residual g(q,t)=0, §4.6
// consistent initialization distinguishing position/velocity level).
func (c *CoordinateConstraint) ComputeAlgebraicEquations(markerData [2]*mbs.MarkerData, t float64, velocityLevel bool, out []float64) error {
	m0, m1 := markerData[0], markerData[1]
	if velocityLevel {
		out[0] = m1.VectorValueT[0] - m0.VectorValueT[0]
		return nil
	}
	out[0] = m1.VectorValue[0] - m0.VectorValue[0] - c.Offset
	return nil
}

// ComputeJacobianAE contributes ∂g/∂q through each marker's Jacobian row
// (spec §4.6).
func (c *CoordinateConstraint) ComputeJacobianAE(markerData [2]*mbs.MarkerData, t float64, jOde2, jOde2T, jAE [][]float64) error {
	m0, m1 := markerData[0], markerData[1]
	n0 := len(m0.Jacobian[0])
	for j := 0; j < n0; j++ {
		jOde2[0][j] -= m0.Jacobian[0][j]
	}
	n1 := len(m1.Jacobian[0])
	for j := 0; j < n1; j++ {
		jOde2[0][n0+j] += m1.Jacobian[0][j]
	}
	return nil
}

var (
	_ mbs.Connector  = (*CoordinateConstraint)(nil)
	_ mbs.Constraint = (*CoordinateConstraint)(nil)
)
