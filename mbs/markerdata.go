// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbs

import "github.com/slyandsmart/EXUDYN-sub000/linalg"

// MarkerData is the POD-like snapshot a marker materializes on request
// (spec §4.3). Connectors are written against MarkerData only; it is the
// single abstraction that hides node-type variety from connector code.
type MarkerData struct {
	Position linalg.Vec3
	Velocity linalg.Vec3
	// VelocityAvailable mirrors the C++ source's velocityAvailable flag:
	// some marker kinds (e.g. coordinate markers on Data-only nodes) cannot
	// report a velocity.
	VelocityAvailable bool

	Orientation          linalg.Mat3
	AngularVelocityLocal linalg.Vec3

	// PositionJacobian is ∂r/∂q̇, shape 3 x nCoords.
	PositionJacobian [][]float64
	// RotationJacobian is ∂ω/∂q̇ in the world frame, shape 3 x nCoords.
	RotationJacobian [][]float64

	// Jacobian is the generic k x nCoords Jacobian carried by coordinate
	// markers (picks of ±1 selecting one nodal coordinate).
	Jacobian [][]float64

	// VectorValue / VectorValueT are the coordinate-marker scalar value
	// and its time derivative (k x 1, k usually 1).
	VectorValue  []float64
	VectorValueT []float64

	// LagrangeMultipliers is a linked view into the connector's own AE
	// coordinates, filled in by the assembler right before
	// ComputeAlgebraicEquations is invoked on an inactive branch (g=λ).
	LagrangeMultipliers []float64
}

// NCoords returns the number of global coordinates this snapshot's
// Jacobians are expressed over (0 if none were requested).
func (m *MarkerData) NCoords() int {
	if len(m.PositionJacobian) > 0 {
		return len(m.PositionJacobian[0])
	}
	if len(m.RotationJacobian) > 0 {
		return len(m.RotationJacobian[0])
	}
	if len(m.Jacobian) > 0 {
		return len(m.Jacobian[0])
	}
	return 0
}

// ComposeLocalPosition implements the local-point composition every
// body-local marker uses to build its MarkerData from a node result and a
// local offset p: r = r_node + R·p, v = v_node + ω×(R·p) (spec §4.3).
func ComposeLocalPosition(nodePos, nodeVel linalg.Vec3, R linalg.Mat3, omega linalg.Vec3, p linalg.Vec3) (pos, vel linalg.Vec3) {
	Rp := R.MulVec(p)
	pos = nodePos.Add(Rp)
	vel = nodeVel.Add(omega.Cross(Rp))
	return
}
