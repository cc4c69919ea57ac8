// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// JointGeneric is the 6-axis unifying joint of spec §4.5: a bitvector of
// constrained translation/rotation axes, expressed in marker0's local
// frame, picks out which of 6 possible equations this joint instance
// contributes. All of JointSpherical, JointRevolute, JointPrismatic,
// JointRevolute2D etc. (spec §12) are built by choosing ConstrainedAxes.
type JointGeneric struct {
	Markers [2]int

	// ConstrainedAxes: [0:3] translation x,y,z; [3:6] rotation x,y,z - all
	// expressed in marker0's local frame (spec §4.5 JointGeneric).
	ConstrainedAxes [6]bool

	// Offset is a constant 6-vector [dx,dy,dz,dθx,dθy,dθz] added to the
	// locked axes' target value (spec §4.5 "offset").
	Offset [6]float64
}

func (j *JointGeneric) Category() mbs.ObjectCategory { return mbs.ObjectConstraint }
func (j *JointGeneric) MarkerNumbers() [2]int         { return j.Markers }

func (j *JointGeneric) NumConstraintEquations() int {
	n := 0
	for _, c := range j.ConstrainedAxes {
		if c {
			n++
		}
	}
	return n
}

func (j *JointGeneric) ComputeODE2LHS(markerData [2]*mbs.MarkerData, t float64, out []float64) error { return nil }

// nLockedRotation counts how many of the 3 rotation axes are locked: 3
// locked (rigid), 2 locked + 1 free (revolute), 1 locked + 2 free
// (universal/Cardan). The residual and Jacobian below do not branch on it.
func (j *JointGeneric) nLockedRotation() int {
	n := 0
	for i := 3; i < 6; i++ {
		if j.ConstrainedAxes[i] {
			n++
		}
	}
	return n
}

// relativeRotationLocal returns the rotation-vector of marker0's local
// frame seen against marker1's, θ = log(R0ᵀR1), expressed in marker0's
// local axes; each locked rotation axis uses the matching component of θ
// as its residual, in every case (rigid, revolute, universal); no
// per-case cross-product residual is formed.
func relativeRotationLocal(m0, m1 *mbs.MarkerData) linalg.Vec3 {
	relR := m0.Orientation.T().Mul(m1.Orientation)
	return linalg.Vec3(rotation.Log(relR))
}

func (j *JointGeneric) ComputeAlgebraicEquations(markerData [2]*mbs.MarkerData, t float64, velocityLevel bool, out []float64) error {
	m0, m1 := markerData[0], markerData[1]
	row := 0
	if velocityLevel {
		dv := m1.Velocity.Sub(m0.Velocity)
		dvLocal := m0.Orientation.T().MulVec(dv)
		domega := m0.Orientation.T().MulVec(m1.AngularVelocityLocal.Sub(m0.AngularVelocityLocal))
		for i := 0; i < 3; i++ {
			if j.ConstrainedAxes[i] {
				out[row] = dvLocal[i]
				row++
			}
		}
		for i := 0; i < 3; i++ {
			if j.ConstrainedAxes[3+i] {
				out[row] = domega[i]
				row++
			}
		}
		return nil
	}
	d := m1.Position.Sub(m0.Position)
	dLocal := m0.Orientation.T().MulVec(d)
	theta := relativeRotationLocal(m0, m1)
	for i := 0; i < 3; i++ {
		if j.ConstrainedAxes[i] {
			out[row] = dLocal[i] - j.Offset[i]
			row++
		}
	}
	for i := 0; i < 3; i++ {
		if j.ConstrainedAxes[3+i] {
			out[row] = theta[i] - j.Offset[3+i]
			row++
		}
	}
	return nil
}

// ComputeJacobianAE builds ∂g/∂q via a forward-difference sweep over each
// marker's local coordinate block (spec §4.6: "analytical where
// available, else finite-difference fallback"); JointGeneric's mixed
// translation/rotation residual has no single closed form shared across
// all three rotation-block cases, so it always uses the fallback, unlike
// the rigid-body nodes' own G/GTv_q primitives.
func (j *JointGeneric) ComputeJacobianAE(markerData [2]*mbs.MarkerData, t float64, jOde2, jOde2T, jAE [][]float64) error {
	m0, m1 := markerData[0], markerData[1]
	n0 := m0.NCoords()
	n1 := m1.NCoords()
	nEq := j.NumConstraintEquations()
	base := make([]float64, nEq)
	j.ComputeAlgebraicEquations(markerData, t, false, base)
	const h = 1e-7
	perturbAndDiff := func(pos, rot [][]float64, n, colOffset, which int) {
		for k := 0; k < n; k++ {
			dr := linalg.Vec3{pos[0][k], pos[1][k], pos[2][k]}.Scale(h)
			dth := linalg.Vec3{rot[0][k], rot[1][k], rot[2][k]}.Scale(h)
			pm0 := *m0
			pm1 := *m1
			if which == 0 {
				pm0.Position = pm0.Position.Add(dr)
				pm0.Orientation = rotation.RotationVector(dth).Exp().Mul(pm0.Orientation)
			} else {
				pm1.Position = pm1.Position.Add(dr)
				pm1.Orientation = rotation.RotationVector(dth).Exp().Mul(pm1.Orientation)
			}
			perturbed := [2]*mbs.MarkerData{&pm0, &pm1}
			perturbedOut := make([]float64, nEq)
			j.ComputeAlgebraicEquations(perturbed, t, false, perturbedOut)
			for r := 0; r < nEq; r++ {
				jOde2[r][colOffset+k] += (perturbedOut[r] - base[r]) / h
			}
		}
	}
	perturbAndDiff(m0.PositionJacobian, m0.RotationJacobian, n0, 0, 0)
	perturbAndDiff(m1.PositionJacobian, m1.RotationJacobian, n1, n0, 1)
	return nil
}

var (
	_ mbs.Connector  = (*JointGeneric)(nil)
	_ mbs.Constraint = (*JointGeneric)(nil)
)
