// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// RigidBodyRotVec is the Lie-group "data" rigid-body node (spec §3): 3
// translations, tracked as an ordinary ODE2 displacement, plus 3 rotation
// coordinates that are NOT integrated directly as an ODE2 position.
// Instead the rotation vector lives in the node's Data coordinates and is
// advanced once per accepted step by left-translation on SO(3):
//
//	θ ← log(exp(θ0)·exp(Δθ))
//
// The corresponding 3 "rotation" ODE2 slots only carry a velocity-level
// quantity (ω̄, body-fixed angular velocity); their position-level entry is
// unused, matching spec §3's "3 translations (ODE2 velocity coords) + 3
// rotation vector components stored as Data".
type RigidBodyRotVec struct {
	base
	ReferencePosition linalg.Vec3
	ReferenceRotation rotation.RotationVector
}

// NewRigidBodyRotVec allocates a RigidBodyRotVec node.
func NewRigidBodyRotVec(referencePosition linalg.Vec3, referenceRotation rotation.RotationVector) *RigidBodyRotVec {
	n := &RigidBodyRotVec{ReferencePosition: referencePosition, ReferenceRotation: referenceRotation}
	n.kind = mbs.NodeTypeRigidBody | mbs.NodeTypeRotationRotationVector | mbs.NodeTypeRotationLieGroup
	n.nODE2 = 6
	n.nData = 3
	return n
}

func (n *RigidBodyRotVec) NumRotationCoordinates() int { return 3 }

// rotVec returns the committed rotation vector (the Data coordinates).
func (n *RigidBodyRotVec) rotVec(cfg mbs.ConfigurationType) rotation.RotationVector {
	if cfg == mbs.ConfigReference {
		return n.ReferenceRotation
	}
	d := n.dataCoords(cfg)
	return rotation.RotationVector{d[0], d[1], d[2]}
}

// omegaLocal returns ω̄, the body-fixed angular velocity carried at the
// velocity level of the rotation ODE2 slots.
func (n *RigidBodyRotVec) omegaLocal(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Vel(cfg), 3)
}

func (n *RigidBodyRotVec) omegaLocalDot(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Acc(cfg), 3)
}

func (n *RigidBodyRotVec) GetPosition(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return n.ReferencePosition
	}
	return n.ReferencePosition.Add(vec3FromSlice(n.ode2(cfg), 0))
}

func (n *RigidBodyRotVec) GetVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Vel(cfg), 0)
}

func (n *RigidBodyRotVec) GetAcceleration(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Acc(cfg), 0)
}

func (n *RigidBodyRotVec) GetRotationMatrix(cfg mbs.ConfigurationType) linalg.Mat3 {
	return n.rotVec(cfg).Exp()
}

// GetAngularVelocity returns world angular velocity ω = A·ω̄ (Glocal = I,
// G = RotationMatrix for this parameterization, per
// CNodeRigidBodyRotVecDataLG::GetG/GetGlocal).
func (n *RigidBodyRotVec) GetAngularVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	return n.GetRotationMatrix(cfg).MulVec(n.omegaLocal(cfg))
}

func (n *RigidBodyRotVec) GetAngularVelocityLocal(cfg mbs.ConfigurationType) linalg.Vec3 {
	return n.omegaLocal(cfg)
}

func (n *RigidBodyRotVec) GetG(cfg mbs.ConfigurationType) [][]float64 {
	return mat3ToRows(n.GetRotationMatrix(cfg))
}

func (n *RigidBodyRotVec) GetGLocal(cfg mbs.ConfigurationType) [][]float64 {
	return mat3ToRows(linalg.Identity3())
}

func (n *RigidBodyRotVec) fullJacobian(rotBlock [][]float64) [][]float64 {
	out := linalg.MatAlloc(3, 6)
	out[0][0], out[1][1], out[2][2] = 1, 1, 1
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][3+j] = rotBlock[i][j]
		}
	}
	return out
}

func (n *RigidBodyRotVec) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return n.fullJacobian(linalg.MatAlloc(3, 3))
}

func (n *RigidBodyRotVec) GetRotationJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return n.fullJacobian(mat3ToRows(n.GetRotationMatrix(cfg)))
}

// GetGTv_q computes d(Gᵀv)/dq for the rotation vector via the central-
// difference fallback (spec §4.2: "via auto-differentiation for
// rotation-vector"), evaluated about the committed Data rotation vector.
func (n *RigidBodyRotVec) GetGTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	r := n.rotVec(cfg)
	f := func(q []float64) []float64 {
		rv := rotation.RotationVector{q[0], q[1], q[2]}
		gtv := rv.Exp().T().MulVec(v)
		return gtv[:]
	}
	block := rotation.GTvQNumerical([]float64{r[0], r[1], r[2]}, f, 1e-6)
	out := linalg.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3+i][3+j] = block[i][j]
		}
	}
	return out
}

// GetGLocalTv_q is zero: GLocal=I is independent of q (mirrors the
// source's CNodeRigidBodyRotVecDataLG::GetGlocalTv_q).
func (n *RigidBodyRotVec) GetGLocalTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(6, 6)
}

// CommitRotation advances the committed rotation vector by one step's
// worth of body-fixed angular velocity, using the left-translation
// composition rule spec §4.2 mandates: θ ← log(exp(θ0)·exp(ω̄·dt)). The
// solver calls this once per accepted step (spec §4.7
// PostDiscontinuousIterationStep / commit phase), not during Newton
// iterations, since the update is not part of the smooth ODE2 residual.
func (n *RigidBodyRotVec) CommitRotation(dt float64) {
	theta0 := n.rotVec(mbs.ConfigStartOfStep)
	omega := n.omegaLocal(mbs.ConfigCurrent)
	dtheta := rotation.RotationVector(omega.Scale(dt))
	updated := rotation.ComposeLeft(theta0, dtheta)
	d := n.dataCoords(mbs.ConfigCurrent)
	d[0], d[1], d[2] = updated[0], updated[1], updated[2]
}

var _ mbs.RigidBodyNode = (*RigidBodyRotVec)(nil)
