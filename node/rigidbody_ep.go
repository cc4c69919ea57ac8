// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// RigidBodyEP is the Euler-parameter rigid-body node: 3 translational
// ODE2 + 4 Euler-parameter ODE2 + 1 AE row enforcing eᵀe-1=0 (spec §3).
//
// Simplification (recorded in DESIGN.md): the four rotation ODE2
// coordinates hold the node's *total* Euler parameters directly rather
// than an increment relative to a separately-stored reference rotation.
// Unlike Rxyz or the Lie-group rotation vector, Euler parameters have no
// singularity and compose additively under normalization, so storing the
// absolute orientation loses nothing; ReferenceRotation only seeds the
// Reference/Initial configurations at assembly time.
type RigidBodyEP struct {
	base
	ReferencePosition linalg.Vec3
	ReferenceRotation rotation.EulerParameters
}

// NewRigidBodyEP allocates a RigidBodyEP node.
func NewRigidBodyEP(referencePosition linalg.Vec3, referenceRotation rotation.EulerParameters) *RigidBodyEP {
	n := &RigidBodyEP{ReferencePosition: referencePosition, ReferenceRotation: referenceRotation}
	n.kind = mbs.NodeTypeRigidBody | mbs.NodeTypeRotationEulerParameters
	n.nODE2 = 7
	n.nAE = 1
	return n
}

func (n *RigidBodyEP) NumRotationCoordinates() int { return 4 }

func (n *RigidBodyEP) ep(cfg mbs.ConfigurationType) rotation.EulerParameters {
	if cfg == mbs.ConfigReference {
		return n.ReferenceRotation
	}
	s := n.ode2(cfg)
	return rotation.EulerParameters{s[3], s[4], s[5], s[6]}
}

func (n *RigidBodyEP) epDot(cfg mbs.ConfigurationType) [4]float64 {
	if cfg == mbs.ConfigReference {
		return [4]float64{}
	}
	s := n.ode2Vel(cfg)
	return [4]float64{s[3], s[4], s[5], s[6]}
}

func (n *RigidBodyEP) GetPosition(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return n.ReferencePosition
	}
	return n.ReferencePosition.Add(vec3FromSlice(n.ode2(cfg), 0))
}

func (n *RigidBodyEP) GetVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Vel(cfg), 0)
}

func (n *RigidBodyEP) GetAcceleration(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Acc(cfg), 0)
}

func (n *RigidBodyEP) GetRotationMatrix(cfg mbs.ConfigurationType) linalg.Mat3 {
	return n.ep(cfg).RotationMatrix()
}

func (n *RigidBodyEP) GetAngularVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	return n.ep(cfg).AngularVelocity(n.epDot(cfg))
}

func (n *RigidBodyEP) GetAngularVelocityLocal(cfg mbs.ConfigurationType) linalg.Vec3 {
	return n.ep(cfg).AngularVelocityLocal(n.epDot(cfg))
}

func mat34ToRows(g [3][4]float64) [][]float64 {
	out := linalg.MatAlloc(3, 4)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = 2 * g[i][j]
		}
	}
	return out
}

func (n *RigidBodyEP) GetG(cfg mbs.ConfigurationType) [][]float64      { return mat34ToRows(n.ep(cfg).G()) }
func (n *RigidBodyEP) GetGLocal(cfg mbs.ConfigurationType) [][]float64 { return mat34ToRows(n.ep(cfg).GLocal()) }

// fullJacobian builds the 3x7 [0 | rotBlock] access Jacobian shared by
// GetPositionJacobian/GetRotationJacobian; the translation columns are
// left zero, and GetPositionJacobian sets its I3 block afterwards.
func (n *RigidBodyEP) fullJacobian(rotBlock [][]float64) [][]float64 {
	out := linalg.MatAlloc(3, 7)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			out[i][3+j] = rotBlock[i][j]
		}
	}
	return out
}

func (n *RigidBodyEP) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	out := n.fullJacobian(linalg.MatAlloc(3, 4))
	out[0][0], out[1][1], out[2][2] = 1, 1, 1
	return out
}

func (n *RigidBodyEP) GetRotationJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return n.fullJacobian(mat34ToRows(n.ep(cfg).G()))
}

func gtvqToFull(block [4][4]float64) [][]float64 {
	out := linalg.MatAlloc(7, 7)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[3+i][3+j] = block[i][j]
		}
	}
	return out
}

func (n *RigidBodyEP) GetGTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return gtvqToFull(n.ep(cfg).GTv_q(v))
}

func (n *RigidBodyEP) GetGLocalTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return gtvqToFull(n.ep(cfg).GLocalTv_q(v))
}

// NormalizationResidual returns g(e)=eᵀe-1, the AE row this node requests
// (spec §4.2).
func (n *RigidBodyEP) NormalizationResidual(cfg mbs.ConfigurationType) float64 {
	return n.ep(cfg).NormalizationResidual()
}

// NormalizationJacobianRow returns [0,0,0, 2e0,2e1,2e2,2e3] (spec §4.2,
// §4.6, tested by §8 property 2).
func (n *RigidBodyEP) NormalizationJacobianRow(cfg mbs.ConfigurationType) [7]float64 {
	j := n.ep(cfg).NormalizationJacobian()
	return [7]float64{0, 0, 0, j[0], j[1], j[2], j[3]}
}

var _ mbs.RigidBodyNode = (*RigidBodyEP)(nil)
