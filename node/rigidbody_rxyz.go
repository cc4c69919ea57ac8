// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// RigidBodyRxyz is the Tait-Bryan (Rxyz) rigid-body node: 3 translational
// + 3 rotation ODE2 coordinates, no AE row (spec §3). As with RigidBodyEP,
// the three rotation coordinates hold the total Rxyz angles directly.
type RigidBodyRxyz struct {
	base
	ReferencePosition linalg.Vec3
	ReferenceAngles   rotation.RotXYZ
}

// NewRigidBodyRxyz allocates a RigidBodyRxyz node.
func NewRigidBodyRxyz(referencePosition linalg.Vec3, referenceAngles rotation.RotXYZ) *RigidBodyRxyz {
	n := &RigidBodyRxyz{ReferencePosition: referencePosition, ReferenceAngles: referenceAngles}
	n.kind = mbs.NodeTypeRigidBody | mbs.NodeTypeRotationRxyz
	n.nODE2 = 6
	return n
}

func (n *RigidBodyRxyz) NumRotationCoordinates() int { return 3 }

func (n *RigidBodyRxyz) angles(cfg mbs.ConfigurationType) rotation.RotXYZ {
	if cfg == mbs.ConfigReference {
		return n.ReferenceAngles
	}
	s := n.ode2(cfg)
	return rotation.RotXYZ{s[3], s[4], s[5]}
}

func (n *RigidBodyRxyz) anglesDot(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Vel(cfg), 3)
}

func (n *RigidBodyRxyz) GetPosition(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return n.ReferencePosition
	}
	return n.ReferencePosition.Add(vec3FromSlice(n.ode2(cfg), 0))
}

func (n *RigidBodyRxyz) GetVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Vel(cfg), 0)
}

func (n *RigidBodyRxyz) GetAcceleration(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(n.ode2Acc(cfg), 0)
}

func (n *RigidBodyRxyz) GetRotationMatrix(cfg mbs.ConfigurationType) linalg.Mat3 {
	return n.angles(cfg).RotationMatrix()
}

func (n *RigidBodyRxyz) GetAngularVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	return n.angles(cfg).AngularVelocity(n.anglesDot(cfg))
}

func (n *RigidBodyRxyz) GetAngularVelocityLocal(cfg mbs.ConfigurationType) linalg.Vec3 {
	return n.angles(cfg).AngularVelocityLocal(n.anglesDot(cfg))
}

func mat3ToRows(m linalg.Mat3) [][]float64 {
	out := linalg.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j]
		}
	}
	return out
}

func (n *RigidBodyRxyz) GetG(cfg mbs.ConfigurationType) [][]float64 {
	return mat3ToRows(n.angles(cfg).G())
}

func (n *RigidBodyRxyz) GetGLocal(cfg mbs.ConfigurationType) [][]float64 {
	return mat3ToRows(n.angles(cfg).GLocal())
}

func (n *RigidBodyRxyz) fullJacobian(rotBlock [][]float64) [][]float64 {
	out := linalg.MatAlloc(3, 6)
	out[0][0], out[1][1], out[2][2] = 1, 1, 1
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][3+j] = rotBlock[i][j]
		}
	}
	return out
}

func (n *RigidBodyRxyz) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return n.fullJacobian(linalg.MatAlloc(3, 3))
}

func (n *RigidBodyRxyz) GetRotationJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return n.fullJacobian(mat3ToRows(n.angles(cfg).G()))
}

// GetGTv_q / GetGLocalTv_q: no closed form is wired for Rxyz (the source
// keeps these analytical only for EP, per spec §4.2); we fall back to the
// same numerical central-difference path used for the rotation-vector
// node, via rotation.GTvQNumerical, evaluated on the 3 rotation
// coordinates only (rows/cols 3..5 of the 6x6 full block, zero elsewhere).
func (n *RigidBodyRxyz) GetGTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return n.numericalGTv_q(v, cfg, false)
}

func (n *RigidBodyRxyz) GetGLocalTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return n.numericalGTv_q(v, cfg, true)
}

func (n *RigidBodyRxyz) numericalGTv_q(v linalg.Vec3, cfg mbs.ConfigurationType, local bool) [][]float64 {
	a := n.angles(cfg)
	f := func(q []float64) []float64 {
		r := rotation.RotXYZ{q[0], q[1], q[2]}
		var G linalg.Mat3
		if local {
			G = r.GLocal()
		} else {
			G = r.G()
		}
		gtv := G.T().MulVec(v)
		return gtv[:]
	}
	block := rotation.GTvQNumerical([]float64{a[0], a[1], a[2]}, f, 1e-6)
	out := linalg.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3+i][3+j] = block[i][j]
		}
	}
	return out
}

var _ mbs.RigidBodyNode = (*RigidBodyRxyz)(nil)
