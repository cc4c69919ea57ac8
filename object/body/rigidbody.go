// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package body implements the Body objects of spec §3/§4.4: single-noded
// rigid bodies and mass points, ground, ANCF cable elements, a two-node
// geometrically exact beam and a kinematic tree. Each supplies a mass matrix and internal-force/quadratic-velocity
// residual contribution, plus the local-point position/velocity access
// functions markers read through.
package body

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// RigidBody is a single-noded rigid body: constant mass, constant
// body-fixed inertia tensor, carried by one mbs.RigidBodyNode (spec §3,
// §4.4 "Body: M(q)... constant for rigid bodies").
type RigidBody struct {
	Node mbs.RigidBodyNode
	Mass float64
	// InertiaLocal is the body-fixed inertia tensor about the node's
	// reference point (spec §4.4 quadratic-velocity term uses it
	// directly, no parallel-axis correction, since markers attach
	// relative to the node, not a separate center of mass).
	InertiaLocal linalg.Mat3
}

func (b *RigidBody) Category() mbs.ObjectCategory   { return mbs.ObjectBody }
func (b *RigidBody) Capabilities() mbs.BodyCapability { return mbs.BodySingleNoded }
func (b *RigidBody) NumCoordinates() int            { return b.Node.NumODE2() }

// ComputeMassMatrix fills the 6x6 (translation + rotation-coordinate)
// block: M = diag(mI3, Gᵀ J_local G) (spec §4.4).
func (b *RigidBody) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error {
	n := b.Node.NumODE2()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		out[i][i] = b.Mass
	}
	GLocal := b.Node.GetGLocal(cfg) // 3 x nRot
	nRot := len(GLocal[0])
	JG := linalg.MatAlloc(3, nRot)
	for i := 0; i < 3; i++ {
		for j := 0; j < nRot; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += b.InertiaLocal[i][k] * GLocal[k][j]
			}
			JG[i][j] = s
		}
	}
	for i := 0; i < nRot; i++ {
		for j := 0; j < nRot; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += GLocal[k][i] * JG[k][j]
			}
			out[3+i][3+j] = s
		}
	}
	return nil
}

// ComputeODE2LHS adds the quadratic-velocity (gyroscopic) term
// -ω̄ × (J_local ω̄), expressed back through Gᵀ onto the rotation
// coordinates (spec §4.4: "internal force includes the Euler/gyroscopic
// term for rigid bodies").
func (b *RigidBody) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error {
	n := b.Node.NumODE2()
	for i := 0; i < n; i++ {
		out[i] = 0
	}
	omegaLocal := b.Node.GetAngularVelocityLocal(cfg)
	Jw := b.InertiaLocal.MulVec(omegaLocal)
	gyroscopic := omegaLocal.Cross(Jw)
	GLocal := b.Node.GetGLocal(cfg)
	nRot := len(GLocal[0])
	for j := 0; j < nRot; j++ {
		var s float64
		for k := 0; k < 3; k++ {
			s += GLocal[k][j] * gyroscopic[k]
		}
		out[3+j] = -s
	}
	return nil
}

func (b *RigidBody) GetPosition(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	pos, _ := mbs.ComposeLocalPosition(b.Node.GetPosition(cfg), b.Node.GetVelocity(cfg), b.Node.GetRotationMatrix(cfg), b.Node.GetAngularVelocity(cfg), localPosition)
	return pos
}

func (b *RigidBody) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	_, vel := mbs.ComposeLocalPosition(b.Node.GetPosition(cfg), b.Node.GetVelocity(cfg), b.Node.GetRotationMatrix(cfg), b.Node.GetAngularVelocity(cfg), localPosition)
	return vel
}

func (b *RigidBody) GetRotationMatrix(cfg mbs.ConfigurationType) linalg.Mat3 {
	return b.Node.GetRotationMatrix(cfg)
}

func (b *RigidBody) GetAngularVelocityLocal(cfg mbs.ConfigurationType) linalg.Vec3 {
	return b.Node.GetAngularVelocityLocal(cfg)
}

// GetPositionJacobian/GetRotationJacobian expose the carrying node's own
// Jacobians unchanged, used by package marker's BodyRigid/BodyMass to
// derive a local point's Jacobian (spec §4.2).
func (b *RigidBody) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return b.Node.GetPositionJacobian(cfg)
}

func (b *RigidBody) GetRotationJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return b.Node.GetRotationJacobian(cfg)
}

// Offset exposes the carrying node's global coordinate offset, used by
// package marker's body-attached marker kinds to locate their Jacobian
// columns in the global residual.
func (b *RigidBody) Offset(kind mbs.CoordinateKind) int { return b.Node.Offset(kind) }

func (b *RigidBody) TotalMass() float64 { return b.Mass }

func (b *RigidBody) CenterOfMass(cfg mbs.ConfigurationType) linalg.Vec3 {
	return b.Node.GetPosition(cfg)
}

var _ mbs.Body = (*RigidBody)(nil)

// MassPoint is a single-noded point mass, no rotational DOF (spec §3
// Body examples).
type MassPoint struct {
	Node mbs.PositionNode
	Mass float64
}

func (b *MassPoint) Category() mbs.ObjectCategory     { return mbs.ObjectBody }
func (b *MassPoint) Capabilities() mbs.BodyCapability { return mbs.BodySingleNoded }
func (b *MassPoint) NumCoordinates() int              { return b.Node.NumODE2() }

func (b *MassPoint) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error {
	n := b.Node.NumODE2()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = 0
		}
		out[i][i] = b.Mass
	}
	return nil
}

func (b *MassPoint) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error {
	n := b.Node.NumODE2()
	for i := 0; i < n; i++ {
		out[i] = 0
	}
	return nil
}

func (b *MassPoint) GetPosition(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	return b.Node.GetPosition(cfg).Add(localPosition)
}

func (b *MassPoint) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	return b.Node.GetVelocity(cfg)
}

func (b *MassPoint) Offset(kind mbs.CoordinateKind) int { return b.Node.Offset(kind) }

func (b *MassPoint) TotalMass() float64                                { return b.Mass }
func (b *MassPoint) CenterOfMass(cfg mbs.ConfigurationType) linalg.Vec3 { return b.Node.GetPosition(cfg) }

// GetPositionJacobian satisfies package marker's centerOfMassJacobianProvider:
// a point node's position equals its own ODE2 coordinates directly, so the
// Jacobian is the identity over its NumODE2 translational coordinates.
func (b *MassPoint) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	n := b.Node.NumODE2()
	jac := linalg.MatAlloc(3, n)
	for i := 0; i < 3 && i < n; i++ {
		jac[i][i] = 1
	}
	return jac
}

var _ mbs.Body = (*MassPoint)(nil)

// Ground is a zero-coordinate body: an immovable anchor (spec §3 Body
// examples — "Ground").
type Ground struct {
	Position linalg.Vec3
}

func (b *Ground) Category() mbs.ObjectCategory     { return mbs.ObjectBody }
func (b *Ground) Capabilities() mbs.BodyCapability { return mbs.BodyGround }
func (b *Ground) NumCoordinates() int              { return 0 }
func (b *Ground) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error { return nil }
func (b *Ground) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error      { return nil }
func (b *Ground) GetPosition(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	return b.Position.Add(localPosition)
}
func (b *Ground) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	return linalg.Vec3{}
}

var _ mbs.Body = (*Ground)(nil)
