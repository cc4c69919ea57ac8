// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// Point is a plain translational node: 3 ODE2 coordinates (spec §3 Point).
type Point struct {
	base
	ReferencePosition linalg.Vec3
}

// NewPoint allocates a Point node at the given reference position.
func NewPoint(referencePosition linalg.Vec3) *Point {
	p := &Point{ReferencePosition: referencePosition}
	p.kind = mbs.NodeTypePosition
	p.nODE2 = 3
	return p
}

func (p *Point) GetPosition(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return p.ReferencePosition
	}
	return p.ReferencePosition.Add(vec3FromSlice(p.ode2(cfg), 0))
}

func (p *Point) GetVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(p.ode2Vel(cfg), 0)
}

func (p *Point) GetAcceleration(cfg mbs.ConfigurationType) linalg.Vec3 {
	if cfg == mbs.ConfigReference {
		return linalg.Vec3{}
	}
	return vec3FromSlice(p.ode2Acc(cfg), 0)
}

var _ mbs.PositionNode = (*Point)(nil)

// PointGround is a Point with no coordinates at all: a fixed reference
// frame (spec §3 PointGround).
type PointGround struct {
	base
	Position linalg.Vec3
}

// NewPointGround allocates a PointGround node at a fixed position.
func NewPointGround(position linalg.Vec3) *PointGround {
	g := &PointGround{Position: position}
	g.kind = mbs.NodeTypePosition
	return g
}

func (g *PointGround) GetPosition(cfg mbs.ConfigurationType) linalg.Vec3     { return g.Position }
func (g *PointGround) GetVelocity(cfg mbs.ConfigurationType) linalg.Vec3     { return linalg.Vec3{} }
func (g *PointGround) GetAcceleration(cfg mbs.ConfigurationType) linalg.Vec3 { return linalg.Vec3{} }

var _ mbs.PositionNode = (*PointGround)(nil)

// RigidGround is PointGround's rotation-carrying counterpart: a
// zero-coordinate fixed frame with a constant orientation, letting
// JointGeneric (and any other connector that reads Orientation off both
// its markers) anchor one side to an immovable frame without inventing a
// ground-special-cased marker path (spec §3 PointGround, generalized to
// rigid anchors).
type RigidGround struct {
	base
	Position    linalg.Vec3
	Orientation linalg.Mat3
}

// NewRigidGround allocates a RigidGround node at a fixed pose.
func NewRigidGround(position linalg.Vec3, orientation linalg.Mat3) *RigidGround {
	g := &RigidGround{Position: position, Orientation: orientation}
	g.kind = mbs.NodeTypeRigidBody
	return g
}

func (g *RigidGround) GetPosition(cfg mbs.ConfigurationType) linalg.Vec3     { return g.Position }
func (g *RigidGround) GetVelocity(cfg mbs.ConfigurationType) linalg.Vec3     { return linalg.Vec3{} }
func (g *RigidGround) GetAcceleration(cfg mbs.ConfigurationType) linalg.Vec3 { return linalg.Vec3{} }
func (g *RigidGround) GetRotationMatrix(cfg mbs.ConfigurationType) linalg.Mat3 { return g.Orientation }
func (g *RigidGround) GetAngularVelocity(cfg mbs.ConfigurationType) linalg.Vec3 {
	return linalg.Vec3{}
}
func (g *RigidGround) GetAngularVelocityLocal(cfg mbs.ConfigurationType) linalg.Vec3 {
	return linalg.Vec3{}
}
func (g *RigidGround) NumRotationCoordinates() int { return 0 }
func (g *RigidGround) GetG(cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(3, 0)
}
func (g *RigidGround) GetGLocal(cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(3, 0)
}
func (g *RigidGround) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(3, 0)
}
func (g *RigidGround) GetRotationJacobian(cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(3, 0)
}
func (g *RigidGround) GetGTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(0, 0)
}
func (g *RigidGround) GetGLocalTv_q(v linalg.Vec3, cfg mbs.ConfigurationType) [][]float64 {
	return linalg.MatAlloc(0, 0)
}

var _ mbs.RigidBodyNode = (*RigidGround)(nil)
