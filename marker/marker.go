// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package marker implements the nine marker kinds of spec §3: the sole
// abstraction connectors are written against. A marker binds a node,
// body, or kinematic-tree link index (plus, where relevant, a local
// offset or coordinate index) and materializes a mbs.MarkerData snapshot
// on demand.
package marker

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// NodePosition attaches to any mbs.PositionNode (spec §3 MarkerNodePosition).
type NodePosition struct {
	Node mbs.PositionNode
}

// GlobalOffset returns the global ODE2 column this marker's Jacobians
// start at (package system uses this to scatter connector/load
// contributions into the global residual).
func (m *NodePosition) GlobalOffset() int { return m.Node.Offset(mbs.ODE2) }

func (m *NodePosition) Type() mbs.MarkerType { return mbs.MarkerNodePosition }

func (m *NodePosition) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerNodePosition || want == mbs.MarkerNodeCoordinate
}

func (m *NodePosition) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	md := &mbs.MarkerData{
		Position:          m.Node.GetPosition(cfg),
		Velocity:          m.Node.GetVelocity(cfg),
		VelocityAvailable: true,
	}
	if computeJacobian {
		n := m.Node.NumODE2()
		J := linalg.MatAlloc(3, n)
		for i := 0; i < 3 && i < n; i++ {
			J[i][i] = 1
		}
		md.PositionJacobian = J
	}
	return md, nil
}

// NodeRigid attaches to any mbs.RigidBodyNode, exposing both position and
// orientation (spec §3 MarkerNodeRigid).
type NodeRigid struct {
	Node mbs.RigidBodyNode
}

func (m *NodeRigid) GlobalOffset() int { return m.Node.Offset(mbs.ODE2) }

func (m *NodeRigid) Type() mbs.MarkerType { return mbs.MarkerNodeRigid }

func (m *NodeRigid) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerNodeRigid || want == mbs.MarkerNodePosition || want == mbs.MarkerNodeCoordinate
}

func (m *NodeRigid) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	md := &mbs.MarkerData{
		Position:             m.Node.GetPosition(cfg),
		Velocity:             m.Node.GetVelocity(cfg),
		VelocityAvailable:    true,
		Orientation:          m.Node.GetRotationMatrix(cfg),
		AngularVelocityLocal: m.Node.GetAngularVelocityLocal(cfg),
	}
	if computeJacobian {
		md.PositionJacobian = m.Node.GetPositionJacobian(cfg)
		md.RotationJacobian = m.Node.GetRotationJacobian(cfg)
	}
	return md, nil
}

// NodeCoordinate picks a single coordinate out of a node (spec §3
// MarkerNodeCoordinate): used by CoordinateConstraint/CoordinateSpring and
// by loads applied to a single generalized coordinate.
type NodeCoordinate struct {
	Node       mbs.Node
	Coordinate int // local index within the node's ODE2 (or Data) range
	Kind       mbs.CoordinateKind
	Accessor   CoordinateAccessor
}

// CoordinateAccessor reads a node's scalar coordinate value and velocity
// at a given local index; node.go-level node types implement it
// implicitly via small adapter closures constructed by the caller (no
// interface is forced onto package node, keeping it free of marker
// concerns).
type CoordinateAccessor interface {
	Value(cfg mbs.ConfigurationType, local int) float64
	ValueT(cfg mbs.ConfigurationType, local int) float64
}

func (m *NodeCoordinate) GlobalOffset() int { return m.Node.Offset(m.Kind) }

func (m *NodeCoordinate) Type() mbs.MarkerType { return mbs.MarkerNodeCoordinate }
func (m *NodeCoordinate) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerNodeCoordinate
}

func (m *NodeCoordinate) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	md := &mbs.MarkerData{
		VectorValue:       []float64{m.Accessor.Value(cfg, m.Coordinate)},
		VectorValueT:      []float64{m.Accessor.ValueT(cfg, m.Coordinate)},
		VelocityAvailable: m.Kind != mbs.Data,
	}
	if computeJacobian {
		n := m.Node.NumODE2()
		if m.Kind == mbs.Data {
			n = m.Node.NumData()
		}
		J := linalg.MatAlloc(1, n)
		if m.Coordinate < n {
			J[0][m.Coordinate] = 1
		}
		md.Jacobian = J
	}
	return md, nil
}

// BodyPosition attaches to a body at a local point, without orientation
// (spec §3 MarkerBodyPosition).
type BodyPosition struct {
	Body          mbs.Body
	LocalPosition linalg.Vec3
}

// bodyOffset extracts the owning node's global ODE2 offset from a body
// that exposes one (every concrete package object/body type does, via
// its single carrying node), falling back to 0 for zero-coordinate
// bodies like Ground.
func bodyOffset(b interface{}) int {
	if op, ok := b.(interface{ Offset(mbs.CoordinateKind) int }); ok {
		return op.Offset(mbs.ODE2)
	}
	return 0
}

func (m *BodyPosition) Type() mbs.MarkerType { return mbs.MarkerBodyPosition }
func (m *BodyPosition) GlobalOffset() int    { return bodyOffset(m.Body) }
func (m *BodyPosition) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerBodyPosition
}

func (m *BodyPosition) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	md := &mbs.MarkerData{
		Position:          m.Body.GetPosition(cfg, m.LocalPosition),
		Velocity:          m.Body.GetVelocity(cfg, m.LocalPosition),
		VelocityAvailable: true,
	}
	if computeJacobian {
		if rp, ok := m.Body.(RigidBodyProvider); ok {
			md.PositionJacobian, _ = localPointJacobians(rp.GetRotationMatrix(cfg), m.LocalPosition, rp.GetPositionJacobian(cfg), rp.GetRotationJacobian(cfg))
		} else if tp, ok := m.Body.(centerOfMassJacobianProvider); ok {
			md.PositionJacobian = tp.GetPositionJacobian(cfg)
		}
	}
	return md, nil
}

// BodyRigid attaches to a rigid body at a local point, carrying
// orientation too (spec §3 MarkerBodyRigid); RigidBodyProvider lets body
// implementations opt into the richer marker without forcing every Body
// to carry rotation state (e.g. MassPoint has none). GetPositionJacobian/
// GetRotationJacobian are the owning node's own full Jacobians (spec
// §4.2's RigidBodyNode contract), from which ComputeMarkerData derives
// the local-point-adjusted Jacobian a connector/load needs to scatter a
// force into the global residual.
type RigidBodyProvider interface {
	mbs.Body
	GetRotationMatrix(cfg mbs.ConfigurationType) linalg.Mat3
	GetAngularVelocityLocal(cfg mbs.ConfigurationType) linalg.Vec3
	GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64
	GetRotationJacobian(cfg mbs.ConfigurationType) [][]float64
}

type BodyRigid struct {
	Body          RigidBodyProvider
	LocalPosition linalg.Vec3
}

func (m *BodyRigid) Type() mbs.MarkerType { return mbs.MarkerBodyRigid }
func (m *BodyRigid) GlobalOffset() int    { return bodyOffset(m.Body) }
func (m *BodyRigid) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerBodyRigid || want == mbs.MarkerBodyPosition
}

// localPointJacobians computes the position/rotation Jacobians of a point
// offset by localPosition from a rigid node's own reference point: d(r +
// R*p)/dq̇ = nodePosJac - skew(R*p)·nodeRotJac (translation columns
// unchanged, rotation columns shifted by the moment arm), while the
// rotation Jacobian is unchanged (every point on a rigid body shares its
// orientation).
func localPointJacobians(R linalg.Mat3, localPosition linalg.Vec3, nodePosJac, nodeRotJac [][]float64) (posJac, rotJac [][]float64) {
	n := len(nodePosJac[0])
	rp := R.MulVec(localPosition)
	S := linalg.Skew(rp)
	posJac = linalg.MatAlloc(3, n)
	for i := 0; i < 3; i++ {
		for k := 0; k < n; k++ {
			var cross float64
			for j := 0; j < 3; j++ {
				cross += S[i][j] * nodeRotJac[j][k]
			}
			posJac[i][k] = nodePosJac[i][k] - cross
		}
	}
	return posJac, nodeRotJac
}

func (m *BodyRigid) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	R := m.Body.GetRotationMatrix(cfg)
	md := &mbs.MarkerData{
		Position:             m.Body.GetPosition(cfg, m.LocalPosition),
		Velocity:             m.Body.GetVelocity(cfg, m.LocalPosition),
		VelocityAvailable:    true,
		Orientation:          R,
		AngularVelocityLocal: m.Body.GetAngularVelocityLocal(cfg),
	}
	if computeJacobian {
		md.PositionJacobian, md.RotationJacobian = localPointJacobians(R, m.LocalPosition, m.Body.GetPositionJacobian(cfg), m.Body.GetRotationJacobian(cfg))
	}
	return md, nil
}

// BodyMass reports only the body's total mass and center of mass, used by
// MassProportional loads (spec §3 MarkerBodyMass).
type MassProvider interface {
	TotalMass() float64
	CenterOfMass(cfg mbs.ConfigurationType) linalg.Vec3
}

type BodyMass struct {
	Body MassProvider
}

func (m *BodyMass) GlobalOffset() int                      { return bodyOffset(m.Body) }
func (m *BodyMass) Type() mbs.MarkerType                   { return mbs.MarkerBodyMass }
func (m *BodyMass) HasCapability(want mbs.MarkerType) bool { return want == mbs.MarkerBodyMass }

// centerOfMassJacobianProvider is satisfied by every concrete Body type
// whose center of mass coincides with its carrying node's own reference
// point (RigidBody, MassPoint): the node's own position Jacobian is then
// exactly the center of mass's Jacobian, no local-point correction
// needed (unlike BodyRigid's offset point).
type centerOfMassJacobianProvider interface {
	GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64
}

func (m *BodyMass) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	md := &mbs.MarkerData{
		Position:          m.Body.CenterOfMass(cfg),
		VectorValue:       []float64{m.Body.TotalMass()},
		VelocityAvailable: false,
	}
	if computeJacobian {
		if jp, ok := m.Body.(centerOfMassJacobianProvider); ok {
			md.PositionJacobian = jp.GetPositionJacobian(cfg)
		}
	}
	return md, nil
}

// Cable2DShapeProvider is implemented by 2D cable/ANCF bodies to expose a
// material-coordinate position/slope evaluation (spec §3
// MarkerBodyCable2DShape).
type Cable2DShapeProvider interface {
	EvaluateAt(cfg mbs.ConfigurationType, s float64) (pos, slope linalg.Vec3)
	EvaluateAtVelocity(cfg mbs.ConfigurationType, s float64) (vel linalg.Vec3)
}

type BodyCable2DShape struct {
	Body               Cable2DShapeProvider
	MaterialCoordinate float64
}

func (m *BodyCable2DShape) GlobalOffset() int    { return bodyOffset(m.Body) }
func (m *BodyCable2DShape) Type() mbs.MarkerType { return mbs.MarkerBodyCable2DShape }
func (m *BodyCable2DShape) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerBodyCable2DShape
}

func (m *BodyCable2DShape) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	pos, slope := m.Body.EvaluateAt(cfg, m.MaterialCoordinate)
	vel := m.Body.EvaluateAtVelocity(cfg, m.MaterialCoordinate)
	return &mbs.MarkerData{
		Position:          pos,
		Velocity:          vel,
		VelocityAvailable: true,
		Orientation:       linalg.Mat3{{slope[0], 0, 0}, {slope[1], 0, 0}, {slope[2], 0, 0}},
	}, nil
}

// Cable2DCoordinatesProvider exposes a cable body's raw ANCF slope-vector
// coordinates for contact/friction connectors that need the full nodal
// coordinate set rather than a single evaluated point (spec §3
// MarkerBodyCable2DCoordinates).
type Cable2DCoordinatesProvider interface {
	NodalCoordinates(cfg mbs.ConfigurationType) []float64
}

type BodyCable2DCoordinates struct {
	Body Cable2DCoordinatesProvider
}

func (m *BodyCable2DCoordinates) GlobalOffset() int    { return bodyOffset(m.Body) }
func (m *BodyCable2DCoordinates) Type() mbs.MarkerType { return mbs.MarkerBodyCable2DCoordinates }
func (m *BodyCable2DCoordinates) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerBodyCable2DCoordinates
}

func (m *BodyCable2DCoordinates) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	return &mbs.MarkerData{VectorValue: m.Body.NodalCoordinates(cfg), VelocityAvailable: false}, nil
}

// KinematicTreeLink attaches to one link (by index) of a KinematicTree
// body, exposing that link's position/orientation at a local offset (spec
// §3 MarkerKinematicTreeLink).
type LinkFrameProvider interface {
	LinkPosition(cfg mbs.ConfigurationType, link int, localPosition linalg.Vec3) linalg.Vec3
	LinkVelocity(cfg mbs.ConfigurationType, link int, localPosition linalg.Vec3) linalg.Vec3
	LinkRotationMatrix(cfg mbs.ConfigurationType, link int) linalg.Mat3
	LinkAngularVelocityLocal(cfg mbs.ConfigurationType, link int) linalg.Vec3
}

type KinematicTreeLink struct {
	Tree          LinkFrameProvider
	Link          int
	LocalPosition linalg.Vec3
}

func (m *KinematicTreeLink) GlobalOffset() int    { return bodyOffset(m.Tree) }
func (m *KinematicTreeLink) Type() mbs.MarkerType { return mbs.MarkerKinematicTreeLink }
func (m *KinematicTreeLink) HasCapability(want mbs.MarkerType) bool {
	return want == mbs.MarkerKinematicTreeLink
}

func (m *KinematicTreeLink) ComputeMarkerData(cfg mbs.ConfigurationType, computeJacobian bool) (*mbs.MarkerData, error) {
	return &mbs.MarkerData{
		Position:             m.Tree.LinkPosition(cfg, m.Link, m.LocalPosition),
		Velocity:             m.Tree.LinkVelocity(cfg, m.Link, m.LocalPosition),
		VelocityAvailable:    true,
		Orientation:          m.Tree.LinkRotationMatrix(cfg, m.Link),
		AngularVelocityLocal: m.Tree.LinkAngularVelocityLocal(cfg, m.Link),
	}, nil
}

var (
	_ mbs.Marker = (*NodePosition)(nil)
	_ mbs.Marker = (*NodeRigid)(nil)
	_ mbs.Marker = (*NodeCoordinate)(nil)
	_ mbs.Marker = (*BodyPosition)(nil)
	_ mbs.Marker = (*BodyRigid)(nil)
	_ mbs.Marker = (*BodyMass)(nil)
	_ mbs.Marker = (*BodyCable2DShape)(nil)
	_ mbs.Marker = (*BodyCable2DCoordinates)(nil)
	_ mbs.Marker = (*KinematicTreeLink)(nil)
)
