// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbs

import "github.com/slyandsmart/EXUDYN-sub000/linalg"

// Node is the contract every coordinate-carrying node satisfies (spec §3
// Nodes, §4.2 Node Contracts). Concrete node types live in package node;
// this interface is what object/marker code is written against so adding a
// parameterization never requires touching caller code (spec §9).
type Node interface {
	Type() NodeType
	NumODE2() int
	NumODE1() int
	NumAE() int
	NumData() int

	// Offset returns the global coordinate offset this node was assigned
	// by AssembleCoordinates, one per coordinate kind.
	Offset(kind CoordinateKind) int
	SetOffset(kind CoordinateKind, offset int)
}

// PositionNode is satisfied by any node that can report a translational
// state (Point, and the translational part of every rigid-body node).
type PositionNode interface {
	Node
	GetPosition(cfg ConfigurationType) linalg.Vec3
	GetVelocity(cfg ConfigurationType) linalg.Vec3
	GetAcceleration(cfg ConfigurationType) linalg.Vec3
}

// RigidBodyNode is satisfied by every rigid-body node regardless of
// rotation parameterization (spec §4.2): bodies and markers call through
// these five primitives and never hard-code EP or rotation-vector specific
// logic.
type RigidBodyNode interface {
	PositionNode

	GetRotationMatrix(cfg ConfigurationType) linalg.Mat3
	GetAngularVelocity(cfg ConfigurationType) linalg.Vec3
	GetAngularVelocityLocal(cfg ConfigurationType) linalg.Vec3

	// NumRotationCoordinates returns the number of rotation ODE2/Data
	// coordinates (4 for EP, 3 for Rxyz and rotation-vector).
	NumRotationCoordinates() int

	// GetG / GetGLocal return the 3 x nRotCoord matrices mapping
	// rotation-coordinate velocities to world / body-fixed angular
	// velocity, evaluated at configuration cfg.
	GetG(cfg ConfigurationType) [][]float64
	GetGLocal(cfg ConfigurationType) [][]float64

	// GetPositionJacobian / GetRotationJacobian return ∂r/∂q̇_full and
	// ∂ω/∂q̇_full (world frame) for marker-level assembly, sized
	// 3 x nFullCoord where nFullCoord = 3 (translation) + nRotCoord.
	GetPositionJacobian(cfg ConfigurationType) [][]float64
	GetRotationJacobian(cfg ConfigurationType) [][]float64

	// GetGTv_q / GetGLocalTv_q return d(Gᵀv)/dq_rot and d(GLocalᵀv)/dq_rot
	// for a given world-frame vector v (spec §4.2), analytical for EP/Rxyz
	// and numerical (autodiff-style central difference) for rotation
	// vector nodes.
	GetGTv_q(v linalg.Vec3, cfg ConfigurationType) [][]float64
	GetGLocalTv_q(v linalg.Vec3, cfg ConfigurationType) [][]float64
}

// Marker materializes a MarkerData snapshot from the current (or a given)
// configuration on demand (spec §4.3).
type Marker interface {
	Type() MarkerType
	ComputeMarkerData(cfg ConfigurationType, computeJacobian bool) (*MarkerData, error)
	// HasCapability reports whether this marker can serve the given
	// connector requirement (invariant 2: "both markers... expose the
	// capability set required by the connector's declared marker type").
	HasCapability(want MarkerType) bool
}

// Body provides a mass matrix contribution, internal forces, and
// position/velocity access functions at a local point (spec §3 Objects —
// Body).
type Body interface {
	Category() ObjectCategory // always ObjectBody
	Capabilities() BodyCapability

	// NumCoordinates returns the number of ODE2 coordinates this body's
	// nodes contribute (used to size the local mass/residual blocks).
	NumCoordinates() int

	// ComputeMassMatrix fills the local (dense) mass matrix block.
	ComputeMassMatrix(cfg ConfigurationType, out [][]float64) error

	// ComputeODE2LHS adds this body's internal-force / quadratic-velocity
	// contribution into the local residual vector (spec §2: "residual of
	// second-order equations").
	ComputeODE2LHS(cfg ConfigurationType, out []float64) error

	// GetPosition/GetVelocity at a local point, used by BodyPosition /
	// BodyRigid markers.
	GetPosition(cfg ConfigurationType, localPosition linalg.Vec3) linalg.Vec3
	GetVelocity(cfg ConfigurationType, localPosition linalg.Vec3) linalg.Vec3
}

// Connector has markerNumbers pointing at two markers and computes forces
// (penalty) or algebraic equations (constraint) from MarkerData (spec §3
// Objects — Connector, §4.5).
type Connector interface {
	Category() ObjectCategory // ObjectConnector or ObjectConstraint
	MarkerNumbers() [2]int

	// ComputeODE2LHS computes the penalty force contribution (spec §4.5
	// penalty connector pseudocode). Constraint-only connectors may return
	// nil/no-op here.
	ComputeODE2LHS(markerData [2]*MarkerData, t float64, out []float64) error
}

// Constraint is the subset of Connector that contributes to the AE block
// (spec §3 Objects — Constraint, §4.5 constraint connector pseudocode).
type Constraint interface {
	Connector
	NumConstraintEquations() int
	ComputeAlgebraicEquations(markerData [2]*MarkerData, t float64, velocityLevel bool, out []float64) error
	// ComputeJacobianAE contributes rows of ∂g/∂q (jOde2), ∂g/∂q̇
	// (jOde2T) and ∂g/∂λ (jAE) — spec §4.5/§4.6.
	ComputeJacobianAE(markerData [2]*MarkerData, t float64, jOde2, jOde2T, jAE [][]float64) error
}

// PostNewtonStepper is satisfied by objects that participate in the
// discontinuous-iteration protocol (spec §4.7): contact, friction and
// state-dependent connectors.
type PostNewtonStepper interface {
	PostNewtonStep(markerData [2]*MarkerData, t float64) (discontinuousError float64, updateJacobian bool, recommendedStepSize float64, err error)
	PostDiscontinuousIterationStep() error
}

// Load is a scalar or vector forcing term applied through a marker (spec
// §3 Loads).
type Load interface {
	MarkerNumber() int
	Evaluate(t float64, markerData *MarkerData) (value []float64, err error)
}

// Sensor is a typed output-variable extractor (spec §3 Sensors, §6
// OutputVariableType).
type Sensor interface {
	OutputVariable() OutputVariableType
	Evaluate(t float64) ([]float64, error)
	WriteToFile() bool
	StoreInternal() bool
}
