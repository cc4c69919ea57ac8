// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package connector implements the Connector and Constraint objects of
// spec §3/§4.5: penalty force elements (spring-dampers) and algebraic
// constraints (joints, contacts), all written against mbs.MarkerData so
// they never special-case a node's rotation parameterization.
package connector

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// CartesianSpringDamper applies independent spring-damper forces along
// the three world axes between two position markers (spec §4.5 penalty
// connector pseudocode).
type CartesianSpringDamper struct {
	Markers            [2]int
	Stiffness, Damping [3]float64
}

func (c *CartesianSpringDamper) Category() mbs.ObjectCategory { return mbs.ObjectConnector }
func (c *CartesianSpringDamper) MarkerNumbers() [2]int        { return c.Markers }

func (c *CartesianSpringDamper) ComputeODE2LHS(markerData [2]*mbs.MarkerData, t float64, out []float64) error {
	m0, m1 := markerData[0], markerData[1]
	d := m1.Position.Sub(m0.Position)
	dv := m1.Velocity.Sub(m0.Velocity)
	var f [3]float64
	for i := 0; i < 3; i++ {
		f[i] = c.Stiffness[i]*d[i] + c.Damping[i]*dv[i]
	}
	n0 := m0.NCoords()
	for j := 0; j < n0; j++ {
		var s float64
		for i := 0; i < 3; i++ {
			s -= m0.PositionJacobian[i][j] * f[i]
		}
		out[j] += s
	}
	n1 := m1.NCoords()
	off := n0
	for j := 0; j < n1; j++ {
		var s float64
		for i := 0; i < 3; i++ {
			s += m1.PositionJacobian[i][j] * f[i]
		}
		out[off+j] += s
	}
	return nil
}

var _ mbs.Connector = (*CartesianSpringDamper)(nil)

// RigidBodySpringDamper is CartesianSpringDamper's rigid-body analogue: it
// also penalizes relative orientation error, measured via the rotation
// vector of R0ᵀR1 (spec §4.5, §12 supplemented feature).
type RigidBodySpringDamper struct {
	Markers                        [2]int
	Stiffness, Damping             [3]float64
	RotationStiffness, RotationDamping [3]float64
}

func (c *RigidBodySpringDamper) Category() mbs.ObjectCategory { return mbs.ObjectConnector }
func (c *RigidBodySpringDamper) MarkerNumbers() [2]int        { return c.Markers }

func (c *RigidBodySpringDamper) ComputeODE2LHS(markerData [2]*mbs.MarkerData, t float64, out []float64) error {
	m0, m1 := markerData[0], markerData[1]
	d := m1.Position.Sub(m0.Position)
	dv := m1.Velocity.Sub(m0.Velocity)
	relR := m0.Orientation.T().Mul(m1.Orientation)
	theta := linalg.Vec3(rotation.Log(relR))
	domega := m1.AngularVelocityLocal.Sub(m0.AngularVelocityLocal)
	var f, torque [3]float64
	for i := 0; i < 3; i++ {
		f[i] = c.Stiffness[i]*d[i] + c.Damping[i]*dv[i]
		torque[i] = c.RotationStiffness[i]*theta[i] + c.RotationDamping[i]*domega[i]
	}
	n0 := m0.NCoords()
	for j := 0; j < n0; j++ {
		var s float64
		for i := 0; i < 3; i++ {
			s -= m0.PositionJacobian[i][j]*f[i] + m0.RotationJacobian[i][j]*torque[i]
		}
		out[j] += s
	}
	n1 := m1.NCoords()
	off := n0
	for j := 0; j < n1; j++ {
		var s float64
		for i := 0; i < 3; i++ {
			s += m1.PositionJacobian[i][j]*f[i] + m1.RotationJacobian[i][j]*torque[i]
		}
		out[off+j] += s
	}
	return nil
}

var _ mbs.Connector = (*RigidBodySpringDamper)(nil)
