// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "github.com/slyandsmart/EXUDYN-sub000/mbs"

// Output adapts any node to package sensor's NodeSource interface (spec
// §3 Sensors reading a node's position/velocity/rotation/coordinates),
// the way the teacher's out package picks an output quantity off a
// solution vector by a typed key rather than one accessor method per
// quantity.
type Output struct {
	Node mbs.Node
}

func vec3Slice(v [3]float64) []float64 { return []float64{v[0], v[1], v[2]} }

// Evaluate extracts outputVariable from o.Node at cfg. Position/velocity/
// acceleration/rotation/angular-velocity variables require o.Node to
// implement mbs.PositionNode (and mbs.RigidBodyNode for the rotation
// ones); Coordinates variables read the raw ODE2/ODE1/Data slice through
// whichever accessor methods the concrete node type exposes.
func (o *Output) Evaluate(outputVariable mbs.OutputVariableType, cfg mbs.ConfigurationType) ([]float64, error) {
	switch outputVariable {
	case mbs.OVPosition:
		if p, ok := o.Node.(mbs.PositionNode); ok {
			return vec3Slice(p.GetPosition(cfg)), nil
		}
	case mbs.OVDisplacement:
		if p, ok := o.Node.(mbs.PositionNode); ok {
			return vec3Slice(p.GetPosition(cfg).Sub(p.GetPosition(mbs.ConfigReference))), nil
		}
	case mbs.OVVelocity:
		if p, ok := o.Node.(mbs.PositionNode); ok {
			return vec3Slice(p.GetVelocity(cfg)), nil
		}
	case mbs.OVAcceleration:
		if p, ok := o.Node.(mbs.PositionNode); ok {
			return vec3Slice(p.GetAcceleration(cfg)), nil
		}
	case mbs.OVRotationMatrix:
		if r, ok := o.Node.(mbs.RigidBodyNode); ok {
			m := r.GetRotationMatrix(cfg)
			return []float64{m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2], m[2][0], m[2][1], m[2][2]}, nil
		}
	case mbs.OVAngularVelocity:
		if r, ok := o.Node.(mbs.RigidBodyNode); ok {
			return vec3Slice(r.GetAngularVelocity(cfg)), nil
		}
	case mbs.OVAngularVelocityLocal:
		if r, ok := o.Node.(mbs.RigidBodyNode); ok {
			return vec3Slice(r.GetAngularVelocityLocal(cfg)), nil
		}
	case mbs.OVCoordinates:
		return append([]float64(nil), coordinateSlice(o.Node, cfg)...), nil
	}
	return nil, mbs.NewError(mbs.ErrParameterDomain, "", "outputVariable",
		"node of type %v cannot report output variable %v", o.Node.Type(), outputVariable)
}

// coordinateSlice returns the node's own coordinate block through its
// Coordinates(cfg) method (ODE2 for GenericODE2, ODE1 for GenericODE1,
// Data for GenericData); a node without that method yields nil.
func coordinateSlice(n mbs.Node, cfg mbs.ConfigurationType) []float64 {
	if c, ok := n.(interface {
		Coordinates(mbs.ConfigurationType) []float64
	}); ok {
		return c.Coordinates(cfg)
	}
	return nil
}

var _ interface {
	Evaluate(mbs.OutputVariableType, mbs.ConfigurationType) ([]float64, error)
} = (*Output)(nil)
