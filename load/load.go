// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package load implements the Load objects of spec §3: forcing terms
// applied through a single marker. ForceVector and TorqueVector may scale
// their Value by a user function, and Coordinate may replace its Value by
// the user function's result (spec §6 User-function ABI); MassProportional
// takes no user function.
package load

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/userfunc"
)

// ForceVector applies a constant (or user-function-scaled) force vector
// in world coordinates at a position/rigid marker (spec §3 Loads).
type ForceVector struct {
	Name    string
	Marker  int
	Value   linalg.Vec3
	UserFn  userfunc.LoadFunc // scales Value's magnitude when non-nil
}

func (l *ForceVector) MarkerNumber() int { return l.Marker }

func (l *ForceVector) Evaluate(t float64, markerData *mbs.MarkerData) ([]float64, error) {
	scale := 1.0
	if l.UserFn != nil {
		v, err := userfunc.CallLoad(l.Name, l.UserFn, t, 1)
		if err != nil {
			return nil, err
		}
		scale = v
	}
	return []float64{l.Value[0] * scale, l.Value[1] * scale, l.Value[2] * scale}, nil
}

var _ mbs.Load = (*ForceVector)(nil)

// TorqueVector applies a constant (or user-function-scaled) torque in
// world coordinates at a rigid marker (spec §3 Loads).
type TorqueVector struct {
	Name   string
	Marker int
	Value  linalg.Vec3
	UserFn userfunc.LoadFunc
}

func (l *TorqueVector) MarkerNumber() int { return l.Marker }

func (l *TorqueVector) Evaluate(t float64, markerData *mbs.MarkerData) ([]float64, error) {
	scale := 1.0
	if l.UserFn != nil {
		v, err := userfunc.CallLoad(l.Name, l.UserFn, t, 1)
		if err != nil {
			return nil, err
		}
		scale = v
	}
	return []float64{l.Value[0] * scale, l.Value[1] * scale, l.Value[2] * scale}, nil
}

var _ mbs.Load = (*TorqueVector)(nil)

// Coordinate applies a scalar generalized force directly to a single
// coordinate marker (spec §3 Loads — "Coordinate").
type Coordinate struct {
	Name   string
	Marker int
	Value  float64
	UserFn userfunc.LoadFunc
}

func (l *Coordinate) MarkerNumber() int { return l.Marker }

func (l *Coordinate) Evaluate(t float64, markerData *mbs.MarkerData) ([]float64, error) {
	v := l.Value
	if l.UserFn != nil {
		var err error
		v, err = userfunc.CallLoad(l.Name, l.UserFn, t, l.Value)
		if err != nil {
			return nil, err
		}
	}
	return []float64{v}, nil
}

var _ mbs.Load = (*Coordinate)(nil)

// MassProportional applies a uniform acceleration field (e.g. gravity)
// scaled by the marker's reported total mass (spec §3 Loads —
// "MassProportional", attaches to a MarkerBodyMass).
type MassProportional struct {
	Marker       int
	Acceleration linalg.Vec3
}

func (l *MassProportional) MarkerNumber() int { return l.Marker }

func (l *MassProportional) Evaluate(t float64, markerData *mbs.MarkerData) ([]float64, error) {
	mass := 0.0
	if len(markerData.VectorValue) > 0 {
		mass = markerData.VectorValue[0]
	}
	return []float64{l.Acceleration[0] * mass, l.Acceleration[1] * mass, l.Acceleration[2] * mass}, nil
}

var _ mbs.Load = (*MassProportional)(nil)
