// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sensor implements the typed output-variable extractors of spec
// §3 Sensors / §6 OutputVariableType: each sensor kind reads one source
// (a node, an object, a marker, or a user function; there is no load
// sensor) at the current time and returns a flat []float64, optionally
// persisted by FileWriter as "time value[0] value[1] ..." lines.
package sensor

import "github.com/slyandsmart/EXUDYN-sub000/mbs"

// NodeSource is implemented by package node's types for the subset of
// output variables a node can report directly (position/velocity/
// acceleration/rotation/angular velocity/coordinates).
type NodeSource interface {
	Evaluate(outputVariable mbs.OutputVariableType, cfg mbs.ConfigurationType) ([]float64, error)
}

// Node samples a single node's output variable every step.
type Node struct {
	Source           NodeSource
	OutputVariable_  mbs.OutputVariableType
	WriteToFile_     bool
	StoreInternal_   bool
	history          [][]float64
}

func (s *Node) OutputVariable() mbs.OutputVariableType { return s.OutputVariable_ }
func (s *Node) WriteToFile() bool                      { return s.WriteToFile_ }
func (s *Node) StoreInternal() bool                    { return s.StoreInternal_ }

func (s *Node) Evaluate(t float64) ([]float64, error) {
	v, err := s.Source.Evaluate(s.OutputVariable_, mbs.ConfigCurrent)
	if err != nil {
		return nil, err
	}
	if s.StoreInternal_ {
		s.history = append(s.history, append([]float64{t}, v...))
	}
	return v, nil
}

// History returns every stored (t, value...) row recorded so far (only
// populated when StoreInternal_ is set).
func (s *Node) History() [][]float64 { return s.history }

// ObjectSource reports output variables computed from a marker pair or
// internal object state (force, torque, constraint equation, distance,
// sliding coordinate). No type in package object/body or object/connector
// implements it; the caller supplies the source.
type ObjectSource interface {
	Evaluate(outputVariable mbs.OutputVariableType, t float64) ([]float64, error)
}

// Object samples a body/connector/constraint's own output variable.
type Object struct {
	Source          ObjectSource
	OutputVariable_ mbs.OutputVariableType
	WriteToFile_    bool
	StoreInternal_  bool
	history         [][]float64
}

func (s *Object) OutputVariable() mbs.OutputVariableType { return s.OutputVariable_ }
func (s *Object) WriteToFile() bool                      { return s.WriteToFile_ }
func (s *Object) StoreInternal() bool                    { return s.StoreInternal_ }

func (s *Object) Evaluate(t float64) ([]float64, error) {
	v, err := s.Source.Evaluate(s.OutputVariable_, t)
	if err != nil {
		return nil, err
	}
	if s.StoreInternal_ {
		s.history = append(s.history, append([]float64{t}, v...))
	}
	return v, nil
}

func (s *Object) History() [][]float64 { return s.history }

// Marker samples a marker's MarkerData-derived output variable (spec §3
// Sensors - "MarkerSensor").
type Marker struct {
	Marker          mbs.Marker
	OutputVariable_ mbs.OutputVariableType
	WriteToFile_    bool
	StoreInternal_  bool
	history         [][]float64
}

func (s *Marker) OutputVariable() mbs.OutputVariableType { return s.OutputVariable_ }
func (s *Marker) WriteToFile() bool                      { return s.WriteToFile_ }
func (s *Marker) StoreInternal() bool                    { return s.StoreInternal_ }

func (s *Marker) Evaluate(t float64) ([]float64, error) {
	md, err := s.Marker.ComputeMarkerData(mbs.ConfigCurrent, false)
	if err != nil {
		return nil, err
	}
	var v []float64
	switch s.OutputVariable_ {
	case mbs.OVPosition:
		v = md.Position[:]
	case mbs.OVVelocity:
		v = md.Velocity[:]
	case mbs.OVAngularVelocityLocal:
		v = md.AngularVelocityLocal[:]
	default:
		v = md.VectorValue
	}
	if s.StoreInternal_ {
		s.history = append(s.history, append([]float64{t}, v...))
	}
	return v, nil
}

func (s *Marker) History() [][]float64 { return s.history }

// UserFunction invokes an arbitrary callback to compute a derived sensor
// value from the current time, letting model scripts combine other
// sensors' outputs (spec §3 Sensors - "User function").
type UserFunction struct {
	Func            func(t float64) ([]float64, error)
	WriteToFile_    bool
	StoreInternal_  bool
	history         [][]float64
}

func (s *UserFunction) OutputVariable() mbs.OutputVariableType { return mbs.OVCoordinates }
func (s *UserFunction) WriteToFile() bool                      { return s.WriteToFile_ }
func (s *UserFunction) StoreInternal() bool                    { return s.StoreInternal_ }

func (s *UserFunction) Evaluate(t float64) ([]float64, error) {
	v, err := s.Func(t)
	if err != nil {
		return nil, err
	}
	if s.StoreInternal_ {
		s.history = append(s.history, append([]float64{t}, v...))
	}
	return v, nil
}

func (s *UserFunction) History() [][]float64 { return s.history }

var (
	_ mbs.Sensor = (*Node)(nil)
	_ mbs.Sensor = (*Object)(nil)
	_ mbs.Sensor = (*Marker)(nil)
	_ mbs.Sensor = (*UserFunction)(nil)
)
