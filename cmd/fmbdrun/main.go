// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fmbdrun assembles and integrates a flexible multibody system
// (spec §1), the way the teacher's root command assembles and solves a
// finite-element simulation from a .sim file. fmbdrun has no input-file
// reader of its own yet (see DESIGN.md); it drives a built-in scenario
// selected by -scenario (only "pendulum", spec §8 scenario A), mirroring the
// teacher's flag.Parse()-based CLI and chk.Panic/io.Pf status reporting.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/slyandsmart/EXUDYN-sub000/integrate"
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/load"
	"github.com/slyandsmart/EXUDYN-sub000/marker"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
	"github.com/slyandsmart/EXUDYN-sub000/object/body"
	"github.com/slyandsmart/EXUDYN-sub000/object/connector"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
	"github.com/slyandsmart/EXUDYN-sub000/sensor"
	"github.com/slyandsmart/EXUDYN-sub000/system"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	scenario := flag.String("scenario", "pendulum", "built-in scenario to run: pendulum")
	tEnd := flag.Float64("tend", 1.0, "simulation end time [s]")
	dt := flag.Float64("dt", 1e-3, "initial step size [s]")
	out := flag.String("out", "", "output file path (empty: no file output)")
	verbose := flag.Bool("v", true, "print per-step status")
	flag.Parse()

	io.PfWhite("\nfmbdrun -- Flexible Multibody Dynamics\n\n")

	var err error
	switch *scenario {
	case "pendulum":
		err = runPendulum(*tEnd, *dt, *out, *verbose)
	default:
		chk.Panic("unknown scenario %q", *scenario)
	}
	if err != nil {
		chk.Panic("%v", err)
	}
}

// runPendulum builds spec §8 scenario A: a single rigid body hinged to
// ground by a revolute joint about the z axis, falling under gravity,
// and reports the tip position and angular velocity reached at tEnd.
func runPendulum(tEnd, dt0 float64, outPath string, verbose bool) error {
	const (
		length = 1.0
		mass   = 2.0
		g      = 9.81
	)

	sys := system.New()
	sys.Verbose = verbose

	groundNode := node.NewRigidGround(linalg.Vec3{}, linalg.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	bodyNode := node.NewRigidBodyRxyz(linalg.Vec3{length / 2, 0, 0}, rotation.RotXYZ{})
	sys.Nodes = append(sys.Nodes, groundNode, bodyNode)

	rigidBody := &body.RigidBody{
		Node: bodyNode,
		Mass: mass,
		// slender rod about its own reference point, the node at the rod's
		// center (the hinge marker sits at one end); only the z-inertia
		// enters the planar swing but all three are carried for a
		// consistent 3D mass matrix.
		InertiaLocal: linalg.Mat3{
			{1e-4, 0, 0},
			{0, mass * length * length / 12, 0},
			{0, 0, mass * length * length / 12},
		},
	}
	groundBody := &body.Ground{Position: linalg.Vec3{}}

	groundMarker := &marker.NodeRigid{Node: groundNode}
	hingeMarker := &marker.BodyRigid{Body: rigidBody, LocalPosition: linalg.Vec3{-length / 2, 0, 0}}
	tipMarker := &marker.BodyPosition{Body: rigidBody, LocalPosition: linalg.Vec3{length / 2, 0, 0}}
	massMarker := &marker.BodyMass{Body: rigidBody}
	sys.Markers = append(sys.Markers, groundMarker, hingeMarker, tipMarker, massMarker)
	const (
		iGround = 0
		iHinge  = 1
		iTip    = 2
		iMass   = 3
	)

	hinge := connector.NewJointRevoluteZ(iGround, iHinge)

	sys.Objects = append(sys.Objects,
		system.ObjectEntry{Body: groundBody, Nodes: []mbs.Node{groundNode}},
		system.ObjectEntry{Body: rigidBody, Nodes: []mbs.Node{bodyNode}},
		system.ObjectEntry{Connector: hinge, Constraint: hinge},
	)

	gravity := &load.MassProportional{Marker: iMass, Acceleration: linalg.Vec3{0, -g, 0}}
	sys.Loads = append(sys.Loads, system.LoadEntry{Load: gravity, Marker: iMass})

	tipSensor := &sensor.Node{
		Source:          &node.Output{Node: bodyNode},
		OutputVariable_: mbs.OVAngularVelocity,
		WriteToFile_:    true,
		StoreInternal_:  true,
	}
	tipPosSensor := &sensor.Marker{
		Marker:          tipMarker,
		OutputVariable_: mbs.OVPosition,
		WriteToFile_:    true,
		StoreInternal_:  true,
	}
	sys.Sensors = append(sys.Sensors, tipSensor, tipPosSensor)

	if err := sys.Assemble(); err != nil {
		return err
	}

	integrator := integrate.NewImplicit(sys, 0.5, 0.25, 0, false, dt0/1024)

	var writer *sensor.FileWriter
	if outPath != "" {
		writer = &sensor.FileWriter{Path: outPath}
	}

	step := func(t, dt float64) error {
		if err := integrator.Step(t, dt); err != nil {
			return err
		}
		if writer != nil {
			row := make([]float64, 0, 8)
			for _, s := range sys.Sensors {
				if !s.WriteToFile() {
					continue
				}
				v, err := s.Evaluate(t + dt)
				if err != nil {
					return err
				}
				row = append(row, v...)
			}
			writer.Append(t+dt, row)
		}
		return nil
	}

	err := integrate.Simulate(stepperFunc(step), sys.RestoreStartOfStep, 0, tEnd, dt0, dt0/1024, verbose)
	if err != nil {
		return err
	}
	if writer != nil {
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	omega, _ := tipSensor.Evaluate(tEnd)
	pos, _ := tipPosSensor.Evaluate(tEnd)
	io.Pfgreen("pendulum: tip position = %v\n", pos)
	io.Pfgreen("pendulum: angular velocity = %v\n", omega)
	return nil
}

// stepperFunc adapts a plain Step closure to integrate.Stepper.
type stepperFunc func(t, dt float64) error

func (f stepperFunc) Step(t, dt float64) error { return f(t, dt) }
