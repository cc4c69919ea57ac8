// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/load"
	"github.com/slyandsmart/EXUDYN-sub000/marker"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
	"github.com/slyandsmart/EXUDYN-sub000/object/body"
	"github.com/slyandsmart/EXUDYN-sub000/system"
)

// Test_freefall01 drops a point mass under gravity through
// marker.BodyMass/load.MassProportional and checks the trajectory
// against the closed-form constant-acceleration solution. Newmark with
// theta1=gamma=0.5 and theta2=2*beta=0.25 is exact for constant
// acceleration, so the check is tight.
func Test_freefall01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("freefall01")

	const (
		mass = 3.0
		g    = 9.81
	)

	sys := system.New()

	n := node.NewPoint(linalg.Vec3{0, 10, 0})
	sys.Nodes = append(sys.Nodes, n)

	b := &body.MassPoint{Node: n, Mass: mass}
	m := &marker.BodyMass{Body: b}
	sys.Markers = append(sys.Markers, m)

	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n}})

	gravity := &load.MassProportional{Marker: 0, Acceleration: linalg.Vec3{0, -g, 0}}
	sys.Loads = append(sys.Loads, system.LoadEntry{Load: gravity, Marker: 0})

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}

	it := NewImplicit(sys, 0.5, 0.25, 0, false, 1e-6)

	const (
		dt   = 0.01
		tEnd = 1.0
	)
	t := 0.0
	for t < tEnd-1e-12 {
		if err := it.Step(t, dt); err != nil {
			tst.Fatalf("Step at t=%v: %v", t, err)
		}
		t += dt
	}

	cur := sys.Data.Config(mbs.ConfigCurrent)
	wantY := 10 - 0.5*g*tEnd*tEnd
	wantVy := -g * tEnd
	chk.Scalar(tst, "y(tEnd)", 1e-9, cur.ODE2Coords[1], wantY)
	chk.Scalar(tst, "vy(tEnd)", 1e-9, cur.ODE2Vels[1], wantVy)
	chk.Scalar(tst, "x(tEnd) unchanged", 1e-12, cur.ODE2Coords[0], 0)
	chk.Scalar(tst, "z(tEnd) unchanged", 1e-12, cur.ODE2Coords[2], 0)
}

// Test_step_refuses_unassembled01 checks that Step refuses to run against
// a system that has never been Assembled, or one Invalidated after a
// structural change (spec §3 Lifecycle: "attempts to solve without
// re-assembly are refused").
func Test_step_refuses_unassembled01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("step_refuses_unassembled01")

	sys := system.New()
	n := node.NewPoint(linalg.Vec3{0, 10, 0})
	sys.Nodes = append(sys.Nodes, n)
	b := &body.MassPoint{Node: n, Mass: 1}
	m := &marker.BodyMass{Body: b}
	sys.Markers = append(sys.Markers, m)
	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n}})
	sys.Loads = append(sys.Loads, system.LoadEntry{Load: &load.MassProportional{Marker: 0, Acceleration: linalg.Vec3{0, -9.81, 0}}, Marker: 0})

	it := NewImplicit(sys, 0.5, 0.25, 0, false, 1e-6)
	if err := it.Step(0, 0.01); err == nil {
		tst.Fatalf("expected Step to refuse an unassembled system")
	}

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}
	if err := it.Step(0, 0.01); err != nil {
		tst.Fatalf("Step after Assemble: %v", err)
	}

	sys.Invalidate()
	if err := it.Step(0.01, 0.01); err == nil {
		tst.Fatalf("expected Step to refuse after Invalidate")
	}
}
