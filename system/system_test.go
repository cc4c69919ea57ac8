// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/load"
	"github.com/slyandsmart/EXUDYN-sub000/marker"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
	"github.com/slyandsmart/EXUDYN-sub000/object/body"
)

// Test_assemblecoordinates01 checks that two 3-coordinate point nodes get
// disjoint, contiguous ODE2 offsets (spec §4.1 "Nodes own their slots in
// the global coordinate vector").
func Test_assemblecoordinates01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemblecoordinates01")

	sys := New()
	n0 := node.NewPoint(linalg.Vec3{})
	n1 := node.NewPoint(linalg.Vec3{})
	sys.Nodes = append(sys.Nodes, n0, n1)
	sys.AssembleCoordinates()

	chk.Scalar(tst, "NumODE2", 1e-17, float64(sys.NumODE2()), 6)
	chk.Scalar(tst, "n0 offset", 1e-17, float64(n0.Offset(mbs.ODE2)), 0)
	chk.Scalar(tst, "n1 offset", 1e-17, float64(n1.Offset(mbs.ODE2)), 3)
}

// Test_checksystemintegrity01 checks that an out-of-range load marker
// index is rejected (spec §7 ErrConsistency: "graph references invalid").
func Test_checksystemintegrity01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checksystemintegrity01")

	sys := New()
	n0 := node.NewPoint(linalg.Vec3{})
	sys.Nodes = append(sys.Nodes, n0)
	b := &body.MassPoint{Node: n0, Mass: 1}
	m := &marker.BodyMass{Body: b}
	sys.Markers = append(sys.Markers, m)
	sys.Objects = append(sys.Objects, ObjectEntry{Body: b, Nodes: []mbs.Node{n0}})

	sys.Loads = append(sys.Loads, LoadEntry{Load: &load.MassProportional{Marker: 5}, Marker: 5})
	if err := sys.CheckSystemIntegrity(); err == nil {
		tst.Fatalf("expected ErrConsistency for out-of-range load marker, got nil")
	}

	sys.Loads[0].Marker = 0
	sys.Loads[0].Load.(*load.MassProportional).Marker = 0
	if err := sys.CheckSystemIntegrity(); err != nil {
		tst.Fatalf("expected no error once marker index is fixed, got %v", err)
	}
}

// Test_computemassmatrix01 assembles two independent point masses and
// checks the global mass matrix is block-diagonal with each body's own
// mass on its own coordinates (spec §4.4).
func Test_computemassmatrix01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("computemassmatrix01")

	sys := New()
	n0 := node.NewPoint(linalg.Vec3{})
	n1 := node.NewPoint(linalg.Vec3{})
	sys.Nodes = append(sys.Nodes, n0, n1)
	b0 := &body.MassPoint{Node: n0, Mass: 2}
	b1 := &body.MassPoint{Node: n1, Mass: 5}
	sys.Objects = append(sys.Objects,
		ObjectEntry{Body: b0, Nodes: []mbs.Node{n0}},
		ObjectEntry{Body: b1, Nodes: []mbs.Node{n1}},
	)
	sys.AssembleCoordinates()
	sys.AssembleInitializeSystemCoordinates()

	M := linalg.MatAlloc(sys.NumODE2(), sys.NumODE2())
	if err := sys.ComputeMassMatrix(mbs.ConfigCurrent, M); err != nil {
		tst.Fatalf("ComputeMassMatrix: %v", err)
	}
	want := linalg.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		want[i][i] = 2
	}
	for i := 3; i < 6; i++ {
		want[i][i] = 5
	}
	for i := 0; i < 6; i++ {
		chk.Vector(tst, "mass matrix row", 1e-17, M[i], want[i])
	}
}

// Test_assemble01 checks the Assemble lifecycle entry point: the system
// starts inconsistent, a failing CheckSystemIntegrity leaves it
// inconsistent, and a successful Assemble both flips the flag and
// populates every object's cached LTG list (spec §3 Lifecycle,
// AssembleLTGLists).
func Test_assemble01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble01")

	sys := New()
	n0 := node.NewPoint(linalg.Vec3{})
	sys.Nodes = append(sys.Nodes, n0)
	b := &body.MassPoint{Node: n0, Mass: 1}
	m := &marker.BodyMass{Body: b}
	sys.Markers = append(sys.Markers, m)
	sys.Objects = append(sys.Objects, ObjectEntry{Body: b, Nodes: []mbs.Node{n0}})

	if sys.IsConsistent() {
		tst.Fatalf("a freshly built system must not report consistent before Assemble")
	}

	sys.Loads = append(sys.Loads, LoadEntry{Load: &load.MassProportional{Marker: 5}, Marker: 5})
	if err := sys.Assemble(); err == nil {
		tst.Fatalf("expected Assemble to fail on an out-of-range load marker")
	}
	if sys.IsConsistent() {
		tst.Fatalf("a failed Assemble must not leave the system consistent")
	}

	sys.Loads[0].Marker = 0
	sys.Loads[0].Load.(*load.MassProportional).Marker = 0
	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}
	if !sys.IsConsistent() {
		tst.Fatalf("a successful Assemble must leave the system consistent")
	}
	if sys.Objects[0].ltg == nil {
		tst.Fatalf("Assemble must populate the body object's LTG list")
	}
	chk.Ints(tst, "body LTG list", sys.Objects[0].ltg, []int{0, 1, 2})
}
