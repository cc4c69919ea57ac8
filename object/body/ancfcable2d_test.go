// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
	"github.com/slyandsmart/EXUDYN-sub000/system"
)

// straightCableReference is the reference configuration of a cable of
// length L lying along x, unstretched, slope (1,0) at both ends.
func straightCableReference(L float64) ([]float64, []float64) {
	return []float64{0, 0, 1, 0}, []float64{L, 0, 1, 0}
}

// Test_ancfcable2d_straightIsUnstrained01 checks that a cable seeded at
// its own reference (straight, unit slope) carries zero internal force,
// since it is already in its undeformed state.
func Test_ancfcable2d_straightIsUnstrained01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ancfcable2d_straightIsUnstrained01")

	const L = 2.0
	r0, r1 := straightCableReference(L)

	n0 := node.NewGenericODE2(4, r0)
	n1 := node.NewGenericODE2(4, r1)

	sys := system.New()
	sys.Nodes = append(sys.Nodes, n0, n1)

	b := &ANCFCable2D{Node0: n0, Node1: n1, Length: L, MassPerLength: 1.2, AxialStiffness: 1e5, BendStiffness: 10}
	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n0, n1}})

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}

	out := make([]float64, 8)
	if err := b.ComputeODE2LHS(mbs.ConfigReference, out); err != nil {
		tst.Fatalf("ComputeODE2LHS: %v", err)
	}
	for _, f := range out {
		chk.Scalar(tst, "straight cable internal force", 1e-6, f, 0)
	}

	mass := linalg.MatAlloc(8, 8)
	if err := b.ComputeMassMatrix(mbs.ConfigReference, mass); err != nil {
		tst.Fatalf("ComputeMassMatrix: %v", err)
	}
	for i := 0; i < 8; i++ {
		if mass[i][i] <= 0 {
			tst.Fatalf("mass[%d][%d] = %v, want > 0", i, i, mass[i][i])
		}
		for j := 0; j < 8; j++ {
			chk.Scalar(tst, "mass matrix symmetry", 1e-12, mass[i][j], mass[j][i])
		}
	}
}

// Test_ancfcable2d_totalMass01 checks TotalMass against ρA·L.
func Test_ancfcable2d_totalMass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ancfcable2d_totalMass01")

	const L = 3.0
	r0, r1 := straightCableReference(L)
	n0 := node.NewGenericODE2(4, r0)
	n1 := node.NewGenericODE2(4, r1)
	b := &ANCFCable2D{Node0: n0, Node1: n1, Length: L, MassPerLength: 0.5}
	chk.Scalar(tst, "TotalMass", 1e-12, b.TotalMass(), 1.5)
}

// Test_ancfcable2dale_steadyBelt01 reproduces scenario E's steady-belt
// check: a straight cable with uniform axial material velocity v should
// show nodal velocities equal to v·r_x (here r_x=(1,0), so purely axial)
// to within 1e-6, independent of the cable's own (zero) ODE2 velocities.
func Test_ancfcable2dale_steadyBelt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ancfcable2dale_steadyBelt01")

	const (
		L = 1.0
		v = 1.0
	)
	r0, r1 := straightCableReference(L)
	n0 := node.NewGenericODE2(4, r0)
	n1 := node.NewGenericODE2(4, r1)
	nv := node.NewGenericODE2(1, []float64{v})

	sys := system.New()
	sys.Nodes = append(sys.Nodes, n0, n1, nv)

	b := &ANCFCable2DALE{
		ANCFCable2D: ANCFCable2D{Node0: n0, Node1: n1, Length: L, MassPerLength: 1.0, AxialStiffness: 1e6, BendStiffness: 1},
		ALENode:     nv,
	}
	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n0, n1, nv}})

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}

	for _, s := range []float64{0, L / 2, L} {
		vel := b.GetVelocity(mbs.ConfigReference, linalg.Vec3{s, 0, 0})
		chk.Scalar(tst, "vx(s)", 1e-6, vel[0], v)
		chk.Scalar(tst, "vy(s)", 1e-6, vel[1], 0)
	}

	// kinetic energy of the advection term alone should match (1/2) mu v^2 L
	mu := b.MassPerLength
	want := 0.5 * mu * v * v * L
	// integrate (1/2) mu |v r_x|^2 ds with 5-pt Gauss, r_x=(1,0) everywhere
	var got float64
	for k := 0; k < 5; k++ {
		s := 0.5 * L * (ancfGaussPoints[k] + 1)
		w := 0.5 * L * ancfGaussWeights[k]
		vel := b.GetVelocity(mbs.ConfigReference, linalg.Vec3{s, 0, 0})
		got += w * 0.5 * mu * (vel[0]*vel[0] + vel[1]*vel[1])
	}
	chk.Scalar(tst, "kinetic energy (1/2) mu v^2 L", 1e-9, got, want)
}
