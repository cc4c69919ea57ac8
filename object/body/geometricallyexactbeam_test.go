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
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
	"github.com/slyandsmart/EXUDYN-sub000/system"
)

// Test_geometricallyexactbeam_straightIsUnstrained01 checks that a beam
// whose two nodes sit at their reference positions, L apart along x with
// identical (zero) orientation, carries zero internal force: the
// incremental displacement/rotation between the frames is exactly the
// reference h0, so eps is zero everywhere.
func Test_geometricallyexactbeam_straightIsUnstrained01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geometricallyexactbeam_straightIsUnstrained01")

	const L = 1.5

	n0 := node.NewRigidBodyRxyz(linalg.Vec3{0, 0, 0}, rotation.RotXYZ{0, 0, 0})
	n1 := node.NewRigidBodyRxyz(linalg.Vec3{L, 0, 0}, rotation.RotXYZ{0, 0, 0})

	sys := system.New()
	sys.Nodes = append(sys.Nodes, n0, n1)

	b := &GeometricallyExactBeam{
		Node0: n0, Node1: n1, Length: L,
		MassPerLength:       2.0,
		CrossSectionInertia: linalg.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		AxialShear:          linalg.Vec3{1e6, 1e5, 1e5},
		TorsionBend:         linalg.Vec3{1e4, 1e4, 1e4},
	}
	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n0, n1}})

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}

	out := make([]float64, b.NumCoordinates())
	if err := b.ComputeODE2LHS(mbs.ConfigReference, out); err != nil {
		tst.Fatalf("ComputeODE2LHS: %v", err)
	}
	for _, f := range out {
		chk.Scalar(tst, "straight beam internal force", 1e-8, f, 0)
	}
}

// Test_geometricallyexactbeam_mass01 checks the mass matrix is symmetric
// with a positive translational block at each node summing to the
// element's total mass.
func Test_geometricallyexactbeam_mass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geometricallyexactbeam_mass01")

	const L = 2.0

	n0 := node.NewRigidBodyRxyz(linalg.Vec3{0, 0, 0}, rotation.RotXYZ{0, 0, 0})
	n1 := node.NewRigidBodyRxyz(linalg.Vec3{L, 0, 0}, rotation.RotXYZ{0, 0, 0})

	sys := system.New()
	sys.Nodes = append(sys.Nodes, n0, n1)

	b := &GeometricallyExactBeam{
		Node0: n0, Node1: n1, Length: L,
		MassPerLength:       1.0,
		CrossSectionInertia: linalg.Mat3{{0.5, 0, 0}, {0, 0.5, 0}, {0, 0, 0.5}},
		AxialShear:          linalg.Vec3{1e6, 1e5, 1e5},
		TorsionBend:         linalg.Vec3{1e4, 1e4, 1e4},
	}
	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n0, n1}})

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}

	n := b.NumCoordinates()
	mass := linalg.MatAlloc(n, n)
	if err := b.ComputeMassMatrix(mbs.ConfigReference, mass); err != nil {
		tst.Fatalf("ComputeMassMatrix: %v", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			chk.Scalar(tst, "mass matrix symmetry", 1e-12, mass[i][j], mass[j][i])
		}
	}
	chk.Scalar(tst, "node0 translational mass", 1e-12, mass[0][0], 0.5*b.TotalMass())
	chk.Scalar(tst, "node1 translational mass", 1e-12, mass[6][6], 0.5*b.TotalMass())
}

// Test_geometricallyexactbeam_midpoint01 checks GetPosition at the
// element's midpoint against the straight-line average of the two node
// positions, for an undeformed beam.
func Test_geometricallyexactbeam_midpoint01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geometricallyexactbeam_midpoint01")

	const L = 4.0

	n0 := node.NewRigidBodyRxyz(linalg.Vec3{0, 0, 0}, rotation.RotXYZ{0, 0, 0})
	n1 := node.NewRigidBodyRxyz(linalg.Vec3{L, 0, 0}, rotation.RotXYZ{0, 0, 0})

	sys := system.New()
	sys.Nodes = append(sys.Nodes, n0, n1)

	b := &GeometricallyExactBeam{
		Node0: n0, Node1: n1, Length: L,
		MassPerLength:       1.0,
		CrossSectionInertia: linalg.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		AxialShear:          linalg.Vec3{1e6, 1e5, 1e5},
		TorsionBend:         linalg.Vec3{1e4, 1e4, 1e4},
	}
	sys.Objects = append(sys.Objects, system.ObjectEntry{Body: b, Nodes: []mbs.Node{n0, n1}})

	if err := sys.Assemble(); err != nil {
		tst.Fatalf("Assemble: %v", err)
	}

	mid := b.GetPosition(mbs.ConfigReference, linalg.Vec3{0, 0, 0})
	chk.Scalar(tst, "midpoint x", 1e-9, mid[0], L/2)
	chk.Scalar(tst, "midpoint y", 1e-9, mid[1], 0)
	chk.Scalar(tst, "midpoint z", 1e-9, mid[2], 0)
}
