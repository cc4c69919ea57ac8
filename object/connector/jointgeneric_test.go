// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/marker"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

func assembleStore(nodes ...mbs.Node) *mbs.CData {
	offsets := map[mbs.CoordinateKind]int{}
	for _, n := range nodes {
		n.SetOffset(mbs.ODE2, offsets[mbs.ODE2])
		offsets[mbs.ODE2] += n.NumODE2()
	}
	total := offsets[mbs.ODE2]
	d := &mbs.CData{}
	d.ForEachConfig(func(cfg mbs.ConfigurationType, c *mbs.Config) {
		c.Resize(total, 0, 0, 0)
	})
	for _, n := range nodes {
		if st, ok := n.(interface{ SetStore(*mbs.CData) }); ok {
			st.SetStore(d)
		}
	}
	return d
}

// Test_jointrevoluteZ01 checks JointGeneric (via NewJointRevoluteZ) at a
// hinge-compatible configuration: ground at identity, the hinged body
// co-located but rotated about z, leaving only the z rotation free.
// ComputeAlgebraicEquations must report all five locked equations near
// zero, and ComputeJacobianAE's finite-difference Jacobian must predict
// the residual change from a small perturbation of the body's x
// coordinate to first order.
func Test_jointrevoluteZ01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jointrevoluteZ01")

	ground := node.NewRigidGround(linalg.Vec3{}, linalg.Identity3())
	bodyNode := node.NewRigidBodyRxyz(linalg.Vec3{}, rotation.RotXYZ{})
	d := assembleStore(ground, bodyNode)
	cur := d.Config(mbs.ConfigCurrent)
	cur.ODE2Coords[5] = 0.3 // rotation about z only

	m0 := &marker.NodeRigid{Node: ground}
	m1 := &marker.NodeRigid{Node: bodyNode}

	joint := NewJointRevoluteZ(0, 1)
	chk.Scalar(tst, "NumConstraintEquations", 1e-17, float64(joint.NumConstraintEquations()), 5)

	md0, err := m0.ComputeMarkerData(mbs.ConfigCurrent, true)
	if err != nil {
		tst.Fatalf("marker0: %v", err)
	}
	md1, err := m1.ComputeMarkerData(mbs.ConfigCurrent, true)
	if err != nil {
		tst.Fatalf("marker1: %v", err)
	}
	mdArr := [2]*mbs.MarkerData{md0, md1}

	g := make([]float64, joint.NumConstraintEquations())
	if err := joint.ComputeAlgebraicEquations(mdArr, 0, false, g); err != nil {
		tst.Fatalf("ComputeAlgebraicEquations: %v", err)
	}
	want := make([]float64, len(g))
	chk.Vector(tst, "g at hinge-compatible configuration", 1e-12, g, want)

	n0 := md0.NCoords()
	n1 := md1.NCoords()
	jOde2 := linalg.MatAlloc(len(g), n0+n1)
	if err := joint.ComputeJacobianAE(mdArr, 0, jOde2, nil, nil); err != nil {
		tst.Fatalf("ComputeJacobianAE: %v", err)
	}

	// perturb the body's x coordinate (global index n0+0) and check the
	// first locked row (x-translation residual) responds as jOde2 predicts.
	h := 1e-6
	cur.ODE2Coords[0] = h
	md1p, err := m1.ComputeMarkerData(mbs.ConfigCurrent, false)
	if err != nil {
		tst.Fatalf("perturbed marker1: %v", err)
	}
	cur.ODE2Coords[0] = 0
	gp := make([]float64, len(g))
	if err := joint.ComputeAlgebraicEquations([2]*mbs.MarkerData{md0, md1p}, 0, false, gp); err != nil {
		tst.Fatalf("perturbed ComputeAlgebraicEquations: %v", err)
	}
	fd := (gp[0] - g[0]) / h
	diff := fd - jOde2[0][n0+0]
	if diff < 0 {
		diff = -diff
	}
	if diff > 1e-3 {
		tst.Errorf("row 0 Jacobian mismatch: finite-diff %v, reported %v", fd, jOde2[0][n0+0])
	}
}
