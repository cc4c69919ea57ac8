// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// newStore assembles a single node's offsets against a standalone CData,
// short-circuiting package system (which itself depends on package node)
// so these tests stay inside package node.
func newStore(n mbs.Node) *mbs.CData {
	n.SetOffset(mbs.ODE2, 0)
	n.SetOffset(mbs.ODE1, 0)
	n.SetOffset(mbs.AE, 0)
	n.SetOffset(mbs.Data, 0)
	d := &mbs.CData{}
	d.ForEachConfig(func(cfg mbs.ConfigurationType, c *mbs.Config) {
		c.Resize(n.NumODE2(), n.NumODE1(), n.NumAE(), n.NumData())
	})
	if st, ok := n.(interface{ SetStore(*mbs.CData) }); ok {
		st.SetStore(d)
	}
	return d
}

func Test_point01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("point01")

	p := NewPoint(linalg.Vec3{1, 2, 3})
	d := newStore(p)
	chk.Vector(tst, "reference position", 1e-17, p.GetPosition(mbs.ConfigReference)[:], []float64{1, 2, 3})

	cur := d.Config(mbs.ConfigCurrent)
	cur.ODE2Coords[0], cur.ODE2Coords[1], cur.ODE2Coords[2] = 0.1, 0.2, 0.3
	chk.Vector(tst, "displaced position", 1e-17, p.GetPosition(mbs.ConfigCurrent)[:], []float64{1.1, 2.2, 3.3})
}

func Test_rigidbodyrxyz01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigidbodyrxyz01")

	n := NewRigidBodyRxyz(linalg.Vec3{}, rotation.RotXYZ{})
	d := newStore(n)

	chk.Scalar(tst, "NumODE2", 1e-17, float64(n.NumODE2()), 6)
	chk.Scalar(tst, "NumRotationCoordinates", 1e-17, float64(n.NumRotationCoordinates()), 3)

	cur := d.Config(mbs.ConfigCurrent)
	cur.ODE2Coords[3], cur.ODE2Coords[4], cur.ODE2Coords[5] = 0.1, -0.2, 0.3
	want := (rotation.RotXYZ{0.1, -0.2, 0.3}).RotationMatrix()
	R := n.GetRotationMatrix(mbs.ConfigCurrent)
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "rotation matrix row", 1e-15, R[i][:], want[i][:])
	}

	// world angular velocity must equal G(angles)·rDot (spec §4.2 contract).
	cur.ODE2Vels[3], cur.ODE2Vels[4], cur.ODE2Vels[5] = 0.01, 0.02, -0.03
	omega := n.GetAngularVelocity(mbs.ConfigCurrent)
	rDot := linalg.Vec3{0.01, 0.02, -0.03}
	wantOmega := (rotation.RotXYZ{0.1, -0.2, 0.3}).AngularVelocity(rDot)
	chk.Vector(tst, "angular velocity", 1e-14, omega[:], wantOmega[:])
}

func Test_rigidbodyrxyz_gtvq_numerical01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigidbodyrxyz_gtvq_numerical01")

	n := NewRigidBodyRxyz(linalg.Vec3{}, rotation.RotXYZ{})
	newStore(n)
	d := n.store
	cur := d.Config(mbs.ConfigCurrent)
	cur.ODE2Coords[3], cur.ODE2Coords[4], cur.ODE2Coords[5] = 0.15, 0.05, -0.1

	v := linalg.Vec3{1, 0, 0}
	block := n.GetGTv_q(v, mbs.ConfigCurrent)

	// forward-difference sanity check: perturbing one rotation coordinate
	// and re-evaluating Gᵀv should match the reported derivative column
	// to the finite-difference step's own accuracy.
	h := 1e-6
	base := n.angles(mbs.ConfigCurrent)
	f := func(a rotation.RotXYZ) linalg.Vec3 {
		return a.G().T().MulVec(v)
	}
	g0 := f(base)
	a1 := base
	a1[0] += h
	g1 := f(a1)
	fd := (g1.Sub(g0)).Scale(1 / h)
	for i := 0; i < 3; i++ {
		diff := math.Abs(block[3+i][3] - fd[i])
		if diff > 1e-4 {
			tst.Errorf("GTv_q column 0 mismatch at row %d: got %v fd %v", i, block[3+i][3], fd[i])
		}
	}
}
