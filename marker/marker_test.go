// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package marker

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
	"github.com/slyandsmart/EXUDYN-sub000/object/body"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// newRigidStore assembles one rigid-body node's offsets against a
// standalone CData, short-circuiting package system the same way
// node_test.go's newStore does.
func newRigidStore(n mbs.Node) *mbs.CData {
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

// Test_bodyrigid_jacobian01 checks BodyRigid.ComputeMarkerData's
// position Jacobian against the moment-arm shift by direct finite
// difference of the marker's own world position as each ODE2 coordinate
// is perturbed (the defect this fix closed: PositionJacobian/
// RotationJacobian were previously never populated at all).
func Test_bodyrigid_jacobian01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bodyrigid_jacobian01")

	n := node.NewRigidBodyRxyz(linalg.Vec3{}, rotation.RotXYZ{})
	d := newRigidStore(n)
	cur := d.Config(mbs.ConfigCurrent)
	cur.ODE2Coords[3], cur.ODE2Coords[4], cur.ODE2Coords[5] = 0.1, -0.05, 0.2

	rb := &body.RigidBody{Node: n, Mass: 1, InertiaLocal: linalg.Identity3()}
	localPos := linalg.Vec3{0.3, 0, 0}
	m := &BodyRigid{Body: rb, LocalPosition: localPos}

	md, err := m.ComputeMarkerData(mbs.ConfigCurrent, true)
	if err != nil {
		tst.Fatalf("ComputeMarkerData: %v", err)
	}
	if md.PositionJacobian == nil {
		tst.Fatalf("PositionJacobian is nil")
	}
	if len(md.PositionJacobian) != 3 || len(md.PositionJacobian[0]) != 6 {
		tst.Fatalf("PositionJacobian shape = %dx%d, want 3x6", len(md.PositionJacobian), len(md.PositionJacobian[0]))
	}

	markerPos := func() linalg.Vec3 { return rb.GetPosition(mbs.ConfigCurrent, localPos) }
	base := markerPos()

	h := 1e-6
	for k := 0; k < 6; k++ {
		saved := cur.ODE2Coords[k]
		cur.ODE2Coords[k] = saved + h
		pPlus := markerPos()
		cur.ODE2Coords[k] = saved
		fd := pPlus.Sub(base).Scale(1 / h)
		for i := 0; i < 3; i++ {
			diff := fd[i] - md.PositionJacobian[i][k]
			if diff < 0 {
				diff = -diff
			}
			if diff > 1e-3 {
				tst.Errorf("PositionJacobian[%d][%d]: finite-diff %v, analytic %v", i, k, fd[i], md.PositionJacobian[i][k])
			}
		}
	}
}

// Test_bodymass_jacobian01 checks that BodyMass now reports a
// PositionJacobian (the load-application-loop bug: system.
// ComputeSystemODE2RHS silently skips any load whose marker reports a
// nil Jacobian, so MassProportional gravity never applied before this
// fix).
func Test_bodymass_jacobian01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bodymass_jacobian01")

	n := node.NewPoint(linalg.Vec3{1, 2, 3})
	newRigidStore(n)

	mp := &body.MassPoint{Node: n, Mass: 2.5}
	m := &BodyMass{Body: mp}

	md, err := m.ComputeMarkerData(mbs.ConfigCurrent, true)
	if err != nil {
		tst.Fatalf("ComputeMarkerData: %v", err)
	}
	if md.PositionJacobian == nil {
		tst.Fatalf("PositionJacobian is nil: MassProportional loads would silently apply zero force")
	}
	chk.Scalar(tst, "mass", 1e-17, md.VectorValue[0], 2.5)
	I := linalg.Identity3()
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "identity Jacobian row", 1e-17, md.PositionJacobian[i], I[i][:])
	}
}
