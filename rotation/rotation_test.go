// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rotation

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
)

func Test_eulerparams01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eulerparams01")

	e := NewEulerParametersIdentity()
	chk.Scalar(tst, "|e|²", 1e-17, e.NormSquared(), 1.0)
	R := e.RotationMatrix()
	I := linalg.Identity3()
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "identity rotation row", 1e-15, R[i][:], I[i][:])
	}
}

func Test_eulerparams_roundtrip01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eulerparams_roundtrip01")

	// a 90° rotation about z, recovered by FromRotationMatrix (§8 property 3).
	e := EulerParameters{0.7071067811865476, 0, 0, 0.7071067811865476}
	R := e.RotationMatrix()
	e2 := FromRotationMatrix(R)
	R2 := e2.RotationMatrix()
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "round-trip rotation row", 1e-12, R2[i][:], R[i][:])
	}
}

func Test_rotxyz01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotxyz01")

	r := RotXYZ{0, 0, 0}
	R := r.RotationMatrix()
	I := linalg.Identity3()
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "identity rotation row", 1e-15, R[i][:], I[i][:])
	}
}

func Test_rotxyz_roundtrip01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotxyz_roundtrip01")

	r := RotXYZ{0.1, 0.2, 0.3}
	R := r.RotationMatrix()
	r2 := RotXYZFromRotationMatrix(R)
	R2 := r2.RotationMatrix()
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "round-trip rotation row", 1e-12, R2[i][:], R[i][:])
	}
}

func Test_rotationvector_exp_log01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotationvector_exp_log01")

	theta := RotationVector{0.3, -0.2, 0.5}
	R := theta.Exp()

	// R must be orthogonal: RᵀR = I.
	RT := R.T()
	prod := RT.Mul(R)
	I := linalg.Identity3()
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "RᵀR row", 1e-12, prod[i][:], I[i][:])
	}

	// log(exp(θ)) must recover θ.
	theta2 := Log(R)
	chk.Vector(tst, "log(exp(θ))", 1e-10, linalg.Vec3(theta2)[:], linalg.Vec3(theta)[:])
}

func Test_rotationvector_smallangle01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotationvector_smallangle01")

	// near-zero rotation vectors must not blow up (the small-angle
	// branches of Exp/Log).
	theta := RotationVector{1e-10, -1e-10, 2e-10}
	R := theta.Exp()
	theta2 := Log(R)
	chk.Vector(tst, "log(exp(θ)) near zero", 1e-9, linalg.Vec3(theta2)[:], linalg.Vec3(theta)[:])
}

func Test_composeleft01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("composeleft01")

	theta0 := RotationVector{0.1, 0, 0}
	dtheta := RotationVector{0, 0.2, 0}
	composed := ComposeLeft(theta0, dtheta)
	want := Log(theta0.Exp().Mul(dtheta.Exp()))
	chk.Vector(tst, "composeleft", 1e-12, linalg.Vec3(composed)[:], linalg.Vec3(want)[:])
}
