// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_vec3ops01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vec3ops01")

	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	chk.Vector(tst, "a+b", 1e-17, a.Add(b)[:], []float64{5, 7, 9})
	chk.Vector(tst, "a-b", 1e-17, a.Sub(b)[:], []float64{-3, -3, -3})
	chk.Scalar(tst, "a.b", 1e-17, a.Dot(b), 32.0)
	chk.Vector(tst, "axb", 1e-17, a.Cross(b)[:], []float64{-3, 6, -3})
	chk.Scalar(tst, "|a|", 1e-15, Vec3{3, 4, 0}.Norm(), 5.0)
}

func Test_skew01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("skew01")

	v := Vec3{1, 2, 3}
	w := Vec3{4, 5, 6}
	S := Skew(v)
	got := S.MulVec(w)
	want := v.Cross(w)
	chk.Vector(tst, "skew(v)w", 1e-15, got[:], want[:])
}

func Test_mat3ops01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat3ops01")

	I := Identity3()
	v := Vec3{1, 2, 3}
	chk.Vector(tst, "I*v", 1e-17, I.MulVec(v)[:], v[:])

	R := Mat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	RT := R.T()
	prod := R.Mul(RT)
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "R*Rᵀ row", 1e-15, prod[i][:], I[i][:])
	}
}

func Test_plueckertransform01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plueckertransform01")

	// a pure translation Plücker transform must leave a purely angular
	// spatial vector unchanged in its angular part and shift the linear
	// part by ω×p (spec's spatial-algebra convention).
	p := Vec3{1, 0, 0}
	X := PlueckerTransform(Identity3(), p)
	v := NewVec6(Vec3{0, 0, 1}, Vec3{0, 0, 0})
	got := X.MulVec(v)
	wantLinear := Vec3{0, 0, 1}.Cross(p)
	chk.Vector(tst, "transformed angular", 1e-15, got.Angular()[:], []float64{0, 0, 1})
	chk.Vector(tst, "transformed linear", 1e-15, got.Linear()[:], wantLinear[:])
}

func Test_spatialinertia01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spatialinertia01")

	// about the center of mass (c=0), the spatial inertia is block
	// diagonal: angular block = Ic, linear block = m*I3.
	Ic := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	I := SpatialInertia(5.0, Vec3{}, Ic)
	for i := 0; i < 3; i++ {
		chk.Vector(tst, "angular block row", 1e-15, I[i][0:3], Ic[i][:])
	}
	for i := 0; i < 3; i++ {
		var row [3]float64
		row[i] = 5.0
		chk.Vector(tst, "linear block row", 1e-15, I[3+i][3:6], row[:])
	}
}
