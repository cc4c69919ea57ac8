// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package load

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

func Test_forcevector01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forcevector01")

	l := &ForceVector{Marker: 2, Value: linalg.Vec3{1, -2, 3}}
	chk.Scalar(tst, "MarkerNumber", 1e-17, float64(l.MarkerNumber()), 2)

	v, err := l.Evaluate(0, &mbs.MarkerData{})
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "constant force", 1e-17, v, []float64{1, -2, 3})
}

func Test_forcevector_userfunc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forcevector_userfunc01")

	l := &ForceVector{
		Name:   "scale",
		Marker: 0,
		Value:  linalg.Vec3{1, 0, 0},
		UserFn: func(t float64, loadValue float64) float64 { return 2 * t },
	}
	v, err := l.Evaluate(3, &mbs.MarkerData{})
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "scaled force", 1e-17, v, []float64{6, 0, 0})
}

func Test_forcevector_userfunc_panic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forcevector_userfunc_panic01")

	l := &ForceVector{
		Name:   "boom",
		Marker: 0,
		Value:  linalg.Vec3{1, 0, 0},
		UserFn: func(t float64, loadValue float64) float64 { panic("bad scale") },
	}
	_, err := l.Evaluate(0, &mbs.MarkerData{})
	if err == nil {
		tst.Fatalf("expected an error from a panicking user function, got nil")
	}
	merr, ok := err.(*mbs.Error)
	if !ok {
		tst.Fatalf("error type = %T, want *mbs.Error", err)
	}
	if merr.Kind != mbs.ErrUserFunction {
		tst.Errorf("error kind = %v, want ErrUserFunction", merr.Kind)
	}
}

func Test_torquevector01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("torquevector01")

	l := &TorqueVector{Marker: 1, Value: linalg.Vec3{0, 0, 4}}
	v, err := l.Evaluate(0, &mbs.MarkerData{})
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "constant torque", 1e-17, v, []float64{0, 0, 4})
}

func Test_coordinateload01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coordinateload01")

	l := &Coordinate{Marker: 0, Value: 7.5}
	v, err := l.Evaluate(0, &mbs.MarkerData{})
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "constant generalized force", 1e-17, v, []float64{7.5})
}

func Test_massproportional01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("massproportional01")

	l := &MassProportional{Marker: 0, Acceleration: linalg.Vec3{0, -9.81, 0}}
	md := &mbs.MarkerData{VectorValue: []float64{2.0}}
	v, err := l.Evaluate(0, md)
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "mass-scaled force", 1e-12, v, []float64{0, -19.62, 0})
}

func Test_massproportional_nomass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("massproportional_nomass01")

	l := &MassProportional{Marker: 0, Acceleration: linalg.Vec3{0, -9.81, 0}}
	v, err := l.Evaluate(0, &mbs.MarkerData{})
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "no mass reported => zero force", 1e-17, v, []float64{0, 0, 0})
}
