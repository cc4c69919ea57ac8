// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

func Test_coordinateconstraint01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coordinateconstraint01")

	c := &CoordinateConstraint{Markers: [2]int{0, 1}, Offset: 0.5}
	chk.Scalar(tst, "NumConstraintEquations", 1e-17, float64(c.NumConstraintEquations()), 1)

	m0 := &mbs.MarkerData{VectorValue: []float64{1.0}, VectorValueT: []float64{0.1}, Jacobian: [][]float64{{1, 0}}}
	m1 := &mbs.MarkerData{VectorValue: []float64{1.7}, VectorValueT: []float64{0.1}, Jacobian: [][]float64{{0, 1, 0}}}

	g := make([]float64, 1)
	if err := c.ComputeAlgebraicEquations([2]*mbs.MarkerData{m0, m1}, 0, false, g); err != nil {
		tst.Fatalf("ComputeAlgebraicEquations: %v", err)
	}
	chk.Scalar(tst, "g = q1-q0-offset", 1e-15, g[0], 1.7-1.0-0.5)

	gdot := make([]float64, 1)
	if err := c.ComputeAlgebraicEquations([2]*mbs.MarkerData{m0, m1}, 0, true, gdot); err != nil {
		tst.Fatalf("ComputeAlgebraicEquations velocity level: %v", err)
	}
	chk.Scalar(tst, "ġ = q̇1-q̇0", 1e-15, gdot[0], 0.0)

	jOde2 := [][]float64{make([]float64, 5)}
	if err := c.ComputeJacobianAE([2]*mbs.MarkerData{m0, m1}, 0, jOde2, nil, nil); err != nil {
		tst.Fatalf("ComputeJacobianAE: %v", err)
	}
	chk.Vector(tst, "∂g/∂q", 1e-15, jOde2[0], []float64{-1, 0, 0, 1, 0})
}
