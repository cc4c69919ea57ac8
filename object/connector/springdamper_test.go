// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// identity3Jacobian returns a 3x3 identity Jacobian, standing in for a
// plain position marker's ∂r/∂q̇ (each marker owns 3 independent
// coordinates, unrelated to the other marker's).
func identity3Jacobian() [][]float64 {
	I := linalg.Identity3()
	return [][]float64{I[0][:], I[1][:], I[2][:]}
}

// Test_cartesianspringdamper01 checks the spring-damper force direction
// (attracting when stretched, damping opposing relative velocity) and
// that marker0's and marker1's generalized-force contributions are equal
// and opposite (Newton's third law, spec §4.5 penalty connector).
func Test_cartesianspringdamper01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cartesianspringdamper01")

	c := &CartesianSpringDamper{
		Markers:   [2]int{0, 1},
		Stiffness: [3]float64{10, 10, 10},
		Damping:   [3]float64{1, 1, 1},
	}

	m0 := &mbs.MarkerData{
		Position:         linalg.Vec3{0, 0, 0},
		Velocity:         linalg.Vec3{},
		PositionJacobian: identity3Jacobian(),
	}
	m1 := &mbs.MarkerData{
		Position:         linalg.Vec3{1, 0, 0},
		Velocity:         linalg.Vec3{0.1, 0, 0},
		PositionJacobian: identity3Jacobian(),
	}

	out := make([]float64, 6)
	if err := c.ComputeODE2LHS([2]*mbs.MarkerData{m0, m1}, 0, out); err != nil {
		tst.Fatalf("ComputeODE2LHS: %v", err)
	}

	// f = k*d + c*v = 10*1 + 1*0.1 = 10.1 along x; ComputeODE2LHS scatters
	// -f onto marker0's coordinates and +f onto marker1's.
	want := []float64{-10.1, 0, 0, 10.1, 0, 0}
	chk.Vector(tst, "spring-damper generalized force", 1e-12, out, want)

	// equal-and-opposite: sum of both markers' x-force contributions is zero.
	chk.Scalar(tst, "x reaction sums to zero", 1e-12, out[0]+out[3], 0)
}
