// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import "github.com/cpmech/gosl/chk"

// DenseSolver factors and solves the dense augmented Newton system
// (mass/tangent block plus AE Jacobian border) every implicit step
// produces. The teacher's fem.Domain carries an la.LinSol (mumps or
// umfpack, both cgo-backed sparse factorizations selected by name);
// those solvers are unavailable to a pure-Go module and overkill for
// the dense, modest-sized systems typical multibody models assemble,
// so this keeps the same Fact-then-Solve lifecycle but factors with
// plain LU and partial pivoting (spec §4.6 names no particular linear
// algebra backend for the bordered Newton system).
type DenseSolver struct {
	n    int
	lu   [][]float64
	piv  []int
}

// Fact performs in-place LU decomposition with partial pivoting. A
// is consumed into the solver's own storage; the caller's matrix is
// left untouched.
func (s *DenseSolver) Fact(a [][]float64) error {
	n := len(a)
	s.n = n
	s.lu = make([][]float64, n)
	for i := range a {
		s.lu[i] = append([]float64(nil), a[i]...)
	}
	s.piv = make([]int, n)
	for i := range s.piv {
		s.piv[i] = i
	}
	for k := 0; k < n; k++ {
		p := k
		best := abs(s.lu[k][k])
		for i := k + 1; i < n; i++ {
			if v := abs(s.lu[i][k]); v > best {
				best, p = v, i
			}
		}
		if best == 0 {
			return chk.Err("DenseSolver.Fact: singular matrix at pivot %d", k)
		}
		if p != k {
			s.lu[k], s.lu[p] = s.lu[p], s.lu[k]
			s.piv[k], s.piv[p] = s.piv[p], s.piv[k]
		}
		for i := k + 1; i < n; i++ {
			m := s.lu[i][k] / s.lu[k][k]
			s.lu[i][k] = m
			for j := k + 1; j < n; j++ {
				s.lu[i][j] -= m * s.lu[k][j]
			}
		}
	}
	return nil
}

// SolveOnce solves A x = b for the matrix most recently factored by
// Fact, returning a freshly allocated x.
func (s *DenseSolver) SolveOnce(b []float64) ([]float64, error) {
	n := s.n
	if len(b) != n {
		return nil, chk.Err("DenseSolver.SolveOnce: rhs length %d does not match factored size %d", len(b), n)
	}
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[s.piv[i]]
		for j := 0; j < i; j++ {
			sum -= s.lu[i][j] * y[j]
		}
		y[i] = sum
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= s.lu[i][j] * x[j]
		}
		x[i] = sum / s.lu[i][i]
	}
	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
