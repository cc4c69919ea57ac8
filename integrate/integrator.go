// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/system"
)

// Integrator drives the implicit Newmark/HHT-α Newton loop over a
// system's index-3 DAE (spec §4.6): predict, assemble the bordered
// tangent [α1 M - ∂f/∂q, Cqᵀ; Cq, 0], solve, correct, repeat until the
// residual falls below Tol or MaxIter is exhausted. Modeled on the
// teacher's Domain+Solver pairing (fem.Domain.LinSol, ele.Solution's
// ΔY/Psi/Zet/Chi star-variable bookkeeping), generalized from a single
// scalar field to the coupled ODE2/AE multibody system.
type Integrator struct {
	Sys     *system.System
	Coefs   DynCoefs
	MaxIter int
	Tol     float64
	Verbose bool
}

// NewImplicit builds an Integrator around a system that Sys.Assemble has
// already been run on. theta1/theta2/alpha/hht/hmin are forwarded to
// DynCoefs.Init.
func NewImplicit(sys *system.System, theta1, theta2, alpha float64, hht bool, hmin float64) *Integrator {
	it := &Integrator{Sys: sys, MaxIter: 20, Tol: 1e-9}
	it.Coefs.Init(theta1, theta2, alpha, hht, hmin)
	return it
}

// Step advances the system from t to t+dt. On return, ConfigCurrent
// holds the accepted new state and ConfigStartOfStep has been committed
// to match it; on error ConfigCurrent is left at its last Newton guess
// and the caller should call Sys.RestoreStartOfStep before retrying
// with a smaller dt (spec §7 ErrRuntimeNumerical recovery).
func (it *Integrator) Step(t, dt float64) error {
	if !it.Sys.IsConsistent() {
		return mbs.NewError(mbs.ErrFatalInvariant, "", "", "system must be assembled (Sys.Assemble) before stepping")
	}
	if err := it.Coefs.CalcAlphas(dt); err != nil {
		return mbs.NewError(mbs.ErrRuntimeNumerical, "", "dt", "%v", err)
	}
	sys := it.Sys
	n := sys.NumODE2()
	cur := sys.Data.Config(mbs.ConfigCurrent)
	start := sys.Data.Config(mbs.ConfigStartOfStep)

	qOld := append([]float64(nil), start.ODE2Coords...)
	vOld := append([]float64(nil), start.ODE2Vels...)
	aOld := append([]float64(nil), start.ODE2Accs...)
	copy(cur.ODE2Coords, qOld)

	nAE := sys.TotalAERows()
	converged := false
	tNew := t + dt

	for iter := 0; iter < it.MaxIter; iter++ {
		for i := 0; i < n; i++ {
			cur.ODE2Accs[i] = it.Coefs.PredictAcceleration(cur.ODE2Coords[i], qOld[i], vOld[i], aOld[i])
			cur.ODE2Vels[i] = it.Coefs.PredictVelocity(cur.ODE2Accs[i], vOld[i], aOld[i], dt)
		}

		mass := linalg.MatAlloc(n, n)
		if err := sys.ComputeMassMatrix(mbs.ConfigCurrent, mass); err != nil {
			return err
		}
		force := make([]float64, n)
		if err := sys.ComputeSystemODE2RHS(mbs.ConfigCurrent, tNew, force); err != nil {
			return err
		}

		var g []float64
		var jAE [][]float64
		if nAE > 0 {
			g = make([]float64, nAE)
			if err := sys.ComputeAlgebraicEquations(mbs.ConfigCurrent, tNew, false, g); err != nil {
				return err
			}
			jAE = linalg.MatAlloc(nAE, n)
			if err := sys.JacobianAE(mbs.ConfigCurrent, tNew, jAE); err != nil {
				return err
			}
		}

		total := n + nAE
		r := make([]float64, total)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += mass[i][j] * cur.ODE2Accs[j]
			}
			r[i] = sum - force[i]
		}
		for k := 0; k < nAE; k++ {
			lk := cur.AECoords[k]
			for i := 0; i < n; i++ {
				r[i] += jAE[k][i] * lk
			}
			r[n+k] = g[k]
		}

		if vecNorm(r) < it.Tol {
			converged = true
			break
		}

		dfdq := linalg.MatAlloc(n, n)
		if err := sys.JacobianODE2RHS(mbs.ConfigCurrent, tNew, dfdq); err != nil {
			return err
		}

		jac := linalg.MatAlloc(total, total)
		alpha1 := it.Coefs.Alpha1()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				jac[i][j] = alpha1*mass[i][j] - dfdq[i][j]
			}
		}
		for k := 0; k < nAE; k++ {
			for i := 0; i < n; i++ {
				jac[i][n+k] = jAE[k][i]
				jac[n+k][i] = jAE[k][i]
			}
		}

		rhs := make([]float64, total)
		for i := range r {
			rhs[i] = -r[i]
		}
		var solver DenseSolver
		if err := solver.Fact(jac); err != nil {
			return mbs.NewError(mbs.ErrRuntimeNumerical, "", "", "Newton tangent factorization failed: %v", err)
		}
		delta, err := solver.SolveOnce(rhs)
		if err != nil {
			return mbs.NewError(mbs.ErrRuntimeNumerical, "", "", "Newton linear solve failed: %v", err)
		}
		for i := 0; i < n; i++ {
			cur.ODE2Coords[i] += delta[i]
		}
		for k := 0; k < nAE; k++ {
			cur.AECoords[k] += delta[n+k]
		}
	}
	if !converged {
		return mbs.NewError(mbs.ErrRuntimeNumerical, "", "", "Newton iteration did not converge in %d iterations at t=%v, dt=%v", it.MaxIter, t, dt)
	}

	for discIter := 0; discIter < it.MaxIter; discIter++ {
		maxErr, needsJacUpdate, recStep, err := sys.PostNewtonIteration(tNew)
		if err != nil {
			return err
		}
		if maxErr < it.Tol {
			break
		}
		if recStep > 0 {
			return mbs.NewError(mbs.ErrRuntimeNumerical, "", "", "discontinuous iteration requests step reduction to %v", recStep)
		}
		_ = needsJacUpdate // a sparse/Jacobian-caching integrator would refactor here; this dense one refactors every Newton iteration already.
	}

	if err := sys.PostDiscontinuousIterationStep(dt); err != nil {
		return err
	}
	if it.Verbose {
		io.Pfgreen("integrate: accepted step t=%v dt=%v\n", t, dt)
	}
	return nil
}

func vecNorm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
