// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/system"
)

// ExplicitRK4 is the non-stiff alternative to Integrator (spec §4.6:
// "an explicit integrator is acceptable for systems without algebraic
// constraints"). It requires TotalAERows() == 0; a constrained system
// must use the implicit Integrator instead, since RK4 has no notion of
// an index-3 DAE's algebraic block.
type ExplicitRK4 struct {
	Sys     *system.System
	Verbose bool
}

// Step advances the system by dt with classical fourth-order
// Runge-Kutta applied to the first-order state (q, v); accelerations
// come from solving M(q) v̇ = f(q, v, t) at each of the four stages.
func (it *ExplicitRK4) Step(t, dt float64) error {
	sys := it.Sys
	if sys.TotalAERows() > 0 {
		return mbs.NewError(mbs.ErrParameterDomain, "", "", "ExplicitRK4 requires an unconstrained system (TotalAERows=%d)", sys.TotalAERows())
	}
	n := sys.NumODE2()
	cur := sys.Data.Config(mbs.ConfigCurrent)

	q0 := append([]float64(nil), cur.ODE2Coords...)
	v0 := append([]float64(nil), cur.ODE2Vels...)

	accel := func(q, v []float64, tt float64) ([]float64, error) {
		copy(cur.ODE2Coords, q)
		copy(cur.ODE2Vels, v)
		mass := linalg.MatAlloc(n, n)
		if err := sys.ComputeMassMatrix(mbs.ConfigCurrent, mass); err != nil {
			return nil, err
		}
		force := make([]float64, n)
		if err := sys.ComputeSystemODE2RHS(mbs.ConfigCurrent, tt, force); err != nil {
			return nil, err
		}
		var solver DenseSolver
		if err := solver.Fact(mass); err != nil {
			return nil, mbs.NewError(mbs.ErrRuntimeNumerical, "", "", "singular mass matrix: %v", err)
		}
		return solver.SolveOnce(force)
	}

	stage := func(q, v []float64, tt float64) (dq, dv []float64, err error) {
		a, err := accel(q, v, tt)
		if err != nil {
			return nil, nil, err
		}
		return v, a, nil
	}

	k1q, k1v, err := stage(q0, v0, t)
	if err != nil {
		return err
	}
	q2, v2 := axpy(q0, k1q, dt/2), axpy(v0, k1v, dt/2)
	k2q, k2v, err := stage(q2, v2, t+dt/2)
	if err != nil {
		return err
	}
	q3, v3 := axpy(q0, k2q, dt/2), axpy(v0, k2v, dt/2)
	k3q, k3v, err := stage(q3, v3, t+dt/2)
	if err != nil {
		return err
	}
	q4, v4 := axpy(q0, k3q, dt), axpy(v0, k3v, dt)
	k4q, k4v, err := stage(q4, v4, t+dt)
	if err != nil {
		return err
	}

	qNew := make([]float64, n)
	vNew := make([]float64, n)
	for i := 0; i < n; i++ {
		qNew[i] = q0[i] + dt/6*(k1q[i]+2*k2q[i]+2*k3q[i]+k4q[i])
		vNew[i] = v0[i] + dt/6*(k1v[i]+2*k2v[i]+2*k3v[i]+k4v[i])
	}
	copy(cur.ODE2Coords, qNew)
	copy(cur.ODE2Vels, vNew)
	if a, err := accel(qNew, vNew, t+dt); err == nil {
		copy(cur.ODE2Accs, a)
	}

	if err := sys.PostDiscontinuousIterationStep(dt); err != nil {
		return err
	}
	return nil
}

func axpy(base, delta []float64, scale float64) []float64 {
	out := make([]float64, len(base))
	for i := range base {
		out[i] = base[i] + scale*delta[i]
	}
	return out
}
