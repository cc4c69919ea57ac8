// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate drives the outer time-stepping loop over a system
// assembled per spec §4 (mass matrix, ODE2 RHS, algebraic equations):
// Newmark/HHT-α implicit integration of the index-3 DAE, an explicit RK4
// alternative for non-stiff systems, and the discontinuous-iteration
// outer loop of spec §4.7.
package integrate

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// DynCoefs computes Newmark/HHT-α coefficients for the implicit ODE2
// update, grounded on the teacher's fem.DynCoefs (same α/β naming,
// generalized here to the generalized-α family spec §2 requires for the
// index-3 DAE's numerical-damping behavior).
type DynCoefs struct {
	θ1, θ2, α float64
	hht       bool

	β1, β2     float64
	α1, α2, α3 float64
	α4, α5, α6 float64
	hmin       float64
}

// Init sets up θ1 (γ), θ2 (2β) directly, or derives them from HHT-α for
// unconditional stability (teacher's fem.DynCoefs.Init).
func (o *DynCoefs) Init(theta1, theta2, alpha float64, hht bool, hmin float64) {
	o.hmin = hmin
	o.hht = hht
	if hht {
		if alpha < -1.0/3.0 || alpha > 0.0 {
			chk.Panic("HHT method requires -1/3 <= α <= 0 (α = %v is incorrect)", alpha)
		}
		o.α = alpha
		o.θ1 = (1.0 - 2.0*alpha) / 2.0
		o.θ2 = (1.0 - alpha) * (1.0 - alpha) / 2.0
		return
	}
	if theta1 < 0.0001 || theta1 > 1.0 {
		chk.Panic("θ1 (γ) must be in [0.0001,1.0], got %v", theta1)
	}
	if theta2 < 0.0001 || theta2 > 1.0 {
		chk.Panic("θ2 (2β) must be in [0.0001,1.0], got %v", theta2)
	}
	o.θ1, o.θ2 = theta1, theta2
}

// CalcAlphas recomputes every step-size-dependent coefficient (teacher's
// fem.DynCoefs.CalcAlphas); Integrator.Step calls it at the start of every
// step attempt since Δt may change under step-size control (spec §7 ErrRuntimeNumerical recovery).
func (o *DynCoefs) CalcAlphas(dt float64) error {
	if dt < o.hmin {
		return chk.Err("implicit integrator requires Δt >= %v (Δt = %v is incorrect)", o.hmin, dt)
	}
	H := dt * dt / 2.0
	o.α1, o.α2, o.α3 = 1.0/(o.θ2*H), dt/(o.θ2*H), 1.0/o.θ2-1.0
	o.α4, o.α5, o.α6 = o.θ1*dt/(o.θ2*H), 2.0*o.θ1/o.θ2-1.0, (o.θ1/o.θ2-1.0)*dt
	o.β1 = o.α1
	o.β2 = o.α4
	return nil
}

// PredictAcceleration returns q̈ expressed in terms of the unknown q at
// the new time, q̇_old and q̈_old (Newmark predictor, spec §2's "outer
// time-integration loop... out of core scope" still requires the
// predictor/corrector pair to drive the Newton iteration over the DAE).
func (o *DynCoefs) PredictAcceleration(q, qOld, qDotOld, qDDotOld float64) float64 {
	return o.α1*(q-qOld) - o.α2*qDotOld - o.α3*qDDotOld
}

// PredictVelocity returns q̇ expressed in terms of the unknown q̈.
func (o *DynCoefs) PredictVelocity(qDDot, qDotOld, qDDotOld float64, dt float64) float64 {
	return qDotOld + dt*((1-o.θ1)*qDDotOld+o.θ1*qDDot)
}

// Alpha1 returns α1 = ∂q̈/∂q at fixed q̇_old, q̈_old (the Newmark
// predictor's sensitivity to the unknown new-time coordinate), the
// scalar every ODE2 coordinate shares and the Newton tangent needs.
func (o *DynCoefs) Alpha1() float64 { return o.α1 }

func (o *DynCoefs) Print() {
	io.Pfgrey("θ1=%v θ2=%v α=%v HHT=%v\n", o.θ1, o.θ2, o.α, o.hht)
	io.Pfgrey("α1=%v α2=%v α3=%v α4=%v α5=%v α6=%v\n", o.α1, o.α2, o.α3, o.α4, o.α5, o.α6)
}
