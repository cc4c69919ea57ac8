// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rotation

import "github.com/slyandsmart/EXUDYN-sub000/linalg"

// GTv_q returns d(Gᵀv)/dq for a given world-frame vector v and the current
// Euler parameters e (spec §4.2: "derivatives of Gᵀv w.r.t. rotation
// coordinates - required by connector Jacobians; implemented analytically
// for EP"). The result is a 4x4 block: row i, column j is
// ∂(Gᵀv)_i/∂e_j.
func (e EulerParameters) GTv_q(v linalg.Vec3) [4][4]float64 {
	// Gᵀv is linear in e for Euler parameters (G is linear in e), so the
	// derivative is the constant matrix obtained by differentiating each
	// entry of G symbolically; built from the same structure as G().
	var out [4][4]float64
	// (2·G(e))ᵀ·v = 2 * Ḡ(v) * e  where 2·G(e) is the map ω = 2·G·ė and
	// Ḡ(v) is linear in v and independent of e; thus d(Gᵀv)/de = 2·Ḡ(v).
	Gv := barG(v)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = 2 * Gv[i][j]
		}
	}
	return out
}

// GLocalTv_q is the body-fixed analogue of GTv_q.
func (e EulerParameters) GLocalTv_q(v linalg.Vec3) [4][4]float64 {
	var out [4][4]float64
	Gv := barGLocal(v)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = 2 * Gv[i][j]
		}
	}
	return out
}

// barG returns the 4x4 matrix Ḡ(v) such that Gᵀ(e)·v = Ḡ(v)·e, derived by
// transposing e.G() and reading off the linear coefficients of each e_k.
func barG(v linalg.Vec3) [4][4]float64 {
	vx, vy, vz := v[0], v[1], v[2]
	return [4][4]float64{
		{0, -vx, -vy, -vz},
		{vx, 0, -vz, vy},
		{vy, vz, 0, -vx},
		{vz, -vy, vx, 0},
	}
}

func barGLocal(v linalg.Vec3) [4][4]float64 {
	vx, vy, vz := v[0], v[1], v[2]
	return [4][4]float64{
		{0, -vx, -vy, -vz},
		{vx, 0, vz, -vy},
		{vy, -vz, 0, vx},
		{vz, vy, -vx, 0},
	}
}

// GTvQNumerical computes d(G(q)ᵀv)/dq by central differences, the fallback
// used for parameterizations without a closed form (spec §4.2: "via
// auto-differentiation for rotation-vector"). f must return G(q)ᵀv for a
// perturbed coordinate vector q.
func GTvQNumerical(q []float64, f func(q []float64) []float64, h float64) [][]float64 {
	n := len(q)
	base := f(q)
	m := len(base)
	out := linalg.MatAlloc(m, n)
	qq := make([]float64, n)
	copy(qq, q)
	for j := 0; j < n; j++ {
		orig := qq[j]
		qq[j] = orig + h
		fp := f(qq)
		qq[j] = orig - h
		fm := f(qq)
		qq[j] = orig
		for i := 0; i < m; i++ {
			out[i][j] = (fp[i] - fm[i]) / (2 * h)
		}
	}
	return out
}
