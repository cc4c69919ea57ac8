// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg implements the fixed-size vector/matrix kernels and 6D
// Plücker spatial transforms used throughout the multibody core: skew
// matrices, spatial cross products, and the spatial transforms consumed by
// the kinematic-tree CRBA/RNEA implementation.
package linalg

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Vec3 is a 3-component vector; kept as a plain array so bodies/nodes can
// pass it by value without aliasing concerns.
type Vec3 [3]float64

// Mat3 is a 3x3 matrix stored row-major, mirroring gosl/la's row-major
// dense convention ([][]float64 built with la.MatAlloc).
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns s*a.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{s * a[0], s * a[1], s * a[2]}
}

// Dot returns a·b.
func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm returns the Euclidean norm of a.
func (a Vec3) Norm() float64 {
	return la.VecNorm(a[:])
}

// Skew returns the 3x3 skew-symmetric (cross-product) matrix of v, such
// that Skew(v)*w == v×w for any w.
func Skew(v Vec3) Mat3 {
	return Mat3{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// MulVec returns M*v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	var r Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += m[i][j] * v[j]
		}
	}
	return r
}

// Mul returns m*n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return r
}

// Add returns m+n.
func (m Mat3) Add(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + n[i][j]
		}
	}
	return r
}

// Scale returns s*m.
func (m Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = s * m[i][j]
		}
	}
	return r
}

// T returns the transpose of m.
func (m Mat3) T() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[j][i] = m[i][j]
		}
	}
	return r
}

// Col returns column j (j in 0..2).
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// ColumnVector is an alias kept for readability at call sites that mirror
// the original C++ GetColumnVector<3> naming.
func (m Mat3) ColumnVector(j int) Vec3 { return m.Col(j) }

// Frobenius returns the Frobenius norm of m.
func (m Mat3) Frobenius() float64 {
	s := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += m[i][j] * m[i][j]
		}
	}
	return math.Sqrt(s)
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns m^-1 via the cofactor/adjugate formula, used by
// rotation.TexpSE3Inv (GeometricallyExactBeam's strain transform is
// always invertible away from the TexpSO3 singularity at angle=2π, which
// callers don't cross in a single load/time step).
func (m Mat3) Inverse() Mat3 {
	d := m.Det()
	adj := Mat3{
		{m[1][1]*m[2][2] - m[1][2]*m[2][1], m[0][2]*m[2][1] - m[0][1]*m[2][2], m[0][1]*m[1][2] - m[0][2]*m[1][1]},
		{m[1][2]*m[2][0] - m[1][0]*m[2][2], m[0][0]*m[2][2] - m[0][2]*m[2][0], m[0][2]*m[1][0] - m[0][0]*m[1][2]},
		{m[1][0]*m[2][1] - m[1][1]*m[2][0], m[0][1]*m[2][0] - m[0][0]*m[2][1], m[0][0]*m[1][1] - m[0][1]*m[1][0]},
	}
	return adj.Scale(1 / d)
}

// Mat6 is a 6x6 spatial (Plücker) matrix, used for the motion/force
// transforms X in the kinematic-tree CRBA/RNEA sweep (§4.4 KinematicTree).
type Mat6 [6][6]float64

// Vec6 is a 6D spatial vector [angular(3); linear(3)], the Plücker
// convention used by the CRBA/RNEA sweep.
type Vec6 [6]float64

// NewVec6 builds a spatial vector from an angular and a linear part.
func NewVec6(angular, linear Vec3) Vec6 {
	return Vec6{angular[0], angular[1], angular[2], linear[0], linear[1], linear[2]}
}

// Angular returns the angular (top) part of a spatial vector.
func (v Vec6) Angular() Vec3 { return Vec3{v[0], v[1], v[2]} }

// Linear returns the linear (bottom) part of a spatial vector.
func (v Vec6) Linear() Vec3 { return Vec3{v[3], v[4], v[5]} }

// Add returns v+w.
func (v Vec6) Add(w Vec6) Vec6 {
	var r Vec6
	for i := range r {
		r[i] = v[i] + w[i]
	}
	return r
}

// Sub returns v-w.
func (v Vec6) Sub(w Vec6) Vec6 {
	var r Vec6
	for i := range r {
		r[i] = v[i] - w[i]
	}
	return r
}

// Scale returns s*v.
func (v Vec6) Scale(s float64) Vec6 {
	var r Vec6
	for i := range r {
		r[i] = s * v[i]
	}
	return r
}

// SpatialCross computes the spatial (motion) cross product v ×* w, used in
// the RNEA forward sweep: v×w = [ωv×ωw ; ωv×ℓw + ℓv×ωw].
func SpatialCross(v, w Vec6) Vec6 {
	wv, lv := v.Angular(), v.Linear()
	ww, lw := w.Angular(), w.Linear()
	return NewVec6(wv.Cross(ww), wv.Cross(lw).Add(lv.Cross(ww)))
}

// SpatialCrossForce computes the dual (force) cross product v ×*f w, used
// to map a velocity onto a wrench's rate of change: [ωv×ωw+ℓv×ℓw ; ωv×ℓw].
func SpatialCrossForce(v, w Vec6) Vec6 {
	wv, lv := v.Angular(), v.Linear()
	ww, lw := w.Angular(), w.Linear()
	return NewVec6(wv.Cross(ww).Add(lv.Cross(lw)), wv.Cross(lw))
}

// PlueckerTransform builds the 6x6 spatial transform that maps spatial
// motion vectors expressed in a frame translated by p and rotated by R
// (frame B, relative to frame A: a point fixed in B at offset p, oriented
// by R) into frame A: X = [[R, 0], [-R*skew(p), R]] in the convention
// consumed by KinematicTree's forward sweep (X_up[i] = X_J(q_i)·X_L[i]).
func PlueckerTransform(R Mat3, p Vec3) Mat6 {
	var X Mat6
	rs := R.Mul(Skew(p)).Scale(-1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			X[i][j] = R[i][j]
			X[i+3][j+3] = R[i][j]
			X[i+3][j] = rs[i][j]
		}
	}
	return X
}

// MulVec returns X*v.
func (X Mat6) MulVec(v Vec6) Vec6 {
	var r Vec6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			r[i] += X[i][j] * v[j]
		}
	}
	return r
}

// T returns the transpose of X, used in the RNEA backward sweep
// (f_vp[parent] += X_up_iᵀ·f_vp[i]).
func (X Mat6) T() Mat6 {
	var r Mat6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			r[j][i] = X[i][j]
		}
	}
	return r
}

// MulMat returns X*Y.
func (X Mat6) MulMat(Y Mat6) Mat6 {
	var r Mat6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for k := 0; k < 6; k++ {
				r[i][j] += X[i][k] * Y[k][j]
			}
		}
	}
	return r
}

// Add returns X+Y.
func (X Mat6) Add(Y Mat6) Mat6 {
	var r Mat6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			r[i][j] = X[i][j] + Y[i][j]
		}
	}
	return r
}

// Dot returns the spatial scalar product vᵀw, used by CRBA/RNEA to
// project a spatial force onto a joint's motion subspace.
func (v Vec6) Dot(w Vec6) float64 {
	var s float64
	for i := 0; i < 6; i++ {
		s += v[i] * w[i]
	}
	return s
}

// SpatialInertia builds the 6x6 spatial inertia of a rigid link with mass
// m, center of mass c (relative to the link frame) and rotational inertia
// Ic about the center of mass, in the convention used by CRBA's
// "inertia at link" step.
func SpatialInertia(m float64, c Vec3, Ic Mat3) Mat6 {
	cx := Skew(c)
	var I Mat6
	// top-left: Ic + m*skew(c)*skew(c)^T  (parallel axis theorem about link origin)
	top := Ic.Sub(cx.Mul(cx).Scale(m))
	mcx := cx.Scale(m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			I[i][j] = top[i][j]
			I[i][j+3] = mcx[i][j]
			I[i+3][j] = mcx[j][i] // transpose
		}
		I[i+3][i+3] = m
	}
	return I
}

// Sub returns m-n for Mat3, used by SpatialInertia's parallel-axis term.
func (m Mat3) Sub(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] - n[i][j]
		}
	}
	return r
}

// MatAlloc wraps gosl/la.MatAlloc so dynamic-size dense blocks used by
// Jacobian assembly share one allocation idiom with the teacher.
func MatAlloc(m, n int) [][]float64 {
	return la.MatAlloc(m, n)
}

// CheckSquare panics (via chk.Panic, matching the teacher's fatal-invariant
// style) if m is not square; used by callers that accept a generic
// [][]float64 block but require 3x3/6x6 shape at runtime boundaries.
func CheckSquare(m [][]float64) {
	n := len(m)
	for _, row := range m {
		if len(row) != n {
			chk.Panic("linalg: matrix is not square: %d x %d", n, len(row))
		}
	}
}
