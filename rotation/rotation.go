// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rotation implements the rotation-parameterization primitives
// every rigid-body node type composes with: Euler parameters (unit
// quaternions), Tait-Bryan (Rxyz) angles, the SO(3) rotation vector with
// its Lie-group exp/log maps, and the G / G_local operators that relate
// rotation-coordinate velocities to angular velocity. Bodies and markers
// never hard-code a parameterization; they call through these five
// primitives (RotationMatrix, AngularVelocity, AngularVelocityLocal, G /
// GLocal, GTv_q / GLocalTv_q), per spec §9.
package rotation

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
)

// EulerParameters is a unit quaternion e=(e0,e1,e2,e3) parameterizing a
// rigid-body rotation (RigidBodyEP node, 4 ODE2 coordinates + 1 AE row).
type EulerParameters [4]float64

// NewEulerParametersIdentity returns the identity rotation (1,0,0,0).
func NewEulerParametersIdentity() EulerParameters {
	return EulerParameters{1, 0, 0, 0}
}

// NormSquared returns eᵀe, used both by the AE normalization residual and
// by invariant checks (§8 property 2).
func (e EulerParameters) NormSquared() float64 {
	return e[0]*e[0] + e[1]*e[1] + e[2]*e[2] + e[3]*e[3]
}

// RotationMatrix returns SO(3) for the given Euler parameters.
func (e EulerParameters) RotationMatrix() linalg.Mat3 {
	e0, e1, e2, e3 := e[0], e[1], e[2], e[3]
	return linalg.Mat3{
		{2 * (e0*e0 + e1*e1) - 1, 2 * (e1*e2 - e0*e3), 2 * (e1*e3 + e0*e2)},
		{2 * (e1*e2 + e0*e3), 2 * (e0*e0 + e2*e2) - 1, 2 * (e2*e3 - e0*e1)},
		{2 * (e1*e3 - e0*e2), 2 * (e2*e3 + e0*e1), 2 * (e0*e0 + e3*e3) - 1},
	}
}

// G returns E̅, the 3x4 EP "G matrix" (Shabana convention), which maps ė
// to world angular velocity as ω = 2·E̅·ė.
func (e EulerParameters) G() [3][4]float64 {
	e0, e1, e2, e3 := e[0], e[1], e[2], e[3]
	return [3][4]float64{
		{-e1, e0, -e3, e2},
		{-e2, e3, e0, -e1},
		{-e3, -e2, e1, e0},
	}
}

// GLocal returns the 3x4 matrix mapping ė to body-fixed angular velocity:
// ω̄ = 2·GLocal·ė.
func (e EulerParameters) GLocal() [3][4]float64 {
	e0, e1, e2, e3 := e[0], e[1], e[2], e[3]
	return [3][4]float64{
		{-e1, e0, e3, -e2},
		{-e2, -e3, e0, e1},
		{-e3, e2, -e1, e0},
	}
}

func mat34MulVec4(G [3][4]float64, v [4]float64) linalg.Vec3 {
	var r linalg.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			r[i] += G[i][j] * v[j]
		}
	}
	return r.Scale(2)
}

// AngularVelocity returns world angular velocity ω = 2·G·ė given ė.
func (e EulerParameters) AngularVelocity(eDot [4]float64) linalg.Vec3 {
	return mat34MulVec4(e.G(), eDot)
}

// AngularVelocityLocal returns body-fixed angular velocity ω̄ = 2·GLocal·ė.
func (e EulerParameters) AngularVelocityLocal(eDot [4]float64) linalg.Vec3 {
	return mat34MulVec4(e.GLocal(), eDot)
}

// NormalizationResidual returns g(e) = eᵀe - 1, the AE row every
// RigidBodyEP node contributes (spec §4.2).
func (e EulerParameters) NormalizationResidual() float64 {
	return e.NormSquared() - 1
}

// NormalizationJacobian returns ∂g/∂q = [0,0,0, 2e0,2e1,2e2,2e3] (the
// translation block is zero; only rotation coordinates appear).
func (e EulerParameters) NormalizationJacobian() [4]float64 {
	return [4]float64{2 * e[0], 2 * e[1], 2 * e[2], 2 * e[3]}
}

// FromRotationMatrix recovers Euler parameters from R (Spurrier's method),
// used by the round-trip test (§8 property 3) and by initial-condition
// composition.
func FromRotationMatrix(R linalg.Mat3) EulerParameters {
	tr := R[0][0] + R[1][1] + R[2][2]
	var e EulerParameters
	if tr > -0.999999999 {
		e0 := 0.5 * math.Sqrt(1+tr)
		e[0] = e0
		e[1] = (R[2][1] - R[1][2]) / (4 * e0)
		e[2] = (R[0][2] - R[2][0]) / (4 * e0)
		e[3] = (R[1][0] - R[0][1]) / (4 * e0)
		return e
	}
	// tr near -1: pick the largest diagonal element to avoid division by ~0
	i := 0
	if R[1][1] > R[i][i] {
		i = 1
	}
	if R[2][2] > R[i][i] {
		i = 2
	}
	switch i {
	case 0:
		e1 := 0.5 * math.Sqrt(1+R[0][0]-R[1][1]-R[2][2])
		e[1] = e1
		e[0] = (R[2][1] - R[1][2]) / (4 * e1)
		e[2] = (R[0][1] + R[1][0]) / (4 * e1)
		e[3] = (R[0][2] + R[2][0]) / (4 * e1)
	case 1:
		e2 := 0.5 * math.Sqrt(1+R[1][1]-R[0][0]-R[2][2])
		e[2] = e2
		e[0] = (R[0][2] - R[2][0]) / (4 * e2)
		e[1] = (R[0][1] + R[1][0]) / (4 * e2)
		e[3] = (R[1][2] + R[2][1]) / (4 * e2)
	default:
		e3 := 0.5 * math.Sqrt(1+R[2][2]-R[0][0]-R[1][1])
		e[3] = e3
		e[0] = (R[1][0] - R[0][1]) / (4 * e3)
		e[1] = (R[0][2] + R[2][0]) / (4 * e3)
		e[2] = (R[1][2] + R[2][1]) / (4 * e3)
	}
	return e
}

// RotXYZ is the intrinsic Tait-Bryan (Rxyz) angle triple (RigidBodyRxyz
// node, 3 ODE2 coordinates).
type RotXYZ [3]float64

// RotationMatrix returns R = Rx(φ)·Ry(θ)·Rz(ψ) in the intrinsic x-y-z
// convention used throughout the source (RotXYZ2RotationMatrix).
func (r RotXYZ) RotationMatrix() linalg.Mat3 {
	cx, sx := math.Cos(r[0]), math.Sin(r[0])
	cy, sy := math.Cos(r[1]), math.Sin(r[1])
	cz, sz := math.Cos(r[2]), math.Sin(r[2])
	Rx := linalg.Mat3{{1, 0, 0}, {0, cx, -sx}, {0, sx, cx}}
	Ry := linalg.Mat3{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}
	Rz := linalg.Mat3{{cz, -sz, 0}, {sz, cz, 0}, {0, 0, 1}}
	return Rx.Mul(Ry).Mul(Rz)
}

// G returns the 3x3 matrix mapping angle rates to world angular velocity:
// ω = G·[φ̇,θ̇,ψ̇]ᵀ.
func (r RotXYZ) G() linalg.Mat3 {
	cx, sx := math.Cos(r[0]), math.Sin(r[0])
	cy, sy := math.Cos(r[1]), math.Sin(r[1])
	return linalg.Mat3{
		{1, 0, sy},
		{0, cx, -sx * cy},
		{0, sx, cx * cy},
	}
}

// GLocal returns the matrix mapping angle rates to body-fixed angular
// velocity: ω̄ = GLocal·[φ̇,θ̇,ψ̇]ᵀ.
func (r RotXYZ) GLocal() linalg.Mat3 {
	cy, sy := math.Cos(r[1]), math.Sin(r[1])
	cz, sz := math.Cos(r[2]), math.Sin(r[2])
	return linalg.Mat3{
		{cy * cz, sz, 0},
		{-cy * sz, cz, 0},
		{sy, 0, 1},
	}
}

// AngularVelocity returns ω = G(r)·rDot.
func (r RotXYZ) AngularVelocity(rDot linalg.Vec3) linalg.Vec3 {
	return r.G().MulVec(rDot)
}

// AngularVelocityLocal returns ω̄ = GLocal(r)·rDot.
func (r RotXYZ) AngularVelocityLocal(rDot linalg.Vec3) linalg.Vec3 {
	return r.GLocal().MulVec(rDot)
}

// RotXYZFromRotationMatrix recovers Rxyz angles from R (inverse of
// RotationMatrix), used by the round-trip test (§8 property 3). Valid for
// angles strictly inside (-π/2, π/2) for the middle angle (no gimbal
// singularity handling beyond that, matching the source's documented
// domain).
func RotXYZFromRotationMatrix(R linalg.Mat3) RotXYZ {
	theta := math.Asin(clamp(R[0][2], -1, 1))
	var phi, psi float64
	if math.Abs(math.Cos(theta)) > 1e-12 {
		phi = math.Atan2(-R[1][2], R[2][2])
		psi = math.Atan2(-R[0][1], R[0][0])
	} else {
		// gimbal lock: only phi-psi sum is determined; pick psi=0
		phi = math.Atan2(R[2][1], R[1][1])
		psi = 0
	}
	return RotXYZ{phi, theta, psi}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RotationVector parameterizes SO(3) via the exponential map: R = exp(θ̃),
// used by the RigidBodyRotVec Lie-group node (stored as Data, updated by
// left-translation composition rather than direct integration).
type RotationVector linalg.Vec3

// Exp returns R = exp(Skew(θ)), the Rodrigues formula.
func (theta RotationVector) Exp() linalg.Mat3 {
	v := linalg.Vec3(theta)
	angle := v.Norm()
	if angle < 1e-12 {
		// R ≈ I + Skew(v) + O(v²)
		return linalg.Identity3().Add(linalg.Skew(v))
	}
	k := v.Scale(1 / angle)
	K := linalg.Skew(k)
	sinA, cosA := math.Sin(angle), math.Cos(angle)
	return linalg.Identity3().Add(K.Scale(sinA)).Add(K.Mul(K).Scale(1 - cosA))
}

// Log returns the rotation vector θ such that exp(Skew(θ)) = R
// (log_SO(3), spec §4.2/GLOSSARY TexpSO(3)).
func Log(R linalg.Mat3) RotationVector {
	tr := R[0][0] + R[1][1] + R[2][2]
	cosA := clamp((tr-1)/2, -1, 1)
	angle := math.Acos(cosA)
	if angle < 1e-9 {
		// small-angle: θ ≈ vee(R - Rᵀ)/2
		return RotationVector{
			(R[2][1] - R[1][2]) / 2,
			(R[0][2] - R[2][0]) / 2,
			(R[1][0] - R[0][1]) / 2,
		}
	}
	if math.Pi-angle < 1e-9 {
		chk.Panic("rotation.Log: angle near π is not supported by this parameterization (non-unique axis)")
	}
	s := angle / (2 * math.Sin(angle))
	return RotationVector{
		s * (R[2][1] - R[1][2]),
		s * (R[0][2] - R[2][0]),
		s * (R[1][0] - R[0][1]),
	}
}

// ComposeLeft implements the left-translation update used by
// RigidBodyRotVec: θ ← log(exp(θ0)·exp(Δθ)).
func ComposeLeft(theta0, dtheta RotationVector) RotationVector {
	R0 := theta0.Exp()
	dR := dtheta.Exp()
	return Log(R0.Mul(dR))
}

// TexpSO3 is the tangent operator of the exponential map on SO(3): it maps
// a rotation-vector velocity θ̇ to body-fixed angular velocity, ω̄ =
// TexpSO3(θ)·θ̇, and is required to differentiate the Lie-group residual
// consistently (GLOSSARY).
func TexpSO3(theta RotationVector) linalg.Mat3 {
	v := linalg.Vec3(theta)
	angle := v.Norm()
	K := linalg.Skew(v)
	if angle < 1e-9 {
		return linalg.Identity3().Sub(K.Scale(0.5))
	}
	a2 := angle * angle
	c1 := (1 - math.Cos(angle)) / a2
	c2 := (angle - math.Sin(angle)) / (a2 * angle)
	return linalg.Identity3().Sub(K.Scale(c1)).Add(K.Mul(K).Scale(c2))
}

// TexpSE3 is the analogous tangent operator on SE(3), used by
// GeometricallyExactBeam's incremental strain derivative (spec §4.4),
// returning the 6x6 block acting on [Δθ; Δu] spatial increments.
func TexpSE3(theta, u RotationVector) linalg.Mat6 {
	Tso3 := TexpSO3(theta)
	// SE(3) tangent operator's translational coupling block, evaluated via
	// the same series as TexpSO3 but acting on the u-θ cross coupling
	// (first-order accurate coupling term, sufficient for the Newton
	// update consumed by CObjectBeamGeometricallyExact's strain Jacobian).
	v := linalg.Vec3(theta)
	angle := v.Norm()
	var coupling linalg.Mat3
	uVec := linalg.Vec3(u)
	if angle < 1e-9 {
		coupling = linalg.Skew(uVec).Scale(-0.5)
	} else {
		K := linalg.Skew(v)
		a2 := angle * angle
		c1 := (1 - math.Cos(angle)) / a2
		c2 := (angle - math.Sin(angle)) / (a2 * angle)
		Ku := linalg.Skew(uVec)
		coupling = Ku.Scale(-c1).Add(K.Mul(Ku).Add(Ku.Mul(K)).Scale(c2 / 2)).Scale(-1)
	}
	var T linalg.Mat6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T[i][j] = Tso3[i][j]
			T[i+3][j+3] = Tso3[i][j]
			T[i+3][j] = coupling[i][j]
		}
	}
	return T
}

// TexpSE3Inv inverts TexpSE3 by exploiting its block lower-triangular
// shape [[A,0],[C,A]] (A=TexpSO3(theta)): the inverse is
// [[A⁻¹,0],[-A⁻¹CA⁻¹,A⁻¹]], used by GeometricallyExactBeam's
// ComputeODE2LHS to map sectional stress back onto each node's
// incremental-motion coordinates (spec §4.4 "left-multiplies by
// T_SE(3)^{-T}(Δu, Δθ)").
func TexpSE3Inv(theta, u RotationVector) linalg.Mat6 {
	T := TexpSE3(theta, u)
	var A, C linalg.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j] = T[i][j]
			C[i][j] = T[i+3][j]
		}
	}
	Ainv := A.Inverse()
	lowerLeft := Ainv.Mul(C).Mul(Ainv).Scale(-1)
	var Tinv linalg.Mat6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Tinv[i][j] = Ainv[i][j]
			Tinv[i+3][j+3] = Ainv[i][j]
			Tinv[i+3][j] = lowerLeft[i][j]
		}
	}
	return Tinv
}
