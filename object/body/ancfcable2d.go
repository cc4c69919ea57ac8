// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"math"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// ode2CoordinateNode is the subset of node.GenericODE2's API an ANCF
// cable node needs (spec §4.4: "8-DOF slope-based planar beam"). A
// separate interface keeps this package free of an import on node, the
// same discipline RigidBody keeps through mbs.RigidBodyNode.
type ode2CoordinateNode interface {
	mbs.Node
	Coordinates(cfg mbs.ConfigurationType) []float64
	Velocities(cfg mbs.ConfigurationType) []float64
}

// ancfGaussPoints/ancfGaussWeights are the 5-point Gauss-Legendre rule on
// [-1,1], used to integrate axial/bending strain energy and the mass
// matrix along the element's material coordinate (spec §4.4 "axial and
// bending energy with Gauss quadrature").
var ancfGaussPoints = [5]float64{
	-0.9061798459386640,
	-0.5384693101056831,
	0,
	0.5384693101056831,
	0.9061798459386640,
}
var ancfGaussWeights = [5]float64{
	0.2369268850561891,
	0.4786286704993665,
	0.5688888888888889,
	0.4786286704993665,
	0.2369268850561891,
}

// ancfShapeFunctions returns the four cubic Hermite shape functions
// S1..S4 at material coordinate x along an element of length L:
// S1,S3 interpolate the two nodal positions, S2,S4 the two nodal slope
// vectors (grounded on CObjectALEANCFCable2D.cpp's ComputeShapeFunctions).
func ancfShapeFunctions(x, L float64) [4]float64 {
	xi := x / L
	xi2 := xi * xi
	xi3 := xi2 * xi
	return [4]float64{
		1 - 3*xi2 + 2*xi3,
		L * (xi - 2*xi2 + xi3),
		3*xi2 - 2*xi3,
		L * (-xi2 + xi3),
	}
}

// ancfShapeFunctionsDx is the x-derivative of ancfShapeFunctions.
func ancfShapeFunctionsDx(x, L float64) [4]float64 {
	xi := x / L
	xi2 := xi * xi
	return [4]float64{
		(-6*xi + 6*xi2) / L,
		1 - 4*xi + 3*xi2,
		(6*xi - 6*xi2) / L,
		-2*xi + 3*xi2,
	}
}

// ancfShapeFunctionsDxx is the second x-derivative, used by the
// curvature strain measure.
func ancfShapeFunctionsDxx(x, L float64) [4]float64 {
	xi := x / L
	return [4]float64{
		(-6 + 12*xi) / (L * L),
		(-4 + 6*xi) / L,
		(6 - 12*xi) / (L * L),
		(-2 + 6*xi) / L,
	}
}

// ANCFCable2D is the planar absolute-nodal-coordinate-formulation cable
// element (spec §3 Objects, §4.4): two nodes, 4 ODE2 coordinates each
// (position x, position y, slope dx/ds, slope dy/ds), cubic Hermite shape
// functions, Green-Lagrange axial strain and a curvature-based bending
// strain, both integrated by 5-point Gauss quadrature into a strain
// energy whose gradient gives the internal force (finite-differenced
// rather than hand-derived, the same fallback the Jacobian routines in
// package system already use for anything not worth an analytical
// derivation — spec §4.6).
type ANCFCable2D struct {
	Node0, Node1   ode2CoordinateNode
	Length         float64 // reference (undeformed) length L
	MassPerLength  float64 // ρA
	AxialStiffness float64 // EA
	BendStiffness  float64 // EI
}

func (b *ANCFCable2D) Category() mbs.ObjectCategory     { return mbs.ObjectBody }
func (b *ANCFCable2D) Capabilities() mbs.BodyCapability { return mbs.BodyMultiNoded }
func (b *ANCFCable2D) NumCoordinates() int              { return 8 }

func (b *ANCFCable2D) coordinates(cfg mbs.ConfigurationType) [8]float64 {
	var q [8]float64
	copy(q[0:4], b.Node0.Coordinates(cfg))
	copy(q[4:8], b.Node1.Coordinates(cfg))
	return q
}

func (b *ANCFCable2D) velocities(cfg mbs.ConfigurationType) [8]float64 {
	var qd [8]float64
	copy(qd[0:4], b.Node0.Velocities(cfg))
	copy(qd[4:8], b.Node1.Velocities(cfg))
	return qd
}

// position evaluates the deformed centerline at material coordinate s.
func (b *ANCFCable2D) position(q [8]float64, s float64) linalg.Vec3 {
	S := ancfShapeFunctions(s, b.Length)
	var x, y float64
	for i := 0; i < 4; i++ {
		x += S[i] * q[2*i]
		y += S[i] * q[2*i+1]
	}
	return linalg.Vec3{x, y, 0}
}

// slope evaluates r_x = dr/ds at material coordinate s.
func (b *ANCFCable2D) slope(q [8]float64, s float64) (rx, ry float64) {
	Sx := ancfShapeFunctionsDx(s, b.Length)
	for i := 0; i < 4; i++ {
		rx += Sx[i] * q[2*i]
		ry += Sx[i] * q[2*i+1]
	}
	return
}

func (b *ANCFCable2D) curvatureAt(q [8]float64, s float64) float64 {
	rx, ry := b.slope(q, s)
	Sxx := ancfShapeFunctionsDxx(s, b.Length)
	var rxx, ryy float64
	for i := 0; i < 4; i++ {
		rxx += Sxx[i] * q[2*i]
		ryy += Sxx[i] * q[2*i+1]
	}
	norm := math.Sqrt(rx*rx + ry*ry)
	if norm < 1e-14 {
		return 0
	}
	return (rx*ryy - ry*rxx) / (norm * norm * norm)
}

// strainEnergy integrates axial (Green-Lagrange) and bending (curvature)
// strain energy along the element by 5-point Gauss quadrature.
func (b *ANCFCable2D) strainEnergy(q [8]float64) float64 {
	var U float64
	for k := 0; k < 5; k++ {
		s := 0.5 * b.Length * (ancfGaussPoints[k] + 1)
		w := 0.5 * b.Length * ancfGaussWeights[k]
		rx, ry := b.slope(q, s)
		eps := 0.5 * (rx*rx + ry*ry - 1)
		kappa := b.curvatureAt(q, s)
		U += w * (0.5*b.AxialStiffness*eps*eps + 0.5*b.BendStiffness*kappa*kappa)
	}
	return U
}

// internalForce returns dU/dq by central differencing the strain energy,
// one coordinate at a time.
func (b *ANCFCable2D) internalForce(q [8]float64) [8]float64 {
	var f [8]float64
	for i := 0; i < 8; i++ {
		h := 1e-6 * math.Max(math.Abs(q[i]), 1)
		qp, qm := q, q
		qp[i] += h
		qm[i] -= h
		f[i] = (b.strainEnergy(qp) - b.strainEnergy(qm)) / (2 * h)
	}
	return f
}

// ComputeMassMatrix fills the 8x8 consistent mass matrix
// M_ij = ρA ∫ S_i S_j ds, block-diagonal in the x/y pair per shape
// function (spec §4.4).
func (b *ANCFCable2D) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error {
	for i := range out {
		for j := range out[i] {
			out[i][j] = 0
		}
	}
	for k := 0; k < 5; k++ {
		s := 0.5 * b.Length * (ancfGaussPoints[k] + 1)
		w := 0.5 * b.Length * ancfGaussWeights[k] * b.MassPerLength
		S := ancfShapeFunctions(s, b.Length)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				m := w * S[i] * S[j]
				out[2*i][2*j] += m
				out[2*i+1][2*j+1] += m
			}
		}
	}
	return nil
}

// ComputeODE2LHS contributes -dU/dq, the internal elastic force, in the
// same "force entering the RHS" convention package body's other types
// use (spec §4.4; compare RigidBody's negated gyroscopic term).
func (b *ANCFCable2D) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error {
	q := b.coordinates(cfg)
	f := b.internalForce(q)
	for i := 0; i < 8; i++ {
		out[i] = -f[i]
	}
	return nil
}

func (b *ANCFCable2D) GetPosition(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	q := b.coordinates(cfg)
	p := b.position(q, localPosition[0])
	if localPosition[1] != 0 {
		rx, ry := b.slope(q, localPosition[0])
		norm := math.Sqrt(rx*rx + ry*ry)
		if norm > 1e-14 {
			p[0] += localPosition[1] * (-ry / norm)
			p[1] += localPosition[1] * (rx / norm)
		}
	}
	return p
}

func (b *ANCFCable2D) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	qd := b.velocities(cfg)
	S := ancfShapeFunctions(localPosition[0], b.Length)
	var vx, vy float64
	for i := 0; i < 4; i++ {
		vx += S[i] * qd[2*i]
		vy += S[i] * qd[2*i+1]
	}
	return linalg.Vec3{vx, vy, 0}
}

// EvaluateAt/EvaluateAtVelocity satisfy marker.Cable2DShapeProvider (spec
// §3 MarkerBodyCable2DShape).
func (b *ANCFCable2D) EvaluateAt(cfg mbs.ConfigurationType, s float64) (pos, slope linalg.Vec3) {
	q := b.coordinates(cfg)
	pos = b.position(q, s)
	rx, ry := b.slope(q, s)
	slope = linalg.Vec3{rx, ry, 0}
	return
}

func (b *ANCFCable2D) EvaluateAtVelocity(cfg mbs.ConfigurationType, s float64) linalg.Vec3 {
	return b.GetVelocity(cfg, linalg.Vec3{s, 0, 0})
}

// NodalCoordinates satisfies marker.Cable2DCoordinatesProvider (spec §3
// MarkerBodyCable2DCoordinates).
func (b *ANCFCable2D) NodalCoordinates(cfg mbs.ConfigurationType) []float64 {
	q := b.coordinates(cfg)
	return q[:]
}

// Offset reports Node0's ODE2 offset: package system lays out an
// element's two nodes contiguously (node insertion order), so this is
// the start of the element's own 8-coordinate block.
func (b *ANCFCable2D) Offset(kind mbs.CoordinateKind) int { return b.Node0.Offset(kind) }

func (b *ANCFCable2D) TotalMass() float64 { return b.MassPerLength * b.Length }

func (b *ANCFCable2D) CenterOfMass(cfg mbs.ConfigurationType) linalg.Vec3 {
	return b.GetPosition(cfg, linalg.Vec3{b.Length / 2, 0, 0})
}

// GetPositionJacobian reports the center-of-mass Jacobian only
// (package marker's BodyMass is the one caller that needs it); an
// arbitrary material-coordinate Jacobian is not exposed since
// BodyCable2DShape/BodyCable2DCoordinates are the markers meant for
// attaching to points along the cable.
func (b *ANCFCable2D) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	S := ancfShapeFunctions(b.Length/2, b.Length)
	jac := linalg.MatAlloc(3, 8)
	for i := 0; i < 4; i++ {
		jac[0][2*i] = S[i]
		jac[1][2*i+1] = S[i]
	}
	return jac
}

var _ mbs.Body = (*ANCFCable2D)(nil)

// ANCFCable2DALE is ANCFCable2D's arbitrary-Lagrangian-Eulerian variant
// (spec §4.4): a ninth ODE2 coordinate carried by ALENode, the axial
// material flow velocity v, adds a mass-matrix coupling row/column and a
// quadratic-velocity/force contribution built from the precomputed
// M', M'', B', B'' tensors (grounded directly on
// original_source/Objects/CObjectALEANCFCable2D.cpp).
type ANCFCable2DALE struct {
	ANCFCable2D
	ALENode ode2CoordinateNode // 1 ODE2 coordinate: axial material velocity v
}

func (b *ANCFCable2DALE) NumCoordinates() int { return 9 }

// aleTerms returns the four 8x8 tensors CObjectALEANCFCable2D.cpp calls
// preComputedM1/M2/B1/B2: M1[2i][2j] = ρA∫S_i S_j' ds (M'), M2 = ρA∫S_i'
// S_j' ds (M''), and B1/B2 their boundary counterparts [S_iᵀS_j']_0^L /
// [S_i'ᵀS_j']_0^L (B'/B''), each block-replicated across the x/y pair.
func (b *ANCFCable2DALE) aleTerms() (M1, M2, B1, B2 [][]float64) {
	L := b.Length
	rhoA := b.MassPerLength
	M1 = linalg.MatAlloc(8, 8)
	M2 = linalg.MatAlloc(8, 8)
	B1 = linalg.MatAlloc(8, 8)
	B2 = linalg.MatAlloc(8, 8)

	S0 := ancfShapeFunctions(0, L)
	SL := ancfShapeFunctions(L, L)
	S0x := ancfShapeFunctionsDx(0, L)
	SLx := ancfShapeFunctionsDx(L, L)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			b1 := rhoA * (SL[i]*SLx[j] - S0[i]*S0x[j])
			b2 := rhoA * (SLx[i]*SLx[j] - S0x[i]*S0x[j])
			B1[2*i][2*j] = b1
			B1[2*i+1][2*j+1] = b1
			B2[2*i][2*j] = b2
			B2[2*i+1][2*j+1] = b2
		}
	}
	for k := 0; k < 5; k++ {
		s := 0.5 * L * (ancfGaussPoints[k] + 1)
		w := 0.5 * L * ancfGaussWeights[k] * rhoA
		S := ancfShapeFunctions(s, L)
		Sx := ancfShapeFunctionsDx(s, L)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				m1 := w * S[i] * Sx[j]
				m2 := w * Sx[i] * Sx[j]
				M1[2*i][2*j] += m1
				M1[2*i+1][2*j+1] += m1
				M2[2*i][2*j] += m2
				M2[2*i+1][2*j+1] += m2
			}
		}
	}
	return
}

func matVec8(M [][]float64, q [8]float64) [8]float64 {
	var r [8]float64
	for i := 0; i < 8; i++ {
		var s float64
		for j := 0; j < 8; j++ {
			s += M[i][j] * q[j]
		}
		r[i] = s
	}
	return r
}

func dot8(a, b [8]float64) float64 {
	var s float64
	for i := 0; i < 8; i++ {
		s += a[i] * b[i]
	}
	return s
}

// ComputeMassMatrix extends ANCFCable2D's 8x8 block with the ALE
// coupling row/column out[i][8]=out[8][i]=(M'q̇)_i... the coupling uses
// q, not q̇, since M' multiplies the translational coordinates in the
// mixed mass term of CObjectALEANCFCable2D (the 9th row is v's own
// equation); out[8][8] = qᵀM''q.
func (b *ANCFCable2DALE) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error {
	if err := b.ANCFCable2D.ComputeMassMatrix(cfg, out); err != nil {
		return err
	}
	M1, M2, _, _ := b.aleTerms()
	q := b.ANCFCable2D.coordinates(cfg)
	m1q := matVec8(M1, q)
	for i := 0; i < 8; i++ {
		out[i][8] = m1q[i]
		out[8][i] = m1q[i]
	}
	m2q := matVec8(M2, q)
	out[8][8] = dot8(q, m2q)
	return nil
}

// ComputeODE2LHS adds the base elastic force to the first 8 rows, then
// the ALE-specific quadratic-velocity term on row 9
// (Q_vqt = 2v·q̇ᵀM''q + ½v²·qᵀB''q, a velocity-dependent pseudo-force
// like RigidBody's gyroscopic term and so negated the same way) and the
// spec's "ODE2 force 2v·M′·q̇ + v²·(B′−M″)·q" on the first 8 rows
// (spec §4.4; added directly, matching the spec's own "force" wording
// rather than the gyroscopic-style negation).
func (b *ANCFCable2DALE) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error {
	if err := b.ANCFCable2D.ComputeODE2LHS(cfg, out[:8]); err != nil {
		return err
	}
	M1, M2, B1, B2 := b.aleTerms()
	q := b.ANCFCable2D.coordinates(cfg)
	qd := b.ANCFCable2D.velocities(cfg)
	v := b.ALENode.Coordinates(cfg)[0]

	m2q := matVec8(M2, q)
	b2q := matVec8(B2, q)
	Qvqt := 2*v*dot8(qd, m2q) + 0.5*v*v*dot8(q, b2q)
	out[8] = -Qvqt

	m1qd := matVec8(M1, qd)
	var coupling [8]float64
	for i := 0; i < 8; i++ {
		var s float64
		for j := 0; j < 8; j++ {
			s += (B1[i][j] - M2[i][j]) * q[j]
		}
		coupling[i] = s
	}
	for i := 0; i < 8; i++ {
		out[i] += 2*v*m1qd[i] + v*v*coupling[i]
	}
	return nil
}

// GetVelocity adds the Eulerian advection term v·r_x to the material
// velocity (spec §8 scenario E: "nodal velocities equal v·r_x along the
// curve").
func (b *ANCFCable2DALE) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	vel := b.ANCFCable2D.GetVelocity(cfg, localPosition)
	q := b.ANCFCable2D.coordinates(cfg)
	rx, ry := b.ANCFCable2D.slope(q, localPosition[0])
	v := b.ALENode.Coordinates(cfg)[0]
	vel[0] += v * rx
	vel[1] += v * ry
	return vel
}

func (b *ANCFCable2DALE) EvaluateAtVelocity(cfg mbs.ConfigurationType, s float64) linalg.Vec3 {
	return b.GetVelocity(cfg, linalg.Vec3{s, 0, 0})
}

var _ mbs.Body = (*ANCFCable2DALE)(nil)
