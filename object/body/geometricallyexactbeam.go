// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/rotation"
)

// GeometricallyExactBeam is a 3D, 2-node SE(3)-relative beam element
// (spec §3 Objects, §4.4). The incremental displacement/rotation between
// the two node frames (Δu, Δθ) gives an engineering strain
// ε = (h-h0)/L, multiplied by the sectional stiffness
// diag(kA, kSy, kSz, kTorsion, kBendY, kBendZ) and mapped back onto each
// node's own coordinates through T_SE(3)^{-T}(Δu, Δθ) and that node's
// own Gᵀ, grounded directly on
// original_source/Objects/CObjectBeamGeometricallyExact.cpp. Both nodes
// must carry the same rotation parameterization and coordinate count,
// the same assumption the original implementation makes.
type GeometricallyExactBeam struct {
	Node0, Node1 mbs.RigidBodyNode
	Length       float64
	MassPerLength float64
	// CrossSectionInertia is the body-fixed rotational inertia density
	// (per unit length), integrated into the mass matrix through GᵀJG at
	// each node (2-point Lobatto — spec §4.4).
	CrossSectionInertia linalg.Mat3
	// AxialShear holds (kA, kSy, kSz).
	AxialShear linalg.Vec3
	// TorsionBend holds (kTorsion, kBendY, kBendZ).
	TorsionBend linalg.Vec3
}

func (b *GeometricallyExactBeam) Category() mbs.ObjectCategory     { return mbs.ObjectBody }
func (b *GeometricallyExactBeam) Capabilities() mbs.BodyCapability { return mbs.BodyMultiNoded }
func (b *GeometricallyExactBeam) NumCoordinates() int {
	return b.Node0.NumODE2() + b.Node1.NumODE2()
}

func (b *GeometricallyExactBeam) nodes() [2]mbs.RigidBodyNode {
	return [2]mbs.RigidBodyNode{b.Node0, b.Node1}
}

// relativeMotion returns the incremental displacement, expressed in
// node0's frame, and the incremental rotation (as a rotation vector)
// between the two node frames.
func (b *GeometricallyExactBeam) relativeMotion(cfg mbs.ConfigurationType) (incDisp linalg.Vec3, incRot rotation.RotationVector) {
	R0 := b.Node0.GetRotationMatrix(cfg)
	R1 := b.Node1.GetRotationMatrix(cfg)
	p0 := b.Node0.GetPosition(cfg)
	p1 := b.Node1.GetPosition(cfg)
	incDisp = R0.T().MulVec(p1.Sub(p0))
	incRot = rotation.Log(R0.T().Mul(R1))
	return
}

// localFrame interpolates the rotation/position frame at material
// coordinate x in [-L/2, L/2] by exponentiating a fraction of the
// relative motion onto node0's frame.
func (b *GeometricallyExactBeam) localFrame(cfg mbs.ConfigurationType, x float64) (linalg.Mat3, linalg.Vec3) {
	frac := (x + b.Length/2) / b.Length
	incDisp, incRot := b.relativeMotion(cfg)
	dR := rotation.RotationVector(linalg.Vec3(incRot).Scale(frac)).Exp()
	du := incDisp.Scale(frac)
	R0 := b.Node0.GetRotationMatrix(cfg)
	p0 := b.Node0.GetPosition(cfg)
	R := R0.Mul(dR)
	p := p0.Add(R0.MulVec(du))
	return R, p
}

// ComputeMassMatrix fills the block-diagonal 2-point-Lobatto mass: half
// the element's total mass as a translational diagonal block at each
// node, and GᵀJG for the rotational block (spec §4.4).
func (b *GeometricallyExactBeam) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error {
	n := b.NumCoordinates()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = 0
		}
	}
	nNode0 := b.Node0.NumODE2()
	half := 0.5 * b.Length * b.MassPerLength
	for i := 0; i < 3; i++ {
		out[i][i] = half
		out[i+nNode0][i+nNode0] = half
	}
	for idx, node := range b.nodes() {
		Glocal := node.GetGLocal(cfg)
		nRot := len(Glocal[0])
		GJ := linalg.MatAlloc(nRot, 3)
		for r := 0; r < nRot; r++ {
			for c := 0; c < 3; c++ {
				var s float64
				for k := 0; k < 3; k++ {
					s += Glocal[k][r] * b.CrossSectionInertia[k][c]
				}
				GJ[r][c] = half * s
			}
		}
		offset := 3 + idx*nNode0
		for r := 0; r < nRot; r++ {
			for c := 0; c < nRot; c++ {
				var s float64
				for k := 0; k < 3; k++ {
					s += GJ[r][k] * Glocal[k][c]
				}
				out[offset+r][offset+c] = s
			}
		}
	}
	return nil
}

// ComputeODE2LHS contributes -(sectional internal force + quadratic
// velocity term), the same "force entering the RHS" convention
// RigidBody/ANCFCable2D use (spec §4.4).
func (b *GeometricallyExactBeam) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error {
	n := b.NumCoordinates()
	for i := range out {
		out[i] = 0
	}
	L := b.Length
	incDisp, incRotRV := b.relativeMotion(cfg)
	incRot := linalg.Vec3(incRotRV)

	K6 := linalg.NewVec6(b.TorsionBend, b.AxialShear)
	h := linalg.NewVec6(incRot, incDisp)
	h0 := linalg.NewVec6(linalg.Vec3{}, linalg.Vec3{L, 0, 0})
	var eps, res linalg.Vec6
	for i := 0; i < 6; i++ {
		eps[i] = (h[i] - h0[i]) / L
		res[i] = K6[i] * eps[i]
	}

	rotNeg := rotation.RotationVector(incRot.Scale(-1))
	dispNeg := incDisp.Scale(-1)
	Tinv1 := rotation.TexpSE3Inv(incRotRV, incDisp)
	Tinv0raw := rotation.TexpSE3Inv(rotNeg, dispNeg)
	var Tinv0 linalg.Mat6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			Tinv0[i][j] = -Tinv0raw[i][j]
		}
	}
	texpInv := [2]linalg.Mat6{Tinv0, Tinv1}

	nNode0 := b.Node0.NumODE2()
	for idx, node := range b.nodes() {
		res2 := texpInv[idx].T().MulVec(res)
		resRotLocal := res2.Angular()
		resPosLocal := res2.Linear()

		Glocal := node.GetGLocal(cfg)
		nRot := len(Glocal[0])
		resRotPar := make([]float64, nRot)
		for r := 0; r < nRot; r++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += Glocal[k][r] * resRotLocal[k]
			}
			resRotPar[r] = s
		}

		R := node.GetRotationMatrix(cfg)
		resPosGlobal := R.MulVec(resPosLocal)

		// quadratic velocity (gyroscopic) term per node, 2-point Lobatto
		// weighted, same structure as RigidBody's.
		omegaLocal := node.GetAngularVelocityLocal(cfg)
		Jw := b.CrossSectionInertia.MulVec(omegaLocal)
		gyro := omegaLocal.Cross(Jw).Scale(0.5 * L)
		for r := 0; r < nRot; r++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += Glocal[k][r] * gyro[k]
			}
			resRotPar[r] += s
		}

		offset := idx * nNode0
		for j := 0; j < 3; j++ {
			out[offset+j] = -resPosGlobal[j]
		}
		for j := 0; j < nRot; j++ {
			out[offset+3+j] = -resRotPar[j]
		}
	}
	return nil
}

func (b *GeometricallyExactBeam) GetPosition(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	R, p := b.localFrame(cfg, localPosition[0])
	if localPosition[1] != 0 || localPosition[2] != 0 {
		p = p.Add(R.MulVec(linalg.Vec3{0, localPosition[1], localPosition[2]}))
	}
	return p
}

func (b *GeometricallyExactBeam) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	frac := (localPosition[0] + b.Length/2) / b.Length
	v0 := b.Node0.GetVelocity(cfg)
	v1 := b.Node1.GetVelocity(cfg)
	v := v0.Scale(1 - frac).Add(v1.Scale(frac))
	if localPosition[1] != 0 || localPosition[2] != 0 {
		w0 := b.Node0.GetAngularVelocityLocal(cfg)
		w1 := b.Node1.GetAngularVelocityLocal(cfg)
		wLocal := w0.Scale(1 - frac).Add(w1.Scale(frac))
		R, _ := b.localFrame(cfg, localPosition[0])
		pCS := linalg.Vec3{0, localPosition[1], localPosition[2]}
		v = v.Add(R.MulVec(wLocal.Cross(pCS)))
	}
	return v
}

// Offset reports Node0's offset: package system lays out an element's
// two nodes contiguously, so this is the start of the element's own
// coordinate block.
func (b *GeometricallyExactBeam) Offset(kind mbs.CoordinateKind) int { return b.Node0.Offset(kind) }

func (b *GeometricallyExactBeam) TotalMass() float64 { return b.MassPerLength * b.Length }

func (b *GeometricallyExactBeam) CenterOfMass(cfg mbs.ConfigurationType) linalg.Vec3 {
	return b.GetPosition(cfg, linalg.Vec3{})
}

// GetPositionJacobian reports the midpoint's translational Jacobian,
// split evenly across both nodes' own position Jacobians (package
// marker's BodyMass is the only caller that needs it).
func (b *GeometricallyExactBeam) GetPositionJacobian(cfg mbs.ConfigurationType) [][]float64 {
	n := b.NumCoordinates()
	jac := linalg.MatAlloc(3, n)
	nNode0 := b.Node0.NumODE2()
	j0 := b.Node0.GetPositionJacobian(cfg)
	j1 := b.Node1.GetPositionJacobian(cfg)
	for r := 0; r < 3; r++ {
		for c := 0; c < nNode0; c++ {
			jac[r][c] = 0.5 * j0[r][c]
		}
		for c := 0; c < len(j1[0]); c++ {
			jac[r][nNode0+c] = 0.5 * j1[r][c]
		}
	}
	return jac
}

var _ mbs.Body = (*GeometricallyExactBeam)(nil)
