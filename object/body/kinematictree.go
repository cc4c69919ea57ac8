// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"math"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// JointType enumerates the single-axis joint types a KinematicTree link
// connects through (spec §3, §4.4 "Kinematic tree").
type JointType int

const (
	JointRevoluteX JointType = iota
	JointRevoluteY
	JointRevoluteZ
	JointPrismaticX
	JointPrismaticY
	JointPrismaticZ
)

// motionSubspace returns the 6D motion subspace vector S for a single-axis
// joint: angular part for revolute, linear part for prismatic.
func (jt JointType) motionSubspace() linalg.Vec6 {
	switch jt {
	case JointRevoluteX:
		return linalg.NewVec6(linalg.Vec3{1, 0, 0}, linalg.Vec3{})
	case JointRevoluteY:
		return linalg.NewVec6(linalg.Vec3{0, 1, 0}, linalg.Vec3{})
	case JointRevoluteZ:
		return linalg.NewVec6(linalg.Vec3{0, 0, 1}, linalg.Vec3{})
	case JointPrismaticX:
		return linalg.NewVec6(linalg.Vec3{}, linalg.Vec3{1, 0, 0})
	case JointPrismaticY:
		return linalg.NewVec6(linalg.Vec3{}, linalg.Vec3{0, 1, 0})
	default:
		return linalg.NewVec6(linalg.Vec3{}, linalg.Vec3{0, 0, 1})
	}
}

// jointTransform returns the joint's own rotation/translation as a
// function of its single scalar coordinate q.
func (jt JointType) jointTransform(q float64) (R linalg.Mat3, p linalg.Vec3) {
	switch jt {
	case JointRevoluteX, JointRevoluteY, JointRevoluteZ:
		s := jt.motionSubspace().Angular()
		rv := RotVecFromAxisAngle(s, q)
		return rv, linalg.Vec3{}
	default:
		s := jt.motionSubspace().Linear()
		return linalg.Identity3(), s.Scale(q)
	}
}

// RotVecFromAxisAngle builds the rotation matrix for a rotation by angle
// q about unit axis s, via Rodrigues' formula (used only for the
// axis-aligned single-DOF joints a KinematicTree link carries).
func RotVecFromAxisAngle(s linalg.Vec3, q float64) linalg.Mat3 {
	K := linalg.Skew(s)
	return linalg.Identity3().Add(K.Scale(math.Sin(q))).Add(K.Mul(K).Scale(1 - math.Cos(q)))
}

// link is one body of the tree: fixed placement relative to its parent
// (ParentRotation/ParentPosition), one joint DOF, and its own spatial inertia.
type link struct {
	Parent          int // index into Links, -1 for the tree's root attachment to its carrying node
	JointType       JointType
	ParentRotation  linalg.Mat3 // fixed offset from parent link frame to this joint's frame
	ParentPosition  linalg.Vec3
	Inertia         linalg.Mat6 // spatial inertia about this link's own frame origin
}

// KinematicTree is a chain/tree of single-DOF joints assembled by the
// Composite-Rigid-Body Algorithm (mass matrix) and Recursive Newton-Euler
// (residual), spec §4.4 "Kinematic tree: CRBA for M(q), RNEA for
// residual; Plücker 6D spatial transforms".
type KinematicTree struct {
	Base  mbs.PositionNode // carries the tree's base placement (ODE2 coords not used by the tree itself)
	Links []link

	Node mbs.Node // GenericODE2 node carrying one coordinate per link, in Links order
}

// NewKinematicTree allocates a tree anchored at base, with the given
// links (index 0's Parent must be -1).
func NewKinematicTree(base mbs.PositionNode, node mbs.Node, links []link) *KinematicTree {
	return &KinematicTree{Base: base, Node: node, Links: links}
}

// AddLink appends a link whose Parent is an existing link index (or -1
// for the base).
func (t *KinematicTree) AddLink(parent int, jt JointType, parentRotation linalg.Mat3, parentPosition linalg.Vec3, inertia linalg.Mat6) int {
	t.Links = append(t.Links, link{Parent: parent, JointType: jt, ParentRotation: parentRotation, ParentPosition: parentPosition, Inertia: inertia})
	return len(t.Links) - 1
}

func (t *KinematicTree) Category() mbs.ObjectCategory     { return mbs.ObjectBody }
func (t *KinematicTree) Capabilities() mbs.BodyCapability { return mbs.BodyKinematicTree }
func (t *KinematicTree) NumCoordinates() int              { return len(t.Links) }

// frames returns, for every link, its spatial transform from the base
// (X0i), joint motion subspace (already rotated into link-local frame is
// not needed since we keep S constant in the joint's own axis and fold
// the fixed offset into X), and current joint velocity.
type frame struct {
	X     linalg.Mat6 // transform: base frame -> link i frame
	S     linalg.Vec6 // motion subspace, expressed in link i's own frame
	v     linalg.Vec6 // spatial velocity of link i in link i's own frame
	qdot  float64
}

func (t *KinematicTree) computeFrames(cfg mbs.ConfigurationType) []frame {
	q := t.coords(cfg)
	qd := t.velocities(cfg)
	frames := make([]frame, len(t.Links))
	for i, lk := range t.Links {
		Rj, pj := lk.JointType.jointTransform(q[i])
		R := lk.ParentRotation.Mul(Rj)
		p := lk.ParentPosition.Add(lk.ParentRotation.MulVec(pj))
		Xlink := linalg.PlueckerTransform(R, p) // parent -> this link
		if lk.Parent < 0 {
			frames[i].X = Xlink
		} else {
			frames[i].X = Xlink.MulMat(frames[lk.Parent].X)
		}
		frames[i].S = lk.JointType.motionSubspace()
		frames[i].qdot = qd[i]
		vJ := frames[i].S.Scale(qd[i])
		if lk.Parent < 0 {
			frames[i].v = vJ
		} else {
			frames[i].v = Xlink.MulVec(frames[lk.Parent].v).Add(vJ)
		}
	}
	return frames
}

func (t *KinematicTree) coords(cfg mbs.ConfigurationType) []float64 {
	if g, ok := t.Node.(interface {
		Coordinates(mbs.ConfigurationType) []float64
	}); ok {
		return g.Coordinates(cfg)
	}
	return make([]float64, len(t.Links))
}

func (t *KinematicTree) velocities(cfg mbs.ConfigurationType) []float64 {
	if g, ok := t.Node.(interface {
		Velocities(mbs.ConfigurationType) []float64
	}); ok {
		return g.Velocities(cfg)
	}
	return make([]float64, len(t.Links))
}

// ComputeMassMatrix runs the Composite-Rigid-Body Algorithm: composite
// inertias accumulate from leaves to root, then M[i][j] reads off the
// force each joint subspace transmits (Featherstone CRBA, spec §4.4).
func (t *KinematicTree) ComputeMassMatrix(cfg mbs.ConfigurationType, out [][]float64) error {
	n := len(t.Links)
	frames := t.computeFrames(cfg)
	composite := make([]linalg.Mat6, n)
	for i, lk := range t.Links {
		composite[i] = lk.Inertia
	}
	for i := 0; i < n; i++ {
		out[i] = out[i][:n]
		for j := range out[i] {
			out[i][j] = 0
		}
	}
	for i := n - 1; i >= 0; i-- {
		if p := t.Links[i].Parent; p >= 0 {
			Xchild := childTransform(frames, i, p)
			composite[p] = composite[p].Add(Xchild.T().MulMat(composite[i]).MulMat(Xchild))
		}
	}
	for i := 0; i < n; i++ {
		F := composite[i].MulVec(frames[i].S)
		out[i][i] = frames[i].S.Dot(F)
		j := i
		for t.Links[j].Parent >= 0 {
			p := t.Links[j].Parent
			Xchild := childTransform(frames, j, p)
			F = Xchild.T().MulVec(F)
			j = p
			out[i][j] = frames[j].S.Dot(F)
			out[j][i] = out[i][j]
		}
	}
	return nil
}

// childTransform returns the spatial transform from parent p's frame to
// child c's frame (X_c composed with X_p inverse, computed via the
// relative transform X_c * X_p^T since both are rigid transforms from the
// same base).
func childTransform(frames []frame, c, p int) linalg.Mat6 {
	// X_base->c = Xc ; X_base->p = Xp ; X_p->c = Xc * Xp^-1. For rigid
	// Plücker transforms the inverse equals the transform built from the
	// inverse rotation/translation; since both share the same base we
	// instead recompute via Xc composed with transpose-adjoint identity:
	// Xc = Xrel * Xp  =>  Xrel = Xc * Xp^-1. Plücker transforms built from
	// (R,p) invert to (Rᵀ, -Rᵀp); PlueckerTransform does not expose R/p
	// directly once composed, so frames stores the rotation separately
	// would be needed for an exact inverse. For the tree depths spec §8
	// exercises (scenario F: 3-link chain) parent/child are adjacent and
	// Xrel reduces to the joint's own transform, which computeFrames
	// already isolates as the per-step Xlink before composition; CRBA
	// above uses the composed frames[i].X directly against frames[p].X so
	// this helper recovers Xrel = frames[c].X * inverse(frames[p].X).
	return frames[c].X.MulMat(invertPlucker(frames[p].X))
}

// invertPlucker inverts a rigid Plücker transform by exploiting
// block-triangular structure: for X = [[R,0],[-R*skew(p)^T... ]] built by
// PlueckerTransform, X^-1 = X^T when X is restricted to the orthogonal
// rotation/translation group (Plücker transforms are not orthogonal in
// general, so we instead invert via solving X*X^-1=I per 3x3 block using
// the known (R,p) construction: since PlueckerTransform's algebraic form
// is invertible analytically as (R^T, -R^T p), but R and p are not
// separately retained here, this exploits PlueckerTransform's motion
// convention directly.
func invertPlucker(X linalg.Mat6) linalg.Mat6 {
	// Recover R (top-left 3x3 block) and compute p from the bottom-left
	// block: X_bl = -R*Skew(p) (PlueckerTransform's motion convention), so
	// Skew(p) = -R^T * X_bl, from which p = vee(Skew(p)).
	var R linalg.Mat3
	var Xbl linalg.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = X[i][j]
			Xbl[i][j] = X[i+3][j]
		}
	}
	skewP := R.T().Mul(Xbl).Scale(-1)
	p := linalg.Vec3{(skewP[2][1] - skewP[1][2]) / 2, (skewP[0][2] - skewP[2][0]) / 2, (skewP[1][0] - skewP[0][1]) / 2}
	return linalg.PlueckerTransform(R.T(), R.MulVec(p).Scale(-1))
}

// ComputeODE2LHS runs the Recursive Newton-Euler algorithm with zero
// external force to obtain the bias (Coriolis/centrifugal/gravity-free)
// residual contribution (spec §4.4 RNEA).
func (t *KinematicTree) ComputeODE2LHS(cfg mbs.ConfigurationType, out []float64) error {
	n := len(t.Links)
	frames := t.computeFrames(cfg)
	a := make([]linalg.Vec6, n)
	f := make([]linalg.Vec6, n)
	for i, lk := range t.Links {
		aJ := linalg.SpatialCross(frames[i].v, frames[i].S.Scale(frames[i].qdot))
		if lk.Parent < 0 {
			a[i] = aJ
		} else {
			Xrel := childTransform(frames, i, lk.Parent)
			a[i] = Xrel.MulVec(a[lk.Parent]).Add(aJ)
		}
		f[i] = lk.Inertia.MulVec(a[i]).Add(linalg.SpatialCrossForce(frames[i].v, lk.Inertia.MulVec(frames[i].v)))
	}
	for i := n - 1; i >= 0; i-- {
		out[i] = frames[i].S.Dot(f[i])
		if p := t.Links[i].Parent; p >= 0 {
			Xrel := childTransform(frames, i, p)
			f[p] = f[p].Add(Xrel.T().MulVec(f[i]))
		}
	}
	return nil
}

func (t *KinematicTree) GetPosition(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	return t.Base.GetPosition(cfg).Add(localPosition)
}

func (t *KinematicTree) GetVelocity(cfg mbs.ConfigurationType, localPosition linalg.Vec3) linalg.Vec3 {
	return t.Base.GetVelocity(cfg)
}

// LinkPosition/LinkVelocity/LinkRotationMatrix/LinkAngularVelocityLocal
// implement marker.LinkFrameProvider for MarkerKinematicTreeLink.
func (t *KinematicTree) LinkPosition(cfg mbs.ConfigurationType, i int, localPosition linalg.Vec3) linalg.Vec3 {
	frames := t.computeFrames(cfg)
	Xinv := invertPlucker(frames[i].X)
	var R linalg.Mat3
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			R[a][b] = Xinv[a][b]
		}
	}
	p := recoverTranslation(Xinv, R)
	return t.Base.GetPosition(cfg).Add(p).Add(R.MulVec(localPosition))
}

func recoverTranslation(X linalg.Mat6, R linalg.Mat3) linalg.Vec3 {
	var Xbl linalg.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Xbl[i][j] = X[i+3][j]
		}
	}
	skewP := R.T().Mul(Xbl).Scale(-1)
	p := linalg.Vec3{(skewP[2][1] - skewP[1][2]) / 2, (skewP[0][2] - skewP[2][0]) / 2, (skewP[1][0] - skewP[0][1]) / 2}
	return R.MulVec(p).Scale(-1)
}

func (t *KinematicTree) LinkVelocity(cfg mbs.ConfigurationType, i int, localPosition linalg.Vec3) linalg.Vec3 {
	frames := t.computeFrames(cfg)
	return t.Base.GetVelocity(cfg).Add(frames[i].v.Linear())
}

func (t *KinematicTree) LinkRotationMatrix(cfg mbs.ConfigurationType, i int) linalg.Mat3 {
	frames := t.computeFrames(cfg)
	Xinv := invertPlucker(frames[i].X)
	var R linalg.Mat3
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			R[a][b] = Xinv[a][b]
		}
	}
	return R
}

func (t *KinematicTree) LinkAngularVelocityLocal(cfg mbs.ConfigurationType, i int) linalg.Vec3 {
	frames := t.computeFrames(cfg)
	return frames[i].v.Angular()
}

// Offset exposes the tree's carrying coordinate node offset, used by
// package marker's KinematicTreeLink marker.
func (t *KinematicTree) Offset(kind mbs.CoordinateKind) int { return t.Node.Offset(kind) }

var _ mbs.Body = (*KinematicTree)(nil)
