// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"math"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
)

// Contact connectors (spec §4.5) are penalty-based, with per-segment Data
// coordinates carrying the active/inactive state across discontinuous
// iterations (spec §3 "a dataCoordinate per segment that holds the
// active/inactive contact state"). Broad-phase segment search (which
// cable material coordinate a moving contact point is nearest) is out of
// scope (spec §1 Non-goals: "contact-pair broad-phase search beyond what
// is needed for the post-Newton protocol") — each connector instance here
// represents one already-identified candidate segment.

// ContactCoordinate is the 1D unilateral penalty contact of spec §8
// scenario D: gap = (marker1.Position-marker0.Position)·Axis - Offset,
// penalty force resists penetration (gap < 0) while the stored state is
// active.
type ContactCoordinate struct {
	Markers            [2]int
	Axis               linalg.Vec3
	Offset             float64
	Stiffness, Damping float64

	// State carries 2 Data coordinates: [0] active flag (1=in contact),
	// [1] start-of-step gap, read by PostNewtonStep for its landing-time
	// estimate (spec §4.7). No method writes slot [1], so it stays 0 and
	// the recommended step size PostNewtonStep returns is always 0.
	State *node.GenericData
}

// NewContactCoordinate allocates a ContactCoordinate with its own state node.
func NewContactCoordinate(marker0, marker1 int, axis linalg.Vec3, offset, stiffness, damping float64) *ContactCoordinate {
	return &ContactCoordinate{
		Markers: [2]int{marker0, marker1}, Axis: axis, Offset: offset,
		Stiffness: stiffness, Damping: damping, State: node.NewGenericData(2),
	}
}

func (c *ContactCoordinate) Category() mbs.ObjectCategory { return mbs.ObjectConnector }
func (c *ContactCoordinate) MarkerNumbers() [2]int         { return c.Markers }

func (c *ContactCoordinate) gap(md [2]*mbs.MarkerData) float64 {
	d := md[1].Position.Sub(md[0].Position)
	return d.Dot(c.Axis) - c.Offset
}

func (c *ContactCoordinate) gapRate(md [2]*mbs.MarkerData) float64 {
	return md[1].Velocity.Sub(md[0].Velocity).Dot(c.Axis)
}

func (c *ContactCoordinate) active(cfg mbs.ConfigurationType) bool {
	return c.State.Coordinates(cfg)[0] > 0.5
}

// ComputeODE2LHS applies the penalty force only while the Current-config
// state is active; the force resists penetration, scattered through both
// markers' PositionJacobians the same way CartesianSpringDamper is.
func (c *ContactCoordinate) ComputeODE2LHS(md [2]*mbs.MarkerData, t float64, out []float64) error {
	if !c.active(mbs.ConfigCurrent) {
		return nil
	}
	gap := c.gap(md)
	mag := -(c.Stiffness*gap + c.Damping*c.gapRate(md))
	f := c.Axis.Scale(mag)
	n0 := md[0].NCoords()
	for j := 0; j < n0; j++ {
		out[j] -= f[0]*md[0].PositionJacobian[0][j] + f[1]*md[0].PositionJacobian[1][j] + f[2]*md[0].PositionJacobian[2][j]
	}
	n1 := md[1].NCoords()
	for j := 0; j < n1; j++ {
		out[n0+j] += f[0]*md[1].PositionJacobian[0][j] + f[1]*md[1].PositionJacobian[1][j] + f[2]*md[1].PositionJacobian[2][j]
	}
	return nil
}

// PostNewtonStep compares the gap's sign against the stored active flag
// (spec §4.7): a flip reports discontinuousError = |gap·stiffness| (spec
// §8 scenario D) and commits the new flag into ConfigCurrent's Data
// coordinates so the next ComputeODE2LHS call in this same iteration sees
// it; otherwise returns 0.
func (c *ContactCoordinate) PostNewtonStep(md [2]*mbs.MarkerData, t float64) (discontinuousError float64, updateJacobian bool, recommendedStepSize float64, err error) {
	gap := c.gap(md)
	wasActive := c.active(mbs.ConfigCurrent)
	nowActive := gap <= 0
	if nowActive == wasActive {
		return 0, false, 0, nil
	}
	cur := c.State.Coordinates(mbs.ConfigCurrent)
	startGap := c.State.Coordinates(mbs.ConfigStartOfStep)[1]
	if nowActive {
		cur[0] = 1
	} else {
		cur[0] = 0
	}
	discontinuousError = math.Abs(gap * c.Stiffness)
	// Approximate landing-time step recommendation (spec §4.7): assuming
	// the gap varies linearly over the step, the fraction of the step at
	// which it crosses zero is startGap/(startGap-gap).
	if d := startGap - gap; d != 0 {
		recommendedStepSize = startGap / d
	}
	return discontinuousError, true, recommendedStepSize, nil
}

// PostDiscontinuousIterationStep does nothing: the active flag is an
// ordinary Data coordinate and is committed by
// system.PostDiscontinuousIterationStep's general Current->StartOfStep
// copy. The gap slot [1] is not written here either.
func (c *ContactCoordinate) PostDiscontinuousIterationStep() error {
	return nil
}

var (
	_ mbs.Connector        = (*ContactCoordinate)(nil)
	_ mbs.PostNewtonStepper = (*ContactCoordinate)(nil)
)

// Cable2DShapeProvider-compatible marker is read through mbs.MarkerData's
// Position/Velocity/Orientation fields (slope in the first column), the
// same snapshot every connector is written against (spec §4.3).

// ContactCircleCable2D is a unilateral penalty contact between a rigid
// circle (marker0, any position-capable marker) and one candidate
// material point of a 2D cable (marker1, a MarkerBodyCable2DShape) (spec
// §3). Gap = |p1-p0| - Radius; negative gap means the cable point has
// penetrated the circle.
type ContactCircleCable2D struct {
	Markers            [2]int
	Radius             float64
	Stiffness, Damping float64
	State              *node.GenericData // [0] active, [1] startOfStep gap (never written, reads 0)
}

func NewContactCircleCable2D(marker0, marker1 int, radius, stiffness, damping float64) *ContactCircleCable2D {
	return &ContactCircleCable2D{Markers: [2]int{marker0, marker1}, Radius: radius, Stiffness: stiffness, Damping: damping, State: node.NewGenericData(2)}
}

func (c *ContactCircleCable2D) Category() mbs.ObjectCategory { return mbs.ObjectConnector }
func (c *ContactCircleCable2D) MarkerNumbers() [2]int         { return c.Markers }

// normal returns the outward unit normal (from circle center toward the
// cable point) and the signed gap.
func (c *ContactCircleCable2D) normal(md [2]*mbs.MarkerData) (n linalg.Vec3, gap float64) {
	d := md[1].Position.Sub(md[0].Position)
	dist := d.Norm()
	if dist < 1e-14 {
		return linalg.Vec3{1, 0, 0}, -c.Radius
	}
	return d.Scale(1 / dist), dist - c.Radius
}

func (c *ContactCircleCable2D) active(cfg mbs.ConfigurationType) bool {
	return c.State.Coordinates(cfg)[0] > 0.5
}

func (c *ContactCircleCable2D) ComputeODE2LHS(md [2]*mbs.MarkerData, t float64, out []float64) error {
	if !c.active(mbs.ConfigCurrent) {
		return nil
	}
	n, gap := c.normal(md)
	closingRate := md[1].Velocity.Sub(md[0].Velocity).Dot(n)
	mag := -(c.Stiffness*gap + c.Damping*closingRate)
	f := n.Scale(mag)
	n0 := md[0].NCoords()
	for j := 0; j < n0; j++ {
		out[j] -= f[0]*md[0].PositionJacobian[0][j] + f[1]*md[0].PositionJacobian[1][j] + f[2]*md[0].PositionJacobian[2][j]
	}
	n1 := md[1].NCoords()
	for j := 0; j < n1; j++ {
		out[n0+j] += f[0]*md[1].PositionJacobian[0][j] + f[1]*md[1].PositionJacobian[1][j] + f[2]*md[1].PositionJacobian[2][j]
	}
	return nil
}

func (c *ContactCircleCable2D) PostNewtonStep(md [2]*mbs.MarkerData, t float64) (discontinuousError float64, updateJacobian bool, recommendedStepSize float64, err error) {
	_, gap := c.normal(md)
	wasActive := c.active(mbs.ConfigCurrent)
	nowActive := gap <= 0
	if nowActive == wasActive {
		return 0, false, 0, nil
	}
	cur := c.State.Coordinates(mbs.ConfigCurrent)
	startGap := c.State.Coordinates(mbs.ConfigStartOfStep)[1]
	if nowActive {
		cur[0] = 1
	} else {
		cur[0] = 0
	}
	discontinuousError = math.Abs(gap * c.Stiffness)
	if d := startGap - gap; d != 0 {
		recommendedStepSize = startGap / d
	}
	return discontinuousError, true, recommendedStepSize, nil
}

func (c *ContactCircleCable2D) PostDiscontinuousIterationStep() error { return nil }

var (
	_ mbs.Connector        = (*ContactCircleCable2D)(nil)
	_ mbs.PostNewtonStepper = (*ContactCircleCable2D)(nil)
)

// ContactFrictionCircleCable2D adds Coulomb friction to
// ContactCircleCable2D: while stuck, a tangential penalty force pulls the
// cable point back toward the anchor recorded at the moment contact
// became active; once the required tangential force would exceed
// FrictionCoefficient·|normalForce|, the connector switches to sliding and
// applies a force of that capped magnitude opposing the tangential
// velocity. The anchor is reset on every gap-sign flip (spec §8 scenario
// notes: "friction tangent reset on gap sign flip is implemented per
// segment"); a reset when the contact jumps to an adjacent segment is out
// of scope here since each connector instance models one fixed segment.
type ContactFrictionCircleCable2D struct {
	ContactCircleCable2D
	FrictionCoefficient float64

	// Friction extends State to 4 slots: [0] active, [1] startOfStep gap,
	// [2] stuck flag, [3] tangential anchor (material arclength offset
	// from the cable point at the moment of sticking, projected onto the
	// tangent direction at anchor time).
}

func NewContactFrictionCircleCable2D(marker0, marker1 int, radius, stiffness, damping, friction float64) *ContactFrictionCircleCable2D {
	c := &ContactFrictionCircleCable2D{
		ContactCircleCable2D: ContactCircleCable2D{Markers: [2]int{marker0, marker1}, Radius: radius, Stiffness: stiffness, Damping: damping, State: node.NewGenericData(4)},
		FrictionCoefficient:  friction,
	}
	return c
}

func (c *ContactFrictionCircleCable2D) tangent(n linalg.Vec3) linalg.Vec3 {
	return linalg.Vec3{-n[1], n[0], 0}
}

func (c *ContactFrictionCircleCable2D) ComputeODE2LHS(md [2]*mbs.MarkerData, t float64, out []float64) error {
	if !c.active(mbs.ConfigCurrent) {
		return nil
	}
	n, gap := c.normal(md)
	closingRate := md[1].Velocity.Sub(md[0].Velocity).Dot(n)
	normalMag := -(c.Stiffness*gap + c.Damping*closingRate)
	f := n.Scale(normalMag)

	tang := c.tangent(n)
	relPos := md[1].Position.Sub(md[0].Position).Dot(tang)
	state := c.State.Coordinates(mbs.ConfigCurrent)
	anchor := state[3]
	tangentialForce := -c.Stiffness * (relPos - anchor)
	maxFriction := c.FrictionCoefficient * math.Abs(normalMag)
	if math.Abs(tangentialForce) > maxFriction {
		state[2] = 0 // sliding
		slideVel := md[1].Velocity.Sub(md[0].Velocity).Dot(tang)
		sign := 1.0
		if slideVel < 0 {
			sign = -1.0
		}
		tangentialForce = -maxFriction * sign
		state[3] = relPos // anchor slides with the contact point
	} else {
		state[2] = 1 // stuck
	}
	f = f.Add(tang.Scale(tangentialForce))

	n0 := md[0].NCoords()
	for j := 0; j < n0; j++ {
		out[j] -= f[0]*md[0].PositionJacobian[0][j] + f[1]*md[0].PositionJacobian[1][j] + f[2]*md[0].PositionJacobian[2][j]
	}
	n1 := md[1].NCoords()
	for j := 0; j < n1; j++ {
		out[n0+j] += f[0]*md[1].PositionJacobian[0][j] + f[1]*md[1].PositionJacobian[1][j] + f[2]*md[1].PositionJacobian[2][j]
	}
	return nil
}

func (c *ContactFrictionCircleCable2D) PostNewtonStep(md [2]*mbs.MarkerData, t float64) (discontinuousError float64, updateJacobian bool, recommendedStepSize float64, err error) {
	discontinuousError, updateJacobian, recommendedStepSize, err = c.ContactCircleCable2D.PostNewtonStep(md, t)
	if err != nil || discontinuousError == 0 {
		return
	}
	// gap sign flipped this call: reset the friction anchor to the
	// current tangential position so the stick force starts from zero.
	n, _ := c.normal(md)
	tang := c.tangent(n)
	relPos := md[1].Position.Sub(md[0].Position).Dot(tang)
	c.State.Coordinates(mbs.ConfigCurrent)[3] = relPos
	return
}

var (
	_ mbs.Connector        = (*ContactFrictionCircleCable2D)(nil)
	_ mbs.PostNewtonStepper = (*ContactFrictionCircleCable2D)(nil)
)
