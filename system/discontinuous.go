// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"github.com/cpmech/gosl/io"

	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// PostNewtonIteration runs one sweep of spec §4.7's discontinuous
// iteration protocol: every PostNewtonStepper object compares its
// continuous quantities against its Data-stored assumed state, flips if
// inconsistent, and reports a discontinuousError. The sweep's maximum
// error and the most conservative recommended step size are returned so
// the caller (the time integrator) can decide whether to accept the step
// or iterate again.
func (s *System) PostNewtonIteration(t float64) (maxError float64, needsJacobianUpdate bool, recommendedStep float64, err error) {
	recommendedStep = -1 // -1: no object requested a reduction
	for oi, obj := range s.Objects {
		if obj.Stepper == nil {
			continue
		}
		md, _, merr := s.connectorMarkerData(oi, mbs.ConfigCurrent, false)
		if merr != nil {
			return 0, false, 0, wrap("PostNewtonIteration", merr)
		}
		discErr, updateJac, recStep, serr := obj.Stepper.PostNewtonStep(md, t)
		if serr != nil {
			return 0, false, 0, wrap("PostNewtonIteration", mbs.NewError(mbs.ErrRuntimeNumerical, indexItem("object", oi), "", "%v", serr))
		}
		if discErr > maxError {
			maxError = discErr
		}
		needsJacobianUpdate = needsJacobianUpdate || updateJac
		if recStep > 0 && (recommendedStep < 0 || recStep < recommendedStep) {
			recommendedStep = recStep
		}
	}
	return maxError, needsJacobianUpdate, recommendedStep, nil
}

// PostDiscontinuousIterationStep commits every discontinuous object's
// Data state (Current -> StartOfStep) once the discontinuous-iteration
// sweep has converged (spec §4.7), then commits every node's general
// Current -> StartOfStep coordinate snapshot and runs any node-specific
// commit hook (e.g. RigidBodyRotVec.CommitRotation's Lie-group update).
func (s *System) PostDiscontinuousIterationStep(dt float64) error {
	for oi, obj := range s.Objects {
		if obj.Stepper == nil {
			continue
		}
		if err := obj.Stepper.PostDiscontinuousIterationStep(); err != nil {
			return wrap("PostDiscontinuousIterationStep", mbs.NewError(mbs.ErrRuntimeNumerical, indexItem("object", oi), "", "%v", err))
		}
	}
	for _, n := range s.Nodes {
		if c, ok := n.(interface{ CommitRotation(float64) }); ok {
			c.CommitRotation(dt)
		}
	}
	s.Data.Config(mbs.ConfigStartOfStep).CopyFrom(s.Data.Config(mbs.ConfigCurrent))
	if s.Verbose {
		io.Pfgrey("system: committed StartOfStep <- Current\n")
	}
	return nil
}

// RestoreStartOfStep rolls Current back to StartOfStep, used when a step
// is rejected (spec §7 ErrRuntimeNumerical recovery: "locally recoverable
// via step-size reduction").
func (s *System) RestoreStartOfStep() {
	s.Data.Config(mbs.ConfigCurrent).CopyFrom(s.Data.Config(mbs.ConfigStartOfStep))
}
