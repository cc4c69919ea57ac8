// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"github.com/cpmech/gosl/io"

	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// Stepper is satisfied by Integrator and ExplicitRK4: advance the
// system's ConfigCurrent by dt starting at time t.
type Stepper interface {
	Step(t, dt float64) error
}

// Simulate drives a Stepper from t0 to tEnd with a fixed initial step
// dt0, halving the step on a recoverable *mbs.Error (spec §7:
// ErrRuntimeNumerical "locally recoverable via step-size reduction")
// down to minDt, and restoring ConfigStartOfStep before each retry so a
// rejected step leaves no trace. Once the halved step would fall below
// minDt, Simulate stops and returns an ErrRuntimeNumerical *mbs.Error
// wrapping the last step error, matching the teacher's solver.go Run-loop contract (a single error
// return, no partial-success signalling).
func Simulate(step Stepper, restore func(), t0, tEnd, dt0, minDt float64, verbose bool) error {
	t := t0
	dt := dt0
	for t < tEnd {
		if t+dt > tEnd {
			dt = tEnd - t
		}
		err := step.Step(t, dt)
		if err == nil {
			t += dt
			if verbose {
				io.Pfblue2("integrate: t=%v dt=%v\n", t, dt)
			}
			continue
		}
		mbsErr, ok := asRecoverable(err)
		if !ok || !mbsErr.Recoverable() {
			return err
		}
		dt /= 2
		if dt < minDt {
			return mbs.NewError(mbs.ErrRuntimeNumerical, "", "", "step size reduced below minimum %v at t=%v: %v", minDt, t, err)
		}
		restore()
		if verbose {
			io.Pfred("integrate: rejected step at t=%v, retrying with dt=%v\n", t, dt)
		}
	}
	return nil
}

func asRecoverable(err error) (*mbs.Error, bool) {
	for err != nil {
		if e, ok := err.(*mbs.Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
