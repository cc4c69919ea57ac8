// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system implements CSystemData-equivalent assembly and solve
// support (spec §4, §5): owning nodes, objects, markers, loads and
// sensors, assigning global coordinate offsets, assembling the mass
// matrix / ODE2 residual / algebraic equations and their Jacobians, and
// driving the discontinuous-iteration protocol (spec §4.7).
package system

import "github.com/slyandsmart/EXUDYN-sub000/mbs"

// Error wraps an mbs.Error with the enclosing operation name, the same
// two-level wrapping the teacher uses (chk.Err at the ele boundary,
// re-wrapped with more context at the fem boundary).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// asMBSError recovers the *mbs.Error from err if it is one (or wraps one),
// used by the discontinuous-iteration driver to decide recoverability
// (spec §7: RuntimeNumerical errors are locally recoverable via step-size
// reduction).
func asMBSError(err error) (*mbs.Error, bool) {
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
