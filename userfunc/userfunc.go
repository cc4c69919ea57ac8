// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package userfunc implements the exception-safe call boundary to scripted
// callbacks (spec §2 User-function dispatch, §6 User-function ABI, §9
// "User-function callback rearchitecting"). The source leans on a
// scripting language's callable type; here a callback is a small Go
// interface (or a plain func value) plus a dispatch helper that converts
// any escaping panic into a well-formed mbs.Error, the same way
// ele.Element implementations convert internal panics into chk.Err values
// at package boundaries in the teacher.
package userfunc

import (
	"fmt"

	"github.com/cpmech/gosl/fun"

	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// LoadFunc is the ABI for a scalar load user function: (mbs handle is
// implicit via closure, time, current load value) -> new value, mirroring
// gosl/fun.Func's (t float64) float64 shape extended with the load's own
// pre-computed value so the callback can scale/override it.
type LoadFunc func(t float64, loadValue float64) float64

// OffsetFunc is the ABI for a joint offset user function, returning a
// 6-vector [dx,dy,dz,dRx,dRy,dRz] (spec §4.5 JointGeneric offset).
type OffsetFunc func(t float64) [6]float64

// ControlFunc is the ABI for a kinematic-tree per-joint control force
// user function (spec §4.4 KinematicTree optional user-function force
// vector).
type ControlFunc func(t float64, q, qDot []float64) []float64

// Site identifies where a callback was invoked from, for error reporting
// (spec §6: "reported with the user-function name").
type Site string

const (
	SiteLoad    Site = "Load"
	SiteOffset  Site = "JointOffset"
	SiteControl Site = "KinematicTreeControl"
)

// CallLoad invokes f under the exception shield, converting any panic into
// an *mbs.Error with Kind=ErrUserFunction (spec §6: "uncaught errors
// propagate as a solver error with the original message preserved").
func CallLoad(name string, f LoadFunc, t, loadValue float64) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = mbs.NewError(mbs.ErrUserFunction, name, "", "user function %q (%s) panicked: %v", name, SiteLoad, r)
		}
	}()
	if f == nil {
		return loadValue, nil
	}
	return f(t, loadValue), nil
}

// CallOffset invokes f under the exception shield.
func CallOffset(name string, f OffsetFunc, t float64) (value [6]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = mbs.NewError(mbs.ErrUserFunction, name, "", "user function %q (%s) panicked: %v", name, SiteOffset, r)
		}
	}()
	if f == nil {
		return [6]float64{}, nil
	}
	return f(t), nil
}

// CallControl invokes f under the exception shield.
func CallControl(name string, f ControlFunc, t float64, q, qDot []float64) (value []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = mbs.NewError(mbs.ErrUserFunction, name, "", "user function %q (%s) panicked: %v", name, SiteControl, r)
		}
	}()
	if f == nil {
		return nil, nil
	}
	return f(t, q, qDot), nil
}

// FromTimeSpace adapts a gosl/fun.TimeSpace function (the teacher's
// function-table type, e.g. for prescribed-force time histories) into a
// LoadFunc that ignores the incoming loadValue and returns f(t, nil).
func FromTimeSpace(f fun.TimeSpace) LoadFunc {
	if f == nil {
		return nil
	}
	return func(t float64, loadValue float64) float64 {
		return f.F(t, nil)
	}
}

// WrapPanic is a small helper that converts a panic inside fn (e.g. a
// singular local solve) into a runtime-numerical mbs.Error instead of
// crashing the process, matching spec §7's local-recovery policy for
// ErrRuntimeNumerical. No package in this module calls it.
func WrapPanic(item string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = mbs.NewError(mbs.ErrRuntimeNumerical, item, "", "%v", fmt.Sprint(r))
		}
	}()
	return fn()
}
