// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbs

import "fmt"

// ErrorKind classifies the five error categories of spec §7.
type ErrorKind int

const (
	// ErrConsistency: graph references invalid (missing marker/node,
	// wrong capability); raised by CheckSystemIntegrity, surfaces before
	// any step runs.
	ErrConsistency ErrorKind = iota
	// ErrParameterDomain: negative lengths, zero stiffness where positive
	// is required; raised at item construction or Assemble.
	ErrParameterDomain
	// ErrRuntimeNumerical: non-invertible rotation update, singular mass
	// matrix, zero-length segment gap; recovered locally via step-size
	// reduction unless it recurs at the minimum step size.
	ErrRuntimeNumerical
	// ErrUserFunction: caught at the user-function boundary.
	ErrUserFunction
	// ErrFatalInvariant: e.g. LTG inconsistency detected mid-solve; aborts
	// the simulation.
	ErrFatalInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConsistency:
		return "Consistency"
	case ErrParameterDomain:
		return "ParameterDomain"
	case ErrRuntimeNumerical:
		return "RuntimeNumerical"
	case ErrUserFunction:
		return "UserFunction"
	case ErrFatalInvariant:
		return "FatalInvariant"
	default:
		return "Unknown"
	}
}

// Error is the single error object every failure path bubbles up as (spec
// §7: "everything else bubbles up as a single error object with
// {kind, item, parameter, message}").
type Error struct {
	Kind      ErrorKind
	Item      string // item name/index the error pertains to, if any
	Parameter string // parameter name, if any
	Message   string
}

func (e *Error) Error() string {
	if e.Item == "" && e.Parameter == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Parameter == "" {
		return fmt.Sprintf("%s [item=%s]: %s", e.Kind, e.Item, e.Message)
	}
	return fmt.Sprintf("%s [item=%s, parameter=%s]: %s", e.Kind, e.Item, e.Parameter, e.Message)
}

// NewError builds an Error, mirroring the teacher's chk.Err formatting
// convenience (a printf-style message).
func NewError(kind ErrorKind, item, parameter, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Item: item, Parameter: parameter, Message: fmt.Sprintf(format, args...)}
}

// Recoverable reports whether the solver may retry (e.g. with a reduced
// step size) instead of aborting (spec §7 policy).
func (e *Error) Recoverable() bool {
	return e.Kind == ErrRuntimeNumerical
}
