// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package itemschema implements the dictionary-form item construction of
// spec §3/§9: every node, object, marker, load and sensor can be
// described by a discriminator type name plus a dbf.Params-style named
// parameter list, and built through a factory registry, the same pattern
// the teacher's ele package uses for finite elements (ele/factory.go:
// SetAllocator/GetAllocator keyed by string type name).
package itemschema

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Dict is one item's dictionary form: a type discriminator plus its named
// parameters (spec §9 "dictionary-form item construction").
type Dict struct {
	Type   string
	Params dbf.Params
}

// AllocatorFunc builds a concrete item (a node, object, marker, load or
// sensor) from its parameter dictionary. The returned value is an
// interface{} because the five families (node/object/marker/load/sensor)
// share no common supertype; callers type-assert to the family interface
// they expect (mirrors ele.AllocatorType's per-kind New/GetInfo split,
// generalized to five families instead of gofem's one).
type AllocatorFunc func(p dbf.Params) (interface{}, error)

var allocators = map[string]AllocatorFunc{}

// SetAllocator registers fcn under typeName (ele/factory.go's
// SetAllocator); panics on a duplicate registration, since that always
// indicates two item kinds accidentally sharing a type name.
func SetAllocator(typeName string, fcn AllocatorFunc) {
	if _, ok := allocators[typeName]; ok {
		chk.Panic("itemschema: allocator for %q already registered", typeName)
	}
	allocators[typeName] = fcn
}

// New builds the item described by d via its registered allocator
// (ele/factory.go's New).
func New(d Dict) (interface{}, error) {
	fcn, ok := allocators[d.Type]
	if !ok {
		return nil, chk.Err("itemschema: no allocator registered for type %q", d.Type)
	}
	return fcn(d.Params)
}

// Float looks up a named float parameter, returning (value, true) or
// (0, false) if absent (spec solid/elasticity.go's has_E-style pattern).
func Float(p dbf.Params, name string) (float64, bool) {
	for _, e := range p {
		if e.N == name {
			return e.V, true
		}
	}
	return 0, false
}

// FloatOr returns the named parameter or a default if absent.
func FloatOr(p dbf.Params, name string, def float64) float64 {
	if v, ok := Float(p, name); ok {
		return v
	}
	return def
}

// RequireFloat returns the named parameter or a descriptive error.
func RequireFloat(p dbf.Params, name string) (float64, error) {
	if v, ok := Float(p, name); ok {
		return v, nil
	}
	return 0, chk.Err("itemschema: required parameter %q is missing", name)
}

// Vec3 reads three named parameters (e.g. "x","y","z") as a position or
// vector triple, defaulting every missing component to zero.
func Vec3(p dbf.Params, nameX, nameY, nameZ string) [3]float64 {
	return [3]float64{FloatOr(p, nameX, 0), FloatOr(p, nameY, 0), FloatOr(p, nameZ, 0)}
}
