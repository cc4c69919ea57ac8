// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

// The named joints of spec §12 are all JointGeneric instances with a
// fixed ConstrainedAxes pattern (spec §4.5: "JointSpherical, JointRevolute,
// JointPrismatic, JointRevolute2D etc. are built by choosing
// ConstrainedAxes"); these constructors save callers from hand-assembling
// the bitvector, the way the teacher's ele/factory.go allocators hide a
// model's raw parameter dictionary behind a typed constructor.

// NewJointSpherical locks all three translations, leaves rotation free
// (a ball joint).
func NewJointSpherical(marker0, marker1 int) *JointGeneric {
	return &JointGeneric{
		Markers:         [2]int{marker0, marker1},
		ConstrainedAxes: [6]bool{true, true, true, false, false, false},
	}
}

// NewJointRevoluteZ locks all three translations and the x/y rotations,
// leaving rotation about the local z axis free.
func NewJointRevoluteZ(marker0, marker1 int) *JointGeneric {
	return &JointGeneric{
		Markers:         [2]int{marker0, marker1},
		ConstrainedAxes: [6]bool{true, true, true, true, true, false},
	}
}

// NewJointPrismaticX locks all three rotations and the y/z translations,
// leaving translation along the local x axis free.
func NewJointPrismaticX(marker0, marker1 int) *JointGeneric {
	return &JointGeneric{
		Markers:         [2]int{marker0, marker1},
		ConstrainedAxes: [6]bool{false, true, true, true, true, true},
	}
}

// NewJointRevolute2D is the revolute joint for planar mechanisms with
// marker0's local z axis normal to the motion plane (spec §12, spec §8
// scenario B's slider-crank). It returns NewJointRevoluteZ unchanged: all
// three translations and the x/y rotations are locked (5 equations).
func NewJointRevolute2D(marker0, marker1 int) *JointGeneric {
	return NewJointRevoluteZ(marker0, marker1)
}

// NewJointRigid locks every axis, welding the two markers together.
func NewJointRigid(marker0, marker1 int) *JointGeneric {
	return &JointGeneric{
		Markers:         [2]int{marker0, marker1},
		ConstrainedAxes: [6]bool{true, true, true, true, true, true},
	}
}

// NewJointUniversal locks all translations and one rotation axis,
// leaving the other two rotation axes free (a Cardan/universal joint).
func NewJointUniversal(marker0, marker1 int) *JointGeneric {
	return &JointGeneric{
		Markers:         [2]int{marker0, marker1},
		ConstrainedAxes: [6]bool{true, true, true, true, false, false},
	}
}
