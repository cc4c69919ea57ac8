// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// ComputeAlgebraicEquations assembles the full AE block g(q,t) (or ġ at
// velocity level): node-level rows first (rigid-body normalization
// constraints, spec §4.2), then every connector/constraint's own rows, in
// object order (spec §4.6).
func (s *System) ComputeAlgebraicEquations(cfg mbs.ConfigurationType, t float64, velocityLevel bool, out []float64) error {
	row := 0
	for _, n := range s.Nodes {
		if norm, ok := n.(interface {
			NormalizationResidual(mbs.ConfigurationType) float64
		}); ok && n.NumAE() > 0 {
			out[row] = norm.NormalizationResidual(cfg)
			row++
		}
	}
	for oi, obj := range s.Objects {
		if obj.Constraint == nil {
			continue
		}
		md, _, err := s.connectorMarkerData(oi, cfg, false)
		if err != nil {
			return wrap("ComputeAlgebraicEquations", err)
		}
		neq := obj.Constraint.NumConstraintEquations()
		if err := obj.Constraint.ComputeAlgebraicEquations(md, t, velocityLevel, out[row:row+neq]); err != nil {
			return wrap("ComputeAlgebraicEquations", mbs.NewError(mbs.ErrRuntimeNumerical, indexItem("object", oi), "", "%v", err))
		}
		row += neq
	}
	return nil
}

// JacobianODE2RHS computes ∂(ODE2 residual)/∂q by forward difference
// about the current configuration's ODE2 coordinates (spec §4.6: "dense
// vs sparse selected by a MatrixContainer capability flag"; this
// implementation is the always-available dense fallback every analytical
// body/connector Jacobian can eventually replace per-block).
func (s *System) JacobianODE2RHS(cfg mbs.ConfigurationType, t float64, out [][]float64) error {
	n := s.nODE2
	base := make([]float64, n)
	if err := s.ComputeSystemODE2RHS(cfg, t, base); err != nil {
		return err
	}
	q := s.Data.Config(cfg).ODE2Coords
	const h = 1e-7
	perturbed := make([]float64, n)
	for k := 0; k < n; k++ {
		orig := q[k]
		step := h * maxAbs(orig, 1)
		q[k] = orig + step
		if err := s.ComputeSystemODE2RHS(cfg, t, perturbed); err != nil {
			q[k] = orig
			return err
		}
		q[k] = orig
		for r := 0; r < n; r++ {
			out[r][k] = (perturbed[r] - base[r]) / step
		}
	}
	return nil
}

func maxAbs(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if a > b {
		return a
	}
	return b
}

// JacobianAE assembles ∂g/∂q: first each EP node's normalization row
// (NormalizationJacobianRow), then every constraint's own
// ComputeJacobianAE block scattered onto its markers' global columns. It
// does no differencing itself; a constraint that needs a finite-difference
// Jacobian (e.g. JointGeneric) computes it inside ComputeJacobianAE.
func (s *System) JacobianAE(cfg mbs.ConfigurationType, t float64, jOde2 [][]float64) error {
	row := 0
	for _, n := range s.Nodes {
		if jn, ok := n.(interface {
			NormalizationJacobianRow(mbs.ConfigurationType) [7]float64
		}); ok && n.NumAE() > 0 {
			jrow := jn.NormalizationJacobianRow(cfg)
			base := n.Offset(mbs.ODE2)
			for k := 0; k < n.NumODE2() && k < 7; k++ {
				jOde2[row][base+k] = jrow[k]
			}
			row++
		}
	}
	for oi, obj := range s.Objects {
		if obj.Constraint == nil {
			continue
		}
		md, offs, err := s.connectorMarkerData(oi, cfg, true)
		if err != nil {
			return wrap("JacobianAE", err)
		}
		neq := obj.Constraint.NumConstraintEquations()
		local := linalg.MatAlloc(neq, len(offs))
		localT := linalg.MatAlloc(neq, len(offs))
		localAE := linalg.MatAlloc(neq, neq)
		if err := obj.Constraint.ComputeJacobianAE(md, t, local, localT, localAE); err != nil {
			return wrap("JacobianAE", err)
		}
		for r := 0; r < neq; r++ {
			for j, gj := range offs {
				jOde2[row+r][gj] += local[r][j]
			}
		}
		row += neq
	}
	return nil
}
