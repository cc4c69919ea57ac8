// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"github.com/cpmech/gosl/io"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
)

// ObjectEntry pairs a Body or Connector/Constraint with the marker
// indices it reads from (spec §4.1: objects reference markers by index,
// not by pointer, the way the teacher's elements reference cells by tag).
type ObjectEntry struct {
	Body       mbs.Body       // non-nil for a Body entry
	Connector  mbs.Connector  // non-nil for a Connector/Constraint entry
	Constraint mbs.Constraint // non-nil iff Connector also implements mbs.Constraint
	Stepper    mbs.PostNewtonStepper // non-nil iff this object is discontinuous
	Nodes      []mbs.Node            // this object's own nodes, in local order (Body only)

	// ltg is this object's local-to-global ODE2 coordinate index list,
	// built once by AssembleLTGLists and reused afterward in place of
	// recomputing node/marker offsets on every mass-matrix/residual/
	// Jacobian pass (spec §4.1 AssembleLTGLists contract). nil until
	// Assemble has run.
	ltg []int
}

// LoadEntry pairs a Load with its target marker.
type LoadEntry struct {
	Load   mbs.Load
	Marker int
}

// System is the CSystemData-equivalent container (spec §4.1): flat arrays
// of nodes/objects/markers/loads/sensors, plus the five shared CData
// configurations every node reads/writes through.
type System struct {
	Nodes   []mbs.Node
	Objects []ObjectEntry
	Markers []mbs.Marker
	Loads   []LoadEntry
	Sensors []mbs.Sensor

	Data *mbs.CData

	// Verbose gates io.Pf status output, mirroring the teacher's
	// sim.Data.ShowMsg and fem's Verbose flag convention.
	Verbose bool

	nODE2, nODE1, nAE, nData int

	// systemIsConsistent is false until Assemble succeeds, and is never
	// cleared automatically afterward: callers that mutate Nodes/Objects/
	// Markers/Loads directly (this package exposes no AddX/ModifyX method,
	// unlike spec §3's lifecycle sketch) must call Invalidate themselves
	// before the next Assemble. Integrator.Step refuses to run while this
	// is false (spec §3 Lifecycle: "attempts to solve without
	// re-assembly are refused").
	systemIsConsistent bool
}

// New allocates an empty System with its own coordinate store.
func New() *System {
	return &System{Data: &mbs.CData{}}
}

// IsConsistent reports whether Assemble has run since the last
// Invalidate (or since construction).
func (s *System) IsConsistent() bool { return s.systemIsConsistent }

// Invalidate clears the assembled flag, forcing the next solve attempt to
// be refused until Assemble runs again. Call this after appending to or
// modifying Nodes/Objects/Markers/Loads/Sensors.
func (s *System) Invalidate() { s.systemIsConsistent = false }

// Assemble is the system's single lifecycle entry point (spec §3
// Lifecycle): it freezes the graph, assigns coordinate indices, builds
// every object's LTG list, initializes the five shared configurations
// from nodal state, validates every cross-reference, and only then marks
// the system consistent. Returns the first ErrConsistency/ErrRuntimeNumerical
// encountered, leaving systemIsConsistent false.
func (s *System) Assemble() error {
	s.systemIsConsistent = false
	s.AssembleCoordinates()
	s.AssembleInitializeSystemCoordinates()
	if err := s.CheckSystemIntegrity(); err != nil {
		return err
	}
	if err := s.AssembleLTGLists(); err != nil {
		return err
	}
	s.systemIsConsistent = true
	if s.Verbose {
		io.Pfgreen("system: assembled (%d nodes, %d objects, %d markers)\n", len(s.Nodes), len(s.Objects), len(s.Markers))
	}
	return nil
}

// AssembleLTGLists builds each object's local-to-global ODE2 coordinate
// index list (spec §4.1): a Body's list flattens its own nodes' ODE2
// ranges in node order; a Connector's list flattens both of its markers'
// coordinate ranges, evaluated once against ConfigReference (the marker
// column count a Jacobian exposes does not vary over time, only the
// values in it do). Must run after AssembleCoordinates/
// AssembleInitializeSystemCoordinates, since it depends on the offsets
// and storage those assign.
func (s *System) AssembleLTGLists() error {
	for i := range s.Objects {
		obj := &s.Objects[i]
		switch {
		case obj.Body != nil:
			obj.ltg = s.nodeOffsets(obj.Nodes)
		case obj.Connector != nil:
			_, offs, err := s.connectorMarkerOffsets(i, mbs.ConfigReference)
			if err != nil {
				return wrap("AssembleLTGLists", mbs.NewError(mbs.ErrConsistency, indexItem("object", i), "", "%v", err))
			}
			obj.ltg = offs
		}
	}
	return nil
}

// AssembleCoordinates assigns each node a disjoint [offset, offset+n)
// range per coordinate kind (spec §4.1 "Nodes own their slots in the
// global coordinate vector") and records the totals; it does not resize
// the configurations (AssembleInitializeSystemCoordinates does).
func (s *System) AssembleCoordinates() {
	s.nODE2, s.nODE1, s.nAE, s.nData = 0, 0, 0, 0
	for _, n := range s.Nodes {
		n.SetOffset(mbs.ODE2, s.nODE2)
		s.nODE2 += n.NumODE2()
		n.SetOffset(mbs.ODE1, s.nODE1)
		s.nODE1 += n.NumODE1()
		n.SetOffset(mbs.AE, s.nAE)
		s.nAE += n.NumAE()
		n.SetOffset(mbs.Data, s.nData)
		s.nData += n.NumData()
	}
}

// ConstraintOffsets returns, for every object index with a non-nil
// Constraint, the AE row offset its equations start at (computed fresh
// each call since the connector list does not itself own offset storage,
// unlike nodes).
func (s *System) ConstraintOffsets() map[int]int {
	offsets := make(map[int]int)
	row := s.nAE
	for i, obj := range s.Objects {
		if obj.Constraint != nil {
			offsets[i] = row
			row += obj.Constraint.NumConstraintEquations()
		}
	}
	return offsets
}

// NumODE2 returns the assembled global ODE2 coordinate count.
func (s *System) NumODE2() int { return s.nODE2 }

// NumODE1 returns the assembled global ODE1 coordinate count.
func (s *System) NumODE1() int { return s.nODE1 }

// NumData returns the assembled global Data coordinate count.
func (s *System) NumData() int { return s.nData }

// TotalAERows returns the full AE block size: node-level normalization
// rows plus every connector/constraint's rows.
func (s *System) TotalAERows() int {
	row := s.nAE
	for _, obj := range s.Objects {
		if obj.Constraint != nil {
			row += obj.Constraint.NumConstraintEquations()
		}
	}
	return row
}

// AssembleInitializeSystemCoordinates resizes the five configurations to
// the sizes AssembleCoordinates computed, and seeds Reference/Initial
// from whatever node fields already carry their reference state (spec
// §4.1).
func (s *System) AssembleInitializeSystemCoordinates() {
	totalAE := s.TotalAERows()
	s.Data.ForEachConfig(func(cfg mbs.ConfigurationType, c *mbs.Config) {
		c.Resize(s.nODE2, s.nODE1, totalAE, s.nData)
	})
	for _, n := range s.Nodes {
		if st, ok := n.(interface{ SetStore(*mbs.CData) }); ok {
			st.SetStore(s.Data)
		}
	}
	for _, n := range s.Nodes {
		if sr, ok := n.(interface{ SeedReference(mbs.ConfigurationType) }); ok {
			s.Data.ForEachConfig(func(cfg mbs.ConfigurationType, c *mbs.Config) {
				sr.SeedReference(cfg)
			})
		}
	}
	if s.Verbose {
		io.Pfgreen("system: %d ODE2, %d ODE1, %d AE, %d Data coordinates assembled\n", s.nODE2, s.nODE1, totalAE, s.nData)
	}
}

// CheckSystemIntegrity validates every marker/object cross-reference
// before a single step runs (spec §7 ErrConsistency: "graph references
// invalid").
func (s *System) CheckSystemIntegrity() error {
	for i, m := range s.Markers {
		if m == nil {
			return mbs.NewError(mbs.ErrConsistency, indexItem("marker", i), "", "marker is nil")
		}
	}
	for i, obj := range s.Objects {
		if obj.Connector != nil {
			for _, mi := range obj.Connector.MarkerNumbers() {
				if mi < 0 || mi >= len(s.Markers) {
					return mbs.NewError(mbs.ErrConsistency, indexItem("object", i), "markerNumber", "marker index %d out of range", mi)
				}
			}
		}
	}
	for i, le := range s.Loads {
		if le.Marker < 0 || le.Marker >= len(s.Markers) {
			return mbs.NewError(mbs.ErrConsistency, indexItem("load", i), "marker", "marker index %d out of range", le.Marker)
		}
	}
	return nil
}

func indexItem(kind string, i int) string { return kind + "#" + itoa(i) }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// ComputeMassMatrix assembles the global (dense) mass matrix by summing
// every body's local contribution at its nodes' global offsets (spec
// §4.4).
func (s *System) ComputeMassMatrix(cfg mbs.ConfigurationType, M [][]float64) error {
	for i := range M {
		for j := range M[i] {
			M[i][j] = 0
		}
	}
	for oi, obj := range s.Objects {
		if obj.Body == nil {
			continue
		}
		n := obj.Body.NumCoordinates()
		if n == 0 {
			continue
		}
		local := linalg.MatAlloc(n, n)
		if err := obj.Body.ComputeMassMatrix(cfg, local); err != nil {
			return wrap("ComputeMassMatrix", mbs.NewError(mbs.ErrRuntimeNumerical, indexItem("object", oi), "", "%v", err))
		}
		offs := obj.ltg
		if offs == nil {
			offs = s.nodeOffsets(obj.Nodes)
		}
		scatterAdd(M, local, offs)
	}
	return nil
}

// nodeOffsets returns the global ODE2 column index of each local
// coordinate across a body's node list, in order.
func (s *System) nodeOffsets(nodes []mbs.Node) []int {
	var offs []int
	for _, n := range nodes {
		base := n.Offset(mbs.ODE2)
		for k := 0; k < n.NumODE2(); k++ {
			offs = append(offs, base+k)
		}
	}
	return offs
}

func scatterAdd(global, local [][]float64, offs []int) {
	for i, gi := range offs {
		for j, gj := range offs {
			global[gi][gj] += local[i][j]
		}
	}
}

func scatterAddVec(global []float64, local []float64, offs []int) {
	for i, gi := range offs {
		global[gi] += local[i]
	}
}

// ComputeSystemODE2RHS assembles the global ODE2 residual: each body's
// internal-force/quadratic-velocity term, plus every connector's penalty
// force (computed from its two markers' MarkerData), plus every load's
// generalized force (spec §2, §4.4, §4.5).
func (s *System) ComputeSystemODE2RHS(cfg mbs.ConfigurationType, t float64, out []float64) error {
	for i := range out {
		out[i] = 0
	}
	for oi, obj := range s.Objects {
		if obj.Body == nil {
			continue
		}
		n := obj.Body.NumCoordinates()
		if n == 0 {
			continue
		}
		local := make([]float64, n)
		if err := obj.Body.ComputeODE2LHS(cfg, local); err != nil {
			return wrap("ComputeSystemODE2RHS", mbs.NewError(mbs.ErrRuntimeNumerical, indexItem("object", oi), "", "%v", err))
		}
		offs := obj.ltg
		if offs == nil {
			offs = s.nodeOffsets(obj.Nodes)
		}
		scatterAddVec(out, local, offs)
	}
	for oi, obj := range s.Objects {
		if obj.Connector == nil {
			continue
		}
		md, offs, err := s.connectorMarkerData(oi, cfg, true)
		if err != nil {
			return wrap("ComputeSystemODE2RHS", err)
		}
		n := len(offs)
		local := make([]float64, n)
		if err := obj.Connector.ComputeODE2LHS(md, t, local); err != nil {
			return wrap("ComputeSystemODE2RHS", mbs.NewError(mbs.ErrRuntimeNumerical, indexItem("object", oi), "", "%v", err))
		}
		scatterAddVec(out, local, offs)
	}
	for li, le := range s.Loads {
		md, err := s.Markers[le.Marker].ComputeMarkerData(cfg, true)
		if err != nil {
			return wrap("ComputeSystemODE2RHS", err)
		}
		value, err := le.Load.Evaluate(t, md)
		if err != nil {
			return wrap("ComputeSystemODE2RHS", mbs.NewError(mbs.ErrUserFunction, indexItem("load", li), "", "%v", err))
		}
		jac := md.PositionJacobian
		if jac == nil {
			jac = md.Jacobian
		}
		if jac == nil {
			continue
		}
		n := len(jac[0])
		for j := 0; j < n; j++ {
			var sum float64
			for i := 0; i < len(value) && i < len(jac); i++ {
				sum += jac[i][j] * value[i]
			}
			out[s.markerGlobalOffset(le.Marker)+j] += sum
		}
	}
	return nil
}

// offsetter is implemented by every package marker type: markers attach
// to exactly one node/body, whose global ODE2 offset they expose
// unchanged so the assembler can scatter connector/load contributions.
type offsetter interface {
	GlobalOffset() int
}

// markerGlobalOffset returns the global ODE2 offset a marker's Jacobian
// columns start at.
func (s *System) markerGlobalOffset(markerIdx int) int {
	if o, ok := s.Markers[markerIdx].(offsetter); ok {
		return o.GlobalOffset()
	}
	return 0
}

// connectorMarkerData evaluates both of object oi's markers and returns
// their MarkerData plus the flattened global-offset list spanning both
// (marker0's coordinates first, then marker1's), matching the local
// vector layout every Connector/Constraint implementation assumes. Once
// AssembleLTGLists has cached the offset list it is reused as-is, rather
// than recomputed from every MarkerData's column count on each call.
func (s *System) connectorMarkerData(oi int, cfg mbs.ConfigurationType, withJacobian bool) ([2]*mbs.MarkerData, []int, error) {
	obj := &s.Objects[oi]
	mn := obj.Connector.MarkerNumbers()
	var md [2]*mbs.MarkerData
	for k, mi := range mn {
		d, err := s.Markers[mi].ComputeMarkerData(cfg, withJacobian)
		if err != nil {
			return md, nil, err
		}
		md[k] = d
	}
	if obj.ltg != nil {
		return md, obj.ltg, nil
	}
	var offs []int
	for k, mi := range mn {
		base := s.markerGlobalOffset(mi)
		n := md[k].NCoords()
		for j := 0; j < n; j++ {
			offs = append(offs, base+j)
		}
	}
	return md, offs, nil
}

// connectorMarkerOffsets is connectorMarkerData without the withJacobian
// requirement relaxed to whatever a marker reports by default, used only
// by AssembleLTGLists to derive each connector's coordinate-range width
// once at assembly time.
func (s *System) connectorMarkerOffsets(oi int, cfg mbs.ConfigurationType) ([2]*mbs.MarkerData, []int, error) {
	obj := &s.Objects[oi]
	mn := obj.Connector.MarkerNumbers()
	var md [2]*mbs.MarkerData
	var offs []int
	for k, mi := range mn {
		d, err := s.Markers[mi].ComputeMarkerData(cfg, true)
		if err != nil {
			return md, nil, err
		}
		md[k] = d
		base := s.markerGlobalOffset(mi)
		n := d.NCoords()
		for j := 0; j < n; j++ {
			offs = append(offs, base+j)
		}
	}
	return md, offs, nil
}
