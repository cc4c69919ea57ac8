// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/slyandsmart/EXUDYN-sub000/linalg"
	"github.com/slyandsmart/EXUDYN-sub000/marker"
	"github.com/slyandsmart/EXUDYN-sub000/mbs"
	"github.com/slyandsmart/EXUDYN-sub000/node"
)

func newStandaloneStore(n mbs.Node) *mbs.CData {
	n.SetOffset(mbs.ODE2, 0)
	n.SetOffset(mbs.ODE1, 0)
	n.SetOffset(mbs.AE, 0)
	n.SetOffset(mbs.Data, 0)
	d := &mbs.CData{}
	d.ForEachConfig(func(cfg mbs.ConfigurationType, c *mbs.Config) {
		c.Resize(n.NumODE2(), n.NumODE1(), n.NumAE(), n.NumData())
	})
	if st, ok := n.(interface{ SetStore(*mbs.CData) }); ok {
		st.SetStore(d)
	}
	return d
}

func Test_nodesensor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nodesensor01")

	p := node.NewPoint(linalg.Vec3{1, 2, 3})
	d := newStandaloneStore(p)
	cur := d.Config(mbs.ConfigCurrent)
	cur.ODE2Coords[0], cur.ODE2Coords[1], cur.ODE2Coords[2] = 0.1, 0, 0

	s := &Node{Source: &node.Output{Node: p}, OutputVariable_: mbs.OVPosition, StoreInternal_: true}
	v, err := s.Evaluate(0.5)
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "position", 1e-15, v, []float64{1.1, 2, 3})

	hist := s.History()
	if len(hist) != 1 {
		tst.Fatalf("History length = %d, want 1", len(hist))
	}
	chk.Vector(tst, "history row", 1e-15, hist[0], []float64{0.5, 1.1, 2, 3})
}

func Test_markersensor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("markersensor01")

	p := node.NewPoint(linalg.Vec3{0, 0, 0})
	newStandaloneStore(p)
	m := &marker.NodePosition{Node: p}

	s := &Marker{Marker: m, OutputVariable_: mbs.OVPosition}
	v, err := s.Evaluate(0)
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "marker position", 1e-15, v, []float64{0, 0, 0})
}

func Test_userfunctionsensor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("userfunctionsensor01")

	s := &UserFunction{
		Func: func(t float64) ([]float64, error) { return []float64{2 * t}, nil },
	}
	v, err := s.Evaluate(3)
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	chk.Vector(tst, "user function value", 1e-15, v, []float64{6})
}

func Test_filewriter01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("filewriter01")

	path := filepath.Join(tst.TempDir(), "out.txt")
	w := &FileWriter{Path: path}
	w.Append(0.0, []float64{1, 2})
	w.Append(0.1, []float64{3, 4})
	if err := w.Flush(); err != nil {
		tst.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		tst.Fatalf("line count = %d, want 2 (content: %q)", len(lines), string(data))
	}
	if !strings.Contains(lines[0], "1") || !strings.Contains(lines[0], "2") {
		tst.Errorf("line 0 = %q, want it to contain the appended values 1 and 2", lines[0])
	}
	if !strings.Contains(lines[1], "0.1") || !strings.Contains(lines[1], "3") || !strings.Contains(lines[1], "4") {
		tst.Errorf("line 1 = %q, want it to contain the appended values 0.1, 3, 4", lines[1])
	}
}
