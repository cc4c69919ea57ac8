// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"bytes"

	"github.com/cpmech/gosl/io"
)

// FileWriter accumulates "time value[0] value[1] ..." lines for every
// WriteToFile()-flagged sensor (spec §6 "Persisted sensor layout") and
// flushes the whole buffer to disk once, the way the teacher's own
// output routines build a bytes.Buffer across time steps before a single
// io.WriteFileV call (e.g. fem's .pvd/.vtu writers) rather than reopening
// a file every step.
type FileWriter struct {
	Path string
	buf  bytes.Buffer
}

// Append writes one "time value..." line if the sample is non-empty.
func (w *FileWriter) Append(t float64, values []float64) {
	if len(values) == 0 {
		return
	}
	w.buf.WriteString(io.Sf("%v", t))
	for _, v := range values {
		w.buf.WriteString(io.Sf(" %v", v))
	}
	w.buf.WriteString("\n")
}

// Flush writes the accumulated buffer to Path.
func (w *FileWriter) Flush() error {
	return io.WriteFileV(w.Path, &w.buf)
}
