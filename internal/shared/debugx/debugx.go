// Package debugx captures labeled value snapshots during development.
//
// A halt is an explicit error value carrying the snapshot; the HTTP layer
// renders it when debugging is enabled. Nothing here panics or hijacks
// control flow.
package debugx

import (
	"fmt"
	"runtime"
)

// Frame is one call-site entry of a snapshot trace.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Snapshot records a value at the moment Stop was called.
type Snapshot struct {
	Label    string  `json:"label"`
	TypeName string  `json:"type"`
	Value    any     `json:"value"`
	Trace    []Frame `json:"trace"`
}

// Halt is the error returned by Stop when debugging is enabled. Callers
// propagate it like any other error; the boundary layer renders the snapshot.
type Halt struct {
	Snapshot Snapshot
}

func (h *Halt) Error() string {
	if h.Snapshot.Label != "" {
		return fmt.Sprintf("debug halt: %s", h.Snapshot.Label)
	}
	return fmt.Sprintf("debug halt: %s", h.Snapshot.TypeName)
}

// Debugger gates snapshot halts behind a configuration flag.
type Debugger struct {
	enabled bool
}

// New constructs a Debugger. Production passes enabled=false, which turns
// every Stop into a no-op.
func New(enabled bool) *Debugger {
	return &Debugger{enabled: enabled}
}

// Enabled reports whether halts are active.
func (d *Debugger) Enabled() bool {
	return d != nil && d.enabled
}

// Stop returns a *Halt carrying a snapshot of value when debugging is
// enabled, nil otherwise.
func (d *Debugger) Stop(value any, label string) error {
	if !d.Enabled() {
		return nil
	}
	return &Halt{Snapshot: capture(value, label, 2)}
}

func capture(value any, label string, skip int) Snapshot {
	var pcs [16]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var trace []Frame
	for {
		frame, more := frames.Next()
		trace = append(trace, Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}

	return Snapshot{
		Label:    label,
		TypeName: fmt.Sprintf("%T", value),
		Value:    value,
		Trace:    trace,
	}
}
