package debugx

import (
	"errors"
	"testing"
)

func TestStopDisabledIsNoOp(t *testing.T) {
	d := New(false)
	if err := d.Stop(map[string]int{"a": 1}, "checkpoint"); err != nil {
		t.Fatalf("expected nil from disabled debugger, got %v", err)
	}
}

func TestStopEnabledReturnsHalt(t *testing.T) {
	d := New(true)
	err := d.Stop("value", "checkpoint")

	var halt *Halt
	if !errors.As(err, &halt) {
		t.Fatalf("expected *Halt, got %v", err)
	}
	if halt.Snapshot.Label != "checkpoint" {
		t.Fatalf("unexpected label %q", halt.Snapshot.Label)
	}
	if halt.Snapshot.TypeName != "string" {
		t.Fatalf("unexpected type name %q", halt.Snapshot.TypeName)
	}
	if len(halt.Snapshot.Trace) == 0 {
		t.Fatal("expected call trace on snapshot")
	}
}
