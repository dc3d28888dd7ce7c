package debugger

import (
	"strings"
	"testing"
)

func TestLoadRunOutputCycle(t *testing.T) {
	dbg := NewDebugger(nil)

	if err := dbg.Service.LoadProgram("PUSH 1\nPUSH 2\nADD\nPRINT\nHALT"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := dbg.ExecuteCommand("run"); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := dbg.GetOutput()
	if !strings.Contains(out, "halted") {
		t.Fatalf("expected halted message, got %q", out)
	}

	if err := dbg.ExecuteCommand("output"); err != nil {
		t.Fatalf("output: %v", err)
	}
	if got := dbg.GetOutput(); !strings.Contains(got, "3") {
		t.Fatalf("expected printed 3, got %q", got)
	}
}

func TestEmptyCommandRepeatsLast(t *testing.T) {
	dbg := NewDebugger(nil)
	if err := dbg.ExecuteCommand("help"); err != nil {
		t.Fatalf("help: %v", err)
	}
	dbg.GetOutput()

	if err := dbg.ExecuteCommand(""); err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if got := dbg.GetOutput(); !strings.Contains(got, "Commands:") {
		t.Fatalf("expected help text repeated, got %q", got)
	}
}

func TestUnknownCommandIsAnError(t *testing.T) {
	dbg := NewDebugger(nil)
	if err := dbg.ExecuteCommand("bogus"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestResetClearsState(t *testing.T) {
	dbg := NewDebugger(nil)
	_ = dbg.Service.LoadProgram("PUSH 5\nHALT")
	_ = dbg.ExecuteCommand("step")
	dbg.GetOutput()

	if err := dbg.ExecuteCommand("reset"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	state := dbg.Service.State()
	if state.PC != 0 || state.Steps != 0 {
		t.Fatalf("expected a clean machine after reset, got %+v", state)
	}
}
