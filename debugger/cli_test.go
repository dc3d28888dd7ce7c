package debugger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIExecutesCommandsAndExitsOnQuit(t *testing.T) {
	dbg := NewDebugger(nil)

	path := filepath.Join(t.TempDir(), "program.svm")
	if err := os.WriteFile(path, []byte("PUSH 1\nPUSH 1\nADD\nPRINT\nHALT"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	in := strings.NewReader(fmt.Sprintf("load %s\nrun\nquit\n", path))
	var out strings.Builder

	if err := RunCLI(dbg, in, &out); err != nil {
		t.Fatalf("RunCLI: %v", err)
	}

	result := out.String()
	if !strings.Contains(result, "Program loaded") {
		t.Fatalf("expected load confirmation, got %q", result)
	}
	if !strings.Contains(result, "Exiting debugger") {
		t.Fatalf("expected exit message, got %q", result)
	}
}
