// Package debugger provides an interactive front end over a running
// service.Service, grounded on the teacher's debugger package
// (debugger/debugger.go, debugger/tui.go): a command dispatcher plus a
// tcell/tview text UI, trimmed to StreamVM's simpler model (no
// addresses, no breakpoints/watchpoints — just step, run, and
// inspection of a single machine).
package debugger

import (
	"fmt"
	"strings"

	"github.com/streamvm/streamvm/config"
	"github.com/streamvm/streamvm/service"
)

// Debugger wraps a service.Service with command history and an output
// buffer, the same shape as the teacher's Debugger around its vm.VM.
type Debugger struct {
	Service *service.Service

	History      []string
	LastCommand  string
	outputBuffer strings.Builder
}

func NewDebugger(cfg *config.Config) *Debugger {
	return &Debugger{Service: service.New(cfg)}
}

// ExecuteCommand parses and runs a command line, grounded on the
// teacher's Debugger.ExecuteCommand.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History = append(d.History, cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "load", "l":
		return d.cmdLoad(args)
	case "step", "s":
		return d.cmdStep(args)
	case "run", "r", "continue", "c":
		return d.cmdRun(args)
	case "reset":
		return d.cmdReset(args)
	case "print", "p", "info", "i":
		return d.cmdPrint(args)
	case "output", "o":
		return d.cmdOutput(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// GetOutput returns and clears the accumulated textual output.
func (d *Debugger) GetOutput() string {
	out := d.outputBuffer.String()
	d.outputBuffer.Reset()
	return out
}

func (d *Debugger) Println(s string) {
	d.outputBuffer.WriteString(s)
	d.outputBuffer.WriteString("\n")
}

func (d *Debugger) Printf(format string, args ...any) {
	fmt.Fprintf(&d.outputBuffer, format, args...)
}
