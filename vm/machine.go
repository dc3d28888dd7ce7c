package vm

import (
	"io"
	"os"

	"github.com/streamvm/streamvm/assembler"
)

// Machine owns all mutable StreamVM state and exposes it only through
// instruction effects (spec.md §4.3). Grounded on the teacher's vm.VM
// (vm/executor.go), generalized from a CPU+Memory pair to the register
// file / sensor cells / stack / video state spec.md's data model names.
type Machine struct {
	Registers map[string]int64
	Sensors   map[string]int64
	Memory    [MemorySize]int64
	Stack     []int64

	program *assembler.Program
	pc      int
	halted  bool
	steps   int

	videoTitle  string
	videoLoaded bool

	// Output is where streaming/PRINT/PRINTS/HALT lines are written.
	// Abstracted behind io.Writer (spec.md §9's "side-effecting
	// instructions" design note) so tests can capture output without a
	// real stdout.
	Output io.Writer
}

// NewMachine constructs a Machine with the spec.md §3 initial state:
// POS=0, SPEED=1, R0=0, R1=0; all sensors 0; 256 zeroed memory cells; an
// empty stack; no program loaded.
func NewMachine() *Machine {
	m := &Machine{
		Registers: map[string]int64{
			RegPOS:   0,
			RegSPEED: 1,
			RegR0:    0,
			RegR1:    0,
		},
		Sensors: map[string]int64{
			SensorDuration:  0,
			SensorIsPlaying: 0,
			SensorEnded:     0,
		},
		program: &assembler.Program{},
		Output:  os.Stdout,
	}
	return m
}

// LoadProgram assembles source and resets Program, Labels, Stack, pc,
// halted, and steps. It intentionally does NOT reset Registers, Sensors,
// Memory, or video state (spec.md §4.3): a subsequent load inherits
// whatever those were. Construct a fresh Machine for a clean run.
func (m *Machine) LoadProgram(source string) error {
	prog, err := assembler.Assemble(source)
	if err != nil {
		return err
	}
	m.program = prog
	m.Stack = nil
	m.pc = 0
	m.halted = false
	m.steps = 0
	vmLog.Printf("loaded program: %d instructions, %d labels", prog.Len(), len(prog.Labels))
	return nil
}

// Reset restores the machine to the state NewMachine produces: registers,
// sensors, memory, video state, and the loaded program are all cleared.
// Grounded on the teacher's vm.VM.Reset, exposed as the "separate reset
// capability" spec.md §9 asks for.
func (m *Machine) Reset() {
	out := m.Output
	*m = *NewMachine()
	m.Output = out
}

func (m *Machine) PC() int      { return m.pc }
func (m *Machine) Halted() bool { return m.halted }
func (m *Machine) Steps() int   { return m.steps }

// VideoTitle reports the currently open video's title and whether a video
// is loaded at all.
func (m *Machine) VideoTitle() (string, bool) {
	return m.videoTitle, m.videoLoaded
}

func (m *Machine) push(v int64) {
	m.Stack = append(m.Stack, v)
}

func (m *Machine) pop() (int64, bool) {
	if len(m.Stack) == 0 {
		return 0, false
	}
	v := m.Stack[len(m.Stack)-1]
	m.Stack = m.Stack[:len(m.Stack)-1]
	return v, true
}
