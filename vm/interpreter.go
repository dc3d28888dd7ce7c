package vm

import (
	"fmt"

	"github.com/streamvm/streamvm/assembler"
)

// Step executes at most one instruction. It increments Steps by exactly
// one iff an instruction was dispatched — not when pre-empted by the
// halted check or the pc-out-of-range auto-halt (spec.md §4.4).
func (m *Machine) Step() error {
	if m.halted {
		return nil
	}
	if m.pc < 0 || m.pc >= m.program.Len() {
		m.halted = true
		return nil
	}

	inst := m.program.Instructions[m.pc]
	m.steps++

	if err := m.dispatch(inst); err != nil {
		return err
	}
	return nil
}

// Run repeatedly calls Step until Halted becomes true, failing with a
// step-limit error if Steps reaches maxSteps before halting. The check
// happens before each step, so a program that terminates exactly on step
// maxSteps succeeds (spec.md §4.5). A maxSteps of zero or less means
// DefaultMaxSteps.
func (m *Machine) Run(maxSteps int) error {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	for !m.halted {
		if m.steps >= maxSteps {
			return &RuntimeError{Kind: ErrStepLimitReached, PC: m.pc, Op: "", Msg: fmt.Sprintf("exceeded %d steps", maxSteps)}
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// dispatch executes one already-fetched instruction. Unless the opcode
// modifies pc itself (branches and HALT), pc is advanced by one after the
// effect runs.
func (m *Machine) dispatch(inst assembler.Instruction) error {
	op := inst.Op
	args := inst.Args

	switch op {
	case "PUSH":
		v, err := m.resolve(args[0], op)
		if err != nil {
			return err
		}
		m.push(v)
		m.pc++

	case "POP":
		reg, err := m.resolveRegister(args[0], op)
		if err != nil {
			return err
		}
		v, ok := m.pop()
		if !ok {
			return m.emptyStackErr(op)
		}
		m.Registers[reg] = v
		m.pc++

	case "LOAD":
		addr, err := m.memAddr(args[0], op)
		if err != nil {
			return err
		}
		m.push(m.Memory[addr])
		m.pc++

	case "STORE":
		addr, err := m.memAddr(args[0], op)
		if err != nil {
			return err
		}
		v, ok := m.pop()
		if !ok {
			return m.emptyStackErr(op)
		}
		m.Memory[addr] = v
		m.pc++

	case "ADD", "SUB", "MUL":
		b, a, ok := m.pop2()
		if !ok {
			return m.emptyStackErr(op)
		}
		var r int64
		switch op {
		case "ADD":
			r = a + b
		case "SUB":
			r = a - b
		case "MUL":
			r = a * b
		}
		m.push(r)
		m.pc++

	case "DIV":
		b, a, ok := m.pop2()
		if !ok {
			return m.emptyStackErr(op)
		}
		if b == 0 {
			return &RuntimeError{Kind: ErrDivByZero, PC: m.pc, Op: op}
		}
		m.push(floorDiv(a, b))
		m.pc++

	case "NEG":
		a, ok := m.pop()
		if !ok {
			return m.emptyStackErr(op)
		}
		m.push(-a)
		m.pc++

	case "EQ", "NE", "LT", "LE", "GT", "GE":
		b, a, ok := m.pop2()
		if !ok {
			return m.emptyStackErr(op)
		}
		var r bool
		switch op {
		case "EQ":
			r = a == b
		case "NE":
			r = a != b
		case "LT":
			r = a < b
		case "LE":
			r = a <= b
		case "GT":
			r = a > b
		case "GE":
			r = a >= b
		}
		m.push(boolToInt(r))
		m.pc++

	case "GOTO":
		idx, err := m.resolveLabel(args[0], op)
		if err != nil {
			return err
		}
		m.pc = idx

	case "JUMPZ":
		v, ok := m.pop()
		if !ok {
			return m.emptyStackErr(op)
		}
		if v == 0 {
			idx, err := m.resolveLabel(args[0], op)
			if err != nil {
				return err
			}
			m.pc = idx
		} else {
			m.pc++
		}

	case "JUMPI":
		v, ok := m.pop()
		if !ok {
			return m.emptyStackErr(op)
		}
		if v != 0 {
			idx, err := m.resolveLabel(args[0], op)
			if err != nil {
				return err
			}
			m.pc = idx
		} else {
			m.pc++
		}

	case "DECJZ":
		reg, err := m.resolveRegister(args[0], op)
		if err != nil {
			return err
		}
		if m.Registers[reg] == 0 {
			idx, err := m.resolveLabel(args[1], op)
			if err != nil {
				return err
			}
			m.pc = idx
		} else {
			m.Registers[reg]--
			m.pc++
		}

	case "OPEN":
		m.videoTitle = args[0]
		m.videoLoaded = true
		m.Sensors[SensorDuration] = SimulatedDuration
		m.Sensors[SensorIsPlaying] = 0
		m.Sensors[SensorEnded] = 0
		m.Registers[RegPOS] = 0
		m.emit(fmt.Sprintf("[STREAM] opened video: %q", m.videoTitle))
		m.pc++

	case "PLAY":
		if !m.videoLoaded {
			return &RuntimeError{Kind: ErrNoVideoLoaded, PC: m.pc, Op: op}
		}
		speed := int64(1)
		if len(args) > 0 {
			v, err := m.resolve(args[0], op)
			if err != nil {
				return err
			}
			speed = v
		}
		m.Registers[RegSPEED] = speed
		m.Sensors[SensorIsPlaying] = 1
		m.emit(fmt.Sprintf("[STREAM] playing at %dx", speed))
		m.pc++

	case "PAUSE":
		m.Sensors[SensorIsPlaying] = 0
		m.emit(fmt.Sprintf("[STREAM] paused at %ds", m.Registers[RegPOS]))
		m.pc++

	case "STOP":
		m.Sensors[SensorIsPlaying] = 0
		m.Registers[RegPOS] = 0
		m.emit("[STREAM] stopped")
		m.pc++

	case "SEEK":
		pos, err := m.resolve(args[0], op)
		if err != nil {
			return err
		}
		m.Registers[RegPOS] = pos
		m.emit(fmt.Sprintf("[STREAM] seeked to %ds", pos))
		m.pc++

	case "FORWARD":
		delta, err := m.resolve(args[0], op)
		if err != nil {
			return err
		}
		m.Registers[RegPOS] += delta
		m.emit(fmt.Sprintf("[STREAM] forwarded %ds to %ds", delta, m.Registers[RegPOS]))
		m.pc++

	case "REWIND":
		delta, err := m.resolve(args[0], op)
		if err != nil {
			return err
		}
		m.Registers[RegPOS] = maxInt64(0, m.Registers[RegPOS]-delta)
		m.emit(fmt.Sprintf("[STREAM] rewound %ds to %ds", delta, m.Registers[RegPOS]))
		m.pc++

	case "WAIT":
		t, err := m.resolve(args[0], op)
		if err != nil {
			return err
		}
		if m.Sensors[SensorIsPlaying] != 0 {
			m.Registers[RegPOS] += t * m.Registers[RegSPEED]
			if m.Registers[RegPOS] >= m.Sensors[SensorDuration] {
				m.Registers[RegPOS] = m.Sensors[SensorDuration]
				m.Sensors[SensorEnded] = 1
				m.Sensors[SensorIsPlaying] = 0
			}
		}
		m.emit(fmt.Sprintf("[STREAM] waited %ds (now at %ds)", t, m.Registers[RegPOS]))
		m.pc++

	case "GET_POS":
		m.push(m.Registers[RegPOS])
		m.pc++

	case "GET_DUR":
		m.push(m.Sensors[SensorDuration])
		m.pc++

	case "GET_ENDED":
		m.push(m.Sensors[SensorEnded])
		m.pc++

	case "GET_PLAYING":
		m.push(m.Sensors[SensorIsPlaying])
		m.pc++

	case "PRINT":
		v, ok := m.pop()
		if !ok {
			return m.emptyStackErr(op)
		}
		m.emit(fmt.Sprintf("%d", v))
		m.pc++

	case "PRINTS":
		m.emit(args[0])
		m.pc++

	case "HALT":
		m.emit("[VM] halted")
		m.halted = true

	default:
		return &RuntimeError{Kind: ErrUnknownOpcode, PC: m.pc, Op: op}
	}

	return nil
}

func (m *Machine) emptyStackErr(op string) *RuntimeError {
	return &RuntimeError{Kind: ErrEmptyStack, PC: m.pc, Op: op}
}

func (m *Machine) resolveLabel(name string, op string) (int, *RuntimeError) {
	idx, ok := m.program.Labels.Resolve(name)
	if !ok {
		return 0, &RuntimeError{Kind: ErrUnknownLabel, PC: m.pc, Op: op, Msg: "label " + name + " is not defined"}
	}
	return idx, nil
}

func (m *Machine) memAddr(arg string, op string) (int64, *RuntimeError) {
	n, err := m.resolve(arg, op)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= MemorySize {
		return 0, &RuntimeError{Kind: ErrMalformedOperand, PC: m.pc, Op: op, Msg: "memory address out of range"}
	}
	return n, nil
}

func (m *Machine) pop2() (b, a int64, ok bool) {
	b, ok = m.pop()
	if !ok {
		return 0, 0, false
	}
	a, ok = m.pop()
	return b, a, ok
}

func (m *Machine) emit(line string) {
	fmt.Fprintln(m.Output, line)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
