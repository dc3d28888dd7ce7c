package vm

// Snapshot is the host-facing view of machine state (spec.md §6's
// state() collaborator contract): registers, sensors, a stack copy, pc,
// halted, steps, and the video title or nothing.
type Snapshot struct {
	Registers map[string]int64
	Sensors   map[string]int64
	Stack     []int64
	PC        int
	Halted    bool
	Steps     int
	Video     *string
}

// State returns a point-in-time copy of the machine's state. Mutating the
// returned Snapshot never affects the Machine.
func (m *Machine) State() Snapshot {
	regs := make(map[string]int64, len(m.Registers))
	for k, v := range m.Registers {
		regs[k] = v
	}
	sensors := make(map[string]int64, len(m.Sensors))
	for k, v := range m.Sensors {
		sensors[k] = v
	}
	stack := make([]int64, len(m.Stack))
	copy(stack, m.Stack)

	var video *string
	if m.videoLoaded {
		t := m.videoTitle
		video = &t
	}

	return Snapshot{
		Registers: regs,
		Sensors:   sensors,
		Stack:     stack,
		PC:        m.pc,
		Halted:    m.halted,
		Steps:     m.steps,
		Video:     video,
	}
}
