package vm

// Register names. All four are writable by POP and by domain instructions.
const (
	RegPOS   = "POS"
	RegSPEED = "SPEED"
	RegR0    = "R0"
	RegR1    = "R1"
)

// Sensor names. Written only by streaming opcodes, never by POP.
const (
	SensorDuration  = "DURATION"
	SensorIsPlaying = "IS_PLAYING"
	SensorEnded     = "ENDED"
)

// MemorySize is the fixed number of addressable memory cells.
const MemorySize = 256

// SimulatedDuration is the fixed clip length OPEN assigns to DURATION,
// regardless of title: opening simulates metadata discovery of a 3-minute
// clip. Named per spec.md §9's "Open question — DURATION on OPEN".
const SimulatedDuration = 180

// DefaultMaxSteps is the step budget Run uses when the caller doesn't
// supply one explicitly.
const DefaultMaxSteps = 10000

var registerNames = map[string]bool{
	RegPOS: true, RegSPEED: true, RegR0: true, RegR1: true,
}

func isRegisterName(upper string) bool {
	return registerNames[upper]
}
