package vm

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func newTestMachine() (*Machine, *bytes.Buffer) {
	m := NewMachine()
	var buf bytes.Buffer
	m.Output = &buf
	return m, &buf
}

func mustLoad(t *testing.T, m *Machine, src string) {
	t.Helper()
	if err := m.LoadProgram(src); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
}

// S1 - simple playback.
func TestScenarioSimplePlayback(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `OPEN "Trailer"
PLAY 1
WAIT 5
PAUSE
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if *s.Video != "Trailer" {
		t.Errorf("video = %v, want Trailer", s.Video)
	}
	if s.Registers[RegPOS] != 5 {
		t.Errorf("POS = %d, want 5", s.Registers[RegPOS])
	}
	if s.Registers[RegSPEED] != 1 {
		t.Errorf("SPEED = %d, want 1", s.Registers[RegSPEED])
	}
	if s.Sensors[SensorIsPlaying] != 0 || s.Sensors[SensorEnded] != 0 {
		t.Errorf("sensors = %+v", s.Sensors)
	}
	if s.Sensors[SensorDuration] != 180 {
		t.Errorf("DURATION = %d, want 180", s.Sensors[SensorDuration])
	}
	if s.Steps != 5 {
		t.Errorf("steps = %d, want 5", s.Steps)
	}
}

// S2 - playback to end, clamped.
func TestScenarioPlaybackToEnd(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `OPEN "X"
PLAY 2
WAIT 100
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if s.Registers[RegPOS] != 180 {
		t.Errorf("POS = %d, want 180", s.Registers[RegPOS])
	}
	if s.Sensors[SensorEnded] != 1 || s.Sensors[SensorIsPlaying] != 0 {
		t.Errorf("sensors = %+v", s.Sensors)
	}
	if s.Steps != 4 {
		t.Errorf("steps = %d, want 4", s.Steps)
	}
}

// S3 - conditional loop.
func TestScenarioConditionalLoop(t *testing.T) {
	m, buf := newTestMachine()
	mustLoad(t, m, `OPEN "Demo Video"
PLAY 1

loop:
WAIT 1
GET_POS
PUSH 30
LT
JUMPI loop

PAUSE
PRINTS "Reached 30 seconds!"
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if s.Registers[RegPOS] != 30 {
		t.Errorf("POS = %d, want 30", s.Registers[RegPOS])
	}
	if s.Sensors[SensorEnded] != 0 || s.Sensors[SensorIsPlaying] != 0 {
		t.Errorf("sensors = %+v", s.Sensors)
	}
	out := buf.String()
	if strings.Count(out, "Reached 30 seconds!") != 1 {
		t.Errorf("expected exactly one print of the message, got: %s", out)
	}
}

// S4 - DECJZ countdown.
func TestScenarioDecjzCountdown(t *testing.T) {
	m, buf := newTestMachine()
	mustLoad(t, m, `PUSH 5
POP R0

countdown:
PUSH R0
PRINT
DECJZ R0 done
GOTO countdown

done:
PRINTS "Countdown finished!"
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var ints []string
	for _, l := range lines {
		if l == "5" || l == "4" || l == "3" || l == "2" || l == "1" || l == "0" {
			ints = append(ints, l)
		}
	}
	want := []string{"5", "4", "3", "2", "1", "0"}
	if len(ints) != len(want) {
		t.Fatalf("got %v integer lines, want %v", ints, want)
	}
	for i := range want {
		if ints[i] != want[i] {
			t.Fatalf("got %v, want %v", ints, want)
		}
	}
}

// S5 - rewind clamp.
func TestScenarioRewindClamp(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `OPEN "x"
SEEK 10
REWIND 50
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if s.Registers[RegPOS] != 0 {
		t.Errorf("POS = %d, want 0", s.Registers[RegPOS])
	}
	if s.Steps != 4 {
		t.Errorf("steps = %d, want 4", s.Steps)
	}
}

// S6 - division by zero.
func TestScenarioDivisionByZero(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `PUSH 1
PUSH 0
DIV
HALT`)
	err := m.Run(DefaultMaxSteps)
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrDivByZero {
		t.Fatalf("got %v, want *RuntimeError{Kind: ErrDivByZero}", err)
	}
	s := m.State()
	if s.Steps != 3 {
		t.Errorf("steps = %d, want 3", s.Steps)
	}
	if s.PC != 2 {
		t.Errorf("pc = %d, want 2", s.PC)
	}
	if len(s.Stack) != 0 {
		t.Errorf("stack = %v, want empty (both operands already popped)", s.Stack)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `PUSH 42
POP R0
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if len(s.Stack) != 0 {
		t.Errorf("stack should be empty, got %v", s.Stack)
	}
	if s.Registers[RegR0] != 42 {
		t.Errorf("R0 = %d, want 42", s.Registers[RegR0])
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `PUSH 7
STORE 10
LOAD 10
POP R1
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if s.Registers[RegR1] != 7 {
		t.Errorf("R1 = %d, want 7", s.Registers[RegR1])
	}
	if m.Memory[10] != 7 {
		t.Errorf("memory[10] = %d, want 7", m.Memory[10])
	}
}

func TestFloorDivision(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
	}
	for _, c := range cases {
		m, _ := newTestMachine()
		mustLoad(t, m, "HALT")
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestComparisonsAreTotalAndExclusive(t *testing.T) {
	pairs := [][2]int64{{3, 5}, {5, 3}, {5, 5}, {-1, 1}, {0, 0}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		count := 0
		for _, op := range []string{"LT", "EQ", "GT"} {
			m, _ := newTestMachine()
			mustLoad(t, m, fmt.Sprintf("PUSH %d\nPUSH %d\n%s\nHALT", a, b, op))
			if err := m.Run(DefaultMaxSteps); err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if m.Stack[len(m.Stack)-1] == 1 {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("exactly one of LT/EQ/GT should hold for (%d,%d)", a, b)
		}
	}
}

// Property 6: "label: DECJZ R end; GOTO label; end:" terminates in exactly
// R0+1 DECJZ dispatches (the final zero check), leaving R=0.
func TestDecjzTerminatesInRPlusOneSteps(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `PUSH 4
POP R0
label:
DECJZ R0 end
GOTO label
end:
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	s := m.State()
	if s.Registers[RegR0] != 0 {
		t.Errorf("R0 = %d, want 0", s.Registers[RegR0])
	}
	// 2 setup steps (PUSH, POP), then DECJZ fires R0+1=5 times and GOTO
	// fires R0=4 times (the final DECJZ branches to end instead of
	// falling through to GOTO), then HALT: 2+5+4+1 = 12.
	if want := 12; s.Steps != want {
		t.Errorf("steps = %d, want %d", s.Steps, want)
	}
}

func TestStepLimitReached(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `label:
GOTO label`)
	err := m.Run(5)
	if err == nil {
		t.Fatal("expected step-limit error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrStepLimitReached {
		t.Fatalf("got %v, want ErrStepLimitReached", err)
	}
	if m.Steps() != 5 {
		t.Errorf("steps = %d, want 5", m.Steps())
	}
}

func TestPlayWithoutVideoFails(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, "PLAY\nHALT")
	err := m.Run(DefaultMaxSteps)
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ErrNoVideoLoaded {
		t.Fatalf("got %v, want ErrNoVideoLoaded", err)
	}
}

func TestLoadProgramPreservesRegistersAcrossReload(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, "PUSH 9\nPOP R0\nHALT")
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	mustLoad(t, m, "HALT")
	if m.Registers[RegR0] != 9 {
		t.Errorf("R0 should survive a reload, got %d", m.Registers[RegR0])
	}
}

func TestResetClearsEverything(t *testing.T) {
	m, _ := newTestMachine()
	mustLoad(t, m, `OPEN "x"
PUSH 9
POP R0
HALT`)
	if err := m.Run(DefaultMaxSteps); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	m.Reset()
	if m.Registers[RegR0] != 0 {
		t.Errorf("R0 should be reset, got %d", m.Registers[RegR0])
	}
	if _, loaded := m.VideoTitle(); loaded {
		t.Error("video should not be loaded after Reset")
	}
}
