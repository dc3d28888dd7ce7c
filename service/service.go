// Package service provides a thread-safe wrapper around a vm.Machine,
// shared by the TUI, the GUI, and the HTTP API (grounded on the teacher's
// service.DebuggerService, which plays the same role for its debugger/
// GUI/CLI trio).
package service

import (
	"sync"

	"github.com/streamvm/streamvm/config"
	"github.com/streamvm/streamvm/vm"
)

// Service owns one Machine and serializes access to it. Lock ordering
// note (grounded on the teacher's documented lock-ordering comment): the
// Service's own mutex is always acquired before touching the Machine;
// nothing in vm.Machine takes its own lock, so there is no second order to
// worry about.
type Service struct {
	mu      sync.RWMutex
	machine *vm.Machine
	output  *outputCollector
	cfg     *config.Config
	lastErr error
}

// New creates a Service around a fresh Machine, configured from cfg (nil
// means config.DefaultConfig()).
func New(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := vm.NewMachine()
	out := newOutputCollector()
	m.Output = out

	return &Service{
		machine: m,
		output:  out,
		cfg:     cfg,
	}
}

// OnOutputLine registers a callback invoked synchronously for every line
// the VM emits, in execution order. Used by the api package to broadcast
// output over Server-Sent Events as it happens.
func (s *Service) OnOutputLine(fn func(line string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output.onLine = fn
}

// LoadProgram assembles and loads source into the underlying machine.
func (s *Service) LoadProgram(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.output.Reset()
	err := s.machine.LoadProgram(source)
	s.lastErr = err
	serviceLog.Printf("LoadProgram: err=%v", err)
	return err
}

// Step executes a single instruction.
func (s *Service) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.machine.Step()
	s.lastErr = err
	return err
}

// Run drives the machine to completion or failure, using the service's
// configured max_steps unless maxSteps is explicitly positive.
func (s *Service) Run(maxSteps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxSteps <= 0 {
		maxSteps = s.cfg.Execution.MaxSteps
	}
	err := s.machine.Run(maxSteps)
	s.lastErr = err
	return err
}

// Reset discards all machine state and returns to a freshly constructed
// machine (registers, sensors, memory, video state, and program all
// cleared).
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine.Reset()
	s.output.Reset()
	s.lastErr = nil
}

// State returns a snapshot of the current machine state.
func (s *Service) State() vm.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.machine.State()
}

// Output returns every line emitted by the machine since the last
// LoadProgram or Reset, in order.
func (s *Service) Output() []string {
	return s.output.Lines()
}

// LastError returns the error from the most recent Step/Run/LoadProgram
// call, or nil.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Config returns the service's configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}
