package vm

import (
	"strconv"
	"strings"
)

// resolve implements the "literal-or-register" operand coercion rule
// (spec.md §4.4): uppercase the argument; if it names a known register,
// the value is the register's current contents; otherwise parse it as a
// signed decimal integer. PUSH, SEEK, FORWARD, REWIND, and WAIT all share
// this rule.
func (m *Machine) resolve(arg string, op string) (int64, *RuntimeError) {
	upper := strings.ToUpper(arg)
	if isRegisterName(upper) {
		return m.Registers[upper], nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, &RuntimeError{Kind: ErrMalformedOperand, PC: m.pc, Op: op, Msg: "operand " + arg + " is neither a register nor a decimal integer"}
	}
	return n, nil
}

// resolveRegister validates that arg names one of the four writable
// registers, as POP always requires.
func (m *Machine) resolveRegister(arg string, op string) (string, *RuntimeError) {
	upper := strings.ToUpper(arg)
	if !isRegisterName(upper) {
		return "", &RuntimeError{Kind: ErrMalformedOperand, PC: m.pc, Op: op, Msg: "operand " + arg + " does not name a register"}
	}
	return upper, nil
}
