// Package vm implements the StreamVM machine state and interpreter: the
// fetch-decode-execute loop described in spec.md §4.3-§4.4, driving a
// simulated video-playback device alongside classical stack-machine
// opcodes.
//
// Three deliberate deviations from the "unbounded integer" reference
// behavior in spec.md §3/§9, all chosen for Go-native ints rather than a
// bignum library:
//
//   - Integer width is int64. Arithmetic (ADD/SUB/MUL/NEG) wraps silently
//     on overflow, matching Go's native int64 semantics rather than
//     raising an error; this is a real behavior change from the
//     arbitrary-precision reference and is called out here rather than
//     hidden.
//   - DIV is floor division (truncation toward negative infinity), built
//     from Go's `/` (which truncates toward zero) with an adjustment for
//     mismatched-sign remainders, per spec.md §3 and testable property 4.
//   - On a DIV-by-zero runtime error, the two operands already popped by
//     the time the zero-check fires are NOT restored to the stack: the
//     stack is two shorter than it was before the failing instruction.
//     This is the implementation-defined choice spec.md §8/S6 asks
//     implementers to make and document.
package vm
