// Package assembler performs the two-pass assembly described in spec.md
// §4.2: pass one resolves labels to instruction indices, pass two produces
// the linear instruction vector. Grounded on the teacher's
// parser.Parser.Parse (two-pass) and parser.SymbolTable, generalized from
// address resolution to instruction-index resolution.
package assembler

import "github.com/streamvm/streamvm/lexer"

// Instruction is an opcode and its ordered argument tokens, produced by the
// assembler and never mutated afterward.
type Instruction struct {
	Op   string
	Args []string
	Pos  lexer.Position
}

// Program is the immutable, 0-indexed instruction sequence produced by
// assembling a source text.
type Program struct {
	Instructions []Instruction
	Labels       LabelTable
}

func (p *Program) Len() int {
	return len(p.Instructions)
}
