package assembler

import (
	"strings"

	"github.com/streamvm/streamvm/lexer"
)

// Assemble walks source line by line twice: pass one builds the label
// table, pass two builds the instruction vector. Label references inside
// instruction arguments (GOTO/JUMPZ/JUMPI/DECJZ targets) are deliberately
// not resolved here — spec.md §4.2 resolves them lazily at execution time
// so a jump may target a label defined later in the source.
//
// The only load-time errors are an empty label name and a duplicate label
// definition; both are fatal and are reported together via an
// *lexer.ErrorList so a load surfaces every structural problem at once
// instead of stopping at the first one.
func Assemble(source string) (*Program, error) {
	lines := strings.Split(source, "\n")

	labels := make(LabelTable)
	errs := &lexer.ErrorList{}

	// Pass 1: collect labels, tracking the instruction index each would
	// resolve to.
	idx := 0
	for n, raw := range lines {
		pos := lexer.Position{Line: n + 1}
		l, err := lexer.Lex(raw, pos)
		if err != nil {
			errs.Add(err.Pos, err.Kind, err.Message)
			continue
		}
		switch l.Kind {
		case lexer.LineLabel:
			if _, dup := labels[l.Label]; dup {
				errs.Add(pos, lexer.ErrorDuplicateLabel, "label \""+l.Label+"\" already defined")
				continue
			}
			labels[l.Label] = idx
		case lexer.LineInstruction:
			idx++
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	// Pass 2: build the instruction vector. Labels and blanks consume no
	// instruction index and are skipped.
	instructions := make([]Instruction, 0, idx)
	for n, raw := range lines {
		pos := lexer.Position{Line: n + 1}
		l, err := lexer.Lex(raw, pos)
		if err != nil {
			// Already reported in pass 1; pass 2 never sees a fresh error
			// because the source hasn't changed between passes.
			continue
		}
		if l.Kind != lexer.LineInstruction {
			continue
		}
		instructions = append(instructions, Instruction{Op: l.Op, Args: l.Args, Pos: pos})
	}

	return &Program{Instructions: instructions, Labels: labels}, nil
}
