package tools

import (
	"sort"
	"strings"

	"github.com/streamvm/streamvm/assembler"
)

// Symbol is one label and every instruction that branches to it.
type Symbol struct {
	Name           string
	DefinitionLine int
	References     []int
}

// CrossReference assembles source and builds a table of every label
// alongside the line numbers of the instructions that branch to it,
// adapted from the teacher's CrossReferencer (tools/xref.go) down to
// the one reference kind StreamVM has: a branch target.
func CrossReference(source string) ([]*Symbol, error) {
	prog, err := assembler.Assemble(source)
	if err != nil {
		return nil, err
	}

	defLine := make(map[string]int, len(prog.Labels))
	// Labels carry no Pos of their own in the assembled Program (only
	// their resolved instruction index), so the definition line is
	// reconstructed by re-scanning raw lines for "name:".
	for i, raw := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(raw)
		if strings.HasSuffix(trimmed, ":") && len(trimmed) > 1 {
			name := strings.TrimSuffix(trimmed, ":")
			if _, ok := prog.Labels.Resolve(name); ok {
				if _, seen := defLine[name]; !seen {
					defLine[name] = i + 1
				}
			}
		}
	}

	symbols := make(map[string]*Symbol, len(prog.Labels))
	for name := range prog.Labels {
		symbols[name] = &Symbol{Name: name, DefinitionLine: defLine[name]}
	}

	for _, inst := range prog.Instructions {
		op := strings.ToUpper(inst.Op)
		if !branchOps[op] || len(inst.Args) == 0 {
			continue
		}
		label := inst.Args[len(inst.Args)-1]
		if sym, ok := symbols[label]; ok {
			sym.References = append(sym.References, inst.Pos.Line)
		}
	}

	out := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
