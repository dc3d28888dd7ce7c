// Package tools provides static analysis over StreamVM source, adapted
// from the teacher's tools.Linter/tools.CrossReferencer (tools/lint.go,
// tools/xref.go): advisories a load-time assembler pass has no room to
// report, such as unreferenced labels and branch targets that don't
// resolve to any label in the program.
package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/streamvm/streamvm/assembler"
)

// branchOps names every opcode whose last argument is a label.
var branchOps = map[string]bool{
	"GOTO":  true,
	"JUMPZ": true,
	"JUMPI": true,
	"DECJZ": true,
}

// LintLevel is the severity of a lint finding.
type LintLevel int

const (
	LintError LintLevel = iota
	LintWarning
)

func (l LintLevel) String() string {
	if l == LintError {
		return "error"
	}
	return "warning"
}

// LintIssue is a single advisory produced by Lint.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// Lint assembles source and reports advisories about its label usage.
// Assembly errors themselves (empty/duplicate labels) surface as
// LintError issues with Code "ASSEMBLE_ERROR" rather than being
// swallowed; when assembly fails, no label advisories are produced.
// Undefined label references are also reported at LintError level.
func Lint(source string) []*LintIssue {
	var issues []*LintIssue

	prog, err := assembler.Assemble(source)
	if err != nil {
		issues = append(issues, &LintIssue{Level: LintError, Line: 0, Message: err.Error(), Code: "ASSEMBLE_ERROR"})
		if prog == nil {
			return issues
		}
	}

	referenced := make(map[string]bool)
	for _, inst := range prog.Instructions {
		op := strings.ToUpper(inst.Op)
		if !branchOps[op] || len(inst.Args) == 0 {
			continue
		}
		label := inst.Args[len(inst.Args)-1]
		referenced[label] = true
		if _, ok := prog.Labels.Resolve(label); !ok {
			issues = append(issues, &LintIssue{
				Level:   LintError,
				Line:    inst.Pos.Line,
				Message: fmt.Sprintf("undefined label %q", label),
				Code:    "UNDEF_LABEL",
			})
		}
	}

	for name := range prog.Labels {
		if !referenced[name] {
			issues = append(issues, &LintIssue{
				Level:   LintWarning,
				Line:    0,
				Message: fmt.Sprintf("label %q is never referenced", name),
				Code:    "UNUSED_LABEL",
			})
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Line == issues[j].Line {
			return issues[i].Code < issues[j].Code
		}
		return issues[i].Line < issues[j].Line
	})
	return issues
}
