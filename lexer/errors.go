package lexer

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a load-time lexing/assembly error.
type ErrorKind int

const (
	ErrorEmptyLabel ErrorKind = iota
	ErrorDuplicateLabel
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorEmptyLabel:
		return "empty label"
	case ErrorDuplicateLabel:
		return "duplicate label"
	default:
		return "error"
	}
}

// Error is a load-time error with source position, grounded on the
// teacher's parser.Error.
type Error struct {
	Pos     Position
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

// ErrorList accumulates load-time errors so a load reports every problem it
// finds instead of aborting at the first one.
type ErrorList struct {
	Errors []*Error
}

func (l *ErrorList) Add(pos Position, kind ErrorKind, message string) {
	l.Errors = append(l.Errors, &Error{Pos: pos, Kind: kind, Message: message})
}

func (l *ErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

func (l *ErrorList) Error() string {
	var sb strings.Builder
	for i, e := range l.Errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}
