// Package validation defines the diagnostics produced while compiling a RAD
// cluster configuration and how they map to process exit codes.
package validation

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Kind classifies a fatal configuration error.
type Kind int

// The kinds of fatal configuration errors.
const (
	UnknownParameter Kind = iota
	InvalidValue
	Cardinality
	InstanceReference
	Topology
	Arithmetic
	Design
)

var kindNames = map[Kind]string{
	UnknownParameter:  "unknown parameter",
	InvalidValue:      "invalid value",
	Cardinality:       "instance count mismatch",
	InstanceReference: "unknown instance reference",
	Topology:          "topology error",
	Arithmetic:        "arithmetic constraint",
	Design:            "design error",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Position locates a diagnostic inside a configuration document.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return ""
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Error is a fatal configuration error. Param names the offending parameter
// or value when there is one.
type Error struct {
	Kind  Kind
	Param string
	Pos   Position
	Msg   string
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Param != "" {
		msg = e.Param + ": " + msg
	}
	if loc := e.Pos.String(); loc != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Errorf creates an Error of the given kind.
func Errorf(kind Kind, param string, format string, args ...any) *Error {
	return &Error{Kind: kind, Param: param, Msg: fmt.Sprintf(format, args...)}
}

// At returns a copy of e located at pos.
func (e *Error) At(pos Position) *Error {
	c := *e
	c.Pos = pos
	return &c
}

// IsKind reports whether any error in err's tree is an Error of kind k.
func IsKind(err error, k Kind) bool {
	for _, e := range multierr.Errors(err) {
		var ve *Error
		if errors.As(e, &ve) && ve.Kind == k {
			return true
		}
	}
	return false
}

// ExitCode maps an error returned by the compiler to a process exit status.
// A block-count mismatch exits with -1, every other failure with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsKind(err, Cardinality) {
		return -1
	}
	return 1
}

// Locate attaches pos to err when err is an unlocated Error. Aggregated
// errors are located one by one.
func Locate(err error, pos Position) error {
	if err == nil {
		return nil
	}

	var out error
	for _, e := range multierr.Errors(err) {
		var ve *Error
		if errors.As(e, &ve) && ve.Pos == (Position{}) {
			e = ve.At(pos)
		}
		out = multierr.Append(out, e)
	}
	return out
}
