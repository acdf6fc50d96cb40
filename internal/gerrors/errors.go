// Package gerrors defines the error taxonomy shared by the Data Store,
// Operations Library and Execution Driver (spec §7).
//
// Grounded on the teacher's internal/errors package: a Kind-tagged error
// struct with an Error() string built from a strings.Builder. Wrapping is
// built on github.com/pkg/errors (the teacher's own go.mod, and used
// directly by pack sibling db47h-ngaro's vm/core.go) instead of bare
// fmt.Errorf so a GarnishError can carry an underlying cause without
// losing it to string formatting.
package gerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the error taxonomy from spec §7. It is distinct from
// gvalue.Kind (value kinds); the name collision is avoided by not
// importing gvalue here at all — GarnishError carries kind names as
// strings so this package has zero dependency on the value model.
type Kind uint8

const (
	// DataAccess: reading a value as the wrong kind, out-of-bounds
	// indexing, unresolved Symbol, popping a register past a frame marker.
	DataAccess Kind = iota
	// Instruction: opcode with a missing immediate, unknown opcode.
	Instruction
	// StateInvariant: defensively-detected impossible states (jump-path
	// pop with no frame, list-builder method without a matching start).
	StateInvariant
	// Overflow: numeric overflow, division by zero, invalid range
	// narrowing, a cast the target kind cannot represent.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case DataAccess:
		return "DataAccess"
	case Instruction:
		return "Instruction"
	case StateInvariant:
		return "StateInvariant"
	case Overflow:
		return "Overflow"
	default:
		return "Unknown"
	}
}

// GarnishError is the single error value type surfaced by the core
// (spec §7: "a single error value carrying a kind tag and a
// human-readable message; no stack unwinding beyond returning from the
// step").
type GarnishError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *GarnishError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GarnishError) Unwrap() error { return e.cause }

// New builds a GarnishError with no wrapped cause.
func New(kind Kind, message string) *GarnishError {
	return &GarnishError{Kind: kind, Message: message}
}

// Newf builds a GarnishError with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *GarnishError {
	return &GarnishError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind/message context to an existing error via
// github.com/pkg/errors, preserving the original cause for %+v stack
// traces and errors.Is/As chains.
func Wrap(cause error, kind Kind, message string) *GarnishError {
	return &GarnishError{Kind: kind, Message: message, cause: errors.WithStack(cause)}
}

// KindMismatch is the standard DataAccess error for reading a value of
// the wrong kind (spec §4.1 contract highlights).
func KindMismatch(op string, want, got fmt.Stringer) *GarnishError {
	return Newf(DataAccess, "%s: expected %s, got %s", op, want, got)
}

// Is reports whether err is a *GarnishError of the given Kind.
func Is(err error, kind Kind) bool {
	var ge *GarnishError
	if errors.As(err, &ge) {
		return ge.Kind == kind
	}
	return false
}
