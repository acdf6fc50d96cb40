// Package gcontext defines the Context interface (spec §4.4, §6.2): the
// host-supplied callback surface for symbol resolution, external calls
// and deferred operations. The core never implements this interface —
// only calls it — so this package has no dependency on gheap/gops/gvm
// beyond the gvalue index/kind types needed to describe operands.
package gcontext

import "garnish/internal/gvalue"

// Context is implemented by the embedding host. All three hooks receive
// a mutable *gheap.Store (typed as an interface here, Store, to avoid an
// import cycle — gheap cannot import gcontext since gops/gvm, which
// import both, are the ones wiring host calls through).
type Context interface {
	// Resolve is invoked by the Resolve opcode. It may push a value for
	// symbol onto store's registers and return true, or return false to
	// let the core push Unit.
	Resolve(store Store, symbolHash uint64) (handled bool, err error)

	// Apply is invoked by Apply/EmptyApply when the left operand is an
	// External. It may push a result onto store's registers and return
	// true, or return false to let the core push Unit.
	Apply(store Store, external uint64, input gvalue.Index) (handled bool, err error)

	// DeferOp is the last-chance dispatch for any op that received
	// operand kinds the Operations Library doesn't otherwise handle.
	DeferOp(store Store, operation string, leftKind gvalue.Kind, left gvalue.Index, rightKind gvalue.Kind, right gvalue.Index) (handled bool, err error)
}

// Store is the minimal surface of gheap.Store that a Context
// implementation needs: enough to allocate values and push a result
// register. Defined here (rather than imported from gheap) so gheap
// stays a leaf package with no knowledge of the context protocol.
type Store interface {
	AddUnit() gvalue.Index
	AddTrue() gvalue.Index
	AddFalse() gvalue.Index
	AddNumber(gvalue.Number) (gvalue.Index, error)
	AddChar(rune) (gvalue.Index, error)
	AddByte(byte) (gvalue.Index, error)
	AddSymbol(hash uint64, name string) (gvalue.Index, error)
	AddCharListFromString(string) (gvalue.Index, error)
	PushRegister(gvalue.Index)
	Get(gvalue.Index) (gvalue.Value, error)
}

// NoopContext implements Context by never handling anything: every
// Resolve/Apply/DeferOp returns (false, nil), so the core always falls
// back to Unit. Useful for embedding tests and for running programs that
// are self-contained (no external symbols, no External values).
type NoopContext struct{}

func (NoopContext) Resolve(Store, uint64) (bool, error) { return false, nil }
func (NoopContext) Apply(Store, uint64, gvalue.Index) (bool, error) { return false, nil }
func (NoopContext) DeferOp(Store, string, gvalue.Kind, gvalue.Index, gvalue.Kind, gvalue.Index) (bool, error) {
	return false, nil
}
