// Package gvm implements the Execution Driver (spec §4.3): the
// single-step loop that fetches one instruction at a time, reads its
// operands off the register stack, dispatches to the Operations
// Library (internal/gops) for the actual semantics, and applies the
// resulting StepEffect to the Data Store's instruction cursor. The
// driver itself holds no VM state beyond a reference to the store, the
// host context and a StartSideEffect nesting counter — every other
// mutation lives in the store, so a
// VM value is cheap to create per run (spec §6's "no shared mutable
// state across instances" property, exercised end to end by
// cmd/garnish-bench).
package gvm

import (
	"garnish/internal/gcode"
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// State reports whether a run has more instructions to execute.
type State int

const (
	Running State = iota
	Ended
)

func (st State) String() string {
	if st == Ended {
		return "Ended"
	}
	return "Running"
}

// VM pairs a Data Store with a host Context. Both are supplied by the
// caller; VM never constructs either, matching spec §6.2's description
// of the core as an embedded library, not a standalone runtime.
type VM struct {
	Store *gheap.Store
	Ctx   gcontext.Context

	sideEffectDepth int
}

// New returns a VM ready to run the program already loaded into store
// (via store.PushInstruction/PushToJumpTable). ctx may be nil, in which
// case every Resolve/Apply/DeferOp hook behaves as unhandled.
func New(store *gheap.Store, ctx gcontext.Context) *VM {
	return &VM{Store: store, Ctx: ctx}
}

// Start pushes the synthetic Unit input every run begins with (spec
// §4.3: the outermost expression has an implicit call convention
// identical to a nested one, so its own EndExpression has a value-stack
// entry to pop) and positions the cursor at the program's first
// instruction. Call once before the first Step.
func (vm *VM) Start() {
	vm.Store.PushValueStack(vm.Store.AddUnit())
	vm.Store.SetInstructionCursor(0)
}

// State reports Running while the cursor still addresses an
// instruction, Ended once it has run off the end of the program (spec
// §4.3's halting condition).
func (vm *VM) State() State {
	if vm.Store.GetInstructionCursor() >= vm.Store.GetInstructionLen() {
		return Ended
	}
	return Running
}

// Run steps the VM until it ends, returning an error from the first
// failing step (spec §7: "the driver surfaces every Operations Library
// or Context error unchanged; it never swallows or wraps one into a
// different kind").
func (vm *VM) Run() error {
	for vm.State() == Running {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Result reports the value left on top of the register stack once a
// run has ended — the convention every scenario in spec §8 exercises:
// a program's overall result is whatever its final instruction left on
// the registers, not a value-stack entry (the value stack only ever
// holds call inputs, all popped by the time the top-level
// EndExpression runs).
func (vm *VM) Result() (gvalue.Index, bool) {
	return vm.Store.PeekTopValueRegister()
}

func (vm *VM) popUnary() (gvalue.Index, error) {
	return vm.Store.PopRegister()
}

func (vm *VM) popBinary() (left, right gvalue.Index, err error) {
	right, err = vm.Store.PopRegister()
	if err != nil {
		return 0, 0, err
	}
	left, err = vm.Store.PopRegister()
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

func (vm *VM) apply(effect gcode.StepEffect, err error, cursor int) error {
	if err != nil {
		return err
	}
	if effect.HasResult {
		vm.Store.PushRegister(effect.Result)
	}
	if effect.HasNextCursor {
		vm.Store.SetInstructionCursor(effect.NextCursor)
	} else {
		vm.Store.SetInstructionCursor(cursor + 1)
	}
	return nil
}
