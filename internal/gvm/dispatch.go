package gvm

import (
	"garnish/internal/gcode"
	"garnish/internal/gerrors"
	"garnish/internal/gops"
	"garnish/internal/gvalue"
)

// Step executes exactly one instruction: fetch at the cursor, read its
// operands off the register stack, dispatch to gops, and advance the
// cursor (by one, or to wherever the opcode redirected it). It is a
// no-op returning nil if the VM has already Ended.
func (vm *VM) Step() error {
	if vm.State() == Ended {
		return nil
	}
	cursor := vm.Store.GetInstructionCursor()
	instr, err := vm.Store.GetInstruction(cursor)
	if err != nil {
		return err
	}

	switch instr.Op {
	case gcode.Put:
		vm.Store.PushRegister(gvalue.Index(instr.Immediate))
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.PutValue:
		v, err := vm.Store.GetCurrentValue()
		if err != nil {
			return err
		}
		vm.Store.PushRegister(v)
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.PushValue:
		idx, err := vm.popUnary()
		if err != nil {
			return err
		}
		vm.Store.PushValueStack(idx)
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.UpdateValue:
		idx, err := vm.popUnary()
		if err != nil {
			return err
		}
		if err := vm.Store.SetCurrentValue(idx); err != nil {
			return err
		}
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.Resolve:
		symIdx := gvalue.Index(instr.Immediate)
		sv, err := vm.Store.Get(symIdx)
		if err != nil {
			return err
		}
		if sv.Kind != gvalue.Symbol {
			vm.Store.PushRegister(vm.Store.AddUnit())
			vm.Store.SetInstructionCursor(cursor + 1)
			return nil
		}
		handled := false
		if vm.Ctx != nil {
			handled, err = vm.Ctx.Resolve(vm.Store, sv.Symbol)
			if err != nil {
				return err
			}
		}
		if !handled {
			vm.Store.PushRegister(vm.Store.AddUnit())
		}
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.Add:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Add(vm.Store, vm.Ctx, l, r) })
	case gcode.Subtract:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Subtract(vm.Store, vm.Ctx, l, r) })
	case gcode.Multiply:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Multiply(vm.Store, vm.Ctx, l, r) })
	case gcode.Divide:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Divide(vm.Store, vm.Ctx, l, r) })
	case gcode.IntegerDivide:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.IntegerDivide(vm.Store, vm.Ctx, l, r) })
	case gcode.Power:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Power(vm.Store, vm.Ctx, l, r) })
	case gcode.Remainder:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Remainder(vm.Store, vm.Ctx, l, r) })
	case gcode.Opposite:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.Opposite(vm.Store, vm.Ctx, operand) })
	case gcode.AbsoluteValue:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.AbsoluteValue(vm.Store, vm.Ctx, operand) })

	case gcode.BitwiseNot:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.BitwiseNot(vm.Store, operand) })
	case gcode.BitwiseAnd:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.BitwiseAnd(vm.Store, vm.Ctx, l, r) })
	case gcode.BitwiseOr:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.BitwiseOr(vm.Store, vm.Ctx, l, r) })
	case gcode.BitwiseXor:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.BitwiseXor(vm.Store, vm.Ctx, l, r) })
	case gcode.BitwiseShiftLeft:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.BitwiseShiftLeft(vm.Store, vm.Ctx, l, r) })
	case gcode.BitwiseShiftRight:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.BitwiseShiftRight(vm.Store, vm.Ctx, l, r) })

	case gcode.And:
		return vm.shortCircuit(cursor, instr.Immediate, false)
	case gcode.Or:
		return vm.shortCircuit(cursor, instr.Immediate, true)
	case gcode.Xor:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Xor(vm.Store, l, r) })
	case gcode.Not:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.Not(vm.Store, operand) })
	case gcode.Tis:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.Tis(vm.Store, operand) })

	case gcode.TypeOf:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.TypeOf(vm.Store, operand) })
	case gcode.ApplyType:
		return vm.castOp(cursor)
	case gcode.TypeEqual:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.TypeEqual(vm.Store, l, r) })
	case gcode.Equal:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Equal(vm.Store, vm.Ctx, l, r) })
	case gcode.NotEqual:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.NotEqual(vm.Store, vm.Ctx, l, r) })
	case gcode.LessThan:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.LessThan(vm.Store, vm.Ctx, l, r) })
	case gcode.LessThanOrEqual:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.LessThanOrEqual(vm.Store, vm.Ctx, l, r) })
	case gcode.GreaterThan:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.GreaterThan(vm.Store, vm.Ctx, l, r) })
	case gcode.GreaterThanOrEqual:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.GreaterThanOrEqual(vm.Store, vm.Ctx, l, r) })

	case gcode.MakePair:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.MakePair(vm.Store, l, r) })
	case gcode.MakeRange:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.MakeRange(vm.Store, l, r) })
	case gcode.MakeStartExclusiveRange:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.MakeStartExclusiveRange(vm.Store, l, r) })
	case gcode.MakeEndExclusiveRange:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.MakeEndExclusiveRange(vm.Store, l, r) })
	case gcode.MakeExclusiveRange:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.MakeExclusiveRange(vm.Store, l, r) })
	case gcode.MakeList:
		idx, err := gops.MakeList(vm.Store, instr.Immediate)
		if err != nil {
			return err
		}
		vm.Store.PushRegister(idx)
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.Access:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Access(vm.Store, vm.Ctx, l, r) })
	case gcode.AccessLeftInternal:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.AccessLeftInternal(vm.Store, operand) })
	case gcode.AccessRightInternal:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.AccessRightInternal(vm.Store, operand) })
	case gcode.AccessLengthInternal:
		return vm.unary(cursor, func(s, operand gvalue.Index) (gvalue.Index, error) { return gops.AccessLengthInternal(vm.Store, operand) })

	case gcode.Concat:
		return vm.binary(cursor, func(s, l, r gvalue.Index) (gvalue.Index, error) { return gops.Concat(vm.Store, l, r) })

	case gcode.Apply:
		left, right, err := vm.popBinary()
		if err != nil {
			return err
		}
		effect, err := gops.Apply(vm.Store, vm.Ctx, left, right)
		return vm.apply(effect, err, cursor)

	case gcode.EmptyApply:
		left, err := vm.popUnary()
		if err != nil {
			return err
		}
		effect, err := gops.EmptyApply(vm.Store, vm.Ctx, left)
		return vm.apply(effect, err, cursor)

	case gcode.Reapply:
		gate, newInput, err := vm.popBinary()
		if err != nil {
			return err
		}
		effect, err := gops.Reapply(vm.Store, gate, newInput, instr.Immediate)
		return vm.apply(effect, err, cursor)

	case gcode.JumpTo:
		effect, err := gops.JumpTo(instr.Immediate)
		return vm.apply(effect, err, cursor)

	case gcode.JumpIfTrue:
		cond, err := vm.popUnary()
		if err != nil {
			return err
		}
		effect, err := gops.JumpIfTrue(vm.Store, cond, instr.Immediate)
		return vm.apply(effect, err, cursor)

	case gcode.JumpIfFalse:
		cond, err := vm.popUnary()
		if err != nil {
			return err
		}
		effect, err := gops.JumpIfFalse(vm.Store, cond, instr.Immediate)
		return vm.apply(effect, err, cursor)

	case gcode.StartSideEffect:
		vm.sideEffectDepth++
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.EndSideEffect:
		if vm.sideEffectDepth == 0 {
			return gerrors.New(gerrors.StateInvariant, "EndSideEffect without a matching StartSideEffect")
		}
		vm.sideEffectDepth--
		vm.Store.SetInstructionCursor(cursor + 1)
		return nil

	case gcode.EndExpression:
		effect, err := gops.EndExpression(vm.Store)
		return vm.apply(effect, err, cursor)

	default:
		return gerrors.Newf(gerrors.Instruction, "unknown opcode %v at instruction %d", instr.Op, cursor)
	}
}

// unary/binary run a value-producing opcode (one that never redirects
// the cursor itself) and push its result.
func (vm *VM) unary(cursor int, f func(s, operand gvalue.Index) (gvalue.Index, error)) error {
	operand, err := vm.popUnary()
	if err != nil {
		return err
	}
	result, err := f(0, operand)
	if err != nil {
		return err
	}
	vm.Store.PushRegister(result)
	vm.Store.SetInstructionCursor(cursor + 1)
	return nil
}

func (vm *VM) binary(cursor int, f func(s, left, right gvalue.Index) (gvalue.Index, error)) error {
	left, right, err := vm.popBinary()
	if err != nil {
		return err
	}
	result, err := f(0, left, right)
	if err != nil {
		return err
	}
	vm.Store.PushRegister(result)
	vm.Store.SetInstructionCursor(cursor + 1)
	return nil
}

// castOp handles ApplyType, whose right operand must be a Type value;
// a non-Type right operand is a soft failure to Unit like any other
// operand-kind mismatch (spec §7).
func (vm *VM) castOp(cursor int) error {
	left, right, err := vm.popBinary()
	if err != nil {
		return err
	}
	rv, err := vm.Store.Get(right)
	if err != nil {
		return err
	}
	var result gvalue.Index
	if rv.Kind != gvalue.Type {
		result = vm.Store.AddUnit()
	} else {
		result, err = gops.Cast(vm.Store, vm.Ctx, left, rv.Type)
		if err != nil {
			return err
		}
	}
	vm.Store.PushRegister(result)
	vm.Store.SetInstructionCursor(cursor + 1)
	return nil
}

// shortCircuit implements And i / Or i (spec §4.2): pop the already-
// evaluated left operand; if its truthiness already decides the
// overall result (false for And, true for Or), push it back as the
// result and jump to target, skipping the instructions that would
// otherwise evaluate the right operand. Otherwise fall through into
// those instructions unmodified; whatever they leave on the registers
// when control reaches target becomes the expression's value.
func (vm *VM) shortCircuit(cursor, target int, shortCircuitOnTrue bool) error {
	left, err := vm.popUnary()
	if err != nil {
		return err
	}
	truthy, err := gops.IsTruthy(vm.Store, left)
	if err != nil {
		return err
	}
	if truthy == shortCircuitOnTrue {
		vm.Store.PushRegister(left)
		vm.Store.SetInstructionCursor(target)
		return nil
	}
	vm.Store.SetInstructionCursor(cursor + 1)
	return nil
}
