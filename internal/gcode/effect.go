package gcode

import "garnish/internal/gvalue"

// StepEffect is the uniform return shape for any opcode handler that may
// need to redirect the instruction cursor itself rather than simply
// contribute a register result (spec §4.3 call/return semantics). Most
// opcodes only set Result/HasResult and let the driver advance the
// cursor by one; Apply(Expression), Reapply, JumpTo/JumpIfTrue/
// JumpIfFalse and EndExpression also set NextCursor.
type StepEffect struct {
	Result    gvalue.Index
	HasResult bool

	NextCursor    int
	HasNextCursor bool
}
