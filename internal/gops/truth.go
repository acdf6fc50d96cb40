// Package gops implements the Operations Library (spec §4.1 "Operations
// Library"): pure functions over a gheap.Store that the Execution Driver
// dispatches opcodes to. Every function here is total over its documented
// operand kinds; operand-kind mismatches resolve to Unit (a soft failure,
// spec §7 "a deliberate design choice so scripts compose") rather than an
// error, except where spec marks the condition a hard Overflow/Domain or
// StateInvariant failure.
package gops

import (
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// IsTruthy reports whether idx is neither Unit nor False (spec §4.3
// Reapply gating, §4.2 Tis).
func IsTruthy(s *gheap.Store, idx gvalue.Index) (bool, error) {
	v, err := s.Get(idx)
	if err != nil {
		return false, err
	}
	switch v.Kind {
	case gvalue.Unit, gvalue.False:
		return false, nil
	default:
		return true, nil
	}
}

func boolIndex(s *gheap.Store, b bool) gvalue.Index {
	if b {
		return s.AddTrue()
	}
	return s.AddFalse()
}
