// Package seed builds small, self-contained programs directly against a
// gheap.Store using the raw Instruction/opcode API — the same thing a
// real compiler (out of scope, spec §1) would hand the core. They exist
// so cmd/garnish and cmd/garnish-bench have something runnable without
// depending on a parser/compiler, and they mirror spec §8's seeded
// end-to-end scenarios one for one.
package seed

import (
	"garnish/internal/gcode"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// Program is a ready-to-run store plus the instruction offset the cursor
// must be set to after VM.Start (which always positions it at 0). Entry
// is 0 for most seeds but not for call and reapply, which lay out their
// callee instructions first.
type Program struct {
	Name  string
	Store *gheap.Store
	Entry int
}

// Names lists every seed program, in the order spec §8 introduces them.
var Names = []string{"arithmetic", "call", "list-access", "range-narrow", "slice-concat", "reapply"}

// Build constructs the named seed program, or (Program{}, false) if name
// is unknown.
func Build(name string) (Program, bool) {
	switch name {
	case "arithmetic":
		return arithmetic(), true
	case "call":
		return call(), true
	case "list-access":
		return listAccess(), true
	case "range-narrow":
		return rangeNarrow(), true
	case "slice-concat":
		return sliceConcat(), true
	case "reapply":
		return reapply(), true
	default:
		return Program{}, false
	}
}

func put(s *gheap.Store, idx gvalue.Index) gcode.Instruction {
	return gcode.Instruction{Op: gcode.Put, Immediate: int(idx), HasImm: true}
}

func op(o gcode.OpCode) gcode.Instruction { return gcode.Instruction{Op: o} }

// arithmetic: "Put 10; Put 20; Add; EndExpression" -> Number 30 (spec
// §8 scenario 1).
func arithmetic() Program {
	s := gheap.New()
	ten, _ := s.AddNumber(gvalue.Int(10))
	twenty, _ := s.AddNumber(gvalue.Int(20))
	s.PushInstruction(put(s, ten))
	s.PushInstruction(put(s, twenty))
	s.PushInstruction(op(gcode.Add))
	s.PushInstruction(op(gcode.EndExpression))
	return Program{Name: "arithmetic", Store: s, Entry: 0}
}

// call: an Expression bound to "Put 10; PutValue; Add; EndExpression" is
// applied to 20, returning 30 (spec §8 scenario 2).
func call() Program {
	s := gheap.New()
	ten, _ := s.AddNumber(gvalue.Int(10))
	calleeStart := s.PushInstruction(put(s, ten))
	s.PushInstruction(op(gcode.PutValue))
	s.PushInstruction(op(gcode.Add))
	s.PushInstruction(op(gcode.EndExpression))

	jumpID := s.PushToJumpTable(calleeStart)
	exprIdx, _ := s.AddExpression(jumpID)
	twenty, _ := s.AddNumber(gvalue.Int(20))

	mainStart := s.PushInstruction(put(s, exprIdx))
	s.PushInstruction(put(s, twenty))
	s.PushInstruction(op(gcode.Apply))
	s.PushInstruction(op(gcode.EndExpression))
	return Program{Name: "call", Store: s, Entry: mainStart}
}

// listAccess: build [(val1=10), (val2=20), (val3=30)] then Access by
// symbol :val2, yielding Number 20 (spec §8 scenario 3).
func listAccess() Program {
	s := gheap.New()
	mkEntry := func(name string, n int64) gvalue.Index {
		hash := gheap.HashName(name)
		symIdx, _ := s.AddSymbol(hash, name)
		valIdx, _ := s.AddNumber(gvalue.Int(n))
		pairIdx, _ := s.AddPair(symIdx, valIdx)
		return pairIdx
	}
	e1 := mkEntry("val1", 10)
	e2 := mkEntry("val2", 20)
	e3 := mkEntry("val3", 30)
	lookupSym, _ := s.AddSymbol(gheap.HashName("val2"), "val2")

	start := s.PushInstruction(put(s, e1))
	s.PushInstruction(put(s, e2))
	s.PushInstruction(put(s, e3))
	s.PushInstruction(gcode.Instruction{Op: gcode.MakeList, Immediate: 3, HasImm: true})
	s.PushInstruction(put(s, lookupSym))
	s.PushInstruction(op(gcode.Access))
	s.PushInstruction(op(gcode.EndExpression))
	return Program{Name: "list-access", Store: s, Entry: start}
}

// rangeNarrow: Apply(Range[5,15], Range[1,9]) -> Range[6,14] (spec §8
// scenario 4).
func rangeNarrow() Program {
	s := gheap.New()
	mkRange := func(a, b int64) gvalue.Index {
		ai, _ := s.AddNumber(gvalue.Int(a))
		bi, _ := s.AddNumber(gvalue.Int(b))
		ri, _ := s.AddRange(ai, bi)
		return ri
	}
	outer := mkRange(5, 15)
	inner := mkRange(1, 9)

	start := s.PushInstruction(put(s, outer))
	s.PushInstruction(put(s, inner))
	s.PushInstruction(op(gcode.Apply))
	s.PushInstruction(op(gcode.EndExpression))
	return Program{Name: "range-narrow", Store: s, Entry: start}
}

// sliceConcat: concat list[10..19] with list[20..29], slice [8,12], cast
// to List -> [18,19,20,21,22] (spec §8 scenario 5).
func sliceConcat() Program {
	s := gheap.New()
	mkNumberList := func(from, to int64) gvalue.Index {
		s.StartList(int(to - from + 1))
		for n := from; n <= to; n++ {
			idx, _ := s.AddNumber(gvalue.Int(n))
			_ = s.AddToList(idx, false, 0)
		}
		idx, _ := s.EndList()
		return idx
	}
	left := mkNumberList(10, 19)
	right := mkNumberList(20, 29)
	eightIdx, _ := s.AddNumber(gvalue.Int(8))
	twelveIdx, _ := s.AddNumber(gvalue.Int(12))
	listType, _ := s.AddType(gvalue.List)

	start := s.PushInstruction(put(s, left))
	s.PushInstruction(put(s, right))
	s.PushInstruction(op(gcode.Concat))
	s.PushInstruction(put(s, eightIdx))
	s.PushInstruction(put(s, twelveIdx))
	s.PushInstruction(op(gcode.MakeRange))
	// registers: [concat, range] -> Access via Apply(concat, range) slices
	s.PushInstruction(op(gcode.Apply))
	s.PushInstruction(put(s, listType))
	s.PushInstruction(op(gcode.ApplyType))
	s.PushInstruction(op(gcode.EndExpression))
	return Program{Name: "slice-concat", Store: s, Entry: start}
}

// reapply: with gate False, falls through to marker 1; with gate True,
// jumps to the gated target and leaves marker 2 (spec §8 scenario 6).
// This seed fixes the gate to True so cmd/garnish has one runnable
// program; see internal/gvm's TestReapplyGating for the False case.
func reapply() Program {
	s := gheap.New()
	markerB, _ := s.AddNumber(gvalue.Int(2))
	markerA, _ := s.AddNumber(gvalue.Int(1))
	newInput, _ := s.AddNumber(gvalue.Int(99))

	calleeEnd := s.PushInstruction(put(s, markerB))
	s.PushInstruction(op(gcode.EndExpression))
	jumpID := s.PushToJumpTable(calleeEnd)

	gate := s.AddTrue()
	start := s.PushInstruction(put(s, gate))
	s.PushInstruction(put(s, newInput))
	s.PushInstruction(gcode.Instruction{Op: gcode.Reapply, Immediate: jumpID, HasImm: true})
	s.PushInstruction(put(s, markerA))
	s.PushInstruction(op(gcode.EndExpression))
	return Program{Name: "reapply", Store: s, Entry: start}
}
