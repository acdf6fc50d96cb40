package gops

import (
	"testing"

	"garnish/internal/gcontext"
	"garnish/internal/gerrors"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

func mustIdx(t *testing.T, idx gvalue.Index, err error) gvalue.Index {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestAddNumbers(t *testing.T) {
	s := gheap.New()
	a := mustIdx(t, s.AddNumber(gvalue.Int(10)))
	b := mustIdx(t, s.AddNumber(gvalue.Int(20)))
	result, err := Add(s, gcontext.NoopContext{}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Get(result)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != gvalue.Number || v.Number.AsInt() != 30 {
		t.Fatalf("10 + 20 = %v, want Number 30", v)
	}
}

func TestAddOperandMismatchSoftFailsToUnit(t *testing.T) {
	s := gheap.New()
	a := mustIdx(t, s.AddNumber(gvalue.Int(10)))
	c := mustIdx(t, s.AddChar('x'))
	result, err := Add(s, gcontext.NoopContext{}, a, c)
	if err != nil {
		t.Fatal(err)
	}
	if result != gheap.UnitIndex {
		t.Fatalf("Add of Number and Char with no context handler should be Unit, got %v", result)
	}
}

func TestDivideByZeroIsHardOverflow(t *testing.T) {
	s := gheap.New()
	a := mustIdx(t, s.AddNumber(gvalue.Int(1)))
	zero := mustIdx(t, s.AddNumber(gvalue.Int(0)))
	if _, err := Divide(s, gcontext.NoopContext{}, a, zero); !gerrors.Is(err, gerrors.Overflow) {
		t.Fatalf("expected Overflow error on division by zero, got %v", err)
	}
}

func TestBitwiseFloatOperandSoftFailsToUnit(t *testing.T) {
	s := gheap.New()
	a := mustIdx(t, s.AddNumber(gvalue.Float(1.5)))
	b := mustIdx(t, s.AddNumber(gvalue.Int(2)))
	result, err := BitwiseAnd(s, nil, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if result != gheap.UnitIndex {
		t.Fatal("bitwise op on a float operand must soft-fail to Unit, not defer to context")
	}
}
