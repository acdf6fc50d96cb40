package gops

import (
	"testing"

	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

func TestEqualAcrossNumberVariants(t *testing.T) {
	s := gheap.New()
	i := mustIdx(t, s.AddNumber(gvalue.Int(10)))
	f := mustIdx(t, s.AddNumber(gvalue.Float(10.0)))
	result, err := Equal(s, gcontext.NoopContext{}, i, f)
	if err != nil {
		t.Fatal(err)
	}
	if result != gheap.TrueIndex {
		t.Fatal("Int(10) and Float(10.0) must compare Equal (spec §8 universal invariant)")
	}
}

func TestEqualStructuralAcrossListAndConcatenation(t *testing.T) {
	s := gheap.New()
	s.StartList(3)
	for _, n := range []int64{1, 2, 3} {
		_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(n))), false, 0)
	}
	list := mustIdx(t, s.EndList())

	s.StartList(1)
	_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(1))), false, 0)
	left := mustIdx(t, s.EndList())
	s.StartList(2)
	_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(2))), false, 0)
	_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(3))), false, 0)
	right := mustIdx(t, s.EndList())
	concat := mustIdx(t, Concat(s, left, right))

	result, err := Equal(s, gcontext.NoopContext{}, list, concat)
	if err != nil {
		t.Fatal(err)
	}
	if result != gheap.TrueIndex {
		t.Fatal("a List and a Concatenation with the same observable elements must compare Equal")
	}
}

func TestLessThanDefersOnIncomparableKinds(t *testing.T) {
	s := gheap.New()
	n := mustIdx(t, s.AddNumber(gvalue.Int(1)))
	c := mustIdx(t, s.AddChar('a'))
	result, err := LessThan(s, gcontext.NoopContext{}, n, c)
	if err != nil {
		t.Fatal(err)
	}
	if result != gheap.UnitIndex {
		t.Fatal("LessThan between incomparable kinds with no context handler must soft-fail to Unit")
	}
}
