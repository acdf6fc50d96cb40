package gops

import (
	"testing"

	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

func rangeBounds(t *testing.T, s *gheap.Store, idx gvalue.Index) (int64, int64) {
	t.Helper()
	start, end, err := s.RangeBounds(idx)
	if err != nil {
		t.Fatal(err)
	}
	return start, end
}

func TestExclusiveRangeNormalization(t *testing.T) {
	s := gheap.New()
	a := mustIdx(t, s.AddNumber(gvalue.Int(1)))
	b := mustIdx(t, s.AddNumber(gvalue.Int(5)))

	if start, end := rangeBounds(t, s, mustIdx(t, MakeStartExclusiveRange(s, a, b))); start != 2 || end != 5 {
		t.Fatalf("(1, 5] should normalize to [2, 5], got [%d, %d]", start, end)
	}
	if start, end := rangeBounds(t, s, mustIdx(t, MakeEndExclusiveRange(s, a, b))); start != 1 || end != 4 {
		t.Fatalf("[1, 5) should normalize to [1, 4], got [%d, %d]", start, end)
	}
	if start, end := rangeBounds(t, s, mustIdx(t, MakeExclusiveRange(s, a, b))); start != 2 || end != 4 {
		t.Fatalf("(1, 5) should normalize to [2, 4], got [%d, %d]", start, end)
	}
}

func TestMakeListDetectsAssociativeItems(t *testing.T) {
	s := gheap.New()
	key := mustSymbol(t, s, "x")
	val := mustIdx(t, s.AddNumber(gvalue.Int(7)))
	pair := mustIdx(t, s.AddPair(key, val))
	plain := mustIdx(t, s.AddNumber(gvalue.Int(3)))

	s.PushRegister(pair)
	s.PushRegister(plain)
	listIdx, err := MakeList(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	got, hit, err := s.LookupAssoc(listIdx, gheap.HashName("x"))
	if err != nil || !hit {
		t.Fatalf("expected the Pair item to be associatively keyed, hit=%v err=%v", hit, err)
	}
	gv, _ := s.Get(got)
	if gv.Number.AsInt() != 7 {
		t.Fatalf("associative lookup returned %v, want 7", gv.Number)
	}
}

func TestConcatLengthIsSumOfSides(t *testing.T) {
	s := gheap.New()
	s.StartList(2)
	_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(1))), false, 0)
	_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(2))), false, 0)
	left := mustIdx(t, s.EndList())

	s.StartList(3)
	for _, n := range []int64{3, 4, 5} {
		_ = s.AddToList(mustIdx(t, s.AddNumber(gvalue.Int(n))), false, 0)
	}
	right := mustIdx(t, s.EndList())

	concat := mustIdx(t, Concat(s, left, right))
	n, err := lengthOf(s, concat)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("Concatenation length = %d, want 5", n)
	}
}
