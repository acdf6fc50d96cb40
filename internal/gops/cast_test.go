package gops

import (
	"testing"

	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// TestSliceOfConcatenationCastToList covers spec §8 scenario 5: a Slice
// over a Concatenation of two Ranges, cast to a List, materializes the
// exact logical window [18, 19, 20, 21, 22].
func TestSliceOfConcatenationCastToList(t *testing.T) {
	s := gheap.New()
	left := mustIdx(t, MakeRange(s, mustIdx(t, s.AddNumber(gvalue.Int(10))), mustIdx(t, s.AddNumber(gvalue.Int(19)))))
	right := mustIdx(t, MakeRange(s, mustIdx(t, s.AddNumber(gvalue.Int(20))), mustIdx(t, s.AddNumber(gvalue.Int(29)))))
	concat := mustIdx(t, Concat(s, left, right))

	window := mustIdx(t, MakeRange(s, mustIdx(t, s.AddNumber(gvalue.Int(8))), mustIdx(t, s.AddNumber(gvalue.Int(12)))))
	effect, err := Apply(s, gcontext.NoopContext{}, concat, window)
	if err != nil {
		t.Fatal(err)
	}
	if !effect.HasResult {
		t.Fatal("List-like/Range Apply should produce a Slice result")
	}
	sliceIdx := effect.Result

	listIdx, err := Cast(s, gcontext.NoopContext{}, sliceIdx, gvalue.List)
	if err != nil {
		t.Fatal(err)
	}
	lv, err := s.Get(listIdx)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{18, 19, 20, 21, 22}
	if len(lv.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(lv.Items), len(want))
	}
	for i, w := range want {
		iv, err := s.Get(lv.Items[i])
		if err != nil {
			t.Fatal(err)
		}
		if iv.Number.AsInt() != w {
			t.Fatalf("item %d = %v, want %d", i, iv.Number, w)
		}
	}
}

func TestCastIdentity(t *testing.T) {
	s := gheap.New()
	n := mustIdx(t, s.AddNumber(gvalue.Int(5)))
	result, err := Cast(s, gcontext.NoopContext{}, n, gvalue.Number)
	if err != nil {
		t.Fatal(err)
	}
	if result != n {
		t.Fatal("casting a value to its own Kind must be identity")
	}
}

func TestCastNumberToCharAndBack(t *testing.T) {
	s := gheap.New()
	n := mustIdx(t, s.AddNumber(gvalue.Int(65)))
	c, err := Cast(s, gcontext.NoopContext{}, n, gvalue.Char)
	if err != nil {
		t.Fatal(err)
	}
	cv, err := s.Get(c)
	if err != nil {
		t.Fatal(err)
	}
	if cv.Char != 'A' {
		t.Fatalf("Number(65) cast to Char = %q, want 'A'", cv.Char)
	}
	back, err := Cast(s, gcontext.NoopContext{}, c, gvalue.Number)
	if err != nil {
		t.Fatal(err)
	}
	bv, err := s.Get(back)
	if err != nil {
		t.Fatal(err)
	}
	if bv.Number.AsInt() != 65 {
		t.Fatalf("Char 'A' cast back to Number = %v, want 65", bv.Number)
	}
}
