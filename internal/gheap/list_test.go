package gheap

import (
	"testing"

	"garnish/internal/gvalue"
)

func mustSymbol(t *testing.T, s *Store, name string) gvalue.Index {
	t.Helper()
	idx, err := s.AddSymbol(HashName(name), name)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func mustNumber(t *testing.T, s *Store, n int64) gvalue.Index {
	t.Helper()
	idx, err := s.AddNumber(gvalue.Int(n))
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

// TestAssocLookupIndependentOfInsertionOrder is the spec §8 universal
// invariant: symbol lookup must succeed the same way regardless of the
// permutation items were inserted in, since open addressing relies only
// on the hash, not positional order.
func TestAssocLookupIndependentOfInsertionOrder(t *testing.T) {
	build := func(order []string) *Store {
		s := New()
		s.StartList(len(order))
		for _, name := range order {
			key := mustSymbol(t, s, name)
			val := mustNumber(t, s, int64(len(name)))
			pair, err := s.AddPair(key, val)
			if err != nil {
				t.Fatal(err)
			}
			hash, isAssoc := s.AssocHashOf(pair)
			if !isAssoc {
				t.Fatal("Pair with Symbol left must be detected as associative")
			}
			if err := s.AddToList(pair, true, hash); err != nil {
				t.Fatal(err)
			}
		}
		return s
	}

	a := build([]string{"alpha", "beta", "gamma"})
	b := build([]string{"gamma", "alpha", "beta"})

	listA, err := a.EndList()
	if err != nil {
		t.Fatal(err)
	}
	listB, err := b.EndList()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"alpha", "beta", "gamma"} {
		va, hitA, err := a.LookupAssoc(listA, HashName(name))
		if err != nil || !hitA {
			t.Fatalf("lookup %q in A: hit=%v err=%v", name, hitA, err)
		}
		vb, hitB, err := b.LookupAssoc(listB, HashName(name))
		if err != nil || !hitB {
			t.Fatalf("lookup %q in B: hit=%v err=%v", name, hitB, err)
		}
		av, _ := a.Get(va)
		bv, _ := b.Get(vb)
		if av.Number.AsInt() != bv.Number.AsInt() {
			t.Fatalf("lookup %q: A gave %v, B gave %v", name, av.Number, bv.Number)
		}
	}
}

// TestAssocFirstInsertedWinsOnCollision: colliding keys keep the first entry's value.
func TestAssocFirstInsertedWinsOnCollision(t *testing.T) {
	s := New()
	s.StartList(2)
	const collidingHash = 7

	k1 := mustSymbol(t, s, "first")
	v1 := mustNumber(t, s, 1)
	p1, err := s.AddPair(k1, v1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddToList(p1, true, collidingHash); err != nil {
		t.Fatal(err)
	}

	k2 := mustSymbol(t, s, "second")
	v2 := mustNumber(t, s, 2)
	p2, err := s.AddPair(k2, v2)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddToList(p2, true, collidingHash); err != nil {
		t.Fatal(err)
	}

	listIdx, err := s.EndList()
	if err != nil {
		t.Fatal(err)
	}
	result, hit, err := s.LookupAssoc(listIdx, collidingHash)
	if err != nil || !hit {
		t.Fatalf("expected a hit on the colliding hash, got hit=%v err=%v", hit, err)
	}
	rv, _ := s.Get(result)
	if rv.Number.AsInt() != 1 {
		t.Fatalf("expected first-inserted value 1 to win, got %v", rv.Number)
	}
}

func TestLengthAndItemCountRelation(t *testing.T) {
	s := New()
	s.StartList(3)
	for i := int64(0); i < 3; i++ {
		if err := s.AddToList(mustNumber(t, s, i), false, 0); err != nil {
			t.Fatal(err)
		}
	}
	listIdx, err := s.EndList()
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Get(listIdx)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(v.Items))
	}
	if len(v.Assoc) != 0 {
		t.Fatalf("no associative items were added, expected an empty assoc table, got %d entries", len(v.Assoc))
	}
}
