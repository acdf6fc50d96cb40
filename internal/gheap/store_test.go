package gheap

import (
	"testing"

	"garnish/internal/gerrors"
	"garnish/internal/gvalue"
)

func TestSingletonsAtFixedIndices(t *testing.T) {
	s := New()
	if s.AddUnit() != UnitIndex || s.AddFalse() != FalseIndex || s.AddTrue() != TrueIndex {
		t.Fatal("singleton indices must be stable across calls")
	}
	k, err := s.Kind(UnitIndex)
	if err != nil || k != gvalue.Unit {
		t.Fatalf("Kind(UnitIndex) = %v, %v", k, err)
	}
}

func TestGetOutOfBounds(t *testing.T) {
	s := New()
	if _, err := s.Get(gvalue.Index(999)); !gerrors.Is(err, gerrors.DataAccess) {
		t.Fatalf("expected DataAccess error, got %v", err)
	}
}

func TestNumberMemoization(t *testing.T) {
	s := New()
	a, err := s.AddNumber(gvalue.Int(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.AddNumber(gvalue.Int(42))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("equal Int Numbers should memoize to the same index, got %d and %d", a, b)
	}
	c, err := s.AddNumber(gvalue.Float(42))
	if err != nil {
		t.Fatal(err)
	}
	if c == a {
		t.Fatal("Int(42) and Float(42) are distinct values and must not share an index")
	}
}

func TestRegisterFrameDiscipline(t *testing.T) {
	s := New()
	one, err := s.AddNumber(gvalue.Int(1))
	if err != nil {
		t.Fatal(err)
	}
	s.PushRegister(one)
	s.PushJumpPath(5)
	if _, err := s.PopRegister(); !gerrors.Is(err, gerrors.DataAccess) {
		t.Fatalf("popping past a frame marker must fail, got %v", err)
	}
}

func TestPushPopJumpPathPreservesDepthBalance(t *testing.T) {
	s := New()
	startRegLen := s.GetRegisterLen()
	s.PushJumpPath(10)
	if s.JumpPathLen() != 1 {
		t.Fatal("expected jump path depth 1")
	}
	target, err := s.PopJumpPath()
	if err != nil {
		t.Fatal(err)
	}
	if target != 10 {
		t.Fatalf("return address = %d, want 10", target)
	}
	if s.JumpPathLen() != 0 {
		t.Fatal("expected jump path depth 0 after pop")
	}
	if s.GetRegisterLen() != startRegLen {
		t.Fatalf("register stack length changed across a balanced call: %d != %d", s.GetRegisterLen(), startRegLen)
	}
}

func TestMaxValuesSoftBound(t *testing.T) {
	s := New()
	s.MaxValues = s.Len() + 1
	if _, err := s.AddChar('a'); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddChar('b'); !gerrors.Is(err, gerrors.Overflow) {
		t.Fatalf("expected Overflow once MaxValues is reached, got %v", err)
	}
}
