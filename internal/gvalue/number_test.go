package gvalue

import (
	"math"
	"testing"
)

func TestNumberEqualAcrossVariants(t *testing.T) {
	if !Int(10).Equal(Float(10.0)) {
		t.Fatal("Int(10) should equal Float(10.0)")
	}
	if Int(10).Equal(Float(10.5)) {
		t.Fatal("Int(10) should not equal Float(10.5)")
	}
}

func TestNumberAddOverflowPromotesToFloat(t *testing.T) {
	max := Int(math.MaxInt64)
	sum := max.Add(max)
	if !sum.IsFloat() {
		t.Fatalf("expected overflowing Add to promote to float, got %v (isFloat=%v)", sum, sum.IsFloat())
	}
}

func TestNumberAddNoOverflowStaysInt(t *testing.T) {
	sum := Int(2).Add(Int(3))
	if sum.IsFloat() {
		t.Fatalf("expected 2+3 to stay int, got float %v", sum)
	}
	if sum.AsInt() != 5 {
		t.Fatalf("2+3 = %d, want 5", sum.AsInt())
	}
}

func TestNumberMulOverflowPromotesToFloat(t *testing.T) {
	big := Int(1 << 40)
	p := big.Mul(big)
	if !p.IsFloat() {
		t.Fatalf("expected overflowing Mul to promote to float, got %v", p)
	}
}

func TestNumberDivByZeroFails(t *testing.T) {
	if _, ok := Int(1).Div(Int(0)); ok {
		t.Fatal("division by zero should fail")
	}
	if _, ok := Int(6).IntegerDiv(Int(0)); ok {
		t.Fatal("integer division by zero should fail")
	}
	if _, ok := Int(6).Remainder(Int(0)); ok {
		t.Fatal("remainder by zero should fail")
	}
}

func TestNumberDivAlwaysFloat(t *testing.T) {
	result, ok := Int(10).Div(Int(2))
	if !ok {
		t.Fatal("10/2 should succeed")
	}
	if !result.IsFloat() {
		t.Fatalf("Div must always produce a float Number, got %v", result)
	}
	if result.AsFloat() != 5.0 {
		t.Fatalf("10/2 = %v, want 5.0", result.AsFloat())
	}
}

func TestNumberCompare(t *testing.T) {
	if Int(1).Compare(Int(2)) >= 0 {
		t.Fatal("1 should compare less than 2")
	}
	if Float(2.5).Compare(Int(2)) <= 0 {
		t.Fatal("2.5 should compare greater than 2")
	}
}

func TestNumberAsBitwiseInt(t *testing.T) {
	if _, ok := Int(5).AsBitwiseInt(); !ok {
		t.Fatal("int Number should support bitwise ops")
	}
	if _, ok := Float(5.0).AsBitwiseInt(); ok {
		t.Fatal("float Number should not support bitwise ops")
	}
}
