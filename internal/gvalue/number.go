package gvalue

import "math"

// Number is the tagged int64/float64 variant backing Kind Number. Equality
// across variants is by numeric value (spec §3.2): Number(10) == Number(10.0).
//
// Grounded on original_source/data/src/data/number.rs's SimpleNumber, which
// keeps exactly these two variants and defines int-overflow-falls-back-to-
// float promotion instead of hard erroring (see SPEC_FULL.md §13).
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

func Int(v int64) Number   { return Number{i: v} }
func Float(v float64) Number { return Number{isFloat: true, f: v} }

func (n Number) IsFloat() bool { return n.isFloat }

func (n Number) AsFloat() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// AsInt returns the integer value, truncating a float toward zero.
func (n Number) AsInt() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Equal(o Number) bool {
	if n.isFloat || o.isFloat {
		return n.AsFloat() == o.AsFloat()
	}
	return n.i == o.i
}

func (n Number) Compare(o Number) int {
	a, b := n.AsFloat(), o.AsFloat()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (n Number) String() string {
	if n.isFloat {
		return formatFloat(n.f)
	}
	return formatInt(n.i)
}

// Add promotes to float on int64 overflow rather than erroring (§13).
func (n Number) Add(o Number) Number {
	if !n.isFloat && !o.isFloat {
		sum := n.i + o.i
		if (sum > n.i) == (o.i > 0) || o.i == 0 {
			return Int(sum)
		}
		return Float(float64(n.i) + float64(o.i))
	}
	return Float(n.AsFloat() + o.AsFloat())
}

func (n Number) Sub(o Number) Number {
	if !n.isFloat && !o.isFloat {
		diff := n.i - o.i
		if (diff < n.i) == (o.i > 0) || o.i == 0 {
			return Int(diff)
		}
		return Float(float64(n.i) - float64(o.i))
	}
	return Float(n.AsFloat() - o.AsFloat())
}

func (n Number) Mul(o Number) Number {
	if !n.isFloat && !o.isFloat {
		if n.i == 0 || o.i == 0 {
			return Int(0)
		}
		p := n.i * o.i
		if p/o.i == n.i {
			return Int(p)
		}
		return Float(float64(n.i) * float64(o.i))
	}
	return Float(n.AsFloat() * o.AsFloat())
}

// Div always produces a float Number (true division). Division by zero is
// a hard Overflow/Domain error, surfaced by the caller in internal/gops.
func (n Number) Div(o Number) (Number, bool) {
	if o.AsFloat() == 0 {
		return Number{}, false
	}
	return Float(n.AsFloat() / o.AsFloat()), true
}

// IntegerDiv truncates toward zero; division by zero fails.
func (n Number) IntegerDiv(o Number) (Number, bool) {
	if !n.isFloat && !o.isFloat {
		if o.i == 0 {
			return Number{}, false
		}
		return Int(n.i / o.i), true
	}
	of := o.AsFloat()
	if of == 0 {
		return Number{}, false
	}
	return Int(int64(n.AsFloat() / of)), true
}

func (n Number) Remainder(o Number) (Number, bool) {
	if !n.isFloat && !o.isFloat {
		if o.i == 0 {
			return Number{}, false
		}
		return Int(n.i % o.i), true
	}
	of := o.AsFloat()
	if of == 0 {
		return Number{}, false
	}
	return Float(math.Mod(n.AsFloat(), of)), true
}

func (n Number) Power(o Number) Number {
	if !n.isFloat && !o.isFloat && o.i >= 0 {
		result := int64(1)
		base := n.i
		exp := o.i
		overflow := false
		for exp > 0 {
			next := result * base
			if base != 0 && next/base != result {
				overflow = true
				break
			}
			result = next
			exp--
		}
		if !overflow {
			return Int(result)
		}
	}
	return Float(math.Pow(n.AsFloat(), o.AsFloat()))
}

func (n Number) Opposite() Number {
	if n.isFloat {
		return Float(-n.f)
	}
	return Int(-n.i)
}

func (n Number) Absolute() Number {
	if n.isFloat {
		return Float(math.Abs(n.f))
	}
	if n.i < 0 {
		return Int(-n.i)
	}
	return n
}

// AsBitwiseInt reports whether this Number can participate in a bitwise
// op (Numbers only, float operands fail soft to Unit per spec §4.2).
func (n Number) AsBitwiseInt() (int64, bool) {
	if n.isFloat {
		return 0, false
	}
	return n.i, true
}
