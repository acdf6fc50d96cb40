package gops

import (
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// Xor is non-short-circuit logical xor over truthiness (spec §4.2).
func Xor(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	l, err := IsTruthy(s, left)
	if err != nil {
		return 0, err
	}
	r, err := IsTruthy(s, right)
	if err != nil {
		return 0, err
	}
	return boolIndex(s, l != r), nil
}

// Not inverts truthiness.
func Not(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	t, err := IsTruthy(s, operand)
	if err != nil {
		return 0, err
	}
	return boolIndex(s, !t), nil
}

// Tis is identity-truth: True for any truthy operand, False otherwise
// (spec §4.2).
func Tis(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	t, err := IsTruthy(s, operand)
	if err != nil {
		return 0, err
	}
	return boolIndex(s, t), nil
}
