package gops

import (
	"strconv"

	"garnish/internal/gcontext"
	"garnish/internal/gerrors"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// Cast implements the ApplyType opcode: a dual dispatch over
// (sourceKind, targetKind) pairs (spec §4.4). Every pair is handled,
// either by an identity result, a primitive conversion, a structural
// conversion, or (for pairs the core doesn't itself define) the
// documented default path to ctx.DeferOp and then Unit (spec §9 design
// note on table-driven dispatch coverage). The full table is grounded on
// original_source/runtime/src/runtime/casting.rs, which enumerates this
// exhaustively rather than by the three examples spec.md calls out
// (SPEC_FULL.md §13).
func Cast(s *gheap.Store, ctx gcontext.Context, source gvalue.Index, target gvalue.Kind) (gvalue.Index, error) {
	v, err := s.Get(source)
	if err != nil {
		return 0, err
	}

	if v.Kind == target {
		return source, nil
	}

	switch v.Kind {
	case gvalue.Number:
		switch target {
		case gvalue.Char:
			return s.AddChar(rune(v.Number.AsInt()))
		case gvalue.Byte:
			return s.AddByte(byte(v.Number.AsInt()))
		case gvalue.CharList:
			return s.AddCharListFromString(v.Number.String())
		case gvalue.Type:
			if v.Number.AsInt() < 0 || v.Number.AsInt() >= int64(gvalue.List)+1 {
				return 0, gerrors.Newf(gerrors.Overflow, "cannot cast Number %s to Type: out of range", v.Number)
			}
			return s.AddType(gvalue.Kind(v.Number.AsInt())), nil
		}
	case gvalue.Char:
		switch target {
		case gvalue.Number:
			return s.AddNumber(gvalue.Int(int64(v.Char)))
		case gvalue.Byte:
			if v.Char < 0 || v.Char > 255 {
				return 0, gerrors.Newf(gerrors.Overflow, "cast failure: Char %q does not fit in a Byte", v.Char)
			}
			return s.AddByte(byte(v.Char))
		case gvalue.CharList:
			return s.AddCharListFromString(string(v.Char))
		}
	case gvalue.Byte:
		switch target {
		case gvalue.Number:
			return s.AddNumber(gvalue.Int(int64(v.Byte)))
		case gvalue.Char:
			return s.AddChar(rune(v.Byte))
		}
	case gvalue.CharList:
		switch target {
		case gvalue.Number:
			return castCharListToNumber(s, string(v.Chars))
		case gvalue.ByteList:
			bytes := make([]byte, 0, len(v.Chars))
			for _, c := range v.Chars {
				if c < 0 || c > 255 {
					return 0, gerrors.Newf(gerrors.Overflow, "cast failure: CharList contains %q, which does not fit in a Byte", c)
				}
				bytes = append(bytes, byte(c))
			}
			return addByteList(s, bytes)
		case gvalue.List:
			return castCharListToList(s, v.Chars)
		}
	case gvalue.ByteList:
		switch target {
		case gvalue.CharList:
			chars := make([]rune, len(v.Bytes))
			for i, b := range v.Bytes {
				chars[i] = rune(b)
			}
			return s.AddCharListFromString(string(chars))
		case gvalue.List:
			return castByteListToList(s, v.Bytes)
		}
	case gvalue.True, gvalue.False:
		switch target {
		case gvalue.Number:
			if v.Kind == gvalue.True {
				return s.AddNumber(gvalue.Int(1))
			}
			return s.AddNumber(gvalue.Int(0))
		case gvalue.CharList:
			if v.Kind == gvalue.True {
				return s.AddCharListFromString("True")
			}
			return s.AddCharListFromString("False")
		}
	case gvalue.Range:
		if target == gvalue.List {
			return materializeToList(s, source)
		}
	case gvalue.Slice, gvalue.Concatenation:
		switch target {
		case gvalue.List:
			return materializeToList(s, source)
		case gvalue.CharList:
			return materializeToCharList(s, source)
		case gvalue.ByteList:
			return materializeToByteList(s, source)
		}
	case gvalue.List:
		switch target {
		case gvalue.CharList:
			return castListToCharList(s, v.Items)
		case gvalue.ByteList:
			return castListToByteList(s, v.Items)
		}
	}

	if ctx != nil {
		unitTarget, err := s.AddType(target)
		if err != nil {
			return 0, err
		}
		handled, err := ctx.DeferOp(s, "ApplyType", v.Kind, source, gvalue.Type, unitTarget)
		if err != nil {
			return 0, err
		}
		if handled {
			return s.PopRegister()
		}
	}
	return s.AddUnit(), nil
}

func castCharListToNumber(s *gheap.Store, str string) (gvalue.Index, error) {
	if i, err := strconv.ParseInt(str, 10, 64); err == nil {
		return s.AddNumber(gvalue.Int(i))
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return s.AddNumber(gvalue.Float(f))
	}
	return 0, gerrors.Newf(gerrors.Overflow, "cast failure: %q is not a valid Number", str)
}

func castCharListToList(s *gheap.Store, chars []rune) (gvalue.Index, error) {
	s.StartList(len(chars))
	for _, c := range chars {
		ci, err := s.AddChar(c)
		if err != nil {
			return 0, err
		}
		if err := s.AddToList(ci, false, 0); err != nil {
			return 0, err
		}
	}
	return s.EndList()
}

func castByteListToList(s *gheap.Store, bytes []byte) (gvalue.Index, error) {
	s.StartList(len(bytes))
	for _, b := range bytes {
		bi, err := s.AddByte(b)
		if err != nil {
			return 0, err
		}
		if err := s.AddToList(bi, false, 0); err != nil {
			return 0, err
		}
	}
	return s.EndList()
}

// castListToCharList requires every item be a Char (spec §4.4: "cast
// failure when the target kind cannot represent the source value").
func castListToCharList(s *gheap.Store, items []gvalue.Index) (gvalue.Index, error) {
	chars := make([]rune, len(items))
	for i, item := range items {
		v, err := s.Get(item)
		if err != nil {
			return 0, err
		}
		if v.Kind != gvalue.Char {
			return 0, gerrors.Newf(gerrors.Overflow, "cast failure: List item %d is %s, not Char", i, v.Kind)
		}
		chars[i] = v.Char
	}
	return s.AddCharListFromString(string(chars))
}

func castListToByteList(s *gheap.Store, items []gvalue.Index) (gvalue.Index, error) {
	bytes := make([]byte, len(items))
	for i, item := range items {
		v, err := s.Get(item)
		if err != nil {
			return 0, err
		}
		if v.Kind != gvalue.Byte {
			return 0, gerrors.Newf(gerrors.Overflow, "cast failure: List item %d is %s, not Byte", i, v.Kind)
		}
		bytes[i] = v.Byte
	}
	return addByteList(s, bytes)
}

func addByteList(s *gheap.Store, bytes []byte) (gvalue.Index, error) {
	s.StartByteList()
	for _, b := range bytes {
		if err := s.AddToByteList(b); err != nil {
			return 0, err
		}
	}
	return s.EndByteList()
}

// materializeToList flattens any list-like value (Range/Slice/Concatenation)
// into a concrete List by walking lengthOf/elementAt (spec §8 scenario 5).
func materializeToList(s *gheap.Store, idx gvalue.Index) (gvalue.Index, error) {
	n, err := lengthOf(s, idx)
	if err != nil {
		return 0, err
	}
	s.StartList(int(n))
	for i := int64(0); i < n; i++ {
		item, ok, err := elementAt(s, idx, i)
		if err != nil {
			return 0, err
		}
		if !ok {
			item = s.AddUnit()
		}
		hash, isAssoc := s.AssocHashOf(item)
		if err := s.AddToList(item, isAssoc, hash); err != nil {
			return 0, err
		}
	}
	return s.EndList()
}

func materializeToCharList(s *gheap.Store, idx gvalue.Index) (gvalue.Index, error) {
	n, err := lengthOf(s, idx)
	if err != nil {
		return 0, err
	}
	chars := make([]rune, 0, n)
	for i := int64(0); i < n; i++ {
		item, ok, err := elementAt(s, idx, i)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		v, err := s.Get(item)
		if err != nil {
			return 0, err
		}
		if v.Kind != gvalue.Char {
			return 0, gerrors.Newf(gerrors.Overflow, "cast failure: element %d is %s, not Char", i, v.Kind)
		}
		chars = append(chars, v.Char)
	}
	return s.AddCharListFromString(string(chars))
}

func materializeToByteList(s *gheap.Store, idx gvalue.Index) (gvalue.Index, error) {
	n, err := lengthOf(s, idx)
	if err != nil {
		return 0, err
	}
	bytes := make([]byte, 0, n)
	for i := int64(0); i < n; i++ {
		item, ok, err := elementAt(s, idx, i)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		v, err := s.Get(item)
		if err != nil {
			return 0, err
		}
		if v.Kind != gvalue.Byte {
			return 0, gerrors.Newf(gerrors.Overflow, "cast failure: element %d is %s, not Byte", i, v.Kind)
		}
		bytes = append(bytes, v.Byte)
	}
	return addByteList(s, bytes)
}
