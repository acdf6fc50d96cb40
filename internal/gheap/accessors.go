package gheap

import "garnish/internal/gvalue"

func (s *Store) GetNumber(idx gvalue.Index) (gvalue.Number, error) {
	v, err := s.expectKind(idx, gvalue.Number)
	if err != nil {
		return gvalue.Number{}, err
	}
	return v.Number, nil
}

func (s *Store) GetChar(idx gvalue.Index) (rune, error) {
	v, err := s.expectKind(idx, gvalue.Char)
	if err != nil {
		return 0, err
	}
	return v.Char, nil
}

func (s *Store) GetByte(idx gvalue.Index) (byte, error) {
	v, err := s.expectKind(idx, gvalue.Byte)
	if err != nil {
		return 0, err
	}
	return v.Byte, nil
}

func (s *Store) GetSymbol(idx gvalue.Index) (uint64, error) {
	v, err := s.expectKind(idx, gvalue.Symbol)
	if err != nil {
		return 0, err
	}
	return v.Symbol, nil
}

func (s *Store) GetType(idx gvalue.Index) (gvalue.Kind, error) {
	v, err := s.expectKind(idx, gvalue.Type)
	if err != nil {
		return 0, err
	}
	return v.Type, nil
}

func (s *Store) GetExpression(idx gvalue.Index) (int, error) {
	v, err := s.expectKind(idx, gvalue.Expression)
	if err != nil {
		return 0, err
	}
	return v.Expression, nil
}

func (s *Store) GetExternal(idx gvalue.Index) (uint64, error) {
	v, err := s.expectKind(idx, gvalue.External)
	if err != nil {
		return 0, err
	}
	return v.External, nil
}

// GetPair returns (left, right) for a Pair value.
func (s *Store) GetPair(idx gvalue.Index) (gvalue.Index, gvalue.Index, error) {
	v, err := s.expectKind(idx, gvalue.Pair)
	if err != nil {
		return 0, 0, err
	}
	return v.Left, v.Right, nil
}

// GetRange returns (start, end) heap indices (both Numbers) for a Range.
func (s *Store) GetRange(idx gvalue.Index) (gvalue.Index, gvalue.Index, error) {
	v, err := s.expectKind(idx, gvalue.Range)
	if err != nil {
		return 0, 0, err
	}
	return v.Left, v.Right, nil
}

// RangeBounds resolves a Range's numeric bounds directly.
func (s *Store) RangeBounds(idx gvalue.Index) (int64, int64, error) {
	startIdx, endIdx, err := s.GetRange(idx)
	if err != nil {
		return 0, 0, err
	}
	start, err := s.GetNumber(startIdx)
	if err != nil {
		return 0, 0, err
	}
	end, err := s.GetNumber(endIdx)
	if err != nil {
		return 0, 0, err
	}
	return start.AsInt(), end.AsInt(), nil
}

func (s *Store) GetConcatenation(idx gvalue.Index) (gvalue.Index, gvalue.Index, error) {
	v, err := s.expectKind(idx, gvalue.Concatenation)
	if err != nil {
		return 0, 0, err
	}
	return v.Left, v.Right, nil
}

// GetSlice returns (value, range) for a Slice.
func (s *Store) GetSlice(idx gvalue.Index) (gvalue.Index, gvalue.Index, error) {
	v, err := s.expectKind(idx, gvalue.Slice)
	if err != nil {
		return 0, 0, err
	}
	return v.Left, v.Right, nil
}

// GetPartial returns (receiver, input) for a Partial.
func (s *Store) GetPartial(idx gvalue.Index) (gvalue.Index, gvalue.Index, error) {
	v, err := s.expectKind(idx, gvalue.Partial)
	if err != nil {
		return 0, 0, err
	}
	return v.Left, v.Right, nil
}

func (s *Store) GetCharList(idx gvalue.Index) ([]rune, error) {
	v, err := s.expectKind(idx, gvalue.CharList)
	if err != nil {
		return nil, err
	}
	return v.Chars, nil
}

func (s *Store) GetByteList(idx gvalue.Index) ([]byte, error) {
	v, err := s.expectKind(idx, gvalue.ByteList)
	if err != nil {
		return nil, err
	}
	return v.Bytes, nil
}

func (s *Store) GetSymbolList(idx gvalue.Index) ([]gvalue.SymbolPart, error) {
	v, err := s.expectKind(idx, gvalue.SymbolList)
	if err != nil {
		return nil, err
	}
	return v.SymbolParts, nil
}

// GetListItems returns a List's ordered item indices.
func (s *Store) GetListItems(idx gvalue.Index) ([]gvalue.Index, error) {
	v, err := s.expectKind(idx, gvalue.List)
	if err != nil {
		return nil, err
	}
	return v.Items, nil
}

// GetListAssoc returns a List's association table.
func (s *Store) GetListAssoc(idx gvalue.Index) ([]gvalue.AssocEntry, error) {
	v, err := s.expectKind(idx, gvalue.List)
	if err != nil {
		return nil, err
	}
	return v.Assoc, nil
}
