package gheap

import (
	"garnish/internal/gerrors"
	"garnish/internal/gvalue"
)

func (s *Store) StartCharList() {
	s.charListBuilders = append(s.charListBuilders, make([]rune, 0, 16))
}

func (s *Store) AddToCharList(c rune) error {
	if len(s.charListBuilders) == 0 {
		return gerrors.New(gerrors.StateInvariant, "add_to_char_list with no matching start_char_list")
	}
	i := len(s.charListBuilders) - 1
	s.charListBuilders[i] = append(s.charListBuilders[i], c)
	return nil
}

func (s *Store) EndCharList() (gvalue.Index, error) {
	if len(s.charListBuilders) == 0 {
		return 0, gerrors.New(gerrors.StateInvariant, "end_char_list with no matching start_char_list")
	}
	i := len(s.charListBuilders) - 1
	chars := s.charListBuilders[i]
	s.charListBuilders = s.charListBuilders[:i]
	return s.alloc(gvalue.Value{Kind: gvalue.CharList, Chars: chars})
}

// AddCharListFromString is a convenience allocator for hosts/tests that
// already have a complete string, skipping the incremental builder API.
func (s *Store) AddCharListFromString(str string) (gvalue.Index, error) {
	s.StartCharList()
	for _, c := range str {
		if err := s.AddToCharList(c); err != nil {
			return 0, err
		}
	}
	return s.EndCharList()
}

func (s *Store) StartByteList() {
	s.byteListBuilders = append(s.byteListBuilders, make([]byte, 0, 16))
}

func (s *Store) AddToByteList(b byte) error {
	if len(s.byteListBuilders) == 0 {
		return gerrors.New(gerrors.StateInvariant, "add_to_byte_list with no matching start_byte_list")
	}
	i := len(s.byteListBuilders) - 1
	s.byteListBuilders[i] = append(s.byteListBuilders[i], b)
	return nil
}

func (s *Store) EndByteList() (gvalue.Index, error) {
	if len(s.byteListBuilders) == 0 {
		return 0, gerrors.New(gerrors.StateInvariant, "end_byte_list with no matching start_byte_list")
	}
	i := len(s.byteListBuilders) - 1
	bytes := s.byteListBuilders[i]
	s.byteListBuilders = s.byteListBuilders[:i]
	return s.alloc(gvalue.Value{Kind: gvalue.ByteList, Bytes: bytes})
}
