// Package gheap implements the Data Store (spec §4.1): the typed value
// heap plus the five control stacks (register, value, instruction,
// jump table, jump path). Every cross-value reference is a gvalue.Index
// into this store; the store is the sole owner of every value for the
// lifetime of a run (spec §3.3).
package gheap

import (
	"github.com/kr/pretty"

	"garnish/internal/gcode"
	"garnish/internal/gerrors"
	"garnish/internal/gvalue"
)

// Fixed addresses for the sole Unit/False/True instances (spec §3.1).
const (
	UnitIndex  gvalue.Index = 0
	FalseIndex gvalue.Index = 1
	TrueIndex  gvalue.Index = 2
)

// Store owns every allocated Value plus the VM's control stacks. It has
// no notion of a "current run" boundary beyond what the caller imposes:
// per spec §3.3 it may be reset or retained wholesale between runs.
type Store struct {
	values []gvalue.Value
	names  map[uint64]string

	numberCache map[gvalue.Number]gvalue.Index
	charCache   map[rune]gvalue.Index
	byteCache   map[byte]gvalue.Index
	symbolCache map[uint64]gvalue.Index
	typeCache   map[gvalue.Kind]gvalue.Index

	registers  []int // operand indices for the next opcode; -1 is a frame marker
	valueStack []gvalue.Index

	instructions []gcode.Instruction
	jumpTable    []int

	jumpPath []int // return addresses, one per outstanding Apply(Expression)

	cursor int // instruction cursor

	listBuilders     []*listBuilder
	charListBuilders [][]rune
	byteListBuilders [][]byte

	// MaxValues, when non-zero, is the soft allocation bound from spec §5
	// ("Implementations may impose a soft upper bound and return an
	// allocation error"). Zero means unbounded.
	MaxValues int
}

// New returns a Store pre-seeded with the Unit/False/True singletons at
// their fixed addresses.
func New() *Store {
	s := &Store{
		values:      make([]gvalue.Value, 0, 64),
		names:       make(map[uint64]string),
		numberCache: make(map[gvalue.Number]gvalue.Index),
		charCache:   make(map[rune]gvalue.Index),
		byteCache:   make(map[byte]gvalue.Index),
		symbolCache: make(map[uint64]gvalue.Index),
		typeCache:   make(map[gvalue.Kind]gvalue.Index),
	}
	s.values = append(s.values, gvalue.Value{Kind: gvalue.Unit})
	s.values = append(s.values, gvalue.Value{Kind: gvalue.False})
	s.values = append(s.values, gvalue.Value{Kind: gvalue.True})
	return s
}

// Len reports how many values are allocated, including the three
// singletons.
func (s *Store) Len() int { return len(s.values) }

func (s *Store) alloc(v gvalue.Value) (gvalue.Index, error) {
	if s.MaxValues > 0 && len(s.values) >= s.MaxValues {
		return 0, gerrors.Newf(gerrors.Overflow, "heap exhausted: soft bound of %d values reached", s.MaxValues)
	}
	idx := gvalue.Index(len(s.values))
	s.values = append(s.values, v)
	return idx, nil
}

// Get returns the raw Value at idx, failing if idx is out of range.
func (s *Store) Get(idx gvalue.Index) (gvalue.Value, error) {
	if idx < 0 || int(idx) >= len(s.values) {
		return gvalue.Value{}, gerrors.Newf(gerrors.DataAccess, "index %d out of bounds (heap len %d)", idx, len(s.values))
	}
	return s.values[idx], nil
}

// Kind returns the Kind of the value at idx (get_data_type in spec §8's
// universal invariant).
func (s *Store) Kind(idx gvalue.Index) (gvalue.Kind, error) {
	v, err := s.Get(idx)
	if err != nil {
		return 0, err
	}
	return v.Kind, nil
}

// expectKind is the shared helper behind every typed accessor: DataAccess
// error naming actual vs. expected kind (spec §4.1).
func (s *Store) expectKind(idx gvalue.Index, want gvalue.Kind) (gvalue.Value, error) {
	v, err := s.Get(idx)
	if err != nil {
		return gvalue.Value{}, err
	}
	if v.Kind != want {
		return gvalue.Value{}, gerrors.Newf(gerrors.DataAccess, "expected %s at index %d, got %s", want, idx, v.Kind)
	}
	return v, nil
}

// DumpMismatch renders two values with github.com/kr/pretty for test
// failure messages (SPEC_FULL.md §10 ambient test tooling). Never called
// from core control flow.
func DumpMismatch(label string, want, got gvalue.Value) string {
	return label + ": " + pretty.Sprint(want) + " != " + pretty.Sprint(got)
}
