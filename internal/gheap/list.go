package gheap

import (
	"garnish/internal/gerrors"
	"garnish/internal/gvalue"
)

// listBuilder accumulates items for an in-progress List (spec §4.1:
// "A list under construction is considered not-yet-observable").
type listBuilder struct {
	items      []gvalue.Index
	assocHash  []uint64 // parallel to items; only meaningful where isAssoc is true
	isAssoc    []bool
}

// StartList begins an incremental list build. lenHint is a capacity
// hint only.
func (s *Store) StartList(lenHint int) {
	s.listBuilders = append(s.listBuilders, &listBuilder{
		items:   make([]gvalue.Index, 0, lenHint),
		isAssoc: make([]bool, 0, lenHint),
		assocHash: make([]uint64, 0, lenHint),
	})
}

// currentListBuilder fails with StateInvariant if no StartList is open,
// matching spec's "list-builder method called without a matching start".
func (s *Store) currentListBuilder() (*listBuilder, error) {
	if len(s.listBuilders) == 0 {
		return nil, gerrors.New(gerrors.StateInvariant, "add_to_list/end_list with no matching start_list")
	}
	return s.listBuilders[len(s.listBuilders)-1], nil
}

// AddToList appends an item to the innermost open list build. isAssociative
// is the caller's explicit declaration (spec §4.1 add_to_list(index,
// is_associative)); hash is only consulted when isAssociative is true and
// is the item's association-table key hash (see AssocHashOf).
func (s *Store) AddToList(item gvalue.Index, isAssociative bool, hash uint64) error {
	b, err := s.currentListBuilder()
	if err != nil {
		return err
	}
	b.items = append(b.items, item)
	b.isAssoc = append(b.isAssoc, isAssociative)
	b.assocHash = append(b.assocHash, hash)
	return nil
}

// AssocHashOf inspects item and returns (hash, true) when it is a Pair
// whose left is a Symbol or CharList (spec §3.2's association rule),
// else (0, false). This is the automatic-detection path used by the
// MakeList opcode handler; callers building a list from already-known
// key/value pairs may instead pass is_associative/hash explicitly to
// AddToList.
func (s *Store) AssocHashOf(item gvalue.Index) (uint64, bool) {
	v, err := s.Get(item)
	if err != nil || v.Kind != gvalue.Pair {
		return 0, false
	}
	left, err := s.Get(v.Left)
	if err != nil {
		return 0, false
	}
	switch left.Kind {
	case gvalue.Symbol:
		return left.Symbol, true
	case gvalue.CharList:
		return HashName(string(left.Chars)), true
	default:
		return 0, false
	}
}

// EndList closes the innermost open list build, rehashes associative
// items into canonical open-addressed probe order (spec §3.2), and
// allocates the List value.
func (s *Store) EndList() (gvalue.Index, error) {
	if len(s.listBuilders) == 0 {
		return 0, gerrors.New(gerrors.StateInvariant, "end_list with no matching start_list")
	}
	b := s.listBuilders[len(s.listBuilders)-1]
	s.listBuilders = s.listBuilders[:len(s.listBuilders)-1]

	assocCount := 0
	for _, a := range b.isAssoc {
		if a {
			assocCount++
		}
	}
	table := make([]gvalue.AssocEntry, assocCount)
	if assocCount > 0 {
		for i, isAssoc := range b.isAssoc {
			if !isAssoc {
				continue
			}
			hash := b.assocHash[i]
			home := int(hash % uint64(assocCount))
			for probe := 0; probe < assocCount; probe++ {
				slot := (home + probe) % assocCount
				if !table[slot].Used {
					table[slot] = gvalue.AssocEntry{Used: true, Hash: hash, ItemIdx: i, ItemAddr: b.items[i]}
					break
				}
			}
		}
	}

	return s.alloc(gvalue.Value{Kind: gvalue.List, Items: append([]gvalue.Index(nil), b.items...), Assoc: table})
}

// LookupAssoc probes a List's association table for hash, returning the
// paired item's Pair.Right index on hit (spec §3.2 "first-inserted wins").
func (s *Store) LookupAssoc(listIdx gvalue.Index, hash uint64) (gvalue.Index, bool, error) {
	assoc, err := s.GetListAssoc(listIdx)
	if err != nil {
		return 0, false, err
	}
	n := len(assoc)
	if n == 0 {
		return 0, false, nil
	}
	home := int(hash % uint64(n))
	for probe := 0; probe < n; probe++ {
		slot := (home + probe) % n
		entry := assoc[slot]
		if !entry.Used {
			return 0, false, nil
		}
		if entry.Hash == hash {
			v, err := s.Get(entry.ItemAddr)
			if err != nil {
				return 0, false, err
			}
			return v.Right, true, nil
		}
	}
	return 0, false, nil
}
