package gheap

import "hash/fnv"

// HashName is the canonical Symbol-hash function: a 64-bit FNV-1a digest
// of name. Grounded on pack sibling funvibe-funxy's globals_map.go, which
// reaches for hash/fnv for exactly this purpose (hashing string keys for
// a VM's global/variable table). Used both to intern Symbol values and to
// key CharList entries into a List's association table, so a Symbol and
// a CharList spelling the same name land in the same table slot (spec
// §4.4: Access accepts Symbol or CharList interchangeably).
func HashName(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}
