package symbol

import "fmt"

// Insertion records symbols to insert before position Index of an original
// set. Index equal to the set's length appends after its last symbol.
type Insertion struct {
	Index int
	Names []string
}

// InsertionMap lists the insertions, in ascending Index order, that extend
// one original set to a merged set.
type InsertionMap []Insertion

// Count returns the total number of symbols the map inserts.
func (m InsertionMap) Count() int {
	n := 0
	for _, ins := range m {
		n += len(ins.Names)
	}
	return n
}

// Validate checks that the map applies to a set of setLen symbols: indexes
// ascend strictly within [0, setLen] and every insertion carries names.
func (m InsertionMap) Validate(setLen int) error {
	prev := -1
	for _, ins := range m {
		if ins.Index < 0 || ins.Index > setLen {
			return fmt.Errorf("insertion index %d out of range [0, %d]", ins.Index, setLen)
		}
		if ins.Index <= prev {
			return fmt.Errorf("insertion index %d repeats or descends", ins.Index)
		}
		if len(ins.Names) == 0 {
			return fmt.Errorf("insertion at index %d has no names", ins.Index)
		}
		prev = ins.Index
	}
	return nil
}

// Merge unites two sets and describes, for each side, which symbols must be
// inserted where to reach the union. A nil map means that side already
// equals the union.
func Merge(a, b Set) (Set, InsertionMap, InsertionMap) {
	merged := a.Union(b)
	return merged, insertions(a, merged), insertions(b, merged)
}

// insertions walks the merged names against s and groups the missing ones
// by the original position they precede. Pending names flush when the next
// shared symbol is reached, so each group lands before the right slot.
func insertions(s, merged Set) InsertionMap {
	var m InsertionMap
	var pending []string
	i := 0
	for _, name := range merged.names {
		if i < len(s.names) && s.names[i] == name {
			if len(pending) > 0 {
				m = append(m, Insertion{Index: i, Names: pending})
				pending = nil
			}
			i++
			continue
		}
		pending = append(pending, name)
	}
	if len(pending) > 0 {
		m = append(m, Insertion{Index: len(s.names), Names: pending})
	}
	return m
}
