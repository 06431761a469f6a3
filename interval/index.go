package interval

import (
	"fmt"
	"sort"

	store "github.com/biogo/store/interval"
)

// Index is an immutable interval tree over a list of candidate intervals.
// Queries return positions into the slice passed to NewIndex, ascending.
// Empty candidates are not indexed and are never reported.
//
// An Index is safe for concurrent queries.
type Index struct {
	tree  store.Tree
	items []Interval
}

// NewIndex builds an Index over items. The slice is copied.
//
// Errors:
//   - ErrInvalidInterval if any item is malformed (wrapped with its position).
//
// Complexity: O(n log n).
func NewIndex(items []Interval) (*Index, error) {
	x := &Index{items: append([]Interval(nil), items...)}
	for i, iv := range x.items {
		if err := Validate(iv); err != nil {
			return nil, fmt.Errorf("item %d %v: %w", i, iv, err)
		}
		if iv.Empty() {
			continue
		}
		e := entry{start: key(iv.Start), end: key(iv.End), id: uintptr(i)}
		if err := x.tree.Insert(e, false); err != nil {
			return nil, fmt.Errorf("item %d %v: %w", i, iv, err)
		}
	}

	return x, nil
}

// Len returns the number of indexed (non-empty) items.
func (x *Index) Len() int { return x.tree.Len() }

// At returns the item stored at position i of the original slice.
func (x *Index) At(i int) Interval { return x.items[i] }

// Overlapping returns the positions of items that overlap q (half-open
// semantics, as Overlaps). An empty q matches nothing.
func (x *Index) Overlapping(q Interval) []int {
	if q.Empty() {
		return nil
	}

	return x.collect(overlapQuery{start: key(q.Start), end: key(q.End)})
}

// Stab returns the positions of items whose closed range [Start, End]
// contains v. The tolerance matcher indexes ±τ windows and stabs them with
// event positions, so |event - center| <= τ is inclusive at both ends.
func (x *Index) Stab(v float64) []int {
	return x.collect(stabQuery{at: key(v)})
}

func (x *Index) collect(q store.Overlapper) []int {
	hits := x.tree.Get(q)
	if len(hits) == 0 {
		return nil
	}
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = int(h.ID())
	}
	sort.Ints(out)

	return out
}

// key adapts float64 endpoints to store.Comparable.
type key float64

func (k key) Compare(c store.Comparable) int {
	o := c.(key)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	}

	return 0
}

func bounds(r store.Range) (key, key) {
	return r.Start().(key), r.End().(key)
}

// entry is the tree element for one candidate.
type entry struct {
	start, end key
	id         uintptr
}

func (e entry) Overlap(r store.Range) bool {
	s, t := bounds(r)
	return e.end > s && e.start < t
}
func (e entry) ID() uintptr               { return e.id }
func (e entry) Start() store.Comparable   { return e.start }
func (e entry) End() store.Comparable     { return e.end }
func (e entry) NewMutable() store.Mutable { return &span{start: e.start, end: e.end} }
func (e entry) String() string            { return fmt.Sprintf("[%g,%g)#%d", e.start, e.end, e.id) }

// span is the mutable subtree range maintained by the tree.
type span struct{ start, end key }

func (s *span) Start() store.Comparable     { return s.start }
func (s *span) End() store.Comparable       { return s.end }
func (s *span) SetStart(c store.Comparable) { s.start = c.(key) }
func (s *span) SetEnd(c store.Comparable)   { s.end = c.(key) }

type overlapQuery struct{ start, end key }

func (q overlapQuery) Overlap(r store.Range) bool {
	s, t := bounds(r)
	return q.end > s && q.start < t
}

type stabQuery struct{ at key }

func (q stabQuery) Overlap(r store.Range) bool {
	s, t := bounds(r)
	return s <= q.at && q.at <= t
}
