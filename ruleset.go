package rrule

import "container/heap"

// Rule-set composition (spec C7): combining several inclusion sources
// (RRULEs and a literal RDATE list) into one deduplicated, ascending
// stream, then subtracting exclusion sources (EXRULEs and a literal EXDATE
// list) from it.
//
// None of the example repos implement a ruleset composer directly — the
// teacher is a single-RRULE library — so this is built from the spec's own
// description (§4.7), in the teacher's lazy pull-based idiom and using
// container/heap the way a min-heap merge of sorted streams is
// conventionally done in Go, rather than python-dateutil's eager
// sort-then-merge rruleset.

// occurrenceStream is implemented by anything that can be pulled for a
// monotonically increasing sequence of ZonedInstants: ruleIterator (one
// RRULE or EXRULE), dateListStream (a literal RDATE/EXDATE list), and
// composedStream itself (so rule-sets can nest, if ever needed).
type occurrenceStream interface {
	Next() (ZonedInstant, bool, error)
}

// dateListStream adapts a literal, explicitly enumerated instant set
// (RDATE/EXDATE) to occurrenceStream, sorted ascending once at
// construction so it can be merged like any other stream.
type dateListStream struct {
	dates []ZonedInstant
	idx   int
}

func newDateListStream(dates []ZonedInstant) *dateListStream {
	sorted := append([]ZonedInstant(nil), dates...)
	sortInstants(sorted)
	return &dateListStream{dates: sorted}
}

func (s *dateListStream) Next() (ZonedInstant, bool, error) {
	if s.idx >= len(s.dates) {
		return ZonedInstant{}, false, nil
	}
	z := s.dates[s.idx]
	s.idx++
	return z, true, nil
}

func sortInstants(zs []ZonedInstant) {
	for i := 1; i < len(zs); i++ {
		for j := i; j > 0 && zs[j].Before(zs[j-1]); j-- {
			zs[j], zs[j-1] = zs[j-1], zs[j]
		}
	}
}

// RuleSetValue composes zero or more recurrence rules and literal dates
// into a single occurrence sequence (spec §4.7): the union of every
// inclusion rule's expansion and the literal inclusion dates, minus the
// union of every exclusion rule's expansion and the literal exclusion
// dates.
type RuleSetValue struct {
	IncludeRules []*RuleValue
	IncludeDates []ZonedInstant
	ExcludeRules []*RuleValue
	ExcludeDates []ZonedInstant
}

// streamItem is one inclusion stream's current head, ordered into a
// min-heap by that head's value.
type streamItem struct {
	stream occurrenceStream
	value  ZonedInstant
}

type streamHeap []*streamItem

func (h streamHeap) Len() int           { return len(h) }
func (h streamHeap) Less(i, j int) bool { return h[i].value.Before(h[j].value) }
func (h streamHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *streamHeap) Push(x any)        { *h = append(*h, x.(*streamItem)) }
func (h *streamHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// exclusionCursor lazily advances one exclusion stream so composedStream
// can test membership without re-pulling values it has already passed —
// exclusion streams are monotonic, so a value once left behind can never
// recur.
type exclusionCursor struct {
	stream occurrenceStream
	cur    ZonedInstant
	ok     bool
}

func newExclusionCursor(s occurrenceStream) (*exclusionCursor, error) {
	c := &exclusionCursor{stream: s}
	err := c.advance()
	return c, err
}

func (c *exclusionCursor) advance() error {
	v, ok, err := c.stream.Next()
	c.cur, c.ok = v, ok
	return err
}

// excludes advances c past every value strictly before t, then reports
// whether its head now equals t.
func (c *exclusionCursor) excludes(t ZonedInstant) (bool, error) {
	for c.ok && c.cur.Before(t) {
		if err := c.advance(); err != nil {
			return false, err
		}
	}
	return c.ok && c.cur.Equal(t), nil
}

// composedStream is the live occurrenceStream behind a RuleSetValue: a
// min-heap merge of every inclusion source (deduping an instant named by
// more than one source down to a single emission), filtered through the
// exclusion cursors.
type composedStream struct {
	heap       streamHeap
	exclusions []*exclusionCursor
}

func newComposedStream(rs *RuleSetValue) (*composedStream, error) {
	cs := &composedStream{}
	for _, rv := range rs.IncludeRules {
		if err := cs.pushInitial(newRuleIterator(rv)); err != nil {
			return nil, err
		}
	}
	if len(rs.IncludeDates) > 0 {
		if err := cs.pushInitial(newDateListStream(rs.IncludeDates)); err != nil {
			return nil, err
		}
	}
	heap.Init(&cs.heap)

	for _, rv := range rs.ExcludeRules {
		ec, err := newExclusionCursor(newRuleIterator(rv))
		if err != nil {
			return nil, err
		}
		cs.exclusions = append(cs.exclusions, ec)
	}
	if len(rs.ExcludeDates) > 0 {
		ec, err := newExclusionCursor(newDateListStream(rs.ExcludeDates))
		if err != nil {
			return nil, err
		}
		cs.exclusions = append(cs.exclusions, ec)
	}
	return cs, nil
}

func (cs *composedStream) pushInitial(s occurrenceStream) error {
	v, ok, err := s.Next()
	if err != nil {
		return err
	}
	if ok {
		cs.heap = append(cs.heap, &streamItem{stream: s, value: v})
	}
	return nil
}

// Next returns the next included, non-excluded instant, or ok=false once
// every inclusion stream is exhausted.
func (cs *composedStream) Next() (ZonedInstant, bool, error) {
	for cs.heap.Len() > 0 {
		v := cs.heap[0].value

		// Pop and re-push every stream currently sitting on v, so the same
		// instant named by two inclusion sources is emitted once.
		for cs.heap.Len() > 0 && cs.heap[0].value.Equal(v) {
			item := heap.Pop(&cs.heap).(*streamItem)
			nv, ok, err := item.stream.Next()
			if err != nil {
				return ZonedInstant{}, false, err
			}
			if ok {
				item.value = nv
				heap.Push(&cs.heap, item)
			}
		}

		excluded := false
		for _, ex := range cs.exclusions {
			hit, err := ex.excludes(v)
			if err != nil {
				return ZonedInstant{}, false, err
			}
			excluded = excluded || hit
		}
		if excluded {
			continue
		}
		return v, true, nil
	}
	return ZonedInstant{}, false, nil
}
