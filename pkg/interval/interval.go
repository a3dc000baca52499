// Package interval implements closed, width-tagged unsigned bit-vector
// intervals and normalized sets of them: the representation every transfer
// function in pkg/transfer operates on (spec §3.2, §3.3, §4.1).
package interval

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/oisee/bvrange/pkg/bits"
)

// Interval is a closed range [Lo, Hi] of equal-width values. Lo > Hi is a
// valid "improper" (wrapping) interval before normalization; after
// normalization every Interval inside an IntervalSet has Lo <= Hi.
type Interval struct {
	Lo, Hi bits.Bits
}

// Width returns the interval's bit width.
func (iv Interval) Width() int { return iv.Lo.Width() }

// IsProper reports Lo <= Hi.
func (iv Interval) IsProper() bool { return iv.Lo.Less(iv.Hi) || iv.Lo.Equal(iv.Hi) }

// Contains reports whether v falls within [Lo, Hi] (proper interval only).
func (iv Interval) Contains(v bits.Bits) bool {
	return !v.Less(iv.Lo) && !iv.Hi.Less(v)
}

// Cardinality returns hi - lo + 1 as a uint64 (proper interval only).
func (iv Interval) Cardinality() uint64 {
	return iv.Hi.Uint64() - iv.Lo.Uint64() + 1
}

// adjacentOrOverlapping reports whether b starts at or before a.Hi+1, i.e.
// merging a and b (both proper, sorted by Lo) yields a single interval.
func adjacentOrOverlapping(a, b Interval) bool {
	if !a.Hi.Less(b.Lo) {
		return true // overlap
	}
	if a.Hi.IsMax() {
		return false // a.Hi+1 would wrap, never adjacent to a larger Lo
	}
	next, _ := a.Hi.AddWrap(bits.New(1, a.Width()))
	return next.Equal(b.Lo)
}

func merge(a, b Interval) Interval {
	hi := a.Hi
	if a.Hi.Less(b.Hi) {
		hi = b.Hi
	}
	return Interval{Lo: a.Lo, Hi: hi}
}

// Set is a width-tagged, normalized union of disjoint, non-adjacent,
// proper intervals sorted ascending by Lo (spec §3.3, §4.1).
type Set struct {
	width     int
	intervals []Interval
}

func checkSetWidth(a, b Set) {
	if a.width != b.width {
		panic(fmt.Sprintf("interval: width mismatch %d != %d", a.width, b.width))
	}
}

// Width returns the set's bit width.
func (s Set) Width() int { return s.width }

// Intervals returns the normalized component intervals, in ascending order.
// The returned slice must not be mutated by the caller.
func (s Set) Intervals() []Interval { return s.intervals }

// NumberOfIntervals returns the count of disjoint component intervals.
func (s Set) NumberOfIntervals() int { return len(s.intervals) }

// Empty returns the empty set of the given width.
func Empty(width int) Set { return Set{width: width} }

// Maximal returns the full range [0, 2^width - 1] as a single interval.
func Maximal(width int) Set {
	return Set{width: width, intervals: []Interval{{Lo: bits.Zero(width), Hi: bits.MaxValue(width)}}}
}

// Precise returns the singleton set {v}.
func Precise(v bits.Bits) Set {
	return Set{width: v.Width(), intervals: []Interval{{Lo: v, Hi: v}}}
}

// NonZero returns every value in [1, 2^width-1] (spec §3.3's named canonical form).
func NonZero(width int) Set {
	if width == 0 {
		return Empty(width)
	}
	one := bits.New(1, width)
	if one.Equal(bits.MaxValue(width)) {
		return Precise(one)
	}
	return Set{width: width, intervals: []Interval{{Lo: one, Hi: bits.MaxValue(width)}}}
}

// FromInterval builds a normalized Set from a single (possibly improper,
// i.e. wrapping) interval, splitting it at the wraparound point per
// normalize's rule (spec §4.1 step 1).
func FromInterval(lo, hi bits.Bits) Set {
	if lo.Width() != hi.Width() {
		panic(fmt.Sprintf("interval: width mismatch %d != %d", lo.Width(), hi.Width()))
	}
	w := lo.Width()
	if !lo.Less(hi) && !lo.Equal(hi) {
		// improper: lo > hi, splits into [lo, max] U [0, hi]
		return normalize(w, []Interval{
			{Lo: lo, Hi: bits.MaxValue(w)},
			{Lo: bits.Zero(w), Hi: hi},
		})
	}
	return normalize(w, []Interval{{Lo: lo, Hi: hi}})
}

// FromIntervals builds a normalized Set from an arbitrary (possibly
// overlapping, improper, unsorted) list of same-width raw intervals.
func FromIntervals(width int, raw []Interval) Set {
	var split []Interval
	for _, iv := range raw {
		if iv.Lo.Width() != width || iv.Hi.Width() != width {
			panic("interval: component width mismatch")
		}
		if !iv.Lo.Less(iv.Hi) && !iv.Lo.Equal(iv.Hi) {
			split = append(split,
				Interval{Lo: iv.Lo, Hi: bits.MaxValue(width)},
				Interval{Lo: bits.Zero(width), Hi: iv.Hi},
			)
		} else {
			split = append(split, iv)
		}
	}
	return normalize(width, split)
}

// normalize sorts the given proper intervals by Lo and sweep-merges any
// that overlap or are adjacent, dropping none (an empty input yields the
// empty set) — spec §4.1.
func normalize(width int, raw []Interval) Set {
	if len(raw) == 0 {
		return Set{width: width}
	}
	sorted := make([]Interval, len(raw))
	copy(sorted, raw)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Lo.Less(sorted[j].Lo)
	})

	out := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := out[len(out)-1]
		if adjacentOrOverlapping(last, cur) {
			out[len(out)-1] = merge(last, cur)
		} else {
			out = append(out, cur)
		}
	}
	return Set{width: width, intervals: out}
}

// IsEmpty reports whether the set has no intervals.
func (s Set) IsEmpty() bool { return len(s.intervals) == 0 }

// IsPrecise reports whether the set is a single exact value.
func (s Set) IsPrecise() bool {
	return len(s.intervals) == 1 && s.intervals[0].Lo.Equal(s.intervals[0].Hi)
}

// PreciseValue returns the single value and true if IsPrecise, else the
// zero value and false.
func (s Set) PreciseValue() (bits.Bits, bool) {
	if !s.IsPrecise() {
		return bits.Bits{}, false
	}
	return s.intervals[0].Lo, true
}

// CoversZero reports whether 0 is a member of the set.
func (s Set) CoversZero() bool {
	if s.width == 0 {
		return len(s.intervals) > 0
	}
	zero := bits.Zero(s.width)
	for _, iv := range s.intervals {
		if iv.Contains(zero) {
			return true
		}
	}
	return false
}

// CoversMax reports whether 2^width-1 is a member of the set.
func (s Set) CoversMax() bool {
	max := bits.MaxValue(s.width)
	for _, iv := range s.intervals {
		if iv.Contains(max) {
			return true
		}
	}
	return false
}

// LowerBound returns the minimum value in the set (panics if empty).
func (s Set) LowerBound() bits.Bits {
	if s.IsEmpty() {
		panic("interval: LowerBound of empty set")
	}
	return s.intervals[0].Lo
}

// UpperBound returns the maximum value in the set (panics if empty).
func (s Set) UpperBound() bits.Bits {
	if s.IsEmpty() {
		panic("interval: UpperBound of empty set")
	}
	return s.intervals[len(s.intervals)-1].Hi
}

// ConvexHull returns the smallest single interval containing every member,
// i.e. [LowerBound, UpperBound], as a one-interval Set. Empty input yields
// the empty set.
func (s Set) ConvexHull() Set {
	if s.IsEmpty() {
		return s
	}
	return Set{width: s.width, intervals: []Interval{{Lo: s.LowerBound(), Hi: s.UpperBound()}}}
}

// Contains reports whether v is a member of the set.
func (s Set) Contains(v bits.Bits) bool {
	for _, iv := range s.intervals {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

// Combine returns the union of a and b (spec §3.3 set algebra).
func Combine(a, b Set) Set {
	checkSetWidth(a, b)
	merged := append(append([]Interval{}, a.intervals...), b.intervals...)
	return normalize(a.width, merged)
}

// Intersect returns the intersection of a and b.
func Intersect(a, b Set) Set {
	checkSetWidth(a, b)
	var out []Interval
	for _, x := range a.intervals {
		for _, y := range b.intervals {
			lo := x.Lo
			if x.Lo.Less(y.Lo) {
				lo = y.Lo
			}
			hi := x.Hi
			if y.Hi.Less(x.Hi) {
				hi = y.Hi
			}
			if !lo.Less(hi) && !lo.Equal(hi) {
				continue // lo > hi: no overlap
			}
			out = append(out, Interval{Lo: lo, Hi: hi})
		}
	}
	return normalize(a.width, out)
}

// Disjoint reports whether a and b share no members.
func Disjoint(a, b Set) bool {
	return Intersect(a, b).IsEmpty()
}

// Map applies f to every component interval and normalizes the result,
// using lo.Map the way the teacher's result accumulators transform
// collected rows before reporting them.
func Map(s Set, f func(Interval) Interval) Set {
	mapped := lo.Map(s.intervals, func(iv Interval, _ int) Interval { return f(iv) })
	return normalize(s.width, mapped)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s]", iv.Lo, iv.Hi)
}

func (s Set) String() string {
	if s.IsEmpty() {
		return "{}"
	}
	out := ""
	for i, iv := range s.intervals {
		if i > 0 {
			out += " U "
		}
		out += iv.String()
	}
	return out
}
