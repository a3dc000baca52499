// Package bridge converts between interval.Set and ternary.Vector: the two
// abstractions need each other wherever bitwise operations meet
// interval-shaped operands (spec §4.2). It depends on both pkg/interval and
// pkg/ternary, which is why the conversion logic doesn't live in either
// leaf package.
package bridge

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/ternary"
)

// commonPrefix returns the ternary vector describing every bit position
// that agrees across the closed range [lo, hi]: walk msb to lsb, and once a
// bit differs between lo and hi, every remaining (lower) bit is unknown,
// because the range necessarily spans every filling of those lower bits.
func commonPrefix(lo, hi bits.Bits) ternary.Vector {
	w := lo.Width()
	v := ternary.New(w)
	diverged := false
	for i := 0; i < w; i++ {
		bitPos := w - 1 - i
		if diverged {
			continue // stays Top
		}
		lb, hb := lo.Bit(bitPos), hi.Bit(bitPos)
		switch {
		case lb == hb:
			val := ternary.Zero
			if lb {
				val = ternary.One
			}
			v = v.WithBit(i, val)
		default:
			diverged = true
		}
	}
	return v
}

// ExtractTernary computes the tightest ternary.Vector that over-approximates
// every member of s by folding each component interval's bit-common-prefix
// vector: a bit stays known only where every component knows it with the
// same value, and is Top otherwise (spec §4.2). An empty set has no
// members to constrain anything, so it yields the fully-unknown vector,
// matching the convention that Empty never asserts false information.
func ExtractTernary(s interval.Set) ternary.Vector {
	w := s.Width()
	ivs := s.Intervals()
	if len(ivs) == 0 {
		return ternary.New(w)
	}
	prefixes := lo.Map(ivs, func(iv interval.Interval, _ int) ternary.Vector {
		return commonPrefix(iv.Lo, iv.Hi)
	})
	return lo.Reduce(prefixes[1:], func(acc ternary.Vector, v ternary.Vector, _ int) ternary.Vector {
		// Top on either side, or two different known values, leaves the bit
		// Top: a component that leaves a bit free admits both fillings.
		for i := 0; i < acc.Width(); i++ {
			if acc.Bit(i) != v.Bit(i) {
				acc = acc.WithBit(i, ternary.Top)
			}
		}
		return acc
	}, prefixes[0])
}

// FromTernary expands a ternary.Vector into the interval.Set of every
// concrete value it admits, provided the result fits in at most maxIntervals
// component intervals (spec §4.2). Exceeding the budget falls back to the
// convex hull: [min filling, max filling], which is always sound (a single
// interval can only be a looser over-approximation, never a tighter one).
//
// maxIntervals must be >= 0. A zero budget can only be honored when v is
// fully known (Empty is never a valid conversion target here, since every
// ternary vector admits at least one concrete filling).
func FromTernary(v ternary.Vector, maxIntervals int) interval.Set {
	if maxIntervals < 0 {
		panic(fmt.Sprintf("bridge: negative interval budget %d", maxIntervals))
	}
	w := v.Width()
	if v.IsFullyKnown() {
		val := bits.New(v.ToKnownBitsValue(), w)
		return interval.Precise(val)
	}
	if maxIntervals == 0 {
		panic("bridge: zero interval budget cannot represent an unknown bit")
	}

	unknown := v.NumUnknown()
	if unknown > 30 {
		// enumerating 2^unknown concrete values is infeasible; the budget is
		// certainly exceeded, so go straight to the hull.
		return hull(v)
	}

	vals := ternary.AllBitsValues(v)
	count := uint64(1) << uint(unknown)
	if count > uint64(maxIntervals) {
		return hull(v)
	}
	raw := lo.Map(vals, func(val uint64, _ int) interval.Interval {
		bv := bits.New(val, w)
		return interval.Interval{Lo: bv, Hi: bv}
	})
	s := interval.FromIntervals(w, raw)
	if s.NumberOfIntervals() > maxIntervals {
		return hull(v)
	}
	return s
}

func hull(v ternary.Vector) interval.Set {
	w := v.Width()
	kb := ternary.ExtractKnownBits(v)
	minVal := bits.New(kb.KnownValues, w)
	maxVal := bits.New(kb.KnownValues|(^kb.KnownMask&maskFor(w)), w)
	return interval.FromInterval(minVal, maxVal)
}

func maskFor(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(w)) - 1
}
