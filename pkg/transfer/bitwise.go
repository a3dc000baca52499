package transfer

import (
	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/bridge"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/ternary"
)

// bitwiseIntervalBudget bounds how many component intervals a bitwise
// result is allowed to expand into before bridge.FromTernary falls back to
// a single convex-hull interval (spec §4.2, §4.6).
const bitwiseIntervalBudget = 8

// And, Or, Xor, and Not go through the ternary bridge (spec §4.6): extract
// the tightest known-bit pattern each operand admits, evaluate the
// per-bit lattice operator, then re-expand to an interval set.
func And(a, b interval.Set) interval.Set {
	return viaTernary2(a, b, ternary.And)
}

func Or(a, b interval.Set) interval.Set {
	return viaTernary2(a, b, ternary.Or)
}

func Xor(a, b interval.Set) interval.Set {
	return viaTernary2(a, b, ternary.Xor)
}

func Not(a interval.Set) interval.Set {
	v := bridge.ExtractTernary(a)
	return bridge.FromTernary(ternary.Not(v), bitwiseIntervalBudget)
}

func viaTernary2(a, b interval.Set, op func(ternary.Vector, ternary.Vector) ternary.Vector) interval.Set {
	va := bridge.ExtractTernary(a)
	vb := bridge.ExtractTernary(b)
	return bridge.FromTernary(op(va, vb), bitwiseIntervalBudget)
}

// AndReduce collapses every bit of a to their logical AND: the result is 1
// only if every member of a is the all-ones value (spec §4.7).
func AndReduce(a interval.Set) interval.Set {
	if a.IsEmpty() {
		return interval.Empty(1)
	}
	if a.IsPrecise() {
		v, _ := a.PreciseValue()
		return precise01(v.IsMax())
	}
	if !a.CoversMax() {
		return precise01(false)
	}
	return interval.Maximal(1)
}

// OrReduce collapses every bit of a to their logical OR: the result is 0
// only if every member of a is zero (spec §4.7).
func OrReduce(a interval.Set) interval.Set {
	if a.IsEmpty() {
		return interval.Empty(1)
	}
	if a.IsPrecise() {
		v, _ := a.PreciseValue()
		return precise01(!v.IsZero())
	}
	if !a.CoversZero() {
		return precise01(true)
	}
	return interval.Maximal(1)
}

// XorReduce collapses every bit of a to their parity. Parity has no
// monotonic structure over a range, but it's still decidable whenever every
// member a can take is individually pinned down: if every component
// interval is a singleton and they all share the same parity, that parity
// is the answer; any wider interval, or singletons disagreeing in parity,
// is reported as ambiguous (spec §4.7).
func XorReduce(a interval.Set) interval.Set {
	if a.IsEmpty() {
		return interval.Empty(1)
	}
	ivs := a.Intervals()
	parity := ivs[0].Lo.PopCount() % 2
	for _, iv := range ivs {
		if !iv.Lo.Equal(iv.Hi) || iv.Lo.PopCount()%2 != parity {
			return interval.Maximal(1)
		}
	}
	return precise01(parity == 1)
}

func precise01(bit bool) interval.Set {
	if bit {
		return interval.Precise(bits.New(1, 1))
	}
	return interval.Precise(bits.New(0, 1))
}
