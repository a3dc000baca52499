package transfer

import (
	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
)

// additiveSpan reports whether a two-operand combination's combined
// cardinality already covers the full value space: both Add and Sub sweep
// a raw range of exactly cardA+cardB-1 distinct values as their operands
// range over the box, so this check is shared between them.
func additiveSpan(resultWidth int) AmbiguousFn {
	return func(combo []interval.Interval) bool {
		span := combo[0].Cardinality() + combo[1].Cardinality() - 1
		return span >= fullRange(resultWidth)
	}
}

// Add computes the abstract sum of two equal-width operands (spec §4.4).
func Add(a, b interval.Set) interval.Set {
	w := a.Width()
	f := func(ops []bits.Bits) (bits.Bits, bool) { return ops[0].AddWrap(ops[1]) }
	return evaluate([]interval.Set{a, b}, []Tonicity{Monotone, Monotone}, w, additiveSpan(w), f)
}

// Sub computes the abstract difference a-b. Sub is monotone in a and
// antitone in b: increasing the subtrahend never increases the result.
func Sub(a, b interval.Set) interval.Set {
	w := a.Width()
	f := func(ops []bits.Bits) (bits.Bits, bool) { return ops[0].SubWrap(ops[1]) }
	return evaluate([]interval.Set{a, b}, []Tonicity{Monotone, Antitone}, w, additiveSpan(w), f)
}

// Neg computes the abstract two's-complement negation of a, equivalent to
// Sub(Precise(0), a).
func Neg(a interval.Set) interval.Set {
	w := a.Width()
	zero := interval.Precise(bits.Zero(w))
	return Sub(zero, a)
}

// UMul computes the abstract unsigned product of two equal-width operands.
// Both operands are monotone: larger unsigned factors never produce a
// smaller unsigned product.
func UMul(a, b interval.Set) interval.Set {
	w := a.Width()
	f := func(ops []bits.Bits) (bits.Bits, bool) {
		wide := ops[0].MulWide(ops[1])
		truncated := bits.New(wide, w)
		overflow := truncated.Uint64() != wide
		return truncated, overflow
	}
	ambiguous := func(combo []interval.Interval) bool {
		span := combo[0].Hi.Uint64()*combo[1].Hi.Uint64() - combo[0].Lo.Uint64()*combo[1].Lo.Uint64() + 1
		return span >= fullRange(w)
	}
	return evaluate([]interval.Set{a, b}, []Tonicity{Monotone, Monotone}, w, ambiguous, f)
}

// UDiv computes the abstract unsigned quotient a/b. Division by zero yields
// the maximal value (spec §4.4): as the divisor shrinks toward zero the
// quotient grows without bound, so clamping to the width's maximum is the
// natural extension of UDiv's antitone trend in b rather than a special
// case the harness needs to know about.
func UDiv(a, b interval.Set) interval.Set {
	w := a.Width()
	f := func(ops []bits.Bits) (bits.Bits, bool) {
		if ops[1].IsZero() {
			return bits.MaxValue(w), false
		}
		return bits.New(ops[0].Uint64()/ops[1].Uint64(), w), false
	}
	return evaluate([]interval.Set{a, b}, []Tonicity{Monotone, Antitone}, w, nil, f)
}
