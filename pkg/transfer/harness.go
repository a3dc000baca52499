// Package transfer implements the abstract transfer functions over
// interval.Set operands: arithmetic, bitwise, comparison, and structural
// (extend/truncate/concat) operations used by a compiler middle-end to
// propagate value ranges through an IR (spec §4.4-§4.9).
//
// Most operations share one shape: evaluate a scalar function at the
// corners of each operand's component intervals and classify what happens
// at the boundary. harness.go implements that shared machinery; the other
// files in this package supply the per-operation scalar functions and
// tonicity tags, the way pkg/inst/catalog.go in the teacher keeps one
// opcode-metadata table that every instruction-level routine consults.
package transfer

import (
	"github.com/samber/lo"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/minimize"
)

// Tonicity describes how a scalar function responds to increasing one
// operand while holding the others fixed.
type Tonicity int

const (
	Monotone Tonicity = iota // increasing the operand never decreases the result
	Antitone                 // increasing the operand never increases the result
)

// maxComponentsPerOperand bounds how many component intervals of any one
// operand the harness will expand before the Cartesian product over
// operands becomes unaffordable. Operands with more components are first
// reduced with minimize.MinimizeIntervals, trading precision for a bounded
// enumeration — mirroring the teacher's search.Config.MaxSequenceLength cap
// on combinatorial blow-up.
const maxComponentsPerOperand = 4

// ScalarFn evaluates the underlying operation at one concrete corner,
// returning the truncated (width-wrapped) result and whether the true,
// unbounded result fell outside the representable range at that corner.
type ScalarFn func(operands []bits.Bits) (bits.Bits, bool)

// AmbiguousFn reports whether one tuple of component intervals certainly
// covers the entire result range regardless of where its corners land —
// e.g. two operands whose combined span already exceeds 2^resultWidth. A
// two-corner overflow check alone can't see this: if both corners happen to
// land on the same side of the wrap, neither looks "overflowed" even though
// the interior sweeps across the whole value space one or more times. Pass
// nil for operations (like UDiv) that never wrap at all.
type AmbiguousFn func(combo []interval.Interval) bool

// fullRange returns 2^w as a uint64, or the all-ones sentinel for w=64
// (practically unreachable by any realistic cardinality sum, matching the
// same w>=64 special case bits.mask already makes).
func fullRange(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return uint64(1) << uint(w)
}

// evaluate runs the corner-enumeration harness described in spec §4.4: for
// every combination of component intervals (one per operand), first check
// whether the combination is unconditionally ambiguous, then otherwise
// evaluate f at the two corners implied by each operand's tonicity. The
// corners' overflow flags are not consulted; the pair is expressed with
// interval.FromInterval, which already knows how to split a one-sided
// wraparound into two pieces (see evalCorners).
func evaluate(operands []interval.Set, tonicities []Tonicity, resultWidth int, ambiguous AmbiguousFn, f ScalarFn) interval.Set {
	n := len(operands)
	components := make([][]interval.Interval, n)
	for i, op := range operands {
		reduced := op
		if reduced.NumberOfIntervals() > maxComponentsPerOperand {
			reduced = minimize.MinimizeIntervals(reduced, maxComponentsPerOperand)
		}
		components[i] = reduced.Intervals()
		if len(components[i]) == 0 {
			return interval.Empty(resultWidth) // any empty operand makes the whole result unreachable
		}
	}

	result := interval.Empty(resultWidth)
	combo := make([]interval.Interval, n)
	var recur func(pos int)
	recur = func(pos int) {
		if pos == n {
			if ambiguous != nil && ambiguous(combo) {
				result = interval.Combine(result, interval.Maximal(resultWidth))
				return
			}
			result = interval.Combine(result, evalCorners(combo, tonicities, resultWidth, f))
			return
		}
		for _, iv := range components[pos] {
			combo[pos] = iv
			recur(pos + 1)
		}
	}
	recur(0)
	return result
}

// evalCorners computes the low/high corner inputs for one tuple of
// component intervals and classifies the resulting pair (spec §4.4 steps
// 3-4).
//
// Overflowing at a corner only means the scalar result wrapped mod 2^w; it
// does not by itself mean the pair is ambiguous. The AmbiguousFn passed
// into evaluate already rules out combinations whose true (un-truncated)
// span reaches a full 2^resultWidth before evalCorners ever runs, and the
// harness's tonicity contract guarantees the true low/high results are
// ordered (true_low <= true_high). Under those two guarantees, wrapping
// mod 2^w preserves that order whether neither, one, or both corners
// overflowed: spec §8.4 scenario S2 is exactly the both-overflow case
// (Sub([10..12],[20..25])._8: both corners borrow, 241<=248, so the tight
// result [241,248] is correct, not Maximal). FromInterval's own
// improper-interval handling already does the right thing either way:
// lowVal<=highVal yields a plain interval, lowVal>highVal (the one-sided
// overflow shape) yields the wraparound split.
func evalCorners(combo []interval.Interval, tonicities []Tonicity, resultWidth int, f ScalarFn) interval.Set {
	n := len(combo)
	lowInputs := make([]bits.Bits, n)
	highInputs := make([]bits.Bits, n)
	for i, iv := range combo {
		if tonicities[i] == Monotone {
			lowInputs[i] = iv.Lo
			highInputs[i] = iv.Hi
		} else {
			lowInputs[i] = iv.Hi
			highInputs[i] = iv.Lo
		}
	}

	lowVal, _ := f(lowInputs)
	highVal, _ := f(highInputs)
	return interval.FromInterval(lowVal, highVal)
}

// minimizedComponents is exposed for operations (like Concat) that need the
// per-operand component breakdown directly instead of going through the
// corner harness.
func minimizedComponents(s interval.Set) []interval.Interval {
	reduced := s
	if reduced.NumberOfIntervals() > maxComponentsPerOperand {
		reduced = minimize.MinimizeIntervals(reduced, maxComponentsPerOperand)
	}
	return reduced.Intervals()
}

// unionAll normalizes and unions a slice of component results, the way
// ZeroExtend, SignExtend, Truncate and Concat fold per-component
// contributions into one set.
func unionAll(width int, parts []interval.Set) interval.Set {
	return lo.Reduce(parts, func(acc interval.Set, s interval.Set, _ int) interval.Set {
		return interval.Combine(acc, s)
	}, interval.Empty(width))
}
