package transfer

import (
	"fmt"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
)

// ZeroExtend widens every member of a to width w, padding with zero bits
// (spec §4.5). Zero extension never changes a value's unsigned ordering,
// so each component interval maps straight through without splitting.
func ZeroExtend(a interval.Set, w int) interval.Set {
	if w < a.Width() {
		panic(fmt.Sprintf("transfer: ZeroExtend to narrower width %d < %d", w, a.Width()))
	}
	parts := make([]interval.Set, 0, a.NumberOfIntervals())
	for _, iv := range a.Intervals() {
		parts = append(parts, interval.FromInterval(iv.Lo.ZeroExtend(w), iv.Hi.ZeroExtend(w)))
	}
	return unionAll(w, parts)
}

// signBoundary returns the smallest value whose sign bit is set at width w.
func signBoundary(w int) uint64 {
	if w == 0 {
		return 0
	}
	return uint64(1) << uint(w-1)
}

// splitAtSign splits a proper interval at the two's-complement sign
// boundary so each piece has a uniform sign bit — needed before sign
// extension or signed comparison, since both operations are only monotone
// within one sign half (spec §4.5, §4.8).
func splitAtSign(iv interval.Interval) []interval.Interval {
	w := iv.Width()
	boundary := signBoundary(w)
	lo, hi := iv.Lo.Uint64(), iv.Hi.Uint64()
	if boundary == 0 || lo >= boundary || hi < boundary {
		return []interval.Interval{iv}
	}
	return []interval.Interval{
		{Lo: iv.Lo, Hi: bits.New(boundary-1, w)},
		{Lo: bits.New(boundary, w), Hi: iv.Hi},
	}
}

// SignExtend widens every member of a to width w, replicating the sign bit
// (spec §4.5). Each component is first split at the sign boundary so every
// piece sign-extends as a uniform, order-preserving shift.
func SignExtend(a interval.Set, w int) interval.Set {
	if w < a.Width() {
		panic(fmt.Sprintf("transfer: SignExtend to narrower width %d < %d", w, a.Width()))
	}
	var parts []interval.Set
	for _, iv := range a.Intervals() {
		for _, piece := range splitAtSign(iv) {
			parts = append(parts, interval.FromInterval(piece.Lo.SignExtend(w), piece.Hi.SignExtend(w)))
		}
	}
	return unionAll(w, parts)
}

// Truncate narrows every member of a to its low w bits (spec §4.5). A
// component whose cardinality exceeds 2^w necessarily covers every
// truncated value, so it becomes the full range for w; otherwise the
// truncated bounds describe a single (possibly wraparound) interval that
// interval.FromInterval already knows how to split.
func Truncate(a interval.Set, w int) interval.Set {
	if w > a.Width() {
		panic(fmt.Sprintf("transfer: Truncate to wider width %d > %d", w, a.Width()))
	}
	full := uint64(1) << uint(w)
	if w >= 64 {
		full = 0 // unreachable given MaxWidth, guarded defensively
	}
	parts := make([]interval.Set, 0, a.NumberOfIntervals())
	for _, iv := range a.Intervals() {
		if full != 0 && iv.Cardinality() > full {
			parts = append(parts, interval.Maximal(w))
			continue
		}
		loTrunc := bits.New(iv.Lo.Uint64(), w)
		hiTrunc := bits.New(iv.Hi.Uint64(), w)
		parts = append(parts, interval.FromInterval(loTrunc, hiTrunc))
	}
	return unionAll(w, parts)
}

// Concat concatenates hi (placed in the most significant position) with lo
// (spec §4.5). When the high operand is pinned to a single value within a
// component pair, the result is an exact band; when it spans more than one
// value, the low operand's contribution is widened to its full range,
// which is always sound even if the literal set of representable values
// would have gaps.
func Concat(hi, lo interval.Set) interval.Set {
	w := hi.Width() + lo.Width()
	hiComponents := minimizedComponents(hi)
	loComponents := minimizedComponents(lo)
	var parts []interval.Set
	for _, hiIv := range hiComponents {
		for _, loIv := range loComponents {
			if hiIv.Lo.Equal(hiIv.Hi) {
				lowVal := bits.Concat(hiIv.Lo, loIv.Lo)
				highVal := bits.Concat(hiIv.Hi, loIv.Hi)
				parts = append(parts, interval.FromInterval(lowVal, highVal))
				continue
			}
			lowVal := bits.Concat(hiIv.Lo, bits.Zero(loIv.Width()))
			highVal := bits.Concat(hiIv.Hi, bits.MaxValue(loIv.Width()))
			parts = append(parts, interval.FromInterval(lowVal, highVal))
		}
	}
	return unionAll(w, parts)
}
