package transfer

import (
	"fmt"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/bridge"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/ternary"
)

// Eq reports whether a and b must be equal, must differ, or either is
// possible, as a width-1 result (spec §4.8).
func Eq(a, b interval.Set) interval.Set {
	if a.IsEmpty() || b.IsEmpty() {
		return interval.Empty(1)
	}
	if a.IsPrecise() && b.IsPrecise() {
		va, _ := a.PreciseValue()
		vb, _ := b.PreciseValue()
		return precise01(va.Equal(vb))
	}
	if interval.Disjoint(a, b) {
		return precise01(false)
	}
	return interval.Maximal(1)
}

// Ne is the logical complement of Eq.
func Ne(a, b interval.Set) interval.Set {
	if a.IsEmpty() || b.IsEmpty() {
		return interval.Empty(1)
	}
	if a.IsPrecise() && b.IsPrecise() {
		va, _ := a.PreciseValue()
		vb, _ := b.PreciseValue()
		return precise01(!va.Equal(vb))
	}
	if interval.Disjoint(a, b) {
		return precise01(true)
	}
	return interval.Maximal(1)
}

// ULt reports whether a < b is guaranteed, impossible, or ambiguous under
// unsigned comparison.
func ULt(a, b interval.Set) interval.Set {
	if a.IsEmpty() || b.IsEmpty() {
		return interval.Empty(1)
	}
	if a.UpperBound().Less(b.LowerBound()) {
		return precise01(true)
	}
	if !a.LowerBound().Less(b.UpperBound()) {
		return precise01(false)
	}
	return interval.Maximal(1)
}

// UGt reports whether a > b is guaranteed, impossible, or ambiguous under
// unsigned comparison.
func UGt(a, b interval.Set) interval.Set { return ULt(b, a) }

// signedValue interprets v's bit pattern as two's complement.
func signedValue(v bits.Bits) int64 {
	raw := int64(v.Uint64())
	if v.Width() > 0 && v.Msb() {
		raw -= int64(uint64(1) << uint(v.Width()))
	}
	return raw
}

// signedBounds returns the minimum and maximum signed interpretation of any
// member of s, splitting each component at the sign boundary first so the
// per-component endpoints are individually meaningful (spec §4.8).
func signedBounds(s interval.Set) (min, max int64) {
	first := true
	for _, iv := range s.Intervals() {
		for _, piece := range splitAtSign(iv) {
			lo, hi := signedValue(piece.Lo), signedValue(piece.Hi)
			if first {
				min, max = lo, hi
				first = false
				continue
			}
			if lo < min {
				min = lo
			}
			if hi > max {
				max = hi
			}
		}
	}
	return min, max
}

// SLt reports whether a < b is guaranteed, impossible, or ambiguous under
// signed comparison.
func SLt(a, b interval.Set) interval.Set {
	if a.IsEmpty() || b.IsEmpty() {
		return interval.Empty(1)
	}
	aMin, aMax := signedBounds(a)
	bMin, bMax := signedBounds(b)
	if aMax < bMin {
		return precise01(true)
	}
	if aMin >= bMax {
		return precise01(false)
	}
	return interval.Maximal(1)
}

// SGt reports whether a > b is guaranteed, impossible, or ambiguous under
// signed comparison.
func SGt(a, b interval.Set) interval.Set { return SLt(b, a) }

// Gate models a hardware enable mux: cond is a width-1 set. When cond can
// be 0 the gated output can be the all-zero value; when cond can be 1 the
// gated output can be anything val admits (spec §4.9).
func Gate(cond interval.Set, val interval.Set) interval.Set {
	w := val.Width()
	result := interval.Empty(w)
	if cond.Contains(bits.New(0, 1)) {
		result = interval.Combine(result, interval.Precise(bits.Zero(w)))
	}
	if cond.Contains(bits.New(1, 1)) {
		result = interval.Combine(result, val)
	}
	return result
}

// Side selects which end of val OneHot scans from first (spec §4.9).
type Side int

const (
	// LsbToMsb scans from the least significant bit upward.
	LsbToMsb Side = iota
	// MsbToLsb scans from the most significant bit downward.
	MsbToLsb
)

// OneHot lifts val to ternary, evaluates the ternary one-hot scan in the
// given direction, and lowers the width-(w+1) result back to an interval
// set bounded by maxIntervals (spec §4.9). The extra bit in the result
// width is the "val is entirely zero" sentinel the ternary scan produces.
func OneHot(val interval.Set, side Side, maxIntervals int) interval.Set {
	v := bridge.ExtractTernary(val)
	var scanned ternary.Vector
	switch side {
	case LsbToMsb:
		scanned = ternary.OneHotLsbToMsb(v)
	case MsbToLsb:
		scanned = ternary.OneHotMsbToLsb(v)
	default:
		panic(fmt.Sprintf("transfer: unknown OneHot side %d", side))
	}
	return bridge.FromTernary(scanned, maxIntervals)
}
