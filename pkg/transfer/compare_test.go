package transfer

import (
	"testing"

	"github.com/oisee/bvrange/pkg/interval"
)

func TestEqDisjointIsFalse(t *testing.T) {
	got := Eq(rng(1, 3, 8), rng(5, 7, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 0 {
		t.Errorf("Eq of disjoint ranges should be precise false, got %v", got)
	}
}

func TestEqPreciseEqual(t *testing.T) {
	got := Eq(interval.Precise(b(5, 8)), interval.Precise(b(5, 8)))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 1 {
		t.Errorf("Eq of equal precise values should be precise true, got %v", got)
	}
}

func TestEqOverlappingAmbiguous(t *testing.T) {
	got := Eq(rng(1, 5, 8), rng(3, 8, 8))
	if got.LowerBound().Uint64() != 0 || got.UpperBound().Uint64() != 1 {
		t.Errorf("Eq of overlapping non-identical ranges should be ambiguous, got %v", got)
	}
}

func TestNeMirrorsEq(t *testing.T) {
	got := Ne(rng(1, 3, 8), rng(5, 7, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 1 {
		t.Errorf("Ne of disjoint ranges should be precise true, got %v", got)
	}
}

func TestULtGuaranteed(t *testing.T) {
	got := ULt(rng(1, 3, 8), rng(10, 20, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 1 {
		t.Errorf("ULt with disjoint, correctly ordered ranges should be precise true, got %v", got)
	}
}

func TestULtImpossible(t *testing.T) {
	got := ULt(rng(10, 20, 8), rng(1, 3, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 0 {
		t.Errorf("ULt should be precise false when a is always >= b, got %v", got)
	}
}

func TestULtAmbiguous(t *testing.T) {
	got := ULt(rng(1, 10, 8), rng(5, 15, 8))
	if got.LowerBound().Uint64() != 0 || got.UpperBound().Uint64() != 1 {
		t.Errorf("ULt with overlapping ranges should be ambiguous, got %v", got)
	}
}

func TestUGtIsULtFlipped(t *testing.T) {
	got := UGt(rng(10, 20, 8), rng(1, 3, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 1 {
		t.Errorf("UGt should be precise true, got %v", got)
	}
}

func TestSLtAcrossSignBoundary(t *testing.T) {
	// 250..255 as signed 8-bit is -6..-1, definitely less than [1,3].
	got := SLt(rng(250, 255, 8), rng(1, 3, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 1 {
		t.Errorf("SLt of negative range vs positive range should be precise true, got %v", got)
	}
}

func TestSLtUnsignedWouldDisagree(t *testing.T) {
	// Unsigned, 250 > 3; signed, -6 < 3. Confirms SLt uses signed semantics.
	unsignedView := ULt(rng(250, 255, 8), rng(1, 3, 8))
	if v, ok := unsignedView.PreciseValue(); !ok || v.Uint64() != 0 {
		t.Fatalf("sanity check: unsigned comparison should disagree with the signed one")
	}
}

func TestSGtIsSLtFlipped(t *testing.T) {
	got := SGt(rng(1, 3, 8), rng(250, 255, 8))
	if v, ok := got.PreciseValue(); !ok || v.Uint64() != 1 {
		t.Errorf("SGt should be precise true, got %v", got)
	}
}

func TestGate(t *testing.T) {
	enabled := interval.Precise(b(1, 1))
	val := rng(5, 10, 8)
	got := Gate(enabled, val)
	if got.LowerBound().Uint64() != 5 || got.UpperBound().Uint64() != 10 {
		t.Errorf("Gate with cond always 1 should pass val through, got %v", got)
	}

	disabled := interval.Precise(b(0, 1))
	got2 := Gate(disabled, val)
	if v, ok := got2.PreciseValue(); !ok || v.Uint64() != 0 {
		t.Errorf("Gate with cond always 0 should be precise zero, got %v", got2)
	}

	ambiguous := interval.Maximal(1)
	got3 := Gate(ambiguous, val)
	if !got3.Contains(b(0, 8)) || !got3.Contains(b(5, 8)) || !got3.Contains(b(10, 8)) {
		t.Errorf("Gate with ambiguous cond should cover both zero and val's range: %v", got3)
	}
}

func TestOneHotLsbToMsbPrecise(t *testing.T) {
	// 0b0110 (width 4): first set bit scanning from the lsb is bit 1, so
	// the width-5 result is 0b00010 (bit 1 set, sentinel bit 4 clear).
	got := OneHot(interval.Precise(b(0b0110, 4)), LsbToMsb, 4)
	v, ok := got.PreciseValue()
	if !ok || v.Uint64() != 0b00010 || v.Width() != 5 {
		t.Errorf("OneHot(0b0110, LsbToMsb) = %v, want precise 0b00010 at width 5", got)
	}
}

func TestOneHotMsbToLsbPrecise(t *testing.T) {
	// 0b0110 (width 4): first set bit scanning from the msb is bit 2, so
	// the width-5 result is 0b00100 (bit 2 set, sentinel bit 4 clear).
	got := OneHot(interval.Precise(b(0b0110, 4)), MsbToLsb, 4)
	v, ok := got.PreciseValue()
	if !ok || v.Uint64() != 0b00100 || v.Width() != 5 {
		t.Errorf("OneHot(0b0110, MsbToLsb) = %v, want precise 0b00100 at width 5", got)
	}
}

func TestOneHotAllZeroSetsSentinel(t *testing.T) {
	got := OneHot(interval.Precise(b(0, 4)), LsbToMsb, 4)
	v, ok := got.PreciseValue()
	if !ok || v.Uint64() != 0b10000 {
		t.Errorf("OneHot(0, LsbToMsb) = %v, want precise sentinel bit 0b10000", got)
	}
}

func TestOneHotBudgetExceededFallsBack(t *testing.T) {
	val := interval.Maximal(4) // every possible bit pattern, over a tiny budget
	got := OneHot(val, LsbToMsb, 1)
	if got.NumberOfIntervals() != 1 {
		t.Errorf("OneHot over budget should fall back to a single hull interval, got %v", got)
	}
}
