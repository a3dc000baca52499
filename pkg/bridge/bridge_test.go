package bridge

import (
	"testing"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/ternary"
)

func TestExtractTernarySingleValue(t *testing.T) {
	s := interval.Precise(bits.New(0b1010, 4))
	v := ExtractTernary(s)
	if !v.IsFullyKnown() {
		t.Fatalf("singleton interval should yield a fully known vector, got %s", v)
	}
	if v.ToKnownBitsValue() != 0b1010 {
		t.Errorf("got %s, want 1010", v)
	}
}

func TestExtractTernaryRangeSharesPrefix(t *testing.T) {
	// [0b1000, 0b1011]: top two bits (10) are common, bottom two vary.
	s := interval.FromInterval(bits.New(0b1000, 4), bits.New(0b1011, 4))
	v := ExtractTernary(s)
	if v.Bit(0) != ternary.One || v.Bit(1) != ternary.Zero {
		t.Errorf("expected common prefix 10, got %s", v)
	}
	if v.Bit(2) != ternary.Top || v.Bit(3) != ternary.Top {
		t.Errorf("expected low bits unknown, got %s", v)
	}
}

func TestExtractTernaryMultipleIntervalsMeet(t *testing.T) {
	// two disjoint singletons with different bits disagree -> everything unknown
	a := interval.FromInterval(bits.New(0b0000, 4), bits.New(0b0000, 4))
	c := interval.FromInterval(bits.New(0b1111, 4), bits.New(0b1111, 4))
	s := interval.Combine(a, c)
	v := ExtractTernary(s)
	for i := 0; i < 4; i++ {
		if v.Bit(i) != ternary.Top {
			t.Errorf("bit %d = %v, expected Top since components disagree everywhere", i, v.Bit(i))
		}
	}
}

func TestFromTernaryFullyKnown(t *testing.T) {
	v := ternary.FromBits([]ternary.Value{ternary.One, ternary.Zero, ternary.One, ternary.One})
	s := FromTernary(v, 4)
	if !s.IsPrecise() {
		t.Fatalf("fully known vector should map to a precise set, got %v", s)
	}
	val, _ := s.PreciseValue()
	if val.Uint64() != 0b1011 {
		t.Errorf("got %d, want 11", val.Uint64())
	}
}

func TestFromTernaryWithinBudget(t *testing.T) {
	// 10XX: 2 unknown bits -> 4 concrete values, all adjacent -> normalizes to 1 interval.
	v := ternary.New(4).WithBit(0, ternary.One).WithBit(1, ternary.Zero)
	s := FromTernary(v, 4)
	if s.NumberOfIntervals() != 1 {
		t.Fatalf("contiguous fillings should normalize to 1 interval, got %d: %v", s.NumberOfIntervals(), s)
	}
	if s.LowerBound().Uint64() != 0b1000 || s.UpperBound().Uint64() != 0b1011 {
		t.Errorf("got [%d,%d], want [8,11]", s.LowerBound().Uint64(), s.UpperBound().Uint64())
	}
}

func TestFromTernaryExceedsBudgetFallsBackToHull(t *testing.T) {
	// X0X0: unknown bits scattered, 4 fillings that do not form a contiguous
	// range when budget is too small to enumerate them all.
	v := ternary.New(4).WithBit(1, ternary.Zero).WithBit(3, ternary.Zero)
	s := FromTernary(v, 1)
	if s.NumberOfIntervals() != 1 {
		t.Fatalf("budget-exceeded case should fall back to a single hull interval, got %d", s.NumberOfIntervals())
	}
}

func TestFromTernaryZeroBudgetPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero budget with an unknown bit")
		}
	}()
	FromTernary(ternary.New(4), 0)
}

func TestFromTernaryZeroBudgetFullyKnownOK(t *testing.T) {
	v := ternary.FromBits([]ternary.Value{ternary.One, ternary.One, ternary.Zero, ternary.Zero})
	s := FromTernary(v, 0)
	if !s.IsPrecise() {
		t.Errorf("zero budget with a fully known vector should still work: %v", s)
	}
}

func TestRoundTripExtractFromTernary(t *testing.T) {
	// Precise -> ternary -> back to precise should be lossless.
	orig := interval.Precise(bits.New(0b0110, 4))
	v := ExtractTernary(orig)
	back := FromTernary(v, 1)
	if !back.IsPrecise() {
		t.Fatal("round trip of a precise set should stay precise")
	}
	val, _ := back.PreciseValue()
	origVal, _ := orig.PreciseValue()
	if !val.Equal(origVal) {
		t.Errorf("round trip changed value: got %v, want %v", val, origVal)
	}
}
