// Package bits implements a fixed-width unsigned integer value type: the
// leaf representation every other package in this module builds on top of.
//
// A Bits value is immutable and carries its own width. All bits above the
// tagged width are always zero; every constructor and operation maintains
// that invariant so comparisons and hashing never have to mask first.
package bits

import (
	"fmt"
	stdbits "math/bits"
)

// MaxWidth is the largest bit width this package represents. The engine
// targets IR node widths in a hardware-description middle-end; those never
// approach 64 bits in practice, and capping here lets every value live in a
// single uint64 the way the teacher's cpu.State packs A..L into single bytes.
const MaxWidth = 64

// Bits is an immutable, width-tagged unsigned integer.
type Bits struct {
	val   uint64
	width int
}

// mask returns the bitmask for width w (all 1s for w == MaxWidth).
func mask(w int) uint64 {
	if w >= MaxWidth {
		return ^uint64(0)
	}
	if w <= 0 {
		return 0
	}
	return (uint64(1) << uint(w)) - 1
}

// New constructs a Bits of the given width, truncating v to that width.
func New(v uint64, width int) Bits {
	if width < 0 || width > MaxWidth {
		panic(fmt.Sprintf("bits: invalid width %d", width))
	}
	return Bits{val: v & mask(width), width: width}
}

// Zero returns the zero value of the given width.
func Zero(width int) Bits { return New(0, width) }

// MaxValue returns the all-ones value of the given width (2^width - 1).
func MaxValue(width int) Bits { return New(mask(width), width) }

// Width returns the tagged bit width.
func (b Bits) Width() int { return b.width }

// Uint64 returns the raw value as a uint64.
func (b Bits) Uint64() uint64 { return b.val }

// checkWidth panics if a and b have different widths. Width mismatches are a
// programming error per spec §6.3: there is no recoverable error value for it.
func checkWidth(a, b Bits) {
	if a.width != b.width {
		panic(fmt.Sprintf("bits: width mismatch %d != %d", a.width, b.width))
	}
}

// Equal reports whether a and b have the same width and value.
func (a Bits) Equal(b Bits) bool {
	return a.width == b.width && a.val == b.val
}

// Cmp returns -1, 0, or 1 comparing a and b as unsigned integers of equal width.
func (a Bits) Cmp(b Bits) int {
	checkWidth(a, b)
	switch {
	case a.val < b.val:
		return -1
	case a.val > b.val:
		return 1
	default:
		return 0
	}
}

// Less reports a < b unsigned.
func (a Bits) Less(b Bits) bool { return a.Cmp(b) < 0 }

// Msb reports the most significant (sign) bit.
func (b Bits) Msb() bool {
	if b.width == 0 {
		return false
	}
	return b.val&(uint64(1)<<uint(b.width-1)) != 0
}

// Lsb reports the least significant bit.
func (b Bits) Lsb() bool { return b.val&1 != 0 }

// Bit reports bit i (0 = lsb).
func (b Bits) Bit(i int) bool {
	if i < 0 || i >= b.width {
		return false
	}
	return b.val&(uint64(1)<<uint(i)) != 0
}

// IsZero reports whether the value is zero.
func (b Bits) IsZero() bool { return b.val == 0 }

// IsMax reports whether the value is the maximal value for its width.
func (b Bits) IsMax() bool { return b.val == mask(b.width) }

// PopCount returns the number of set bits.
func (b Bits) PopCount() int { return stdbits.OnesCount64(b.val) }

// Slice extracts bits [lo, hi) (lo inclusive, hi exclusive), returning a
// value of width hi-lo. Mirrors the teacher's uint8(imm)/uint8(bc>>8)
// truncate-and-shift idiom in cpu/exec.go, generalized to arbitrary widths.
func (b Bits) Slice(lo, hi int) Bits {
	if lo < 0 || hi > b.width || lo > hi {
		panic(fmt.Sprintf("bits: invalid slice [%d:%d) of width %d", lo, hi, b.width))
	}
	return New(b.val>>uint(lo), hi-lo)
}

// ZeroExtend widens b to width w (w >= b.Width()), padding with zero bits.
func (b Bits) ZeroExtend(w int) Bits {
	if w < b.width {
		panic(fmt.Sprintf("bits: ZeroExtend to narrower width %d < %d", w, b.width))
	}
	return New(b.val, w)
}

// SignExtend widens b to width w (w >= b.Width()), replicating the sign bit.
func (b Bits) SignExtend(w int) Bits {
	if w < b.width {
		panic(fmt.Sprintf("bits: SignExtend to narrower width %d < %d", w, b.width))
	}
	if !b.Msb() || b.width == 0 {
		return New(b.val, w)
	}
	ext := mask(w) &^ mask(b.width)
	return New(b.val|ext, w)
}

// Concat concatenates bits with hi placed in the most-significant position,
// matching bits_ops::Concat's "prepending high bits preserves order" rule
// (spec §4.5). Result width is the sum of both widths.
func Concat(hi, lo Bits) Bits {
	w := hi.width + lo.width
	if w > MaxWidth {
		panic(fmt.Sprintf("bits: Concat result width %d exceeds MaxWidth", w))
	}
	return New(hi.val<<uint(lo.width)|lo.val, w)
}

// AddWrap returns a+b truncated mod 2^width, plus whether the true sum
// overflowed w+1 bits (carry out of the top bit).
func (a Bits) AddWrap(b Bits) (Bits, bool) {
	checkWidth(a, b)
	sum := a.val + b.val
	overflow := sum < a.val || (sum&mask(a.width)) != sum
	return New(sum, a.width), overflow
}

// SubWrap returns a-b truncated mod 2^width, plus whether it borrowed
// (a < b unsigned).
func (a Bits) SubWrap(b Bits) (Bits, bool) {
	checkWidth(a, b)
	borrow := a.val < b.val
	return New(a.val-b.val, a.width), borrow
}

// MulWide multiplies a and b (equal width) and returns the product as a
// uint64. The product is exact whenever it fits in 64 bits, which holds for
// operands of width 32 or less; wider operands can wrap mod 2^64.
func (a Bits) MulWide(b Bits) uint64 {
	checkWidth(a, b)
	return a.val * b.val
}

// String renders the value in hex, width-annotated, e.g. "0xa:8".
func (b Bits) String() string {
	return fmt.Sprintf("0x%x:%d", b.val, b.width)
}
