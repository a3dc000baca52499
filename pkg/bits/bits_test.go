package bits

import "testing"

func TestNewTruncates(t *testing.T) {
	tests := []struct {
		v     uint64
		width int
		want  uint64
	}{
		{0xFF, 4, 0xF},
		{0x1FF, 8, 0xFF},
		{5, 8, 5},
		{0, 0, 0},
	}
	for _, tc := range tests {
		got := New(tc.v, tc.width)
		if got.Uint64() != tc.want {
			t.Errorf("New(%#x, %d) = %#x, want %#x", tc.v, tc.width, got.Uint64(), tc.want)
		}
	}
}

func TestCmp(t *testing.T) {
	a := New(5, 8)
	b := New(10, 8)
	if a.Cmp(b) >= 0 {
		t.Errorf("5 should be < 10")
	}
	if b.Cmp(a) <= 0 {
		t.Errorf("10 should be > 5")
	}
	if a.Cmp(a) != 0 {
		t.Errorf("5 should equal 5")
	}
}

func TestCmpWidthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on width mismatch")
		}
	}()
	New(1, 4).Cmp(New(1, 8))
}

func TestMsbLsb(t *testing.T) {
	v := New(0x80, 8)
	if !v.Msb() {
		t.Error("0x80 should have msb set at width 8")
	}
	if v.Lsb() {
		t.Error("0x80 should have lsb clear")
	}
}

func TestSlice(t *testing.T) {
	v := New(0xABCD, 16)
	got := v.Slice(4, 12)
	if got.Width() != 8 || got.Uint64() != 0xBC {
		t.Errorf("Slice(4,12) of 0xABCD = %v, want 0xBC width 8", got)
	}
}

func TestZeroExtendSignExtend(t *testing.T) {
	neg := New(0xFF, 8) // -1 as signed 8-bit
	se := neg.SignExtend(16)
	if se.Uint64() != 0xFFFF {
		t.Errorf("SignExtend(0xFF, 16) = %#x, want 0xffff", se.Uint64())
	}

	pos := New(0x7F, 8)
	ze := pos.ZeroExtend(16)
	if ze.Uint64() != 0x7F {
		t.Errorf("ZeroExtend(0x7F,16) = %#x, want 0x7f", ze.Uint64())
	}
	seZero := pos.SignExtend(16)
	if seZero.Uint64() != 0x7F {
		t.Errorf("SignExtend of positive value changed value: %#x", seZero.Uint64())
	}
}

func TestConcat(t *testing.T) {
	hi := New(0xAB, 8)
	lo := New(0xCD, 8)
	got := Concat(hi, lo)
	if got.Width() != 16 || got.Uint64() != 0xABCD {
		t.Errorf("Concat(0xAB,0xCD) = %v, want 0xabcd width 16", got)
	}
}

func TestAddWrap(t *testing.T) {
	a := New(0xFF, 8)
	b := New(1, 8)
	sum, overflow := a.AddWrap(b)
	if sum.Uint64() != 0 || !overflow {
		t.Errorf("0xFF+1 at width 8 = %v overflow=%v, want 0 true", sum, overflow)
	}

	a2 := New(5, 8)
	b2 := New(3, 8)
	sum2, overflow2 := a2.AddWrap(b2)
	if sum2.Uint64() != 8 || overflow2 {
		t.Errorf("5+3 = %v overflow=%v, want 8 false", sum2, overflow2)
	}
}

func TestSubWrapBorrow(t *testing.T) {
	a := New(3, 8)
	b := New(5, 8)
	diff, borrow := a.SubWrap(b)
	if !borrow {
		t.Error("3-5 at width 8 should borrow")
	}
	if diff.Uint64() != uint64(3-5+256) {
		t.Errorf("3-5 mod 256 = %v, want %d", diff, 3-5+256)
	}
}

func TestMulWide(t *testing.T) {
	a := New(3, 4)
	b := New(3, 4)
	if got := a.MulWide(b); got != 9 {
		t.Errorf("3*3 = %d, want 9", got)
	}
}

func TestIsZeroIsMax(t *testing.T) {
	if !Zero(8).IsZero() {
		t.Error("Zero(8) should be zero")
	}
	if !MaxValue(8).IsMax() {
		t.Error("MaxValue(8) should be max")
	}
	if MaxValue(8).Uint64() != 0xFF {
		t.Errorf("MaxValue(8) = %#x, want 0xff", MaxValue(8).Uint64())
	}
}
