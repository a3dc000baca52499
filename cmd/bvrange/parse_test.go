package main

import (
	"testing"

	"github.com/oisee/bvrange/pkg/bits"
)

func TestParseImmediateDecimal(t *testing.T) {
	v, err := parseImmediate("42")
	if err != nil || v != 42 {
		t.Errorf("parseImmediate(42) = %d, %v", v, err)
	}
}

func TestParseImmediateHexPrefix(t *testing.T) {
	v, err := parseImmediate("0xFF")
	if err != nil || v != 0xFF {
		t.Errorf("parseImmediate(0xFF) = %d, %v", v, err)
	}
}

func TestParseImmediateHexSuffix(t *testing.T) {
	v, err := parseImmediate("FFh")
	if err != nil || v != 0xFF {
		t.Errorf("parseImmediate(FFh) = %d, %v", v, err)
	}
}

func TestParseImmediateEmpty(t *testing.T) {
	if _, err := parseImmediate(""); err == nil {
		t.Error("parseImmediate(\"\") should error")
	}
}

func TestParsePreciseOperand(t *testing.T) {
	s, err := parseOperand("5:8")
	if err != nil {
		t.Fatalf("parseOperand(5:8): %v", err)
	}
	if !s.IsPrecise() || s.LowerBound().Uint64() != 5 || s.Width() != 8 {
		t.Errorf("parseOperand(5:8) = %v", s)
	}
}

func TestParseRangeOperand(t *testing.T) {
	s, err := parseOperand("[10,20]:8")
	if err != nil {
		t.Fatalf("parseOperand([10,20]:8): %v", err)
	}
	if s.LowerBound().Uint64() != 10 || s.UpperBound().Uint64() != 20 {
		t.Errorf("parseOperand([10,20]:8) = %v", s)
	}
}

func TestParseRangeOperandMissingBracket(t *testing.T) {
	if _, err := parseOperand("[10,20:8"); err == nil {
		t.Error("parseOperand should error on missing ]")
	}
}

func TestParseTernaryOperand(t *testing.T) {
	s, err := parseOperand("10XX")
	if err != nil {
		t.Fatalf("parseOperand(10XX): %v", err)
	}
	if s.Width() != 4 {
		t.Errorf("parseOperand(10XX) width = %d, want 4", s.Width())
	}
	for _, v := range []uint64{0b1000, 0b1001, 0b1010, 0b1011} {
		if !s.Contains(bits.New(v, 4)) {
			t.Errorf("parseOperand(10XX) should contain %#b", v)
		}
	}
}

func TestIsTernaryPatternRejectsPlainHex(t *testing.T) {
	if isTernaryPattern("10") {
		t.Error("\"10\" has no X and should not be treated as a ternary pattern")
	}
}

func TestParseExprSplitsOpAndOperands(t *testing.T) {
	op, operands, err := parseExpr("add 1:8 2:8")
	if err != nil {
		t.Fatalf("parseExpr: %v", err)
	}
	if op != "add" || len(operands) != 2 {
		t.Errorf("parseExpr(\"add 1:8 2:8\") = %q, %d operands", op, len(operands))
	}
}

func TestParseExprEmpty(t *testing.T) {
	if _, _, err := parseExpr(""); err == nil {
		t.Error("parseExpr(\"\") should error")
	}
}
