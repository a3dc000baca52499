package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/bridge"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/ternary"
	"github.com/oisee/bvrange/pkg/transfer"
)

// parseSide parses the onehot scan-direction argument ("lsb" or "msb").
func parseSide(s string) (transfer.Side, error) {
	switch strings.ToLower(s) {
	case "lsb":
		return transfer.LsbToMsb, nil
	case "msb":
		return transfer.MsbToLsb, nil
	default:
		return 0, fmt.Errorf("onehot: side must be \"lsb\" or \"msb\", got %q", s)
	}
}

// parseImmediate parses a decimal or hex (0x-prefixed or h-suffixed)
// literal, mirroring the teacher's parseImmediate in cmd/z80opt.
func parseImmediate(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty immediate")
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		return strconv.ParseUint(lower[2:], 16, 64)
	}
	if strings.HasSuffix(lower, "h") {
		return strconv.ParseUint(lower[:len(lower)-1], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// parseOperand parses one operand of the expression mini-language:
//
//	v:w        a precise value, e.g. "5:8"
//	[lo,hi]:w  a single range, e.g. "[10,200]:8"
//	10XX       a ternary bit pattern; width is the pattern's length
//
// This mirrors parseSingleInstruction's job in cmd/z80opt: turn one piece
// of command-line text into a typed value the rest of the tool operates on.
func parseOperand(s string) (interval.Set, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "["):
		return parseRangeOperand(s)
	case isTernaryPattern(s):
		return parseTernaryOperand(s)
	default:
		return parsePreciseOperand(s)
	}
}

func isTernaryPattern(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case '0', '1', 'x', 'X':
		default:
			return false
		}
	}
	for _, r := range s {
		if r == 'x' || r == 'X' {
			return true
		}
	}
	return false
}

func parsePreciseOperand(s string) (interval.Set, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return interval.Set{}, fmt.Errorf("operand %q: expected v:width", s)
	}
	v, err := parseImmediate(parts[0])
	if err != nil {
		return interval.Set{}, fmt.Errorf("operand %q: %w", s, err)
	}
	w, err := strconv.Atoi(parts[1])
	if err != nil {
		return interval.Set{}, fmt.Errorf("operand %q: bad width: %w", s, err)
	}
	return interval.Precise(bits.New(v, w)), nil
}

func parseRangeOperand(s string) (interval.Set, error) {
	closeIdx := strings.Index(s, "]")
	if closeIdx < 0 {
		return interval.Set{}, fmt.Errorf("operand %q: missing ]", s)
	}
	body := s[1:closeIdx]
	rest := strings.TrimPrefix(s[closeIdx+1:], ":")
	w, err := strconv.Atoi(rest)
	if err != nil {
		return interval.Set{}, fmt.Errorf("operand %q: bad width: %w", s, err)
	}
	bounds := strings.SplitN(body, ",", 2)
	if len(bounds) != 2 {
		return interval.Set{}, fmt.Errorf("operand %q: expected [lo,hi]", s)
	}
	lo, err := parseImmediate(bounds[0])
	if err != nil {
		return interval.Set{}, fmt.Errorf("operand %q: bad lo: %w", s, err)
	}
	hi, err := parseImmediate(bounds[1])
	if err != nil {
		return interval.Set{}, fmt.Errorf("operand %q: bad hi: %w", s, err)
	}
	return interval.FromInterval(bits.New(lo, w), bits.New(hi, w)), nil
}

func parseTernaryOperand(s string) (interval.Set, error) {
	bitsVal := make([]ternary.Value, 0, len(s))
	for _, r := range s {
		switch r {
		case '0':
			bitsVal = append(bitsVal, ternary.Zero)
		case '1':
			bitsVal = append(bitsVal, ternary.One)
		case 'x', 'X':
			bitsVal = append(bitsVal, ternary.Top)
		default:
			return interval.Set{}, fmt.Errorf("operand %q: invalid ternary digit %q", s, r)
		}
	}
	v := ternary.FromBits(bitsVal)
	return bridge.FromTernary(v, 1<<uint(minInt(v.NumUnknown(), 16))), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseExpr splits "OP operand operand ..." into an opcode and its operand
// sets, mirroring parseAssembly's "split, then parse each piece" structure.
func parseExpr(text string) (string, []interval.Set, error) {
	fields := strings.Fields(text)
	if len(fields) < 1 {
		return "", nil, fmt.Errorf("empty expression")
	}
	op := strings.ToLower(fields[0])
	operands := make([]interval.Set, 0, len(fields)-1)
	for _, f := range fields[1:] {
		s, err := parseOperand(f)
		if err != nil {
			return "", nil, err
		}
		operands = append(operands, s)
	}
	return op, operands, nil
}
