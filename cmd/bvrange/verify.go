package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/transfer"
)

// soundnessReport accumulates concrete-enumeration check results across
// every operand combination, mirroring result.Table's mutex-guarded
// accumulator in the teacher's search package.
type soundnessReport struct {
	mu       sync.Mutex
	op       string
	checked  int64
	violated int64
	example  string
}

func (r *soundnessReport) record(ok bool, lhs, rhs uint64, got bits.Bits, abstract interval.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checked++
	if !ok && r.violated == 0 {
		r.example = fmt.Sprintf("%s(%d,%d) = %s not contained in %s", r.op, lhs, rhs, got, abstract)
	}
	if !ok {
		r.violated++
	}
}

// verifyConcreteOp exhaustively enumerates every value in the two operands'
// widths (bounded by a small width cap, since this is a brute-force check,
// not a proof) and confirms the abstract result contains the concrete one.
func verifyConcreteOp(name string, width int, f func(a, b uint64) uint64) *soundnessReport {
	report := &soundnessReport{op: name}
	total := uint64(1) << uint(width)
	for a := uint64(0); a < total; a++ {
		for c := uint64(0); c < total; c++ {
			av := interval.Precise(bits.New(a, width))
			cv := interval.Precise(bits.New(c, width))
			abstract := dispatchConcrete(name, av, cv)
			want := bits.New(f(a, c), width)
			report.record(abstract.Contains(want), a, c, want, abstract)
		}
	}
	return report
}

func dispatchConcrete(name string, a, c interval.Set) interval.Set {
	switch name {
	case "add":
		return transfer.Add(a, c)
	case "sub":
		return transfer.Sub(a, c)
	case "and":
		return transfer.And(a, c)
	case "or":
		return transfer.Or(a, c)
	case "xor":
		return transfer.Xor(a, c)
	case "umul":
		return transfer.UMul(a, c)
	default:
		return interval.Empty(a.Width())
	}
}

func concreteFn(width int, name string) (func(a, b uint64) uint64, error) {
	m := (uint64(1) << uint(width)) - 1
	switch name {
	case "add":
		return func(a, b uint64) uint64 { return (a + b) & m }, nil
	case "sub":
		return func(a, b uint64) uint64 { return (a - b) & m }, nil
	case "and":
		return func(a, b uint64) uint64 { return a & b }, nil
	case "or":
		return func(a, b uint64) uint64 { return a | b }, nil
	case "xor":
		return func(a, b uint64) uint64 { return a ^ b }, nil
	case "umul":
		return func(a, b uint64) uint64 { return (a * b) & m }, nil
	default:
		return nil, fmt.Errorf("verify: no brute-force reference for op %q", name)
	}
}

// verifyWidth caps exhaustive enumeration: 2^width * 2^width concrete pairs
// per op (4096 at width 6),
// so this stays a sanity check rather than a multi-minute sweep.
const verifyWidth = 6

// runVerify exhaustively checks that each requested operation's abstract
// transfer function never excludes a concrete result it should contain,
// reporting progress the way the teacher's WorkerPool.RunTasks does for
// long-running search jobs.
func runVerify(ops []string) error {
	start := time.Now()
	var anyViolation bool
	for _, op := range ops {
		fn, err := concreteFn(verifyWidth, op)
		if err != nil {
			return err
		}
		report := verifyConcreteOp(op, verifyWidth, fn)
		fmt.Printf("%s: checked %d pairs, %d violations (%s)\n", op, report.checked, report.violated, time.Since(start))
		if report.violated > 0 {
			anyViolation = true
			fmt.Printf("  first violation: %s\n", report.example)
		}
	}
	if anyViolation {
		return fmt.Errorf("soundness violation found")
	}
	fmt.Println("all operations sound over the checked width")
	return nil
}
