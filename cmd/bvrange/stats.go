package main

import (
	"fmt"

	"github.com/oisee/bvrange/pkg/bits"
	"github.com/oisee/bvrange/pkg/interval"
)

func preciseOf(v uint64, width int) interval.Set {
	return interval.Precise(bits.New(v, width))
}

// overApproxReport counts, across an exhaustive sweep of operand pairs at a
// fixed width, how often a transfer function's abstract result degrades to
// the full-range Maximal set rather than a tighter bound — the same kind of
// "how much did we give up" telemetry the teacher's result.Table reports
// for accepted rewrite rules, applied here to over-approximation instead.
type overApproxReport struct {
	op      string
	total   int64
	maximal int64
}

func (r overApproxReport) rate() float64 {
	if r.total == 0 {
		return 0
	}
	return float64(r.maximal) / float64(r.total)
}

// sampleOverApprox exhaustively enumerates every pair of precise operands at
// the given width, runs the named binary operation, and tallies how often
// the result comes back Maximal(width) — a direct signal of how often this
// operation loses all precision on fully-concrete inputs (the worst case for
// any transfer function, since two precise operands give the harness the
// tightest possible corners to work with).
func sampleOverApprox(name string, width int) (overApproxReport, error) {
	total := uint64(1) << uint(width)
	report := overApproxReport{op: name}
	maximal := interval.Maximal(width)
	for a := uint64(0); a < total; a++ {
		for b := uint64(0); b < total; b++ {
			av := preciseOf(a, width)
			bv := preciseOf(b, width)
			result := dispatchConcrete(name, av, bv)
			report.total++
			if setsEqual(result, maximal) {
				report.maximal++
			}
		}
	}
	return report, nil
}

func setsEqual(a, b interval.Set) bool {
	if a.Width() != b.Width() || a.NumberOfIntervals() != b.NumberOfIntervals() {
		return false
	}
	for i, iv := range a.Intervals() {
		other := b.Intervals()[i]
		if !iv.Lo.Equal(other.Lo) || !iv.Hi.Equal(other.Hi) {
			return false
		}
	}
	return true
}

// runStatsSample runs sampleOverApprox for each requested op and prints the
// fallback rate, mirroring runVerify's per-op report loop in verify.go.
func runStatsSample(ops []string, width int) error {
	for _, op := range ops {
		report, err := sampleOverApprox(op, width)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d/%d precise pairs fell back to Maximal (%.1f%%)\n",
			report.op, report.maximal, report.total, report.rate()*100)
	}
	return nil
}
