// Command bvrange evaluates bit-vector interval abstract transfer
// functions from the command line: a small REPL-style tool for exploring
// what the engine's operations compute on concrete inputs, grounded on the
// teacher's cmd/z80opt cobra command tree.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/bvrange/pkg/bridge"
	"github.com/oisee/bvrange/pkg/interval"
	"github.com/oisee/bvrange/pkg/minimize"
	"github.com/oisee/bvrange/pkg/transfer"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bvrange",
		Short: "Bit-vector interval abstract interpretation toolkit",
	}

	var ternaryBudget int
	var onehotBudget int

	evalCmd := &cobra.Command{
		Use:   "eval <op> <operand>...",
		Short: "Evaluate a transfer function on concrete interval operands",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := strings.ToLower(args[0])
			var result interval.Set
			var err error
			switch op {
			case "zeroextend", "signextend", "truncate":
				if len(args) != 3 {
					return fmt.Errorf("%s: expected <operand> <width>", op)
				}
				a, perr := parseOperand(args[1])
				if perr != nil {
					return perr
				}
				w, werr := parseWidthSuffix(args[2])
				if werr != nil {
					return fmt.Errorf("%s: bad width: %w", op, werr)
				}
				switch op {
				case "zeroextend":
					result = transfer.ZeroExtend(a, w)
				case "signextend":
					result = transfer.SignExtend(a, w)
				case "truncate":
					result = transfer.Truncate(a, w)
				}
			case "concat":
				if len(args) != 3 {
					return fmt.Errorf("concat: expected <hi> <lo>")
				}
				hi, perr := parseOperand(args[1])
				if perr != nil {
					return perr
				}
				lo, perr := parseOperand(args[2])
				if perr != nil {
					return perr
				}
				result = transfer.Concat(hi, lo)
			case "onehot":
				if len(args) != 3 {
					return fmt.Errorf("onehot: expected <val> <lsb|msb>")
				}
				val, perr := parseOperand(args[1])
				if perr != nil {
					return perr
				}
				side, serr := parseSide(args[2])
				if serr != nil {
					return serr
				}
				result = transfer.OneHot(val, side, onehotBudget)
			default:
				text := strings.Join(args, " ")
				var operands []interval.Set
				op, operands, err = parseExpr(text)
				if err != nil {
					return err
				}
				result, err = applyOp(op, operands)
				if err != nil {
					return err
				}
			}
			fmt.Printf("%s\n", result)
			fmt.Printf("  intervals: %d\n", result.NumberOfIntervals())
			if v, ok := result.PreciseValue(); ok {
				fmt.Printf("  precise: %s\n", v)
			}
			return nil
		},
	}
	evalCmd.Flags().IntVar(&onehotBudget, "onehot-budget", 8, "max intervals the onehot op's ternary round-trip is allowed to expand to")

	var minimizeK int
	minimizeCmd := &cobra.Command{
		Use:   "minimize <set>",
		Short: "Reduce an interval set to at most k component intervals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			before := s.NumberOfIntervals()
			reduced := minimize.MinimizeIntervals(s, minimizeK)
			fmt.Printf("before: %s (%d intervals)\n", s, before)
			fmt.Printf("after:  %s (%d intervals)\n", reduced, reduced.NumberOfIntervals())
			gaps := minimize.GapSizes(s)
			if len(gaps) > 0 {
				fmt.Printf("original gaps: %v\n", gaps)
			}
			return nil
		},
	}
	minimizeCmd.Flags().IntVarP(&minimizeK, "max", "k", 4, "maximum number of intervals to keep")

	ternaryCmd := &cobra.Command{
		Use:   "ternary <set>",
		Short: "Show the ternary bit pattern an interval set extracts to, and round-trip it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			v := bridge.ExtractTernary(s)
			fmt.Printf("pattern: %s\n", v)
			back := bridge.FromTernary(v, ternaryBudget)
			fmt.Printf("round-trip (budget %d): %s (%d intervals)\n", ternaryBudget, back, back.NumberOfIntervals())
			return nil
		},
	}
	ternaryCmd.Flags().IntVarP(&ternaryBudget, "budget", "b", 8, "max intervals the round-trip is allowed to expand to")

	var sampleOps []string
	var sampleWidth int
	statsCmd := &cobra.Command{
		Use:   "stats [set]",
		Short: "Report cardinality/coverage statistics for a set, or over-approximation rates with --sample",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sampleOps) > 0 {
				return runStatsSample(sampleOps, sampleWidth)
			}
			if len(args) != 1 {
				return fmt.Errorf("stats: expected <set>, or --sample op1,op2,...")
			}
			s, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("set: %s\n", s)
			fmt.Printf("  width: %d\n", s.Width())
			fmt.Printf("  intervals: %d\n", s.NumberOfIntervals())
			fmt.Printf("  empty: %t\n", s.IsEmpty())
			fmt.Printf("  precise: %t\n", s.IsPrecise())
			if !s.IsEmpty() {
				fmt.Printf("  covers zero: %t\n", s.CoversZero())
				fmt.Printf("  covers max: %t\n", s.CoversMax())
				fmt.Printf("  bounds: [%s, %s]\n", s.LowerBound(), s.UpperBound())
			}
			return nil
		},
	}
	statsCmd.Flags().StringSliceVar(&sampleOps, "sample", nil, "binary ops to exhaustively sample for Maximal fallback rate instead of inspecting a single set (e.g. add,sub,and,umul)")
	statsCmd.Flags().IntVar(&sampleWidth, "width", 6, "bit width to use when --sample is given")

	var verifyOps []string
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Exhaustively check requested transfer functions against brute-force concrete enumeration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(verifyOps)
		},
	}
	verifyCmd.Flags().StringSliceVar(&verifyOps, "ops", []string{"add", "sub", "and", "or", "xor"}, "operations to verify")

	rootCmd.AddCommand(evalCmd, minimizeCmd, ternaryCmd, statsCmd, verifyCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// applyOp dispatches a parsed opcode to its transfer.* implementation. It
// is a plain switch rather than a table because arities differ operation to
// operation, unlike the teacher's uniform-arity instruction catalog.
func applyOp(op string, operands []interval.Set) (interval.Set, error) {
	need := func(n int) error {
		if len(operands) != n {
			return fmt.Errorf("%s: expected %d operands, got %d", op, n, len(operands))
		}
		return nil
	}
	switch op {
	case "add":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Add(operands[0], operands[1]), nil
	case "sub":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Sub(operands[0], operands[1]), nil
	case "neg":
		if err := need(1); err != nil {
			return interval.Set{}, err
		}
		return transfer.Neg(operands[0]), nil
	case "umul":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.UMul(operands[0], operands[1]), nil
	case "udiv":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.UDiv(operands[0], operands[1]), nil
	case "and":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.And(operands[0], operands[1]), nil
	case "or":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Or(operands[0], operands[1]), nil
	case "xor":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Xor(operands[0], operands[1]), nil
	case "not":
		if err := need(1); err != nil {
			return interval.Set{}, err
		}
		return transfer.Not(operands[0]), nil
	case "andreduce":
		if err := need(1); err != nil {
			return interval.Set{}, err
		}
		return transfer.AndReduce(operands[0]), nil
	case "orreduce":
		if err := need(1); err != nil {
			return interval.Set{}, err
		}
		return transfer.OrReduce(operands[0]), nil
	case "xorreduce":
		if err := need(1); err != nil {
			return interval.Set{}, err
		}
		return transfer.XorReduce(operands[0]), nil
	case "eq":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Eq(operands[0], operands[1]), nil
	case "ne":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Ne(operands[0], operands[1]), nil
	case "ult":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.ULt(operands[0], operands[1]), nil
	case "ugt":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.UGt(operands[0], operands[1]), nil
	case "slt":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.SLt(operands[0], operands[1]), nil
	case "sgt":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.SGt(operands[0], operands[1]), nil
	case "gate":
		if err := need(2); err != nil {
			return interval.Set{}, err
		}
		return transfer.Gate(operands[0], operands[1]), nil
	default:
		return interval.Set{}, fmt.Errorf("unknown op %q", op)
	}
}

func parseWidthSuffix(s string) (int, error) {
	return strconv.Atoi(s)
}
