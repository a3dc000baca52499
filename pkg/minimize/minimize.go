// Package minimize implements MinimizeIntervals: reducing an interval.Set to
// at most k component intervals by greedily merging the cheapest gaps
// first (spec §4.3, §9).
package minimize

import (
	"container/heap"

	"github.com/samber/lo"

	"github.com/oisee/bvrange/pkg/interval"
)

// node is one arena slot: an interval plus links to its neighbors in the
// still-live doubly-linked list, and the gap cost to merge with the next
// live node. prev/next of -1 marks a list end.
type node struct {
	iv         interval.Interval
	prev, next int
	gapToNext  uint64 // valid only while next != -1 and this node is live
	removed    bool
}

// gapItem is a min-heap entry keyed by gap size, tie-broken by the distance
// itself then by left-node arena position, matching spec §4.3's tie-break
// rule (distance, position) ascending.
type gapItem struct {
	left int
	gap  uint64
}

type gapHeap []gapItem

func (h gapHeap) Len() int { return len(h) }
func (h gapHeap) Less(i, j int) bool {
	if h[i].gap != h[j].gap {
		return h[i].gap < h[j].gap
	}
	return h[i].left < h[j].left
}
func (h gapHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *gapHeap) Push(x any)        { *h = append(*h, x.(gapItem)) }
func (h *gapHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// gapBetween returns b.Lo - a.Hi - 1 as a uint64: the number of values strictly
// between two adjacent proper intervals that merging would also absorb.
func gapBetween(a, b interval.Interval) uint64 {
	return b.Lo.Uint64() - a.Hi.Uint64() - 1
}

// MinimizeIntervals reduces s to at most k component intervals, greedily
// merging the pair of adjacent intervals separated by the smallest gap
// until the count fits the budget (spec §4.3). If s already has k or fewer
// intervals it is returned unchanged. k must be >= 1; k == 1 returns the
// convex hull directly without running the merge loop.
func MinimizeIntervals(s interval.Set, k int) interval.Set {
	if k < 1 {
		panic("minimize: budget must be >= 1")
	}
	if s.NumberOfIntervals() <= k {
		return s
	}
	if k == 1 {
		return s.ConvexHull()
	}

	ivs := s.Intervals()
	n := len(ivs)
	arena := make([]node, n)
	for i, iv := range ivs {
		arena[i] = node{iv: iv, prev: i - 1, next: i + 1}
	}
	arena[n-1].next = -1

	h := &gapHeap{}
	heap.Init(h)
	for i := 0; i < n-1; i++ {
		g := gapBetween(arena[i].iv, arena[i+1].iv)
		arena[i].gapToNext = g
		heap.Push(h, gapItem{left: i, gap: g})
	}

	live := n
	for live > k {
		item := heap.Pop(h).(gapItem)
		left := item.left
		if arena[left].removed || arena[left].next == -1 {
			continue // stale heap entry from a node already merged away
		}
		right := arena[left].next
		if arena[left].gapToNext != item.gap {
			continue // stale: left's neighbor changed since this entry was pushed
		}

		// merge right into left
		merged := interval.Interval{Lo: arena[left].iv.Lo, Hi: arena[right].iv.Hi}
		arena[left].iv = merged
		arena[right].removed = true
		newNext := arena[right].next
		arena[left].next = newNext
		if newNext != -1 {
			arena[newNext].prev = left
			g := gapBetween(arena[left].iv, arena[newNext].iv)
			arena[left].gapToNext = g
			heap.Push(h, gapItem{left: left, gap: g})
		}
		live--
	}

	var out []interval.Interval
	for i := 0; i < n; i++ {
		if !arena[i].removed {
			out = append(out, arena[i].iv)
		}
	}
	return interval.FromIntervals(s.Width(), out)
}

// gapSizes exposes each consecutive gap in a normalized set, used by the
// CLI's minimize subcommand to report how much slack was absorbed.
func gapSizes(s interval.Set) []uint64 {
	ivs := s.Intervals()
	return lo.Map(ivs[:max(0, len(ivs)-1)], func(iv interval.Interval, i int) uint64 {
		return gapBetween(iv, ivs[i+1])
	})
}

// GapSizes is the exported form of gapSizes: the gap between each
// consecutive pair of intervals in s. The CLI reports it for the set as
// given, before MinimizeIntervals runs.
func GapSizes(s interval.Set) []uint64 { return gapSizes(s) }
