// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package join

import (
	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
)

// kWayMergeDesc merges already-exponent-descending term lists into one
// descending list (spec.md §4.5 step 4: "repeatedly pick the worker
// whose head has the greatest exponent, swap that coefficient into the
// output, advance that worker's cursor").
func kWayMergeDesc(lists [][]poly.UTerm) []poly.UTerm {
	idx := make([]int, len(lists))
	var out []poly.UTerm
	for {
		best := -1
		for i, l := range lists {
			if idx[i] >= len(l) {
				continue
			}
			if best == -1 || l[idx[i]].Exp > lists[best][idx[best]].Exp {
				best = i
			}
		}
		if best == -1 {
			break
		}
		out = append(out, lists[best][idx[best]])
		idx[best]++
	}
	return out
}

// FinalMerge concatenates every worker's private output into the
// canonical decreasing-exponent G, Abar, Bbar (spec.md §4.5 step 4), and
// aggregates their height accumulators for the orchestrator's
// divisibility check (spec.md §4.7, §9's open question).
func FinalMerge(ctx *poly.Context, workers []*Worker) (G, Abar, Bbar *poly.MPUZ, gMax, gSum, abarMax, abarSum, bbarMax, bbarSum *bigz.Int) {
	gLists := make([][]poly.UTerm, len(workers))
	abarLists := make([][]poly.UTerm, len(workers))
	bbarLists := make([][]poly.UTerm, len(workers))
	gMax, gSum = bigz.NewInt(0), bigz.NewInt(0)
	abarMax, abarSum = bigz.NewInt(0), bigz.NewInt(0)
	bbarMax, bbarSum = bigz.NewInt(0), bigz.NewInt(0)

	for i, w := range workers {
		gLists[i] = w.gTerms
		abarLists[i] = w.abarTerms
		bbarLists[i] = w.bbarTerms
		gMax = bigz.Max(gMax, w.GMax)
		gSum = gSum.Add(w.GSum)
		abarMax = bigz.Max(abarMax, w.AbarMax)
		abarSum = abarSum.Add(w.AbarSum)
		bbarMax = bigz.Max(bbarMax, w.BbarMax)
		bbarSum = bbarSum.Add(w.BbarSum)
	}

	G = poly.NewMPUZ(ctx, kWayMergeDesc(gLists))
	Abar = poly.NewMPUZ(ctx, kWayMergeDesc(abarLists))
	Bbar = poly.NewMPUZ(ctx, kWayMergeDesc(bbarLists))
	return
}
