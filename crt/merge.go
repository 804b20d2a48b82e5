// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package crt

import (
	"github.com/samber/lo"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
)

// zeroCoeff is the shared zero Z value every input missing a matching
// exponent contributes (spec.md §4.3: "other polynomials contribute 0 (a
// shared zero Z)").
var zeroCoeff = bigz.NewInt(0)

// CRTPolynomial merges k sparse MPZ polynomials term by term, feeding
// the aligned coefficient vector at each distinct exponent through prog,
// and returns the merged polynomial together with the running
// max-absolute-coefficient and sum-of-absolute-coefficients spec.md
// §4.3 asks the caller to maintain (used by the orchestrator's
// divisibility check, spec.md §4.7).
//
// Unlike spec.md's literal "consume, then undo if a later input exceeds
// the tentative maximum" description, this implementation peeks every
// input's head exponent before consuming any of them, so no undo is
// needed; the two are semantically equivalent since terms within each
// input are strictly decreasing.
func CRTPolynomial(ctx *poly.Context, prog *Program, inputs []*poly.MPZ) (*poly.MPZ, *bigz.Int, *bigz.Int) {
	k := len(inputs)
	cursor := make([]int, k)
	scratch := prog.NewScratch()
	vec := make([]*bigz.Int, k)

	var outTerms []poly.ZTerm
	maxAbs := bigz.NewInt(0)
	sumAbs := bigz.NewInt(0)

	for {
		maxExp, ok := headMax(inputs, cursor)
		if !ok {
			break
		}
		for j := range inputs {
			if cursor[j] < len(inputs[j].Terms) && inputs[j].Terms[cursor[j]].Exp.Equal(maxExp) {
				vec[j] = inputs[j].Terms[cursor[j]].Coeff
				cursor[j]++
			} else {
				vec[j] = zeroCoeff
			}
		}
		r := prog.Run(scratch, vec)
		if !r.IsZero() {
			outTerms = append(outTerms, poly.ZTerm{Exp: maxExp.Clone(), Coeff: r})
			abs := r.Abs()
			maxAbs = bigz.Max(maxAbs, abs)
			sumAbs = sumAbs.Add(abs)
		}
	}
	return poly.NewMPZ(ctx, outTerms), maxAbs, sumAbs
}

// headMax returns the greatest exponent among the inputs' unscanned
// heads, and false if every input is exhausted.
func headMax(inputs []*poly.MPZ, cursor []int) (poly.ExpVec, bool) {
	heads := lo.FilterMap(inputs, func(p *poly.MPZ, j int) (poly.ExpVec, bool) {
		if cursor[j] < len(p.Terms) {
			return p.Terms[cursor[j]].Exp, true
		}
		return nil, false
	})
	if len(heads) == 0 {
		return nil, false
	}
	best := heads[0]
	for _, e := range heads[1:] {
		if e.Compare(best) > 0 {
			best = e
		}
	}
	return best, true
}

// ExpResult is a single CRT-merged (word exponent, coefficient
// polynomial) term produced by CRTExp, together with the running height
// accumulators contributed by this term.
type ExpResult struct {
	Term         poly.UTerm
	NonZero      bool
	MaxAbs       *bigz.Int
	SumAbsDelta  *bigz.Int
}

// CRTExp extracts the coefficient of X^exp from each of k MPUZ images
// (the zero MPZ if a given image lacks that term), merges them through
// prog, and reports the resulting MPUZ term — spec.md §4.3's
// monomial-aligned merger applied one X-exponent at a time, as the join
// coordinator needs.
func CRTExp(ctx *poly.Context, prog *Program, exp uint64, inputs []*poly.MPUZ) ExpResult {
	coeffs := lo.Map(inputs, func(p *poly.MPUZ, _ int) *poly.MPZ {
		return p.CoeffAt(exp)
	})
	merged, maxAbs, sumAbs := CRTPolynomial(ctx, prog, coeffs)
	if merged.IsZero() {
		return ExpResult{NonZero: false}
	}
	return ExpResult{
		Term:        poly.UTerm{Exp: exp, Coeff: merged},
		NonZero:     true,
		MaxAbs:      maxAbs,
		SumAbsDelta: sumAbs,
	}
}
