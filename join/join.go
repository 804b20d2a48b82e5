// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Package join implements the Join Coordinator (spec.md §4.5): given N
// accepted images sharing one CRT program, workers claim (polynomial,
// exponent) jobs from three shared descending cursors and CRT-lift one
// term at a time into private outputs; a final serial merge restores
// global exponent order.
package join

import (
	"sync"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/crt"
	"github.com/ajroetker/go-mpgcd/poly"
)

// which identifies one of the three polynomial slots a cursor tracks,
// claimed in the priority order spec.md §4.5 step 3 fixes: G, then
// Abar, then Bbar.
type which int

const (
	whichG which = iota
	whichAbar
	whichBbar
)

// Base is the shared state of one JOIN section (spec.md §3 "Join
// state"): a single mutex guards the three descending exponent cursors;
// the CRT program and the per-image polynomial arrays are read-only for
// the section's lifetime.
type Base struct {
	Ctx  *poly.Context
	Prog *crt.Program

	// G, Abar, Bbar hold one MPUZ per accepted image, in modulus order —
	// the inputs crt.CRTExp merges at each claimed exponent.
	G, Abar, Bbar []*poly.MPUZ

	mu                     sync.Mutex
	gExp, abarExp, bbarExp int64
}

// NewBase seeds the three exponent cursors at the top exponent of each
// image sequence (spec.md §4.5 step 2). G, Abar, Bbar must have matching
// top-level structure (the same shape after the split coordinator's
// filtering) and share the given CRT program over their moduli.
func NewBase(ctx *poly.Context, prog *crt.Program, G, Abar, Bbar []*poly.MPUZ) *Base {
	return &Base{
		Ctx:     ctx,
		Prog:    prog,
		G:       G,
		Abar:    Abar,
		Bbar:    Bbar,
		gExp:    topExp(G),
		abarExp: topExp(Abar),
		bbarExp: topExp(Bbar),
	}
}

func topExp(images []*poly.MPUZ) int64 {
	top := int64(-1)
	for _, img := range images {
		if !img.IsZero() {
			if e := int64(img.LeadExp()); e > top {
				top = e
			}
		}
	}
	return top
}

// job is one claimed (which-polynomial, exponent) unit of work.
type job struct {
	w   which
	exp uint64
}

// claim takes the next job in priority order G, Abar, Bbar, decrementing
// that cursor, or reports done=true once all three are -1 (spec.md
// §4.5 step 3).
func (b *Base) claim() (j job, done bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.gExp >= 0:
		j = job{w: whichG, exp: uint64(b.gExp)}
		b.gExp--
	case b.abarExp >= 0:
		j = job{w: whichAbar, exp: uint64(b.abarExp)}
		b.abarExp--
	case b.bbarExp >= 0:
		j = job{w: whichBbar, exp: uint64(b.bbarExp)}
		b.bbarExp--
	default:
		return job{}, true
	}
	return j, false
}

// Worker is one join worker's private output (spec.md §3 "Each worker
// owns {G,Abar,Bbar : MPU_Z and height accumulators}"). Each term list
// is in decreasing exponent order, because a worker claims each
// polynomial's exponents from one shared decreasing cursor; FinalMerge
// interleaves the workers' lists into one decreasing-exponent order.
type Worker struct {
	gTerms, abarTerms, bbarTerms []poly.UTerm

	GMax, GSum, AbarMax, AbarSum, BbarMax, BbarSum *bigz.Int
}

// NewWorker returns a Worker with zeroed height accumulators.
func NewWorker() *Worker {
	return &Worker{
		GMax: bigz.NewInt(0), GSum: bigz.NewInt(0),
		AbarMax: bigz.NewInt(0), AbarSum: bigz.NewInt(0),
		BbarMax: bigz.NewInt(0), BbarSum: bigz.NewInt(0),
	}
}

// RunWorker claims jobs from base until none remain, CRT-lifting one
// exponent at a time into w's private term lists and height
// accumulators.
func RunWorker(base *Base, w *Worker) {
	for {
		j, done := base.claim()
		if done {
			return
		}
		var images []*poly.MPUZ
		switch j.w {
		case whichG:
			images = base.G
		case whichAbar:
			images = base.Abar
		case whichBbar:
			images = base.Bbar
		}
		res := crt.CRTExp(base.Ctx, base.Prog, j.exp, images)
		if !res.NonZero {
			continue
		}
		switch j.w {
		case whichG:
			w.gTerms = append(w.gTerms, res.Term)
			w.GMax = bigz.Max(w.GMax, res.MaxAbs)
			w.GSum = w.GSum.Add(res.SumAbsDelta)
		case whichAbar:
			w.abarTerms = append(w.abarTerms, res.Term)
			w.AbarMax = bigz.Max(w.AbarMax, res.MaxAbs)
			w.AbarSum = w.AbarSum.Add(res.SumAbsDelta)
		case whichBbar:
			w.bbarTerms = append(w.bbarTerms, res.Term)
			w.BbarMax = bigz.Max(w.BbarMax, res.MaxAbs)
			w.BbarSum = w.BbarSum.Add(res.SumAbsDelta)
		}
	}
}
