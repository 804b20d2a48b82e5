// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package crt

import "github.com/ajroetker/go-mpgcd/bigz"

// NewScratch allocates a fresh scratch buffer sized for p, for use with
// Run. Each concurrent call to Run must use its own scratch; the
// Program itself is read-only and safely shared.
func (p *Program) NewScratch() []*bigz.Int {
	s := make([]*bigz.Int, p.localSlotCount)
	for i := range s {
		s[i] = bigz.NewInt(0)
	}
	return s
}

// Run evaluates the compiled program on the given residues, writing
// through scratch, and returns the unique least-absolute-value integer
// congruent to inputs[i] modulo the i-th modulus for every i (spec.md
// §4.2). scratch must have at least p.LocalSlotCount() entries; the
// Program and inputs are read-only, so Run is reentrant across
// goroutines sharing the same compiled Program with distinct scratch.
func (p *Program) Run(scratch []*bigz.Int, inputs []*bigz.Int) *bigz.Int {
	for _, instr := range p.instructions {
		b := instr.B.value(scratch, inputs)
		c := instr.C.value(scratch, inputs)
		t1 := b.Sub(c)
		t2 := instr.I.Mul(t1)
		t1 = b.Sub(t2)
		scratch[instr.A] = t1.ModSymmetric(instr.M)
	}
	if len(p.instructions) == 0 {
		return bigz.NewInt(0)
	}
	return scratch[0]
}
