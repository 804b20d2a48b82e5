// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Package crt compiles and runs the straight-line Chinese Remainder
// program spec.md §4.1–§4.2 describes: a balanced binary combiner tree
// over a set of pairwise-coprime moduli, built once and evaluated many
// times from per-call scratch so a single compiled Program is safe to
// share, read-only, across concurrently running goroutines.
package crt

import (
	"sort"

	"github.com/ajroetker/go-mpgcd/bigz"
)

// operand is the tagged variant spec.md §9's "Slot-index encoding" design
// note asks for: either a reference to another instruction's output slot,
// or to one of the program's inputs. Using a tagged struct instead of a
// signed-index convention keeps the scratch buffer's thread-local-ness
// explicit at every call site.
type operand struct {
	isInput bool
	index   int
}

func slotOperand(i int) operand { return operand{isInput: false, index: i} }
func inputOperand(i int) operand { return operand{isInput: true, index: i} }

func (o operand) value(scratch, inputs []*bigz.Int) *bigz.Int {
	if o.isInput {
		return inputs[o.index]
	}
	return scratch[o.index]
}

// instruction is one combine step: slot[A] <- B + I*(C-B) mod M.
type instruction struct {
	A    int
	B, C operand
	I, M *bigz.Int
}

// Program is a compiled CRT straight-line program (spec.md §3 "CRT
// program"): instructions form a binary tree with L-1 internal nodes
// over L leaves; the root writes scratch slot 0.
type Program struct {
	instructions    []instruction
	localSlotCount  int
	temp1, temp2    int
	moduliCount     int
	ok              bool
}

// OK reports whether Precompute succeeded — false iff some pair of the
// supplied moduli (in the given order) failed to be coprime.
func (p *Program) OK() bool { return p.ok }

// LocalSlotCount is how many big.Int-sized scratch slots Run needs.
func (p *Program) LocalSlotCount() int { return p.localSlotCount }

// Len is the number of compiled instructions (0 on failure).
func (p *Program) Len() int { return len(p.instructions) }

// NumModuli is the number of leaves (inputs) the program was compiled
// for.
func (p *Program) NumModuli() int { return p.moduliCount }

// Precompute builds a CRT program for the given ordered moduli list
// (spec.md §4.1). It returns (program, true) on success; on failure
// (some pair of moduli is not coprime, or L==0) it returns a cleared
// program and false.
func Precompute(moduli []*bigz.Int) (*Program, bool) {
	L := len(moduli)
	if L == 0 {
		return &Program{ok: false}, false
	}

	prog := &Program{moduliCount: L}

	if L == 1 {
		if moduli[0].IsZero() {
			return &Program{ok: false}, false
		}
		prog.instructions = []instruction{{
			A: 0,
			B: inputOperand(0),
			C: inputOperand(0),
			I: bigz.NewInt(0),
			M: moduli[0],
		}}
		prog.temp1, prog.temp2 = 1, 2
		prog.localSlotCount = 3
		prog.ok = true
		return prog, true
	}

	// Sort a permutation of indices by ascending modulus bit length;
	// ties are broken arbitrarily by the stable sort's input order.
	perm := make([]int, L)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return moduli[perm[i]].BitLen() < moduli[perm[j]].BitLen()
	})
	bits := func(i int) int { return moduli[perm[i]].BitLen() }

	var instructions []instruction
	nextSlot := 0
	ok := true

	var build func(start, stop int) operand
	build = func(start, stop int) operand {
		if !ok {
			return operand{}
		}
		if stop-start == 1 {
			return inputOperand(perm[start])
		}
		mid := rebalance(start, stop, bits)
		leftOp := build(start, mid)
		rightOp := build(mid, stop)
		if !ok {
			return operand{}
		}
		mLeft := productOf(moduli, perm, start, mid)
		mRight := productOf(moduli, perm, mid, stop)
		if mLeft.IsZero() || mRight.IsZero() {
			ok = false
			return operand{}
		}
		inv, invOK := mLeft.InvMod(mRight)
		if !invOK {
			ok = false
			return operand{}
		}
		idem := mLeft.Mul(inv)
		m := mLeft.Mul(mRight)
		slot := nextSlot
		nextSlot++
		instructions = append(instructions, instruction{A: slot, B: leftOp, C: rightOp, I: idem, M: m})
		return slotOperand(slot)
	}

	root := build(0, L)
	if !ok {
		return &Program{ok: false}, false
	}

	// Remap so the root's slot is 0, per spec.md's "the last instruction
	// is required to target output_scratch[0]".
	rootSlot := root.index
	remap := func(s int) int {
		switch s {
		case rootSlot:
			return 0
		case 0:
			return rootSlot
		default:
			return s
		}
	}
	for i := range instructions {
		instructions[i].A = remap(instructions[i].A)
		if !instructions[i].B.isInput {
			instructions[i].B.index = remap(instructions[i].B.index)
		}
		if !instructions[i].C.isInput {
			instructions[i].C.index = remap(instructions[i].C.index)
		}
	}

	prog.instructions = instructions
	prog.temp1, prog.temp2 = nextSlot, nextSlot+1
	prog.localSlotCount = nextSlot + 2
	prog.ok = true
	return prog, true
}

// rebalance implements spec.md §4.1's bit-weighted split: start at the
// midpoint, then move the boundary right (moving the element at the
// boundary into the left subtree) while the left subtree is lighter (in
// total modulus bits) than the right and the element at the boundary has
// fewer bits than the current difference between the two sides.
func rebalance(start, stop int, bits func(int) int) int {
	mid := start + (stop-start)/2
	var leftBits, rightBits int
	for i := start; i < mid; i++ {
		leftBits += bits(i)
	}
	for i := mid; i < stop; i++ {
		rightBits += bits(i)
	}
	for leftBits < rightBits && mid < stop && bits(mid) < (rightBits-leftBits) {
		b := bits(mid)
		leftBits += b
		rightBits -= b
		mid++
	}
	return mid
}

func productOf(moduli []*bigz.Int, perm []int, start, stop int) *bigz.Int {
	m := bigz.NewInt(1)
	for i := start; i < stop; i++ {
		m = m.Mul(moduli[perm[i]])
	}
	return m
}
