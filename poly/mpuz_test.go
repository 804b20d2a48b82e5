// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package poly

import (
	"testing"

	"github.com/ajroetker/go-mpgcd/bigz"
)

func linearForTest(ctx *Context, coeffs ...int64) *MPUZ {
	terms := make([]UTerm, len(coeffs))
	deg := uint64(len(coeffs) - 1)
	for i, c := range coeffs {
		terms[i] = UTerm{Exp: deg - uint64(i), Coeff: ConstMPZ(ctx, bigz.NewInt(c))}
	}
	return NewMPUZ(ctx, terms)
}

func TestMPUZMulAndEqual(t *testing.T) {
	ctx, _ := NewContext(1)
	a := linearForTest(ctx, 1, -1) // X-1
	b := linearForTest(ctx, 1, -2) // X-2
	got := Mul(a, b)
	want := linearForTest(ctx, 1, -3, 2) // X^2-3X+2
	if !got.Equal(want) {
		t.Errorf("Mul = %+v, want %+v", got, want)
	}
}

func TestMPUZContentAndDivExactFmpz(t *testing.T) {
	ctx, _ := NewContext(1)
	p := linearForTest(ctx, 4, -6) // 4X-6, content 2
	c := p.Content()
	if c.Cmp(bigz.NewInt(2)) != 0 {
		t.Fatalf("Content() = %v, want 2", c)
	}
	q := p.DivExactFmpz(c)
	want := linearForTest(ctx, 2, -3)
	if !q.Equal(want) {
		t.Errorf("DivExactFmpz = %+v, want %+v", q, want)
	}
}

func TestMPUZShapeOf(t *testing.T) {
	ctx, _ := NewContext(2)
	e1 := ExpVec{1}
	e0 := ExpVec{0}
	// p = X^2 + XY
	p := NewMPUZ(ctx, []UTerm{
		{Exp: 2, Coeff: ConstMPZ(ctx, bigz.NewInt(1))},
		{Exp: 1, Coeff: NewMPZ(ctx, []ZTerm{{Exp: e1, Coeff: bigz.NewInt(1)}})},
	})
	s := ShapeOf(p)
	if s.TopExp != 2 {
		t.Errorf("TopExp = %d, want 2", s.TopExp)
	}
	if !s.LeadMono.Equal(e0) {
		t.Errorf("LeadMono = %v, want %v (constant leading term of X^2)", s.LeadMono, e0)
	}
}

func TestMPUZLeadScalarAndIsConstantInX(t *testing.T) {
	ctx, _ := NewContext(1)
	p := linearForTest(ctx, 5, -1)
	if p.LeadScalar().Cmp(bigz.NewInt(5)) != 0 {
		t.Errorf("LeadScalar() = %v, want 5", p.LeadScalar())
	}
	if p.IsConstantInX() {
		t.Error("degree-1 polynomial reported constant in X")
	}
	c := linearForTest(ctx, 5)
	if !c.IsConstantInX() {
		t.Error("degree-0 polynomial not reported constant in X")
	}
}

func TestMPUZHeight(t *testing.T) {
	ctx, _ := NewContext(1)
	p := linearForTest(ctx, 3, -11, 2)
	if h := p.Height(); h.Cmp(bigz.NewInt(11)) != 0 {
		t.Errorf("Height() = %v, want 11", h)
	}
}
