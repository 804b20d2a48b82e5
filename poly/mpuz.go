// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package poly

import (
	"sort"

	"github.com/ajroetker/go-mpgcd/bigz"
)

// UTerm is one (word exponent in X, MPZ coefficient) term of an MPUZ.
type UTerm struct {
	Exp   uint64
	Coeff *MPZ
}

// MPUZ is a recursive multivariate polynomial over Z in one distinguished
// variable X over MPZ coefficients, exponents strictly decreasing
// (spec.md §3).
type MPUZ struct {
	Ctx   *Context
	Terms []UTerm
}

// NewMPUZ builds and canonicalizes an MPUZ.
func NewMPUZ(ctx *Context, terms []UTerm) *MPUZ {
	p := &MPUZ{Ctx: ctx, Terms: append([]UTerm(nil), terms...)}
	p.canonicalize()
	return p
}

// ZeroMPUZ returns the additive identity.
func ZeroMPUZ(ctx *Context) *MPUZ { return &MPUZ{Ctx: ctx} }

func (p *MPUZ) canonicalize() {
	sort.SliceStable(p.Terms, func(i, j int) bool { return p.Terms[i].Exp > p.Terms[j].Exp })
	merged := p.Terms[:0]
	for _, t := range p.Terms {
		if len(merged) > 0 && merged[len(merged)-1].Exp == t.Exp {
			sum := NewMPZ(p.Ctx, append(append([]ZTerm(nil), merged[len(merged)-1].Coeff.Terms...), t.Coeff.Terms...))
			merged[len(merged)-1].Coeff = sum
			continue
		}
		merged = append(merged, t)
	}
	out := merged[:0]
	for _, t := range merged {
		if !t.Coeff.IsZero() {
			out = append(out, t)
		}
	}
	p.Terms = out
}

// IsZero reports whether p has no terms.
func (p *MPUZ) IsZero() bool { return len(p.Terms) == 0 }

// IsConstantInX reports whether p has degree 0 in X (a single term at
// exponent 0, or the zero polynomial).
func (p *MPUZ) IsConstantInX() bool {
	if p.IsZero() {
		return true
	}
	return len(p.Terms) == 1 && p.Terms[0].Exp == 0
}

// LeadExp returns the top X-exponent, or 0 if p is zero.
func (p *MPUZ) LeadExp() uint64 {
	if p.IsZero() {
		return 0
	}
	return p.Terms[0].Exp
}

// LeadCoeff returns the MPZ coefficient of the top X-term.
func (p *MPUZ) LeadCoeff() *MPZ {
	if p.IsZero() {
		return ZeroMPZ(p.Ctx)
	}
	return p.Terms[0].Coeff
}

// CoeffAt returns the MPZ coefficient of X^e, or the zero polynomial if
// absent.
func (p *MPUZ) CoeffAt(e uint64) *MPZ {
	for _, t := range p.Terms {
		if t.Exp == e {
			return t.Coeff
		}
	}
	return ZeroMPZ(p.Ctx)
}

// Shape is the (top-X-exponent, leading-monomial-of-leading-coefficient)
// pair spec.md §4.4/§9 uses to detect unlucky primes.
type Shape struct {
	TopExp   uint64
	LeadMono ExpVec
}

// Compare implements the total order on shapes: compare TopExp first,
// then the leading coefficient's monomial under ExpVec.Compare.
func (s Shape) Compare(o Shape) int {
	switch {
	case s.TopExp < o.TopExp:
		return -1
	case s.TopExp > o.TopExp:
		return 1
	}
	return s.LeadMono.Compare(o.LeadMono)
}

// ShapeOf computes the Shape of p.
func ShapeOf(p *MPUZ) Shape {
	if p.IsZero() {
		return Shape{TopExp: 0, LeadMono: make(ExpVec, p.Ctx.TailVars())}
	}
	return Shape{TopExp: p.LeadExp(), LeadMono: p.LeadCoeff().LeadExp()}
}

// Content returns the Z content of p: gcd of every coefficient of every
// MPZ term.
func (p *MPUZ) Content() *bigz.Int {
	c := bigz.NewInt(0)
	for _, t := range p.Terms {
		c = c.GCD(t.Coeff.Content())
	}
	return c
}

// DivExactFmpz divides every coefficient by d exactly.
func (p *MPUZ) DivExactFmpz(d *bigz.Int) *MPUZ {
	if d.IsOne() {
		return p
	}
	terms := make([]UTerm, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = UTerm{Exp: t.Exp, Coeff: t.Coeff.DivExactScalar(d)}
	}
	return &MPUZ{Ctx: p.Ctx, Terms: terms}
}

// MulFmpz multiplies every coefficient by c.
func (p *MPUZ) MulFmpz(c *bigz.Int) *MPUZ {
	if c.IsOne() {
		return p
	}
	terms := make([]UTerm, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = UTerm{Exp: t.Exp, Coeff: t.Coeff.MulScalar(c)}
	}
	return &MPUZ{Ctx: p.Ctx, Terms: terms}
}

// Height returns the maximum absolute coefficient across all terms.
func (p *MPUZ) Height() *bigz.Int {
	h := bigz.NewInt(0)
	for _, t := range p.Terms {
		h = bigz.Max(h, t.Coeff.Height())
	}
	return h
}

// LeadScalar returns the overall leading scalar coefficient: the Z
// coefficient of the leading monomial of the leading (in X) MPZ
// coefficient, or zero for the zero polynomial. This is the gamma the
// orchestrator computes as gcd(lc(A), lc(B)) (spec.md §4.7 step 2).
func (p *MPUZ) LeadScalar() *bigz.Int {
	lc := p.LeadCoeff()
	if lc.IsZero() {
		return bigz.NewInt(0)
	}
	return lc.Terms[0].Coeff
}

// Equal reports structural equality.
func (p *MPUZ) Equal(o *MPUZ) bool {
	if len(p.Terms) != len(o.Terms) {
		return false
	}
	for i := range p.Terms {
		if p.Terms[i].Exp != o.Terms[i].Exp || !p.Terms[i].Coeff.Equal(o.Terms[i].Coeff) {
			return false
		}
	}
	return true
}

// Mul multiplies two MPUZ polynomials (dense-ish schoolbook convolution
// in X, distributing into MPZ coefficient products). Used by tests to
// check the P1 identity A = G*Abar.
func Mul(a, b *MPUZ) *MPUZ {
	ctx := a.Ctx
	acc := map[uint64]*MPZ{}
	for _, ta := range a.Terms {
		for _, tb := range b.Terms {
			e := ta.Exp + tb.Exp
			prod := mulMPZ(ta.Coeff, tb.Coeff)
			if cur, ok := acc[e]; ok {
				acc[e] = NewMPZ(ctx, append(append([]ZTerm(nil), cur.Terms...), prod.Terms...))
			} else {
				acc[e] = prod
			}
		}
	}
	terms := make([]UTerm, 0, len(acc))
	for e, c := range acc {
		terms = append(terms, UTerm{Exp: e, Coeff: c})
	}
	return NewMPUZ(ctx, terms)
}

func mulMPZ(a, b *MPZ) *MPZ {
	ctx := a.Ctx
	acc := map[string]ZTerm{}
	for _, ta := range a.Terms {
		for _, tb := range b.Terms {
			e := ta.Exp.Add(tb.Exp)
			key := expKey(e)
			c := ta.Coeff.Mul(tb.Coeff)
			if cur, ok := acc[key]; ok {
				acc[key] = ZTerm{Exp: e, Coeff: cur.Coeff.Add(c)}
			} else {
				acc[key] = ZTerm{Exp: e, Coeff: c}
			}
		}
	}
	terms := make([]ZTerm, 0, len(acc))
	for _, t := range acc {
		terms = append(terms, t)
	}
	return NewMPZ(ctx, terms)
}
