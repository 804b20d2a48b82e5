// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package poly

import (
	"sort"

	"github.com/ajroetker/go-mpgcd/bigz"
)

// ZTerm is a single (exponent-vector, coefficient) term of an MPZ.
type ZTerm struct {
	Exp   ExpVec
	Coeff *bigz.Int
}

// MPZ is a canonical sparse multivariate polynomial over Z in the tail
// variables: no zero coefficients, terms in strictly decreasing
// monomial order (spec.md §3).
type MPZ struct {
	Ctx   *Context
	Terms []ZTerm
}

// NewMPZ builds and canonicalizes an MPZ from the given terms. Terms
// sharing an exponent vector are summed; zero-coefficient terms are
// dropped.
func NewMPZ(ctx *Context, terms []ZTerm) *MPZ {
	p := &MPZ{Ctx: ctx, Terms: append([]ZTerm(nil), terms...)}
	p.canonicalize()
	return p
}

// ZeroMPZ returns the additive identity.
func ZeroMPZ(ctx *Context) *MPZ { return &MPZ{Ctx: ctx} }

// ConstMPZ returns the constant polynomial c.
func ConstMPZ(ctx *Context, c *bigz.Int) *MPZ {
	if c.IsZero() {
		return ZeroMPZ(ctx)
	}
	return NewMPZ(ctx, []ZTerm{{Exp: make(ExpVec, ctx.TailVars()), Coeff: c}})
}

func (p *MPZ) canonicalize() {
	sort.SliceStable(p.Terms, func(i, j int) bool {
		return p.Terms[i].Exp.Compare(p.Terms[j].Exp) > 0
	})
	merged := p.Terms[:0]
	for _, t := range p.Terms {
		if len(merged) > 0 && merged[len(merged)-1].Exp.Equal(t.Exp) {
			merged[len(merged)-1].Coeff = merged[len(merged)-1].Coeff.Add(t.Coeff)
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
func (p *MPZ) IsZero() bool { return len(p.Terms) == 0 }

// IsConstant reports whether p is zero or a single constant term.
func (p *MPZ) IsConstant() bool {
	if p.IsZero() {
		return true
	}
	return len(p.Terms) == 1 && p.Terms[0].Exp.IsZero()
}

// Clone returns a deep-enough copy (coefficients are shared Ints, which
// is safe because bigz.Int values are never mutated in place).
func (p *MPZ) Clone() *MPZ {
	terms := make([]ZTerm, len(p.Terms))
	copy(terms, p.Terms)
	return &MPZ{Ctx: p.Ctx, Terms: terms}
}

// Content returns gcd of all coefficients (0 for the zero polynomial).
func (p *MPZ) Content() *bigz.Int {
	if p.IsZero() {
		return bigz.NewInt(0)
	}
	c := p.Terms[0].Coeff.Abs()
	for _, t := range p.Terms[1:] {
		c = c.GCD(t.Coeff)
	}
	return c
}

// DivExactScalar divides every coefficient by d exactly.
func (p *MPZ) DivExactScalar(d *bigz.Int) *MPZ {
	terms := make([]ZTerm, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = ZTerm{Exp: t.Exp, Coeff: t.Coeff.DivExact(d)}
	}
	return &MPZ{Ctx: p.Ctx, Terms: terms}
}

// MulScalar multiplies every coefficient by c.
func (p *MPZ) MulScalar(c *bigz.Int) *MPZ {
	if c.IsZero() {
		return ZeroMPZ(p.Ctx)
	}
	terms := make([]ZTerm, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = ZTerm{Exp: t.Exp, Coeff: t.Coeff.Mul(c)}
	}
	return &MPZ{Ctx: p.Ctx, Terms: terms}
}

// Height returns the maximum absolute coefficient (0 for the zero
// polynomial).
func (p *MPZ) Height() *bigz.Int {
	h := bigz.NewInt(0)
	for _, t := range p.Terms {
		h = bigz.Max(h, t.Coeff.Abs())
	}
	return h
}

// LeadExp returns the exponent vector of the leading term (greatest in
// monomial order), or a zero vector if p is zero.
func (p *MPZ) LeadExp() ExpVec {
	if p.IsZero() {
		return make(ExpVec, p.Ctx.TailVars())
	}
	return p.Terms[0].Exp
}

// CoeffAt returns the coefficient of exponent e, or zero if absent.
func (p *MPZ) CoeffAt(e ExpVec) *bigz.Int {
	for _, t := range p.Terms {
		if t.Exp.Equal(e) {
			return t.Coeff
		}
	}
	return bigz.NewInt(0)
}

// Equal reports structural equality.
func (p *MPZ) Equal(o *MPZ) bool {
	if len(p.Terms) != len(o.Terms) {
		return false
	}
	for i := range p.Terms {
		if !p.Terms[i].Exp.Equal(o.Terms[i].Exp) || !p.Terms[i].Coeff.Equal(o.Terms[i].Coeff) {
			return false
		}
	}
	return true
}
