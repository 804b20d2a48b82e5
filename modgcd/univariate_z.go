// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package modgcd

import (
	"math/big"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
)

// zpoly is a dense ascending-degree coefficient vector over Z, trimmed so
// the last entry (if any) is nonzero; a nil/empty slice is the zero
// polynomial. UnivariateGCD's classic primitive-PRS algorithm works
// directly in Z rather than going through a word prime, since a single
// free variable needs none of the modular/CRT machinery the rest of
// this module builds for the multivariate case.
type zpoly []*bigz.Int

func trimZ(p zpoly) zpoly {
	n := len(p)
	for n > 0 && p[n-1].IsZero() {
		n--
	}
	return p[:n]
}

func isZeroZ(p zpoly) bool { return len(trimZ(p)) == 0 }

func degZ(p zpoly) int { return len(trimZ(p)) - 1 }

func leadZ(p zpoly) *bigz.Int {
	p = trimZ(p)
	if len(p) == 0 {
		return bigz.NewInt(0)
	}
	return p[len(p)-1]
}

// contentZ returns gcd of |every coefficient| (0 for the zero polynomial).
func contentZ(p zpoly) *bigz.Int {
	c := bigz.NewInt(0)
	for _, x := range trimZ(p) {
		c = c.GCD(x)
	}
	return c
}

// primPartZ divides every coefficient by the polynomial's content,
// additionally flipping sign so the leading coefficient is positive.
func primPartZ(p zpoly) zpoly {
	p = trimZ(p)
	if len(p) == 0 {
		return p
	}
	c := contentZ(p)
	out := make(zpoly, len(p))
	for i, x := range p {
		if c.IsOne() {
			out[i] = x
		} else {
			out[i] = x.DivExact(c)
		}
	}
	if leadZ(out).Sign() < 0 {
		for i, x := range out {
			out[i] = x.Neg()
		}
	}
	return out
}

func scaleZ(p zpoly, c *bigz.Int) zpoly {
	out := make(zpoly, len(p))
	for i, x := range p {
		out[i] = x.Mul(c)
	}
	return out
}

// divScalarZ divides every coefficient of p by d exactly.
func divScalarZ(p zpoly, d *bigz.Int) zpoly {
	if d.IsOne() {
		return p
	}
	out := make(zpoly, len(p))
	for i, x := range p {
		out[i] = x.DivExact(d)
	}
	return out
}

// subShiftScaleZ computes r - c*x^shift*b, where r and b are coefficient
// vectors and the result is padded/trimmed to the needed length.
func subShiftScaleZ(r zpoly, shift int, c *bigz.Int, b zpoly) zpoly {
	n := len(r)
	if need := shift + len(b); need > n {
		n = need
	}
	out := make(zpoly, n)
	for i := range out {
		out[i] = bigz.NewInt(0)
	}
	for i, x := range r {
		out[i] = x
	}
	for i, x := range b {
		out[shift+i] = out[shift+i].Sub(x.Mul(c))
	}
	return trimZ(out)
}

func addShiftZ(q zpoly, shift int, c *bigz.Int) zpoly {
	n := len(q)
	if need := shift + 1; need > n {
		n = need
	}
	out := make(zpoly, n)
	for i := range out {
		out[i] = bigz.NewInt(0)
	}
	for i, x := range q {
		out[i] = x
	}
	out[shift] = out[shift].Add(c)
	return trimZ(out)
}

// pseudoDivModZ computes q, r such that lc(b)^k * a = q*b + r for some
// k >= 0 and deg(r) < deg(b), via the standard scale-then-subtract
// pseudo-division algorithm (no rational arithmetic needed since every
// step is cleared of denominators by construction).
func pseudoDivModZ(a, b zpoly) (q, r zpoly) {
	r = trimZ(append(zpoly(nil), a...))
	lcB := leadZ(b)
	nb := degZ(b)
	q = zpoly{}
	for degZ(r) >= nb && !isZeroZ(r) {
		d := degZ(r) - nb
		s := leadZ(r)
		r = subShiftScaleZ(scaleZ(r, lcB), d, s, b)
		q = addShiftZ(scaleZ(q, lcB), d, s)
	}
	return q, r
}

// euclidZ runs the primitive PRS (polynomial remainder sequence) to find
// a primitive gcd of a and b, taking the primitive part after every
// pseudo-division to keep coefficients from growing unboundedly.
func euclidZ(a, b zpoly) zpoly {
	a, b = primPartZ(a), primPartZ(b)
	for !isZeroZ(b) {
		_, r := pseudoDivModZ(a, b)
		r = primPartZ(r)
		a, b = b, r
	}
	return a
}

// ratpoly mirrors zpoly over Q, used only for the final exact cofactor
// division (Gauss's lemma guarantees the quotient of a primitive divisor
// of an integer polynomial is itself integral, but the intermediate
// division needs a field).
type ratpoly []*big.Rat

func toRat(p zpoly) ratpoly {
	out := make(ratpoly, len(p))
	for i, x := range p {
		out[i] = new(big.Rat).SetInt(x.Big())
	}
	return out
}

func trimRat(p ratpoly) ratpoly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func degRat(p ratpoly) int { return len(trimRat(p)) - 1 }

// divExactRat divides a by b over Q, failing if the remainder is
// nonzero or any quotient coefficient is not an integer.
func divExactRat(a, b ratpoly) (zpoly, bool) {
	r := append(ratpoly(nil), trimRat(a)...)
	nb := degRat(b)
	if nb < 0 {
		return nil, false
	}
	lcB := b[nb]
	qlen := degRat(a) - nb + 1
	if qlen < 0 {
		qlen = 0
	}
	q := make(ratpoly, qlen)
	for i := range q {
		q[i] = new(big.Rat)
	}
	for degRat(r) >= nb && trimRat(r) != nil && len(trimRat(r)) > 0 {
		d := degRat(r) - nb
		s := new(big.Rat).Quo(r[degRat(r)], lcB)
		for i := 0; i <= nb; i++ {
			term := new(big.Rat).Mul(s, b[i])
			r[d+i] = new(big.Rat).Sub(r[d+i], term)
		}
		q[d] = s
		r = trimRat(r)
	}
	if len(trimRat(r)) != 0 {
		return nil, false
	}
	out := make(zpoly, len(q))
	for i, x := range q {
		if !x.IsInt() {
			return nil, false
		}
		out[i] = bigz.FromBig(new(big.Int).Set(x.Num()))
	}
	return trimZ(out), true
}

func scalarCoeff(mz *poly.MPZ) *bigz.Int {
	if mz.IsZero() {
		return bigz.NewInt(0)
	}
	return mz.Terms[0].Coeff
}

func toZpoly(up *poly.MPUZ) zpoly {
	if up.IsZero() {
		return nil
	}
	out := make(zpoly, up.Terms[0].Exp+1)
	for i := range out {
		out[i] = bigz.NewInt(0)
	}
	for _, t := range up.Terms {
		out[t.Exp] = scalarCoeff(t.Coeff)
	}
	return trimZ(out)
}

func fromZpoly(ctx *poly.Context, p zpoly) *poly.MPUZ {
	p = trimZ(p)
	terms := make([]poly.UTerm, len(p))
	for i, c := range p {
		terms[i] = poly.UTerm{Exp: uint64(i), Coeff: poly.ConstMPZ(ctx, c)}
	}
	return poly.NewMPUZ(ctx, terms)
}

// UnivariateGCD is the gcd_brown_mpoly wrapper's "univariate fallback"
// (spec.md §6): for a single-variable Context it bypasses SPLIT/JOIN
// entirely and runs the classic primitive-PRS Euclidean algorithm
// directly over Z, since a single free variable needs no modular
// recovery machinery. A, B must be built against a Context with
// TailVars()==0.
func UnivariateGCD(ctx *poly.Context, A, B *poly.MPUZ) (G, Abar, Bbar *poly.MPUZ, ok bool) {
	if A.IsZero() && B.IsZero() {
		return poly.ZeroMPUZ(ctx), poly.ZeroMPUZ(ctx), poly.ZeroMPUZ(ctx), true
	}
	if A.IsZero() {
		g, bbar := normalizeSingleZ(ctx, toZpoly(B))
		return g, poly.ZeroMPUZ(ctx), bbar, true
	}
	if B.IsZero() {
		g, abar := normalizeSingleZ(ctx, toZpoly(A))
		return g, abar, poly.ZeroMPUZ(ctx), true
	}

	// Strip the shared Z content before handing primitive operands to
	// euclidZ, exactly as brown.GCD does for the multivariate case: P2
	// (spec.md §8) requires gcd(content(Abar), content(Bbar))==1, which
	// only holds if the gcd(content(A), content(B)) factor is pulled out
	// of G up front rather than left to dilute both cofactors.
	a, b := toZpoly(A), toZpoly(B)
	cA, cB := contentZ(a), contentZ(b)
	cG := cA.GCD(cB)
	cAbar, cBbar := cA.DivExact(cG), cB.DivExact(cG)
	aPrim, bPrim := divScalarZ(a, cA), divScalarZ(b, cB)

	g := euclidZ(aPrim, bPrim)

	abarZ, ok1 := divExactRat(toRat(aPrim), toRat(g))
	bbarZ, ok2 := divExactRat(toRat(bPrim), toRat(g))
	if !ok1 || !ok2 {
		return nil, nil, nil, false
	}
	return fromZpoly(ctx, scaleZ(g, cG)), fromZpoly(ctx, scaleZ(abarZ, cAbar)), fromZpoly(ctx, scaleZ(bbarZ, cBbar)), true
}

func normalizeSingleZ(ctx *poly.Context, p zpoly) (G, cofactor *poly.MPUZ) {
	c := contentZ(p)
	prim := p
	if !c.IsOne() && !c.IsZero() {
		prim = make(zpoly, len(p))
		for i, x := range p {
			prim[i] = x.DivExact(c)
		}
	}
	if leadZ(prim).Sign() < 0 {
		flipped := make(zpoly, len(prim))
		for i, x := range prim {
			flipped[i] = x.Neg()
		}
		prim = flipped
		c = c.Neg()
	}
	return fromZpoly(ctx, prim), fromZpoly(ctx, zpoly{c})
}
