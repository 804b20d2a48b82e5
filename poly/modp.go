// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package poly

import (
	"math/bits"
	"sort"

	"github.com/ajroetker/go-mpgcd/bigz"
)

// PTerm is one (exponent-vector, F_p coefficient) term of an MPp.
type PTerm struct {
	Exp   ExpVec
	Coeff uint64
}

// MPp is the prime-field analogue of MPZ: a sparse multivariate
// polynomial in the tail variables with coefficients in [0,p).
type MPp struct {
	Ctx   *Context
	P     uint64
	Terms []PTerm
}

// NewMPp builds and canonicalizes an MPp, reducing coefficients mod p
// and dropping zeros.
func NewMPp(ctx *Context, p uint64, terms []PTerm) *MPp {
	mp := &MPp{Ctx: ctx, P: p, Terms: append([]PTerm(nil), terms...)}
	for i := range mp.Terms {
		mp.Terms[i].Coeff %= p
	}
	mp.canonicalize()
	return mp
}

func (mp *MPp) canonicalize() {
	sort.SliceStable(mp.Terms, func(i, j int) bool {
		return mp.Terms[i].Exp.Compare(mp.Terms[j].Exp) > 0
	})
	merged := mp.Terms[:0]
	for _, t := range mp.Terms {
		if len(merged) > 0 && merged[len(merged)-1].Exp.Equal(t.Exp) {
			merged[len(merged)-1].Coeff = (merged[len(merged)-1].Coeff + t.Coeff) % mp.P
			continue
		}
		merged = append(merged, t)
	}
	out := merged[:0]
	for _, t := range merged {
		if t.Coeff != 0 {
			out = append(out, t)
		}
	}
	mp.Terms = out
}

// IsZero reports whether mp has no terms.
func (mp *MPp) IsZero() bool { return len(mp.Terms) == 0 }

// LeadExp returns the leading monomial, or the zero vector if mp is
// zero.
func (mp *MPp) LeadExp() ExpVec {
	if mp.IsZero() {
		return make(ExpVec, mp.Ctx.TailVars())
	}
	return mp.Terms[0].Exp
}

// UPTerm is one (word exponent in X, MPp coefficient) term of an MPUP.
type UPTerm struct {
	Exp   uint64
	Coeff *MPp
}

// MPUP is the prime-field analogue of MPUZ.
type MPUP struct {
	Ctx   *Context
	P     uint64
	Terms []UPTerm
}

// NewMPUP builds and canonicalizes an MPUP.
func NewMPUP(ctx *Context, p uint64, terms []UPTerm) *MPUP {
	up := &MPUP{Ctx: ctx, P: p, Terms: append([]UPTerm(nil), terms...)}
	sort.SliceStable(up.Terms, func(i, j int) bool { return up.Terms[i].Exp > up.Terms[j].Exp })
	out := up.Terms[:0]
	for _, t := range up.Terms {
		if !t.Coeff.IsZero() {
			out = append(out, t)
		}
	}
	up.Terms = out
	return up
}

// IsZero reports whether up has no terms.
func (up *MPUP) IsZero() bool { return len(up.Terms) == 0 }

// LeadExp returns the top X-exponent.
func (up *MPUP) LeadExp() uint64 {
	if up.IsZero() {
		return 0
	}
	return up.Terms[0].Exp
}

// LeadCoeff returns the MPp coefficient of the top X-term.
func (up *MPUP) LeadCoeff() *MPp {
	if up.IsZero() {
		return NewMPp(up.Ctx, up.P, nil)
	}
	return up.Terms[0].Coeff
}

// IsConstantInX reports whether up has degree 0 in X.
func (up *MPUP) IsConstantInX() bool {
	return up.IsZero() || (len(up.Terms) == 1 && up.Terms[0].Exp == 0)
}

// Shape computes the same (top-X-exponent, leading monomial) pair as
// MPUZ.Shape, reused verbatim by the split coordinator to compare a
// freshly-reduced image against the running accumulator's shape.
func (up *MPUP) Shape() Shape {
	if up.IsZero() {
		return Shape{TopExp: 0, LeadMono: make(ExpVec, up.Ctx.TailVars())}
	}
	return Shape{TopExp: up.LeadExp(), LeadMono: up.LeadCoeff().LeadExp()}
}

// Reduce maps an MPZ to its image mod p.
func Reduce(mz *MPZ, p uint64) *MPp {
	terms := make([]PTerm, len(mz.Terms))
	for i, t := range mz.Terms {
		terms[i] = PTerm{Exp: t.Exp, Coeff: modWord(t.Coeff, p)}
	}
	return NewMPp(mz.Ctx, p, terms)
}

// ReduceU maps an MPUZ to its image mod p.
func ReduceU(mu *MPUZ, p uint64) *MPUP {
	terms := make([]UPTerm, len(mu.Terms))
	for i, t := range mu.Terms {
		terms[i] = UPTerm{Exp: t.Exp, Coeff: Reduce(t.Coeff, p)}
	}
	return NewMPUP(mu.Ctx, p, terms)
}

// Lift reconstructs the first Z-image from a single modular image,
// taking the symmetric (least-absolute-value) representative of every
// coefficient (spec.md §4.4 step 8, single-prime reconstruction).
func Lift(up *MPUP) *MPUZ {
	terms := make([]UTerm, len(up.Terms))
	pz := bigz.NewUint64(up.P)
	for i, t := range up.Terms {
		zterms := make([]ZTerm, len(t.Coeff.Terms))
		for j, pt := range t.Coeff.Terms {
			zterms[j] = ZTerm{Exp: pt.Exp, Coeff: bigz.NewUint64(pt.Coeff).ModSymmetric(pz)}
		}
		terms[i] = UTerm{Exp: t.Exp, Coeff: NewMPZ(up.Ctx, zterms)}
	}
	return NewMPUZ(up.Ctx, terms)
}

// ToMPUZResidues reinterprets the modular image's coefficients as plain
// Z values in [0,p) — not symmetric-reduced — for feeding into the CRT
// merger alongside an existing Z accumulator (spec.md §4.4 step 8,
// "CRT-combine the new image into the accumulators").
func (up *MPUP) ToMPUZResidues() *MPUZ {
	terms := make([]UTerm, len(up.Terms))
	for i, t := range up.Terms {
		zterms := make([]ZTerm, len(t.Coeff.Terms))
		for j, pt := range t.Coeff.Terms {
			zterms[j] = ZTerm{Exp: pt.Exp, Coeff: bigz.NewUint64(pt.Coeff)}
		}
		terms[i] = UTerm{Exp: t.Exp, Coeff: NewMPZ(up.Ctx, zterms)}
	}
	return NewMPUZ(up.Ctx, terms)
}

func modWord(z *bigz.Int, p uint64) uint64 {
	r := z.Mod(bigz.NewUint64(p))
	return r.Big().Uint64()
}

// mulModWord multiplies two residues mod p via the full 128-bit product,
// safe for p up to the word-prime ceiling this module samples (close to
// 2^64), where a plain uint64 product would overflow.
func mulModWord(a, b, p uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, p)
	return rem
}

// ScaleByWord multiplies every coefficient of up by factor mod up.P —
// used by the split coordinator to normalize a dense-GCD image's
// X-leading coefficient to match gamma mod p (spec.md §4.4 step 7).
func (up *MPUP) ScaleByWord(factor uint64) *MPUP {
	terms := make([]UPTerm, len(up.Terms))
	for i, t := range up.Terms {
		pterms := make([]PTerm, len(t.Coeff.Terms))
		for j, pt := range t.Coeff.Terms {
			pterms[j] = PTerm{Exp: pt.Exp, Coeff: mulModWord(pt.Coeff, factor, up.P)}
		}
		terms[i] = UPTerm{Exp: t.Exp, Coeff: NewMPp(up.Ctx, up.P, pterms)}
	}
	return NewMPUP(up.Ctx, up.P, terms)
}
