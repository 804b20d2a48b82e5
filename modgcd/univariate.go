// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package modgcd

import "github.com/ajroetker/go-mpgcd/poly"

// denseX is a dense coefficient vector over F_p, ascending by degree:
// denseX[i] is the coefficient of X^i. The base case of the recursion
// (zero tail variables) works entirely in this representation, since at
// that point every MPp coefficient is a bare scalar.

func toDenseX(up *poly.MPUP) []uint64 {
	top := up.LeadExp()
	out := make([]uint64, top+1)
	for _, t := range up.Terms {
		out[t.Exp] = leadScalarMPp(t.Coeff)
	}
	return out
}

func fromDenseX(ctx *poly.Context, p uint64, coeffs []uint64) *poly.MPUP {
	var terms []poly.UPTerm
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		mp := poly.NewMPp(ctx, p, []poly.PTerm{{Exp: poly.ExpVec{}, Coeff: c}})
		terms = append(terms, poly.UPTerm{Exp: uint64(i), Coeff: mp})
	}
	return poly.NewMPUP(ctx, p, terms)
}

func trimDense(a []uint64) []uint64 {
	n := len(a)
	for n > 0 && a[n-1] == 0 {
		n--
	}
	return a[:n]
}

func degreeOfDense(a []uint64) int { return len(trimDense(a)) - 1 }

// polyDivModDense divides a by b over F_p (ascending coefficient
// vectors), returning quotient and remainder.
func polyDivModDense(a, b []uint64, p uint64) (q, r []uint64) {
	a = trimDense(a)
	b = trimDense(b)
	da, db := len(a)-1, len(b)-1
	if db < 0 {
		return nil, a
	}
	if da < db {
		return []uint64{}, append([]uint64(nil), a...)
	}
	rbuf := append([]uint64(nil), a...)
	qbuf := make([]uint64, da-db+1)
	lbInv, _ := modInverseW(b[db], p)
	for d := da; d >= db; d-- {
		coeff := rbuf[d]
		if coeff == 0 {
			continue
		}
		idx := d - db
		qc := mulModW(coeff, lbInv, p)
		qbuf[idx] = qc
		for j := 0; j <= db; j++ {
			rbuf[idx+j] = subModW(rbuf[idx+j], mulModW(qc, b[j], p), p)
		}
	}
	return qbuf, trimDense(rbuf[:db])
}

// polyGCDDense runs the Euclidean algorithm over F_p[X] (ascending
// vectors), returning an arbitrary (non-normalized) associate of the
// GCD — callers normalize separately (see monicNormalize).
func polyGCDDense(a, b []uint64, p uint64) []uint64 {
	a = trimDense(a)
	b = trimDense(b)
	for len(b) > 0 {
		_, r := polyDivModDense(a, b, p)
		a, b = b, r
	}
	return a
}

// uniGCD is the base case of DenseGCD: both inputs have zero tail
// variables, so the Euclidean algorithm over F_p[X] applies directly.
func uniGCD(ctx *poly.Context, Ap, Bp *poly.MPUP, p uint64) (*poly.MPUP, *poly.MPUP, *poly.MPUP, bool) {
	a := toDenseX(Ap)
	b := toDenseX(Bp)
	g := polyGCDDense(a, b, p)
	if degreeOfDense(g) < 0 {
		return nil, nil, nil, false
	}
	abar, ra := polyDivModDense(a, g, p)
	bbar, rb := polyDivModDense(b, g, p)
	if degreeOfDense(ra) >= 0 || degreeOfDense(rb) >= 0 {
		return nil, nil, nil, false
	}
	return fromDenseX(ctx, p, g), fromDenseX(ctx, p, abar), fromDenseX(ctx, p, bbar), true
}
