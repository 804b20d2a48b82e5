// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package modgcd

import "github.com/ajroetker/go-mpgcd/poly"

// lagrangeBasis returns, for the given sample nodes, the Lagrange basis
// polynomials L_i(y) (ascending coefficient vectors, one per node) with
// L_i(nodes[j]) == 1 if i==j else 0. Reused across every (X-exponent,
// tail-monomial) coordinate being interpolated, since it depends only on
// the sample points, not the sampled values.
func lagrangeBasis(nodes []uint64, p uint64) [][]uint64 {
	master := []uint64{1 % p}
	for _, nd := range nodes {
		master = mulLinearDense(master, nd, p)
	}
	basis := make([][]uint64, len(nodes))
	for i, ni := range nodes {
		q := syntheticDivDense(master, ni, p)
		denom := evalDenseAt(q, ni, p)
		invDenom, _ := modInverseW(denom, p)
		for j := range q {
			q[j] = mulModW(q[j], invDenom, p)
		}
		basis[i] = q
	}
	return basis
}

// mulLinearDense multiplies the ascending coefficient vector a by (y -
// node) over F_p.
func mulLinearDense(a []uint64, node uint64, p uint64) []uint64 {
	res := make([]uint64, len(a)+1)
	for i, c := range a {
		res[i+1] = addModW(res[i+1], c, p)
		res[i] = subModW(res[i], mulModW(c, node, p), p)
	}
	return res
}

// syntheticDivDense divides the ascending coefficient vector master
// (degree len(master)-1) by (y - node), returning the quotient (the
// remainder is discarded — callers only use this for exact factors of
// the Lagrange master polynomial).
func syntheticDivDense(master []uint64, node uint64, p uint64) []uint64 {
	n := len(master) - 1
	q := make([]uint64, n)
	q[n-1] = master[n]
	for i := n - 1; i >= 1; i-- {
		q[i-1] = addModW(master[i], mulModW(node, q[i], p), p)
	}
	return q
}

// evalDenseAt evaluates the ascending coefficient vector coeffs at x via
// Horner's method over F_p.
func evalDenseAt(coeffs []uint64, x uint64, p uint64) uint64 {
	result := uint64(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = addModW(mulModW(result, x, p), coeffs[i], p)
	}
	return result
}

// coeffAt looks up the scalar coefficient of (X^xexp, tailExp) in up,
// returning 0 if absent.
func coeffAt(up *poly.MPUP, xexp uint64, tailExp poly.ExpVec) uint64 {
	for _, t := range up.Terms {
		if t.Exp != xexp {
			continue
		}
		for _, pt := range t.Coeff.Terms {
			if pt.Exp.Equal(tailExp) {
				return pt.Coeff
			}
		}
		return 0
	}
	return 0
}

// interpKey names one (X-exponent, tail-monomial) coordinate collected
// across the sampled images.
type interpKey struct {
	xexp    uint64
	tailStr string
	tailExp poly.ExpVec
}

// collectKeys gathers every (X-exponent, tail-monomial) coordinate that
// appears in any of the sampled images, so interpolation can fill in an
// implicit zero wherever one particular sample happens to be missing a
// term another sample has.
func collectKeys(samples []*poly.MPUP) []interpKey {
	seen := map[string]int{}
	var keys []interpKey
	for _, up := range samples {
		for _, t := range up.Terms {
			for _, pt := range t.Coeff.Terms {
				k := interpKeyString(t.Exp, pt.Exp)
				if _, ok := seen[k]; !ok {
					seen[k] = len(keys)
					keys = append(keys, interpKey{xexp: t.Exp, tailStr: k, tailExp: pt.Exp.Clone()})
				}
			}
		}
	}
	return keys
}

func interpKeyString(xexp uint64, tailExp poly.ExpVec) string {
	b := make([]byte, 0, 9+len(tailExp)*9)
	x := xexp
	for x >= 0x80 {
		b = append(b, byte(x)|0x80)
		x >>= 7
	}
	b = append(b, byte(x))
	for _, e := range tailExp {
		y := e
		for y >= 0x80 {
			b = append(b, byte(y)|0x80)
			y >>= 7
		}
		b = append(b, byte(y))
	}
	return string(b)
}

// interpolateMPUP reconstructs a (ctx.TailVars())-tail-variable MPUP from
// samples taken at nodes[i] by evaluating the last tail variable away:
// every (X-exponent, tail-monomial) coordinate's scalar values across the
// samples are combined through the shared Lagrange basis into a
// polynomial in the eliminated variable, which becomes the new trailing
// exponent component.
func interpolateMPUP(ctx *poly.Context, p uint64, nodes []uint64, basis [][]uint64, samples []*poly.MPUP) *poly.MPUP {
	t := len(nodes)
	keys := collectKeys(samples)

	byX := map[uint64][]poly.PTerm{}
	for _, k := range keys {
		acc := make([]uint64, t)
		for i, s := range samples {
			v := coeffAt(s, k.xexp, k.tailExp)
			if v == 0 {
				continue
			}
			bi := basis[i]
			for d, bc := range bi {
				acc[d] = addModW(acc[d], mulModW(v, bc, p), p)
			}
		}
		for d, c := range acc {
			if c == 0 {
				continue
			}
			fullExp := append(k.tailExp.Clone(), uint64(d))
			byX[k.xexp] = append(byX[k.xexp], poly.PTerm{Exp: fullExp, Coeff: c})
		}
	}

	var terms []poly.UPTerm
	for xexp, pterms := range byX {
		terms = append(terms, poly.UPTerm{Exp: xexp, Coeff: poly.NewMPp(ctx, p, pterms)})
	}
	return poly.NewMPUP(ctx, p, terms)
}
