// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package modgcd

import "github.com/ajroetker/go-mpgcd/poly"

// DenseGCD computes a GCD image, grounded on spec.md's "dense recursive
// modular GCD" external collaborator (§1, §6): given two F_p images
// sharing ctx, it returns (G, Abar, Bbar, true) with A ≡ G*Abar and B ≡
// G*Bbar (mod p), G monic (its overall leading coefficient, under the
// full monomial order, is 1), or (nil,nil,nil,false) if it declines —
// either genuinely coprime inputs were not distinguished from a bad
// evaluation point within the retry budget, or p is too small to supply
// enough sample points for the degree bounds involved. Split and Join
// coordinators treat a decline exactly like any other unlucky-prime
// signal: discard the image and move to the next prime.
//
// The algorithm peels tail variables one at a time from the end,
// evaluating at sample points and recursing, bottoming out at a
// univariate Euclidean algorithm over F_p[X] once no tail variables
// remain, then reconstructing each eliminated variable via Lagrange
// interpolation. Every level re-normalizes its result to be monic before
// returning, which is what makes the interpolation at the level above
// well-defined: two samples naturally agree past a scalar multiple only
// once both are canonically rescaled the same way.
func DenseGCD(ctx *poly.Context, Ap, Bp *poly.MPUP, p uint64) (*poly.MPUP, *poly.MPUP, *poly.MPUP, bool) {
	if Ap.IsZero() || Bp.IsZero() {
		return nil, nil, nil, false
	}
	if ctx.TailVars() == 0 {
		G, Abar, Bbar, ok := uniGCD(ctx, Ap, Bp, p)
		if !ok {
			return nil, nil, nil, false
		}
		return monicNormalize(G, Abar, Bbar, p)
	}

	degA := maxLastVarDegree(Ap)
	degB := maxLastVarDegree(Bp)
	numPoints := int(maxU64(degA, degB)) + 1
	if uint64(numPoints) >= p {
		return nil, nil, nil, false
	}

	newCtx, err := poly.NewContext(ctx.NumVars - 1)
	if err != nil {
		return nil, nil, nil, false
	}

	type sample struct {
		y                  uint64
		G, Abar, Bbar *poly.MPUP
	}
	var samples []sample
	var refShape poly.Shape
	haveRef := false

	const maxAttemptsPerPoint = 8
	maxAttempts := numPoints*maxAttemptsPerPoint + 64
	attempts := 0
	var y uint64
	for len(samples) < numPoints {
		attempts++
		if attempts > maxAttempts || y >= p {
			return nil, nil, nil, false
		}
		thisY := y
		y++

		Ay := evalLastVarU(Ap, thisY, p, newCtx)
		By := evalLastVarU(Bp, thisY, p, newCtx)
		if Ay.IsZero() || By.IsZero() {
			continue // bad point: leading structure collapsed under evaluation.
		}
		Gy, Abary, Bbary, ok := DenseGCD(newCtx, Ay, By, p)
		if !ok {
			continue
		}
		sh := Gy.Shape()
		if !haveRef {
			refShape = sh
			haveRef = true
		} else if cmp := sh.Compare(refShape); cmp != 0 {
			if cmp < 0 {
				// Smaller shape: every earlier sample was unlucky
				// (spurious common factor at those points); restart.
				samples = samples[:0]
				refShape = sh
			} else {
				continue // worse shape at this point: skip it.
			}
		}
		samples = append(samples, sample{y: thisY, G: Gy, Abar: Abary, Bbar: Bbary})
	}

	nodes := make([]uint64, len(samples))
	Gs := make([]*poly.MPUP, len(samples))
	Abars := make([]*poly.MPUP, len(samples))
	Bbars := make([]*poly.MPUP, len(samples))
	for i, s := range samples {
		nodes[i] = s.y
		Gs[i] = s.G
		Abars[i] = s.Abar
		Bbars[i] = s.Bbar
	}
	basis := lagrangeBasis(nodes, p)

	G := interpolateMPUP(ctx, p, nodes, basis, Gs)
	Abar := interpolateMPUP(ctx, p, nodes, basis, Abars)
	Bbar := interpolateMPUP(ctx, p, nodes, basis, Bbars)
	if G.IsZero() {
		return nil, nil, nil, false
	}
	return monicNormalize(G, Abar, Bbar, p)
}

// monicNormalize rescales (G,Abar,Bbar) so G's overall leading
// coefficient (under the full monomial order: top X-exponent, then
// leading tail-monomial) is 1, preserving A=G*Abar and B=G*Bbar.
func monicNormalize(G, Abar, Bbar *poly.MPUP, p uint64) (*poly.MPUP, *poly.MPUP, *poly.MPUP, bool) {
	c := leadScalarMPUP(G)
	if c == 0 {
		return nil, nil, nil, false
	}
	invC, ok := modInverseW(c, p)
	if !ok {
		return nil, nil, nil, false
	}
	return scaleMPUP(G, invC, p), scaleMPUP(Abar, c, p), scaleMPUP(Bbar, c, p), true
}

func leadScalarMPp(mp *poly.MPp) uint64 {
	if mp.IsZero() {
		return 0
	}
	return mp.Terms[0].Coeff
}

func leadScalarMPUP(up *poly.MPUP) uint64 {
	if up.IsZero() {
		return 0
	}
	return leadScalarMPp(up.Terms[0].Coeff)
}

func scaleMPUP(up *poly.MPUP, factor uint64, p uint64) *poly.MPUP {
	terms := make([]poly.UPTerm, len(up.Terms))
	for i, t := range up.Terms {
		pterms := make([]poly.PTerm, len(t.Coeff.Terms))
		for j, pt := range t.Coeff.Terms {
			pterms[j] = poly.PTerm{Exp: pt.Exp, Coeff: mulModW(pt.Coeff, factor, p)}
		}
		terms[i] = poly.UPTerm{Exp: t.Exp, Coeff: poly.NewMPp(up.Ctx, p, pterms)}
	}
	return poly.NewMPUP(up.Ctx, p, terms)
}

// maxLastVarDegree returns the greatest exponent any term of up carries
// in the last tail variable.
func maxLastVarDegree(up *poly.MPUP) uint64 {
	var m uint64
	for _, t := range up.Terms {
		for _, pt := range t.Coeff.Terms {
			if n := len(pt.Exp); n > 0 {
				if pt.Exp[n-1] > m {
					m = pt.Exp[n-1]
				}
			}
		}
	}
	return m
}

// evalLastVarU evaluates up's last tail variable at y, returning a
// polynomial over newCtx (one fewer tail variable).
func evalLastVarU(up *poly.MPUP, y uint64, p uint64, newCtx *poly.Context) *poly.MPUP {
	terms := make([]poly.UPTerm, len(up.Terms))
	for i, t := range up.Terms {
		terms[i] = poly.UPTerm{Exp: t.Exp, Coeff: evalLastVar(t.Coeff, y, p, newCtx)}
	}
	return poly.NewMPUP(newCtx, p, terms)
}

func evalLastVar(mp *poly.MPp, y uint64, p uint64, newCtx *poly.Context) *poly.MPp {
	terms := make([]poly.PTerm, len(mp.Terms))
	for i, t := range mp.Terms {
		n := len(t.Exp)
		lastExp := uint64(0)
		var newExp poly.ExpVec
		if n > 0 {
			lastExp = t.Exp[n-1]
			newExp = append(poly.ExpVec(nil), t.Exp[:n-1]...)
		}
		factor := powModW(y, lastExp, p)
		terms[i] = poly.PTerm{Exp: newExp, Coeff: mulModW(t.Coeff, factor, p)}
	}
	return poly.NewMPp(newCtx, p, terms)
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
