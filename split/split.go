// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package split

import (
	"sort"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/crt"
	"github.com/ajroetker/go-mpgcd/modgcd"
	"github.com/ajroetker/go-mpgcd/poly"
)

// Master is one master worker's private accumulator (spec.md §3 "Each
// master owns {G, Abar, Bbar : MPU_Z, modulus : Z, image_count,
// required_images}").
type Master struct {
	G, Abar, Bbar *poly.MPUZ
	Modulus       *bigz.Int
	ImageCount    int

	// Required is how many accepted images this master needs before its
	// loop stops (spec.md §4.4's per-master n_i, handed down by the
	// Thread-Budget Divider).
	Required int
}

// newMaster returns an empty accumulator.
func newMaster(required int) *Master {
	return &Master{Modulus: bigz.NewInt(1), Required: required}
}

// outcome reports what absorbImage did with one candidate image.
type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeSkippedBadPrime
	outcomeGcdIsOne
)

// RunMaster drives one master's loop (spec.md §4.4 steps 1-9) until it
// has collected Required images or the shared prime pool is exhausted.
// It returns the master's final accumulator; the caller (the Thread-
// Budget Divider's orchestrator) checks ImageCount against Required to
// detect prime exhaustion.
func RunMaster(base *Base, required int) *Master {
	m := newMaster(required)
	for m.ImageCount < required {
		if base.GcdIsOne() {
			return m
		}
		p, ok := base.FetchPrime()
		if !ok {
			return m // prime exhaustion; caller observes ImageCount < Required.
		}
		gammaP := modWord(base.Gamma, p)
		if gammaP == 0 {
			continue // step 2: prime bad for leading coefficients.
		}
		Ap := poly.ReduceU(base.A, p)
		Bp := poly.ReduceU(base.B, p)
		Gp, Abarp, Bbarp, ok := modgcd.DenseGCD(base.Ctx, Ap, Bp, p)
		if !ok {
			continue // step 4: dense GCD declined; try another prime.
		}
		switch absorbImage(base, m, Gp, Abarp, Bbarp, p, gammaP) {
		case outcomeGcdIsOne:
			return m
		case outcomeSkippedBadPrime:
			continue
		}
	}
	return m
}

// absorbImage implements spec.md §4.4 steps 5-9 on one already-computed
// modular image, split out from RunMaster so tests can drive it
// directly with synthetic images (see E7 in split_test.go).
func absorbImage(base *Base, m *Master, Gp, Abarp, Bbarp *poly.MPUP, p uint64, gammaP uint64) outcome {
	if base.GcdIsOne() {
		return outcomeGcdIsOne
	}
	if !Gp.IsZero() && Gp.IsConstantInX() {
		base.SetGcdIsOne()
		return outcomeGcdIsOne
	}

	shape := Gp.Shape()
	if m.ImageCount > 0 {
		switch cmp := shape.Compare(poly.ShapeOf(m.G)); {
		case cmp < 0:
			// Gp is better: every accumulated image so far was unlucky.
			m.Modulus = bigz.NewInt(1)
			m.ImageCount = 0
			m.G, m.Abar, m.Bbar = nil, nil, nil
		case cmp > 0:
			return outcomeSkippedBadPrime
		}
	}

	// Step 7: scale the monic dense-GCD result so its X-leading
	// coefficient equals gamma_p, compensating Abar/Bbar by gamma_p's
	// inverse so A=G*Abar, B=G*Bbar still hold mod p.
	invGammaP, ok := modInverseWord(gammaP, p)
	if !ok {
		return outcomeSkippedBadPrime
	}
	Gp = Gp.ScaleByWord(gammaP)
	Abarp = Abarp.ScaleByWord(invGammaP)
	Bbarp = Bbarp.ScaleByWord(invGammaP)

	if m.ImageCount == 0 {
		m.G = poly.Lift(Gp)
		m.Abar = poly.Lift(Abarp)
		m.Bbar = poly.Lift(Bbarp)
	} else {
		prog, ok := crt.Precompute([]*bigz.Int{m.Modulus, bigz.NewUint64(p)})
		if !ok {
			return outcomeSkippedBadPrime
		}
		m.G = combineTwo(base.Ctx, prog, m.G, Gp.ToMPUZResidues())
		m.Abar = combineTwo(base.Ctx, prog, m.Abar, Abarp.ToMPUZResidues())
		m.Bbar = combineTwo(base.Ctx, prog, m.Bbar, Bbarp.ToMPUZResidues())
	}
	m.Modulus = m.Modulus.MulWord(p)
	m.ImageCount++
	return outcomeAccepted
}

// combineTwo CRT-combines the Z accumulator a with the new residue image
// b (spec.md §4.4 step 8's "two-entry CRT built from (modulus, p)"),
// reusing the general N-way merger over the union of both polynomials'
// X-exponents.
func combineTwo(ctx *poly.Context, prog *crt.Program, a, b *poly.MPUZ) *poly.MPUZ {
	exps := unionExps(a, b)
	var terms []poly.UTerm
	for _, e := range exps {
		res := crt.CRTExp(ctx, prog, e, []*poly.MPUZ{a, b})
		if res.NonZero {
			terms = append(terms, res.Term)
		}
	}
	return poly.NewMPUZ(ctx, terms)
}

func unionExps(a, b *poly.MPUZ) []uint64 {
	seen := map[uint64]bool{}
	var out []uint64
	for _, t := range a.Terms {
		if !seen[t.Exp] {
			seen[t.Exp] = true
			out = append(out, t.Exp)
		}
	}
	for _, t := range b.Terms {
		if !seen[t.Exp] {
			seen[t.Exp] = true
			out = append(out, t.Exp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

func modWord(z *bigz.Int, p uint64) uint64 {
	return z.Mod(bigz.NewUint64(p)).Big().Uint64()
}

func modInverseWord(a, p uint64) (uint64, bool) {
	inv, ok := bigz.NewUint64(a % p).InvMod(bigz.NewUint64(p))
	if !ok {
		return 0, false
	}
	return inv.Big().Uint64(), true
}
