// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Package budget implements the Thread-Budget Divider (spec.md §4.6):
// given n images still required and m available threads, it splits the
// work across ℓ masters, each owning a_i/b_i of the (images, threads)
// budget, keeping every ratio at most 10% above n/m by recursively
// splitting "flat" fractions at their Stern–Brocot (Farey) neighbors.
//
// math/big.Rat stands in for spec.md §6's "fmpq vector helpers
// including Farey neighbors" — this is precision-critical domain logic
// (an exact rational comparison, not an ambient concern), so the
// stdlib's own exact-rational type is used directly rather than
// reaching for a third-party rational library; see DESIGN.md for why
// modernc.org/mathutil was considered and not used here.
package budget

import (
	"math/big"
)

// Share is one master's slice of the budget: Images required images,
// Threads total threads for that master (so Threads-1 are that
// master's own worker handles).
type Share struct {
	Images  int64
	Threads int64
}

// Divide splits n required images across m available threads following
// spec.md §4.6. Preconditions: n >= 1, m >= 1. Postconditions (P6):
// sum(Images) == n, sum(Threads) == m, len(result) <= min(n,m), and
// every Images/Threads ratio is at most 1.1*n/m. No lower bound is
// enforced: Divide(7,3) yields the shares 5/2 and 2/1.
func Divide(n, m int64) []Share {
	if n <= 0 || m <= 0 {
		return nil
	}
	g := gcd(n, m)
	a0, b0 := n/g, m/g

	type frac struct{ a, b int64 } // a/b in lowest terms
	shares := []frac{}
	for i := int64(0); i < g; i++ {
		shares = append(shares, frac{a0, b0})
	}

	threshold := new(big.Rat).Mul(big.NewRat(n, m), big.NewRat(11, 10))

	const maxSteps = 1 << 20 // defensive bound; denominators strictly
	// decrease on every split, so this is never approached in practice.
	steps := 0
	for i := 0; i < len(shares) && steps < maxSteps; steps++ {
		v := shares[i]
		if v.b < 2 {
			i++
			continue
		}
		leftA, leftB, rightA, rightB, ok := fareyNeighbors(v.a, v.b)
		if !ok {
			i++
			continue
		}
		right := big.NewRat(rightA, rightB)
		if right.Cmp(threshold) > 0 {
			i++
			continue
		}
		shares[i] = frac{rightA, rightB}
		shares = append(shares, frac{leftA, leftB})
		// restart this index with its new (smaller-denominator) value.
	}

	out := make([]Share, len(shares))
	for i, s := range shares {
		out[i] = Share{Images: s.a, Threads: s.b}
	}
	return out
}

// fareyNeighbors returns the left (a1/b1) and right (a2/b2) Farey
// neighbors of the reduced fraction p/q — the two fractions of strictly
// smaller denominator immediately adjacent to p/q in the Stern–Brocot
// order, satisfying p*b1 - q*a1 = 1 and q*a2 - p*b2 = 1, whose mediant
// reconstructs p/q: a1+a2 == p, b1+b2 == q.
func fareyNeighbors(p, q int64) (a1, b1, a2, b2 int64, ok bool) {
	if q < 2 {
		return 0, 0, 0, 0, false
	}
	invP, invOK := modInverse(p, q)
	if !invOK {
		return 0, 0, 0, 0, false
	}
	b1 = invP
	a1 = (p*b1 - 1) / q
	b2 = q - b1
	a2 = (p*b2 + 1) / q
	return a1, b1, a2, b2, true
}

// modInverse returns x in [1,m) with a*x ≡ 1 (mod m), assuming
// gcd(a,m)==1.
func modInverse(a, m int64) (int64, bool) {
	g, x, _ := extGCD(a, m)
	if g != 1 {
		return 0, false
	}
	x %= m
	if x < 0 {
		x += m
	}
	return x, true
}

func extGCD(a, b int64) (g, x, y int64) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := extGCD(b, a%b)
	return g, y1, x1 - (a/b)*y1
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
