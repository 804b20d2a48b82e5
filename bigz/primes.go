// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package bigz

import "math/big"

// MaxWordPrime is the largest prime that fits below 2^64: 2^64-59. The
// split coordinator treats reaching it as prime-pool exhaustion (spec.md
// §4.4 step 1, §7 "prime exhaustion").
const MaxWordPrime uint64 = 18446744073709551557 // 2^64 - 59

// millerRabinRounds bounds the false-positive probability of
// (*big.Int).ProbablyPrime far below any rate that could matter for a
// prime used only to seed a modular reduction (not for cryptography).
const millerRabinRounds = 20

// NextPrime returns the smallest prime strictly greater than p, or
// MaxWordPrime+1's sentinel behavior: callers must check the result
// against MaxWordPrime themselves, mirroring spec.md's "next_prime(p);
// if shared.p >= max word prime, exit" step.
func NextPrime(p uint64) uint64 {
	if p < 2 {
		return 2
	}
	cand := p + 1
	if cand%2 == 0 {
		cand++
	}
	n := new(big.Int)
	for {
		n.SetUint64(cand)
		if n.ProbablyPrime(millerRabinRounds) {
			return cand
		}
		if cand > MaxWordPrime {
			return MaxWordPrime + 1
		}
		cand += 2
	}
}

// WordPrimeFloor is the initial prime floor spec.md §4.4 prescribes:
// 2^(word_bits-2), so that every prime consumed fits comfortably in a
// 64-bit word with headroom for modular multiplication intermediates.
const WordPrimeFloor uint64 = 1 << 62
