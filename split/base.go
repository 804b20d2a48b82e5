// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Package split implements the Split Coordinator (spec.md §4.4): shared
// state {next prime, gcd-is-one flag} guarded by one mutex, and masters
// that each fetch primes, reduce A/B mod p, invoke the external dense
// modular GCD, and CRT-lift into a private Z accumulator.
package split

import (
	"sync"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
)

// Base is the shared state of one SPLIT section (spec.md §4.4/§5): one
// mutex guards next_prime and gcd_is_one; A, B, Gamma, Ctx are read-only
// for the section's lifetime.
type Base struct {
	mu        sync.Mutex
	nextPrime uint64
	gcdIsOne  bool

	Ctx   *poly.Context
	A, B  *poly.MPUZ
	Gamma *bigz.Int
}

// NewBase starts a SPLIT section over A, B with leading-coefficient gcd
// gamma, priming the prime search at spec.md §4.4's floor p0 =
// 2^(word_bits-2).
func NewBase(ctx *poly.Context, A, B *poly.MPUZ, gamma *bigz.Int) *Base {
	return &Base{
		nextPrime: bigz.WordPrimeFloor - 1,
		Ctx:       ctx,
		A:         A,
		B:         B,
		Gamma:     gamma,
	}
}

// FetchPrime advances and returns the next word prime, or false if the
// word-prime space is exhausted (spec.md §4.4 step 1).
func (b *Base) FetchPrime() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.nextPrime >= bigz.MaxWordPrime {
		return 0, false
	}
	p := bigz.NextPrime(b.nextPrime)
	if p >= bigz.MaxWordPrime {
		b.nextPrime = p
		return 0, false
	}
	b.nextPrime = p
	return p, true
}

// GcdIsOne reads the shared flag without the lock, as an early-exit hint
// (spec.md §5: "may be read without the lock as a hint but must be
// written under the lock").
func (b *Base) GcdIsOne() bool {
	return b.gcdIsOne
}

// SetGcdIsOne sets the shared flag under the lock.
func (b *Base) SetGcdIsOne() {
	b.mu.Lock()
	b.gcdIsOne = true
	b.mu.Unlock()
}
