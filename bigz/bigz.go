// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Package bigz provides the arbitrary-precision integer primitives the
// rest of this module treats as an external collaborator: signed
// unbounded integers with the symmetric ("mods") residue convention that
// Brown's modular GCD algorithm relies on throughout.
//
// Most operations delegate straight to math/big. Multiplication of very
// large operands — the moduli products that accumulate across a long CRT
// chain — instead goes through github.com/remyoudompheng/bigfft, which
// implements a Schönhage–Strassen style FFT multiplier that overtakes
// math/big's Karatsuba implementation once operands are a few thousand
// words wide.
package bigz

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// bigMulThreshold is the combined bit length above which Mul prefers
// bigfft over (*big.Int).Mul. bigfft's own crossover with Karatsuba sits
// around a few thousand decimal digits; picking a conservative bit
// threshold means small CRT programs (a handful of word primes) never
// pay FFT setup cost, while long-running accumulations (hundreds of
// primes) get the asymptotic win.
const bigMulThreshold = 1 << 15

// Int is a signed arbitrary-precision integer.
type Int struct {
	v big.Int
}

// NewInt returns a new Int with value x.
func NewInt(x int64) *Int {
	z := &Int{}
	z.v.SetInt64(x)
	return z
}

// NewUint64 returns a new Int with value x.
func NewUint64(x uint64) *Int {
	z := &Int{}
	z.v.SetUint64(x)
	return z
}

// FromBig returns a new Int holding a copy of b's value.
func FromBig(b *big.Int) *Int {
	z := &Int{}
	z.v.Set(b)
	return z
}

// Big returns the underlying *big.Int. The caller must not mutate it.
func (z *Int) Big() *big.Int { return &z.v }

// Clone returns a deep copy of z.
func (z *Int) Clone() *Int {
	c := &Int{}
	c.v.Set(&z.v)
	return c
}

// Zero reports whether z is zero.
func (z *Int) IsZero() bool { return z.v.Sign() == 0 }

// IsOne reports whether z equals one.
func (z *Int) IsOne() bool { return z.v.Cmp(big.NewInt(1)) == 0 }

// Sign returns -1, 0, or +1.
func (z *Int) Sign() int { return z.v.Sign() }

// Cmp compares z and x as signed integers.
func (z *Int) Cmp(x *Int) int { return z.v.Cmp(&x.v) }

// CmpAbs compares |z| and |x|.
func (z *Int) CmpAbs(x *Int) int { return z.v.CmpAbs(&x.v) }

// Abs returns |z|.
func (z *Int) Abs() *Int {
	r := &Int{}
	r.v.Abs(&z.v)
	return r
}

// Neg returns -z.
func (z *Int) Neg() *Int {
	r := &Int{}
	r.v.Neg(&z.v)
	return r
}

// Add returns z+x.
func (z *Int) Add(x *Int) *Int {
	r := &Int{}
	r.v.Add(&z.v, &x.v)
	return r
}

// Sub returns z-x.
func (z *Int) Sub(x *Int) *Int {
	r := &Int{}
	r.v.Sub(&z.v, &x.v)
	return r
}

// Mul returns z*x, routing through bigfft once the operands' combined
// bit length reaches bigMulThreshold.
func (z *Int) Mul(x *Int) *Int {
	r := &Int{}
	if z.v.BitLen()+x.v.BitLen() >= bigMulThreshold {
		r.v.Set(bigfft.Mul(&z.v, &x.v))
		return r
	}
	r.v.Mul(&z.v, &x.v)
	return r
}

// MulWord returns z*w for a word-sized unsigned multiplier.
func (z *Int) MulWord(w uint64) *Int {
	r := &Int{}
	var bw big.Int
	bw.SetUint64(w)
	r.v.Mul(&z.v, &bw)
	return r
}

// MulPow2 returns z * 2^n.
func (z *Int) MulPow2(n uint) *Int {
	r := &Int{}
	r.v.Lsh(&z.v, n)
	return r
}

// FloorDiv returns floor(z/x) for positive z, x.
func (z *Int) FloorDiv(x *Int) *Int {
	r := &Int{}
	r.v.Div(&z.v, &x.v)
	return r
}

// DivExact returns z/x, assuming x divides z exactly.
func (z *Int) DivExact(x *Int) *Int {
	r := &Int{}
	r.v.Div(&z.v, &x.v)
	return r
}

// Mod returns the canonical (non-negative) residue of z modulo m, m>0.
func (z *Int) Mod(m *Int) *Int {
	r := &Int{}
	r.v.Mod(&z.v, &m.v)
	return r
}

// ModSymmetric returns the least-absolute-value residue of z modulo m
// (spec.md's "mods"): the unique representative in (-m/2, m/2].
func (z *Int) ModSymmetric(m *Int) *Int {
	r := &Int{}
	r.v.Mod(&z.v, &m.v)
	half := new(big.Int).Rsh(&m.v, 1)
	if r.v.Cmp(half) > 0 {
		r.v.Sub(&r.v, &m.v)
	}
	return r
}

// InvMod returns (z^-1 mod m) and true, or (nil, false) if gcd(z,m)!=1.
func (z *Int) InvMod(m *Int) (*Int, bool) {
	r := &Int{}
	g := r.v.ModInverse(&z.v, &m.v)
	if g == nil {
		return nil, false
	}
	return r, true
}

// GCD returns gcd(z,x) (non-negative).
func (z *Int) GCD(x *Int) *Int {
	r := &Int{}
	r.v.GCD(nil, nil, new(big.Int).Abs(&z.v), new(big.Int).Abs(&x.v))
	return r
}

// BitLen returns the bit length of |z|.
func (z *Int) BitLen() int { return z.v.BitLen() }

// FloorDivUWord returns floor(z / w) for a word-sized positive divisor.
func (z *Int) FloorDivUWord(w uint64) *Int {
	r := &Int{}
	var bw big.Int
	bw.SetUint64(w)
	r.v.Div(&z.v, &bw)
	return r
}

// CeilLogWord returns ceil(log_base(z)) for z>=1, base>=2 — the smallest
// n with base^n >= z (so CeilLogWord(10, 10) is 1), used by the
// orchestrator to turn a height bound into a required image count.
func (z *Int) CeilLogWord(base uint64) int {
	if z.v.Sign() <= 0 {
		return 0
	}
	bb := new(big.Int).SetUint64(base)
	one := big.NewInt(1)
	if z.v.Cmp(one) <= 0 {
		return 0
	}
	n := 0
	pow := big.NewInt(1)
	for pow.Cmp(&z.v) < 0 {
		pow.Mul(pow, bb)
		n++
	}
	return n
}

// String returns the decimal representation of z.
func (z *Int) String() string { return z.v.String() }

// Equal reports whether z and x have the same value.
func (z *Int) Equal(x *Int) bool { return z.v.Cmp(&x.v) == 0 }

// Max returns the Int with greater value.
func Max(a, b *Int) *Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
