// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package brown

import (
	"testing"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
	"github.com/ajroetker/go-mpgcd/pool"
)

func linearZ(ctx *poly.Context, coeffs ...int64) *poly.MPUZ {
	terms := make([]poly.UTerm, len(coeffs))
	deg := uint64(len(coeffs) - 1)
	for i, c := range coeffs {
		terms[i] = poly.UTerm{Exp: deg - uint64(i), Coeff: poly.ConstMPZ(ctx, bigz.NewInt(c))}
	}
	return poly.NewMPUZ(ctx, terms)
}

// TestGCDUnivariate is P1/P2: for A=(X-1)(X-2), B=(X-1)(X-3), the
// common divisor X-1 is recovered with cofactors that satisfy
// A=G*Abar, B=G*Bbar exactly.
func TestGCDUnivariate(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := linearZ(ctx, 1, -3, 2) // X^2-3X+2
	B := linearZ(ctx, 1, -4, 3) // X^2-4X+3

	G, Abar, Bbar, ok := GCD(ctx, A, B, nil)
	if !ok {
		t.Fatal("GCD declined")
	}

	wantG := linearZ(ctx, 1, -1)
	if !G.Equal(wantG) {
		t.Errorf("G = %+v, want X-1 (%+v)", G, wantG)
	}
	if !poly.Mul(G, Abar).Equal(A) {
		t.Errorf("G*Abar != A: G=%+v Abar=%+v A=%+v", G, Abar, A)
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Errorf("G*Bbar != B: G=%+v Bbar=%+v B=%+v", G, Bbar, B)
	}
}

// TestGCDCoprime is E1: two coprime univariate polynomials reduce to
// G=1 via the split coordinator's early gcd-is-one exit.
func TestGCDCoprime(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := linearZ(ctx, 1, 0)  // X
	B := linearZ(ctx, 1, 1)  // X+1

	G, Abar, Bbar, ok := GCD(ctx, A, B, nil)
	if !ok {
		t.Fatal("GCD declined")
	}
	wantG := linearZ(ctx, 1)
	if !G.Equal(wantG) {
		t.Errorf("G = %+v, want constant 1 (%+v)", G, wantG)
	}
	if !poly.Mul(G, Abar).Equal(A) {
		t.Errorf("G*Abar != A")
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Errorf("G*Bbar != B")
	}
}

// TestGCDZeroOperand is E4: gcd(0, B) = B made primitive and
// positive-leading, with a trivial cofactor pairing.
func TestGCDZeroOperand(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := poly.ZeroMPUZ(ctx)
	B := linearZ(ctx, -2, 4) // -2X+4 = -2(X-2)

	G, Abar, Bbar, ok := GCD(ctx, A, B, nil)
	if !ok {
		t.Fatal("GCD declined")
	}
	wantG := linearZ(ctx, 1, -2) // X-2, primitive and positive-leading.
	if !G.Equal(wantG) {
		t.Errorf("G = %+v, want X-2 (%+v)", G, wantG)
	}
	if !Abar.IsZero() {
		t.Errorf("Abar = %+v, want 0", Abar)
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Errorf("G*Bbar != B: G=%+v Bbar=%+v B=%+v", G, Bbar, B)
	}
}

// TestGCDWithPool runs GCD with a 4-worker pool rather than the nil-pool
// serial fallback the other tests use. The bound needs one image, so the
// budget divider yields a single master (run inline), while the join
// section fans out across four workers.
func TestGCDWithPool(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := linearZ(ctx, 1, -3, 2) // X^2-3X+2 = (X-1)(X-2)
	B := linearZ(ctx, 1, -4, 3) // X^2-4X+3 = (X-1)(X-3)

	p := pool.New(4)
	G, Abar, Bbar, ok := GCD(ctx, A, B, p)
	if !ok {
		t.Fatal("GCD declined")
	}
	if !poly.Mul(G, Abar).Equal(A) {
		t.Errorf("G*Abar != A")
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Errorf("G*Bbar != B")
	}
}

// TestGCDMultivariateUnivariateFallback calls GCDMultivariate with a
// single-variable Context, which dispatches to modgcd.UnivariateGCD
// rather than SPLIT/JOIN, and checks the cofactor identity of the result.
func TestGCDMultivariateUnivariateFallback(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := linearZ(ctx, 1, -3, 2)
	B := linearZ(ctx, 1, -4, 3)

	G, Abar, Bbar, ok := GCDMultivariate(ctx, A, B, 2)
	if !ok {
		t.Fatal("GCDMultivariate declined")
	}
	if !poly.Mul(G, Abar).Equal(A) || !poly.Mul(G, Bbar).Equal(B) {
		t.Error("cofactor identity failed")
	}
}

// TestGCDMultivariateUnivariateSharedContent is spec.md §8 P2 exercised
// through the public gcd_brown_mpoly entry point: A and B each carry
// independent non-unit content (4 and 6), and the shared factor
// gcd(4,6)=2 must land in G rather than diluting both cofactors.
func TestGCDMultivariateUnivariateSharedContent(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := linearZ(ctx, 4, 4) // 4X+4 = 4*(X+1)
	B := linearZ(ctx, 6, 6) // 6X+6 = 6*(X+1)

	G, Abar, Bbar, ok := GCDMultivariate(ctx, A, B, 2)
	if !ok {
		t.Fatal("GCDMultivariate declined")
	}
	wantG := linearZ(ctx, 2, 2)
	if !G.Equal(wantG) {
		t.Errorf("G = %+v, want 2X+2 (%+v)", G, wantG)
	}
	if !poly.Mul(G, Abar).Equal(A) || !poly.Mul(G, Bbar).Equal(B) {
		t.Error("cofactor identity failed")
	}
	if g := Abar.Content().GCD(Bbar.Content()); !g.IsOne() {
		t.Errorf("gcd(content(Abar), content(Bbar)) = %v, want 1", g)
	}
}
