// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package modgcd

import (
	"testing"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
)

func zlinear(ctx *poly.Context, coeffs ...int64) *poly.MPUZ {
	terms := make([]poly.UTerm, len(coeffs))
	deg := uint64(len(coeffs) - 1)
	for i, c := range coeffs {
		terms[i] = poly.UTerm{Exp: deg - uint64(i), Coeff: poly.ConstMPZ(ctx, bigz.NewInt(c))}
	}
	return poly.NewMPUZ(ctx, terms)
}

func TestUnivariateGCDSharedFactor(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := zlinear(ctx, 1, -3, 2) // X^2-3X+2 = (X-1)(X-2)
	B := zlinear(ctx, 1, -4, 3) // X^2-4X+3 = (X-1)(X-3)

	G, Abar, Bbar, ok := UnivariateGCD(ctx, A, B)
	if !ok {
		t.Fatal("UnivariateGCD declined")
	}
	want := zlinear(ctx, 1, -1)
	if !G.Equal(want) {
		t.Errorf("G = %+v, want X-1 (%+v)", G, want)
	}
	if !poly.Mul(G, Abar).Equal(A) {
		t.Error("G*Abar != A")
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Error("G*Bbar != B")
	}
}

// TestUnivariateGCDSharedContent is spec.md §8 P2: when A and B carry
// independent non-unit Z content (4 and 6), the shared factor
// gcd(4,6)=2 must end up in G, not left diluting both cofactors.
func TestUnivariateGCDSharedContent(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}
	A := zlinear(ctx, 4, 4) // 4X+4 = 4*(X+1)
	B := zlinear(ctx, 6, 6) // 6X+6 = 6*(X+1)

	G, Abar, Bbar, ok := UnivariateGCD(ctx, A, B)
	if !ok {
		t.Fatal("UnivariateGCD declined")
	}
	wantG := zlinear(ctx, 2, 2) // 2X+2
	if !G.Equal(wantG) {
		t.Errorf("G = %+v, want 2X+2 (%+v)", G, wantG)
	}
	if !poly.Mul(G, Abar).Equal(A) {
		t.Error("G*Abar != A")
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Error("G*Bbar != B")
	}
	if g := Abar.Content().GCD(Bbar.Content()); !g.IsOne() {
		t.Errorf("gcd(content(Abar), content(Bbar)) = %v, want 1", g)
	}
}

func TestUnivariateGCDCoprime(t *testing.T) {
	ctx, _ := poly.NewContext(1)
	A := zlinear(ctx, 1, 0) // X
	B := zlinear(ctx, 1, 1) // X+1

	G, Abar, Bbar, ok := UnivariateGCD(ctx, A, B)
	if !ok {
		t.Fatal("UnivariateGCD declined")
	}
	if !G.IsConstantInX() || G.LeadScalar().Cmp(bigz.NewInt(1)) != 0 {
		t.Errorf("G = %+v, want constant 1", G)
	}
	if !poly.Mul(G, Abar).Equal(A) || !poly.Mul(G, Bbar).Equal(B) {
		t.Error("cofactor identity failed")
	}
}

func TestUnivariateGCDZeroOperand(t *testing.T) {
	ctx, _ := poly.NewContext(1)
	A := poly.ZeroMPUZ(ctx)
	B := zlinear(ctx, -2, 4) // -2(X-2)

	G, Abar, Bbar, ok := UnivariateGCD(ctx, A, B)
	if !ok {
		t.Fatal("UnivariateGCD declined")
	}
	want := zlinear(ctx, 1, -2)
	if !G.Equal(want) {
		t.Errorf("G = %+v, want X-2", G)
	}
	if !Abar.IsZero() {
		t.Errorf("Abar = %+v, want 0", Abar)
	}
	if !poly.Mul(G, Bbar).Equal(B) {
		t.Error("G*Bbar != B")
	}
}
