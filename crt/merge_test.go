// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package crt

import (
	"testing"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/poly"
)

func modImage(ctx *poly.Context, m int64, terms ...poly.ZTerm) *poly.MPZ {
	mod := bigz.NewInt(m)
	scaled := make([]poly.ZTerm, len(terms))
	for i, t := range terms {
		scaled[i] = poly.ZTerm{Exp: t.Exp, Coeff: t.Coeff.ModSymmetric(mod)}
	}
	return poly.NewMPZ(ctx, scaled)
}

// TestCRTPolynomialMergesTermwise is P5: per-monomial CRT reconstruction
// of a sparse polynomial from residue images.
func TestCRTPolynomialMergesTermwise(t *testing.T) {
	ctx, _ := poly.NewContext(2) // 1 tail variable
	e1 := poly.ExpVec{1}
	e0 := poly.ExpVec{0}

	// Target polynomial: 137*Y + 42.
	target := []poly.ZTerm{
		{Exp: e1, Coeff: bigz.NewInt(137)},
		{Exp: e0, Coeff: bigz.NewInt(42)},
	}

	moduli := []*bigz.Int{bigz.NewInt(101), bigz.NewInt(103), bigz.NewInt(107)}
	prog, ok := Precompute(moduli)
	if !ok {
		t.Fatal("Precompute declined")
	}

	inputs := make([]*poly.MPZ, len(moduli))
	for i, m := range moduli {
		inputs[i] = modImage(ctx, m.Big().Int64(), target...)
	}

	merged, maxAbs, sumAbs := CRTPolynomial(ctx, prog, inputs)
	want := poly.NewMPZ(ctx, target)
	if !merged.Equal(want) {
		t.Errorf("CRTPolynomial = %+v, want %+v", merged, want)
	}
	if maxAbs.Cmp(bigz.NewInt(137)) != 0 {
		t.Errorf("maxAbs = %v, want 137", maxAbs)
	}
	if sumAbs.Cmp(bigz.NewInt(179)) != 0 {
		t.Errorf("sumAbs = %v, want 179", sumAbs)
	}
}

// TestCRTExpReportsNonZero checks the per-exponent join helper both
// recovers a present term and reports absence for a missing one.
func TestCRTExpReportsNonZero(t *testing.T) {
	ctx, _ := poly.NewContext(1) // 0 tail variables
	moduli := []*bigz.Int{bigz.NewInt(11), bigz.NewInt(13)}
	prog, ok := Precompute(moduli)
	if !ok {
		t.Fatal("Precompute declined")
	}

	a := poly.NewMPUZ(ctx, []poly.UTerm{{Exp: 1, Coeff: modImage(ctx, 11, poly.ZTerm{Exp: poly.ExpVec{}, Coeff: bigz.NewInt(5)})}})
	b := poly.NewMPUZ(ctx, []poly.UTerm{{Exp: 1, Coeff: modImage(ctx, 13, poly.ZTerm{Exp: poly.ExpVec{}, Coeff: bigz.NewInt(5)})}})

	res := CRTExp(ctx, prog, 1, []*poly.MPUZ{a, b})
	if !res.NonZero {
		t.Fatal("CRTExp reported no term for X^1, want coefficient 5")
	}
	if res.Term.Coeff.CoeffAt(poly.ExpVec{}).Cmp(bigz.NewInt(5)) != 0 {
		t.Errorf("CRTExp coefficient = %v, want 5", res.Term.Coeff.CoeffAt(poly.ExpVec{}))
	}

	absent := CRTExp(ctx, prog, 0, []*poly.MPUZ{a, b})
	if absent.NonZero {
		t.Error("CRTExp reported a term at X^0, want absence")
	}
}
