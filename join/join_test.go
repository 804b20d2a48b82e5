// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package join

import (
	"sync"
	"testing"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/crt"
	"github.com/ajroetker/go-mpgcd/poly"
)

func linear(ctx *poly.Context, a, b int64) *poly.MPUZ {
	return poly.NewMPUZ(ctx, []poly.UTerm{
		{Exp: 1, Coeff: poly.ConstMPZ(ctx, bigz.NewInt(a))},
		{Exp: 0, Coeff: poly.ConstMPZ(ctx, bigz.NewInt(b))},
	})
}

func TestJoinTwoWorkers(t *testing.T) {
	ctx, err := poly.NewContext(1)
	if err != nil {
		t.Fatal(err)
	}

	prog, ok := crt.Precompute([]*bigz.Int{bigz.NewUint64(101), bigz.NewUint64(103)})
	if !ok {
		t.Fatal("Precompute failed")
	}

	// Two residue images of G=X-3, Abar=X+1, Bbar=X+2 modulo 101 and 103.
	gImages := []*poly.MPUZ{linear(ctx, 1, 98), linear(ctx, 1, 100)}
	abarImages := []*poly.MPUZ{linear(ctx, 1, 1), linear(ctx, 1, 1)}
	bbarImages := []*poly.MPUZ{linear(ctx, 1, 2), linear(ctx, 1, 2)}

	base := NewBase(ctx, prog, gImages, abarImages, bbarImages)

	var wg sync.WaitGroup
	w1, w2 := NewWorker(), NewWorker()
	for _, w := range []*Worker{w1, w2} {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			RunWorker(base, w)
		}(w)
	}
	wg.Wait()

	G, Abar, Bbar, gMax, gSum, _, _, _, _ := FinalMerge(ctx, []*Worker{w1, w2})

	wantG := linear(ctx, 1, -3)
	wantAbar := linear(ctx, 1, 1)
	wantBbar := linear(ctx, 1, 2)

	if !G.Equal(wantG) {
		t.Errorf("G = %+v, want %+v", G, wantG)
	}
	if !Abar.Equal(wantAbar) {
		t.Errorf("Abar = %+v, want %+v", Abar, wantAbar)
	}
	if !Bbar.Equal(wantBbar) {
		t.Errorf("Bbar = %+v, want %+v", Bbar, wantBbar)
	}
	if gMax.Sign() <= 0 {
		t.Error("GMax should be positive after a nonzero merge")
	}
	if gSum.Sign() <= 0 {
		t.Error("GSum should be positive after a nonzero merge")
	}
}

func TestJoinPrecomputeFailureSurfaces(t *testing.T) {
	// Non-coprime moduli: construction must fail per spec.md §4.5 step 1.
	_, ok := crt.Precompute([]*bigz.Int{bigz.NewUint64(6), bigz.NewUint64(10)})
	if ok {
		t.Fatal("Precompute should fail for non-coprime moduli {6,10}")
	}
}
