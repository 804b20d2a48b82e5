// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	p := New(0)
	if p.Size() <= 0 {
		t.Errorf("Size() = %d, want > 0", p.Size())
	}
}

func TestRequestGiveBackRoundTrip(t *testing.T) {
	p := New(4)
	h := p.Request(3)
	if h.N() == 0 {
		t.Fatal("Request(3) on a fresh 4-worker pool granted 0")
	}
	p.GiveBack(h)

	h2 := p.Request(4)
	if h2.N() != 4 {
		t.Errorf("Request(4) after GiveBack = %d, want 4", h2.N())
	}
	p.GiveBack(h2)
}

func TestRequestNeverStarves(t *testing.T) {
	p := New(2)
	h1 := p.Request(2)
	h2 := p.Request(2)
	if h2.N() == 0 {
		t.Error("Request on an exhausted pool should still grant at least 1 (inline fallback)")
	}
	p.GiveBack(h1)
	p.GiveBack(h2)
}

func TestGiveBackNilHandleIsNoop(t *testing.T) {
	p := New(2)
	p.GiveBack(nil) // must not panic
	if p.available != 2 {
		t.Errorf("available = %d after nil GiveBack, want 2", p.available)
	}
}

func TestWakeRunsAllAndJoins(t *testing.T) {
	var wg sync.WaitGroup
	var count int64
	for i := 0; i < 10; i++ {
		Wake(&wg, func() { atomic.AddInt64(&count, 1) })
	}
	wg.Wait()
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}
