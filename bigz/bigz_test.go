// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package bigz

import "testing"

func TestArithmetic(t *testing.T) {
	a := NewInt(17)
	b := NewInt(5)

	if got := a.Add(b); got.Cmp(NewInt(22)) != 0 {
		t.Errorf("Add = %v, want 22", got)
	}
	if got := a.Sub(b); got.Cmp(NewInt(12)) != 0 {
		t.Errorf("Sub = %v, want 12", got)
	}
	if got := a.Mul(b); got.Cmp(NewInt(85)) != 0 {
		t.Errorf("Mul = %v, want 85", got)
	}
	if got := a.Neg(); got.Cmp(NewInt(-17)) != 0 {
		t.Errorf("Neg = %v, want -17", got)
	}
	if got := NewInt(-17).Abs(); got.Cmp(a) != 0 {
		t.Errorf("Abs = %v, want 17", got)
	}
}

func TestMulLargeRoutesThroughBigfft(t *testing.T) {
	// Construct two operands whose combined bit length clears
	// bigMulThreshold, forcing Mul's bigfft branch, and check the
	// result still agrees with a plain math/big product.
	one := NewInt(1)
	big1 := one.MulPow2(bigMulThreshold/2 + 1).Add(NewInt(12345))
	big2 := one.MulPow2(bigMulThreshold/2 + 1).Add(NewInt(67890))

	got := big1.Mul(big2)

	want := &Int{}
	want.v.Mul(&big1.v, &big2.v)

	if got.Cmp(want) != 0 {
		t.Errorf("large Mul mismatch")
	}
}

func TestFloorDiv(t *testing.T) {
	z := NewInt(17)
	x := NewInt(5)
	if got := z.FloorDiv(x); got.Cmp(NewInt(3)) != 0 {
		t.Errorf("FloorDiv = %v, want 3", got)
	}
}

func TestMulPow2(t *testing.T) {
	z := NewInt(3)
	if got := z.MulPow2(4); got.Cmp(NewInt(48)) != 0 {
		t.Errorf("MulPow2 = %v, want 48", got)
	}
}

func TestModSymmetric(t *testing.T) {
	m := NewInt(7)
	tests := []struct {
		z    int64
		want int64
	}{
		{3, 3},
		{4, -3},
		{-3, -3},
		{10, 3},
	}
	for _, tt := range tests {
		got := NewInt(tt.z).ModSymmetric(m)
		if got.Cmp(NewInt(tt.want)) != 0 {
			t.Errorf("ModSymmetric(%d, 7) = %v, want %d", tt.z, got, tt.want)
		}
	}
}

func TestInvMod(t *testing.T) {
	z := NewInt(3)
	m := NewInt(11)
	inv, ok := z.InvMod(m)
	if !ok {
		t.Fatal("InvMod reported no inverse for coprime operands")
	}
	if got := z.Mul(inv).Mod(m); got.Cmp(NewInt(1)) != 0 {
		t.Errorf("z*inv mod m = %v, want 1", got)
	}

	if _, ok := NewInt(2).InvMod(NewInt(4)); ok {
		t.Error("InvMod reported an inverse for a non-coprime pair")
	}
}

func TestGCD(t *testing.T) {
	if got := NewInt(54).GCD(NewInt(24)); got.Cmp(NewInt(6)) != 0 {
		t.Errorf("GCD(54,24) = %v, want 6", got)
	}
	if got := NewInt(-54).GCD(NewInt(24)); got.Cmp(NewInt(6)) != 0 {
		t.Errorf("GCD(-54,24) = %v, want 6", got)
	}
}

func TestCeilLogWord(t *testing.T) {
	tests := []struct {
		z    int64
		base uint64
		want int
	}{
		{1, 10, 0},
		{9, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 2},
		{101, 10, 3},
	}
	for _, tt := range tests {
		if got := NewInt(tt.z).CeilLogWord(tt.base); got != tt.want {
			t.Errorf("CeilLogWord(%d, %d) = %d, want %d", tt.z, tt.base, got, tt.want)
		}
	}
}

func TestMax(t *testing.T) {
	if got := Max(NewInt(3), NewInt(9)); got.Cmp(NewInt(9)) != 0 {
		t.Errorf("Max(3,9) = %v, want 9", got)
	}
	if got := Max(NewInt(9), NewInt(3)); got.Cmp(NewInt(9)) != 0 {
		t.Errorf("Max(9,3) = %v, want 9", got)
	}
}
