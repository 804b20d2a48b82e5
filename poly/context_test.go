// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

package poly

import "testing"

func TestNewContext(t *testing.T) {
	if _, err := NewContext(0); err == nil {
		t.Error("NewContext(0) should reject a ring with no distinguished variable")
	}
	ctx, err := NewContext(3)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.TailVars() != 2 {
		t.Errorf("TailVars() = %d, want 2", ctx.TailVars())
	}
}

func TestValidateExp(t *testing.T) {
	ctx, _ := NewContext(3)
	if !ctx.ValidateExp(ExpVec{1, 2}) {
		t.Error("ValidateExp rejected a well-formed exponent vector")
	}
	if ctx.ValidateExp(ExpVec{1}) {
		t.Error("ValidateExp accepted a vector of the wrong arity")
	}
	if ctx.ValidateExp(ExpVec{1 << maxTailBits, 0}) {
		t.Error("ValidateExp accepted an exponent beyond maxTailBits")
	}
}
