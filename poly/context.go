// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Package poly implements the sparse multivariate polynomial containers
// spec.md §6 lists as an external collaborator (MP_Z, MPU_Z, and their
// modular analogues). There is no FLINT-equivalent package to import for
// these, so this package gives them a minimal, explicitly-scoped home:
// just enough container and arithmetic to drive the CRT/orchestration
// machinery that is this module's actual subject.
package poly

import "fmt"

// maxTailBits bounds the exponent of any non-distinguished variable.
// Exceeding it is the "unrepresentable bit width" error spec.md §7
// describes; Context.ValidateExp reports it instead of silently truncating.
const maxTailBits = 32

// Context carries the variable count that every polynomial built
// against it shares (the monomial order is fixed by ExpVec.Compare).
// It is built once and read concurrently by every split/join worker — never mutated after NewContext returns,
// mirroring the teacher's immutable dispatch-level config computed once
// at startup and read by every goroutine thereafter.
type Context struct {
	// NumVars is the total number of variables, including the
	// distinguished main variable X that MPU_Z recurses on.
	NumVars int
}

// NewContext returns a Context for a polynomial ring in numVars
// variables. numVars must be >= 1 (the distinguished variable X always
// exists; numVars-1 "tail" variables may follow it).
func NewContext(numVars int) (*Context, error) {
	if numVars < 1 {
		return nil, fmt.Errorf("poly: numVars must be >= 1, got %d", numVars)
	}
	return &Context{NumVars: numVars}, nil
}

// TailVars is the number of non-distinguished variables.
func (c *Context) TailVars() int { return c.NumVars - 1 }

// ValidateExp reports the "unrepresentable bit width" failure (spec.md
// §7) when a tail exponent vector does not fit the packed-monomial
// limit this container is willing to represent.
func (c *Context) ValidateExp(e ExpVec) bool {
	if len(e) != c.TailVars() {
		return false
	}
	for _, x := range e {
		if x >= 1<<maxTailBits {
			return false
		}
	}
	return true
}
