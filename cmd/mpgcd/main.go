// Copyright 2025 The go-mpgcd Authors. SPDX-License-Identifier: Apache-2.0

// Command mpgcd computes the GCD of two univariate integer polynomials
// via brown.GCDMultivariate. Because the inputs have a single variable,
// that call runs the univariate Euclidean fallback (modgcd.UnivariateGCD),
// not the parallel SPLIT/JOIN core, so --workers has no effect on the
// result or on how it is computed.
//
// Usage:
//
//	mpgcd --a 1,-3,2 --b 1,-4,3
//
// Polynomials are given as a comma-separated list of integer
// coefficients in descending degree order (spec.md §1's driver code is
// explicitly out of scope, so this is a small fixed textual format for
// demonstration, not a general polynomial parser).
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/ajroetker/go-mpgcd/bigz"
	"github.com/ajroetker/go-mpgcd/brown"
	"github.com/ajroetker/go-mpgcd/poly"
)

var (
	aFlag   = flag.String("a", "", "first polynomial, comma-separated coefficients in descending degree order (required)")
	bFlag   = flag.String("b", "", "second polynomial, comma-separated coefficients in descending degree order (required)")
	workers = flag.IntP("workers", "w", 0, "worker count for the split/join parallel sections (0: GOMAXPROCS)")
)

func main() {
	flag.Parse()

	if *aFlag == "" || *bFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: --a and --b are required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, err := poly.NewContext(1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	A, err := parseUnivariate(ctx, *aFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --a: %v\n", err)
		os.Exit(1)
	}
	B, err := parseUnivariate(ctx, *bFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --b: %v\n", err)
		os.Exit(1)
	}

	G, Abar, Bbar, ok := brown.GCDMultivariate(ctx, A, B, *workers)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: GCD computation declined")
		os.Exit(1)
	}

	fmt.Printf("A    = %s\n", formatUnivariate(A))
	fmt.Printf("B    = %s\n", formatUnivariate(B))
	fmt.Printf("G    = %s\n", formatUnivariate(G))
	fmt.Printf("Abar = %s (A = G*Abar)\n", formatUnivariate(Abar))
	fmt.Printf("Bbar = %s (B = G*Bbar)\n", formatUnivariate(Bbar))
}

// parseUnivariate turns a comma-separated descending-degree coefficient
// list into an MPUZ over ctx (which must have no tail variables).
func parseUnivariate(ctx *poly.Context, s string) (*poly.MPUZ, error) {
	parts := strings.Split(s, ",")
	terms := make([]poly.UTerm, len(parts))
	deg := uint64(len(parts) - 1)
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", p, err)
		}
		terms[i] = poly.UTerm{Exp: deg - uint64(i), Coeff: poly.ConstMPZ(ctx, bigz.NewInt(n))}
	}
	return poly.NewMPUZ(ctx, terms), nil
}

func formatUnivariate(p *poly.MPUZ) string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i, t := range p.Terms {
		c := t.Coeff.CoeffAt(make(poly.ExpVec, p.Ctx.TailVars()))
		if i > 0 {
			if c.Sign() >= 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
				c = c.Neg()
			}
		}
		switch t.Exp {
		case 0:
			fmt.Fprintf(&b, "%s", c)
		case 1:
			fmt.Fprintf(&b, "%sX", coeffPrefix(c))
		default:
			fmt.Fprintf(&b, "%sX^%d", coeffPrefix(c), t.Exp)
		}
	}
	return b.String()
}

func coeffPrefix(c *bigz.Int) string {
	if c.Cmp(bigz.NewInt(1)) == 0 {
		return ""
	}
	return c.String()
}
