// Package transform applies named transform chains to data columns.
//
// A chain is a pipe separated list of operation names, for example
// "log10|abs" or "mul:3|neg". Operations taking a numeric parameter
// carry it after a colon. Chains are pure slice to slice functions; no
// expression text is ever evaluated.
package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/binoviz/bino/pkg/errors"
)

// unary operations by name.
var unary = map[string]func(float64) float64{
	"log10":  math.Log10,
	"ln":     math.Log,
	"exp":    math.Exp,
	"abs":    math.Abs,
	"sqrt":   math.Sqrt,
	"square": func(v float64) float64 { return v * v },
	"recip":  func(v float64) float64 { return 1 / v },
	"neg":    func(v float64) float64 { return -v },
}

// parametric operations by name; the parameter comes after the colon.
var parametric = map[string]func(v, k float64) float64{
	"add": func(v, k float64) float64 { return v + k },
	"sub": func(v, k float64) float64 { return v - k },
	"mul": func(v, k float64) float64 { return v * k },
	"div": func(v, k float64) float64 { return v / k },
	"pow": math.Pow,
}

// Chain is a parsed transform chain. The zero value is the identity.
type Chain struct {
	expr string
	ops  []func(float64) float64
}

// Parse parses a chain expression. An empty or blank expression yields
// the identity chain.
func Parse(expr string) (Chain, error) {
	if strings.TrimSpace(expr) == "" {
		return Chain{}, nil
	}
	c := Chain{expr: expr}
	for _, tok := range strings.Split(expr, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Chain{}, errors.New(errors.ErrCodeInvalidTransform, "empty transform step in %q", expr)
		}
		name, param, hasParam := strings.Cut(tok, ":")
		name = strings.TrimSpace(name)
		if fn, ok := unary[name]; ok {
			if hasParam {
				return Chain{}, errors.New(errors.ErrCodeInvalidTransform, "transform %q takes no parameter", tok)
			}
			c.ops = append(c.ops, fn)
			continue
		}
		if fn, ok := parametric[name]; ok {
			if !hasParam {
				return Chain{}, errors.New(errors.ErrCodeInvalidTransform, "transform %q needs a numeric parameter, e.g. %q", name, name+":2")
			}
			k, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
			if err != nil {
				return Chain{}, errors.New(errors.ErrCodeInvalidTransform, "bad parameter in transform %q", tok)
			}
			op := fn
			c.ops = append(c.ops, func(v float64) float64 { return op(v, k) })
			continue
		}
		return Chain{}, errors.New(errors.ErrCodeInvalidTransform, "unknown transform %q", name)
	}
	return c, nil
}

// Empty reports whether the chain transforms nothing.
func (c Chain) Empty() bool {
	return len(c.ops) == 0
}

// String returns the expression the chain was parsed from. Identity
// chains return the empty string.
func (c Chain) String() string {
	return c.expr
}

// At applies the chain to a single value.
func (c Chain) At(v float64) float64 {
	for _, op := range c.ops {
		v = op(v)
	}
	return v
}

// Apply applies the chain to a copy of values. The identity chain still
// copies, so callers may mutate the result freely.
func (c Chain) Apply(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = c.At(v)
	}
	return out
}
