// Package gen renders pattern trees back into Go source.
//
// A pattern built or derived at runtime (from data, from another tool) can
// be emitted as constructor calls and compiled into a program at the
// embedding program's build time, instead of shipping the data it came
// from. Only patterns made of literals and structure can be rendered:
// patterns carrying opaque functions (pattern.Test, pattern.Call) have no
// source form and are rejected with ErrOpaque.
package gen

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/seqvm/pattern"
)

// ErrOpaque is returned when a pattern cannot be rendered as source
// because it carries an opaque function, or a value or capture key with
// no Go literal form.
var ErrOpaque = errors.New("gen: pattern has no source representation")

const patternPkg = "github.com/coregx/seqvm/pattern"

// Config controls the generated file.
type Config struct {
	// Package is the package name of the generated file.
	Package string

	// VarName is the name of the generated package-level variable.
	VarName string

	// ValueType and ResultType are the Go type expressions for the
	// pattern's type parameters, e.g. "rune" and "any". They appear as
	// explicit type arguments on leaf constructors.
	ValueType  string
	ResultType string
}

// Source renders p as a Go file declaring a package-level variable bound
// to an equivalent pattern expression.
func Source[V comparable, R any](cfg Config, p pattern.Pattern[V, R]) ([]byte, error) {
	if p == nil {
		panic("gen: Source: nil pattern")
	}
	if cfg.Package == "" || cfg.VarName == "" || cfg.ValueType == "" || cfg.ResultType == "" {
		return nil, fmt.Errorf("gen: incomplete config: %+v", cfg)
	}

	expr, err := patternExpr(cfg, p)
	if err != nil {
		return nil, err
	}

	f := jen.NewFile(cfg.Package)
	f.Var().Id(cfg.VarName).Op("=").Add(expr)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("gen: render: %w", err)
	}
	return buf.Bytes(), nil
}

// typeArgs renders the explicit [V, R] type argument list used on leaf
// constructors, where neither parameter is inferrable from the arguments.
func typeArgs(cfg Config) (jen.Code, jen.Code) {
	return jen.Id(cfg.ValueType), jen.Id(cfg.ResultType)
}

func patternExpr[V comparable, R any](cfg Config, p pattern.Pattern[V, R]) (jen.Code, error) {
	v, r := typeArgs(cfg)

	switch q := p.(type) {
	case *pattern.Literal[V, R]:
		value, err := valueLit(q.Value())
		if err != nil {
			return nil, err
		}
		return jen.Qual(patternPkg, "NewLiteral").Types(v, r).Call(value), nil

	case *pattern.Any[V, R]:
		return jen.Qual(patternPkg, "NewAny").Types(v, r).Call(), nil

	case *pattern.OneOf[V, R]:
		values := q.Values()
		args := make([]jen.Code, 0, len(values))
		for _, value := range values {
			lit, err := valueLit(value)
			if err != nil {
				return nil, err
			}
			args = append(args, lit)
		}
		return jen.Qual(patternPkg, "NewOneOf").Types(v, r).Call(args...), nil

	case *pattern.Concat[V, R]:
		args, err := patternExprs(cfg, q.Patterns())
		if err != nil {
			return nil, err
		}
		return jen.Qual(patternPkg, "NewConcat").Call(args...), nil

	case *pattern.Alt[V, R]:
		args, err := patternExprs(cfg, q.Patterns())
		if err != nil {
			return nil, err
		}
		return jen.Qual(patternPkg, "NewAlt").Call(args...), nil

	case *pattern.Captured[V, R]:
		key, err := keyLit(q.Key())
		if err != nil {
			return nil, err
		}
		sub, err := patternExpr(cfg, q.Pattern())
		if err != nil {
			return nil, err
		}
		return jen.Qual(patternPkg, "NewCaptured").Call(key, sub), nil

	case *pattern.Marked[V, R]:
		sub, err := patternExpr(cfg, q.Pattern())
		if err != nil {
			return nil, err
		}
		return jen.Qual(patternPkg, "NewMarked").Call(sub), nil

	case *pattern.ZeroOrOne[V, R]:
		return repeatExpr(cfg, "NewZeroOrOne", q.Pattern(), q.Greediness())

	case *pattern.ZeroOrMore[V, R]:
		return repeatExpr(cfg, "NewZeroOrMore", q.Pattern(), q.Greediness())

	case *pattern.OneOrMore[V, R]:
		return repeatExpr(cfg, "NewOneOrMore", q.Pattern(), q.Greediness())

	case *pattern.Repeat[V, R]:
		sub, err := patternExpr(cfg, q.Pattern())
		if err != nil {
			return nil, err
		}
		max := jen.Lit(q.Max())
		if q.Max() == pattern.Unbounded {
			max = jen.Qual(patternPkg, "Unbounded")
		}
		return jen.Qual(patternPkg, "NewRepeat").Call(
			sub, jen.Lit(q.Min()), max, greedinessExpr(q.Greediness())), nil

	default:
		// Test and Call carry opaque functions.
		return nil, fmt.Errorf("%w: %s", ErrOpaque, p)
	}
}

func patternExprs[V comparable, R any](cfg Config, patterns []pattern.Pattern[V, R]) ([]jen.Code, error) {
	exprs := make([]jen.Code, 0, len(patterns))
	for _, p := range patterns {
		expr, err := patternExpr(cfg, p)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func repeatExpr[V comparable, R any](cfg Config, ctor string, sub pattern.Pattern[V, R], g pattern.Greediness) (jen.Code, error) {
	expr, err := patternExpr(cfg, sub)
	if err != nil {
		return nil, err
	}
	return jen.Qual(patternPkg, ctor).Call(expr, greedinessExpr(g)), nil
}

func greedinessExpr(g pattern.Greediness) jen.Code {
	if g == pattern.Lazy {
		return jen.Qual(patternPkg, "Lazy")
	}
	return jen.Qual(patternPkg, "Greedy")
}

// valueLit renders a pattern payload value as a Go literal. Only basic
// types have a literal form.
func valueLit(value any) (jen.Code, error) {
	switch value.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return jen.Lit(value), nil
	default:
		return nil, fmt.Errorf("%w: value %#v", ErrOpaque, value)
	}
}

// keyLit renders a capture key. Nil is the whole-match key.
func keyLit(key any) (jen.Code, error) {
	if key == nil {
		return jen.Nil(), nil
	}
	return valueLit(key)
}
