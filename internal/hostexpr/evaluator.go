package hostexpr

import (
	"fmt"

	"github.com/rbql-go/rbql/internal/hostapi"
)

// Evaluator is the default hostapi.Evaluator: it compiles host expression
// source into an AST once and replays it against every row.
type Evaluator struct{}

// New returns the default, stateless host expression evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

func (Evaluator) Compile(exprSrc string) (hostapi.CompiledExpr, error) {
	ast, err := Parse(exprSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", exprSrc, err)
	}
	return compiledExpr{ast: ast, src: exprSrc}, nil
}

type compiledExpr struct {
	ast Expr
	src string
}

func (c compiledExpr) Eval(row hostapi.Row) (hostapi.Value, error) {
	v, err := Eval(c.ast, row)
	if err != nil {
		return hostapi.Null(), fmt.Errorf("evaluating %q: %w", c.src, err)
	}
	return v, nil
}
