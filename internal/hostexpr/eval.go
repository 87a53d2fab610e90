package hostexpr

import (
	"fmt"
	"strings"

	"github.com/rbql-go/rbql/internal/hostapi"
)

// Eval walks the AST against a row context. AND/OR short-circuit: the
// right operand is only evaluated when its value can change the result,
// so a WHERE clause like `int(a1) > 5 and len(b2) > 1` never touches `b2`
// on rows the first comparison already rejects.
func Eval(e Expr, row hostapi.Row) (hostapi.Value, error) {
	switch n := e.(type) {
	case litInt:
		return hostapi.Int(n.v), nil
	case litFloat:
		return hostapi.Float(n.v), nil
	case litString:
		return hostapi.Str(n.v), nil
	case ident:
		return evalIdent(n, row)
	case indexExpr:
		return evalIndex(n, row)
	case unary:
		return evalUnary(n, row)
	case binary:
		return evalBinary(n, row)
	case call:
		return evalCall(n, row)
	case tupleExpr:
		return evalTuple(n, row)
	default:
		return hostapi.Null(), fmt.Errorf("unsupported expression node %T", e)
	}
}

func evalIdent(n ident, row hostapi.Row) (hostapi.Value, error) {
	switch n.name {
	case "NR":
		return hostapi.Int(int64(row.NR())), nil
	case "NF":
		return hostapi.Int(int64(row.NF())), nil
	case "star_line":
		return hostapi.Str(row.StarLine()), nil
	case "None", "null", "NULL":
		return hostapi.Null(), nil
	case "True", "true":
		return hostapi.Bool(true), nil
	case "False", "false":
		return hostapi.Bool(false), nil
	default:
		return hostapi.Null(), fmt.Errorf("unknown identifier %q", n.name)
	}
}

func evalIndex(n indexExpr, row hostapi.Row) (hostapi.Value, error) {
	idxVal, err := Eval(n.index, row)
	if err != nil {
		return hostapi.Null(), err
	}
	if idxVal.Kind != hostapi.KindInt {
		return hostapi.Null(), fmt.Errorf("index into %s must be an integer", n.base)
	}
	i := int(idxVal.Int)

	switch n.base {
	case "fields":
		s, err := row.Field(i)
		if err != nil {
			return hostapi.Null(), err
		}
		return hostapi.Str(s), nil
	case "bfields":
		s, err := row.BField(i)
		if err != nil {
			return hostapi.Null(), err
		}
		return hostapi.Str(s), nil
	default:
		return hostapi.Null(), fmt.Errorf("unknown indexable %q", n.base)
	}
}

func evalTuple(n tupleExpr, row hostapi.Row) (hostapi.Value, error) {
	vals := make([]hostapi.Value, len(n.items))
	for i, item := range n.items {
		v, err := Eval(item, row)
		if err != nil {
			return hostapi.Null(), err
		}
		vals[i] = v
	}
	return hostapi.TupleOf(vals), nil
}

func evalUnary(n unary, row hostapi.Row) (hostapi.Value, error) {
	x, err := Eval(n.x, row)
	if err != nil {
		return hostapi.Null(), err
	}
	switch n.op {
	case "-":
		switch x.Kind {
		case hostapi.KindInt:
			return hostapi.Int(-x.Int), nil
		case hostapi.KindFloat:
			return hostapi.Float(-x.Float), nil
		default:
			return hostapi.Null(), fmt.Errorf("unary - requires a number")
		}
	case "!":
		return hostapi.Bool(!x.Truthy()), nil
	default:
		return hostapi.Null(), fmt.Errorf("unknown unary operator %q", n.op)
	}
}

func evalBinary(n binary, row hostapi.Row) (hostapi.Value, error) {
	switch n.op {
	case "and", "&&":
		x, err := Eval(n.x, row)
		if err != nil {
			return hostapi.Null(), err
		}
		if !x.Truthy() {
			return hostapi.Bool(false), nil
		}
		y, err := Eval(n.y, row)
		if err != nil {
			return hostapi.Null(), err
		}
		return hostapi.Bool(y.Truthy()), nil
	case "or", "||":
		x, err := Eval(n.x, row)
		if err != nil {
			return hostapi.Null(), err
		}
		if x.Truthy() {
			return hostapi.Bool(true), nil
		}
		y, err := Eval(n.y, row)
		if err != nil {
			return hostapi.Null(), err
		}
		return hostapi.Bool(y.Truthy()), nil
	}

	x, err := Eval(n.x, row)
	if err != nil {
		return hostapi.Null(), err
	}
	y, err := Eval(n.y, row)
	if err != nil {
		return hostapi.Null(), err
	}

	switch n.op {
	case "+":
		if x.Kind == hostapi.KindString || y.Kind == hostapi.KindString {
			return hostapi.Str(x.String() + y.String()), nil
		}
		return arith(n.op, x, y)
	case "-", "*", "/", "%":
		return arith(n.op, x, y)
	case "==", "!=", "<", ">", "<=", ">=":
		return compare(n.op, x, y)
	default:
		return hostapi.Null(), fmt.Errorf("unknown binary operator %q", n.op)
	}
}

func arith(op string, x, y hostapi.Value) (hostapi.Value, error) {
	xf, xok := x.AsFloat()
	yf, yok := y.AsFloat()
	if !xok || !yok {
		return hostapi.Null(), fmt.Errorf("operator %q requires numeric operands", op)
	}
	if x.Kind == hostapi.KindInt && y.Kind == hostapi.KindInt && op != "/" {
		xi, yi := x.Int, y.Int
		switch op {
		case "+":
			return hostapi.Int(xi + yi), nil
		case "-":
			return hostapi.Int(xi - yi), nil
		case "*":
			return hostapi.Int(xi * yi), nil
		case "%":
			if yi == 0 {
				return hostapi.Null(), fmt.Errorf("modulo by zero")
			}
			return hostapi.Int(xi % yi), nil
		}
	}
	switch op {
	case "+":
		return hostapi.Float(xf + yf), nil
	case "-":
		return hostapi.Float(xf - yf), nil
	case "*":
		return hostapi.Float(xf * yf), nil
	case "/":
		if yf == 0 {
			return hostapi.Null(), fmt.Errorf("division by zero")
		}
		return hostapi.Float(xf / yf), nil
	case "%":
		return hostapi.Null(), fmt.Errorf("modulo requires integer operands")
	default:
		return hostapi.Null(), fmt.Errorf("unknown arithmetic operator %q", op)
	}
}

// compare implements the host-defined ordering used both by comparison
// operators and by ORDER BY: numeric when both sides are numeric,
// lexicographic string comparison otherwise. Mixed, non-numeric types
// compare their String() renderings — documented as host-defined.
func compare(op string, x, y hostapi.Value) (hostapi.Value, error) {
	c, err := Compare(x, y)
	if err != nil {
		return hostapi.Null(), err
	}
	switch op {
	case "==":
		return hostapi.Bool(c == 0), nil
	case "!=":
		return hostapi.Bool(c != 0), nil
	case "<":
		return hostapi.Bool(c < 0), nil
	case ">":
		return hostapi.Bool(c > 0), nil
	case "<=":
		return hostapi.Bool(c <= 0), nil
	case ">=":
		return hostapi.Bool(c >= 0), nil
	default:
		return hostapi.Null(), fmt.Errorf("unknown comparison operator %q", op)
	}
}

// Compare is the ordering comparison operators use. The executor's ORDER BY
// sort does not call it; it applies the same ordering in its own
// compareValues.
func Compare(x, y hostapi.Value) (int, error) {
	if x.Kind == hostapi.KindTuple || y.Kind == hostapi.KindTuple {
		return compareTuples(x, y)
	}
	if xf, xok := x.AsFloat(); xok {
		if yf, yok := y.AsFloat(); yok {
			switch {
			case xf < yf:
				return -1, nil
			case xf > yf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return strings.Compare(x.String(), y.String()), nil
}

// compareTuples compares composite ORDER BY keys element by element,
// falling through to the next element on a tie.
func compareTuples(x, y hostapi.Value) (int, error) {
	n := len(x.Tuple)
	if len(y.Tuple) < n {
		n = len(y.Tuple)
	}
	for i := 0; i < n; i++ {
		c, err := Compare(x.Tuple[i], y.Tuple[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return len(x.Tuple) - len(y.Tuple), nil
}
