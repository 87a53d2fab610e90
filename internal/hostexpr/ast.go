package hostexpr

// Expr is the parsed AST of a host expression.
type Expr interface {
	isExpr()
}

type litInt struct{ v int64 }
type litFloat struct{ v float64 }
type litString struct{ v string }

type ident struct{ name string }

// indexExpr is `base[index]`, used for `fields[N]` / `bfields[N]`.
type indexExpr struct {
	base  string
	index Expr
}

type unary struct {
	op string
	x  Expr
}

type binary struct {
	op   string
	x, y Expr
}

type call struct {
	name string
	args []Expr
}

// tupleExpr is a top-level comma-separated expression list, used only for
// composite ORDER BY keys (`order by a2, int(a1)`).
type tupleExpr struct {
	items []Expr
}

func (litInt) isExpr()     {}
func (litFloat) isExpr()   {}
func (litString) isExpr()  {}
func (ident) isExpr()      {}
func (indexExpr) isExpr()  {}
func (unary) isExpr()      {}
func (binary) isExpr()     {}
func (call) isExpr()       {}
func (tupleExpr) isExpr()  {}
