package hostexpr

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rbql-go/rbql/internal/hostapi"
)

func evalCall(n call, row hostapi.Row) (hostapi.Value, error) {
	args := make([]hostapi.Value, len(n.args))
	for i, a := range n.args {
		v, err := Eval(a, row)
		if err != nil {
			return hostapi.Null(), err
		}
		args[i] = v
	}

	fn, ok := builtins[n.name]
	if !ok {
		return hostapi.Null(), fmt.Errorf("unknown function %q", n.name)
	}
	return fn(args)
}

type builtinFunc func(args []hostapi.Value) (hostapi.Value, error)

var builtins = map[string]builtinFunc{
	"len":        fnLen,
	"flike":      fnFlike,
	"int":        fnInt,
	"float":      fnFloat,
	"str":        fnStr,
	"math.sqrt":  fnMathSqrt,
	"math.floor": fnMathFloor,
	"math.ceil":  fnMathCeil,
	"random":     fnRandom,
}

func fnLen(args []hostapi.Value) (hostapi.Value, error) {
	if len(args) != 1 {
		return hostapi.Null(), fmt.Errorf("len takes exactly one argument")
	}
	return hostapi.Int(int64(len(args[0].String()))), nil
}

var flikeCache sync.Map // pattern string -> *regexp.Regexp

// fnFlike implements SQL-LIKE: `_` matches any single character, `%`
// matches any run, both regex-escaped elsewhere and anchored with ^/$.
func fnFlike(args []hostapi.Value) (hostapi.Value, error) {
	if len(args) != 2 {
		return hostapi.Null(), fmt.Errorf("flike takes exactly two arguments")
	}
	text, pattern := args[0].String(), args[1].String()

	re, err := flikeRegexp(pattern)
	if err != nil {
		return hostapi.Null(), err
	}
	return hostapi.Bool(re.MatchString(text)), nil
}

func flikeRegexp(pattern string) (*regexp.Regexp, error) {
	if cached, ok := flikeCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '_':
			b.WriteString(".")
		case '%':
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid flike pattern %q: %w", pattern, err)
	}
	flikeCache.Store(pattern, re)
	return re, nil
}

func fnInt(args []hostapi.Value) (hostapi.Value, error) {
	if len(args) != 1 {
		return hostapi.Null(), fmt.Errorf("int takes exactly one argument")
	}
	v := args[0]
	switch v.Kind {
	case hostapi.KindInt:
		return v, nil
	case hostapi.KindFloat:
		return hostapi.Int(int64(v.Float)), nil
	case hostapi.KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return hostapi.Null(), fmt.Errorf("cannot convert %q to int", v.Str)
		}
		return hostapi.Int(n), nil
	default:
		return hostapi.Null(), fmt.Errorf("cannot convert to int")
	}
}

func fnFloat(args []hostapi.Value) (hostapi.Value, error) {
	if len(args) != 1 {
		return hostapi.Null(), fmt.Errorf("float takes exactly one argument")
	}
	v := args[0]
	switch v.Kind {
	case hostapi.KindFloat:
		return v, nil
	case hostapi.KindInt:
		return hostapi.Float(float64(v.Int)), nil
	case hostapi.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return hostapi.Null(), fmt.Errorf("cannot convert %q to float", v.Str)
		}
		return hostapi.Float(f), nil
	default:
		return hostapi.Null(), fmt.Errorf("cannot convert to float")
	}
}

func fnStr(args []hostapi.Value) (hostapi.Value, error) {
	if len(args) != 1 {
		return hostapi.Null(), fmt.Errorf("str takes exactly one argument")
	}
	return hostapi.Str(args[0].String()), nil
}

func fnMathSqrt(args []hostapi.Value) (hostapi.Value, error) {
	f, err := singleFloatArg("math.sqrt", args)
	if err != nil {
		return hostapi.Null(), err
	}
	return hostapi.Float(math.Sqrt(f)), nil
}

func fnMathFloor(args []hostapi.Value) (hostapi.Value, error) {
	f, err := singleFloatArg("math.floor", args)
	if err != nil {
		return hostapi.Null(), err
	}
	return hostapi.Float(math.Floor(f)), nil
}

func fnMathCeil(args []hostapi.Value) (hostapi.Value, error) {
	f, err := singleFloatArg("math.ceil", args)
	if err != nil {
		return hostapi.Null(), err
	}
	return hostapi.Float(math.Ceil(f)), nil
}

func singleFloatArg(name string, args []hostapi.Value) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s takes exactly one argument", name)
	}
	f, ok := args[0].AsFloat()
	if !ok {
		return 0, fmt.Errorf("%s requires a numeric argument", name)
	}
	return f, nil
}

// fnRandom mirrors RBQL's `random` helper: random() returns a float in
// [0, 1); random(n) returns a random non-negative integer below n.
func fnRandom(args []hostapi.Value) (hostapi.Value, error) {
	switch len(args) {
	case 0:
		return hostapi.Float(rand.Float64()), nil
	case 1:
		n, ok := args[0].AsFloat()
		if !ok || n <= 0 {
			return hostapi.Null(), fmt.Errorf("random(n) requires a positive numeric argument")
		}
		return hostapi.Int(rand.Int63n(int64(n))), nil
	default:
		return hostapi.Null(), fmt.Errorf("random takes at most one argument")
	}
}
