package parser

import (
	"math"
	"strconv"

	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/arnavsurve/wcc/internal/compiler/token"
)

// fold reduces integer arithmetic over literals to a single IntegerLiteral.
// Leaves are returned unchanged.
func fold(expr ast.Expression) (ast.Expression, error) {
	be, ok := expr.(*ast.BinaryExpression)
	if !ok {
		return expr, nil
	}
	val, err := foldInt(be)
	if err != nil {
		return nil, err
	}
	lit := strconv.Itoa(val)
	return &ast.IntegerLiteral{
		Token: token.Token{Type: token.TokenInt, Literal: lit, Line: be.Token.Line, Column: be.Token.Column},
		Value: val,
	}, nil
}

func foldInt(expr ast.Expression) (int, error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return n.Value, nil
	case *ast.Identifier:
		return 0, diag.At(diag.ErrNonConstantLogArg, n.Token, "'%s' is not a constant", n.Value)
	case *ast.StringLiteral:
		return 0, diag.At(diag.ErrInvalidLogType, n.Token, "string %q used in arithmetic", n.Value)
	case *ast.BinaryExpression:
		l, err := foldInt(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := foldInt(n.Right)
		if err != nil {
			return 0, err
		}
		// Operands are within int32, so the int64 result cannot wrap.
		a, b := int64(l), int64(r)
		var v int64
		switch n.Operator {
		case "+":
			v = a + b
		case "-":
			v = a - b
		case "*":
			v = a * b
		case "/":
			if b == 0 {
				return 0, diag.At(diag.ErrDivisionByZero, n.Token, "%s", n)
			}
			v = a / b
		default:
			return 0, diag.At(diag.ErrInternal, n.Token, "unknown operator %q", n.Operator)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, diag.At(diag.ErrIntegerRange, n.Token, "%s = %d does not fit in a 32-bit int", n, v)
		}
		return int(v), nil
	}
	return 0, diag.Internal("cannot fold %T", expr)
}
