// Package types computes the static type of leaf expressions.
package types

import (
	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/arnavsurve/wcc/internal/compiler/scope"
	"github.com/arnavsurve/wcc/internal/compiler/symbols"
)

// Resolve returns the type of a literal or variable expression.
//
// Binary expressions have no type here: callers fold them to a literal first.
// Passing one is an internal error.
func Resolve(expr ast.Expression, sc *scope.Scope) (symbols.DataType, error) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return symbols.Integer, nil
	case *ast.StringLiteral:
		return symbols.Text, nil
	case *ast.Identifier:
		sym, ok := sc.Lookup(node.Value)
		if !ok {
			return symbols.Invalid, diag.At(diag.ErrUndefinedVariable, node.Token, "'%s'", node.Value)
		}
		return sym.Type, nil
	case nil:
		return symbols.Invalid, diag.Internal("cannot resolve type of nil expression")
	default:
		return symbols.Invalid, diag.At(diag.ErrInternal, expr.GetToken(), "cannot resolve type of %T", expr)
	}
}
