package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/arnavsurve/wcc/internal/compiler/scope"
	"github.com/arnavsurve/wcc/internal/compiler/symbols"
)

const (
	indentUnit = "    " // one nesting level
	prelude    = "#include <stdio.h>"
	printFunc  = "printf"

	intPlaceholder  = "%d"
	textPlaceholder = "%s"
)

type Emitter struct {
	builder strings.Builder
	scope   *scope.Scope
}

// NewEmitter returns an emitter that resolves variable types through sc.
func NewEmitter(sc *scope.Scope) *Emitter {
	return &Emitter{scope: sc}
}

// Emit renders fn as a complete C translation unit. On error no text is returned.
func (e *Emitter) Emit(fn *ast.Function) (string, error) {
	e.builder.Reset()

	e.emitLine(0, prelude)
	e.builder.WriteString("\n")

	if err := e.emitFunction(fn, 0); err != nil {
		return "", err
	}
	return e.builder.String(), nil
}

// --- Emit Helpers ---

func (e *Emitter) emitLine(depth int, line string) {
	e.builder.WriteString(strings.Repeat(indentUnit, depth) + line + "\n")
}

// --- Emit Structure ---

func (e *Emitter) emitFunction(fn *ast.Function, depth int) error {
	if fn == nil {
		return diag.Internal("emitter received nil function")
	}

	e.emitLine(depth, fmt.Sprintf("%s %s() {", fn.ReturnType, fn.Name))

	for _, stmt := range fn.Body {
		if err := e.emitStatement(stmt, depth+1); err != nil {
			return err
		}
	}

	if fn.IsVoid() {
		e.emitLine(depth+1, "return;")
	} else {
		e.emitLine(depth+1, "return 0;")
	}
	e.emitLine(depth, "}")
	return nil
}

// --- Emit Statements ---

func (e *Emitter) emitStatement(stmt ast.Statement, depth int) error {
	switch stmt := stmt.(type) {
	case *ast.LogStatement:
		return e.emitLog(stmt, depth)
	case *ast.ExpressionStatement:
		return e.emitExpressionStatement(stmt, depth)
	default:
		// If we land here, check parsing logic for bugs
		return diag.Internal("emitter encountered unknown statement type %T", stmt)
	}
}

// emitLog writes one printf call. Text goes into the format string, numbers
// and variables become placeholders with a matching argument.
func (e *Emitter) emitLog(stmt *ast.LogStatement, depth int) error {
	var format strings.Builder
	var args strings.Builder

	for _, el := range stmt.Elements {
		switch el := el.(type) {
		case *ast.TextElement:
			format.WriteString(escapeFormat(escapeC(el.Value)))
		case *ast.NumberElement:
			format.WriteString(intPlaceholder)
			args.WriteString(", " + strconv.Itoa(el.Value))
		case *ast.VariableRefElement:
			placeholder, err := e.placeholderFor(el)
			if err != nil {
				return err
			}
			format.WriteString(placeholder)
			args.WriteString(", " + el.Name)
		default:
			return diag.At(diag.ErrInternal, stmt.Token, "unknown log element type %T", el)
		}
	}
	format.WriteString(`\n`)

	e.emitLine(depth, fmt.Sprintf(`%s("%s"%s);`, printFunc, format.String(), args.String()))
	return nil
}

// placeholderFor picks the conversion for a variable from its declared type.
func (e *Emitter) placeholderFor(ref *ast.VariableRefElement) (string, error) {
	sym, ok := e.scope.Lookup(ref.Name)
	if !ok {
		return "", diag.At(diag.ErrUndefinedVariable, ref.Token, "'%s'", ref.Name)
	}
	switch sym.Type {
	case symbols.Integer:
		return intPlaceholder, nil
	case symbols.Text:
		return textPlaceholder, nil
	default:
		return "", diag.At(diag.ErrInvalidLogType, ref.Token, "'%s' has type %s", ref.Name, sym.Type)
	}
}

// emitExpressionStatement writes a bare expression whose value is discarded.
func (e *Emitter) emitExpressionStatement(stmt *ast.ExpressionStatement, depth int) error {
	valueStr, err := e.emitExpression(stmt.Expression)
	if err != nil {
		return err
	}
	e.emitLine(depth, valueStr+";")
	return nil
}

// emitExpression converts an Expression AST node into its C string representation
func (e *Emitter) emitExpression(expr ast.Expression) (string, error) {
	switch node := expr.(type) {
	case *ast.Identifier:
		return node.Value, nil
	case *ast.IntegerLiteral:
		return strconv.Itoa(node.Value), nil
	case *ast.StringLiteral:
		return `"` + escapeC(node.Value) + `"`, nil
	case *ast.BinaryExpression:
		leftStr, err := e.emitExpression(node.Left)
		if err != nil {
			return "", err
		}
		rightStr, err := e.emitExpression(node.Right)
		if err != nil {
			return "", err
		}
		// Nested operations keep the parsed grouping.
		if _, ok := node.Left.(*ast.BinaryExpression); ok {
			leftStr = fmt.Sprintf("(%s)", leftStr)
		}
		if _, ok := node.Right.(*ast.BinaryExpression); ok {
			rightStr = fmt.Sprintf("(%s)", rightStr)
		}
		return fmt.Sprintf("%s %s %s", leftStr, node.Operator, rightStr), nil
	default:
		return "", diag.Internal("cannot emit code for unknown expression type %T", expr)
	}
}

// escapeC writes s as the body of a C string literal that holds exactly s.
func escapeC(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if ch < 0x20 || ch == 0x7f {
				// Three octal digits so a following digit is not absorbed.
				fmt.Fprintf(&b, `\%03o`, ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	return b.String()
}

// escapeFormat doubles '%' so printf copies the text as written. It runs
// after escapeC.
func escapeFormat(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
