package parser

import (
	"errors"
	"testing"

	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/arnavsurve/wcc/internal/compiler/lexer"
	"github.com/arnavsurve/wcc/internal/compiler/symbols"
	"github.com/arnavsurve/wcc/internal/compiler/token"
)

// --- Test Helper Functions ---

// parse runs the parser over input and fails the test on any error.
func parse(t *testing.T, input string) (*ast.Function, *Parser) {
	t.Helper()
	p := NewParser(lexer.NewLexer(input))
	fn, err := p.ParseFunction()
	if err != nil {
		t.Fatalf("ParseFunction(%q) returned error: %v", input, err)
	}
	if fn == nil {
		t.Fatalf("ParseFunction(%q) returned nil", input)
	}
	return fn, p
}

// parseErr runs the parser over input and returns the error it must produce.
func parseErr(t *testing.T, input string) error {
	t.Helper()
	p := NewParser(lexer.NewLexer(input))
	fn, err := p.ParseFunction()
	if err == nil {
		t.Fatalf("ParseFunction(%q) expected error, got function %s", input, fn)
	}
	return err
}

// exprOf returns the expression of the only statement in fn.
func exprOf(t *testing.T, fn *ast.Function) ast.Expression {
	t.Helper()
	if len(fn.Body) != 1 {
		t.Fatalf("fn.Body expected=1 statement, got=%d", len(fn.Body))
	}
	stmt, ok := fn.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("fn.Body[0] is not *ExpressionStatement. got=%T", fn.Body[0])
	}
	return stmt.Expression
}

// logOf returns the only statement in fn as a log statement.
func logOf(t *testing.T, fn *ast.Function) *ast.LogStatement {
	t.Helper()
	if len(fn.Body) != 1 {
		t.Fatalf("fn.Body expected=1 statement, got=%d", len(fn.Body))
	}
	stmt, ok := fn.Body[0].(*ast.LogStatement)
	if !ok {
		t.Fatalf("fn.Body[0] is not *LogStatement. got=%T", fn.Body[0])
	}
	return stmt
}

// --- Function ---

func TestFunctionHeader(t *testing.T) {
	tests := []struct {
		input      string
		returnType string
	}{
		{`int main() { }`, "int"},
		{`void main() { }`, "void"},
	}

	for _, tt := range tests {
		fn, _ := parse(t, tt.input)
		if fn.ReturnType != tt.returnType {
			t.Errorf("%q: ReturnType expected=%q, got=%q", tt.input, tt.returnType, fn.ReturnType)
		}
		if fn.Name != "main" {
			t.Errorf("%q: Name expected='main', got=%q", tt.input, fn.Name)
		}
		if len(fn.Body) != 0 {
			t.Errorf("%q: Body expected empty, got=%d statements", tt.input, len(fn.Body))
		}
	}
}

func TestStatementOrder(t *testing.T) {
	input := `
int main() {
    int x;
    log("first");
    1 + 2;
    string s;
    log(s);
}`
	fn, p := parse(t, input)

	// Declarations leave no statement behind.
	if len(fn.Body) != 3 {
		t.Fatalf("fn.Body expected=3 statements, got=%d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.LogStatement); !ok {
		t.Errorf("fn.Body[0] expected *LogStatement, got=%T", fn.Body[0])
	}
	if _, ok := fn.Body[1].(*ast.ExpressionStatement); !ok {
		t.Errorf("fn.Body[1] expected *ExpressionStatement, got=%T", fn.Body[1])
	}
	if _, ok := fn.Body[2].(*ast.LogStatement); !ok {
		t.Errorf("fn.Body[2] expected *LogStatement, got=%T", fn.Body[2])
	}

	names := p.Scope().Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "s" {
		t.Errorf("scope names expected=[x s], got=%v", names)
	}
}

// --- Declarations ---

func TestVariableDeclaration(t *testing.T) {
	_, p := parse(t, `int main() { int count; string label; }`)

	tests := []struct {
		name string
		typ  symbols.DataType
	}{
		{"count", symbols.Integer},
		{"label", symbols.Text},
	}
	for _, tt := range tests {
		sym, ok := p.Scope().Lookup(tt.name)
		if !ok {
			t.Fatalf("symbol %q not declared", tt.name)
		}
		if sym.Type != tt.typ {
			t.Errorf("symbol %q type expected=%s, got=%s", tt.name, tt.typ, sym.Type)
		}
	}
}

func TestRedeclaration(t *testing.T) {
	err := parseErr(t, `int main() { int x; string x; }`)
	if !errors.Is(err, diag.ErrRedeclaration) {
		t.Fatalf("expected ErrRedeclaration, got %v", err)
	}
	if err.Error() != "1:28: Semantic Error: variable already declared: 'x'" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestUnknownType(t *testing.T) {
	p := NewParser(lexer.NewLexer(`int main() { float x; }`))
	_, err := p.ParseFunction()
	if !errors.Is(err, diag.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if p.Scope().Len() != 0 {
		t.Errorf("unknown type must not add a symbol, scope has %d", p.Scope().Len())
	}
}

// --- Expressions ---

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`int main() { 1 + 2 * 3; }`, "(1 + (2 * 3))"},
		{`int main() { 1 * 2 + 3; }`, "((1 * 2) + 3)"},
		{`int main() { (1 + 2) * 3; }`, "((1 + 2) * 3)"},
		{`int main() { 1 - 2 - 3; }`, "((1 - 2) - 3)"},
		{`int main() { 8 / 4 / 2; }`, "((8 / 4) / 2)"},
		{`int main() { 1 + 2 * 3 - 4 / 2; }`, "((1 + (2 * 3)) - (4 / 2))"},
		{`int main() { ((7)); }`, "7"},
	}

	for _, tt := range tests {
		fn, _ := parse(t, tt.input)
		if got := exprOf(t, fn).String(); got != tt.expected {
			t.Errorf("%q: expected=%q, got=%q", tt.input, tt.expected, got)
		}
	}
}

func TestPrecedenceTreeShape(t *testing.T) {
	fn, _ := parse(t, `int main() { 1 + 2 * 3; }`)

	root, ok := exprOf(t, fn).(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expression is not *BinaryExpression. got=%T", exprOf(t, fn))
	}
	if root.Operator != "+" {
		t.Fatalf("root operator expected='+', got=%q", root.Operator)
	}
	if lit, ok := root.Left.(*ast.IntegerLiteral); !ok || lit.Value != 1 {
		t.Errorf("root.Left expected IntegerLiteral 1, got=%s", root.Left)
	}
	right, ok := root.Right.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("root.Right is not *BinaryExpression. got=%T", root.Right)
	}
	if right.Operator != "*" {
		t.Errorf("root.Right operator expected='*', got=%q", right.Operator)
	}
}

func TestMinusOperator(t *testing.T) {
	fn, _ := parse(t, `int main() { int a; int b; a - b; }`)

	be, ok := exprOf(t, fn).(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expression is not *BinaryExpression. got=%T", exprOf(t, fn))
	}
	if be.Operator != "-" {
		t.Errorf("operator expected='-', got=%q", be.Operator)
	}
	if be.Token.Type != token.TokenMinus {
		t.Errorf("operator token expected=MINUS, got=%s", be.Token.Type)
	}
}

func TestExpressionStatementLeaves(t *testing.T) {
	fn, _ := parse(t, `int main() { string s; 42; "text"; s; }`)
	if len(fn.Body) != 3 {
		t.Fatalf("fn.Body expected=3 statements, got=%d", len(fn.Body))
	}

	want := []string{"42;", `"text";`, "s;"}
	for i, stmt := range fn.Body {
		if stmt.String() != want[i] {
			t.Errorf("fn.Body[%d] expected=%q, got=%q", i, want[i], stmt.String())
		}
	}
}

// --- Log statements ---

func TestLogElements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ast.LogElement
	}{
		{
			"Text",
			`int main() { log("hello"); }`,
			[]ast.LogElement{&ast.TextElement{Value: "hello"}},
		},
		{
			"Empty",
			`int main() { log(); }`,
			[]ast.LogElement{},
		},
		{
			"SpaceSeparator",
			`int main() { log("hello" + "world"); }`,
			[]ast.LogElement{
				&ast.TextElement{Value: "hello"},
				&ast.TextElement{Value: " "},
				&ast.TextElement{Value: "world"},
			},
		},
		{
			"Variables",
			`int main() { int x; string s; log("x=" + x s); }`,
			[]ast.LogElement{
				&ast.TextElement{Value: "x="},
				&ast.TextElement{Value: " "},
				&ast.VariableRefElement{Name: "x"},
				&ast.VariableRefElement{Name: "s"},
			},
		},
		{
			"Number",
			`int main() { log(42); }`,
			[]ast.LogElement{&ast.NumberElement{Value: 42}},
		},
		{
			"FoldedArithmetic",
			`int main() { log(1 + 2); }`,
			[]ast.LogElement{&ast.NumberElement{Value: 3}},
		},
		{
			"FoldedPrecedence",
			`int main() { log("sum" + (10 - 4) * 2 / 3); }`,
			[]ast.LogElement{
				&ast.TextElement{Value: "sum"},
				&ast.TextElement{Value: " "},
				&ast.NumberElement{Value: 4},
			},
		},
		{
			"ParenthesizedString",
			`int main() { log(("quoted")); }`,
			[]ast.LogElement{&ast.TextElement{Value: "quoted"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, _ := parse(t, tt.input)
			stmt := logOf(t, fn)

			if len(stmt.Elements) != len(tt.expected) {
				t.Fatalf("expected %d elements, got %d: %v", len(tt.expected), len(stmt.Elements), stmt.Elements)
			}
			for i, want := range tt.expected {
				got := stmt.Elements[i]
				if got.String() != want.String() {
					t.Errorf("Elements[%d] expected=%s, got=%s", i, want, got)
				}
				if gotType, wantType := typeName(got), typeName(want); gotType != wantType {
					t.Errorf("Elements[%d] expected type %s, got %s", i, wantType, gotType)
				}
			}
		})
	}
}

func typeName(el ast.LogElement) string {
	switch el.(type) {
	case *ast.TextElement:
		return "Text"
	case *ast.NumberElement:
		return "Number"
	case *ast.VariableRefElement:
		return "VariableRef"
	}
	return "unknown"
}

// --- Errors ---

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"MissingReturnType", `main() { }`, diag.ErrUnexpectedToken},
		{"StringReturnType", `string main() { }`, diag.ErrUnexpectedToken},
		{"WrongFunctionName", `int start() { }`, diag.ErrUnexpectedToken},
		{"MissingParens", `int main { }`, diag.ErrUnexpectedToken},
		{"UnclosedBody", `int main() { log("a");`, diag.ErrUnexpectedToken},
		{"TrailingInput", `int main() { } int`, diag.ErrUnexpectedToken},
		{"MissingSemicolon", `int main() { int x }`, diag.ErrUnexpectedToken},
		{"LogMissingSemicolon", `int main() { log("a") }`, diag.ErrUnexpectedToken},
		{"BadStatementStart", `int main() { ; }`, diag.ErrUnexpectedToken},
		{"IllegalCharacter", `int main() { 1 @ 2; }`, diag.ErrUnexpectedToken},
		{"UnterminatedString", `int main() { log("abc); }`, diag.ErrUnexpectedToken},
		{"UnclosedParen", `int main() { (1 + 2; }`, diag.ErrUnexpectedToken},
		{"DeclarationWithoutName", `int main() { int 5; }`, diag.ErrUnexpectedToken},
		{"IntegerOutOfRange", `int main() { 99999999999999999999999; }`, diag.ErrIntegerRange},
		{"LiteralPastInt32", `int main() { log(3000000000); }`, diag.ErrIntegerRange},
		{"FoldedPastInt32", `int main() { log(2147483647 + 1); }`, diag.ErrIntegerRange},
		{"FoldedBelowInt32", `int main() { log(0 - 2147483647 - 2); }`, diag.ErrIntegerRange},
		{"ProductPastInt32", `int main() { log(65536 * 65536); }`, diag.ErrIntegerRange},
		{"UnknownType", `int main() { float x; }`, diag.ErrUnknownType},
		{"Redeclaration", `int main() { int x; int x; }`, diag.ErrRedeclaration},
		{"UndefinedInExpression", `int main() { y + 1; }`, diag.ErrUndefinedVariable},
		{"UndefinedInLog", `int main() { log(y); }`, diag.ErrUndefinedVariable},
		{"UsedBeforeDeclared", `int main() { log(x); int x; }`, diag.ErrUndefinedVariable},
		{"LeadingPlus", `int main() { log(+ "a"); }`, diag.ErrInvalidLogSeparator},
		{"PlusAfterNumber", `int main() { log(1 + + "a"); }`, diag.ErrUnexpectedToken},
		{"VariableJoinedWithPlus", `int main() { int x; log("a" x + "b"); }`, diag.ErrNonConstantLogArg},
		{"StringArithmetic", `int main() { log(1 + ("a")); }`, diag.ErrInvalidLogType},
		{"NonConstantArithmetic", `int main() { int x; log(x + 1); }`, diag.ErrNonConstantLogArg},
		{"DivisionByZero", `int main() { log(1 / 0); }`, diag.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.input)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestInt32Bounds(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{`int main() { log(2147483647); }`, 2147483647},
		{`int main() { log(0 - 2147483647 - 1); }`, -2147483648},
		{`int main() { log(46340 * 46340); }`, 2147395600},
	}

	for _, tt := range tests {
		fn, _ := parse(t, tt.input)
		stmt := logOf(t, fn)
		num, ok := stmt.Elements[0].(*ast.NumberElement)
		if !ok {
			t.Fatalf("%q: Elements[0] is not *NumberElement. got=%T", tt.input, stmt.Elements[0])
		}
		if num.Value != tt.expected {
			t.Errorf("%q: value expected=%d, got=%d", tt.input, tt.expected, num.Value)
		}
	}
}

func TestIntegerRangeError(t *testing.T) {
	err := parseErr(t, `int main() { log(3000000000); }`)
	if err.Error() != "1:18: Semantic Error: integer out of range: 3000000000 does not fit in a 32-bit int" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestErrorPosition(t *testing.T) {
	input := "int main() {\n    log(\"a\")\n}"
	err := parseErr(t, input)

	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T", err)
	}
	if de.Line != 3 || de.Column != 1 {
		t.Errorf("position expected=3:1, got=%d:%d", de.Line, de.Column)
	}
	if de.Class() != diag.SyntaxError {
		t.Errorf("class expected=%q, got=%q", diag.SyntaxError, de.Class())
	}
}

// sliceSource feeds a fixed token list to the parser.
type sliceSource struct {
	toks []token.Token
	pos  int
}

func (s *sliceSource) NextToken() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Type: token.TokenEOF}
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok
}

func TestCustomTokenSource(t *testing.T) {
	src := &sliceSource{toks: []token.Token{
		{Type: token.TokenVoid, Literal: "void"},
		{Type: token.TokenIdent, Literal: "main"},
		{Type: token.TokenLParen, Literal: "("},
		{Type: token.TokenRParen, Literal: ")"},
		{Type: token.TokenLBrace, Literal: "{"},
		{Type: token.TokenLog, Literal: "log"},
		{Type: token.TokenLParen, Literal: "("},
		{Type: token.TokenString, Literal: "from tokens"},
		{Type: token.TokenRParen, Literal: ")"},
		{Type: token.TokenSemicolon, Literal: ";"},
		{Type: token.TokenRBrace, Literal: "}"},
	}}

	fn, err := NewParser(src).ParseFunction()
	if err != nil {
		t.Fatalf("ParseFunction returned error: %v", err)
	}
	if !fn.IsVoid() {
		t.Errorf("expected void function, got %q", fn.ReturnType)
	}
	if got := logOf(t, fn).String(); got != `log("from tokens");` {
		t.Errorf("log statement expected=%q, got=%q", `log("from tokens");`, got)
	}
}
