package parser

import (
	"strconv"

	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/arnavsurve/wcc/internal/compiler/scope"
	"github.com/arnavsurve/wcc/internal/compiler/symbols"
	"github.com/arnavsurve/wcc/internal/compiler/token"
	"github.com/arnavsurve/wcc/internal/compiler/types"
)

// mainName is the only function name the language accepts.
const mainName = "main"

// TokenSource yields tokens one at a time. After the end of input it keeps
// returning EOF tokens.
type TokenSource interface {
	NextToken() token.Token
}

// binaryOperators maps arithmetic token types to the operator written in the AST.
var binaryOperators = map[token.TokenType]string{
	token.TokenPlus:     "+",
	token.TokenMinus:    "-",
	token.TokenAsterisk: "*",
	token.TokenSlash:    "/",
}

type Parser struct {
	l       TokenSource
	curTok  token.Token
	peekTok token.Token

	// Symbol table of the main body, filled as declarations are parsed.
	scope *scope.Scope
}

func NewParser(l TokenSource) *Parser {
	p := &Parser{
		l:     l,
		scope: scope.NewScope(mainName),
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Scope returns the symbol table built so far.
func (p *Parser) Scope() *scope.Scope {
	return p.scope
}

// --- Token Handling ---
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

// expect consumes the current token if it has type t. what names the
// expected token in the error message.
func (p *Parser) expect(t token.TokenType, what string) error {
	if p.curTok.Type != t {
		return p.unexpected("expected %s, got %s", what, p.curTok)
	}
	p.nextToken()
	return nil
}

func (p *Parser) unexpected(format string, args ...any) error {
	return diag.At(diag.ErrUnexpectedToken, p.curTok, format, args...)
}

// --- Function Parsing ---

// ParseFunction parses a whole program: one main function followed by the
// end of input. The first error stops parsing.
func (p *Parser) ParseFunction() (*ast.Function, error) {
	if !p.curTok.IsReturnType() {
		return nil, p.unexpected("expected return type 'int' or 'void', got %s", p.curTok)
	}
	fn := &ast.Function{
		Token:      p.curTok,
		ReturnType: p.curTok.Literal,
		Body:       []ast.Statement{},
	}
	p.nextToken()

	if p.curTok.Type != token.TokenIdent || p.curTok.Literal != mainName {
		return nil, p.unexpected("expected '%s', got %s", mainName, p.curTok)
	}
	fn.Name = p.curTok.Literal
	p.nextToken()

	if err := p.expect(token.TokenLParen, "'('"); err != nil {
		return nil, err
	}
	if err := p.expect(token.TokenRParen, "')'"); err != nil {
		return nil, err
	}
	if err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	for p.curTok.Type != token.TokenRBrace {
		if p.curTok.Type == token.TokenEOF {
			return nil, p.unexpected("expected '}' to close '%s', got %s", fn.Name, p.curTok)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		// Declarations produce no statement.
		if stmt != nil {
			fn.Body = append(fn.Body, stmt)
		}
	}
	p.nextToken() // Consume '}'

	if p.curTok.Type != token.TokenEOF {
		return nil, p.unexpected("expected end of input after '%s', got %s", fn.Name, p.curTok)
	}
	return fn, nil
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case token.TokenLog:
		return p.parseLogStatement()
	case token.TokenTypeLiteral:
		return nil, p.parseVariableDeclaration()
	case token.TokenIdent:
		// `float x;` reads as a declaration so the type name can be reported.
		if p.peekTok.Type == token.TokenIdent {
			return nil, p.parseVariableDeclaration()
		}
		return p.parseExpressionStatement()
	case token.TokenInt, token.TokenString, token.TokenLParen:
		return p.parseExpressionStatement()
	default:
		return nil, p.unexpected("unexpected %s at start of statement", p.curTok)
	}
}

// parseVariableDeclaration parses `type name;` and registers name in the
// symbol table.
func (p *Parser) parseVariableDeclaration() error {
	typeTok := p.curTok
	p.nextToken()

	if p.curTok.Type != token.TokenIdent {
		return p.unexpected("expected variable name after '%s', got %s", typeTok.Literal, p.curTok)
	}
	nameTok := p.curTok

	typ, ok := symbols.TypeFromName(typeTok.Literal)
	if !ok {
		return diag.At(diag.ErrUnknownType, typeTok, "'%s' (expected 'int' or 'string')", typeTok.Literal)
	}
	if !p.scope.Add(nameTok.Literal, typ) {
		return diag.At(diag.ErrRedeclaration, nameTok, "'%s'", nameTok.Literal)
	}
	p.nextToken()

	return p.expect(token.TokenSemicolon, "';'")
}

// parseLogStatement parses `log(arg*);`, resolving every argument to a log element.
func (p *Parser) parseLogStatement() (*ast.LogStatement, error) {
	stmt := &ast.LogStatement{Token: p.curTok, Elements: []ast.LogElement{}}
	p.nextToken() // Consume 'log'

	if err := p.expect(token.TokenLParen, "'(' after 'log'"); err != nil {
		return nil, err
	}

	for p.curTok.Type != token.TokenRParen {
		switch p.curTok.Type {
		case token.TokenString:
			stmt.Elements = append(stmt.Elements, &ast.TextElement{Value: p.curTok.Literal})
			p.nextToken()

		case token.TokenPlus:
			// '+' joins two arguments with a space and must follow text.
			if len(stmt.Elements) == 0 {
				return nil, diag.At(diag.ErrInvalidLogSeparator, p.curTok, "'+' cannot start a log argument list")
			}
			if _, isText := stmt.Elements[len(stmt.Elements)-1].(*ast.TextElement); !isText {
				return nil, diag.At(diag.ErrInvalidLogSeparator, p.curTok, "'+' must follow a string argument")
			}
			stmt.Elements = append(stmt.Elements, &ast.TextElement{Value: " "})
			p.nextToken()

		default:
			el, err := p.parseLogExpression()
			if err != nil {
				return nil, err
			}
			stmt.Elements = append(stmt.Elements, el)
		}
	}
	p.nextToken() // Consume ')'

	if err := p.expect(token.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseLogExpression parses one expression argument of a log statement.
// Constant arithmetic is folded first so that only a literal or a variable
// is left to type.
func (p *Parser) parseLogExpression() (ast.LogElement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	folded, err := fold(expr)
	if err != nil {
		return nil, err
	}
	typ, err := types.Resolve(folded, p.scope)
	if err != nil {
		return nil, err
	}
	if typ != symbols.Integer && typ != symbols.Text {
		return nil, diag.At(diag.ErrInvalidLogType, folded.GetToken(), "%s", typ)
	}

	switch node := folded.(type) {
	case *ast.Identifier:
		return &ast.VariableRefElement{Token: node.Token, Name: node.Value}, nil
	case *ast.IntegerLiteral:
		return &ast.NumberElement{Value: node.Value}, nil
	case *ast.StringLiteral:
		return &ast.TextElement{Value: node.Value}, nil
	default:
		return nil, diag.At(diag.ErrInternal, folded.GetToken(), "unexpected %T after folding", folded)
	}
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	stmt := &ast.ExpressionStatement{Token: p.curTok}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr

	if err := p.expect(token.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// --- Expression Parsing ---

// parseExpression: Term (("+" | "-") Term)*
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(p.parseTerm, token.TokenPlus, token.TokenMinus)
}

// parseTerm: Factor (("*" | "/") Factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseBinary(p.parseFactor, token.TokenAsterisk, token.TokenSlash)
}

// parseBinary parses a left-associative chain of operands joined by any of ops.
func (p *Parser) parseBinary(operand func() (ast.Expression, error), ops ...token.TokenType) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.isOneOf(ops...) {
		opTok := p.curTok
		p.nextToken()

		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    opTok,
			Left:     left,
			Operator: binaryOperators[opTok.Type],
			Right:    right,
		}
	}
	return left, nil
}

func (p *Parser) isOneOf(kinds ...token.TokenType) bool {
	for _, t := range kinds {
		if p.curTok.Type == t {
			return true
		}
	}
	return false
}

// parseFactor: Number | StringLiteral | Identifier | "(" Expression ")"
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.curTok

	switch tok.Type {
	case token.TokenInt:
		// Values must fit the C int that printf's %d reads.
		val, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return nil, diag.At(diag.ErrIntegerRange, tok, "%s does not fit in a 32-bit int", tok.Literal)
		}
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: int(val)}, nil

	case token.TokenString:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil

	case token.TokenIdent:
		if _, ok := p.scope.Lookup(tok.Literal); !ok {
			return nil, diag.At(diag.ErrUndefinedVariable, tok, "'%s'", tok.Literal)
		}
		p.nextToken()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil

	case token.TokenLParen:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.unexpected("expected expression, got %s", tok)
	}
}
