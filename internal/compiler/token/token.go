package token

import "fmt"

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "ASTERISK"  // *
	TokenSlash     TokenType = "SLASH"     // / (division)

	// Keywords
	TokenLog  TokenType = "LOG"  // log
	TokenVoid TokenType = "VOID" // void (return type only)

	// Literals & Identifiers
	TokenString TokenType = "STRING" // "..."
	TokenInt    TokenType = "INT"    // 43
	TokenIdent  TokenType = "IDENT"  // Identifier (e.g. variable name, main)

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"

	// Types (int, string). The literal carries the spelling.
	TokenTypeLiteral TokenType = "TYPE_LITERAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsReturnType reports whether the token can start a function definition.
func (t Token) IsReturnType() bool {
	return t.Type == TokenVoid || (t.Type == TokenTypeLiteral && t.Literal == "int")
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return fmt.Sprintf("%s (%q)", t.Type, t.Literal)
	}
	return fmt.Sprintf("%s ('%s')", t.Type, t.Literal)
}
