package ast

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavsurve/wcc/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// LogElement is one resolved argument of a log statement.
type LogElement interface {
	logElement()
	String() string
}

// --- Function ---

// Function is the root of every parsed program: the single main body.
type Function struct {
	Token      token.Token // return type keyword
	ReturnType string      // "int" or "void"
	Name       string
	Body       []Statement
}

func (f *Function) TokenLiteral() string { return f.Token.Literal }

// IsVoid reports whether the function returns no value.
func (f *Function) IsVoid() bool { return f.ReturnType == "void" }

func (f *Function) String() string {
	var out bytes.Buffer
	out.WriteString(f.ReturnType + " " + f.Name + "() {\n")
	for _, s := range f.Body {
		out.WriteString("\t" + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// --- Statements ---

// LogStatement -> log("x = " + x);
type LogStatement struct {
	Token    token.Token // log
	Elements []LogElement
}

func (ls *LogStatement) statementNode()       {}
func (ls *LogStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LogStatement) String() string {
	parts := make([]string, 0, len(ls.Elements))
	for _, el := range ls.Elements {
		parts = append(parts, el.String())
	}
	return ls.TokenLiteral() + "(" + strings.Join(parts, " ") + ");"
}

// ExpressionStatement wraps an expression whose value is computed and discarded (e.g. `1 + 2;`)
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ""
}

// --- Expressions ---

// Identifier -> varName
type Identifier struct {
	Token token.Token // IDENT
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) String() string        { return i.Value }
func (i *Identifier) GetToken() token.Token { return i.Token }

// StringLiteral -> "hello"
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) String() string        { return `"` + sl.Value + `"` }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// IntegerLiteral -> 123
type IntegerLiteral struct {
	Token token.Token
	Value int
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Literal }
func (il *IntegerLiteral) String() string        { return strconv.Itoa(il.Value) }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// BinaryExpression -> (left + right)
type BinaryExpression struct {
	Token    token.Token // +, -, *, /
	Left     Expression
	Operator string // +, -, *, /
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if be.Left != nil {
		out.WriteString(be.Left.String())
	}
	out.WriteString(" " + be.Operator + " ")
	if be.Right != nil {
		out.WriteString(be.Right.String())
	}
	out.WriteString(")")
	return out.String()
}
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// --- Log elements ---

// TextElement is literal text copied into the format string.
type TextElement struct {
	Value string
}

func (t *TextElement) logElement()    {}
func (t *TextElement) String() string { return strconv.Quote(t.Value) }

// NumberElement is an integer known at compile time.
type NumberElement struct {
	Value int
}

func (n *NumberElement) logElement()    {}
func (n *NumberElement) String() string { return strconv.Itoa(n.Value) }

// VariableRefElement prints a declared variable; its placeholder is chosen from the symbol table.
type VariableRefElement struct {
	Token token.Token
	Name  string
}

func (v *VariableRefElement) logElement()    {}
func (v *VariableRefElement) String() string { return v.Name }

// Dump writes an indented tree view of node to w.
func Dump(w io.Writer, node any, indent string) {
	switch n := node.(type) {
	case nil:
		fmt.Fprintln(w, indent+"<nil>")

	case *Function:
		fmt.Fprintln(w, indent+"Function")
		fmt.Fprintln(w, indent+"  Name:", n.Name)
		fmt.Fprintln(w, indent+"  ReturnType:", n.ReturnType)
		for _, stmt := range n.Body {
			Dump(w, stmt, indent+"  ")
		}

	case *LogStatement:
		fmt.Fprintln(w, indent+"LogStatement")
		for _, el := range n.Elements {
			Dump(w, el, indent+"  ")
		}

	case *ExpressionStatement:
		fmt.Fprintln(w, indent+"ExpressionStatement")
		Dump(w, n.Expression, indent+"  ")

	case *Identifier:
		fmt.Fprintln(w, indent+"Identifier:", n.Value)

	case *StringLiteral:
		fmt.Fprintln(w, indent+"StringLiteral:", strconv.Quote(n.Value))

	case *IntegerLiteral:
		fmt.Fprintln(w, indent+"IntegerLiteral:", n.Value)

	case *BinaryExpression:
		fmt.Fprintln(w, indent+"BinaryExpression")
		fmt.Fprintln(w, indent+"  Operator:", n.Operator)
		fmt.Fprintln(w, indent+"  Left:")
		Dump(w, n.Left, indent+"    ")
		fmt.Fprintln(w, indent+"  Right:")
		Dump(w, n.Right, indent+"    ")

	case *TextElement:
		fmt.Fprintln(w, indent+"Text:", strconv.Quote(n.Value))

	case *NumberElement:
		fmt.Fprintln(w, indent+"Number:", n.Value)

	case *VariableRefElement:
		fmt.Fprintln(w, indent+"VariableRef:", n.Name)

	default:
		fmt.Fprintf(w, "%s<unknown node type: %T>\n", indent, n)
	}
}
