package scope

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/wcc/internal/compiler/symbols"
)

// Scope is the symbol table of one function body. The language has no
// nested blocks, so there is no outer scope to fall back to.
type Scope struct {
	Name    string
	symbols map[string]symbols.Symbol
	order   []string // declaration order, for stable dumps
}

func NewScope(name string) *Scope {
	return &Scope{
		Name:    name,
		symbols: make(map[string]symbols.Symbol),
	}
}

// Add registers name with the given type.
// It returns false, leaving the table untouched, if name already exists.
func (s *Scope) Add(name string, typ symbols.DataType) bool {
	if _, exists := s.symbols[name]; exists {
		return false
	}
	s.symbols[name] = symbols.Symbol{Name: name, Type: typ}
	s.order = append(s.order, name)
	return true
}

// Lookup returns a copy of the symbol so callers cannot modify the table through it.
func (s *Scope) Lookup(name string) (*symbols.Symbol, bool) {
	sym, ok := s.symbols[name]
	if !ok {
		return nil, false
	}
	return &sym, true
}

// Names returns the declared names in declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Scope) Len() int {
	return len(s.order)
}

func (s *Scope) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scope %s {", s.Name)
	for _, name := range s.order {
		fmt.Fprintf(&b, "\n  %s %s", s.symbols[name].Type, name)
	}
	if len(s.order) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
