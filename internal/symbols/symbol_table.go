// Package symbols implements the scoped name table shared by the
// resolution pass.
package symbols

import (
	"sort"

	"github.com/funvibe/cadenza/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	ParameterSymbol
	TempoSymbol
	KeySymbol
	TimeSignatureSymbol
	NoteSymbol
)

var kindNames = [...]string{
	VariableSymbol:      "variable",
	FunctionSymbol:      "function",
	ParameterSymbol:     "parameter",
	TempoSymbol:         "tempo",
	KeySymbol:           "key",
	TimeSignatureSymbol: "time_signature",
	NoteSymbol:          "note",
}

func (k SymbolKind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Symbol binds a name to its type. Symbols are read-only once created and
// may be shared between the table and the nodes that reference them.
type Symbol struct {
	Name string
	Type typesystem.Datatype
	Kind SymbolKind
}

func NewSymbol(name string, t typesystem.Datatype, kind SymbolKind) *Symbol {
	return &Symbol{Name: name, Type: t, Kind: kind}
}

type Scope map[string]*Symbol

// SymbolTable is a stack of scopes. The global scope is created with the
// table and is never popped.
type SymbolTable struct {
	scopes []Scope
}

func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{}
	st.EnterScope()
	return st
}

func (s *SymbolTable) EnterScope() {
	s.scopes = append(s.scopes, make(Scope))
}

// ExitScope pops the innermost scope. It returns false and leaves the
// table unchanged when only the global scope remains.
func (s *SymbolTable) ExitScope() bool {
	if len(s.scopes) <= 1 {
		return false
	}
	s.scopes[len(s.scopes)-1] = nil
	s.scopes = s.scopes[:len(s.scopes)-1]
	return true
}

// ScopeLevel returns the number of live scopes; 1 means global only.
func (s *SymbolTable) ScopeLevel() int {
	return len(s.scopes)
}

// IsGlobalScope reports whether the innermost scope is the global one.
func (s *SymbolTable) IsGlobalScope() bool {
	return len(s.scopes) == 1
}

// Bind adds sym under name to the innermost scope. It fails if the name
// already exists in that scope; outer scopes are not consulted, so
// shadowing is allowed.
func (s *SymbolTable) Bind(name string, sym *Symbol) bool {
	if _, ok := s.LookupCurrentScope(name); ok {
		return false
	}
	s.current()[name] = sym
	return true
}

// Lookup searches from the innermost scope outward.
func (s *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if sym, ok := s.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

func (s *SymbolTable) LookupCurrentScope(name string) (*Symbol, bool) {
	sym, ok := s.current()[name]
	return sym, ok
}

// Names returns the names bound in the innermost scope, sorted.
func (s *SymbolTable) Names() []string {
	cur := s.current()
	names := make([]string, 0, len(cur))
	for name := range cur {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of names bound in the innermost scope.
func (s *SymbolTable) Len() int {
	return len(s.current())
}

func (s *SymbolTable) current() Scope {
	return s.scopes[len(s.scopes)-1]
}
