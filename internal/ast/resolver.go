package ast

import (
	"github.com/funvibe/cadenza/internal/diagnostics"
	"github.com/funvibe/cadenza/internal/symbols"
	"github.com/funvibe/cadenza/internal/typesystem"
)

// BindObserver is notified after every successful binding. level is the
// scope level the symbol was bound at (1 is global).
type BindObserver func(sym *symbols.Symbol, level int)

// Resolver is the traversal context of one resolution pass. It carries the
// symbol table and the per-pass bookkeeping; nothing survives between
// passes unless the caller reuses the Resolver.
type Resolver struct {
	Table *symbols.SymbolTable

	resolving map[*FunctionDeclaration]bool
	observers []BindObserver
}

// NewResolver creates a resolution context over table. A nil table is
// replaced by a fresh one holding only the global scope.
func NewResolver(table *symbols.SymbolTable) *Resolver {
	if table == nil {
		table = symbols.NewSymbolTable()
	}
	return &Resolver{
		Table:     table,
		resolving: make(map[*FunctionDeclaration]bool),
	}
}

// OnBind registers an observer for successful bindings.
func (r *Resolver) OnBind(fn BindObserver) {
	r.observers = append(r.observers, fn)
}

// Define binds name in the current scope on behalf of node.
func (r *Resolver) Define(node Node, name string, t typesystem.Datatype, kind symbols.SymbolKind) error {
	sym := symbols.NewSymbol(name, t, kind)
	if !r.Table.Bind(name, sym) {
		return diagnostics.Errorf(diagnostics.Redefinition, node, "%q is already defined in this scope", name)
	}
	level := r.Table.ScopeLevel()
	for _, fn := range r.observers {
		fn(sym, level)
	}
	return nil
}

// Lookup finds the nearest visible binding of name.
func (r *Resolver) Lookup(node Node, name string) (*symbols.Symbol, error) {
	sym, ok := r.Table.Lookup(name)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.UnresolvedName, node, "%q is not defined", name)
	}
	return sym, nil
}

// InScope runs fn inside a fresh scope. The scope is exited exactly once,
// whatever fn returns.
func (r *Resolver) InScope(fn func() error) error {
	r.Table.EnterScope()
	defer r.Table.ExitScope()
	return fn()
}

// ResolveBody resolves body in order, stopping at the first failure.
func (r *Resolver) ResolveBody(body Body) error {
	return body.ResolveNames(r)
}

// enter marks fd as being resolved. It returns false if fd is already
// being resolved further up the call stack.
func (r *Resolver) enter(fd *FunctionDeclaration) bool {
	if r.resolving[fd] {
		return false
	}
	r.resolving[fd] = true
	return true
}

func (r *Resolver) leave(fd *FunctionDeclaration) {
	delete(r.resolving, fd)
}
