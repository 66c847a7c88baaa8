package ast

import (
	"testing"

	"github.com/funvibe/cadenza/internal/diagnostics"
	"github.com/funvibe/cadenza/internal/symbols"
	"github.com/funvibe/cadenza/internal/typesystem"
)

func ident(name string) *Identifier { return &Identifier{Value: name} }

func exprStmt(e Expression) *ExpressionStatement { return &ExpressionStatement{Expression: e} }

func declStmt(d Declaration) *DeclarationStatement { return &DeclarationStatement{Declaration: d} }

// twoArgFunc declares function f(a: integer, b: note) -> key.
func twoArgFunc() *FunctionDeclaration {
	return &FunctionDeclaration{
		Name: "f",
		Type: typesystem.TFunc{
			Return: typesystem.TKey,
			Params: typesystem.ParamList{
				{Name: "a", Type: typesystem.TInteger},
				{Name: "b", Type: typesystem.TNote},
			},
		},
	}
}

// resolve runs the resolution pass over body on a fresh table.
func resolve(t *testing.T, body Body) (*symbols.SymbolTable, error) {
	t.Helper()
	r := NewResolver(nil)
	err := body.ResolveNames(r)
	return r.Table, err
}

// mustResolve fails the test if resolution fails.
func mustResolve(t *testing.T, body Body) *symbols.SymbolTable {
	t.Helper()
	table, err := resolve(t, body)
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	return table
}

// expectCode asserts err is a diagnostic with the given code.
func expectCode(t *testing.T, err error, code diagnostics.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got none", code)
	}
	got, ok := diagnostics.CodeOf(err)
	if !ok {
		t.Fatalf("expected diagnostic %s, got %T: %v", code, err, err)
	}
	if got != code {
		t.Fatalf("expected error %s, got %s: %v", code, got, err)
	}
}

// expectType asserts a successful check that yields want.
func expectType(t *testing.T, n Node, want typesystem.Datatype) {
	t.Helper()
	got, err := n.TypeCheck()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", n, err)
	}
	if !typesystem.Equal(got, want) {
		t.Fatalf("%s: type = %v, want %v", n, got, want)
	}
}
