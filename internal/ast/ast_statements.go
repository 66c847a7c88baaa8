package ast

import (
	"github.com/funvibe/cadenza/internal/typesystem"
)

// DeclarationStatement wraps a declaration and forwards every operation
// to it, including the declaration's type.
type DeclarationStatement struct {
	Declaration Declaration
}

func (ds *DeclarationStatement) Accept(v Visitor) { v.VisitDeclarationStatement(ds) }
func (ds *DeclarationStatement) statementNode()   {}
func (ds *DeclarationStatement) String() string   { return ds.Declaration.String() }

func (ds *DeclarationStatement) Copy() Node {
	return &DeclarationStatement{Declaration: copyOf(ds.Declaration)}
}

func (ds *DeclarationStatement) Equal(other Node) bool {
	o, ok := other.(*DeclarationStatement)
	return ok && o != nil && ds.Declaration.Equal(o.Declaration)
}

func (ds *DeclarationStatement) TypeCheck() (typesystem.Datatype, error) {
	return ds.Declaration.TypeCheck()
}

func (ds *DeclarationStatement) ResolveNames(r *Resolver) error {
	return ds.Declaration.ResolveNames(r)
}

// ExpressionStatement evaluates an expression for its effect. Its type is
// discarded: statements never produce a value.
type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()   {}
func (es *ExpressionStatement) String() string   { return es.Expression.String() }

func (es *ExpressionStatement) Copy() Node {
	return &ExpressionStatement{Expression: copyOf(es.Expression)}
}

func (es *ExpressionStatement) Equal(other Node) bool {
	o, ok := other.(*ExpressionStatement)
	return ok && o != nil && es.Expression.Equal(o.Expression)
}

func (es *ExpressionStatement) TypeCheck() (typesystem.Datatype, error) {
	if _, err := es.Expression.TypeCheck(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (es *ExpressionStatement) ResolveNames(r *Resolver) error {
	return es.Expression.ResolveNames(r)
}

// PrintStatement prints a value. For typing it behaves like an
// ExpressionStatement.
type PrintStatement struct {
	Value Expression
}

func (ps *PrintStatement) Accept(v Visitor) { v.VisitPrintStatement(ps) }
func (ps *PrintStatement) statementNode()   {}
func (ps *PrintStatement) String() string   { return "print " + ps.Value.String() }

func (ps *PrintStatement) Copy() Node {
	return &PrintStatement{Value: copyOf(ps.Value)}
}

func (ps *PrintStatement) Equal(other Node) bool {
	o, ok := other.(*PrintStatement)
	return ok && o != nil && ps.Value.Equal(o.Value)
}

func (ps *PrintStatement) TypeCheck() (typesystem.Datatype, error) {
	if _, err := ps.Value.TypeCheck(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (ps *PrintStatement) ResolveNames(r *Resolver) error {
	return ps.Value.ResolveNames(r)
}

// NewDeclarations wraps each declaration in a DeclarationStatement.
func NewDeclarations(decls ...Declaration) Body {
	body := make(Body, len(decls))
	for i, d := range decls {
		body[i] = &DeclarationStatement{Declaration: d}
	}
	return body
}
