package ast

import (
	"strings"

	"github.com/funvibe/cadenza/internal/typesystem"
)

// Node is the base interface for all AST nodes.
//
// Nodes exclusively own their children: Copy is always deep and nothing
// is shared between an original and its copy except read-only symbols.
// There is no destroy operation; dropping the last reference releases the
// whole subtree.
type Node interface {
	String() string
	Accept(v Visitor)

	// Copy returns a fully independent deep clone of the same variant.
	Copy() Node

	// Equal is structural: false for a different variant, otherwise a
	// recursive field-by-field comparison.
	Equal(other Node) bool

	// TypeCheck validates the node. On success it returns the node's type,
	// or nil when the node has no value. On failure it returns a
	// *diagnostics.DiagnosticError and no type.
	TypeCheck() (typesystem.Datatype, error)

	// ResolveNames binds declared names and looks up referenced ones.
	ResolveNames(r *Resolver) error
}

// Declaration is a Node that binds a name.
type Declaration interface {
	Node
	declarationNode()
	DeclName() string
	DeclType() typesystem.Datatype
}

// Expression is a Node that computes a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node that can appear in a Body.
type Statement interface {
	Node
	statementNode()
}

// Body is an ordered sequence of statements. Order is declaration order
// and is significant.
type Body []Statement

func (b Body) Copy() Body {
	if b == nil {
		return nil
	}
	out := make(Body, len(b))
	for i, stmt := range b {
		out[i] = copyOf(stmt)
	}
	return out
}

func (b Body) Equal(other Body) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if !b[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// TypeCheck checks every statement in order, discarding their types, and
// stops at the first failure.
func (b Body) TypeCheck() error {
	for _, stmt := range b {
		if _, err := stmt.TypeCheck(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveNames resolves every statement in order and stops at the first
// failure.
func (b Body) ResolveNames(r *Resolver) error {
	for _, stmt := range b {
		if err := stmt.ResolveNames(r); err != nil {
			return err
		}
	}
	return nil
}

func (b Body) String() string {
	parts := make([]string, len(b))
	for i, stmt := range b {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, "; ")
}

// copyOf deep-copies n keeping its static type. Copy always returns the
// receiver's own variant, so the assertion cannot fail.
func copyOf[T Node](n T) T {
	return n.Copy().(T)
}

