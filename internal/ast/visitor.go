package ast

// Visitor has one method per node variant. Accept dispatches to it; the
// visitor decides whether to descend.
type Visitor interface {
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitTempoDeclaration(n *TempoDeclaration)
	VisitKeyDeclaration(n *KeyDeclaration)
	VisitTimeSignatureDeclaration(n *TimeSignatureDeclaration)
	VisitNoteDeclaration(n *NoteDeclaration)
	VisitFunctionDeclaration(n *FunctionDeclaration)

	VisitBooleanLiteral(n *BooleanLiteral)
	VisitIntegerLiteral(n *IntegerLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitNoteLiteral(n *NoteLiteral)
	VisitKeyLiteral(n *KeyLiteral)
	VisitTempoLiteral(n *TempoLiteral)
	VisitTimeSignatureLiteral(n *TimeSignatureLiteral)
	VisitIdentifier(n *Identifier)
	VisitArrayAccessExpression(n *ArrayAccessExpression)
	VisitAssignmentExpression(n *AssignmentExpression)
	VisitCallExpression(n *CallExpression)
	VisitArgument(n *Argument)
	VisitSharpExpression(n *SharpExpression)
	VisitFlatExpression(n *FlatExpression)

	VisitDeclarationStatement(n *DeclarationStatement)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitPrintStatement(n *PrintStatement)
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *VariableDeclaration:
		if n.Initializer != nil {
			return []Node{n.Initializer}
		}
	case *FunctionDeclaration:
		out := make([]Node, len(n.Body))
		for i, stmt := range n.Body {
			out[i] = stmt
		}
		return out
	case *ArrayAccessExpression:
		return []Node{n.Array, n.Index}
	case *AssignmentExpression:
		return []Node{n.Target, n.Value}
	case *CallExpression:
		if n.Arguments != nil {
			return []Node{n.Function, n.Arguments}
		}
		return []Node{n.Function}
	case *Argument:
		if n.Next != nil {
			return []Node{n.Value, n.Next}
		}
		return []Node{n.Value}
	case *SharpExpression:
		return []Node{n.Operand}
	case *FlatExpression:
		return []Node{n.Operand}
	case *DeclarationStatement:
		return []Node{n.Declaration}
	case *ExpressionStatement:
		return []Node{n.Expression}
	case *PrintStatement:
		return []Node{n.Value}
	}
	return nil
}

// Inspect traverses the tree rooted at n depth-first, calling f for each
// node. If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
