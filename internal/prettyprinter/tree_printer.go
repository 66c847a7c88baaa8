package prettyprinter

import (
	"fmt"
	"strconv"

	"github.com/xlab/treeprint"

	"github.com/funvibe/cadenza/internal/ast"
)

// Tree renders body as an indented tree, one branch per node.
func Tree(body ast.Body) string {
	p := NewTreePrinter()
	for _, stmt := range body {
		stmt.Accept(p)
	}
	return p.String()
}

var _ ast.Visitor = (*TreePrinter)(nil)

// TreePrinter builds a treeprint.Tree by visiting nodes. Composite nodes
// become branches holding their children; leaves become single nodes.
type TreePrinter struct {
	root  treeprint.Tree
	trees []treeprint.Tree
}

func NewTreePrinter() *TreePrinter {
	t := treeprint.New()
	return &TreePrinter{root: t, trees: []treeprint.Tree{t}}
}

func (p *TreePrinter) String() string { return p.root.String() }

func (p *TreePrinter) top() treeprint.Tree { return p.trees[len(p.trees)-1] }

func (p *TreePrinter) leaf(label string) { p.top().AddNode(label) }

// branch adds a labelled branch and visits children beneath it.
func (p *TreePrinter) branch(label string, children ...ast.Node) {
	p.trees = append(p.trees, p.top().AddBranch(label))
	for _, c := range children {
		c.Accept(p)
	}
	p.trees[len(p.trees)-1] = nil
	p.trees = p.trees[:len(p.trees)-1]
}

func (p *TreePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	label := fmt.Sprintf("VariableDeclaration %s: %s", n.Name, typeText(n.Type))
	if n.Initializer == nil {
		p.leaf(label)
		return
	}
	p.branch(label, n.Initializer)
}

func (p *TreePrinter) VisitTempoDeclaration(n *ast.TempoDeclaration) {
	p.leaf(fmt.Sprintf("TempoDeclaration %s = %d", n.Name, n.BPM))
}

func (p *TreePrinter) VisitKeyDeclaration(n *ast.KeyDeclaration) {
	p.leaf(fmt.Sprintf("KeyDeclaration %s = %s %s", n.Name, n.Pitch, n.Mode))
}

func (p *TreePrinter) VisitTimeSignatureDeclaration(n *ast.TimeSignatureDeclaration) {
	p.leaf(fmt.Sprintf("TimeSignatureDeclaration %s = %d/%d", n.Name, n.Numerator, n.Denominator))
}

func (p *TreePrinter) VisitNoteDeclaration(n *ast.NoteDeclaration) {
	p.leaf(fmt.Sprintf("NoteDeclaration %s = %c%d %s", n.Name, n.Pitch, n.Octave, n.Duration))
}

func (p *TreePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	p.branch(fmt.Sprintf("FunctionDeclaration %s %s", n.Name, n.Type), ast.Children(n)...)
}

func (p *TreePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.leaf("Boolean " + strconv.FormatBool(n.Value))
}

func (p *TreePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.leaf("Integer " + strconv.Itoa(n.Value))
}

func (p *TreePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.leaf("String " + strconv.Quote(n.Value))
}

func (p *TreePrinter) VisitNoteLiteral(n *ast.NoteLiteral) {
	p.leaf(fmt.Sprintf("Note %s octave=%d duration=%d", n.Pitch, n.Octave, n.Duration))
}

func (p *TreePrinter) VisitKeyLiteral(n *ast.KeyLiteral)     { p.leaf("Key " + n.Key) }
func (p *TreePrinter) VisitTempoLiteral(n *ast.TempoLiteral) { p.leaf(fmt.Sprintf("Tempo %d", n.BPM)) }

func (p *TreePrinter) VisitTimeSignatureLiteral(n *ast.TimeSignatureLiteral) {
	p.leaf(fmt.Sprintf("TimeSignature %d/%d", n.Numerator, n.Denominator))
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	if n.Symbol != nil {
		p.leaf(fmt.Sprintf("Name %s (%s %s)", n.Value, n.Symbol.Kind, typeText(n.Symbol.Type)))
		return
	}
	p.leaf("Name " + n.Value)
}

func (p *TreePrinter) VisitArrayAccessExpression(n *ast.ArrayAccessExpression) {
	p.branch("ArrayAccess", ast.Children(n)...)
}

func (p *TreePrinter) VisitAssignmentExpression(n *ast.AssignmentExpression) {
	p.branch("Assignment", ast.Children(n)...)
}

func (p *TreePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.branch("Call", ast.Children(n)...)
}

// VisitArgument flattens the argument list into one branch.
func (p *TreePrinter) VisitArgument(n *ast.Argument) {
	values := n.Values()
	children := make([]ast.Node, len(values))
	for i, v := range values {
		children[i] = v
	}
	p.branch(fmt.Sprintf("Arguments (%d)", len(values)), children...)
}

func (p *TreePrinter) VisitSharpExpression(n *ast.SharpExpression) { p.branch("Sharp", n.Operand) }
func (p *TreePrinter) VisitFlatExpression(n *ast.FlatExpression)   { p.branch("Flat", n.Operand) }

// Declaration and expression statements are transparent.
func (p *TreePrinter) VisitDeclarationStatement(n *ast.DeclarationStatement) { n.Declaration.Accept(p) }
func (p *TreePrinter) VisitExpressionStatement(n *ast.ExpressionStatement)   { n.Expression.Accept(p) }
func (p *TreePrinter) VisitPrintStatement(n *ast.PrintStatement)             { p.branch("Print", n.Value) }
