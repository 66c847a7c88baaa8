package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/typesystem"
)

// --- Code Printer (output looks like source code) ---

var _ ast.Visitor = (*CodePrinter)(nil)

// CodePrinter renders statements one per line, indenting function bodies.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Code renders body as source-like text.
func Code(body ast.Body) string {
	p := NewCodePrinter()
	p.body(body)
	return p.String()
}

func (p *CodePrinter) String() string { return p.buf.String() }

func (p *CodePrinter) write(s string) { p.buf.WriteString(s) }

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) body(b ast.Body) {
	for _, stmt := range b {
		p.writeIndent()
		if stmt != nil {
			stmt.Accept(p)
		} else {
			p.write("<???>")
		}
		p.write("\n")
	}
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	p.write("var " + n.Name + ": " + typeText(n.Type))
	if n.Initializer != nil {
		p.write(" = ")
		n.Initializer.Accept(p)
	}
}

func (p *CodePrinter) VisitTempoDeclaration(n *ast.TempoDeclaration) {
	p.write(fmt.Sprintf("Tempo %d;", n.BPM))
}

func (p *CodePrinter) VisitKeyDeclaration(n *ast.KeyDeclaration) {
	p.write(fmt.Sprintf("Tonalidad %s %s;", n.Pitch, n.Mode))
}

func (p *CodePrinter) VisitTimeSignatureDeclaration(n *ast.TimeSignatureDeclaration) {
	p.write(fmt.Sprintf("Compas %d/%d;", n.Numerator, n.Denominator))
}

func (p *CodePrinter) VisitNoteDeclaration(n *ast.NoteDeclaration) {
	p.write(fmt.Sprintf("%c%d %s", n.Pitch, n.Octave, n.Duration))
}

func (p *CodePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	p.write(fmt.Sprintf("function %s(%s) -> %s {", n.Name, n.Type.Params, typeText(n.Type.Return)))
	if len(n.Body) == 0 {
		p.write("}")
		return
	}
	p.write("\n")
	p.indent++
	p.body(n.Body)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) { p.write(strconv.FormatBool(n.Value)) }
func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) { p.write(strconv.Itoa(n.Value)) }
func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral)   { p.write(strconv.Quote(n.Value)) }
func (p *CodePrinter) VisitNoteLiteral(n *ast.NoteLiteral)       { p.write(n.String()) }
func (p *CodePrinter) VisitKeyLiteral(n *ast.KeyLiteral)         { p.write(n.String()) }
func (p *CodePrinter) VisitTempoLiteral(n *ast.TempoLiteral)     { p.write(n.String()) }
func (p *CodePrinter) VisitIdentifier(n *ast.Identifier)         { p.write(n.Value) }

func (p *CodePrinter) VisitTimeSignatureLiteral(n *ast.TimeSignatureLiteral) {
	p.write(n.String())
}

func (p *CodePrinter) VisitArrayAccessExpression(n *ast.ArrayAccessExpression) {
	n.Array.Accept(p)
	p.write("[")
	n.Index.Accept(p)
	p.write("]")
}

func (p *CodePrinter) VisitAssignmentExpression(n *ast.AssignmentExpression) {
	n.Target.Accept(p)
	p.write(" = ")
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	n.Function.Accept(p)
	p.write("(")
	if n.Arguments != nil {
		n.Arguments.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitArgument(n *ast.Argument) {
	for i, v := range n.Values() {
		if i > 0 {
			p.write(", ")
		}
		v.Accept(p)
	}
}

// Accidentals use the postfix notation of the score: C5#, F4b.
func (p *CodePrinter) VisitSharpExpression(n *ast.SharpExpression) {
	n.Operand.Accept(p)
	p.write("#")
}

func (p *CodePrinter) VisitFlatExpression(n *ast.FlatExpression) {
	n.Operand.Accept(p)
	p.write("b")
}

func (p *CodePrinter) VisitDeclarationStatement(n *ast.DeclarationStatement) { n.Declaration.Accept(p) }
func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement)   { n.Expression.Accept(p) }

// A printed string literal is written bare, the way comments appear in a
// score; anything else is wrapped in print.
func (p *CodePrinter) VisitPrintStatement(n *ast.PrintStatement) {
	if s, ok := n.Value.(*ast.StringLiteral); ok {
		p.write(s.Value)
		return
	}
	p.write("print ")
	n.Value.Accept(p)
}

func typeText(t typesystem.Datatype) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}
