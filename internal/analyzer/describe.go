package analyzer

import (
	"fmt"

	"github.com/funvibe/cadenza/internal/ast"
)

// Describe returns a short human label for a top-level statement, as shown
// in the per-statement report.
func Describe(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.DeclarationStatement:
		return describeDeclaration(s.Declaration)
	case *ast.ExpressionStatement:
		return describeExpression(s.Expression)
	case *ast.PrintStatement:
		return "Print"
	}
	return "Unknown node"
}

func describeDeclaration(d ast.Declaration) string {
	switch d := d.(type) {
	case *ast.VariableDeclaration:
		return "Variable: " + d.Name
	case *ast.TempoDeclaration:
		return fmt.Sprintf("Tempo: %s (%d BPM)", d.Name, d.BPM)
	case *ast.KeyDeclaration:
		return fmt.Sprintf("Key: %s (%s %s)", d.Name, d.Pitch, d.Mode)
	case *ast.TimeSignatureDeclaration:
		return fmt.Sprintf("Time signature: %s (%d/%d)", d.Name, d.Numerator, d.Denominator)
	case *ast.NoteDeclaration:
		return fmt.Sprintf("Note: %s (%c%d %s)", d.Name, d.Pitch, d.Octave, d.Duration)
	case *ast.FunctionDeclaration:
		return "Function: " + d.Name
	}
	return "Declaration"
}

func describeExpression(e ast.Expression) string {
	switch e.(type) {
	case *ast.SharpExpression:
		return "Sharp"
	case *ast.FlatExpression:
		return "Flat"
	case *ast.CallExpression:
		return "Call"
	case *ast.AssignmentExpression:
		return "Assignment"
	}
	return "Expression"
}
