package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cadenza/internal/analyzer"
	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/pipeline"
	"github.com/funvibe/cadenza/internal/typesystem"
)

// expectLoadError asserts that src fails to decode at line.
func expectLoadError(t *testing.T, src string, line int) *Error {
	t.Helper()
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatalf("expected a load error, got none\ninput:\n%s", src)
	}
	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *loader.Error, got %T: %v", err, err)
	}
	if le.Line != line {
		t.Fatalf("error at line %d, want %d: %v", le.Line, line, le)
	}
	return le
}

func TestLoadComposition(t *testing.T) {
	body, err := Load(filepath.Join("testdata", "composition.yaml"))
	require.NoError(t, err)
	require.Len(t, body, 17)

	assert.True(t, body[0].Equal(&ast.DeclarationStatement{Declaration: &ast.TempoDeclaration{Name: "tempo", BPM: 120}}))
	assert.True(t, body[4].Equal(&ast.DeclarationStatement{Declaration: &ast.NoteDeclaration{Name: "nota1", Pitch: 'G', Octave: 4, Duration: "Corchea"}}))
	assert.True(t, body[6].Equal(&ast.ExpressionStatement{Expression: &ast.SharpExpression{Operand: &ast.Identifier{Value: "nota8"}}}))

	fn := body[9].(*ast.DeclarationStatement).Declaration.(*ast.FunctionDeclaration)
	assert.Equal(t, "function(raiz: note, octava: integer) -> key", fn.Type.String())
	assert.Len(t, fn.Body, 2)

	call := body[10].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	assert.Equal(t, 2, call.Arguments.Len())

	assert.Equal(t, `print time(3/4)`, body[15].String())

	rep := analyzer.New(nil, analyzer.Options{}).Analyze(body)
	require.NoError(t, rep.Err())
	assert.True(t, rep.Passed())
}

func TestVariableTypes(t *testing.T) {
	body, err := Parse([]byte(`
body:
  - variable: {name: xs, type: "array<array<note>>"}
  - variable: {name: f, type: "function(a: integer) -> void"}
`))
	require.NoError(t, err)
	xs := body[0].(*ast.DeclarationStatement).Declaration.(*ast.VariableDeclaration)
	assert.True(t, typesystem.TArray{Inner: typesystem.TArray{Inner: typesystem.TNote}}.Equal(xs.Type))
	f := body[1].(*ast.DeclarationStatement).Declaration.(*ast.VariableDeclaration)
	_, ok := typesystem.AsFunction(f.Type)
	assert.True(t, ok)
}

func TestEmptyBody(t *testing.T) {
	body, err := Parse([]byte("body:\n"))
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unknown statement", "body:\n  - loop: {}\n", 2},
		{"unknown expression", "body:\n  - expr: {chord: x}\n", 2},
		{"missing field", "body:\n  - tempo:\n      name: t\n", 3},
		{"unknown field", "body:\n  - tempo: {name: t, bpm: 1, swing: 2}\n", 2},
		{"not an integer", "body:\n  - tempo:\n      name: t\n      bpm: fast\n", 4},
		{"pitch too long", "body:\n  - note: {name: n, pitch: Do, octave: 4, duration: Negra}\n", 2},
		{"bad type", "body:\n  - variable:\n      name: x\n      type: array<chord>\n", 4},
		{"two keys", "body:\n  - tempo: {name: t, bpm: 1}\n    key: {name: k, pitch: Do, mode: M}\n", 2},
		{"body not a sequence", "body: 3\n", 1},
		{"bad fraction", "body:\n  - print: {time_signature: seven}\n", 2},
		{"missing body", "tempo: 3\n", 1},
		{"bad call args", "body:\n  - expr:\n      call: {function: {name: f}, args: 3}\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectLoadError(t, tt.src, tt.line)
		})
	}
}

func TestLoadRejectsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piece.txt")
	require.NoError(t, os.WriteFile(path, []byte("body:\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported extension")
}

func TestEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestProcessor(t *testing.T) {
	pc := pipeline.NewPipelineContext(filepath.Join("testdata", "composition.yaml"), nil)
	pc = pipeline.New(&LoaderProcessor{}, &analyzer.SemanticAnalyzerProcessor{}).Run(context.Background(), pc)
	require.Empty(t, pc.Errors)
	assert.Len(t, pc.Body, 17)
	assert.True(t, pc.Report.Passed())

	bad := pipeline.NewPipelineContext("inline.yaml", []byte("body: 3\n"))
	bad = pipeline.New(&LoaderProcessor{}, &analyzer.SemanticAnalyzerProcessor{}).Run(context.Background(), bad)
	require.Len(t, bad.Errors, 1)
	assert.Nil(t, bad.Body)
	assert.Nil(t, bad.Report, "analysis is skipped without a body")
	assert.Contains(t, bad.Errors[0].Error(), "inline.yaml: line 1")
}
