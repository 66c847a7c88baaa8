package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cadenza/internal/diagnostics"
	"github.com/funvibe/cadenza/internal/typesystem"
)

func TestLiteralTypes(t *testing.T) {
	tests := []struct {
		node Expression
		want typesystem.Datatype
	}{
		{&BooleanLiteral{Value: false}, typesystem.TBoolean},
		{&IntegerLiteral{Value: -3}, typesystem.TInteger},
		{&StringLiteral{Value: ""}, typesystem.TString},
		{&NoteLiteral{Pitch: "C", Octave: 4, Duration: 4}, typesystem.TNote},
		{&NoteLiteral{Pitch: "F#", Octave: 0, Duration: 1}, typesystem.TNote},
		{&NoteLiteral{Pitch: "Bb", Octave: 8, Duration: 16}, typesystem.TNote},
		{&KeyLiteral{Key: "C"}, typesystem.TKey},
		{&KeyLiteral{Key: "Dm"}, typesystem.TKey},
		{&KeyLiteral{Key: "F#"}, typesystem.TKey},
		{&KeyLiteral{Key: "Eb"}, typesystem.TKey},
		{&TempoLiteral{BPM: 20}, typesystem.TTempo},
		{&TempoLiteral{BPM: 400}, typesystem.TTempo},
		{&TimeSignatureLiteral{Numerator: 1, Denominator: 2}, typesystem.TTimeSignature},
		{&TimeSignatureLiteral{Numerator: 16, Denominator: 16}, typesystem.TTimeSignature},
	}
	for _, tt := range tests {
		t.Run(tt.node.String(), func(t *testing.T) {
			expectType(t, tt.node, tt.want)
		})
	}
}

func TestLiteralDomainViolations(t *testing.T) {
	tests := []Expression{
		&NoteLiteral{Pitch: "", Octave: 4, Duration: 4},
		&NoteLiteral{Pitch: "H", Octave: 4, Duration: 4},
		&NoteLiteral{Pitch: "Cx", Octave: 4, Duration: 4},
		&NoteLiteral{Pitch: "C", Octave: 9, Duration: 4},
		&NoteLiteral{Pitch: "C", Octave: -1, Duration: 4},
		&NoteLiteral{Pitch: "C", Octave: 4, Duration: 0},
		&KeyLiteral{Key: ""},
		&KeyLiteral{Key: "X"},
		&KeyLiteral{Key: "Cz"},
		&TempoLiteral{BPM: 19},
		&TempoLiteral{BPM: 401},
		&TimeSignatureLiteral{Numerator: 0, Denominator: 4},
		&TimeSignatureLiteral{Numerator: 17, Denominator: 4},
		&TimeSignatureLiteral{Numerator: 3, Denominator: 3},
		&TimeSignatureLiteral{Numerator: 3, Denominator: 32},
	}
	for _, node := range tests {
		t.Run(node.String(), func(t *testing.T) {
			typ, err := node.TypeCheck()
			expectCode(t, err, diagnostics.DomainConstraint)
			assert.Nil(t, typ)
		})
	}
}

func TestIdentifierResolution(t *testing.T) {
	id := ident("nota8")
	_, err := resolve(t, Body{exprStmt(id)})
	expectCode(t, err, diagnostics.UnresolvedName)
	assert.Nil(t, id.Symbol)

	body := Body{
		declStmt(&NoteDeclaration{Name: "nota8", Pitch: 'D', Octave: 5, Duration: "Negra"}),
		exprStmt(id),
	}
	mustResolve(t, body)
	require.NotNil(t, id.Symbol)
	assert.Equal(t, "nota8", id.Symbol.Name)

	typ, err := id.TypeCheck()
	assert.NoError(t, err)
	assert.Nil(t, typ, "a bare identifier has no type of its own")
}

func TestSharpAndFlat(t *testing.T) {
	body := Body{
		declStmt(&NoteDeclaration{Name: "nota8", Pitch: 'F', Octave: 4, Duration: "Negra"}),
		declStmt(&TempoDeclaration{Name: "tempo", BPM: 120}),
	}
	table := mustResolve(t, body)
	r := NewResolver(table)

	for _, wrap := range []func(Expression) Expression{
		func(e Expression) Expression { return &SharpExpression{Operand: e} },
		func(e Expression) Expression { return &FlatExpression{Operand: e} },
	} {
		onNote := wrap(ident("nota8"))
		require.NoError(t, onNote.ResolveNames(r))
		expectType(t, onNote, typesystem.TNote)

		onTempo := wrap(ident("tempo"))
		require.NoError(t, onTempo.ResolveNames(r))
		_, err := onTempo.TypeCheck()
		expectCode(t, err, diagnostics.TypeMismatch)

		expectType(t, wrap(&NoteLiteral{Pitch: "A", Octave: 3, Duration: 2}), typesystem.TNote)

		_, err = wrap(&IntegerLiteral{Value: 1}).TypeCheck()
		expectCode(t, err, diagnostics.TypeMismatch)

		// Nested accidentals keep the note type.
		nested := wrap(wrap(ident("nota8")))
		require.NoError(t, nested.ResolveNames(r))
		expectType(t, nested, typesystem.TNote)

		// An unresolved identifier has no type and passes.
		typ, err := wrap(ident("unbound")).TypeCheck()
		assert.NoError(t, err)
		assert.Nil(t, typ)
	}
}

func TestCallArity(t *testing.T) {
	note := &NoteLiteral{Pitch: "C", Octave: 4, Duration: 4}
	body := Body{declStmt(twoArgFunc())}
	table := mustResolve(t, body)
	r := NewResolver(table)

	tests := []struct {
		name string
		args *Argument
		code diagnostics.ErrorCode
	}{
		{"no arguments", nil, diagnostics.ArityMismatch},
		{"one argument", NewArguments(&IntegerLiteral{Value: 1}), diagnostics.ArityMismatch},
		{"three arguments", NewArguments(&IntegerLiteral{Value: 1}, note, note), diagnostics.ArityMismatch},
		{"swapped arguments", NewArguments(note, &IntegerLiteral{Value: 1}), diagnostics.TypeMismatch},
		{"function passed as note", NewArguments(&IntegerLiteral{Value: 1}, ident("f")), diagnostics.TypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := &CallExpression{Function: ident("f"), Arguments: tt.args}
			require.NoError(t, call.ResolveNames(r))
			_, err := call.TypeCheck()
			expectCode(t, err, tt.code)
		})
	}

	call := &CallExpression{Function: ident("f"), Arguments: NewArguments(&IntegerLiteral{Value: 1}, note)}
	require.NoError(t, call.ResolveNames(r))
	expectType(t, call, typesystem.TKey)
}

func TestCallArgumentFromParameter(t *testing.T) {
	inner := &FunctionDeclaration{
		Name: "g",
		Type: typesystem.TFunc{Return: typesystem.TVoid, Params: typesystem.ParamList{{Name: "n", Type: typesystem.TNote}}},
	}
	outer := &FunctionDeclaration{
		Name: "h",
		Type: typesystem.TFunc{Return: typesystem.TVoid, Params: typesystem.ParamList{{Name: "m", Type: typesystem.TNote}}},
		Body: Body{exprStmt(&CallExpression{Function: ident("g"), Arguments: NewArguments(&SharpExpression{Operand: ident("m")})})},
	}
	body := Body{declStmt(inner), declStmt(outer)}
	mustResolve(t, body)
	assert.NoError(t, body.TypeCheck())
}

func TestCallNonFunction(t *testing.T) {
	body := NewDeclarations(&TempoDeclaration{Name: "tempo", BPM: 120})
	table := mustResolve(t, body)

	call := &CallExpression{Function: ident("tempo")}
	require.NoError(t, call.ResolveNames(NewResolver(table)))
	_, err := call.TypeCheck()
	expectCode(t, err, diagnostics.NotAFunction)

	_, err = (&CallExpression{Function: &IntegerLiteral{Value: 3}}).TypeCheck()
	expectCode(t, err, diagnostics.NotAFunction)
}

func TestCallResolvesArguments(t *testing.T) {
	table := mustResolve(t, Body{declStmt(twoArgFunc())})
	call := &CallExpression{Function: ident("f"), Arguments: NewArguments(&IntegerLiteral{Value: 1}, ident("ghost"))}
	err := call.ResolveNames(NewResolver(table))
	expectCode(t, err, diagnostics.UnresolvedName)
}

func TestArrayAccess(t *testing.T) {
	body := NewDeclarations(
		&VariableDeclaration{Name: "notes", Type: typesystem.TArray{Inner: typesystem.TNote}},
		&VariableDeclaration{Name: "grid", Type: typesystem.TArray{Inner: typesystem.TArray{Inner: typesystem.TInteger}}},
		&VariableDeclaration{Name: "i", Type: typesystem.TInteger},
		&TempoDeclaration{Name: "tempo", BPM: 120},
	)
	table := mustResolve(t, body)
	r := NewResolver(table)

	check := func(e Expression) (typesystem.Datatype, error) {
		t.Helper()
		require.NoError(t, e.ResolveNames(r))
		return e.TypeCheck()
	}

	typ, err := check(&ArrayAccessExpression{Array: ident("notes"), Index: ident("i")})
	require.NoError(t, err)
	assert.True(t, typesystem.TNote.Equal(typ))

	typ, err = check(&ArrayAccessExpression{
		Array: &ArrayAccessExpression{Array: ident("grid"), Index: &IntegerLiteral{Value: 0}},
		Index: &IntegerLiteral{Value: 1},
	})
	require.NoError(t, err)
	assert.True(t, typesystem.TInteger.Equal(typ))

	_, err = check(&ArrayAccessExpression{Array: ident("tempo"), Index: &IntegerLiteral{Value: 0}})
	expectCode(t, err, diagnostics.NotAnArray)

	_, err = check(&ArrayAccessExpression{Array: ident("notes"), Index: &StringLiteral{Value: "0"}})
	expectCode(t, err, diagnostics.TypeMismatch)

	_, err = check(&ArrayAccessExpression{Array: ident("notes"), Index: ident("tempo")})
	expectCode(t, err, diagnostics.TypeMismatch)
}

func TestAssignment(t *testing.T) {
	body := NewDeclarations(
		&VariableDeclaration{Name: "x", Type: typesystem.TInteger},
		&VariableDeclaration{Name: "y", Type: typesystem.TInteger},
		&VariableDeclaration{Name: "s", Type: typesystem.TString},
	)
	table := mustResolve(t, body)
	r := NewResolver(table)

	ok := &AssignmentExpression{Target: ident("x"), Value: ident("y")}
	require.NoError(t, ok.ResolveNames(r))
	expectType(t, ok, typesystem.TInteger)

	lit := &AssignmentExpression{Target: ident("x"), Value: &IntegerLiteral{Value: 7}}
	require.NoError(t, lit.ResolveNames(r))
	expectType(t, lit, typesystem.TInteger)

	bad := &AssignmentExpression{Target: ident("x"), Value: ident("s")}
	require.NoError(t, bad.ResolveNames(r))
	_, err := bad.TypeCheck()
	expectCode(t, err, diagnostics.TypeMismatch)

	// Without resolution neither side has a type.
	_, err = (&AssignmentExpression{Target: ident("x"), Value: ident("y")}).TypeCheck()
	expectCode(t, err, diagnostics.TypeMismatch)

	undefined := &AssignmentExpression{Target: ident("z"), Value: &IntegerLiteral{Value: 1}}
	expectCode(t, undefined.ResolveNames(r), diagnostics.UnresolvedName)
}

func TestStatementsDiscardTypes(t *testing.T) {
	for _, s := range []Statement{
		exprStmt(&IntegerLiteral{Value: 1}),
		&PrintStatement{Value: &StringLiteral{Value: "x"}},
	} {
		typ, err := s.TypeCheck()
		assert.NoError(t, err)
		assert.Nil(t, typ)
	}
	expectType(t, declStmt(&TempoDeclaration{Name: "t", BPM: 60}), typesystem.TTempo)

	_, err := (&PrintStatement{Value: &TempoLiteral{BPM: 1}}).TypeCheck()
	expectCode(t, err, diagnostics.DomainConstraint)
}

func TestInspectVisitsInOrder(t *testing.T) {
	call := &CallExpression{Function: ident("f"), Arguments: NewArguments(ident("a"), &SharpExpression{Operand: ident("b")})}
	var names []string
	Inspect(exprStmt(call), func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Value)
		}
		return true
	})
	assert.Equal(t, []string{"f", "a", "b"}, names)

	count := 0
	Inspect(exprStmt(call), func(n Node) bool {
		count++
		_, isCall := n.(*CallExpression)
		return !isCall
	})
	assert.Equal(t, 2, count, "children of a pruned node are skipped")
}
