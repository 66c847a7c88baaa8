package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTypes() []Datatype {
	return []Datatype{
		TVoid, TBoolean, TCharacter, TInteger, TString,
		TNote, TTempo, TKey, TTimeSignature,
		TArray{Inner: TNote},
		TArray{Inner: TArray{Inner: TInteger}},
		TFunc{Return: TVoid},
		TFunc{
			Return: TArray{Inner: TNote},
			Params: ParamList{{Name: "x", Type: TInteger}, {Name: "n", Type: TNote}},
		},
	}
}

func TestCloneIsEqual(t *testing.T) {
	for _, typ := range sampleTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			assert.True(t, typ.Clone().Equal(typ))
			assert.True(t, typ.Equal(typ.Clone()))
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := TFunc{
		Return: TVoid,
		Params: ParamList{{Name: "x", Type: TInteger}},
	}
	clone := orig.Clone().(TFunc)
	clone.Params[0].Type = TString

	assert.Equal(t, TInteger, orig.Params[0].Type)
	assert.False(t, orig.Equal(clone))
}

func TestBasicEquality(t *testing.T) {
	types := sampleTypes()
	for i, a := range types {
		for j, b := range types {
			if i == j {
				continue
			}
			if a.Equal(b) {
				t.Errorf("%s should not equal %s", a, b)
			}
		}
	}
}

func TestFunctionEqualityComparesParamNames(t *testing.T) {
	f1 := TFunc{Return: TVoid, Params: ParamList{{Name: "x", Type: TInteger}}}
	f2 := TFunc{Return: TVoid, Params: ParamList{{Name: "y", Type: TInteger}}}
	f3 := TFunc{Return: TVoid, Params: ParamList{{Name: "x", Type: TInteger}, {Name: "y", Type: TInteger}}}
	f4 := TFunc{Return: TInteger, Params: ParamList{{Name: "x", Type: TInteger}}}

	assert.False(t, f1.Equal(f2), "parameter names differ")
	assert.False(t, f1.Equal(f3), "arity differs")
	assert.False(t, f1.Equal(f4), "return types differ")
	assert.True(t, f1.Equal(TFunc{Return: TVoid, Params: ParamList{{Name: "x", Type: TInteger}}}))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		typ  Datatype
		want string
	}{
		{TNote, "note"},
		{TTimeSignature, "time_signature"},
		{TArray{Inner: TNote}, "array<note>"},
		{TFunc{Return: TVoid, Params: ParamList{{Name: "x", Type: TInteger}}}, "function(x: integer) -> void"},
		{TFunc{Return: TKey}, "function() -> key"},
		{
			TFunc{Return: TArray{Inner: TNote}, Params: ParamList{{Name: "a", Type: TTempo}, {Name: "b", Type: TKey}}},
			"function(a: tempo, b: key) -> array<note>",
		},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCapabilities(t *testing.T) {
	arr, ok := AsArray(TArray{Inner: TInteger})
	require.True(t, ok)
	assert.Equal(t, TInteger, arr.Inner)

	_, ok = AsArray(TInteger)
	assert.False(t, ok)

	fn, ok := AsFunction(TFunc{Return: TNote})
	require.True(t, ok)
	assert.False(t, fn.IsVoid())
	assert.True(t, TFunc{Return: TVoid}.IsVoid())

	_, ok = AsFunction(nil)
	assert.False(t, ok)

	assert.True(t, Is(TNote, TNote))
	assert.False(t, Is(nil, TNote))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(TNote, nil))
}
