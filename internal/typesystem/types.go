package typesystem

import (
	"strings"
)

// Datatype is the interface for all types in the language.
// Datatypes are values: Clone returns an independent copy and Equal
// compares structure, never identity.
type Datatype interface {
	String() string
	Clone() Datatype
	Equal(other Datatype) bool
}

// TBasic is a payload-free type. Two TBasic values are equal iff they
// name the same variant.
type TBasic int

const (
	TVoid TBasic = iota
	TBoolean
	TCharacter
	TInteger
	TString
	TNote
	TTempo
	TKey
	TTimeSignature
)

var basicNames = [...]string{
	TVoid:          "void",
	TBoolean:       "boolean",
	TCharacter:     "character",
	TInteger:       "integer",
	TString:        "string",
	TNote:          "note",
	TTempo:         "tempo",
	TKey:           "key",
	TTimeSignature: "time_signature",
}

func (t TBasic) String() string {
	if int(t) < 0 || int(t) >= len(basicNames) {
		return "unknown"
	}
	return basicNames[t]
}

func (t TBasic) Clone() Datatype { return t }

func (t TBasic) Equal(other Datatype) bool {
	o, ok := other.(TBasic)
	return ok && o == t
}

// TArray represents array<Inner>.
type TArray struct {
	Inner Datatype
}

func (t TArray) String() string {
	return "array<" + describe(t.Inner) + ">"
}

func (t TArray) Clone() Datatype {
	return TArray{Inner: cloneOrNil(t.Inner)}
}

func (t TArray) Equal(other Datatype) bool {
	o, ok := other.(TArray)
	if !ok {
		return false
	}
	return Equal(t.Inner, o.Inner)
}

// TFunc represents function(params) -> Return.
type TFunc struct {
	Return Datatype
	Params ParamList
}

func (t TFunc) String() string {
	var sb strings.Builder
	sb.WriteString("function(")
	sb.WriteString(t.Params.String())
	sb.WriteString(") -> ")
	sb.WriteString(describe(t.Return))
	return sb.String()
}

func (t TFunc) Clone() Datatype {
	return TFunc{Return: cloneOrNil(t.Return), Params: t.Params.Clone()}
}

// Equal compares return types and parameter lists. Parameter names take
// part in the comparison, not only their types.
func (t TFunc) Equal(other Datatype) bool {
	o, ok := other.(TFunc)
	if !ok {
		return false
	}
	return Equal(t.Return, o.Return) && t.Params.Equal(o.Params)
}

// IsVoid reports whether the function returns nothing.
func (t TFunc) IsVoid() bool {
	return t.Return == nil || t.Return.Equal(TVoid)
}

// Equal is a nil-safe structural comparison. Two nil datatypes are equal.
func Equal(a, b Datatype) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// AsArray returns t as an array type if it is one.
func AsArray(t Datatype) (TArray, bool) {
	arr, ok := t.(TArray)
	return arr, ok
}

// AsFunction returns t as a function type if it is one.
func AsFunction(t Datatype) (TFunc, bool) {
	fn, ok := t.(TFunc)
	return fn, ok
}

// Is reports whether t is the basic variant b.
func Is(t Datatype, b TBasic) bool {
	return t != nil && t.Equal(b)
}

func cloneOrNil(t Datatype) Datatype {
	if t == nil {
		return nil
	}
	return t.Clone()
}

func describe(t Datatype) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}
