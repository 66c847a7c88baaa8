package ast

import (
	"strings"

	"github.com/funvibe/cadenza/internal/diagnostics"
	"github.com/funvibe/cadenza/internal/symbols"
	"github.com/funvibe/cadenza/internal/typesystem"
)

// Identifier is a reference to a declared name.
type Identifier struct {
	Value string

	// Symbol is the binding found by ResolveNames. It is shared with the
	// symbol table and never mutated.
	Symbol *symbols.Symbol
}

func (i *Identifier) Accept(v Visitor) { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()  {}
func (i *Identifier) String() string   { return i.Value }
func (i *Identifier) Copy() Node       { return &Identifier{Value: i.Value, Symbol: i.Symbol} }

func (i *Identifier) Equal(other Node) bool {
	o, ok := other.(*Identifier)
	return ok && o != nil && i.Value == o.Value
}

// TypeCheck succeeds with no type: a bare name does not carry its type.
// Enclosing expressions recover it from the resolved Symbol.
func (i *Identifier) TypeCheck() (typesystem.Datatype, error) {
	return nil, nil
}

func (i *Identifier) ResolveNames(r *Resolver) error {
	sym, err := r.Lookup(i, i.Value)
	if err != nil {
		return err
	}
	i.Symbol = sym
	return nil
}

// ArrayAccessExpression represents indexing, e.g. notes[i].
type ArrayAccessExpression struct {
	Array Expression
	Index Expression
}

func (ae *ArrayAccessExpression) Accept(v Visitor) { v.VisitArrayAccessExpression(ae) }
func (ae *ArrayAccessExpression) expressionNode()  {}
func (ae *ArrayAccessExpression) String() string {
	return ae.Array.String() + "[" + ae.Index.String() + "]"
}

func (ae *ArrayAccessExpression) Copy() Node {
	return &ArrayAccessExpression{Array: copyOf(ae.Array), Index: copyOf(ae.Index)}
}

func (ae *ArrayAccessExpression) Equal(other Node) bool {
	o, ok := other.(*ArrayAccessExpression)
	return ok && o != nil && ae.Array.Equal(o.Array) && ae.Index.Equal(o.Index)
}

func (ae *ArrayAccessExpression) TypeCheck() (typesystem.Datatype, error) {
	arrType, err := operandType(ae.Array)
	if err != nil {
		return nil, err
	}
	arr, ok := typesystem.AsArray(arrType)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.NotAnArray, ae, "%s has type %s", ae.Array, typeString(arrType))
	}

	idxType, err := operandType(ae.Index)
	if err != nil {
		return nil, err
	}
	if !typesystem.Is(idxType, typesystem.TInteger) {
		return nil, diagnostics.Errorf(diagnostics.TypeMismatch, ae, "index must be integer, got %s", typeString(idxType))
	}

	return cloneType(arr.Inner), nil
}

func (ae *ArrayAccessExpression) ResolveNames(r *Resolver) error {
	if err := ae.Array.ResolveNames(r); err != nil {
		return err
	}
	return ae.Index.ResolveNames(r)
}

// AssignmentExpression represents target = value.
type AssignmentExpression struct {
	Target Expression
	Value  Expression
}

func (as *AssignmentExpression) Accept(v Visitor) { v.VisitAssignmentExpression(as) }
func (as *AssignmentExpression) expressionNode()  {}
func (as *AssignmentExpression) String() string {
	return as.Target.String() + " = " + as.Value.String()
}

func (as *AssignmentExpression) Copy() Node {
	return &AssignmentExpression{Target: copyOf(as.Target), Value: copyOf(as.Value)}
}

func (as *AssignmentExpression) Equal(other Node) bool {
	o, ok := other.(*AssignmentExpression)
	return ok && o != nil && as.Target.Equal(o.Target) && as.Value.Equal(o.Value)
}

// TypeCheck requires both sides to have equal types and yields the
// value's type.
func (as *AssignmentExpression) TypeCheck() (typesystem.Datatype, error) {
	targetType, err := operandType(as.Target)
	if err != nil {
		return nil, err
	}
	valueType, err := operandType(as.Value)
	if err != nil {
		return nil, err
	}
	if targetType == nil || valueType == nil || !targetType.Equal(valueType) {
		return nil, diagnostics.Errorf(diagnostics.TypeMismatch, as,
			"cannot assign %s to %s", typeString(valueType), typeString(targetType))
	}
	return valueType, nil
}

func (as *AssignmentExpression) ResolveNames(r *Resolver) error {
	if err := as.Target.ResolveNames(r); err != nil {
		return err
	}
	return as.Value.ResolveNames(r)
}

// CallExpression represents function(arguments).
type CallExpression struct {
	Function  Expression
	Arguments *Argument // nil for no arguments
}

func (ce *CallExpression) Accept(v Visitor) { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()  {}
func (ce *CallExpression) String() string {
	args := ""
	if ce.Arguments != nil {
		args = ce.Arguments.String()
	}
	return ce.Function.String() + "(" + args + ")"
}

func (ce *CallExpression) Copy() Node {
	out := &CallExpression{Function: copyOf(ce.Function)}
	if ce.Arguments != nil {
		out.Arguments = copyOf(ce.Arguments)
	}
	return out
}

func (ce *CallExpression) Equal(other Node) bool {
	o, ok := other.(*CallExpression)
	if !ok || o == nil || !ce.Function.Equal(o.Function) {
		return false
	}
	if ce.Arguments == nil || o.Arguments == nil {
		return ce.Arguments == nil && o.Arguments == nil
	}
	return ce.Arguments.Equal(o.Arguments)
}

// TypeCheck walks the arguments in lockstep with the callee's parameters.
// Too few or too many arguments is an arity mismatch.
func (ce *CallExpression) TypeCheck() (typesystem.Datatype, error) {
	calleeType, err := operandType(ce.Function)
	if err != nil {
		return nil, err
	}
	fn, ok := typesystem.AsFunction(calleeType)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.NotAFunction, ce, "%s has type %s", ce.Function, typeString(calleeType))
	}

	arg := ce.Arguments
	for i, param := range fn.Params {
		if arg == nil {
			return nil, ce.arityError(len(fn.Params))
		}
		argType, err := operandType(arg.Value)
		if err != nil {
			return nil, err
		}
		if argType == nil || !argType.Equal(param.Type) {
			return nil, diagnostics.Errorf(diagnostics.TypeMismatch, ce,
				"argument %d (%s) must be %s, got %s", i+1, param.Name, typeString(param.Type), typeString(argType))
		}
		arg = arg.Next
	}
	if arg != nil {
		return nil, ce.arityError(len(fn.Params))
	}

	return cloneType(fn.Return), nil
}

func (ce *CallExpression) arityError(want int) error {
	return diagnostics.Errorf(diagnostics.ArityMismatch, ce,
		"%s expects %d arguments, got %d", ce.Function, want, ce.Arguments.Len())
}

func (ce *CallExpression) ResolveNames(r *Resolver) error {
	if err := ce.Function.ResolveNames(r); err != nil {
		return err
	}
	if ce.Arguments != nil {
		return ce.Arguments.ResolveNames(r)
	}
	return nil
}

// Argument is one cell of a call's argument list.
type Argument struct {
	Value Expression
	Next  *Argument // nil at the end of the list
}

// NewArguments builds an argument list from values. It returns nil for
// an empty list.
func NewArguments(values ...Expression) *Argument {
	var head *Argument
	for i := len(values) - 1; i >= 0; i-- {
		head = &Argument{Value: values[i], Next: head}
	}
	return head
}

func (a *Argument) Accept(v Visitor) { v.VisitArgument(a) }
func (a *Argument) expressionNode()  {}

// Len counts the cells from a to the end. A nil list has length 0.
func (a *Argument) Len() int {
	n := 0
	for cur := a; cur != nil; cur = cur.Next {
		n++
	}
	return n
}

// Values returns the argument expressions in order.
func (a *Argument) Values() []Expression {
	var out []Expression
	for cur := a; cur != nil; cur = cur.Next {
		out = append(out, cur.Value)
	}
	return out
}

func (a *Argument) String() string {
	values := a.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func (a *Argument) Copy() Node {
	out := &Argument{Value: copyOf(a.Value)}
	if a.Next != nil {
		out.Next = copyOf(a.Next)
	}
	return out
}

func (a *Argument) Equal(other Node) bool {
	o, ok := other.(*Argument)
	if !ok || o == nil || !a.Value.Equal(o.Value) {
		return false
	}
	if a.Next == nil || o.Next == nil {
		return a.Next == nil && o.Next == nil
	}
	return a.Next.Equal(o.Next)
}

// TypeCheck checks this value and the rest of the list, yielding the type
// of this value.
func (a *Argument) TypeCheck() (typesystem.Datatype, error) {
	t, err := operandType(a.Value)
	if err != nil {
		return nil, err
	}
	if a.Next != nil {
		if _, err := a.Next.TypeCheck(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (a *Argument) ResolveNames(r *Resolver) error {
	if err := a.Value.ResolveNames(r); err != nil {
		return err
	}
	if a.Next != nil {
		return a.Next.ResolveNames(r)
	}
	return nil
}

// SharpExpression raises a note by a semitone. The static type is
// unchanged.
type SharpExpression struct {
	Operand Expression
}

func (se *SharpExpression) Accept(v Visitor)               { v.VisitSharpExpression(se) }
func (se *SharpExpression) expressionNode()                {}
func (se *SharpExpression) String() string                 { return "sharp(" + se.Operand.String() + ")" }
func (se *SharpExpression) Copy() Node                     { return &SharpExpression{Operand: copyOf(se.Operand)} }
func (se *SharpExpression) ResolveNames(r *Resolver) error { return se.Operand.ResolveNames(r) }

func (se *SharpExpression) Equal(other Node) bool {
	o, ok := other.(*SharpExpression)
	return ok && o != nil && se.Operand.Equal(o.Operand)
}

func (se *SharpExpression) TypeCheck() (typesystem.Datatype, error) {
	return checkAccidental(se, se.Operand, "sharp")
}

// FlatExpression lowers a note by a semitone; it mirrors SharpExpression.
type FlatExpression struct {
	Operand Expression
}

func (fe *FlatExpression) Accept(v Visitor)               { v.VisitFlatExpression(fe) }
func (fe *FlatExpression) expressionNode()                {}
func (fe *FlatExpression) String() string                 { return "flat(" + fe.Operand.String() + ")" }
func (fe *FlatExpression) Copy() Node                     { return &FlatExpression{Operand: copyOf(fe.Operand)} }
func (fe *FlatExpression) ResolveNames(r *Resolver) error { return fe.Operand.ResolveNames(r) }

func (fe *FlatExpression) Equal(other Node) bool {
	o, ok := other.(*FlatExpression)
	return ok && o != nil && fe.Operand.Equal(o.Operand)
}

func (fe *FlatExpression) TypeCheck() (typesystem.Datatype, error) {
	return checkAccidental(fe, fe.Operand, "flat")
}

// checkAccidental requires operand to be a note. An operand whose type is
// unknown passes through untouched.
func checkAccidental(node Node, operand Expression, op string) (typesystem.Datatype, error) {
	t, err := operandType(operand)
	if err != nil {
		return nil, err
	}
	if t != nil && !typesystem.Is(t, typesystem.TNote) {
		return nil, diagnostics.Errorf(diagnostics.TypeMismatch, node, "%s expects a note, got %s", op, t)
	}
	return t, nil
}

// operandType type-checks e. When e is an identifier, which yields no type
// of its own, the type of the symbol it resolved to is used instead.
func operandType(e Expression) (typesystem.Datatype, error) {
	t, err := e.TypeCheck()
	if err != nil || t != nil {
		return t, err
	}
	if id, ok := e.(*Identifier); ok && id.Symbol != nil {
		return cloneType(id.Symbol.Type), nil
	}
	return nil, nil
}
