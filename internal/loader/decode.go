package loader

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/typesystem"
)

func decodeStatement(n *yaml.Node) (ast.Statement, error) {
	kind, val, err := single(n, "statement")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "expr":
		e, err := decodeExpression(val)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: e}, nil
	case "print":
		e, err := decodeExpression(val)
		if err != nil {
			return nil, err
		}
		return &ast.PrintStatement{Value: e}, nil
	}

	d, err := decodeDeclaration(kind, val)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errorAt(n.Content[0], "unknown statement %q", kind)
	}
	return &ast.DeclarationStatement{Declaration: d}, nil
}

// decodeDeclaration returns nil, nil when kind is not a declaration.
func decodeDeclaration(kind string, n *yaml.Node) (ast.Declaration, error) {
	var (
		m   *fields
		err error
		d   ast.Declaration
	)
	switch kind {
	case "tempo":
		if m, err = readMapping(n, "name", "bpm"); err != nil {
			return nil, err
		}
		d = &ast.TempoDeclaration{Name: m.str("name"), BPM: m.int("bpm")}

	case "key":
		if m, err = readMapping(n, "name", "pitch", "mode"); err != nil {
			return nil, err
		}
		d = &ast.KeyDeclaration{Name: m.str("name"), Pitch: m.str("pitch"), Mode: m.str("mode")}

	case "time_signature":
		if m, err = readMapping(n, "name", "numerator", "denominator"); err != nil {
			return nil, err
		}
		d = &ast.TimeSignatureDeclaration{Name: m.str("name"), Numerator: m.int("numerator"), Denominator: m.int("denominator")}

	case "note":
		if m, err = readMapping(n, "name", "pitch", "octave", "duration"); err != nil {
			return nil, err
		}
		nd := &ast.NoteDeclaration{Name: m.str("name"), Octave: m.int("octave"), Duration: m.str("duration")}
		if pitch := m.node("pitch"); pitch != nil {
			s := m.scalarString(pitch)
			if m.err == nil && utf8.RuneCountInString(s) != 1 {
				m.err = errorAt(pitch, "note pitch must be a single letter, got %q", s)
			}
			nd.Pitch, _ = utf8.DecodeRuneInString(s)
		}
		d = nd

	case "variable":
		if m, err = readMapping(n, "name", "type", "init"); err != nil {
			return nil, err
		}
		vd := &ast.VariableDeclaration{Name: m.str("name")}
		if typ := m.node("type"); typ != nil {
			vd.Type, err = decodeType(typ)
			if err != nil {
				return nil, err
			}
		}
		if init := m.optional("init"); init != nil {
			if vd.Initializer, err = decodeExpression(init); err != nil {
				return nil, err
			}
		}
		d = vd

	case "function":
		return decodeFunction(n)

	default:
		return nil, nil
	}

	if m.err != nil {
		return nil, m.err
	}
	return d, nil
}

// decodeFunction reads
//
//	function:
//	  name: f
//	  params: [{name: a, type: integer}]
//	  returns: void
//	  body: [...]
func decodeFunction(n *yaml.Node) (ast.Declaration, error) {
	m, err := readMapping(n, "name", "params", "returns", "body")
	if err != nil {
		return nil, err
	}
	fd := &ast.FunctionDeclaration{Name: m.str("name"), Type: typesystem.TFunc{Return: typesystem.TVoid}}
	if m.err != nil {
		return nil, m.err
	}

	if params := m.optional("params"); params != nil {
		if params.Kind != yaml.SequenceNode {
			return nil, errorAt(params, "params must be a sequence")
		}
		for _, p := range params.Content {
			pm, err := readMapping(p, "name", "type")
			if err != nil {
				return nil, err
			}
			param := typesystem.Param{Name: pm.str("name")}
			typ := pm.node("type")
			if pm.err != nil {
				return nil, pm.err
			}
			if param.Type, err = decodeType(typ); err != nil {
				return nil, err
			}
			fd.Type.Params = append(fd.Type.Params, param)
		}
	}
	if ret := m.optional("returns"); ret != nil {
		if fd.Type.Return, err = decodeType(ret); err != nil {
			return nil, err
		}
	}
	if body := m.optional("body"); body != nil {
		if fd.Body, err = decodeBody(body); err != nil {
			return nil, err
		}
	}
	return fd, nil
}

func decodeType(n *yaml.Node) (typesystem.Datatype, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, errorAt(n, "type must be written as text, e.g. array<note>")
	}
	t, err := typesystem.Parse(n.Value)
	if err != nil {
		return nil, errorAt(n, "%v", err)
	}
	return t, nil
}

func decodeExpression(n *yaml.Node) (ast.Expression, error) {
	kind, val, err := single(n, "expression")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "bool":
		var v bool
		if val.Kind != yaml.ScalarNode || val.Decode(&v) != nil {
			return nil, errorAt(val, "bool must be true or false")
		}
		return &ast.BooleanLiteral{Value: v}, nil

	case "int":
		v, err := scalarInt(val)
		if err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral{Value: v}, nil

	case "str":
		if val.Kind != yaml.ScalarNode {
			return nil, errorAt(val, "str must be a scalar")
		}
		return &ast.StringLiteral{Value: val.Value}, nil

	case "name":
		if val.Kind != yaml.ScalarNode || val.Value == "" {
			return nil, errorAt(val, "name must be a non-empty identifier")
		}
		return &ast.Identifier{Value: val.Value}, nil

	case "note":
		m, err := readMapping(val, "pitch", "octave", "duration")
		if err != nil {
			return nil, err
		}
		nl := &ast.NoteLiteral{Pitch: m.str("pitch"), Octave: m.int("octave"), Duration: m.int("duration")}
		if m.err != nil {
			return nil, m.err
		}
		return nl, nil

	case "key":
		if val.Kind != yaml.ScalarNode {
			return nil, errorAt(val, "key must be a key code such as Dm")
		}
		return &ast.KeyLiteral{Key: val.Value}, nil

	case "tempo":
		v, err := scalarInt(val)
		if err != nil {
			return nil, err
		}
		return &ast.TempoLiteral{BPM: v}, nil

	case "time_signature":
		num, den, err := fraction(val)
		if err != nil {
			return nil, err
		}
		return &ast.TimeSignatureLiteral{Numerator: num, Denominator: den}, nil

	case "index":
		m, err := readMapping(val, "array", "index")
		if err != nil {
			return nil, err
		}
		arr, idx, err := pair(m, "array", "index")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayAccessExpression{Array: arr, Index: idx}, nil

	case "assign":
		m, err := readMapping(val, "target", "value")
		if err != nil {
			return nil, err
		}
		target, value, err := pair(m, "target", "value")
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Target: target, Value: value}, nil

	case "call":
		return decodeCall(val)

	case "sharp", "flat":
		operand, err := decodeExpression(val)
		if err != nil {
			return nil, err
		}
		if kind == "sharp" {
			return &ast.SharpExpression{Operand: operand}, nil
		}
		return &ast.FlatExpression{Operand: operand}, nil
	}

	return nil, errorAt(n.Content[0], "unknown expression %q", kind)
}

func decodeCall(n *yaml.Node) (ast.Expression, error) {
	m, err := readMapping(n, "function", "args")
	if err != nil {
		return nil, err
	}
	fnNode := m.node("function")
	if m.err != nil {
		return nil, m.err
	}
	fn, err := decodeExpression(fnNode)
	if err != nil {
		return nil, err
	}

	var args []ast.Expression
	if list := m.optional("args"); list != nil {
		if list.Kind != yaml.SequenceNode {
			return nil, errorAt(list, "args must be a sequence")
		}
		for _, item := range list.Content {
			arg, err := decodeExpression(item)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	return &ast.CallExpression{Function: fn, Arguments: ast.NewArguments(args...)}, nil
}

// pair decodes two required sub-expressions of m.
func pair(m *fields, first, second string) (ast.Expression, ast.Expression, error) {
	a, b := m.node(first), m.node(second)
	if m.err != nil {
		return nil, nil, m.err
	}
	left, err := decodeExpression(a)
	if err != nil {
		return nil, nil, err
	}
	right, err := decodeExpression(b)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func scalarInt(n *yaml.Node) (int, error) {
	var v int
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		return 0, errorAt(n, "expected an integer, got %q", n.Value)
	}
	return v, nil
}

// fraction parses "7/8".
func fraction(n *yaml.Node) (int, int, error) {
	if n.Kind == yaml.ScalarNode {
		num, den, ok := strings.Cut(n.Value, "/")
		if ok {
			a, errA := strconv.Atoi(strings.TrimSpace(num))
			b, errB := strconv.Atoi(strings.TrimSpace(den))
			if errA == nil && errB == nil {
				return a, b, nil
			}
		}
	}
	return 0, 0, errorAt(n, "time signature must look like 7/8, got %q", n.Value)
}
