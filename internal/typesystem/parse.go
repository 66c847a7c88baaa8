package typesystem

import (
	"unicode"
)

// Parse reads the canonical text produced by Datatype.String back into a
// Datatype, e.g. "array<note>" or "function(x: integer) -> void".
func Parse(s string) (Datatype, error) {
	p := &typeParser{input: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input")
	}
	return t, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// tests and package-level tables.
func MustParse(s string) Datatype {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// LookupBasic maps a basic type name to its variant.
func LookupBasic(name string) (TBasic, bool) {
	for i, n := range basicNames {
		if n == name {
			return TBasic(i), true
		}
	}
	return 0, false
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) errorf(msg string) *ParseError {
	return &ParseError{Input: p.input, Pos: p.pos, Msg: msg}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *typeParser) expect(tok string) error {
	p.skipSpace()
	if len(p.input)-p.pos < len(tok) || p.input[p.pos:p.pos+len(tok)] != tok {
		return p.errorf("expected " + tok)
	}
	p.pos += len(tok)
	return nil
}

func (p *typeParser) peek(tok string) bool {
	p.skipSpace()
	return len(p.input)-p.pos >= len(tok) && p.input[p.pos:p.pos+len(tok)] == tok
}

func (p *typeParser) parseType() (Datatype, error) {
	name := p.ident()
	switch name {
	case "":
		return nil, p.errorf("expected type name")
	case "array":
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return TArray{Inner: inner}, nil
	case "function":
		return p.parseFunction()
	}
	if b, ok := LookupBasic(name); ok {
		return b, nil
	}
	return nil, NewUnknownTypeError(name)
}

func (p *typeParser) parseFunction() (Datatype, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params ParamList
	for !p.peek(")") {
		if len(params) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		name := p.ident()
		if name == "" {
			return nil, p.errorf("expected parameter name")
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: name, Type: t})
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if err := p.expect("->"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return TFunc{Return: ret, Params: params}, nil
}
