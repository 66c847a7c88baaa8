package typesystem

import "fmt"

// UnknownTypeError indicates a type name that is not part of the language.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %s", e.Name)
}

func NewUnknownTypeError(name string) *UnknownTypeError {
	return &UnknownTypeError{Name: name}
}

// ParseError reports malformed type text.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing type %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}
