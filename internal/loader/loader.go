// Package loader decodes YAML fixtures into statement bodies.
//
// A fixture is a document with a single body sequence. Every statement and
// every expression is a mapping with exactly one key naming its kind:
//
//	body:
//	  - tempo: {name: tempo, bpm: 120}
//	  - note: {name: nota8, pitch: C, octave: 5, duration: Corchea}
//	  - expr: {sharp: {name: nota8}}
//
// Errors carry the line of the offending YAML node.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/config"
)

// Error is a decoding failure at a position in the fixture.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func errorAt(n *yaml.Node, format string, args ...any) error {
	return &Error{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

// Load reads and decodes the fixture at path.
func Load(path string) (ast.Body, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(config.SourceFileExtensions, ext) {
		return nil, fmt.Errorf("%s: unsupported extension %q, want one of %s",
			path, ext, strings.Join(config.SourceFileExtensions, ", "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	body, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return body, nil
}

// Parse decodes a fixture document.
func Parse(data []byte) (ast.Body, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty fixture")
	}

	root := doc.Content[0]
	m, err := readMapping(root, "body")
	if err != nil {
		return nil, err
	}
	body := m.node("body")
	if m.err != nil {
		return nil, m.err
	}
	return decodeBody(body)
}

func decodeBody(n *yaml.Node) (ast.Body, error) {
	if n.Tag == "!!null" {
		return ast.Body{}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "body must be a sequence of statements")
	}
	body := make(ast.Body, 0, len(n.Content))
	for _, item := range n.Content {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

// single splits a one-key mapping into its key and value.
func single(n *yaml.Node, what string) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, errorAt(n, "%s must be a mapping with exactly one key", what)
	}
	return n.Content[0].Value, n.Content[1], nil
}
