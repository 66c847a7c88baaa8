// Package report holds the result of analysing one body: a verdict per
// top-level statement for each pass and the bindings made while resolving.
package report

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Pass names one of the analysis passes.
type Pass string

const (
	Resolution Pass = "resolution"
	TypeCheck  Pass = "type_check"
)

// Outcome is the verdict for one top-level statement in one pass.
type Outcome struct {
	Index       int
	Description string
	Err         error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Binding is a name bound during resolution, in binding order.
type Binding struct {
	Seq        int
	Name       string
	Kind       string
	Type       string
	ScopeLevel int
}

// Report collects everything an analysis run produced.
type Report struct {
	RunID uuid.UUID

	Resolution []Outcome
	TypeCheck  []Outcome
	Bindings   []Binding

	// Resolved and TypeChecked are the pass verdicts. TypeChecked is false
	// when the type-check pass did not run.
	Resolved    bool
	TypeChecked bool
}

func New() *Report {
	return &Report{RunID: uuid.New()}
}

// Outcomes returns the outcomes recorded for pass.
func (r *Report) Outcomes(pass Pass) []Outcome {
	if pass == TypeCheck {
		return r.TypeCheck
	}
	return r.Resolution
}

// Passed reports whether both passes ran and succeeded.
func (r *Report) Passed() bool {
	return r.Resolved && r.TypeChecked
}

// Err combines every failed outcome of both passes, in order.
func (r *Report) Err() error {
	var err error
	for _, o := range r.Resolution {
		err = multierr.Append(err, o.Err)
	}
	for _, o := range r.TypeCheck {
		err = multierr.Append(err, o.Err)
	}
	return err
}

// Failures counts the failed outcomes of pass.
func (r *Report) Failures(pass Pass) int {
	n := 0
	for _, o := range r.Outcomes(pass) {
		if !o.OK() {
			n++
		}
	}
	return n
}
