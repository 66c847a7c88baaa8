package analyzer

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/report"
	"github.com/funvibe/cadenza/internal/symbols"
)

// Options configures an Analyzer.
type Options struct {
	Logger *zap.Logger

	// AccumulateErrors keeps going after a failed top-level statement and
	// reports every failure. Nested bodies still stop at their first error.
	AccumulateErrors bool
}

// Analyzer runs the resolution and type-check passes over a Body.
type Analyzer struct {
	symbolTable *symbols.SymbolTable
	resolver    *ast.Resolver
	logger      *zap.Logger
	accumulate  bool

	bindings []report.Binding
}

// New creates an Analyzer that binds names into symbolTable. A nil table is
// replaced by a fresh one.
func New(symbolTable *symbols.SymbolTable, opts Options) *Analyzer {
	if symbolTable == nil {
		symbolTable = symbols.NewSymbolTable()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Analyzer{
		symbolTable: symbolTable,
		resolver:    ast.NewResolver(symbolTable),
		logger:      logger,
		accumulate:  opts.AccumulateErrors,
	}
	a.resolver.OnBind(a.recordBinding)
	return a
}

func (a *Analyzer) SymbolTable() *symbols.SymbolTable { return a.symbolTable }

// Bindings returns every binding made so far, in order.
func (a *Analyzer) Bindings() []report.Binding {
	out := make([]report.Binding, len(a.bindings))
	copy(out, a.bindings)
	return out
}

func (a *Analyzer) recordBinding(sym *symbols.Symbol, level int) {
	b := report.Binding{
		Seq:        len(a.bindings) + 1,
		Name:       sym.Name,
		Kind:       sym.Kind.String(),
		ScopeLevel: level,
	}
	if sym.Type != nil {
		b.Type = sym.Type.String()
	}
	a.bindings = append(a.bindings, b)
	a.logger.Debug("bound name",
		zap.String("name", b.Name),
		zap.String("kind", b.Kind),
		zap.String("type", b.Type),
		zap.Int("scope_level", level))
}

// ResolveNames runs the resolution pass over body.
func (a *Analyzer) ResolveNames(body ast.Body) error {
	_, err := a.run(report.Resolution, body, func(s ast.Statement) error {
		return s.ResolveNames(a.resolver)
	})
	return err
}

// TypeCheck runs the type-check pass over body. Identifiers must already
// be resolved for their types to be known.
func (a *Analyzer) TypeCheck(body ast.Body) error {
	_, err := a.run(report.TypeCheck, body, func(s ast.Statement) error {
		_, err := s.TypeCheck()
		return err
	})
	return err
}

// Analyze resolves body and, if resolution succeeded, type checks it.
func (a *Analyzer) Analyze(body ast.Body) *report.Report {
	rep := report.New()
	log := a.logger.With(zap.Stringer("run_id", rep.RunID))
	start := len(a.bindings)

	var err error
	rep.Resolution, err = a.run(report.Resolution, body, func(s ast.Statement) error {
		return s.ResolveNames(a.resolver)
	})
	rep.Resolved = err == nil
	rep.Bindings = append([]report.Binding(nil), a.bindings[start:]...)

	if !rep.Resolved {
		log.Info("resolution failed, skipping type check",
			zap.Int("failures", rep.Failures(report.Resolution)))
		return rep
	}

	rep.TypeCheck, err = a.run(report.TypeCheck, body, func(s ast.Statement) error {
		_, err := s.TypeCheck()
		return err
	})
	rep.TypeChecked = err == nil

	log.Info("analysis finished",
		zap.Int("statements", len(body)),
		zap.Int("bindings", len(rep.Bindings)),
		zap.Bool("passed", rep.Passed()))
	return rep
}

// run applies fn to every top-level statement of body, recording an
// outcome per statement. In fail-fast mode it stops after the first
// failure.
func (a *Analyzer) run(pass report.Pass, body ast.Body, fn func(ast.Statement) error) ([]report.Outcome, error) {
	outcomes := make([]report.Outcome, 0, len(body))
	var errs error
	for i, stmt := range body {
		err := fn(stmt)
		outcomes = append(outcomes, report.Outcome{Index: i, Description: Describe(stmt), Err: err})

		if err == nil {
			a.logger.Debug("statement ok", zap.String("pass", string(pass)), zap.Int("index", i))
			continue
		}
		a.logger.Debug("statement failed",
			zap.String("pass", string(pass)),
			zap.Int("index", i),
			zap.Stringer("node", stmt),
			zap.Error(err))
		errs = multierr.Append(errs, err)
		if !a.accumulate {
			break
		}
	}
	return outcomes, errs
}
