// Package engine is the evaluation engine that configured method bindings and
// built decisions are handed to. It keeps a registry of bindings, stores
// decisions by id and evaluates single CEL, expr or literal expressions.
// Rule matching and hit policies are not implemented here.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/liamcoop/decisions/binding"
	"github.com/liamcoop/decisions/decision"
	"github.com/liamcoop/decisions/internal/logger"
)

var (
	ErrBindingNotFound           = errors.New("method binding not found")
	ErrUnsupportedExpressionType = errors.New("unsupported expression type")
	ErrDecisionExists            = errors.New("decision already exists")
	ErrDecisionNotFound          = errors.New("decision not found")
	ErrInvalidBindingName        = errors.New("invalid method binding name")
)

// provider compiles expressions of one language
type provider interface {
	cacheKey(source string, vars map[string]any) string
	Compile(source string, vars map[string]any) (Program, error)
}

// Engine holds method bindings and decisions
// Thread-safe for concurrent use once configured
type Engine struct {
	id        uuid.UUID
	logger    *slog.Logger
	bindings  []binding.MethodBinding          // declaration order
	registry  map[string]binding.MethodBinding // name -> last declared binding
	store     DecisionStore
	cache     ProgramCache
	providers map[decision.ExpressionType]provider
}

// ID returns the random identifier assigned when the engine was configured
func (en *Engine) ID() uuid.UUID {
	return en.id
}

// MethodBindings returns the bindings in declaration order, duplicates included
func (en *Engine) MethodBindings() []binding.MethodBinding {
	return append([]binding.MethodBinding(nil), en.bindings...)
}

// MethodBinding looks up a binding by name
func (en *Engine) MethodBinding(name string) (binding.MethodBinding, bool) {
	b, ok := en.registry[name]
	return b, ok
}

// Call invokes the binding registered under name. Instance bindings resolve
// their receiver at this point.
func (en *Engine) Call(name string, args ...any) (any, error) {
	b, ok := en.registry[name]
	if !ok {
		return nil, fmt.Errorf("binding %s: %w", name, ErrBindingNotFound)
	}

	if _, lazy := b.(*binding.Instance); lazy {
		logger.Trace(en.logger, "resolving binding instance", "binding", name)
	}

	out, err := b.Invoke(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", name, err)
	}
	return out, nil
}

// AddDecision registers a decision under its id
func (en *Engine) AddDecision(d *decision.Decision) error {
	if d == nil {
		return fmt.Errorf("decision is nil: %w", decision.ErrMissingField)
	}

	if err := en.store.Add(d); err != nil {
		return err
	}

	en.logger.Info("registered decision",
		"decision", d.ID(),
		"name", d.Name(),
		"inputs", len(d.Inputs()),
		"outputs", len(d.Outputs()),
		"rules", len(d.Rules()),
	)
	return nil
}

// UpdateDecision replaces a registered decision with the same id
func (en *Engine) UpdateDecision(d *decision.Decision) error {
	if d == nil {
		return fmt.Errorf("decision is nil: %w", decision.ErrMissingField)
	}

	if err := en.store.Update(d); err != nil {
		return err
	}

	en.logger.Info("updated decision", "decision", d.ID())
	return nil
}

// Decision returns the decision registered under id
func (en *Engine) Decision(id string) (*decision.Decision, error) {
	return en.store.Get(id)
}

// Decisions returns every registered decision ordered by id
func (en *Engine) Decisions() ([]*decision.Decision, error) {
	return en.store.List()
}

// RemoveDecision unregisters a decision
func (en *Engine) RemoveDecision(id string) error {
	if err := en.store.Delete(id); err != nil {
		return err
	}

	en.logger.Info("removed decision", "decision", id)
	return nil
}

// EvaluateInput computes the value of an input column. An input with an
// expression evaluates it against vars, otherwise the variable named after the
// input is used. The result is converted to the input's value type.
func (en *Engine) EvaluateInput(input decision.Input, vars map[string]any) (any, error) {
	value := vars[input.Name()]
	if expression, ok := input.Expression(); ok && expression.HasValue() {
		v, err := en.EvaluateExpression(expression, vars)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input.Name(), err)
		}
		value = v
	}

	out, err := input.Type().Coerce(value)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", input.Name(), err)
	}
	return out, nil
}

// EvaluateExpression evaluates a single expression against vars.
// LITERAL expressions return their value unchanged. CEL and EXPR sources are
// compiled once and cached; registered bindings can be called by name.
func (en *Engine) EvaluateExpression(expression decision.Expression, vars map[string]any) (any, error) {
	if expression.Type() == decision.ExpressionTypeLiteral {
		return expression.Value(), nil
	}

	p, ok := en.providers[expression.Type()]
	if !ok {
		return nil, fmt.Errorf("expression type %q: %w", expression.Type(), ErrUnsupportedExpressionType)
	}

	source, ok := expression.Value().(string)
	if !ok {
		return nil, fmt.Errorf("%s expression must be a string, got %T", expression.Type(), expression.Value())
	}

	key := p.cacheKey(source, vars)
	prog, cached := en.cache.Get(key)
	if !cached {
		var err error
		prog, err = p.Compile(source, vars)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s expression %q: %w", expression.Type(), source, err)
		}
		en.cache.Set(key, prog)
		en.logger.Debug("compiled expression", "type", expression.Type().String(), "source", source)
	}

	out, err := prog.Run(vars)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s expression %q: %w", expression.Type(), source, err)
	}
	return out, nil
}
