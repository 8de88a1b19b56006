// Package dsl builds decisions and engines from nested scope functions.
//
//	d, err := dsl.Decision(func(d *dsl.DecisionScope) {
//		d.ID = "adult"
//		d.Name = "Adult check"
//		d.Inputs(func(in *dsl.InputsScope) {
//			in.Input("age", func(i *dsl.InputScope) { i.Type = decision.ValueTypeInteger })
//		})
//		...
//	})
//
// Scopes only record what the caller declares. The decision is assembled once
// the outermost function returns, so the order of statements inside a scope
// does not matter.
package dsl

import (
	"fmt"

	"github.com/liamcoop/decisions/decision"
)

// NullValue is the type of Null
type NullValue struct{}

// Null is an explicit null literal. Assigning it to an entry Value produces a
// LITERAL expression without a value, whereas leaving Value nil means no
// value was given.
var Null = NullValue{}

// expressionDecl records a call to Expression
type expressionDecl struct {
	value any
	typ   decision.ExpressionType
}

// DecisionScope describes a decision table
type DecisionScope struct {
	ID             string
	Name           string
	HitPolicy      decision.HitPolicy
	ExpressionType decision.ExpressionType
	EvaluationMode decision.EvaluationMode

	inputs  []*InputScope
	outputs []*OutputScope
	rules   []*RuleScope
}

// Inputs declares input columns. Repeated calls append.
func (s *DecisionScope) Inputs(block func(*InputsScope)) {
	if block != nil {
		block(&InputsScope{decision: s})
	}
}

// Outputs declares output columns. Repeated calls append.
func (s *DecisionScope) Outputs(block func(*OutputsScope)) {
	if block != nil {
		block(&OutputsScope{decision: s})
	}
}

// Rules declares rule rows. Repeated calls append.
func (s *DecisionScope) Rules(block func(*RulesScope)) {
	if block != nil {
		block(&RulesScope{decision: s})
	}
}

// InputsScope declares the input columns of a decision
type InputsScope struct {
	decision *DecisionScope
}

// Input declares an input column named name
func (s *InputsScope) Input(name string, block func(*InputScope)) {
	in := &InputScope{name: name}
	if block != nil {
		block(in)
	}
	s.decision.inputs = append(s.decision.inputs, in)
}

// InputScope describes one input column
type InputScope struct {
	Type           decision.ValueType
	NameAlias      string
	Description    string
	EvaluationMode decision.EvaluationMode

	name       string
	expression *expressionDecl
}

// Expression sets the expression that produces the input value. An empty
// type falls back to the decision's expression type.
func (s *InputScope) Expression(value any, typ decision.ExpressionType) {
	s.expression = &expressionDecl{value: value, typ: typ}
}

// OutputsScope declares the output columns of a decision
type OutputsScope struct {
	decision *DecisionScope
}

// Output declares an output column named name
func (s *OutputsScope) Output(name string, block func(*OutputScope)) {
	out := &OutputScope{name: name}
	if block != nil {
		block(out)
	}
	s.decision.outputs = append(s.decision.outputs, out)
}

// OutputScope describes one output column
type OutputScope struct {
	Type           decision.ValueType
	NameAlias      string
	Description    string
	EvaluationMode decision.EvaluationMode

	name string
}

// RulesScope declares the rule rows of a decision
type RulesScope struct {
	decision *DecisionScope
}

// Rule declares a rule row
func (s *RulesScope) Rule(block func(*RuleScope)) {
	rule := &RuleScope{}
	if block != nil {
		block(rule)
	}
	s.decision.rules = append(s.decision.rules, rule)
}

// RuleScope describes one rule row. Entries keep the order they are declared
// in and entries sharing a name are all kept.
type RuleScope struct {
	Description string

	inputs  []*InputEntryScope
	outputs []*OutputEntryScope
}

// Input appends an input entry for the column named name
func (s *RuleScope) Input(name string, blocks ...func(*InputEntryScope)) {
	entry := &InputEntryScope{name: name}
	for _, block := range blocks {
		if block != nil {
			block(entry)
		}
	}
	s.inputs = append(s.inputs, entry)
}

// Output appends an output entry for the column named name
func (s *RuleScope) Output(name string, blocks ...func(*OutputEntryScope)) {
	entry := &OutputEntryScope{name: name}
	for _, block := range blocks {
		if block != nil {
			block(entry)
		}
	}
	s.outputs = append(s.outputs, entry)
}

// InputEntryScope describes one input cell
type InputEntryScope struct {
	NameAlias      string
	EvaluationMode decision.EvaluationMode
	// Value is a literal. Expression takes priority when both are set.
	Value any

	name       string
	expression *expressionDecl
}

// Expression sets the expression of the cell. An empty type falls back to
// the decision's expression type.
func (s *InputEntryScope) Expression(value any, typ decision.ExpressionType) {
	s.expression = &expressionDecl{value: value, typ: typ}
}

// OutputEntryScope describes one output cell
type OutputEntryScope struct {
	NameAlias string
	// Value is a literal. Expression takes priority when both are set.
	Value any

	name       string
	expression *expressionDecl
}

// Expression sets the expression of the cell. An empty type falls back to
// the decision's expression type.
func (s *OutputEntryScope) Expression(value any, typ decision.ExpressionType) {
	s.expression = &expressionDecl{value: value, typ: typ}
}

// Decision runs block against a new scope and builds the decision it describes
func Decision(block func(*DecisionScope)) (*decision.Decision, error) {
	scope := &DecisionScope{}
	if block != nil {
		block(scope)
	}
	return scope.build()
}

// defaults are the decision level settings inherited by nested elements
type defaults struct {
	expressionType decision.ExpressionType
	evaluationMode decision.EvaluationMode
	inputModes     map[string]decision.EvaluationMode // input name -> resolved mode of the first input with it
}

func (s *DecisionScope) build() (*decision.Decision, error) {
	defs := defaults{
		expressionType: s.ExpressionType,
		evaluationMode: s.EvaluationMode,
		inputModes:     make(map[string]decision.EvaluationMode, len(s.inputs)),
	}

	b := decision.NewDecisionBuilder().
		ID(s.ID).
		Name(s.Name).
		HitPolicy(s.HitPolicy).
		ExpressionType(s.ExpressionType).
		EvaluationMode(s.EvaluationMode)

	for i, in := range s.inputs {
		input, err := buildInput(in, defs)
		if err != nil {
			return nil, at(fmt.Sprintf("inputs[%d]", i), err)
		}
		if _, seen := defs.inputModes[input.Name()]; !seen {
			defs.inputModes[input.Name()] = input.EvaluationMode()
		}
		b.Input(input)
	}

	for i, out := range s.outputs {
		output, err := buildOutput(out)
		if err != nil {
			return nil, at(fmt.Sprintf("outputs[%d]", i), err)
		}
		b.Output(output)
	}

	for i, r := range s.rules {
		rule, err := buildRule(r, defs)
		if err != nil {
			return nil, at(fmt.Sprintf("rules[%d]", i), err)
		}
		b.Rule(rule)
	}

	return b.Build()
}

func buildInput(s *InputScope, defs defaults) (decision.Input, error) {
	b := decision.NewInputBuilder().
		Name(s.name).
		Type(s.Type).
		NameAlias(s.NameAlias).
		Description(s.Description).
		EvaluationMode(firstMode(s.EvaluationMode, defs.evaluationMode))

	if s.expression != nil {
		b.Expression(declaredExpression(s.expression, defs))
	}
	return b.Build()
}

func buildOutput(s *OutputScope) (decision.Output, error) {
	return decision.NewOutputBuilder().
		Name(s.name).
		Type(s.Type).
		NameAlias(s.NameAlias).
		Description(s.Description).
		EvaluationMode(s.EvaluationMode).
		Build()
}

func buildRule(s *RuleScope, defs defaults) (decision.Rule, error) {
	b := decision.NewRuleBuilder().Description(s.Description)

	for i, in := range s.inputs {
		mode := in.EvaluationMode
		if mode == "" {
			mode = firstMode(defs.inputModes[in.name], defs.evaluationMode)
		}

		entry, err := decision.NewInputEntryBuilder().
			Name(in.name).
			NameAlias(in.NameAlias).
			EvaluationMode(mode).
			Expression(entryExpression(in.expression, in.Value, defs)).
			Build()
		if err != nil {
			return decision.Rule{}, at(fmt.Sprintf("inputs[%d]", i), err)
		}
		b.InputEntry(entry)
	}

	for i, out := range s.outputs {
		entry, err := decision.NewOutputEntryBuilder().
			Name(out.name).
			NameAlias(out.NameAlias).
			Expression(entryExpression(out.expression, out.Value, defs)).
			Build()
		if err != nil {
			return decision.Rule{}, at(fmt.Sprintf("outputs[%d]", i), err)
		}
		b.OutputEntry(entry)
	}

	return b.Build()
}

// entryExpression resolves the expression of a rule cell: a declared
// expression first, then a literal value, then an empty expression of the
// decision's type
func entryExpression(decl *expressionDecl, value any, defs defaults) decision.Expression {
	switch {
	case decl != nil:
		return declaredExpression(decl, defs)
	case value != nil:
		return decision.LiteralExpression(literal(value))
	default:
		return decision.NewExpression(nil, defs.expressionType)
	}
}

func declaredExpression(decl *expressionDecl, defs defaults) decision.Expression {
	return decision.NewExpression(literal(decl.value), decl.typ).WithDefaultType(defs.expressionType)
}

func literal(value any) any {
	if _, null := value.(NullValue); null {
		return nil
	}
	return value
}

func firstMode(modes ...decision.EvaluationMode) decision.EvaluationMode {
	for _, m := range modes {
		if m != "" {
			return m
		}
	}
	return ""
}

// pathError locates a build failure inside the decision, e.g.
// rules[1].inputs[0]: name: missing required field
type pathError struct {
	path string
	err  error
}

func (e *pathError) Error() string { return e.path + ": " + e.err.Error() }
func (e *pathError) Unwrap() error { return e.err }

func at(path string, err error) error {
	if pe, ok := err.(*pathError); ok {
		return &pathError{path: path + "." + pe.path, err: pe.err}
	}
	return &pathError{path: path, err: err}
}
