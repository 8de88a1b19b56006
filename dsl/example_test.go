package dsl_test

import (
	"fmt"

	"github.com/liamcoop/decisions/decision"
	"github.com/liamcoop/decisions/dsl"
	"github.com/liamcoop/decisions/engine"
	"github.com/liamcoop/decisions/internal/logger"
)

func ExampleDecision() {
	d, err := dsl.Decision(func(d *dsl.DecisionScope) {
		d.ID = "adult"
		d.Name = "Adult check"
		d.HitPolicy = decision.HitPolicyFirst
		d.ExpressionType = decision.ExpressionTypeCEL

		d.Inputs(func(in *dsl.InputsScope) {
			in.Input("age", func(i *dsl.InputScope) { i.Type = decision.ValueTypeInteger })
		})
		d.Outputs(func(out *dsl.OutputsScope) {
			out.Output("adult", func(o *dsl.OutputScope) { o.Type = decision.ValueTypeBoolean })
		})
		d.Rules(func(r *dsl.RulesScope) {
			r.Rule(func(rule *dsl.RuleScope) {
				rule.Input("age", func(e *dsl.InputEntryScope) { e.Expression("age >= 18", "") })
				rule.Output("adult", func(e *dsl.OutputEntryScope) { e.Value = true })
			})
		})
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	entry := d.Rules()[0].InputEntries()[0]
	fmt.Println(d.ID(), d.HitPolicy(), entry.Expression().Type(), entry.Expression().Value())
	// Output: adult FIRST CEL age >= 18
}

func ExampleEngine() {
	en, err := dsl.Engine(func(m *dsl.MethodBindingScope) {
		m.StaticMethod(func(s *dsl.StaticMethod) {
			s.Name = "discount"
			s.Method = func(amount float64) float64 { return amount * 0.9 }
		})
	}, engine.WithLogger(logger.Discard()))
	if err != nil {
		fmt.Println(err)
		return
	}

	out, err := en.EvaluateExpression(
		decision.NewExpression("discount(price)", decision.ExpressionTypeExpr),
		map[string]any{"price": 100.0},
	)
	fmt.Println(out, err)
	// Output: 90 <nil>
}
