package engine

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/liamcoop/decisions/binding"
)

// exprProvider compiles expr-lang expressions. Method bindings are exposed as
// expr functions. Variables are resolved at run time, so a program does not
// depend on the variable set it is first run with.
type exprProvider struct {
	options []expr.Option
}

func newExprProvider(bindings []binding.MethodBinding) *exprProvider {
	opts := []expr.Option{expr.AllowUndefinedVariables()}
	for _, b := range bindings {
		opts = append(opts, expr.Function(b.Name(), func(params ...any) (any, error) {
			return b.Invoke(params...)
		}))
	}
	return &exprProvider{options: opts}
}

func (p *exprProvider) cacheKey(source string, _ map[string]any) string {
	return "EXPR|" + source
}

// Compile compiles an expr expression to a program
func (p *exprProvider) Compile(source string, _ map[string]any) (Program, error) {
	program, err := expr.Compile(source, p.options...)
	if err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}
	return exprProgram{program: program}, nil
}

type exprProgram struct {
	program *vm.Program
}

func (p exprProgram) Run(vars map[string]any) (any, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	return expr.Run(p.program, vars)
}
