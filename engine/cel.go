package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/liamcoop/decisions/binding"
)

// celProvider compiles CEL expressions. Method bindings are declared as CEL
// functions taking and returning dyn values. Variables are declared as dyn
// from the names of the variables passed to the evaluation, so one
// environment is kept per distinct variable set, at most maxEnvs of them.
type celProvider struct {
	functions []cel.EnvOption
	costLimit uint64
	maxEnvs   int
	envs      map[string]*cel.Env // variable set key -> environment
	mu        sync.RWMutex
}

// newCELProvider creates a provider whose environments are dropped once more
// than maxEnvs variable sets have been seen, 0 means unbounded
func newCELProvider(bindings []binding.MethodBinding, costLimit uint64, maxEnvs int) *celProvider {
	p := &celProvider{
		costLimit: costLimit,
		maxEnvs:   maxEnvs,
		envs:      make(map[string]*cel.Env),
	}
	for _, b := range bindings {
		if fn, ok := celFunction(b); ok {
			p.functions = append(p.functions, fn)
		}
	}
	return p
}

// cacheKey identifies a compiled program by its variable set and source
func (p *celProvider) cacheKey(source string, vars map[string]any) string {
	return "CEL|" + varSetKey(vars) + "|" + source
}

// Compile compiles a CEL expression to a program
// Applies the cost limit to prevent runaway expressions
func (p *celProvider) Compile(source string, vars map[string]any) (Program, error) {
	env, err := p.env(vars)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	var opts []cel.ProgramOption
	if p.costLimit > 0 {
		opts = append(opts, cel.CostLimit(p.costLimit))
	}
	prog, err := env.Program(ast, opts...)
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}

	return celProgram{prog: prog}, nil
}

func (p *celProvider) env(vars map[string]any) (*cel.Env, error) {
	key := varSetKey(vars)

	p.mu.RLock()
	env, exists := p.envs[key]
	p.mu.RUnlock()
	if exists {
		return env, nil
	}

	opts := append([]cel.EnvOption(nil), p.functions...)
	for _, name := range sortedNames(vars) {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	p.mu.Lock()
	if p.maxEnvs > 0 && len(p.envs) >= p.maxEnvs {
		p.envs = make(map[string]*cel.Env)
	}
	p.envs[key] = env
	p.mu.Unlock()

	return env, nil
}

type celProgram struct {
	prog cel.Program
}

func (p celProgram) Run(vars map[string]any) (any, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	out, _, err := p.prog.Eval(vars)
	if err != nil {
		return nil, err
	}
	if out.Type() == types.NullType {
		return nil, nil
	}
	return out.Value(), nil
}

// celFunction declares b as a CEL function with dyn arguments.
// Variadic bindings cannot be expressed as a CEL overload and are skipped.
func celFunction(b binding.MethodBinding) (cel.EnvOption, bool) {
	if b.IsVariadic() {
		return nil, false
	}

	argTypes := make([]*cel.Type, b.NumIn())
	for i := range argTypes {
		argTypes[i] = cel.DynType
	}

	var impl cel.OverloadOpt
	switch len(argTypes) {
	case 1:
		impl = cel.UnaryBinding(func(arg ref.Val) ref.Val {
			return invokeCEL(b, arg)
		})
	case 2:
		impl = cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
			return invokeCEL(b, lhs, rhs)
		})
	default:
		impl = cel.FunctionBinding(func(args ...ref.Val) ref.Val {
			return invokeCEL(b, args...)
		})
	}

	overloadID := fmt.Sprintf("%s_%d_dyn", b.Name(), len(argTypes))
	return cel.Function(b.Name(), cel.Overload(overloadID, argTypes, cel.DynType, impl)), true
}

func invokeCEL(b binding.MethodBinding, args ...ref.Val) ref.Val {
	native := make([]any, len(args))
	for i, arg := range args {
		if arg.Type() == types.NullType {
			continue
		}
		native[i] = arg.Value()
	}

	out, err := b.Invoke(native...)
	if err != nil {
		return types.NewErr("%v", err)
	}
	return types.DefaultTypeAdapter.NativeToValue(out)
}

func varSetKey(vars map[string]any) string {
	return strings.Join(sortedNames(vars), ",")
}

func sortedNames(vars map[string]any) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// envCount returns the number of cached environments
func (p *celProvider) envCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.envs)
}
