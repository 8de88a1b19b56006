package dsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamcoop/decisions/binding"
	"github.com/liamcoop/decisions/decision"
	"github.com/liamcoop/decisions/engine"
	"github.com/liamcoop/decisions/internal/logger"
)

type methodSource struct {
	prefix string
}

func (m *methodSource) Label(s string) string { return m.prefix + s }

func shout(s string) string { return strings.ToUpper(s) }

// TestEngineSupplierIsNotInvokedDuringConfiguration checks instance suppliers run only when the binding is used
func TestEngineSupplierIsNotInvokedDuringConfiguration(t *testing.T) {
	invoked := 0
	target := &methodSource{prefix: "g:"}

	en, err := Engine(func(m *MethodBindingScope) {
		m.StaticMethod(func(s *StaticMethod) {
			s.Name = "f"
			s.Method = shout
		})
		m.InstanceMethod(func(i *InstanceMethod) {
			i.Name = "g"
			i.Method = (*methodSource).Label
			i.Instance = func() any {
				invoked++
				return target
			}
		})
	}, engine.WithLogger(logger.Discard()))
	require.NoError(t, err)
	require.NotNil(t, en)
	assert.Equal(t, 0, invoked)

	got, err := en.Call("g", "x")
	require.NoError(t, err)
	assert.Equal(t, "g:x", got)
	assert.Equal(t, 1, invoked)

	got, err = en.Call("f", "x")
	require.NoError(t, err)
	assert.Equal(t, "X", got)
	assert.Equal(t, 1, invoked)
}

func TestEngineKeepsDeclarationOrder(t *testing.T) {
	en, err := Engine(func(m *MethodBindingScope) {
		m.StaticMethod(func(s *StaticMethod) { s.Name, s.Method = "b", shout })
		m.InstanceMethod(func(i *InstanceMethod) {
			i.Name, i.Method = "a", (*methodSource).Label
			i.Instance = func() any { return &methodSource{} }
		})
		m.StaticMethod(func(s *StaticMethod) { s.Name, s.Method = "b", strings.ToLower })
	}, engine.WithLogger(logger.Discard()))
	require.NoError(t, err)

	bindings := en.MethodBindings()
	require.Len(t, bindings, 3)
	assert.Equal(t, "b", bindings[0].Name())
	assert.Equal(t, "a", bindings[1].Name())
	assert.IsType(t, &binding.Instance{}, bindings[1])

	// the last binding named b wins
	got, err := en.Call("b", "MiXeD")
	require.NoError(t, err)
	assert.Equal(t, "mixed", got)
}

func TestEngineBindingsInExpressions(t *testing.T) {
	en, err := Engine(func(m *MethodBindingScope) {
		m.StaticMethod(func(s *StaticMethod) { s.Name, s.Method = "shout", shout })
	}, engine.WithLogger(logger.Discard()))
	require.NoError(t, err)

	got, err := en.EvaluateExpression(decision.NewExpression(`shout(name)`, decision.ExpressionTypeCEL), map[string]any{"name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ADA", got)

	got, err = en.EvaluateExpression(decision.NewExpression(`shout(name)`, decision.ExpressionTypeExpr), map[string]any{"name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ADA", got)
}

func TestEngineErrors(t *testing.T) {
	tests := []struct {
		name    string
		block   func(*MethodBindingScope)
		wantErr error
		errMsg  string
	}{
		{
			name:    "static without name",
			block:   func(m *MethodBindingScope) { m.StaticMethod(func(s *StaticMethod) { s.Method = shout }) },
			wantErr: binding.ErrInvalidBinding,
			errMsg:  "methods[0]",
		},
		{
			name: "static without method",
			block: func(m *MethodBindingScope) {
				m.StaticMethod(func(s *StaticMethod) { s.Name = "ok" })
			},
			wantErr: binding.ErrInvalidBinding,
		},
		{
			name: "instance without supplier",
			block: func(m *MethodBindingScope) {
				m.StaticMethod(func(s *StaticMethod) { s.Name, s.Method = "ok", shout })
				m.InstanceMethod(func(i *InstanceMethod) { i.Name, i.Method = "g", (*methodSource).Label })
			},
			wantErr: binding.ErrInvalidBinding,
			errMsg:  "methods[1]",
		},
		{
			name: "reserved name",
			block: func(m *MethodBindingScope) {
				m.StaticMethod(func(s *StaticMethod) { s.Name, s.Method = "size", shout })
			},
			wantErr: engine.ErrInvalidBindingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			en, err := Engine(tt.block, engine.WithLogger(logger.Discard()))
			assert.Nil(t, en)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEngineWithoutBindings(t *testing.T) {
	en, err := Engine(nil, engine.WithLogger(logger.Discard()))
	require.NoError(t, err)
	assert.Empty(t, en.MethodBindings())
}
