package decision

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (string, bool)
		input string
		want  string
		ok    bool
	}{
		{"value type upper", wrap(ParseValueType), "INTEGER", "INTEGER", true},
		{"value type lower", wrap(ParseValueType), "integer", "INTEGER", true},
		{"value type padded", wrap(ParseValueType), "  date ", "DATE", true},
		{"value type unknown", wrap(ParseValueType), "DECIMAL", "", false},
		{"value type empty", wrap(ParseValueType), "", "", false},
		{"expression type", wrap(ParseExpressionType), "cel", "CEL", true},
		{"expression type literal", wrap(ParseExpressionType), "Literal", "LITERAL", true},
		{"expression type unknown", wrap(ParseExpressionType), "GROOVY", "", false},
		{"evaluation mode", wrap(ParseEvaluationMode), "input_comparison", "INPUT_COMPARISON", true},
		{"hit policy", wrap(ParseHitPolicy), "rule_order", "RULE_ORDER", true},
		{"hit policy unknown", wrap(ParseHitPolicy), "LAST", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func wrap[T ~string](parse func(string) (T, bool)) func(string) (string, bool) {
	return func(s string) (string, bool) {
		v, ok := parse(s)
		return string(v), ok
	}
}

func TestEnumValid(t *testing.T) {
	for _, v := range ValueTypes() {
		assert.True(t, v.Valid(), v)
	}
	for _, v := range ExpressionTypes() {
		assert.True(t, v.Valid(), v)
	}
	for _, v := range EvaluationModes() {
		assert.True(t, v.Valid(), v)
	}
	for _, v := range HitPolicies() {
		assert.True(t, v.Valid(), v)
	}

	assert.False(t, ValueType("").Valid())
	assert.False(t, ExpressionType("JUEL").Valid())
	assert.False(t, EvaluationMode("STRICT").Valid())
	assert.False(t, HitPolicy("LAST").Valid())
	assert.Len(t, HitPolicies(), 7)
}

func TestEnumListsAreCopies(t *testing.T) {
	types := ValueTypes()
	types[0] = "BROKEN"

	assert.Equal(t, ValueTypeString, ValueTypes()[0])
}

func TestValueTypeGoType(t *testing.T) {
	tests := []struct {
		valueType ValueType
		want      reflect.Type
	}{
		{ValueTypeString, reflect.TypeOf("")},
		{ValueTypeInteger, reflect.TypeOf(0)},
		{ValueTypeDouble, reflect.TypeOf(0.0)},
		{ValueTypeBoolean, reflect.TypeOf(true)},
		{ValueTypeDate, reflect.TypeOf(time.Time{})},
		{ValueType("BLOB"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.valueType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.valueType.GoType())
		})
	}
}

type label string

func TestValueTypeCoerce(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		valueType ValueType
		value     any
		want      any
		wantErr   bool
	}{
		{"nil stays nil", ValueTypeInteger, nil, nil, false},
		{"int64 to integer", ValueTypeInteger, int64(42), 42, false},
		{"whole double to integer", ValueTypeInteger, 7.0, 7, false},
		{"fractional double to integer", ValueTypeInteger, 7.5, nil, true},
		{"string to integer", ValueTypeInteger, "7", nil, true},
		{"int to double", ValueTypeDouble, 3, 3.0, false},
		{"float32 to double", ValueTypeDouble, float32(0.5), 0.5, false},
		{"named string", ValueTypeString, label("gold"), "gold", false},
		{"bool", ValueTypeBoolean, true, true, false},
		{"int to boolean", ValueTypeBoolean, 1, nil, true},
		{"date only string", ValueTypeDate, "2024-03-01", day, false},
		{"RFC 3339 string", ValueTypeDate, "2024-03-01T00:00:00Z", day, false},
		{"time value", ValueTypeDate, day, day, false},
		{"bad date", ValueTypeDate, "yesterday", nil, true},
		{"unknown value type", ValueType("BLOB"), 1, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.valueType.Coerce(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpressionWithDefaultType(t *testing.T) {
	unset := NewExpression("> 20", "")
	assert.Equal(t, ExpressionTypeCEL, unset.WithDefaultType(ExpressionTypeCEL).Type())
	assert.Equal(t, ExpressionType(""), unset.Type(), "receiver expression must not change")

	explicit := NewExpression("> 20", ExpressionTypeExpr)
	assert.Equal(t, ExpressionTypeExpr, explicit.WithDefaultType(ExpressionTypeCEL).Type())

	null := LiteralExpression(nil)
	assert.False(t, null.HasValue())
	assert.Equal(t, ExpressionTypeLiteral, null.Type())
}
