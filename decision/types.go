package decision

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// ExpressionType names the language an Expression is written in.
// The zero value means no type was given and the engine default applies.
type ExpressionType string

const (
	// ExpressionTypeLiteral is not an expression: the value is used as is
	ExpressionTypeLiteral ExpressionType = "LITERAL"
	// ExpressionTypeCEL is the Common Expression Language (github.com/google/cel-go)
	ExpressionTypeCEL ExpressionType = "CEL"
	// ExpressionTypeExpr is the expr-lang scripting language (github.com/expr-lang/expr)
	ExpressionTypeExpr ExpressionType = "EXPR"
)

var expressionTypes = []ExpressionType{ExpressionTypeLiteral, ExpressionTypeCEL, ExpressionTypeExpr}

// ExpressionTypes returns every supported expression type
func ExpressionTypes() []ExpressionType {
	return append([]ExpressionType(nil), expressionTypes...)
}

// Valid reports whether t is one of the known expression types
func (t ExpressionType) Valid() bool { return isKnown(t, expressionTypes) }

func (t ExpressionType) String() string { return string(t) }

// ParseExpressionType looks up an expression type by name, ignoring case
func ParseExpressionType(name string) (ExpressionType, bool) {
	return parseEnum(name, expressionTypes)
}

// ValueType describes the runtime type carried by an Input or Output
type ValueType string

const (
	ValueTypeString  ValueType = "STRING"
	ValueTypeInteger ValueType = "INTEGER"
	ValueTypeDouble  ValueType = "DOUBLE"
	ValueTypeBoolean ValueType = "BOOLEAN"
	ValueTypeDate    ValueType = "DATE"
)

var valueTypes = []ValueType{ValueTypeString, ValueTypeInteger, ValueTypeDouble, ValueTypeBoolean, ValueTypeDate}

// ValueTypes returns every supported value type
func ValueTypes() []ValueType {
	return append([]ValueType(nil), valueTypes...)
}

// Valid reports whether t is one of the known value types
func (t ValueType) Valid() bool { return isKnown(t, valueTypes) }

func (t ValueType) String() string { return string(t) }

// GoType returns the Go type values of this kind are represented with.
// It returns nil for an unknown value type.
func (t ValueType) GoType() reflect.Type {
	switch t {
	case ValueTypeString:
		return reflect.TypeOf("")
	case ValueTypeInteger:
		return reflect.TypeOf(0)
	case ValueTypeDouble:
		return reflect.TypeOf(float64(0))
	case ValueTypeBoolean:
		return reflect.TypeOf(false)
	case ValueTypeDate:
		return reflect.TypeOf(time.Time{})
	default:
		return nil
	}
}

var dateLayouts = []string{time.RFC3339, time.DateOnly}

// Coerce converts v to the Go type of t. Whole numbers move between INTEGER
// and DOUBLE, and DATE also accepts RFC 3339 and 2006-01-02 strings.
// A nil value stays nil.
func (t ValueType) Coerce(v any) (any, error) {
	target := t.GoType()
	if target == nil {
		return nil, fmt.Errorf("value type %q: %w", t, ErrInvalidValue)
	}
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type() == target {
		return v, nil
	}

	switch t {
	case ValueTypeInteger:
		switch {
		case rv.CanInt():
			return int(rv.Int()), nil
		case rv.CanUint() && rv.Uint() <= math.MaxInt64:
			return int(rv.Uint()), nil
		case rv.CanFloat():
			if f := rv.Float(); f == math.Trunc(f) && f >= math.MinInt64 && f < math.Exp2(63) {
				return int(f), nil
			}
		}
	case ValueTypeDouble:
		switch {
		case rv.CanInt():
			return float64(rv.Int()), nil
		case rv.CanUint():
			return float64(rv.Uint()), nil
		case rv.CanFloat():
			return rv.Float(), nil
		}
	case ValueTypeDate:
		if str, ok := v.(string); ok {
			for _, layout := range dateLayouts {
				if d, err := time.Parse(layout, str); err == nil {
					return d, nil
				}
			}
		}
	}

	if rv.Kind() == target.Kind() && rv.Type().ConvertibleTo(target) {
		return rv.Convert(target).Interface(), nil
	}
	return nil, fmt.Errorf("cannot use %T as %s: %w", v, t, ErrInvalidValue)
}

// ParseValueType looks up a value type by name, ignoring case
func ParseValueType(name string) (ValueType, bool) {
	return parseEnum(name, valueTypes)
}

// EvaluationMode determines how an input entry is evaluated against its input
type EvaluationMode string

const (
	// EvaluationModeBoolean requires every non-empty entry to evaluate to a boolean.
	// The rule matches when all of its entries do.
	EvaluationModeBoolean EvaluationMode = "BOOLEAN"
	// EvaluationModeInputComparison compares the entry result with the input value,
	// so an entry may evaluate to any literal including a collection.
	EvaluationModeInputComparison EvaluationMode = "INPUT_COMPARISON"
)

var evaluationModes = []EvaluationMode{EvaluationModeBoolean, EvaluationModeInputComparison}

// EvaluationModes returns every supported evaluation mode
func EvaluationModes() []EvaluationMode {
	return append([]EvaluationMode(nil), evaluationModes...)
}

// Valid reports whether m is one of the known evaluation modes
func (m EvaluationMode) Valid() bool { return isKnown(m, evaluationModes) }

func (m EvaluationMode) String() string { return string(m) }

// ParseEvaluationMode looks up an evaluation mode by name, ignoring case
func ParseEvaluationMode(name string) (EvaluationMode, bool) {
	return parseEnum(name, evaluationModes)
}

// HitPolicy defines how the engine builds a result from matching rules
type HitPolicy string

const (
	// HitPolicyUnique allows at most one matching rule
	HitPolicyUnique HitPolicy = "UNIQUE"
	// HitPolicyFirst evaluates rules top-down and uses the first match
	HitPolicyFirst HitPolicy = "FIRST"
	// HitPolicyAny uses any single matching rule
	HitPolicyAny HitPolicy = "ANY"
	// HitPolicyCollect uses every matching rule
	HitPolicyCollect     HitPolicy = "COLLECT"
	HitPolicyPriority    HitPolicy = "PRIORITY"
	HitPolicyRuleOrder   HitPolicy = "RULE_ORDER"
	HitPolicyOutputOrder HitPolicy = "OUTPUT_ORDER"
)

var hitPolicies = []HitPolicy{
	HitPolicyUnique,
	HitPolicyFirst,
	HitPolicyAny,
	HitPolicyCollect,
	HitPolicyPriority,
	HitPolicyRuleOrder,
	HitPolicyOutputOrder,
}

// HitPolicies returns every supported hit policy
func HitPolicies() []HitPolicy {
	return append([]HitPolicy(nil), hitPolicies...)
}

// Valid reports whether p is one of the known hit policies
func (p HitPolicy) Valid() bool { return isKnown(p, hitPolicies) }

func (p HitPolicy) String() string { return string(p) }

// ParseHitPolicy looks up a hit policy by name, ignoring case
func ParseHitPolicy(name string) (HitPolicy, bool) {
	return parseEnum(name, hitPolicies)
}

func isKnown[T ~string](v T, values []T) bool {
	for _, known := range values {
		if v == known {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](name string, values []T) (T, bool) {
	name = strings.TrimSpace(name)
	for _, v := range values {
		if strings.EqualFold(string(v), name) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
