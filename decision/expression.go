package decision

import "reflect"

// Expression is a literal value or a snippet to be evaluated by the engine,
// tagged with the language it is written in
type Expression struct {
	value any
	typ   ExpressionType
}

// NewExpression creates an expression. Either argument may be left at its zero value.
// Slice and map values are copied.
func NewExpression(value any, typ ExpressionType) Expression {
	return Expression{value: copyValue(value), typ: typ}
}

// LiteralExpression wraps value as a LITERAL expression. A nil value is an
// explicit null literal.
func LiteralExpression(value any) Expression {
	return Expression{value: copyValue(value), typ: ExpressionTypeLiteral}
}

// Value returns the literal or expression source, nil when none was given.
// Slice and map values are returned as copies.
func (e Expression) Value() any { return copyValue(e.value) }

// Type returns the expression language, empty when none was given
func (e Expression) Type() ExpressionType { return e.typ }

// HasValue reports whether the expression carries a value
func (e Expression) HasValue() bool { return e.value != nil }

// WithDefaultType returns a copy of e whose type is typ when e has no type of its own
func (e Expression) WithDefaultType(typ ExpressionType) Expression {
	if e.typ == "" {
		e.typ = typ
	}
	return e
}

func (e Expression) validate(field string) error {
	return optionalEnum(field+".type", e.typ)
}

// copyValue returns a shallow copy of slice and map values. Other values,
// arrays included, are already copied on assignment.
func copyValue(value any) any {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return value
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(c, v)
		return c.Interface()
	case reflect.Map:
		if v.IsNil() {
			return value
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), iter.Value())
		}
		return c.Interface()
	default:
		return value
	}
}
