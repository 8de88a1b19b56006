package engine

import (
	"fmt"
	"regexp"
)

const maxIdentifierLength = 100

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateBindingName checks that a method binding can be called by name from
// both CEL and expr expressions
func validateBindingName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("identifier cannot be empty: %w", ErrInvalidBindingName)
	}
	if len(name) > maxIdentifierLength {
		return fmt.Errorf("identifier length %d exceeds maximum of %d characters: %w",
			len(name), maxIdentifierLength, ErrInvalidBindingName)
	}

	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("%q must start with a letter or underscore, followed by letters, digits, or underscores: %w",
			name, ErrInvalidBindingName)
	}

	if isReservedKeyword(name) {
		return fmt.Errorf("cannot use reserved keyword %q as binding name: %w", name, ErrInvalidBindingName)
	}

	return nil
}

// isReservedKeyword reports whether name is a keyword, macro or builtin
// function of CEL or expr
func isReservedKeyword(name string) bool {
	return celReserved[name] || exprReserved[name]
}

var celReserved = map[string]bool{
	// Boolean and null literals
	"true":  true,
	"false": true,
	"null":  true,
	// Reserved words
	"if":        true,
	"else":      true,
	"for":       true,
	"while":     true,
	"break":     true,
	"continue":  true,
	"return":    true,
	"var":       true,
	"let":       true,
	"const":     true,
	"function":  true,
	"in":        true,
	"as":        true,
	"import":    true,
	"package":   true,
	"namespace": true,
	"loop":      true,
	"void":      true,
	// Macros
	"has":        true,
	"all":        true,
	"exists":     true,
	"exists_one": true,
	"map":        true,
	"filter":     true,
	// Standard functions and type conversions
	"size":      true,
	"matches":   true,
	"int":       true,
	"uint":      true,
	"double":    true,
	"string":    true,
	"bytes":     true,
	"bool":      true,
	"type":      true,
	"dyn":       true,
	"duration":  true,
	"timestamp": true,
}

var exprReserved = map[string]bool{
	"nil":        true,
	"not":        true,
	"and":        true,
	"or":         true,
	"contains":   true,
	"startsWith": true,
	"endsWith":   true,
	// Builtins
	"len":    true,
	"none":   true,
	"any":    true,
	"one":    true,
	"count":  true,
	"sum":    true,
	"abs":    true,
	"float":  true,
	"keys":   true,
	"values": true,
	"now":    true,
	"date":   true,
}
