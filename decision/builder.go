// Package decision holds the immutable decision table model handed to the
// evaluation engine, together with the builders that assemble it field by field.
//
// Every entity is created through its builder and cannot be changed once Build
// returns. A builder can be built only once.
package decision

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is returned when a required field was never set
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidValue is returned when an enumerated field holds an unknown value
	ErrInvalidValue = errors.New("invalid value")

	// ErrAlreadyBuilt is returned by a second call to Build on the same builder
	ErrAlreadyBuilt = errors.New("only a single Build call is allowed")
)

type enum interface {
	~string
	Valid() bool
}

// buildOnce guards a builder against producing more than one product
type buildOnce struct {
	built bool
}

func (b *buildOnce) check() error {
	if b.built {
		return ErrAlreadyBuilt
	}
	return nil
}

func (b *buildOnce) done() {
	b.built = true
}

func requireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", field, ErrMissingField)
	}
	return nil
}

func requireEnum[T enum](field string, value T) error {
	if value == "" {
		return fmt.Errorf("%s: %w", field, ErrMissingField)
	}
	return optionalEnum(field, value)
}

func optionalEnum[T enum](field string, value T) error {
	if value != "" && !value.Valid() {
		return fmt.Errorf("%s %q: %w", field, string(value), ErrInvalidValue)
	}
	return nil
}

func optionalString(value string) (string, bool) {
	return value, value != ""
}
