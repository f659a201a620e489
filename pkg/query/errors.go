package query

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidArgument is returned when a constructor is given a missing or
// malformed required field.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func required(field string) error {
	return invalid("%s is required", field)
}

// isNil reports whether n is nil or a typed nil pointer held in an interface.
func isNil(n any) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Must panics if err is non-nil and returns v otherwise.
// It is intended for building fixed trees in tests and examples.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
