package mapgen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for mapping lookups done by generated code.
var (
	// ErrUnknownProperty is returned when a property has no column binding.
	ErrUnknownProperty = errors.New("mapgen: unknown property")

	// ErrUnknownColumn is returned when a column has no property binding.
	ErrUnknownColumn = errors.New("mapgen: unknown column")
)

// UnknownPropertyError represents a lookup of a property that is not
// bound to any column of the mapping.
type UnknownPropertyError struct {
	mapper   string
	property string
}

// Error returns the error string.
func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("mapgen: %s has no binding for property %q", e.mapper, e.property)
}

// Is reports whether the target error matches UnknownPropertyError.
// This allows errors.Is(err, ErrUnknownProperty) to return true.
func (e *UnknownPropertyError) Is(err error) bool {
	return err == ErrUnknownProperty
}

// Mapper returns the mapper name.
func (e *UnknownPropertyError) Mapper() string {
	return e.mapper
}

// Property returns the property that was looked up.
func (e *UnknownPropertyError) Property() string {
	return e.property
}

// NewUnknownPropertyError returns a new UnknownPropertyError.
func NewUnknownPropertyError(mapper, property string) *UnknownPropertyError {
	return &UnknownPropertyError{mapper: mapper, property: property}
}

// IsUnknownProperty returns true if the error is an UnknownPropertyError.
func IsUnknownProperty(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownPropertyError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownProperty)
}

// UnknownColumnError represents a lookup of a column that is not
// bound to any property of the mapping.
type UnknownColumnError struct {
	mapper string
	column string
}

// Error returns the error string.
func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("mapgen: %s has no binding for column %q", e.mapper, e.column)
}

// Is reports whether the target error matches UnknownColumnError.
func (e *UnknownColumnError) Is(err error) bool {
	return err == ErrUnknownColumn
}

// Column returns the column that was looked up.
func (e *UnknownColumnError) Column() string {
	return e.column
}

// NewUnknownColumnError returns a new UnknownColumnError.
func NewUnknownColumnError(mapper, column string) *UnknownColumnError {
	return &UnknownColumnError{mapper: mapper, column: column}
}

// IsUnknownColumn returns true if the error is an UnknownColumnError.
func IsUnknownColumn(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownColumnError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownColumn)
}
