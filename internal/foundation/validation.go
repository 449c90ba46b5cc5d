// Package foundation holds small building blocks shared by the other
// packages.
package foundation

import (
	"fmt"
	"strings"

	"github.com/johnhooks/highlighter/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: errs,
	}
}

// NewFieldError creates a field error carrying the offending value.
func NewFieldError(field, code string, value any, format string, args ...any) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	}
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}

	var allErrors []FieldError
	allErrors = append(allErrors, vr.Errors...)
	allErrors = append(allErrors, other.Errors...)

	return Invalid(allErrors...)
}

// ToError converts a validation result to a validation error if invalid. The
// failing field names are attached as context.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	fields := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		messages = append(messages, err.Error())
		if err.Field != "" {
			fields = append(fields, err.Field)
		}
	}

	return errors.ValidationError(strings.Join(messages, "; ")).
		WithContext("fields", strings.Join(fields, ",")).
		Build()
}

// ValidatorChain allows chaining multiple validators.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()

	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}

	return result
}

// Field lifts a validator for one field of T into a validator for T.
func Field[T, F any](get func(T) F, v Validator[F]) Validator[T] {
	return func(value T) ValidationResult {
		return v(get(value))
	}
}

// InSet validates that a value is a key of allowed. Large sets are not
// listed in the message.
func InSet[T comparable, V any](field string, allowed map[T]V) Validator[T] {
	return func(value T) ValidationResult {
		if _, ok := allowed[value]; !ok {
			return Invalid(NewFieldError(field, "unknown", value, "unknown value %v", value))
		}
		return Valid()
	}
}

// NonNegative validates that an integer is zero or greater.
func NonNegative(field string) Validator[int] {
	return func(value int) ValidationResult {
		if value < 0 {
			return Invalid(NewFieldError(field, "negative", value, "must not be negative, got %d", value))
		}
		return Valid()
	}
}
