package foundation

import "fmt"

// ProblemKind separates shape failures from rule failures.
type ProblemKind string

const (
	// KindStructural marks a field with the wrong type or nesting.
	KindStructural ProblemKind = "structural"
	// KindInvariant marks a well-shaped field that breaks a rule.
	KindInvariant ProblemKind = "invariant"
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
	Field   string      `json:"field"`
	Kind    ProblemKind `json:"kind"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   any         `json:"value,omitempty"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errors ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: errors,
	}
}

// NewStructuralError creates a shape failure for field.
func NewStructuralError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Kind:    KindStructural,
		Code:    code,
		Message: message,
	}
}

// NewInvariantError creates a rule failure for field.
func NewInvariantError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Kind:    KindInvariant,
		Code:    code,
		Message: message,
	}
}

// WithValue returns a copy of fe carrying the offending value.
func (fe FieldError) WithValue(v any) FieldError {
	fe.Value = v
	return fe
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

// ByKind returns the errors of one kind, in order.
func (vr ValidationResult) ByKind(kind ProblemKind) []FieldError {
	var out []FieldError
	for _, fe := range vr.Errors {
		if fe.Kind == kind {
			out = append(out, fe)
		}
	}
	return out
}

// ValidatorChain allows chaining multiple validators.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Validate runs all validators in the chain. Every validator runs; results accumulate.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()

	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}

	return result
}
