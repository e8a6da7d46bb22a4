package models

import "fmt"

// Domain error taxonomy. Workflow entry points return these as values so the
// handler layer can map them to HTTP codes with errors.As instead of matching
// message substrings.

// ValidationError reports a bad or missing input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// InvalidTransition reports a workflow transition the lifecycle does not
// permit, naming the current and requested state.
type InvalidTransition struct {
	Entity EntityType `json:"entity"`
	From   string     `json:"from"`
	To     string     `json:"to"`
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s", e.Entity, e.From, e.To)
}

// AccessDenied reports an authorization failure. The message is deliberately
// generic so callers cannot probe for resource existence.
type AccessDenied struct {
	Role     Role   `json:"-"`
	Resource string `json:"-"`
	Action   string `json:"-"`
}

func (e *AccessDenied) Error() string {
	return "access denied"
}

// ExhaustedSequence reports that a reference-number counter overflowed its
// configured digit width. Callers fall back to the extended identifier format.
type ExhaustedSequence struct {
	Prefix string
	Year   int
	Width  int
}

func (e *ExhaustedSequence) Error() string {
	return fmt.Sprintf("reference sequence %s-%d exhausted %d digits", e.Prefix, e.Year, e.Width)
}

// StorageFailure reports a failed attachment upload. It is scoped to the
// individual attachment and never aborts the rest of a submission.
type StorageFailure struct {
	Object string
	Err    error
}

func (e *StorageFailure) Error() string {
	return fmt.Sprintf("storage failure for %s: %v", e.Object, e.Err)
}

func (e *StorageFailure) Unwrap() error { return e.Err }

// NotFoundError reports a missing entity lookup.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}
