package apperrors

import "fmt"

// NotFoundError covers absent sessions and models. Client error, never retried.
type NotFoundError struct {
	Resource string // "session" or "model"
	ID       string
	Hint     string
}

func (e *NotFoundError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s '%s' not found. %s", e.Resource, e.ID, e.Hint)
	}
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

func SessionNotFound(id string) *NotFoundError {
	return &NotFoundError{
		Resource: "session",
		ID:       id,
		Hint:     "Create a session first using POST /api/sessions",
	}
}

func ModelNotFound(name string) *NotFoundError {
	return &NotFoundError{
		Resource: "model",
		ID:       name,
		Hint:     "Use GET /api/models to see available models",
	}
}

// ModelMismatchError carries both names so the caller can see exactly which
// binding was violated.
type ModelMismatchError struct {
	SessionModel   string
	RequestedModel string
}

func (e *ModelMismatchError) Error() string {
	return fmt.Sprintf("model mismatch: session uses '%s', but '%s' was requested", e.SessionModel, e.RequestedModel)
}

// ValidationError covers malformed client input, e.g. an uploaded document
// whose extracted text is empty.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a collaborator failure (search, extraction) that is
// surfaced to the caller rather than recovered locally.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InferenceError is terminal for a chat turn and triggers history rollback.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
