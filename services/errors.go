package services

// Service errors carry the detail message shown to the caller. Controllers
// translate them to HTTP statuses: ValidationError and ConflictError map to
// 400, AuthorizationError to 403, NotFoundError to 404, InternalError to 500.

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError reports an illegal state transition, naming the current
// status so the caller can see why the transition was refused.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InternalError) Unwrap() error { return e.Err }
