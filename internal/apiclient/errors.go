package apiclient

import "fmt"

// The client maps every failure into one of four error types so handlers
// can present them distinctly: transport failures get a retry affordance,
// validation and authorization failures render inline, and not-found
// failures render the missing-resource page. Handlers match with errors.As.

// TransportError covers network-level failures: the API was unreachable or
// the connection broke mid-request.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError means the server rejected the input (or returned a body
// this client could not decode into the expected shape).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthorizationError means the server denied an action the client believed
// was permitted. Client-side permission checks are advisory; this is the
// server's authoritative no.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// NotFoundError means the requested resource id does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }
