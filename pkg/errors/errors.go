package errors

import "fmt"

// Error types for the football API
var (
	ErrInvalidCredentialFormat = &ServiceError{
		Code:    "INVALID_CREDENTIAL_FORMAT",
		Message: "Invalid email or password format",
		Status:  400,
	}

	ErrDuplicateUser = &ServiceError{
		Code:    "DUPLICATE_USER",
		Message: "The email is already registered.",
		Status:  400,
	}

	ErrBadCredentials = &ServiceError{
		Code:    "BAD_CREDENTIALS",
		Message: "Invalid email or password",
		Status:  403,
	}

	// ErrForbidden covers both unauthenticated requests to protected routes
	// and authenticated requests lacking the required role. The API always
	// answers 403, never 401.
	ErrForbidden = &ServiceError{
		Code:    "FORBIDDEN",
		Message: "Access denied",
		Status:  403,
	}

	// ErrInvalidToken is reserved for malformed bearer tokens, which abort
	// the request instead of downgrading to anonymous.
	ErrInvalidToken = &ServiceError{
		Code:    "INVALID_TOKEN",
		Message: "Malformed bearer token",
		Status:  500,
	}

	ErrNotFound = &ServiceError{
		Code:    "NOT_FOUND",
		Message: "Resource not found",
		Status:  404,
	}

	ErrRateLimitExceeded = &ServiceError{
		Code:    "RATE_LIMIT_EXCEEDED",
		Message: "Rate limit exceeded",
		Status:  429,
	}

	ErrUpstreamUnavailable = &ServiceError{
		Code:    "UPSTREAM_UNAVAILABLE",
		Message: "Scraper service is unavailable",
		Status:  503,
	}

	// ErrInvalidRequest is used for syntactically invalid requests (missing or
	// malformed parameters) where a 400 response is appropriate.
	ErrInvalidRequest = &ServiceError{
		Code:    "INVALID_REQUEST",
		Message: "Invalid request",
		Status:  400,
	}

	ErrInternalServer = &ServiceError{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
		Status:  500,
	}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Wrap wraps an error with a ServiceError
func Wrap(err error, serviceErr *ServiceError) *ServiceError {
	return &ServiceError{
		Code:    serviceErr.Code,
		Message: serviceErr.Message,
		Status:  serviceErr.Status,
		Err:     err,
	}
}

// WithMessage returns a copy of serviceErr carrying a request-specific
// message. Validation errors keep their original text verbatim at the HTTP
// boundary, so the message set here is exactly what the caller sees.
func WithMessage(serviceErr *ServiceError, message string) *ServiceError {
	return &ServiceError{
		Code:    serviceErr.Code,
		Message: message,
		Status:  serviceErr.Status,
	}
}
