package sfmc

import (
	"errors"
	"fmt"
)

// AuthenticationError is returned when the client-credentials exchange fails
// or responds without an access token.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("authentication failed (status %d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
	default:
		return "authentication failed"
	}
}

// Unwrap returns the underlying cause.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ValidationError reports malformed builder input or a create request that
// cannot be sent. It is always raised before any network call.
type ValidationError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %v", e.Err)
	}

	return fmt.Sprintf("validation failed for %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// QueryError is returned when a REST call responds with a non-2xx status.
// Body keeps the raw error payload for diagnostics.
type QueryError struct {
	// Action names the failed call, for example "fetching rows".
	Action     string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	action := e.Action
	if action == "" {
		action = "REST request"
	}

	if e.Body == "" {
		return fmt.Sprintf("%s failed: %s", action, e.Status)
	}

	return fmt.Sprintf("%s failed: %s: %s", action, e.Status, e.Body)
}

// RemoteOperationError is returned when a SOAP response carries an
// OverallStatus other than "OK", a fault, or no response node at all.
type RemoteOperationError struct {
	Action        string
	OverallStatus string
	Detail        string
}

// Error implements the error interface.
func (e *RemoteOperationError) Error() string {
	msg := fmt.Sprintf("%s operation failed", e.Action)
	if e.OverallStatus != "" {
		msg += ": " + e.OverallStatus
	}

	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}

	return msg
}

// TransportError wraps a network level failure with the request it belongs to.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrClientIDRequired      = errors.New("client ID is required")
	ErrClientSecretRequired  = errors.New("client secret is required")
	ErrAuthEndpointRequired  = errors.New("auth endpoint is required")
	ErrRESTEndpointRequired  = errors.New("REST endpoint is required")
	ErrSOAPEndpointRequired  = errors.New("SOAP endpoint is required")
	ErrMissingAccessToken    = errors.New("response did not include an access token")
	ErrTokenExchangeRejected = errors.New("token exchange rejected")
	ErrObjectKeyRequired     = errors.New("object key is required")
	ErrColumnNameRequired    = errors.New("column name is required")
	ErrOperatorRequired      = errors.New("operator is required")
	ErrFieldsRequired        = errors.New("at least one field is required")
	ErrPrimaryKeyRequired    = errors.New("at least one field must be a primary key")
	ErrFieldNameRequired     = errors.New("field name is required")
	ErrInvalidFieldType      = errors.New("invalid field type")
	ErrRowNotFound           = errors.New("row not found")
	ErrMissingResponseNode   = errors.New("response node not found in envelope")
)

// IsAuthenticationError reports whether err is, or wraps, an AuthenticationError.
func IsAuthenticationError(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

// IsQueryError reports whether err is, or wraps, a QueryError.
func IsQueryError(err error) bool {
	queryErr := &QueryError{}

	return errors.As(err, &queryErr)
}

// IsRemoteOperationError reports whether err is, or wraps, a RemoteOperationError.
func IsRemoteOperationError(err error) bool {
	remoteErr := &RemoteOperationError{}

	return errors.As(err, &remoteErr)
}

// IsTransportError reports whether err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}
