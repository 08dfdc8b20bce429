// Package errors defines the structured error types shared across the site:
// categorized SiteErrors for configuration, content and transport failures,
// and ValidationErrors for per-field form feedback.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeContent    ErrorType = "content"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes used across packages.
const (
	CodeRequired        = "ERR_REQUIRED"
	CodeInvalidPhone    = "ERR_INVALID_PHONE"
	CodeInvalidEmail    = "ERR_INVALID_EMAIL"
	CodeSubmitPending   = "ERR_SUBMIT_PENDING"
	CodeSubmitFailed    = "ERR_SUBMIT_FAILED"
	CodeContentLoad     = "ERR_CONTENT_LOAD"
	CodeContentInvalid  = "ERR_CONTENT_INVALID"
	CodeUnknownSection  = "ERR_UNKNOWN_SECTION"
	CodeUnknownEvent    = "ERR_UNKNOWN_EVENT"
	CodeInvalidPayload  = "ERR_INVALID_PAYLOAD"
	CodeSessionClosed   = "ERR_SESSION_CLOSED"
	CodeConfigInvalid   = "ERR_CONFIG_INVALID"
	CodeOriginForbidden = "ERR_ORIGIN_FORBIDDEN"
)

// SiteError is a structured error type with context.
type SiteError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	Field       string
	Recoverable bool
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}
	if e.Field != "" {
		parts = append(parts, "field:"+e.Field)
	}

	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *SiteError) Is(target error) bool {
	var t *SiteError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *SiteError) WithContext(key string, value interface{}) *SiteError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *SiteError) WithComponent(component string) *SiteError {
	e.Component = component

	return e
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, code, message string) *SiteError {
	return &SiteError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Field:       field,
		Recoverable: true,
	}
}

// NewContentError creates a content catalog error.
func NewContentError(code, message string, cause error) *SiteError {
	return &SiteError{
		Type:        ErrorTypeContent,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *SiteError {
	return &SiteError{
		Type:    ErrorTypeConfig,
		Code:    CodeConfigInvalid,
		Message: message,
		Cause:   cause,
	}
}

// NewNetworkError creates a transport error.
func NewNetworkError(code, message string, cause error) *SiteError {
	return &SiteError{
		Type:        ErrorTypeNetwork,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *SiteError {
	return &SiteError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err is a SiteError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var se *SiteError
	if errors.As(err, &se) {
		return se.Type == errorType
	}
	return false
}

// ValidationErrors collects field-level validation failures. At most one
// error is kept per field; the first one added wins.
type ValidationErrors struct {
	errs []*SiteError
}

// Add records a failure for field unless one is already present.
func (v *ValidationErrors) Add(field, code, message string) {
	if v.Has(field) {
		return
	}
	v.errs = append(v.errs, NewValidationError(field, code, message))
}

// Has reports whether field has a recorded failure.
func (v *ValidationErrors) Has(field string) bool {
	return v.For(field) != nil
}

// For returns the failure recorded for field, or nil.
func (v *ValidationErrors) For(field string) *SiteError {
	if v == nil {
		return nil
	}
	for _, e := range v.errs {
		if e.Field == field {
			return e
		}
	}
	return nil
}

// Message returns the user-facing message for field, or "".
func (v *ValidationErrors) Message(field string) string {
	if e := v.For(field); e != nil {
		return e.Message
	}
	return ""
}

// Empty reports whether no failure was recorded.
func (v *ValidationErrors) Empty() bool {
	return v == nil || len(v.errs) == 0
}

// Fields returns the failing field names in sorted order.
func (v *ValidationErrors) Fields() []string {
	if v == nil {
		return nil
	}
	fields := make([]string, 0, len(v.errs))
	for _, e := range v.errs {
		fields = append(fields, e.Field)
	}
	sort.Strings(fields)
	return fields
}

// Err returns v as an error, or nil when empty.
func (v *ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.errs))
	for _, e := range v.errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (v *ValidationErrors) Unwrap() []error {
	out := make([]error, len(v.errs))
	for i, e := range v.errs {
		out[i] = e
	}
	return out
}
