package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteErrorFormatting(t *testing.T) {
	cause := errors.New("file not found")
	err := NewContentError(CodeContentLoad, "failed to load catalog", cause).WithComponent("content")

	assert.Equal(t, "[ERR_CONTENT_LOAD] component:content failed to load catalog: file not found", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.False(t, err.Recoverable)
}

func TestSiteErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNetworkError(CodeSubmitFailed, "submit failed", nil))

	assert.True(t, errors.Is(err, &SiteError{Type: ErrorTypeNetwork, Code: CodeSubmitFailed}))
	assert.False(t, errors.Is(err, &SiteError{Type: ErrorTypeNetwork, Code: CodeSubmitPending}))
	assert.True(t, IsType(err, ErrorTypeNetwork))
	assert.False(t, IsType(err, ErrorTypeContent))
}

func TestWithContext(t *testing.T) {
	err := NewInternalError(CodeUnknownEvent, "unknown event", nil).
		WithContext("event", "foo").
		WithContext("session", "s1")

	assert.Equal(t, "foo", err.Context["event"])
	assert.Equal(t, "s1", err.Context["session"])
}

func TestValidationErrors(t *testing.T) {
	var v ValidationErrors
	assert.True(t, v.Empty())
	assert.NoError(t, v.Err())

	v.Add("phone", CodeRequired, "שדה חובה")
	v.Add("phone", CodeInvalidPhone, "מספר טלפון לא תקין")
	v.Add("email", CodeInvalidEmail, "כתובת אימייל לא תקינה")

	require.Error(t, v.Err())
	assert.Equal(t, "שדה חובה", v.Message("phone"), "first error per field wins")
	assert.Equal(t, "כתובת אימייל לא תקינה", v.Message("email"))
	assert.Equal(t, "", v.Message("name"))
	assert.Equal(t, []string{"email", "phone"}, v.Fields())

	assert.True(t, errors.Is(v.Err(), &SiteError{Type: ErrorTypeValidation, Code: CodeInvalidEmail}))

	var se *SiteError
	require.True(t, errors.As(v.Err(), &se))
	assert.Equal(t, ErrorTypeValidation, se.Type)
}

func TestNilValidationErrors(t *testing.T) {
	var v *ValidationErrors
	assert.True(t, v.Empty())
	assert.Nil(t, v.For("name"))
	assert.Nil(t, v.Fields())
}
