// Package contact implements the contact and newsletter forms: field
// validation with the site's Hebrew messages, the submission status
// lifecycle, and a simulated submitter that stands in for a real endpoint.
package contact

import (
	"regexp"
	"strings"

	siteerrors "github.com/deltafood/delta/internal/errors"
)

// Field names, shared with the rendered form inputs.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// User-facing validation messages.
const (
	MsgRequired     = "שדה חובה"
	MsgInvalidPhone = "מספר טלפון לא תקין"
	MsgInvalidEmail = "כתובת אימייל לא תקינה"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9\-+()]*$`)
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// Form is the contact form input.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Value returns the raw value of a field by name.
func (f Form) Value(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldPhone:
		return f.Phone
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// Validate checks every field and returns the failures, or nil.
func (f Form) Validate() *siteerrors.ValidationErrors {
	v := &siteerrors.ValidationErrors{}

	if blank(f.Name) {
		v.Add(FieldName, siteerrors.CodeRequired, MsgRequired)
	}

	if blank(f.Phone) {
		v.Add(FieldPhone, siteerrors.CodeRequired, MsgRequired)
	} else if !ValidPhone(f.Phone) {
		v.Add(FieldPhone, siteerrors.CodeInvalidPhone, MsgInvalidPhone)
	}

	validateEmail(v, f.Email)

	if blank(f.Message) {
		v.Add(FieldMessage, siteerrors.CodeRequired, MsgRequired)
	}

	if v.Empty() {
		return nil
	}
	return v
}

// ValidPhone reports whether s only holds digits and the characters -+().
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func validateEmail(v *siteerrors.ValidationErrors, email string) {
	if blank(email) {
		v.Add(FieldEmail, siteerrors.CodeRequired, MsgRequired)
	} else if !ValidEmail(strings.TrimSpace(email)) {
		v.Add(FieldEmail, siteerrors.CodeInvalidEmail, MsgInvalidEmail)
	}
}

// blank reports a missing value. Whitespace counts as a value; the phone
// and email patterns reject it on their own.
func blank(s string) bool {
	return s == ""
}
