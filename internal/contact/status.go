package contact

import (
	siteerrors "github.com/deltafood/delta/internal/errors"
)

// Status is the submission state of the contact form.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

// String returns the status name used in data attributes and logs.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// SubmitLabel is the text of the submit button in this status.
func (s Status) SubmitLabel() string {
	switch s {
	case StatusPending:
		return "שולח..."
	case StatusSuccess:
		return "נשלח בהצלחה"
	case StatusError:
		return "נסה שוב"
	default:
		return "שלח הודעה"
	}
}

// Banner is the dismissible message shown above the form, or "".
func (s Status) Banner() string {
	switch s {
	case StatusSuccess:
		return "ההודעה נשלחה בהצלחה! נחזור אליך בהקדם."
	case StatusError:
		return "אירעה שגיאה בשליחת ההודעה. אנא נסה שוב מאוחר יותר."
	default:
		return ""
	}
}

var (
	errSubmitPending = siteerrors.NewValidationError("", siteerrors.CodeSubmitPending, "submission already in progress")
	errSubmitDone    = siteerrors.NewValidationError("", siteerrors.CodeSubmitPending, "message already sent")
)

// Controller holds the contact form state of one visitor. It is not safe
// for concurrent use; the live session serializes every call.
type Controller struct {
	Fields Form
	Errors *siteerrors.ValidationErrors
	Status Status

	// seq identifies the current outcome so a stale auto-dismiss cannot
	// clear a newer one.
	seq uint64
}

// SubmitDisabled reports whether the submit control is disabled. It stays
// disabled while a submission is in flight and while the success banner
// shows.
func (c *Controller) SubmitDisabled() bool {
	return c.Status == StatusPending || c.Status == StatusSuccess
}

// Submit records the input and validates it. A valid form moves the status
// to pending and returns nil; the caller then runs the submitter and calls
// Resolve. An invalid form leaves the status unchanged and returns the
// validation errors. Submitting while disabled is rejected.
func (c *Controller) Submit(f Form) error {
	switch c.Status {
	case StatusPending:
		return errSubmitPending
	case StatusSuccess:
		return errSubmitDone
	}

	c.Fields = f
	if verrs := f.Validate(); verrs != nil {
		c.Errors = verrs
		return verrs
	}

	c.Errors = nil
	c.Status = StatusPending
	return nil
}

// Resolve completes a pending submission. Success clears the fields;
// failure keeps them for a retry. It returns the token to pass to Dismiss
// once the banner timeout elapses, and false when nothing was pending.
func (c *Controller) Resolve(err error) (uint64, bool) {
	if c.Status != StatusPending {
		return 0, false
	}
	if err != nil {
		c.Status = StatusError
	} else {
		c.Status = StatusSuccess
		c.Fields = Form{}
	}
	c.seq++
	return c.seq, true
}

// Dismiss returns the form to idle if token still names the current
// outcome.
func (c *Controller) Dismiss(token uint64) bool {
	if token != c.seq {
		return false
	}
	if c.Status != StatusSuccess && c.Status != StatusError {
		return false
	}
	c.Status = StatusIdle
	return true
}

// FieldError returns the validation message for field, or "".
func (c *Controller) FieldError(field string) string {
	return c.Errors.Message(field)
}
