package contact

import (
	"strings"

	siteerrors "github.com/deltafood/delta/internal/errors"
)

// NewsletterThanks is shown once a visitor subscribes.
const NewsletterThanks = "תודה שנרשמת לניוזלטר שלנו!"

// Newsletter holds the footer subscription form state.
type Newsletter struct {
	Email      string
	Errors     *siteerrors.ValidationErrors
	Subscribed bool
}

// Subscribe validates email and marks the visitor subscribed. A repeated
// subscription is a no-op.
func (n *Newsletter) Subscribe(email string) error {
	if n.Subscribed {
		return nil
	}

	n.Email = email
	v := &siteerrors.ValidationErrors{}
	validateEmail(v, email)
	if !v.Empty() {
		n.Errors = v
		return v
	}

	n.Errors = nil
	n.Email = strings.TrimSpace(email)
	n.Subscribed = true
	return nil
}

// Message returns the thank-you text once subscribed, or "".
func (n *Newsletter) Message() string {
	if n.Subscribed {
		return NewsletterThanks
	}
	return ""
}
