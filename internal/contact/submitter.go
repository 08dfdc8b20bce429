package contact

import (
	"context"
	"time"

	"github.com/google/uuid"

	siteerrors "github.com/deltafood/delta/internal/errors"
	"github.com/deltafood/delta/internal/logging"
)

// Submitter delivers a validated contact form. It returns the submission id.
type Submitter interface {
	Submit(ctx context.Context, f Form) (string, error)
}

// SimulatedSubmitter accepts every form after Delay. There is no real
// backend; the delay keeps the pending state observable.
type SimulatedSubmitter struct {
	Delay  time.Duration
	Logger logging.Logger

	// Reject, when set, makes every submission fail. Used to exercise the
	// error banner.
	Reject bool
}

// NewSimulatedSubmitter returns a submitter that succeeds after delay.
func NewSimulatedSubmitter(delay time.Duration, logger logging.Logger) *SimulatedSubmitter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SimulatedSubmitter{Delay: delay, Logger: logger.WithComponent("contact")}
}

// Submit waits for the configured delay or for ctx to end.
func (s *SimulatedSubmitter) Submit(ctx context.Context, f Form) (string, error) {
	id := uuid.NewString()

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			err := siteerrors.NewNetworkError(siteerrors.CodeSubmitFailed, "submission cancelled", ctx.Err())
			s.Logger.Warn(ctx, err, "Contact submission abandoned", "submission_id", id)
			return "", err
		case <-timer.C:
		}
	}

	if s.Reject {
		err := siteerrors.NewNetworkError(siteerrors.CodeSubmitFailed, "submission rejected", nil)
		s.Logger.Warn(ctx, err, "Contact submission failed", "submission_id", id)
		return "", err
	}

	s.Logger.Info(ctx, "Contact form submitted",
		"submission_id", id,
		"name", logging.SanitizeForLog(f.Name),
		"email", logging.SanitizeForLog(f.Email))
	return id, nil
}
