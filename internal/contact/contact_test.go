package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/deltafood/delta/internal/errors"
)

func validForm() Form {
	return Form{
		Name:    "דנה כהן",
		Phone:   "050-1234567",
		Email:   "dana@example.co.il",
		Message: "אשמח לשמוע על אירוע פרטי",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		want   map[string]string
	}{
		{
			name:   "valid form",
			mutate: func(*Form) {},
			want:   nil,
		},
		{
			name:   "all empty",
			mutate: func(f *Form) { *f = Form{} },
			want: map[string]string{
				FieldName:    MsgRequired,
				FieldPhone:   MsgRequired,
				FieldEmail:   MsgRequired,
				FieldMessage: MsgRequired,
			},
		},
		{
			name:   "whitespace only name and message",
			mutate: func(f *Form) { f.Name, f.Message = "   ", "\n" },
			want:   nil,
		},
		{
			name:   "whitespace only phone",
			mutate: func(f *Form) { f.Phone = "   " },
			want:   map[string]string{FieldPhone: MsgInvalidPhone},
		},
		{
			name:   "whitespace only email",
			mutate: func(f *Form) { f.Email = "   " },
			want:   map[string]string{FieldEmail: MsgInvalidEmail},
		},
		{
			name:   "phone with letters",
			mutate: func(f *Form) { f.Phone = "abc123" },
			want:   map[string]string{FieldPhone: MsgInvalidPhone},
		},
		{
			name:   "international phone",
			mutate: func(f *Form) { f.Phone = "+972(3)555-1234" },
			want:   nil,
		},
		{
			name:   "email without domain",
			mutate: func(f *Form) { f.Email = "dana@" },
			want:   map[string]string{FieldEmail: MsgInvalidEmail},
		},
		{
			name:   "email with short tld",
			mutate: func(f *Form) { f.Email = "dana@example.c" },
			want:   map[string]string{FieldEmail: MsgInvalidEmail},
		},
		{
			name:   "uppercase email",
			mutate: func(f *Form) { f.Email = "DANA@EXAMPLE.COM" },
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			got := f.Validate()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Len(t, got.Fields(), len(tt.want))
			for field, msg := range tt.want {
				assert.Equal(t, msg, got.Message(field), field)
			}
		})
	}
}

func TestControllerLifecycle(t *testing.T) {
	var c Controller
	assert.Equal(t, StatusIdle, c.Status)
	assert.Equal(t, "שלח הודעה", c.Status.SubmitLabel())

	require.NoError(t, c.Submit(validForm()))
	assert.Equal(t, StatusPending, c.Status)
	assert.True(t, c.SubmitDisabled())

	err := c.Submit(validForm())
	assert.True(t, errors.Is(err, errSubmitPending), "double submit while pending is rejected")

	token, ok := c.Resolve(nil)
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, c.Status)
	assert.Equal(t, Form{}, c.Fields, "success clears the fields")
	assert.Equal(t, "נשלח בהצלחה", c.Status.SubmitLabel())
	assert.True(t, c.SubmitDisabled())

	assert.True(t, c.Dismiss(token))
	assert.Equal(t, StatusIdle, c.Status)
	assert.False(t, c.SubmitDisabled())
}

func TestControllerFailureKeepsFields(t *testing.T) {
	var c Controller
	f := validForm()
	require.NoError(t, c.Submit(f))

	_, ok := c.Resolve(errors.New("boom"))
	require.True(t, ok)
	assert.Equal(t, StatusError, c.Status)
	assert.Equal(t, f, c.Fields)
	assert.Equal(t, "נסה שוב", c.Status.SubmitLabel())
	assert.False(t, c.SubmitDisabled(), "user may retry after an error")

	require.NoError(t, c.Submit(f))
	assert.Equal(t, StatusPending, c.Status)
}

func TestControllerInvalidSubmit(t *testing.T) {
	var c Controller
	err := c.Submit(Form{Name: "x"})

	require.Error(t, err)
	assert.True(t, siteerrors.IsType(err, siteerrors.ErrorTypeValidation))
	assert.Equal(t, StatusIdle, c.Status, "invalid input does not change status")
	assert.Equal(t, MsgRequired, c.FieldError(FieldPhone))
	assert.Empty(t, c.FieldError(FieldName))

	require.NoError(t, c.Submit(validForm()))
	assert.Empty(t, c.FieldError(FieldPhone), "errors clear on a valid submit")
}

func TestStaleDismissIgnored(t *testing.T) {
	var c Controller
	require.NoError(t, c.Submit(validForm()))
	first, _ := c.Resolve(errors.New("down"))

	require.NoError(t, c.Submit(validForm()))
	assert.False(t, c.Dismiss(first), "dismiss must not interrupt a pending retry")
	assert.Equal(t, StatusPending, c.Status)

	second, _ := c.Resolve(nil)
	assert.False(t, c.Dismiss(first))
	assert.Equal(t, StatusSuccess, c.Status)
	assert.True(t, c.Dismiss(second))
}

func TestResolveWithoutPending(t *testing.T) {
	var c Controller
	_, ok := c.Resolve(nil)
	assert.False(t, ok)
	assert.Equal(t, StatusIdle, c.Status)
}

func TestSimulatedSubmitter(t *testing.T) {
	s := NewSimulatedSubmitter(5*time.Millisecond, nil)
	id, err := s.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Len(t, id, 36)

	s.Reject = true
	_, err = s.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.True(t, siteerrors.IsType(err, siteerrors.ErrorTypeNetwork))
}

func TestSimulatedSubmitterCancelled(t *testing.T) {
	s := NewSimulatedSubmitter(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewsletter(t *testing.T) {
	var n Newsletter
	err := n.Subscribe("not-an-email")
	require.Error(t, err)
	assert.Equal(t, MsgInvalidEmail, n.Errors.Message(FieldEmail))
	assert.Empty(t, n.Message())

	require.NoError(t, n.Subscribe(" guest@example.com "))
	assert.True(t, n.Subscribed)
	assert.Equal(t, "guest@example.com", n.Email)
	assert.Equal(t, NewsletterThanks, n.Message())
	assert.Nil(t, n.Errors)
}
