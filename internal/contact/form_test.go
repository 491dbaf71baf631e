package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starfolio/internal/model"
)

// blockingDeliverer records the form's submitting flag while it runs and
// waits until released.
type blockingDeliverer struct {
	form    *Form
	started chan struct{}
	release chan struct{}
	err     error
	seen    []bool
}

func (b *blockingDeliverer) Deliver(ctx context.Context, s model.Submission) (Delivery, error) {
	b.seen = append(b.seen, b.form.Submitting())
	close(b.started)
	<-b.release
	b.seen = append(b.seen, b.form.Submitting())
	return Delivery{Channel: "fake"}, b.err
}

func TestFormSubmittingFlagSpansDelivery(t *testing.T) {
	for _, deliverErr := range []error{nil, &DeliveryError{Message: "quota exceeded"}} {
		b := &blockingDeliverer{started: make(chan struct{}), release: make(chan struct{}), err: deliverErr}
		f := NewForm(b)
		b.form = f

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = f.Submit(context.Background(), testSubmission())
		}()

		<-b.started
		assert.True(t, f.Submitting())
		close(b.release)
		<-done

		assert.Equal(t, []bool{true, true}, b.seen)
		assert.False(t, f.Submitting())
	}
}

func TestFormRejectsConcurrentSubmit(t *testing.T) {
	b := &blockingDeliverer{started: make(chan struct{}), release: make(chan struct{})}
	f := NewForm(b)
	b.form = f

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(context.Background(), testSubmission())
	}()
	<-b.started

	st, err := f.Submit(context.Background(), testSubmission())
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.Equal(t, StatusError, st.Kind)

	close(b.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first submission did not finish")
	}
	assert.Len(t, b.seen, 2)
}

func TestFormSubmitOutcomes(t *testing.T) {
	cases := []struct {
		name       string
		primary    *fakeChannel
		fallback   *fakeFallback
		wantKind   StatusKind
		wantMsg    string
		wantValues model.Submission
	}{
		{
			name:       "primary success",
			primary:    &fakeChannel{sent: true},
			fallback:   &fakeFallback{},
			wantKind:   StatusSuccess,
			wantMsg:    SuccessMessage,
			wantValues: model.Submission{},
		},
		{
			name:       "fallback success uses generic text",
			primary:    &fakeChannel{err: errNetwork},
			fallback:   &fakeFallback{outcome: Success{Message: "Message received! I'll get back to you soon."}},
			wantKind:   StatusSuccess,
			wantMsg:    SuccessMessage,
			wantValues: model.Submission{},
		},
		{
			name:       "fallback declared failure",
			primary:    &fakeChannel{err: errNetwork},
			fallback:   &fakeFallback{outcome: Failure{Message: "quota exceeded"}},
			wantKind:   StatusError,
			wantMsg:    "quota exceeded",
			wantValues: testSubmission(),
		},
		{
			name:       "fallback unreachable",
			primary:    &fakeChannel{err: errNetwork},
			fallback:   &fakeFallback{err: errors.New("dial tcp: connection refused")},
			wantKind:   StatusError,
			wantMsg:    DefaultFailureMessage,
			wantValues: testSubmission(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewForm(NewDeliverer(tc.primary, tc.fallback, discardLogger()))

			st, _ := f.Submit(context.Background(), testSubmission())

			assert.Equal(t, tc.wantKind, st.Kind)
			assert.Equal(t, tc.wantMsg, st.Message)
			assert.Equal(t, st, f.Status())
			assert.Equal(t, tc.wantValues, f.Values())
			assert.False(t, f.Submitting())
		})
	}
}

func TestFormSubmitMissingFieldsSendsNothing(t *testing.T) {
	primary := &fakeChannel{sent: true}
	f := NewForm(NewDeliverer(primary, &fakeFallback{}, discardLogger()))

	s := testSubmission()
	s.Message = " "
	st, err := f.Submit(context.Background(), s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "message")
	assert.Equal(t, StatusError, st.Kind)
	assert.Empty(t, primary.calls)
	assert.Equal(t, s, f.Values())
}

func TestFormsGetAndRelease(t *testing.T) {
	fs := NewForms(NewDeliverer(&fakeChannel{sent: true}, &fakeFallback{}, discardLogger()))

	a := fs.Get("a")
	assert.Same(t, a, fs.Get("a"))
	assert.NotSame(t, a, fs.Get("b"))
	assert.Equal(t, 2, fs.Len())

	fs.Release("a")
	assert.Equal(t, 1, fs.Len())
	assert.NotSame(t, a, fs.Get("a"))
}
