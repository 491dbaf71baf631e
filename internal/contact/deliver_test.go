package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverPrimarySuccessSkipsFallback(t *testing.T) {
	primary := &fakeChannel{sent: true}
	fallback := &fakeFallback{outcome: Success{}}

	d, err := NewDeliverer(primary, fallback, discardLogger()).Deliver(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.Equal(t, "fake", d.Channel)
	assert.Len(t, primary.calls, 1)
	assert.Empty(t, fallback.calls)
}

func TestDeliverPrimaryErrorFallsBackOnceWithSameFields(t *testing.T) {
	primary := &fakeChannel{err: errNetwork}
	fallback := &fakeFallback{outcome: Success{Message: "Message received! I'll get back to you soon."}}

	d, err := NewDeliverer(primary, fallback, discardLogger()).Deliver(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.Equal(t, FallbackChannelName, d.Channel)
	require.Len(t, fallback.calls, 1)
	assert.Equal(t, map[string]string{
		"from_name": "A",
		"reply_to":  "a@x.com",
		"subject":   "S",
		"message":   "M",
	}, fallback.calls[0])
}

func TestDeliverPrimaryNotConfirmedFallsBack(t *testing.T) {
	primary := &fakeChannel{sent: false}
	fallback := &fakeFallback{outcome: Success{}}

	_, err := NewDeliverer(primary, fallback, discardLogger()).Deliver(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.Len(t, fallback.calls, 1)
}

func TestDeliverFallbackFailureMessages(t *testing.T) {
	cases := []struct {
		name    string
		outcome Outcome
		err     error
		wantMsg string
	}{
		{"endpoint message", Failure{Message: "quota exceeded"}, nil, "quota exceeded"},
		{"empty message", Failure{}, nil, DefaultFailureMessage},
		{"transport error", nil, errors.New("connection refused"), DefaultFailureMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			primary := &fakeChannel{err: errNetwork}
			fallback := &fakeFallback{outcome: tc.outcome, err: tc.err}

			_, err := NewDeliverer(primary, fallback, discardLogger()).Deliver(context.Background(), testSubmission())

			var derr *DeliveryError
			require.ErrorAs(t, err, &derr)
			assert.NotEmpty(t, derr.Message)
			assert.Equal(t, tc.wantMsg, err.Error())
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
			assert.Len(t, fallback.calls, 1)
		})
	}
}

func TestDeliverPrimaryErrorIsNotSurfaced(t *testing.T) {
	primary := &fakeChannel{err: errNetwork}
	fallback := &fakeFallback{outcome: Failure{Message: "quota exceeded"}}

	_, err := NewDeliverer(primary, fallback, discardLogger()).Deliver(context.Background(), testSubmission())

	require.Error(t, err)
	assert.NotErrorIs(t, err, errNetwork)
	assert.NotErrorIs(t, err, ErrPrimaryChannelUnavailable)
}
