package contact

import "errors"

const (
	// SuccessMessage is shown to the visitor after any successful delivery.
	SuccessMessage = "Message sent successfully! I will get back to you soon."

	// DefaultFailureMessage is shown when no channel supplied a better one.
	DefaultFailureMessage = "Failed to send message. Please try again or contact me directly via email."
)

var (
	// ErrPrimaryChannelUnavailable marks a primary relay error that was
	// discarded in favour of the fallback endpoint.
	ErrPrimaryChannelUnavailable = errors.New("contact: primary channel unavailable")

	// ErrSubmitting is returned when a form already has a submission in flight.
	ErrSubmitting = errors.New("contact: submission already in progress")
)

// DeliveryError is a failure surfaced to the visitor. Message is safe to show.
type DeliveryError struct {
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	return e.Message
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
