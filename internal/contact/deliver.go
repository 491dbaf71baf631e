// Package contact delivers contact form submissions to the site owner, first
// through a primary relay and, when that does not confirm, through the
// same-origin fallback endpoint.
package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starfolio/internal/model"
	"github.com/starfolio/internal/relay"
)

// FallbackChannelName identifies deliveries acknowledged by the fallback endpoint.
const FallbackChannelName = "fallback"

// Fallback submits the flattened fields to the secondary endpoint.
type Fallback interface {
	Submit(ctx context.Context, fields map[string]string) (Outcome, error)
}

// Delivery describes a successful attempt.
type Delivery struct {
	Channel string
}

// Deliverer tries the primary channel once and the fallback at most once.
type Deliverer struct {
	primary  relay.Channel
	fallback Fallback
	logger   *slog.Logger
}

func NewDeliverer(primary relay.Channel, fallback Fallback, logger *slog.Logger) *Deliverer {
	return &Deliverer{primary: primary, fallback: fallback, logger: logger}
}

// Deliver returns a *DeliveryError when neither channel confirmed the
// submission.
func (d *Deliverer) Deliver(ctx context.Context, s model.Submission) (Delivery, error) {
	sent, err := d.primary.Send(ctx, s)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrPrimaryChannelUnavailable, d.primary.Name(), err)
		d.logger.Warn("contact: primary channel failed, using fallback", "channel", d.primary.Name(), "err", err)
		sent = false
	}
	if sent {
		d.logger.Info("contact: delivered", "channel", d.primary.Name())
		return Delivery{Channel: d.primary.Name()}, nil
	}
	if err == nil {
		d.logger.Warn("contact: primary channel did not confirm, using fallback", "channel", d.primary.Name())
	}

	outcome, err := d.fallback.Submit(ctx, s.Fields())
	if err != nil {
		d.logger.Error("contact: fallback request failed", "err", err)
		return Delivery{}, &DeliveryError{Message: DefaultFailureMessage, Err: err}
	}

	switch o := outcome.(type) {
	case Success:
		d.logger.Info("contact: delivered", "channel", FallbackChannelName)
		return Delivery{Channel: FallbackChannelName}, nil
	case Failure:
		msg := o.Message
		if msg == "" {
			msg = DefaultFailureMessage
		}
		d.logger.Error("contact: fallback declared failure", "message", o.Message)
		return Delivery{}, &DeliveryError{Message: msg}
	default:
		return Delivery{}, &DeliveryError{Message: DefaultFailureMessage, Err: fmt.Errorf("contact: unexpected outcome %T", outcome)}
	}
}
