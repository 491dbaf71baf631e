package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/starfolio/internal/model"
)

// Demo stands in for a relay when no usable credentials are configured. It logs
// the payload, waits to mimic network latency and reports success.
type Demo struct {
	logger *slog.Logger
	delay  time.Duration
}

func NewDemo(logger *slog.Logger, delay time.Duration) *Demo {
	return &Demo{logger: logger, delay: delay}
}

func (d *Demo) Name() string {
	return "demo"
}

// Send never contacts an external service.
func (d *Demo) Send(ctx context.Context, s model.Submission) (bool, error) {
	ref := "demo-" + uuid.New().String()
	d.logger.Info("relay: demo mode, email would be sent",
		"ref", ref,
		"from_name", s.FromName,
		"reply_to", s.ReplyTo,
		"subject", s.Subject,
		"message_length", len(s.Message),
	)

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
