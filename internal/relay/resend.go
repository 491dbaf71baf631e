package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/starfolio/internal/model"
)

// ResendConfig configures delivery through the Resend API.
type ResendConfig struct {
	APIKey   string
	From     string
	To       string
	Template string
}

// Resend sends submissions to the owner's inbox via Resend, with the visitor's
// address as Reply-To.
type Resend struct {
	client *resend.Client
	cfg    ResendConfig
	logger *slog.Logger
}

func NewResend(cfg ResendConfig, logger *slog.Logger) *Resend {
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	return &Resend{
		client: resend.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger,
	}
}

func (r *Resend) Name() string {
	return "resend"
}

func (r *Resend) Send(ctx context.Context, s model.Submission) (bool, error) {
	sent, err := r.client.Emails.SendWithContext(ctx, r.request(s))
	if err != nil {
		return false, fmt.Errorf("resend: send failed: %w", err)
	}

	r.logger.Info("relay: email sent", "provider", r.Name(), "id", sent.Id)
	return true, nil
}

func (r *Resend) request(s model.Submission) *resend.SendEmailRequest {
	return &resend.SendEmailRequest{
		From:    r.cfg.From,
		To:      []string{r.cfg.To},
		ReplyTo: headerSafe(s.ReplyTo),
		Subject: headerSafe(subjectLine(s)),
		Text:    RenderTemplate(r.cfg.Template, s.Fields()),
	}
}
