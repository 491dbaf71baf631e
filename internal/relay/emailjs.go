package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/starfolio/internal/model"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig holds the identifiers issued by EmailJS.
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string // optional access token, required when strict mode is on
	Endpoint   string
}

// EmailJS sends submissions through the EmailJS hosted relay. The template
// configured on the EmailJS side receives the submission fields as its
// parameters.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
	logger *slog.Logger
}

func NewEmailJS(cfg EmailJSConfig, client *http.Client, logger *slog.Logger) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &EmailJS{cfg: cfg, client: client, logger: logger}
}

func (e *EmailJS) Name() string {
	return "emailjs"
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, s model.Submission) (bool, error) {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: s.Fields(),
	})
	if err != nil {
		return false, fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	text := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, text)
	}

	e.logger.Info("relay: email sent", "provider", e.Name(), "response", text)
	return true, nil
}
