package relay

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/starfolio/internal/model"
)

// SMTPConfig configures direct SMTP delivery.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Pass        string
	FromAddress string
	FromName    string
	To          string
	Template    string
	Timeout     time.Duration // bounds the whole SMTP exchange
}

// DefaultSMTPTimeout applies when SMTPConfig.Timeout is zero.
const DefaultSMTPTimeout = 15 * time.Second

// SMTP sends submissions to the owner through an SMTP server.
type SMTP struct {
	cfg    SMTPConfig
	logger *slog.Logger
	sendFn func(ctx context.Context, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig, logger *slog.Logger) *SMTP {
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSMTPTimeout
	}
	m := &SMTP{cfg: cfg, logger: logger}
	m.sendFn = m.dial
	return m
}

func (m *SMTP) Name() string {
	return "smtp"
}

// Send gives up once the configured timeout or ctx's deadline passes,
// whichever comes first.
func (m *SMTP) Send(ctx context.Context, s model.Submission) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	msg := m.formatMessage(s)
	if err := m.sendFn(ctx, m.cfg.FromAddress, []string{m.cfg.To}, []byte(msg)); err != nil {
		return false, fmt.Errorf("smtp: send failed: %w", err)
	}

	m.logger.Info("relay: email sent", "provider", m.Name(), "to", m.cfg.To)
	return true, nil
}

// dial runs one SMTP session under a single deadline. It mirrors
// smtp.SendMail, which offers no way to bound a stalled server.
func (m *SMTP) dial(ctx context.Context, from string, to []string, msg []byte) error {
	deadline := time.Now().Add(m.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	dialer := &net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}
	if m.cfg.User != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func (m *SMTP) formatMessage(s model.Submission) string {
	from := m.cfg.FromAddress
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromAddress)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", m.cfg.To)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", headerSafe(s.ReplyTo))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerSafe(subjectLine(s)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(RenderTemplate(m.cfg.Template, s.Fields()))
	return b.String()
}

// subjectLine prefixes the visitor's subject so owner-side filters can match.
func subjectLine(s model.Submission) string {
	return "[Portfolio] " + s.Subject
}

// headerSafe strips CR and LF so visitor input cannot inject headers.
func headerSafe(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
