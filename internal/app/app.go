package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starfolio/internal/config"
	"github.com/starfolio/internal/contact"
	"github.com/starfolio/internal/handler"
	"github.com/starfolio/internal/relay"
)

type App struct {
	config  *config.Config
	logger  *slog.Logger
	primary relay.Channel
	forms   *contact.Forms
	profile handler.Profile
}

func New(args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)
	return newApp(cfg, logger, newPrimary(cfg, logger)), nil
}

func newApp(cfg *config.Config, logger *slog.Logger, primary relay.Channel) *App {
	fallback := contact.NewAPIClient(cfg.ContactAPIURL, nil)
	deliverer := contact.NewDeliverer(primary, fallback, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		primary: primary,
		forms:   contact.NewForms(deliverer),
		profile: newProfile(cfg),
	}
}

// newPrimary picks the primary relay. Demo mode is decided once, by config.
func newPrimary(cfg *config.Config, logger *slog.Logger) relay.Channel {
	if cfg.DemoMode {
		logger.Info("relay: demo mode active, no valid credentials found", "provider", cfg.Provider)
		return relay.NewDemo(logger, cfg.DemoDelay)
	}

	logger.Info("relay: initialized", "provider", cfg.Provider)
	switch cfg.Provider {
	case config.ProviderResend:
		return relay.NewResend(relay.ResendConfig{
			APIKey:   cfg.ResendAPIKey,
			From:     formatFrom(cfg.FromName, cfg.FromAddress),
			To:       cfg.OwnerEmail,
			Template: cfg.MessageTemplate,
		}, logger)
	case config.ProviderSMTP:
		return relay.NewSMTP(relay.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			User:        cfg.SMTPUser,
			Pass:        cfg.SMTPPass,
			FromAddress: cfg.FromAddress,
			FromName:    cfg.FromName,
			To:          cfg.OwnerEmail,
			Template:    cfg.MessageTemplate,
			Timeout:     cfg.SMTPTimeout,
		}, logger)
	default:
		return relay.NewEmailJS(relay.EmailJSConfig{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
			Endpoint:   cfg.EmailJSEndpoint,
		}, nil, logger)
	}
}

func newProfile(cfg *config.Config) handler.Profile {
	p := handler.Profile{Name: cfg.ProfileName}

	if cfg.OwnerEmail != "" {
		p.Contact = append(p.Contact, handler.Link{Label: "Email", Value: cfg.OwnerEmail, Href: "mailto:" + cfg.OwnerEmail})
	}
	if cfg.ProfilePhone != "" {
		p.Contact = append(p.Contact, handler.Link{Label: "Phone", Value: cfg.ProfilePhone, Href: "tel:" + cfg.ProfilePhone})
	}
	if cfg.ProfileLocation != "" {
		p.Contact = append(p.Contact, handler.Link{Label: "Location", Value: cfg.ProfileLocation, Href: "#"})
	}

	for _, l := range []handler.Link{
		{Label: "GitHub", Href: cfg.GitHubURL},
		{Label: "LinkedIn", Href: cfg.LinkedInURL},
		{Label: "Kaggle", Href: cfg.KaggleURL},
	} {
		if l.Href != "" {
			p.Social = append(p.Social, l)
		}
	}
	return p
}

func formatFrom(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done() // Wait for OS signal or listener failure

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo

	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
