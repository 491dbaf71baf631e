package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Relay providers.
const (
	ProviderEmailJS = "emailjs"
	ProviderResend  = "resend"
	ProviderSMTP    = "smtp"
)

// Placeholder values shipped in example env files. They count as unset.
var placeholders = map[string]bool{
	"your_service_id":  true,
	"your_template_id": true,
	"your_public_key":  true,
	"your_api_key":     true,
}

type Config struct {
	// Server
	Port string
	Env  string // development, production

	// Primary relay
	Provider  string
	DemoMode  bool
	DemoDelay time.Duration

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	EmailJSEndpoint   string

	ResendAPIKey string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	// SMTPTimeout bounds one SMTP session, dial included.
	SMTPTimeout time.Duration

	FromAddress     string
	FromName        string
	OwnerEmail      string
	MessageTemplate string

	// Fallback endpoint base URL, normally this server.
	ContactAPIURL string

	RateLimitPerMinute int
	SecureCookies      bool
	// TrustProxyHeaders makes X-Forwarded-For/X-Real-IP the client address.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool

	// Public profile shown beside the form
	ProfileName     string
	ProfilePhone    string
	ProfileLocation string
	GitHubURL       string
	LinkedInURL     string
	KaggleURL       string
}

// Load reads configuration from the environment (and .env, if present), with
// command-line flags taking precedence for server settings.
func Load(args []string) (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "Server port")
	fs.StringVar(&cfg.Env, "env", getEnv("ENV", "development"), "Environment (development, production)")
	fs.StringVar(&cfg.Provider, "relay", getEnv("RELAY_PROVIDER", ProviderEmailJS), "Primary relay (emailjs, resend, smtp)")

	cfg.EmailJSServiceID = getEnv("EMAILJS_SERVICE_ID", "")
	cfg.EmailJSTemplateID = getEnv("EMAILJS_TEMPLATE_ID", "")
	cfg.EmailJSPublicKey = getEnv("EMAILJS_PUBLIC_KEY", "")
	cfg.EmailJSPrivateKey = getEnv("EMAILJS_PRIVATE_KEY", "")
	cfg.EmailJSEndpoint = getEnv("EMAILJS_ENDPOINT", "")
	cfg.ResendAPIKey = getEnv("RESEND_API_KEY", "")
	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort = getEnvInt("SMTP_PORT", 587)
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPass = getEnv("SMTP_PASS", "")
	cfg.FromAddress = getEnv("FROM_ADDRESS", "")
	cfg.FromName = getEnv("FROM_NAME", "Portfolio Contact")
	cfg.OwnerEmail = getEnv("OWNER_EMAIL", "")
	cfg.MessageTemplate = getEnv("MESSAGE_TEMPLATE", "")
	cfg.ContactAPIURL = getEnv("CONTACT_API_URL", "")
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 10)
	cfg.SecureCookies = getEnv("SECURE_COOKIES", "false") == "true"
	cfg.TrustProxyHeaders = getEnv("TRUST_PROXY_HEADERS", "false") == "true"
	cfg.ProfileName = getEnv("PROFILE_NAME", "")
	cfg.ProfilePhone = getEnv("PROFILE_PHONE", "")
	cfg.ProfileLocation = getEnv("PROFILE_LOCATION", "")
	cfg.GitHubURL = getEnv("PROFILE_GITHUB_URL", "")
	cfg.LinkedInURL = getEnv("PROFILE_LINKEDIN_URL", "")
	cfg.KaggleURL = getEnv("PROFILE_KAGGLE_URL", "")

	delay, err := time.ParseDuration(getEnv("DEMO_DELAY", "800ms"))
	if err != nil {
		return nil, fmt.Errorf("DEMO_DELAY: %w", err)
	}
	cfg.DemoDelay = delay

	smtpTimeout, err := time.ParseDuration(getEnv("SMTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_TIMEOUT: %w", err)
	}
	cfg.SMTPTimeout = smtpTimeout

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ContactAPIURL == "" {
		cfg.ContactAPIURL = "http://127.0.0.1:" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.DemoMode = !cfg.hasCredentials()

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderEmailJS, ProviderResend, ProviderSMTP:
	default:
		return fmt.Errorf("RELAY_PROVIDER must be one of emailjs, resend, smtp (got %q)", c.Provider)
	}

	if c.DemoDelay < 0 {
		return fmt.Errorf("DEMO_DELAY must not be negative")
	}

	if c.SMTPTimeout < 0 {
		return fmt.Errorf("SMTP_TIMEOUT must not be negative")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1")
	}

	if !strings.HasPrefix(c.ContactAPIURL, "http://") && !strings.HasPrefix(c.ContactAPIURL, "https://") {
		return fmt.Errorf("CONTACT_API_URL must be an http(s) URL")
	}

	// Relays that compose the email themselves need somewhere to send it.
	if c.Provider != ProviderEmailJS && c.hasCredentials() {
		if c.OwnerEmail == "" {
			return fmt.Errorf("OWNER_EMAIL is required for the %s relay", c.Provider)
		}
		if c.FromAddress == "" {
			return fmt.Errorf("FROM_ADDRESS is required for the %s relay", c.Provider)
		}
	}
	return nil
}

// hasCredentials reports whether the selected relay has every identifier it
// needs, ignoring placeholder values.
func (c *Config) hasCredentials() bool {
	switch c.Provider {
	case ProviderEmailJS:
		return isSet(c.EmailJSServiceID) && isSet(c.EmailJSTemplateID) && isSet(c.EmailJSPublicKey)
	case ProviderResend:
		return isSet(c.ResendAPIKey)
	case ProviderSMTP:
		return isSet(c.SMTPHost)
	}
	return false
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !placeholders[v]
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
