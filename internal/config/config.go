// Package config loads folio settings with viper.
//
// Precedence, highest first: command-line flags bound by the caller,
// FOLIO_* environment variables (FOLIO_EMAILJS_SERVICE_ID for
// emailjs.service_id), the config file, then the defaults below.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/folio-dev/folio/pkg/contact"
	"github.com/folio-dev/folio/pkg/emailjs"
	"github.com/folio-dev/folio/pkg/mailer/resend"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "FOLIO"

// Delivery backends.
const (
	DeliveryEmailJS = "emailjs"
	DeliveryResend  = "resend"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full application configuration.
type Config struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	ContentPath     string        `mapstructure:"content_path"`
	WatchContent    bool          `mapstructure:"watch_content"`
	SurfaceTTL      time.Duration `mapstructure:"surface_ttl"`
	Delivery        string        `mapstructure:"delivery"`
	EmailJS         EmailJS       `mapstructure:"emailjs"`
	Resend          Resend        `mapstructure:"resend"`
	Sentry          Sentry        `mapstructure:"sentry"`
}

// EmailJS holds the identifiers sent with every submission plus client
// settings.
type EmailJS struct {
	ServiceID   string `mapstructure:"service_id"`
	TemplateID  string `mapstructure:"template_id"`
	PublicKey   string `mapstructure:"public_key"`
	AccessToken string `mapstructure:"access_token"`
	BaseURL     string `mapstructure:"base_url"`
}

// Client returns the EmailJS client settings.
func (e EmailJS) Client() emailjs.Config {
	return emailjs.Config{BaseURL: e.BaseURL, AccessToken: e.AccessToken}
}

// Resend configures delivery through the Resend API.
type Resend struct {
	resend.Config `mapstructure:",squash"`
	To            []string `mapstructure:"to"`
	Template      string   `mapstructure:"template"`
}

type Sentry struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

var defaults = map[string]any{
	"address":              ":8080",
	"shutdown_timeout":     30 * time.Second,
	"log_level":            "info",
	"content_path":         "",
	"watch_content":        false,
	"surface_ttl":          time.Hour,
	"delivery":             DeliveryEmailJS,
	"emailjs.service_id":   "",
	"emailjs.template_id":  "",
	"emailjs.public_key":   "",
	"emailjs.access_token": "",
	"emailjs.base_url":     emailjs.DefaultBaseURL,
	"resend.api_key":       "",
	"resend.from_email":    "",
	"resend.from_name":     "",
	"resend.to":            []string{},
	"resend.template":      "contact",
	"sentry.dsn":           "",
	"sentry.environment":   "production",
}

// New returns a viper instance with defaults and environment binding set up.
// Every key has a default so environment variables are seen by Unmarshal.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads path, or looks for folio.yaml in the working directory when
// path is empty. A missing default file is not an error. It returns the
// file used, if any.
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("config: read %s: %w", path, err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	cfg.Delivery = strings.ToLower(strings.TrimSpace(cfg.Delivery))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected delivery backend is fully configured.
func (c *Config) Validate() error {
	var errs []error
	switch c.Delivery {
	case DeliveryEmailJS:
		required := []struct{ key, val string }{
			{"emailjs.service_id", c.EmailJS.ServiceID},
			{"emailjs.template_id", c.EmailJS.TemplateID},
			{"emailjs.public_key", c.EmailJS.PublicKey},
		}
		for _, r := range required {
			if r.val == "" {
				errs = append(errs, fmt.Errorf("%s is required", r.key))
			}
		}
	case DeliveryResend:
		if c.Resend.APIKey == "" {
			errs = append(errs, errors.New("resend.api_key is required"))
		}
		if c.Resend.SenderEmail == "" {
			errs = append(errs, errors.New("resend.from_email is required"))
		}
		if len(c.Resend.To) == 0 {
			errs = append(errs, errors.New("resend.to is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown delivery %q", c.Delivery))
	}
	if c.SurfaceTTL <= 0 {
		errs = append(errs, errors.New("surface_ttl must be positive"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// ContactConfig returns the identifiers handed to every delivery attempt.
// For Resend, the template identifier selects the email template and the
// service identifier tags the message.
func (c *Config) ContactConfig() contact.Config {
	if c.Delivery == DeliveryResend {
		return contact.Config{ServiceID: DeliveryResend, TemplateID: c.Resend.Template}
	}
	return contact.Config{
		ServiceID:  c.EmailJS.ServiceID,
		TemplateID: c.EmailJS.TemplateID,
		PublicKey:  c.EmailJS.PublicKey,
	}
}
