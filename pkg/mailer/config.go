package mailer

// Config holds mailer configuration.
type Config struct {
	FallbackSubject string `mapstructure:"fallback_subject"`
	DefaultLayout   string `mapstructure:"default_layout"`
}

const (
	defaultFallbackSubject = "New contact message"
	defaultLayout          = "base.html"
)
