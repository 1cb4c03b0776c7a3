package resend

// Config holds Resend provider configuration.
type Config struct {
	APIKey      string `mapstructure:"api_key"`
	SenderEmail string `mapstructure:"from_email"`
	SenderName  string `mapstructure:"from_name"`
}
