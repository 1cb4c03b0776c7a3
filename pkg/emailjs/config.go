package emailjs

// DefaultBaseURL is the public EmailJS API endpoint.
const DefaultBaseURL = "https://api.emailjs.com"

// Config holds EmailJS client configuration.
type Config struct {
	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string `mapstructure:"base_url"`
	// AccessToken is the optional private key required when the account
	// enforces "use private key" for API requests.
	AccessToken string `mapstructure:"access_token"`
}
