package postmark

// TestServerToken is Postmark's sandbox token. Requests authenticated with it
// are accepted and validated by the API but never delivered.
const TestServerToken = "POSTMARK_API_TEST"

// Config holds Postmark API client configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken string `env:"POSTMARK_API_KEY" envDefault:"POSTMARK_API_TEST"`
}
