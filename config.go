package trebuchet

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/trebuchet/pkg/postmark"
)

// DefaultEnvironment is the environment a client reports when none is set.
const DefaultEnvironment = "PRODUCTION"

// DefaultTemplateDir is where named templates are resolved by default.
const DefaultTemplateDir = "./templates"

// Config holds client configuration. The zero value is usable: it targets
// Postmark's sandbox token, so nothing is delivered until a real API key is
// supplied.
type Config struct {
	APIKey      string `env:"POSTMARK_API_KEY" envDefault:"POSTMARK_API_TEST"`
	Environment string `env:"TREBUCHET_ENV" envDefault:"PRODUCTION"`
	TemplateDir string `env:"TREBUCHET_TEMPLATE_DIR" envDefault:"./templates"`
}

// LoadConfig parses configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("trebuchet: failed to parse config: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills unset fields, so a partially populated literal behaves
// the same as one parsed from a clean environment.
func (c *Config) applyDefaults() {
	if c.APIKey == "" {
		c.APIKey = postmark.TestServerToken
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.TemplateDir == "" {
		c.TemplateDir = DefaultTemplateDir
	}
}
