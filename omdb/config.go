package omdb

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/simplemovies/httpclient"
	"github.com/kbukum/simplemovies/resilience"
	"github.com/kbukum/simplemovies/security"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 10 * time.Second
)

// Config configures the OMDb client.
type Config struct {
	BaseURL        string                           `yaml:"base_url" mapstructure:"base_url"`
	Timeout        time.Duration                    `yaml:"timeout" mapstructure:"timeout"`
	Retry          *resilience.RetryConfig          `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	TLS            *security.ClientTLS              `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retry == nil {
		c.Retry = httpclient.DefaultRetryConfig()
	}
	if c.CircuitBreaker == nil {
		c.CircuitBreaker = httpclient.DefaultCircuitBreakerConfig("omdb")
	}
	c.CircuitBreaker.Name = "omdb"
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("omdb.base_url must be an absolute URL (got: %q)", c.BaseURL)
	}
	if err := c.TLS.Validate(); err != nil {
		return fmt.Errorf("omdb.%w", err)
	}
	return nil
}
