package movies

import (
	"fmt"
	"time"
)

const (
	defaultCacheTTL     = 5 * time.Minute
	defaultCacheCleanup = 10 * time.Minute
)

// Config configures the search service.
type Config struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// CacheTTL is how long search results are reused. Negative disables the
	// cache.
	CacheTTL     time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheCleanup time.Duration `yaml:"cache_cleanup" mapstructure:"cache_cleanup"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.CacheTTL == 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.CacheCleanup <= 0 {
		c.CacheCleanup = defaultCacheCleanup
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("movies.api_key is required")
	}
	return nil
}

// CacheEnabled reports whether results are cached.
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}
