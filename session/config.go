package session

import (
	"fmt"
	"time"

	"github.com/kbukum/simplemovies/validation"
)

const (
	defaultIssuer   = "simplemovies"
	defaultTokenTTL = 24 * time.Hour
	minSecretLength = 32
)

// User is a locally configured account.
type User struct {
	ID       string `yaml:"id" mapstructure:"id" validate:"required"`
	Username string `yaml:"username" mapstructure:"username" validate:"required"`
	// PasswordHash is a bcrypt hash, see HashPassword.
	PasswordHash string `yaml:"password_hash" mapstructure:"password_hash" validate:"required,startswith=$2"`
}

// Config configures authentication and tokens.
type Config struct {
	// Secret signs tokens with HS256.
	Secret   string        `yaml:"secret" mapstructure:"secret"`
	Issuer   string        `yaml:"issuer" mapstructure:"issuer"`
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	Users    []User        `yaml:"users" mapstructure:"users" validate:"dive"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = defaultIssuer
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("session.secret must be at least %d characters", minSecretLength)
	}
	seen := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		if seen[u.Username] {
			return fmt.Errorf("session.users: duplicate username %q", u.Username)
		}
		seen[u.Username] = true
	}
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("session config: %w", err)
	}
	return nil
}
