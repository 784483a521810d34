package kvstore

import (
	"fmt"
	"time"

	"github.com/kbukum/simplemovies/encryption"
	"github.com/kbukum/simplemovies/redis"
	"github.com/kbukum/simplemovies/validation"
)

// Driver names.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config selects and configures a Store.
type Config struct {
	Driver string `yaml:"driver" mapstructure:"driver" validate:"oneof=memory file redis"`
	// Path is the JSON document for the file driver.
	Path string `yaml:"path" mapstructure:"path" validate:"required_if=Driver file"`
	// Prefix namespaces keys for the redis driver.
	Prefix string        `yaml:"prefix" mapstructure:"prefix"`
	TTL    time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`
	Redis  redis.Config  `yaml:"redis" mapstructure:"redis"`

	// EncryptionKey, when set, wraps the store in Secure.
	EncryptionKey string               `yaml:"encryption_key" mapstructure:"encryption_key"`
	Algorithm     encryption.Algorithm `yaml:"algorithm" mapstructure:"algorithm" validate:"omitempty,oneof=chacha20-poly1305 aes-256-gcm"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Prefix == "" {
		c.Prefix = "simplemovies"
	}
	if c.Algorithm == "" {
		c.Algorithm = encryption.AlgorithmChaCha20
	}
	if c.Driver == DriverRedis {
		c.Redis.ApplyDefaults()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("kvstore config: %w", err)
	}
	if c.Driver == DriverRedis {
		return c.Redis.Validate()
	}
	return nil
}

// Encrypted reports whether values will be encrypted.
func (c *Config) Encrypted() bool {
	return c.EncryptionKey != ""
}
