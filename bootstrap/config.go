package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kbukum/simplemovies/config"
	"github.com/kbukum/simplemovies/kvstore"
	"github.com/kbukum/simplemovies/movies"
	"github.com/kbukum/simplemovies/observability"
	"github.com/kbukum/simplemovies/omdb"
	"github.com/kbukum/simplemovies/server"
	"github.com/kbukum/simplemovies/session"
)

// ServiceName is the default service name and config file stem.
const ServiceName = "simplemovies"

// AppConfig is the full simplemovies configuration.
//
//	name: simplemovies
//	movies:
//	  api_key: ${OMDB_KEY}
//	session:
//	  secret: ...
//	favorites:
//	  driver: file
//	  path: ~/.config/simplemovies/favorites.json
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	OMDb          omdb.Config          `yaml:"omdb" mapstructure:"omdb"`
	Movies        movies.Config        `yaml:"movies" mapstructure:"movies"`
	Favorites     kvstore.Config       `yaml:"favorites" mapstructure:"favorites"`
	Secrets       kvstore.Config       `yaml:"secrets" mapstructure:"secrets"`
	Session       session.Config       `yaml:"session" mapstructure:"session"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills in zero-value fields. Favorites and secrets default to
// file stores under the user config directory, and the secrets store is
// encrypted with the session secret unless a key is configured.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.OMDb.ApplyDefaults()
	c.Movies.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()

	if c.Favorites.Driver == "" {
		c.Favorites.Driver = kvstore.DriverFile
	}
	if c.Favorites.Driver == kvstore.DriverFile && c.Favorites.Path == "" {
		c.Favorites.Path = dataPath("favorites.json")
	}
	if c.Secrets.Driver == "" {
		c.Secrets.Driver = kvstore.DriverFile
	}
	if c.Secrets.Driver == kvstore.DriverFile && c.Secrets.Path == "" {
		c.Secrets.Path = dataPath("secrets.json")
	}
	if c.Secrets.EncryptionKey == "" {
		c.Secrets.EncryptionKey = c.Session.Secret
	}
	c.Favorites.ApplyDefaults()
	c.Secrets.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"service", c.ServiceConfig.Validate},
		{"omdb", c.OMDb.Validate},
		{"movies", c.Movies.Validate},
		{"favorites", c.Favorites.Validate},
		{"secrets", c.Secrets.Validate},
		{"session", c.Session.Validate},
		{"server", c.Server.Validate},
		{"observability", c.Observability.Validate},
	}
	for _, chk := range checks {
		if err := chk.fn(); err != nil {
			return fmt.Errorf("%s: %w", chk.name, err)
		}
	}
	return nil
}

// Load reads AppConfig from config files, .env and the environment.
func Load(opts ...config.LoaderOption) (*AppConfig, error) {
	var cfg AppConfig
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func dataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, ServiceName, name)
}
