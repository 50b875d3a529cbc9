package config

import (
	"fmt"

	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/spf13/viper"
)

const envPrefix = "UKCI"

type Config interface {
	EnvConfig
	ClientConfig
	RoutesConfig
	StorageConfig
	MockConfig
	Validate() error
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetEnv() string
	IsVerbose() bool
}

type mainConfig struct {
	EnvVars
	Client
	Routes
	Storage
	Mock
}

// New returns a Config resolved from defaults and UKCI_* environment variables.
func New() Config {
	return newMainConfig(newViper())
}

// Load is New plus an optional YAML config file. An empty path skips the file.
func Load(configFile string) (Config, error) {
	return LoadWithOverrides(configFile, nil)
}

// LoadWithOverrides is Load with values, keyed like the config file, that win
// over every other source. The CLI passes its flags this way.
func LoadWithOverrides(configFile string, overrides map[string]any) (Config, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("[config Load] read %s: %w", configFile, err)
		}
	}
	for key, value := range overrides {
		v.Set(key, value)
	}
	c := newMainConfig(v)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromViper wraps an existing viper instance, mainly for tests and CLI flag binding.
func FromViper(v *viper.Viper) Config {
	setDefaults(v)
	return newMainConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	setDefaults(v)
	bindEnvVars(v)
	return v
}

func newMainConfig(v *viper.Viper) mainConfig {
	return mainConfig{
		EnvVars: EnvVars{v: v},
		Client:  Client{v: v},
		Routes:  Routes{v: v},
		Storage: Storage{v: v},
		Mock:    Mock{v: v},
	}
}

func (c mainConfig) Validate() error {
	if c.GetMaxConcurrentRequests() < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "client.maxConcurrent must be at least 1")
	}
	if c.GetSearchCacheTTL() <= 0 || c.GetDetailCacheTTL() <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "cache TTLs must be positive")
	}
	if c.GetSearchDebounce() < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "client.searchDebounce must not be negative")
	}
	switch c.GetStorageBackend() {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return errors.Wrapf(errors.ErrUnknownBackend, "storage.backend %q", c.GetStorageBackend())
	}
	if c.GetLoginPath() == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "routes.login must be set")
	}
	return nil
}
