// Package config handles the XDG configuration directory, the config file
// and the stored API token.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskmgr"

	// ConfigFile is the config filename (without extension).
	ConfigFile = "config"

	// TokenFile is the stored API token filename.
	TokenFile = "token.json"

	// EnvPrefix prefixes environment overrides, e.g. TASKMGR_BASE_URL.
	EnvPrefix = "TASKMGR"
)

// Defaults.
const (
	DefaultBaseURL    = "http://localhost:8080/api"
	DefaultTimeout    = 5 * time.Second
	DefaultServerAddr = ":8080"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// BaseURL is the task API root; task routes live under BaseURL/tasks.
	BaseURL string

	// Timeout bounds every API call.
	Timeout time.Duration

	// Token, when set, is sent as a bearer token and takes precedence over
	// the token file.
	Token string

	// ServerAddr is the listen address for the serve command.
	ServerAddr string

	// ServerDSN selects Postgres storage for the serve command; empty means
	// in-memory.
	ServerDSN string
}

// fileConfig mirrors config.yaml.
type fileConfig struct {
	BaseURL string       `yaml:"base_url"`
	Timeout string       `yaml:"timeout"`
	Token   string       `yaml:"token,omitempty"`
	Server  serverConfig `yaml:"server"`
}

type serverConfig struct {
	Addr string `yaml:"addr"`
	DSN  string `yaml:"dsn,omitempty"`
}

// New creates a Config for the default or specified config directory and
// loads config.yaml from it. A missing file yields defaults.
// If configDir is empty, uses XDG_CONFIG_HOME/taskmgr or $HOME/.config/taskmgr.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) load() error {
	v := viper.New()
	v.SetConfigName(ConfigFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(c.Dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("token", "")
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.dsn", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading %s.yaml: %w", ConfigFile, err)
		}
	}

	c.BaseURL = strings.TrimRight(v.GetString("base_url"), "/")
	c.Timeout = v.GetDuration("timeout")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.Token = v.GetString("token")
	c.ServerAddr = v.GetString("server.addr")
	c.ServerDSN = v.GetString("server.dsn")
	return nil
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile+".yaml")
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if config.yaml exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// WriteDefault writes config.yaml with the current settings.
func (c *Config) WriteDefault() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	fc := fileConfig{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout.String(),
		Server:  serverConfig{Addr: c.ServerAddr, DSN: c.ServerDSN},
	}
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, 0600)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// SaveToken stores tok in the token file with mode 0600.
func (c *Config) SaveToken(tok *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// LoadToken returns the bearer token to use, or nil when none is
// configured. The Token setting wins over the token file.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	if c.Token != "" {
		return &oauth2.Token{AccessToken: c.Token, TokenType: "Bearer"}, nil
	}
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("invalid %s: empty access token", TokenFile)
	}
	return &tok, nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Logger returns a logger writing to w. Debug output (V(1)) is enabled
// only when Debug is set.
func (c *Config) Logger(w io.Writer) logr.Logger {
	if c.Debug {
		stdr.SetVerbosity(1)
	} else {
		stdr.SetVerbosity(0)
	}
	return stdr.New(log.New(w, "", log.LstdFlags)).WithName(AppName)
}
