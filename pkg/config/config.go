// Package config loads the OpenCGA client configuration.
//
// Configuration is resolved from four layers, highest priority first:
//
//  1. command line flags (--host, --api-version, --timeout)
//  2. environment (OPENCGA_HOST, OPENCGA_VERSION, OPENCGA_TIMEOUT)
//  3. the configuration file
//  4. built-in defaults
//
// The file is TOML or YAML, chosen by extension, with a single [rest]
// section:
//
//	[rest]
//	host    = "https://ws.opencb.org/opencga-prod"
//	version = "v2"
//	timeout = "45s"
//
//	[rest.headers]
//	X-Lab = "genomics"
//
// Its default location is $XDG_CONFIG_HOME/opencga/client.toml, falling back
// to ~/.config/opencga and to client.yaml or client.yml in the same directory.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/rest"
)

const appName = "opencga"

// Environment variables read by ApplyEnv.
const (
	EnvConfig  = "OPENCGA_CONFIG"
	EnvHost    = "OPENCGA_HOST"
	EnvVersion = "OPENCGA_VERSION"
	EnvTimeout = "OPENCGA_TIMEOUT"
	EnvToken   = "OPENCGA_TOKEN"
)

// Config is the full client configuration.
type Config struct {
	REST REST `toml:"rest" yaml:"rest"`
}

// REST configures the connection to the server.
type REST struct {
	Host    string            `toml:"host" yaml:"host"`
	Version string            `toml:"version" yaml:"version"`
	Timeout time.Duration     `toml:"timeout" yaml:"timeout"`
	Headers map[string]string `toml:"headers,omitempty" yaml:"headers,omitempty"`
}

// Default returns the built-in defaults. No host is configured by default.
func Default() *Config {
	return &Config{REST: REST{
		Version: rest.DefaultVersion,
		Timeout: rest.DefaultTimeout,
	}}
}

// DefaultDir returns the configuration directory using the XDG standard
// (~/.config/opencga/).
func DefaultDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the first existing client file in the configuration
// directory, or client.toml when none exists.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"client.toml", "client.yaml", "client.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return filepath.Join(dir, "client.toml"), nil
}

// Load reads path on top of the defaults. A missing file yields the
// defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, apierrors.Wrap(apierrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return apierrors.Wrap(apierrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return apierrors.Wrap(apierrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return apierrors.New(apierrors.ErrCodeUnsupported, "config format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.REST.Host = v
	}
	if v, ok := lookup(EnvVersion); ok && v != "" {
		c.REST.Version = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return apierrors.Wrap(apierrors.ErrCodeInvalidConfig, err, "%s", EnvTimeout)
		}
		c.REST.Timeout = d
	}
	return nil
}

// ParseTimeout accepts a Go duration ("45s", "2m") or a number of seconds.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// Validate normalizes the host and checks every field.
func (c *Config) Validate() error {
	c.REST.Host = rest.NormalizeHost(c.REST.Host)
	if c.REST.Host == "" {
		return apierrors.New(apierrors.ErrCodeInvalidConfig, "no server host configured (set --host, %s or rest.host)", EnvHost)
	}
	if err := apierrors.ValidateURL(c.REST.Host); err != nil {
		return err
	}
	if c.REST.Version == "" {
		c.REST.Version = rest.DefaultVersion
	}
	if err := apierrors.ValidateAPIVersion(c.REST.Version); err != nil {
		return err
	}
	if c.REST.Timeout < 0 {
		return apierrors.New(apierrors.ErrCodeInvalidConfig, "timeout must not be negative, got %s", c.REST.Timeout)
	}
	if c.REST.Timeout == 0 {
		c.REST.Timeout = rest.DefaultTimeout
	}
	return nil
}

// Client returns the REST client configuration for token.
func (c *Config) Client(token string) rest.Config {
	return rest.Config{
		Host:    c.REST.Host,
		Version: c.REST.Version,
		Token:   token,
		Timeout: c.REST.Timeout,
		Headers: c.REST.Headers,
	}
}

// Encode writes the configuration in the given format ("toml" or "yaml").
func (c *Config) Encode(format string) ([]byte, error) {
	switch format {
	case "toml", "":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	}
	return nil, apierrors.New(apierrors.ErrCodeUnsupported, "output format %q", format)
}
