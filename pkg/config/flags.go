package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names registered by Flags.Register.
const (
	FlagConfig  = "config"
	FlagHost    = "host"
	FlagVersion = "api-version"
	FlagTimeout = "timeout"
)

// Flags holds the command line overrides.
type Flags struct {
	Path    string
	Host    string
	Version string
	Timeout time.Duration
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.Path, FlagConfig, f.Path, "config file (default $XDG_CONFIG_HOME/opencga/client.toml)")
	fs.StringVar(&f.Host, FlagHost, f.Host, "OpenCGA server URL, e.g. https://ws.opencb.org/opencga-prod")
	fs.StringVar(&f.Version, FlagVersion, f.Version, "REST API version")
	fs.DurationVar(&f.Timeout, FlagTimeout, f.Timeout, "per-request timeout")
}

// Apply overrides c with the flags that were set explicitly in fs.
func (f *Flags) Apply(fs *pflag.FlagSet, c *Config) {
	if fs.Changed(FlagHost) {
		c.REST.Host = f.Host
	}
	if fs.Changed(FlagVersion) {
		c.REST.Version = f.Version
	}
	if fs.Changed(FlagTimeout) {
		c.REST.Timeout = f.Timeout
	}
}

// Resolve loads the file and applies environment and flag overrides.
// It returns the configuration and the file path that was consulted.
// Callers that are about to connect should call Validate on the result.
func (f *Flags) Resolve(fs *pflag.FlagSet, lookup func(string) (string, bool)) (*Config, string, error) {
	path, required := f.Path, fs.Changed(FlagConfig)
	if !required {
		if v, ok := lookup(EnvConfig); ok && v != "" {
			path, required = v, true
		}
	}
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, "", err
		}
	}

	cfg, err := Load(path, required)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, path, err
	}
	f.Apply(fs, cfg)
	return cfg, path, nil
}
