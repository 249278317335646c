// Package config provides configuration management for the scope
// authorization gate. Configuration is loaded once at startup from an
// optional YAML file with sensible defaults; nothing is runtime-mutable.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jamesprial/scope-auth-gate/pkg/scopes"
)

// Duration wraps time.Duration with YAML decoding from strings like "1m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("cannot parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// GrantsConfig configures the grant token authorization source.
// Only used by hosts that surface grant state as a signed token.
type GrantsConfig struct {
	// ManifestScopes are the scopes the add-on manifest declares.
	ManifestScopes []string `yaml:"manifest_scopes"`

	// ReauthBaseURL is the host's grant page; missing scopes are
	// appended as a query parameter.
	ReauthBaseURL string `yaml:"reauth_base_url"`

	// ClockSkew is the allowed clock skew for grant token expiry.
	ClockSkew Duration `yaml:"clock_skew"`
}

// Config holds the complete gate configuration in a flat structure.
type Config struct {
	// AppName is the add-on display name used to personalize prompts.
	AppName string `yaml:"app_name"`

	// LogLevel is the zerolog level name (e.g. "info", "debug").
	LogLevel string `yaml:"log_level"`

	// Containers is the ordered list of host surfaces to probe for an
	// active UI. Restricting this list keeps the requested scope set
	// minimal: probing a container implicitly requires its scope.
	Containers []string `yaml:"containers"`

	// RichUIScope is the scope that permits rich dialog content.
	RichUIScope string `yaml:"rich_ui_scope"`

	// DialogWidth and DialogHeight size the modal dialog in pixels.
	DialogWidth  int `yaml:"dialog_width"`
	DialogHeight int `yaml:"dialog_height"`

	// Grants configures the grant token source.
	Grants GrantsConfig `yaml:"grants"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppName:      "Add-on",
		LogLevel:     "info",
		Containers:   []string{"spreadsheet", "document", "presentation", "form"},
		RichUIScope:  scopes.ContainerUI,
		DialogWidth:  420,
		DialogHeight: 250,
		Grants: GrantsConfig{
			ClockSkew: Duration(time.Minute),
		},
	}
}

// Load returns the default configuration overlaid with the YAML file at
// path, then validated. An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// String returns a string representation of the configuration (for debugging).
func (c *Config) String() string {
	return fmt.Sprintf("Config{AppName: %s, LogLevel: %s, Containers: %v, RichUIScope: %s, Dialog: %dx%d, ManifestScopes: %v}",
		c.AppName, c.LogLevel, c.Containers, c.RichUIScope,
		c.DialogWidth, c.DialogHeight, c.Grants.ManifestScopes)
}
