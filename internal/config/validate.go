package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// knownContainers is the set of host surfaces the gate knows how to probe.
var knownContainers = map[string]bool{
	"spreadsheet":  true,
	"document":     true,
	"presentation": true,
	"form":         true,
}

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateGate(cfg); err != nil {
		return fmt.Errorf("invalid gate config: %w", err)
	}

	if err := validateGrants(cfg); err != nil {
		return fmt.Errorf("invalid grants config: %w", err)
	}

	return nil
}

// validateGate validates the prompt and probing fields.
func validateGate(cfg *Config) error {
	if cfg.AppName == "" {
		return fmt.Errorf("app_name is required")
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	if len(cfg.Containers) == 0 {
		return fmt.Errorf("containers is required (at least one surface to probe)")
	}

	seen := make(map[string]bool, len(cfg.Containers))
	for i, container := range cfg.Containers {
		if !knownContainers[container] {
			return fmt.Errorf("unknown containers[%d] %q", i, container)
		}
		if seen[container] {
			return fmt.Errorf("duplicate containers[%d] %q", i, container)
		}
		seen[container] = true
	}

	if cfg.RichUIScope == "" {
		return fmt.Errorf("rich_ui_scope is required")
	}

	if cfg.DialogWidth <= 0 {
		return fmt.Errorf("dialog_width must be positive")
	}
	if cfg.DialogHeight <= 0 {
		return fmt.Errorf("dialog_height must be positive")
	}

	return nil
}

// validateGrants validates the grant token source fields.
// The section is optional; its fields are only required when manifest
// scopes are declared.
func validateGrants(cfg *Config) error {
	if len(cfg.Grants.ManifestScopes) == 0 {
		return nil
	}

	for i, scope := range cfg.Grants.ManifestScopes {
		if scope == "" {
			return fmt.Errorf("manifest_scopes[%d] must not be empty", i)
		}
	}

	if cfg.Grants.ReauthBaseURL == "" {
		return fmt.Errorf("reauth_base_url is required when manifest_scopes are declared")
	}

	parsed, err := url.Parse(cfg.Grants.ReauthBaseURL)
	if err != nil {
		return fmt.Errorf("invalid reauth_base_url: %w", err)
	}
	if !parsed.IsAbs() {
		return fmt.Errorf("reauth_base_url must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("reauth_base_url must use http or https scheme")
	}

	if cfg.Grants.ClockSkew < 0 {
		return fmt.Errorf("clock_skew must be non-negative")
	}

	return nil
}
