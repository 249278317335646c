package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jamesprial/scope-auth-gate/pkg/scopes"
)

// writeConfigFile writes content to a temp YAML file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, "Add-on", cfg.AppName)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"spreadsheet", "document", "presentation", "form"}, cfg.Containers)
	require.Equal(t, scopes.ContainerUI, cfg.RichUIScope)
	require.Equal(t, 420, cfg.DialogWidth)
	require.Equal(t, 250, cfg.DialogHeight)
	require.Equal(t, time.Minute, cfg.Grants.ClockSkew.Std())

	require.NoError(t, Validate(cfg))
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
app_name: "Sheet Helper"
log_level: debug
containers: [spreadsheet]
dialog_width: 500
grants:
  manifest_scopes:
    - scripthost:container.ui
    - scripthost:spreadsheets
  reauth_base_url: https://scripthost.invalid/grant
  clock_skew: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Sheet Helper", cfg.AppName)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"spreadsheet"}, cfg.Containers)
	require.Equal(t, 500, cfg.DialogWidth)
	// Untouched fields keep their defaults.
	require.Equal(t, 250, cfg.DialogHeight)
	require.Equal(t, scopes.ContainerUI, cfg.RichUIScope)

	require.Equal(t, []string{"scripthost:container.ui", "scripthost:spreadsheets"}, cfg.Grants.ManifestScopes)
	require.Equal(t, "https://scripthost.invalid/grant", cfg.Grants.ReauthBaseURL)
	require.Equal(t, 90*time.Second, cfg.Grants.ClockSkew.Std())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "app_name: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
grants:
  clock_skew: soon
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot parse duration")
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `app_name: ""`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "app_name is required")
}

func TestConfig_String(t *testing.T) {
	t.Parallel()

	s := Default().String()
	require.Contains(t, s, "Add-on")
	require.Contains(t, s, "spreadsheet")
}
