// Package main runs the scope authorization gate against a simulated host.
// It wires together all components using dependency injection and walks the
// simulated user through the grant states the gate distinguishes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jamesprial/scope-auth-gate/internal/authgate"
	"github.com/jamesprial/scope-auth-gate/internal/config"
	ierrors "github.com/jamesprial/scope-auth-gate/internal/errors"
	"github.com/jamesprial/scope-auth-gate/internal/hostsim"
	"github.com/jamesprial/scope-auth-gate/pkg/scopes"
)

func main() {
	cfg, err := config.Load(os.Getenv("SCOPE_GATE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "scope-auth-gate").Logger()

	logger := log.With().Str("component", "demo").Logger()
	logger.Info().Str("config", cfg.String()).Msg("starting demo")

	containers := make([]authgate.ContainerType, 0, len(cfg.Containers))
	for _, c := range cfg.Containers {
		containers = append(containers, authgate.ContainerType(c))
	}

	// The demo manifest declares the rich-UI scope plus whatever the
	// configured container list implies.
	manifest := append([]string{cfg.RichUIScope}, scopes.Implied(containers)...)

	host := hostsim.New(manifest, "https://scripthost.invalid/grant", os.Stdout)
	host.SetActive(authgate.ContainerSpreadsheet)

	gateCfg := &authgate.Config{
		AppName:      cfg.AppName,
		Containers:   containers,
		RichUIScope:  cfg.RichUIScope,
		DialogWidth:  cfg.DialogWidth,
		DialogHeight: cfg.DialogHeight,
	}
	gate := authgate.NewGateServices(gateCfg, host, host, log.With().Str("component", "gate").Logger())

	ctx := context.Background()

	// Nothing granted yet: the prompt degrades to a plain alert because
	// even the rich-UI scope is outstanding.
	mustAbort(ctx, logger, gate, manifest, "fresh install, no grants")

	// With the rich-UI scope granted the prompt upgrades to a modal
	// dialog while the editor scopes remain outstanding.
	host.Grant(cfg.RichUIScope)
	mustAbort(ctx, logger, gate, manifest, "rich UI granted, editor scopes outstanding")

	missing, err := gate.IsScopeMissing(ctx, scopes.Spreadsheets)
	if err != nil {
		logger.Fatal().Err(err).Msg("scope lookup failed")
	}
	logger.Info().Str("scope", scopes.Spreadsheets).Bool("missing", missing).Msg("single-scope lookup")

	// Headless execution: grants still outstanding, but with no editor
	// open the condition is only observable in the logs.
	host.SetHeadless()
	mustAbort(ctx, logger, gate, manifest, "headless trigger execution")
	host.SetActive(authgate.ContainerSpreadsheet)

	// Full grant: the gate waves the invocation through.
	host.Grant(manifest...)
	abort, err := gate.HandleMissingGrants(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("gate check failed")
	}
	if abort {
		logger.Fatal().Msg("unexpected abort after full grant")
	}
	logger.Info().Msg("all scopes granted, add-on may proceed")
}

// mustAbort runs the gate entry point and exits unless it signals abort.
func mustAbort(ctx context.Context, logger zerolog.Logger, gate *authgate.Gate, manifest []string, scenario string) {
	logger.Info().Str("scenario", scenario).Msg("running gate")
	abort, err := gate.HandleMissingGrants(ctx)
	if err != nil {
		logger.Fatal().Err(err).Str("scenario", scenario).Msg("gate check failed")
	}
	if !abort {
		logger.Fatal().Str("scenario", scenario).Msg("expected abort signal")
	}

	var missing []string
	for _, scope := range manifest {
		if m, err := gate.IsScopeMissing(ctx, scope); err == nil && m {
			missing = append(missing, scope)
		}
	}
	grantErr := ierrors.NewGrantError(ierrors.ErrorCodeGrantsRequired, "user has not granted all manifest scopes").
		WithMissingScopes(missing)
	logger.Info().Str("scenario", scenario).Str("grant_error", grantErr.Summary()).Msg("aborting entry point")
}
