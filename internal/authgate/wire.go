package authgate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/internal/grants"
	"github.com/jamesprial/scope-auth-gate/internal/authgate/internal/probe"
	"github.com/jamesprial/scope-auth-gate/internal/authgate/internal/prompt"
)

// Config holds the configuration needed to construct the gate.
// Both the display name and the container list are load-time constants:
// they are fixed when the gate is built and never mutated afterwards.
type Config struct {
	// AppName is the add-on display name used to personalize prompts.
	AppName string

	// Containers is the ordered list of host surfaces the add-on
	// supports. Probing is restricted to this list to avoid requesting
	// broader authorization scopes than the add-on needs.
	Containers []ContainerType

	// RichUIScope is the scope that permits rendering rich dialog
	// content inside the active container.
	RichUIScope string

	// DialogWidth and DialogHeight size the modal dialog in pixels.
	DialogWidth  int
	DialogHeight int
}

// GrantTokenProvider supplies the host's current signed grant token.
type GrantTokenProvider interface {
	GrantToken(ctx context.Context) (string, error)
}

// NewUIDetector creates a detector that probes the configured containers in order.
func NewUIDetector(ui UIService, containers []ContainerType) UIDetector {
	return probe.NewDetector(ui, containers)
}

// NewPresenter creates the prompt presenter from the gate configuration.
func NewPresenter(cfg *Config, logger zerolog.Logger) Presenter {
	return prompt.NewPresenter(cfg.AppName, cfg.DialogWidth, cfg.DialogHeight, logger)
}

// NewGate creates a gate from explicit collaborators. Most callers want
// NewGateServices instead; this constructor exists so tests can inject a
// fake detector or presenter.
func NewGate(cfg *Config, authz AuthorizationService, detector UIDetector, presenter Presenter, logger zerolog.Logger) *Gate {
	return &Gate{
		authz:       authz,
		detector:    detector,
		presenter:   presenter,
		richUIScope: cfg.RichUIScope,
		logger:      logger,
	}
}

// NewGateServices creates a fully wired gate over the host's authorization
// and UI subsystems. This is a convenience function for dependency injection.
func NewGateServices(cfg *Config, authz AuthorizationService, ui UIService, logger zerolog.Logger) *Gate {
	detector := NewUIDetector(ui, cfg.Containers)
	presenter := NewPresenter(cfg, logger)
	return NewGate(cfg, authz, detector, presenter, logger)
}

// NewGrantTokenSource creates an AuthorizationService backed by signed grant
// tokens for hosts that surface grant state that way. key is the host's
// public verification key; manifestScopes are the scopes the add-on
// manifest declares.
func NewGrantTokenSource(tokens GrantTokenProvider, key any, manifestScopes []string, reauthBaseURL string, clockSkew time.Duration) AuthorizationService {
	return grants.NewSource(tokens, key, manifestScopes, reauthBaseURL, clockSkew)
}
