package authgate

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/gateerr"
)

// Gate evaluates manifest scope grants and drives the re-authorization
// prompt. It holds no grant state of its own: every operation works on a
// fresh snapshot from the host, so repeated calls with unchanged host state
// produce identical results and identical prompt displays. There is no
// "already prompted" suppression.
type Gate struct {
	authz       AuthorizationService
	detector    UIDetector
	presenter   Presenter
	richUIScope string
	logger      zerolog.Logger
}

// AllScopesGranted reports whether the host considers every manifest scope
// granted. It has no side effects.
func (g *Gate) AllScopesGranted(ctx context.Context) (bool, error) {
	info, err := g.authz.AuthorizationInfo(ctx)
	if err != nil {
		return false, gateerr.NewHostUnavailableError("AllScopesGranted", err)
	}
	return info.Status == StatusNotRequired, nil
}

// IsScopeMissing reports whether the given scope identifier is absent from
// the user's granted-scope set. Matching is case-sensitive exact string
// equality; the identifier is not validated, so garbage input simply
// reports missing.
func (g *Gate) IsScopeMissing(ctx context.Context, scope string) (bool, error) {
	info, err := g.authz.AuthorizationInfo(ctx)
	if err != nil {
		return false, gateerr.NewHostUnavailableError("IsScopeMissing", err)
	}
	return !info.HasScope(scope), nil
}

// PresentReauthPrompt fetches the current grant snapshot, determines the
// presentation capability, and displays the re-authorization prompt.
//
// Rich HTML display requires both an active container UI and the configured
// rich-UI scope; otherwise a plain alert carries the raw URL. With no active
// UI at all the condition is logged and the call returns nil.
func (g *Gate) PresentReauthPrompt(ctx context.Context) error {
	info, err := g.authz.AuthorizationInfo(ctx)
	if err != nil {
		return gateerr.NewHostUnavailableError("PresentReauthPrompt", err)
	}

	active, found, err := g.detector.DetectActiveUI(ctx)
	if err != nil {
		return err
	}
	if !found {
		active = nil
	}

	richUI := active != nil && info.HasScope(g.richUIScope)

	return g.presenter.Present(ctx, info, active, richUI)
}

// HandleMissingGrants is the single integration point for add-on entry
// points. It returns true when grants are outstanding and the caller must
// abort normal execution after the prompt has been displayed, false when
// execution may proceed.
func (g *Gate) HandleMissingGrants(ctx context.Context) (bool, error) {
	logger := g.logger.With().Str("invocation_id", uuid.NewString()).Logger()

	granted, err := g.AllScopesGranted(ctx)
	if err != nil {
		return false, err
	}
	if granted {
		logger.Debug().Msg("all manifest scopes granted")
		return false, nil
	}

	logger.Info().Msg("manifest scope grants outstanding, presenting re-authorization prompt")
	if err := g.PresentReauthPrompt(ctx); err != nil {
		// The caller must still abort: grants are outstanding even when
		// the prompt could not be displayed.
		return true, err
	}
	return true, nil
}
