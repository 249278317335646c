// Package authgate checks whether the end user has granted every
// authorization scope the add-on manifest declares, and presents a
// re-authorization prompt through the active host container when grants
// are outstanding.
//
// The host authorization and UI subsystems are external collaborators;
// this package depends on the narrow interfaces in gatecore so tests and
// demos can substitute deterministic fakes.
package authgate

import (
	"context"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/gatecore"
)

// Re-export types from gatecore.
// This allows external packages to import authgate without creating cycles
// with the internal implementation subpackages.

// AuthorizationStatus is the host's overall grant verdict.
type AuthorizationStatus = gatecore.AuthorizationStatus

// Authorization status values.
const (
	StatusNotRequired = gatecore.StatusNotRequired
	StatusRequired    = gatecore.StatusRequired
)

// AuthorizationInfo is a per-invocation snapshot of the user's grant state.
type AuthorizationInfo = gatecore.AuthorizationInfo

// AuthorizationService queries the host authorization subsystem.
type AuthorizationService = gatecore.AuthorizationService

// ContainerType identifies a host application surface.
type ContainerType = gatecore.ContainerType

// Container types for the supported host surfaces.
const (
	ContainerSpreadsheet  = gatecore.ContainerSpreadsheet
	ContainerDocument     = gatecore.ContainerDocument
	ContainerPresentation = gatecore.ContainerPresentation
	ContainerForm         = gatecore.ContainerForm
)

// Dialog is a rendered rich-content document ready for modal display.
type Dialog = gatecore.Dialog

// UIHandle is a live handle to the active container's UI subsystem.
type UIHandle = gatecore.UIHandle

// UIService acquires UI handles from the host, one container type at a time.
type UIService = gatecore.UIService

// ActiveUI pairs a live UI handle with the container that produced it.
type ActiveUI = gatecore.ActiveUI

// UIDetector determines which configured container candidate, if any,
// currently offers a live UI.
type UIDetector interface {
	// DetectActiveUI scans the configured container candidates in order
	// and returns the first one whose UI handle is obtainable.
	//
	// found is false when no candidate is active (headless or
	// trigger-driven execution). Inactive candidates are an expected
	// outcome and never produce an error; a non-nil error means a host
	// UI subsystem failure and is fatal for the invocation.
	DetectActiveUI(ctx context.Context) (active *ActiveUI, found bool, err error)
}

// Presenter renders and displays the re-authorization prompt.
type Presenter interface {
	// Present shows the prompt for the given grant snapshot.
	//
	// When richUI is true and active is non-nil, the prompt is rendered
	// as an HTML modal dialog. When richUI is false and active is
	// non-nil, a plain-text alert carries the raw re-authorization URL.
	// When active is nil no user-facing channel exists; the condition is
	// logged and Present returns nil.
	Present(ctx context.Context, info *AuthorizationInfo, active *ActiveUI, richUI bool) error
}
