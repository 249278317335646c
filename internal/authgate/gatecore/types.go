// Package gatecore provides core types and interfaces shared by the authgate
// package and its internal subpackages.
// This package exists to break import cycles between authgate and its internal
// implementations.
package gatecore

import (
	"context"
)

// AuthorizationStatus is the host's overall grant verdict for the scopes
// declared in the add-on manifest.
type AuthorizationStatus int

const (
	// StatusNotRequired means every declared scope has been granted.
	StatusNotRequired AuthorizationStatus = iota

	// StatusRequired means at least one declared scope is still pending
	// a grant from the end user.
	StatusRequired
)

// String returns the status name used in logs.
func (s AuthorizationStatus) String() string {
	switch s {
	case StatusNotRequired:
		return "not_required"
	case StatusRequired:
		return "required"
	default:
		return "unknown"
	}
}

// AuthorizationInfo is a per-invocation snapshot of the user's grant state,
// fetched fresh from the host authorization subsystem on every query.
// It is never persisted or shared between invocations.
type AuthorizationInfo struct {
	// Status is the host's overall verdict across all manifest scopes.
	Status AuthorizationStatus

	// GrantedScopes lists the scope identifiers the user has granted.
	// Identifiers are opaque strings compared by exact equality.
	GrantedScopes []string

	// AuthorizationURL is the host-issued link the user can follow to
	// grant any outstanding scopes.
	AuthorizationURL string
}

// HasScope returns true if the scope has been granted.
// Matching is case-sensitive exact string equality; no normalization,
// wildcard, or prefix matching is performed.
func (i *AuthorizationInfo) HasScope(scope string) bool {
	if i == nil {
		return false
	}
	for _, s := range i.GrantedScopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAllScopes returns true if every listed scope has been granted.
// Returns true for an empty list (vacuous truth).
func (i *AuthorizationInfo) HasAllScopes(scopes ...string) bool {
	if i == nil {
		return len(scopes) == 0
	}
	for _, s := range scopes {
		if !i.HasScope(s) {
			return false
		}
	}
	return true
}

// MissingScopes returns the subset of required scopes that have not been
// granted, in the order given. Returns nil when nothing is missing.
func (i *AuthorizationInfo) MissingScopes(required ...string) []string {
	var missing []string
	for _, s := range required {
		if !i.HasScope(s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// AuthorizationService queries the host authorization subsystem.
// Implementations must return a fresh snapshot on every call and must not
// cache grant state between invocations.
type AuthorizationService interface {
	// AuthorizationInfo returns the current grant snapshot.
	//
	// A non-nil error means the host authorization subsystem could not be
	// reached; callers treat this as fatal for the invocation and propagate.
	AuthorizationInfo(ctx context.Context) (*AuthorizationInfo, error)
}

// ContainerType identifies a host application surface the add-on may be
// running inside (e.g. a spreadsheet or a document editor).
type ContainerType string

// Container types for the host surfaces this library knows how to probe.
const (
	ContainerSpreadsheet  ContainerType = "spreadsheet"
	ContainerDocument     ContainerType = "document"
	ContainerPresentation ContainerType = "presentation"
	ContainerForm         ContainerType = "form"
)

// Dialog is a rendered rich-content document ready for modal display.
type Dialog struct {
	// Title is shown in the dialog chrome.
	Title string

	// HTML is the sandboxed document body.
	HTML string

	// Width and Height are the requested dialog dimensions in pixels.
	Width  int
	Height int
}

// UIHandle is a live handle to the active container's UI subsystem.
type UIHandle interface {
	// ShowModalDialog displays rendered rich content as a modal dialog.
	ShowModalDialog(ctx context.Context, dialog Dialog) error

	// ShowAlert displays a plain-text alert with a single OK button.
	ShowAlert(ctx context.Context, title, message string) error
}

// UIService acquires UI handles from the host, one container type at a time.
//
// The host offers no "which container am I running in" query, so callers
// discover the active surface by asking each supported container in turn.
type UIService interface {
	// ActiveUI returns the UI handle for the given container type.
	//
	// ok is false when that container is not the surface the current
	// invocation is running inside; this is an expected outcome, not an
	// error. A non-nil error is reserved for genuine host UI subsystem
	// failures and is treated as fatal for the invocation.
	ActiveUI(ctx context.Context, container ContainerType) (handle UIHandle, ok bool, err error)
}

// ActiveUI pairs a live UI handle with the container type that produced it.
// The host guarantees at most one container is active per invocation.
type ActiveUI struct {
	Container ContainerType
	Handle    UIHandle
}
