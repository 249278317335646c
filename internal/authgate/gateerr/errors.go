// Package gateerr provides gate error constructors.
// This package is separate from internal/authgate to avoid import cycles
// when internal subpackages need to create gate errors.
package gateerr

import (
	"fmt"

	ierrors "github.com/jamesprial/scope-auth-gate/internal/errors"
)

// Domain identifiers for gate errors.
const (
	domainGate = "gate"
	domainHost = "host"
)

// NewHostUnavailableError creates a DomainError for an unreachable host subsystem.
func NewHostUnavailableError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainHost, op, ierrors.ErrHostUnavailable, err)
}

// NewInvalidGrantTokenError creates a DomainError for an unparseable or
// unverifiable grant token.
func NewInvalidGrantTokenError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainHost, op, ierrors.ErrHostUnavailable, err).
		WithContext("grant_error", ierrors.ErrorCodeInvalidGrantToken)
}

// NewUnsupportedAlgorithmError creates a DomainError for a grant token signed
// with an algorithm outside the allow-list.
func NewUnsupportedAlgorithmError(op string, algorithm string) *ierrors.DomainError {
	return ierrors.New(domainHost, op, ierrors.ErrHostUnavailable, fmt.Errorf("unsupported algorithm")).
		WithContext("grant_error", ierrors.ErrorCodeInvalidGrantToken).
		WithContext("algorithm", algorithm)
}

// NewMissingClaimError creates a DomainError for a required grant token claim
// that is absent.
func NewMissingClaimError(op string, claim string) *ierrors.DomainError {
	return ierrors.New(domainHost, op, ierrors.ErrHostUnavailable, fmt.Errorf("missing claim: %s", claim)).
		WithContext("grant_error", ierrors.ErrorCodeMissingClaim).
		WithContext("missing_claim", claim)
}

// NewRenderError creates a DomainError for a prompt that could not be rendered.
func NewRenderError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainGate, op, ierrors.ErrInternal, err).
		WithContext("grant_error", ierrors.ErrorCodeRenderFailed)
}

// NewDisplayError creates a DomainError for a prompt the host UI refused to display.
func NewDisplayError(op string, container string, err error) *ierrors.DomainError {
	return ierrors.New(domainHost, op, ierrors.ErrHostUnavailable, err).
		WithContext("grant_error", ierrors.ErrorCodeDisplayFailed).
		WithContext("container", container)
}
