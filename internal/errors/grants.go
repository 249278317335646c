package errors

import (
	"fmt"
	"strings"
)

// Grant error codes attached to DomainError context and log fields.
const (
	// ErrorCodeGrantsRequired indicates one or more manifest scopes are
	// still pending a user grant.
	ErrorCodeGrantsRequired = "grants_required"

	// ErrorCodeInvalidGrantToken indicates the host's grant token could
	// not be parsed or verified.
	ErrorCodeInvalidGrantToken = "invalid_grant_token"

	// ErrorCodeMissingClaim indicates a required claim is absent from
	// the grant token.
	ErrorCodeMissingClaim = "missing_claim"

	// ErrorCodeRenderFailed indicates the re-authorization prompt could
	// not be rendered.
	ErrorCodeRenderFailed = "render_failed"

	// ErrorCodeDisplayFailed indicates the host UI refused to display
	// the rendered prompt.
	ErrorCodeDisplayFailed = "display_failed"
)

// GrantError describes an outstanding-grant condition in a form suitable
// for logs and diagnostics. It is not user-facing; user-facing text is
// produced by the prompt renderer.
type GrantError struct {
	// Code is one of the grant error codes above.
	Code string

	// Description is a human-readable summary for logs.
	Description string

	// MissingScopes lists the scope identifiers still pending a grant.
	MissingScopes []string
}

// Error implements the error interface.
func (e *GrantError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// NewGrantError creates a new GrantError with the given code and description.
func NewGrantError(code, description string) *GrantError {
	return &GrantError{
		Code:        code,
		Description: description,
	}
}

// WithMissingScopes sets the missing scope list and returns the error for chaining.
func (e *GrantError) WithMissingScopes(scopes []string) *GrantError {
	e.MissingScopes = scopes
	return e
}

// Summary formats the error for a single structured log field.
//
// Example output:
//
//	grants_required: user has not granted all manifest scopes (missing: scripthost:spreadsheets, scripthost:container.ui)
func (e *GrantError) Summary() string {
	if len(e.MissingScopes) == 0 {
		return e.Error()
	}
	return fmt.Sprintf("%s (missing: %s)", e.Error(), strings.Join(e.MissingScopes, ", "))
}
