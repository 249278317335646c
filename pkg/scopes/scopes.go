// Package scopes provides shared scope identifier constants for the
// supported host surfaces.
//
// Scope identifiers are opaque keys; the gate never inspects their
// structure. The constants here name the scopes the host's permission model
// associates with each surface the add-on may run inside.
package scopes

import (
	"github.com/jamesprial/scope-auth-gate/internal/authgate/gatecore"
)

// Scope identifiers tracked by the host authorization subsystem.
const (
	// ContainerUI permits rendering rich dialog content inside the
	// active container. Without it the prompt degrades to a plain alert.
	ContainerUI = "scripthost:container.ui"

	// Spreadsheets grants access to the spreadsheet editor surface.
	Spreadsheets = "scripthost:spreadsheets"

	// Documents grants access to the document editor surface.
	Documents = "scripthost:documents"

	// Presentations grants access to the presentation editor surface.
	Presentations = "scripthost:presentations"

	// Forms grants access to the form editor surface.
	Forms = "scripthost:forms"
)

// containerScopes maps each probeable surface to the scope that probing it
// implicitly requests.
var containerScopes = map[gatecore.ContainerType]string{
	gatecore.ContainerSpreadsheet:  Spreadsheets,
	gatecore.ContainerDocument:     Documents,
	gatecore.ContainerPresentation: Presentations,
	gatecore.ContainerForm:         Forms,
}

// ForContainer returns the scope implied by probing the given container
// type, and whether the container is known.
func ForContainer(container gatecore.ContainerType) (string, bool) {
	scope, ok := containerScopes[container]
	return scope, ok
}

// Implied returns the deduplicated scope set a container-candidate list
// implies, in candidate order. Asking the host for a container's UI handle
// requires that container's scope, so a shorter candidate list means a
// smaller authorization request.
func Implied(containers []gatecore.ContainerType) []string {
	seen := make(map[string]bool, len(containers))
	var result []string
	for _, container := range containers {
		scope, ok := containerScopes[container]
		if !ok || seen[scope] {
			continue
		}
		seen[scope] = true
		result = append(result, scope)
	}
	return result
}
