// Package hostsim provides an in-memory simulation of the host runtime's
// authorization and UI subsystems for demos and integration tests.
//
// The simulated host keeps a mutable granted-scope set and at most one
// active container, and renders "dialogs" to an io.Writer.
package hostsim

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/gatecore"
)

// Host simulates the host runtime. It implements both
// gatecore.AuthorizationService and gatecore.UIService.
type Host struct {
	mu             sync.Mutex
	manifestScopes []string
	granted        map[string]bool
	reauthBaseURL  string
	active         gatecore.ContainerType // empty means headless
	out            io.Writer

	authErr error
	uiErr   error
}

// New creates a simulated host with no grants and no active container.
// manifestScopes are the scopes the add-on manifest declares; dialogs are
// rendered to out.
func New(manifestScopes []string, reauthBaseURL string, out io.Writer) *Host {
	return &Host{
		manifestScopes: manifestScopes,
		granted:        make(map[string]bool),
		reauthBaseURL:  reauthBaseURL,
		out:            out,
	}
}

// Grant marks scopes as granted by the simulated user.
func (h *Host) Grant(scopes ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range scopes {
		h.granted[s] = true
	}
}

// Revoke removes scopes from the granted set.
func (h *Host) Revoke(scopes ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range scopes {
		delete(h.granted, s)
	}
}

// SetActive makes the given container the active surface.
func (h *Host) SetActive(container gatecore.ContainerType) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = container
}

// SetHeadless removes the active container, simulating trigger-driven
// execution with no editor open.
func (h *Host) SetHeadless() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = ""
}

// FailAuthorization makes subsequent authorization queries fail with err,
// simulating a host authorization subsystem outage. Pass nil to recover.
func (h *Host) FailAuthorization(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.authErr = err
}

// FailUI makes subsequent UI handle acquisitions fail with err, simulating
// a host UI subsystem outage. Pass nil to recover.
func (h *Host) FailUI(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uiErr = err
}

// AuthorizationInfo implements gatecore.AuthorizationService.
// Each call returns a fresh snapshot of the simulated grant state.
func (h *Host) AuthorizationInfo(_ context.Context) (*gatecore.AuthorizationInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.authErr != nil {
		return nil, h.authErr
	}

	info := &gatecore.AuthorizationInfo{
		Status:           gatecore.StatusNotRequired,
		AuthorizationURL: h.reauthBaseURL,
	}
	for scope := range h.granted {
		info.GrantedScopes = append(info.GrantedScopes, scope)
	}
	for _, scope := range h.manifestScopes {
		if !h.granted[scope] {
			info.Status = gatecore.StatusRequired
			break
		}
	}
	return info, nil
}

// ActiveUI implements gatecore.UIService.
func (h *Host) ActiveUI(_ context.Context, container gatecore.ContainerType) (gatecore.UIHandle, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.uiErr != nil {
		return nil, false, h.uiErr
	}
	if h.active == "" || h.active != container {
		return nil, false, nil
	}
	return &consoleUI{container: container, out: h.out}, true, nil
}

// consoleUI renders dialogs as text frames on the host's writer.
type consoleUI struct {
	container gatecore.ContainerType
	out       io.Writer
}

func (u *consoleUI) ShowModalDialog(_ context.Context, dialog gatecore.Dialog) error {
	_, err := fmt.Fprintf(u.out,
		"=== modal dialog (%s, %dx%d) ===\n[%s]\n%s\n=== end dialog ===\n",
		u.container, dialog.Width, dialog.Height, dialog.Title, strings.TrimSpace(dialog.HTML))
	return err
}

func (u *consoleUI) ShowAlert(_ context.Context, title, message string) error {
	_, err := fmt.Fprintf(u.out,
		"=== alert (%s) ===\n[%s]\n%s\n[OK]\n=== end alert ===\n",
		u.container, title, message)
	return err
}
