package authgate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	ierrors "github.com/jamesprial/scope-auth-gate/internal/errors"
)

// fakeAuthz is a fake AuthorizationService returning a fixed snapshot.
type fakeAuthz struct {
	info  *AuthorizationInfo
	err   error
	calls int
}

func (f *fakeAuthz) AuthorizationInfo(_ context.Context) (*AuthorizationInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// Copy so callers cannot mutate the fake's state.
	info := *f.info
	return &info, nil
}

// fakeHandle records displayed dialogs and alerts.
type fakeHandle struct {
	modals   []Dialog
	alerts   []string
	modalErr error
	alertErr error
}

func (f *fakeHandle) ShowModalDialog(_ context.Context, dialog Dialog) error {
	if f.modalErr != nil {
		return f.modalErr
	}
	f.modals = append(f.modals, dialog)
	return nil
}

func (f *fakeHandle) ShowAlert(_ context.Context, title, message string) error {
	if f.alertErr != nil {
		return f.alertErr
	}
	f.alerts = append(f.alerts, title+"\n"+message)
	return nil
}

// fakeUI is a fake UIService with a single active container.
type fakeUI struct {
	active ContainerType // empty means headless
	handle *fakeHandle
	err    error
}

func (f *fakeUI) ActiveUI(_ context.Context, container ContainerType) (UIHandle, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.active == "" || f.active != container {
		return nil, false, nil
	}
	return f.handle, true, nil
}

const testRichUIScope = "scripthost:container.ui"

func testConfig() *Config {
	return &Config{
		AppName:      "Test Add-on",
		Containers:   []ContainerType{ContainerSpreadsheet, ContainerDocument},
		RichUIScope:  testRichUIScope,
		DialogWidth:  420,
		DialogHeight: 250,
	}
}

func newTestGate(authz AuthorizationService, ui UIService) *Gate {
	return NewGateServices(testConfig(), authz, ui, zerolog.Nop())
}

func TestAllScopesGranted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status AuthorizationStatus
		want   bool
	}{
		{name: "host reports not required", status: StatusNotRequired, want: true},
		{name: "host reports required", status: StatusRequired, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			authz := &fakeAuthz{info: &AuthorizationInfo{Status: tt.status}}
			gate := newTestGate(authz, &fakeUI{})

			got, err := gate.AllScopesGranted(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAllScopesGranted_HostUnavailable(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{err: errors.New("authorization subsystem down")}
	gate := newTestGate(authz, &fakeUI{})

	_, err := gate.AllScopesGranted(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ierrors.ErrHostUnavailable)
}

func TestIsScopeMissing(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:        StatusRequired,
		GrantedScopes: []string{"A", "B"},
	}}
	gate := newTestGate(authz, &fakeUI{})

	tests := []struct {
		name  string
		scope string
		want  bool
	}{
		{name: "granted scope", scope: "A", want: false},
		{name: "ungranted scope", scope: "C", want: true},
		{name: "case sensitive", scope: "a", want: true},
		{name: "garbage input reports missing", scope: "not a scope at all", want: true},
		{name: "empty string", scope: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gate.IsScopeMissing(context.Background(), tt.scope)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHandleMissingGrants_Proceeds(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{info: &AuthorizationInfo{Status: StatusNotRequired}}
	handle := &fakeHandle{}
	gate := newTestGate(authz, &fakeUI{active: ContainerSpreadsheet, handle: handle})

	abort, err := gate.HandleMissingGrants(context.Background())
	require.NoError(t, err)
	require.False(t, abort)
	require.Empty(t, handle.modals)
	require.Empty(t, handle.alerts)
}

func TestHandleMissingGrants_RichPrompt(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:           StatusRequired,
		GrantedScopes:    []string{testRichUIScope},
		AuthorizationURL: "https://scripthost.invalid/grant",
	}}
	handle := &fakeHandle{}
	gate := newTestGate(authz, &fakeUI{active: ContainerSpreadsheet, handle: handle})

	abort, err := gate.HandleMissingGrants(context.Background())
	require.NoError(t, err)
	require.True(t, abort)

	require.Len(t, handle.modals, 1)
	require.Empty(t, handle.alerts)

	dialog := handle.modals[0]
	require.Equal(t, 420, dialog.Width)
	require.Equal(t, 250, dialog.Height)
	require.Contains(t, dialog.HTML, "Test Add-on")
	require.Contains(t, dialog.HTML, "https://scripthost.invalid/grant")
}

func TestHandleMissingGrants_AlertFallback(t *testing.T) {
	t.Parallel()

	// Rich-UI scope not granted: the prompt degrades to a plain alert
	// carrying the raw URL as copyable text.
	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:           StatusRequired,
		AuthorizationURL: "https://scripthost.invalid/grant",
	}}
	handle := &fakeHandle{}
	gate := newTestGate(authz, &fakeUI{active: ContainerDocument, handle: handle})

	abort, err := gate.HandleMissingGrants(context.Background())
	require.NoError(t, err)
	require.True(t, abort)

	require.Empty(t, handle.modals)
	require.Len(t, handle.alerts, 1)
	require.Contains(t, handle.alerts[0], "https://scripthost.invalid/grant")
	require.Contains(t, handle.alerts[0], "Test Add-on")
}

func TestHandleMissingGrants_NoUILogsOnly(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:           StatusRequired,
		AuthorizationURL: "https://scripthost.invalid/grant",
	}}

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	gate := NewGateServices(testConfig(), authz, &fakeUI{}, logger)

	abort, err := gate.HandleMissingGrants(context.Background())
	require.NoError(t, err)
	require.True(t, abort)
	require.Contains(t, logs.String(), "prompt not shown")
	require.Contains(t, logs.String(), "https://scripthost.invalid/grant")
}

func TestHandleMissingGrants_NoPromptSuppression(t *testing.T) {
	t.Parallel()

	// No "already prompted" state is retained: two calls with unchanged
	// host state produce two identical displays.
	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:           StatusRequired,
		GrantedScopes:    []string{testRichUIScope},
		AuthorizationURL: "https://scripthost.invalid/grant",
	}}
	handle := &fakeHandle{}
	gate := newTestGate(authz, &fakeUI{active: ContainerSpreadsheet, handle: handle})

	for i := 0; i < 2; i++ {
		abort, err := gate.HandleMissingGrants(context.Background())
		require.NoError(t, err)
		require.True(t, abort)
	}

	require.Len(t, handle.modals, 2)
	require.Equal(t, handle.modals[0], handle.modals[1])
}

func TestHandleMissingGrants_HostUnavailable(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{err: errors.New("authorization subsystem down")}
	gate := newTestGate(authz, &fakeUI{})

	abort, err := gate.HandleMissingGrants(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ierrors.ErrHostUnavailable)
	require.False(t, abort)
}

func TestHandleMissingGrants_AbortsEvenWhenDisplayFails(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:           StatusRequired,
		GrantedScopes:    []string{testRichUIScope},
		AuthorizationURL: "https://scripthost.invalid/grant",
	}}
	handle := &fakeHandle{modalErr: errors.New("dialog service down")}
	gate := newTestGate(authz, &fakeUI{active: ContainerSpreadsheet, handle: handle})

	abort, err := gate.HandleMissingGrants(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ierrors.ErrHostUnavailable)
	require.True(t, abort)
}

func TestPresentReauthPrompt_UIServiceFailure(t *testing.T) {
	t.Parallel()

	authz := &fakeAuthz{info: &AuthorizationInfo{
		Status:           StatusRequired,
		AuthorizationURL: "https://scripthost.invalid/grant",
	}}
	gate := newTestGate(authz, &fakeUI{err: errors.New("ui subsystem down")})

	err := gate.PresentReauthPrompt(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ierrors.ErrHostUnavailable)
	require.True(t, strings.Contains(err.Error(), "ui subsystem down"))
}
