// Package prompt renders and displays the re-authorization message.
package prompt

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/gatecore"
	"github.com/jamesprial/scope-auth-gate/internal/authgate/gateerr"
)

// dialogTitle is the title used for both the modal dialog and the alert.
const dialogTitle = "Authorization required"

// reauthHTML is the rich-content prompt body. The re-authorization link
// opens in a new tab so the add-on dialog stays visible while the user
// grants the outstanding scopes.
var reauthHTML = template.Must(template.New("reauth").Parse(`<!DOCTYPE html>
<html>
  <body>
    <p><b>{{.AppName}}</b> needs additional permissions before it can continue.</p>
    <p>
      <a href="{{.AuthorizationURL}}" target="_blank" rel="noopener">
        Review and grant permissions
      </a>
    </p>
    <p>After granting access, run the add-on again.</p>
  </body>
</html>
`))

// Presenter displays the re-authorization prompt through a host UI handle,
// falling back to a log entry when no UI exists.
type Presenter struct {
	appName string
	width   int
	height  int
	logger  zerolog.Logger
}

// NewPresenter creates a presenter. appName personalizes the message;
// width and height size the modal dialog in pixels.
func NewPresenter(appName string, width, height int, logger zerolog.Logger) *Presenter {
	return &Presenter{
		appName: appName,
		width:   width,
		height:  height,
		logger:  logger,
	}
}

// Present displays the prompt for the given grant snapshot.
//
// With a live UI and richUI permission the prompt is an HTML modal dialog
// with an embedded link. Without richUI permission the prompt degrades to a
// plain alert carrying the raw URL as copyable text. With no UI at all the
// condition is logged at warn level and Present returns nil. That is the
// one documented no-op path.
func (p *Presenter) Present(ctx context.Context, info *gatecore.AuthorizationInfo, active *gatecore.ActiveUI, richUI bool) error {
	if active == nil {
		p.logger.Warn().
			Str("authorization_url", info.AuthorizationURL).
			Msg("scope grants outstanding but no container UI is active; prompt not shown")
		return nil
	}

	if richUI {
		body, err := p.renderHTML(info.AuthorizationURL)
		if err != nil {
			return gateerr.NewRenderError("Present", err)
		}
		dialog := gatecore.Dialog{
			Title:  dialogTitle,
			HTML:   body,
			Width:  p.width,
			Height: p.height,
		}
		if err := active.Handle.ShowModalDialog(ctx, dialog); err != nil {
			return gateerr.NewDisplayError("Present", string(active.Container), err)
		}
		p.logger.Info().
			Str("container", string(active.Container)).
			Str("presentation", "modal").
			Msg("re-authorization prompt displayed")
		return nil
	}

	message := p.renderPlain(info.AuthorizationURL)
	if err := active.Handle.ShowAlert(ctx, dialogTitle, message); err != nil {
		return gateerr.NewDisplayError("Present", string(active.Container), err)
	}
	p.logger.Info().
		Str("container", string(active.Container)).
		Str("presentation", "alert").
		Msg("re-authorization prompt displayed")
	return nil
}

// renderHTML produces the rich dialog body.
func (p *Presenter) renderHTML(authorizationURL string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		AppName          string
		AuthorizationURL string
	}{
		AppName:          p.appName,
		AuthorizationURL: authorizationURL,
	}
	if err := reauthHTML.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render reauth dialog: %w", err)
	}
	return buf.String(), nil
}

// renderPlain produces the alert body with the raw URL as copyable text.
func (p *Presenter) renderPlain(authorizationURL string) string {
	return fmt.Sprintf(
		"%s needs additional permissions before it can continue.\n\n"+
			"Open this link to review and grant access, then run the add-on again:\n\n%s",
		p.appName, authorizationURL,
	)
}
