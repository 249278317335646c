// Package grants implements an AuthorizationService for hosts that expose
// the user's grant state as a signed grant token.
//
// The token carries the user's granted scopes in a space-separated "scope"
// claim. The source verifies the signature against an injected host public
// key (no network key discovery) and derives the overall status by comparing
// the granted set against the scopes the add-on manifest declares.
package grants

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/gatecore"
	"github.com/jamesprial/scope-auth-gate/internal/authgate/gateerr"
)

// TokenProvider supplies the host's current grant token.
// Implementations must return a fresh token on every call so each
// invocation sees the user's current grant state.
type TokenProvider interface {
	GrantToken(ctx context.Context) (string, error)
}

// Whitelisted signing algorithms. Algorithm confusion attacks are prevented
// by explicitly validating the algorithm before verification.
var allowedAlgorithms = map[string]bool{
	"RS256": true,
	"RS384": true,
	"RS512": true,
	"ES256": true,
	"ES384": true,
	"ES512": true,
}

// Source derives AuthorizationInfo snapshots from signed grant tokens.
type Source struct {
	tokens         TokenProvider
	key            any
	manifestScopes []string
	reauthBaseURL  string
	clockSkew      time.Duration
}

// NewSource creates a grant token source.
//
// key is the host's public verification key (typically *rsa.PublicKey or
// *ecdsa.PublicKey). manifestScopes are the scopes the add-on manifest
// declares; the derived status is StatusRequired while any of them is
// ungranted. reauthBaseURL is the host's grant page; the missing scopes are
// appended as a space-separated "scope" query parameter.
func NewSource(tokens TokenProvider, key any, manifestScopes []string, reauthBaseURL string, clockSkew time.Duration) *Source {
	return &Source{
		tokens:         tokens,
		key:            key,
		manifestScopes: manifestScopes,
		reauthBaseURL:  reauthBaseURL,
		clockSkew:      clockSkew,
	}
}

// AuthorizationInfo parses and verifies the current grant token and returns
// the grant snapshot it describes.
func (s *Source) AuthorizationInfo(ctx context.Context) (*gatecore.AuthorizationInfo, error) {
	raw, err := s.tokens.GrantToken(ctx)
	if err != nil {
		return nil, gateerr.NewHostUnavailableError("AuthorizationInfo", err)
	}

	granted, err := s.parseGrantedScopes(raw)
	if err != nil {
		return nil, err
	}

	info := &gatecore.AuthorizationInfo{
		Status:        gatecore.StatusNotRequired,
		GrantedScopes: granted,
	}

	missing := info.MissingScopes(s.manifestScopes...)
	if len(missing) > 0 {
		info.Status = gatecore.StatusRequired
	}

	reauthURL, err := s.buildReauthURL(missing)
	if err != nil {
		return nil, gateerr.NewInvalidGrantTokenError("AuthorizationInfo", err)
	}
	info.AuthorizationURL = reauthURL

	return info, nil
}

// parseGrantedScopes verifies the token and extracts the "scope" claim.
// A token with no scope claim is valid and yields an empty granted set.
func (s *Source) parseGrantedScopes(raw string) ([]string, error) {
	// Parse without verification first to get the header.
	parser := jwt.NewParser(
		jwt.WithoutClaimsValidation(),
	)
	unverified, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, gateerr.NewInvalidGrantTokenError("parseGrantedScopes", fmt.Errorf("failed to parse grant token: %w", err))
	}

	alg, ok := unverified.Header["alg"].(string)
	if !ok || alg == "" {
		return nil, gateerr.NewUnsupportedAlgorithmError("parseGrantedScopes", "none")
	}
	if !allowedAlgorithms[alg] {
		return nil, gateerr.NewUnsupportedAlgorithmError("parseGrantedScopes", alg)
	}

	verified, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != alg {
			return nil, gateerr.NewUnsupportedAlgorithmError("parseGrantedScopes", t.Method.Alg())
		}
		return s.key, nil
	}, jwt.WithLeeway(s.clockSkew))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, gateerr.NewInvalidGrantTokenError("parseGrantedScopes", fmt.Errorf("grant token expired: %w", err))
		}
		return nil, gateerr.NewInvalidGrantTokenError("parseGrantedScopes", err)
	}
	if !verified.Valid {
		return nil, gateerr.NewInvalidGrantTokenError("parseGrantedScopes", fmt.Errorf("grant token is invalid"))
	}

	mapClaims, ok := verified.Claims.(jwt.MapClaims)
	if !ok {
		return nil, gateerr.NewInvalidGrantTokenError("parseGrantedScopes", fmt.Errorf("invalid claims type"))
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, gateerr.NewMissingClaimError("parseGrantedScopes", "sub")
	}

	if scopeStr, ok := mapClaims["scope"].(string); ok {
		return parseScopes(scopeStr), nil
	}
	return nil, nil
}

// buildReauthURL appends the missing scopes to the configured grant page URL.
func (s *Source) buildReauthURL(missing []string) (string, error) {
	u, err := url.Parse(s.reauthBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid reauth base URL: %w", err)
	}
	if len(missing) > 0 {
		q := u.Query()
		q.Set("scope", strings.Join(missing, " "))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// parseScopes parses a space-separated scope string into a slice.
func parseScopes(scopeStr string) []string {
	if scopeStr == "" {
		return nil
	}

	parts := strings.Split(scopeStr, " ")
	var scopes []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			scopes = append(scopes, trimmed)
		}
	}
	return scopes
}
