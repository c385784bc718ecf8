package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/util"
)

// RefreshTransport decides how the refresh token travels to the backend.
// Backend versions differ: older ones read a JSON body, newer ones a cookie.
type RefreshTransport interface {
	Name() string
	NewRequest(ctx context.Context, url, refreshToken string) (*http.Request, error)
}

type bodyTransport struct{}

func (bodyTransport) Name() string { return util.RefreshTransportBody }

func (bodyTransport) NewRequest(ctx context.Context, url, refreshToken string) (*http.Request, error) {
	payload, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, fmt.Errorf("marshal refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

type cookieTransport struct{}

func (cookieTransport) Name() string { return util.RefreshTransportCookie }

func (cookieTransport) NewRequest(ctx context.Context, url, refreshToken string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: models.RefreshTokenCookie, Value: refreshToken})
	return req, nil
}

func NewRefreshTransport(name string) (RefreshTransport, error) {
	switch name {
	case "", util.RefreshTransportBody:
		return bodyTransport{}, nil
	case util.RefreshTransportCookie:
		return cookieTransport{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown refresh transport %q", ErrInvalidInput, name)
	}
}

// refreshTokenSource pulls a refresh token out of a backend response.
type refreshTokenSource func(bodyToken string, resp *http.Response) string

// refreshTokenSources are tried in order; the body field wins over cookies.
//
//nolint:gochecknoglobals // fixed strategy table
var refreshTokenSources = []refreshTokenSource{
	fromBodyField,
	fromSetCookie,
}

func fromBodyField(bodyToken string, _ *http.Response) string {
	return bodyToken
}

func fromSetCookie(_ string, resp *http.Response) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Cookies() {
		if c.Name == models.RefreshTokenCookie && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

func extractRefreshToken(bodyToken string, resp *http.Response) string {
	for _, source := range refreshTokenSources {
		if token := source(bodyToken, resp); token != "" {
			return token
		}
	}
	return ""
}
