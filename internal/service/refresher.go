package service

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/models"
)

// Refresher trades a refresh token for a new access token.
type Refresher struct {
	client    *http.Client
	apiURL    string
	transport RefreshTransport
	log       *zap.SugaredLogger
}

func NewRefresher(client *http.Client, apiURL string, transport RefreshTransport, log *zap.SugaredLogger) *Refresher {
	return &Refresher{
		client:    client,
		apiURL:    apiURL,
		transport: transport,
		log:       log,
	}
}

// Refresh returns the session with a new access token. It does not fail:
// on any error the returned copy has Error set and keeps the previous
// tokens so callers can see what was last valid.
func (r *Refresher) Refresh(ctx context.Context, session models.Session) models.Session {
	failed := session
	failed.Error = models.SessionErrorRefreshAccessToken

	if session.RefreshToken == "" {
		r.log.Warnw("refresh requested without a refresh token", "sessionID", session.ID)
		return failed
	}

	req, err := r.transport.NewRequest(ctx, r.apiURL+models.EndpointRefresh, session.RefreshToken)
	if err != nil {
		r.log.Errorw("failed to create refresh request", "sessionID", session.ID, "error", err)
		return failed
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Errorw("refresh request failed", "sessionID", session.ID, "error", err)
		return failed
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		r.log.Warnw("refresh token rejected", "sessionID", session.ID, "status", resp.StatusCode,
			"reason", errorMessage(resp.StatusCode, resp.Body))
		return failed
	}

	var body models.RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.log.Warnw("malformed refresh response", "sessionID", session.ID, "error", err)
		return failed
	}
	if body.AccessToken == "" {
		r.log.Warnw("no access token in refresh response", "sessionID", session.ID)
		return failed
	}

	refreshed := session
	refreshed.AccessToken = body.AccessToken
	if rotated := extractRefreshToken(body.RefreshToken, resp); rotated != "" {
		refreshed.RefreshToken = rotated
	}
	refreshed.AccessTokenExpiresAt = NowTimeFunc().Add(expiresIn(body.ExpiresIn)).UnixMilli()
	refreshed.Error = ""

	r.log.Infow("token refreshed", "sessionID", session.ID, "transport", r.transport.Name(),
		"rotated", refreshed.RefreshToken != session.RefreshToken)
	return refreshed
}
