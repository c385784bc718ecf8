package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/models"
)

const (
	defaultUserID = "1"
	defaultRole   = "admin"
)

// Grant is what the backend hands out for a successful login.
type Grant struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	UserID       string
	DisplayName  string
	Role         string
}

// Authenticator exchanges a username/password pair for a token grant.
type Authenticator struct {
	client *http.Client
	apiURL string
	log    *zap.SugaredLogger
}

func NewAuthenticator(client *http.Client, apiURL string, log *zap.SugaredLogger) *Authenticator {
	return &Authenticator{
		client: client,
		apiURL: apiURL,
		log:    log,
	}
}

// Authenticate never reports why the backend refused: a rejected password,
// an error status and a malformed body all come back as
// FailureInvalidCredentials. Only transport failures are told apart.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Grant, FailureKind) {
	if username == "" || password == "" {
		return nil, FailureInvalidCredentials
	}

	payload, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		a.log.Errorw("failed to marshal login request", "error", err)
		return nil, FailureLogin
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL+models.EndpointLogin, bytes.NewReader(payload))
	if err != nil {
		a.log.Errorw("failed to create login request", "error", err)
		return nil, FailureLogin
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Errorw("login request failed", "error", err)
		return nil, FailureLogin
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		a.log.Warnw("login rejected", "status", resp.StatusCode, "reason", errorMessage(resp.StatusCode, resp.Body))
		return nil, FailureInvalidCredentials
	}

	var body models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		a.log.Warnw("malformed login response", "error", err)
		return nil, FailureInvalidCredentials
	}
	if body.AccessToken == "" {
		a.log.Warn("no access token in login response")
		return nil, FailureInvalidCredentials
	}

	grant := &Grant{
		AccessToken:  body.AccessToken,
		RefreshToken: extractRefreshToken(body.RefreshToken, resp),
		ExpiresIn:    expiresIn(body.ExpiresIn),
		UserID:       defaultUserID,
		DisplayName:  username,
		Role:         defaultRole,
	}
	if u := body.User; u != nil {
		if u.ID != "" {
			grant.UserID = u.ID.String()
		}
		if u.Username != "" {
			grant.DisplayName = u.Username
		}
		if u.Role != "" {
			grant.Role = u.Role
		}
	}

	a.log.Infow("login successful", "user", grant.DisplayName, "hasRefreshToken", grant.RefreshToken != "")
	return grant, FailureNone
}
