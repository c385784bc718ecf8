package models

import "time"

// SessionErrorRefreshAccessToken marks a session that can no longer mint
// access tokens. Only a fresh login clears it.
const SessionErrorRefreshAccessToken = "RefreshAccessTokenError"

type SessionState int

const (
	StateFresh SessionState = iota
	StateExpiredRefreshable
	StateExpiredUnrefreshable
	StateRefreshFailed
)

func (s SessionState) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateExpiredRefreshable:
		return "expired_refreshable"
	case StateExpiredUnrefreshable:
		return "expired_unrefreshable"
	case StateRefreshFailed:
		return "refresh_failed"
	default:
		return "unknown"
	}
}

// Session is the server-side record behind a browser's session cookie.
type Session struct {
	ID          string `json:"id"`
	Generation  int64  `json:"generation"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`

	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	// AccessTokenExpiresAt is in epoch milliseconds.
	AccessTokenExpiresAt int64  `json:"accessTokenExpiresAt"`
	Error                string `json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) AccessTokenExpired(now time.Time) bool {
	return now.UnixMilli() >= s.AccessTokenExpiresAt
}

func (s *Session) Terminal() bool {
	return s.Error != ""
}

func (s *Session) State(now time.Time) SessionState {
	switch {
	case s.Terminal() && s.RefreshToken == "":
		return StateExpiredUnrefreshable
	case s.Terminal():
		return StateRefreshFailed
	case !s.AccessTokenExpired(now):
		return StateFresh
	case s.RefreshToken == "":
		return StateExpiredUnrefreshable
	default:
		return StateExpiredRefreshable
	}
}

// TTL is the remaining lifetime of the session record itself.
func (s *Session) TTL(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	if ttl := s.ExpiresAt.Sub(now); ttl > 0 {
		return ttl
	}
	return time.Millisecond
}

// SessionView is what the browser gets to see of its session.
type SessionView struct {
	User                 SessionUser `json:"user"`
	AccessTokenExpiresAt int64       `json:"accessTokenExpiresAt"`
	Error                string      `json:"error,omitempty"`
}

type SessionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (s *Session) View() SessionView {
	return SessionView{
		User: SessionUser{
			ID:   s.UserID,
			Name: s.DisplayName,
			Role: s.Role,
		},
		AccessTokenExpiresAt: s.AccessTokenExpiresAt,
		Error:                s.Error,
	}
}
