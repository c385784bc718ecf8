package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/service"
)

var ErrNoSessionCookie = errors.New("no session cookie")

// SessionCookies reads and writes the browser session cookie.
type SessionCookies struct {
	tokens *service.SessionTokenService
	secure bool
}

func NewSessionCookies(tokens *service.SessionTokenService, secure bool) *SessionCookies {
	return &SessionCookies{tokens: tokens, secure: secure}
}

func (sc *SessionCookies) Set(ctx echo.Context, sessionID string) error {
	value, err := sc.tokens.Issue(sessionID, service.NowTimeFunc())
	if err != nil {
		return err
	}
	ctx.SetCookie(sc.cookie(value, int(sc.tokens.MaxAge()/time.Second)))
	return nil
}

func (sc *SessionCookies) Clear(ctx echo.Context) {
	ctx.SetCookie(sc.cookie("", -1))
}

// SessionID returns the session named by the request cookie.
func (sc *SessionCookies) SessionID(ctx echo.Context) (string, error) {
	cookie, err := ctx.Cookie(models.SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionCookie
	}
	return sc.tokens.Parse(cookie.Value)
}

// PreviousSessionID is like SessionID but also accepts an expired cookie,
// as long as its signature is valid.
func (sc *SessionCookies) PreviousSessionID(ctx echo.Context) (string, error) {
	cookie, err := ctx.Cookie(models.SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionCookie
	}
	return sc.tokens.ParseIgnoringExpiry(cookie.Value)
}

func (sc *SessionCookies) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     models.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
