package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/service"
)

// (POST /auth/login).
func (c *Controller) Login(ctx echo.Context) error {
	var req models.LoginRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	// A previous cookie, even an expired one, lets the new login take over
	// the same session slot.
	existingID, _ := c.cookies.PreviousSessionID(ctx)

	result := c.sessions.Login(ctx.Request().Context(), existingID, req.Username, req.Password)
	if !result.OK() {
		c.zapLogger.Infow("login failed", "user", req.Username, "failure", result.Failure.String())
		return ctx.JSON(loginFailureStatus(result.Failure), models.LoginResult{
			Success: false,
			Error:   result.Message(),
		})
	}

	if err := c.cookies.Set(ctx, result.Session.ID); err != nil {
		return err
	}

	user := result.Session.View().User
	return ctx.JSON(http.StatusOK, models.LoginResult{Success: true, User: &user})
}

// (POST /auth/logout).
func (c *Controller) Logout(ctx echo.Context) error {
	if id, err := c.cookies.SessionID(ctx); err == nil {
		if err := c.sessions.Logout(ctx.Request().Context(), id); err != nil {
			return err
		}
	}
	c.cookies.Clear(ctx)
	return ctx.JSON(http.StatusOK, models.LogoutResult{Success: true})
}

// (GET /auth/session). Polled by the UI every few minutes and on refocus;
// the session middleware has already refreshed or signed out the record.
func (c *Controller) Session(ctx echo.Context) error {
	session, ok := ctx.Get(models.MwSessionKey).(*models.Session)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message:  service.MsgSessionExpired,
			Redirect: models.LoginPath,
		})
	}
	return ctx.JSON(http.StatusOK, session.View())
}

// (GET /auth/session/events). Server-sent events for an open page. The
// stream ends with a signout event once the session is forcibly signed out
// or removed elsewhere.
func (c *Controller) SessionEvents(ctx echo.Context) error {
	id, _ := ctx.Get(models.MwSessionIDKey).(string)

	w := ctx.Response()
	// The stream outlives the server write timeout.
	_ = http.NewResponseController(w.Writer).SetWriteDeadline(time.Time{})

	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": watching\n\n"); err != nil {
		return nil
	}
	w.Flush()

	var reason string
	err := c.observer.Watch(ctx.Request().Context(), id, nil, func() {
		reason = models.SessionErrorRefreshAccessToken
	})
	if err != nil {
		c.zapLogger.Debugw("session event stream closed", "sessionID", id, "error", err)
		return nil
	}

	payload, err := json.Marshal(models.ErrorResponse{
		Message:  service.MsgSessionExpired,
		Error:    reason,
		Redirect: models.LoginPath,
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: signout\ndata: %s\n\n", payload); err != nil {
		return nil
	}
	w.Flush()
	return nil
}

func loginFailureStatus(kind service.FailureKind) int {
	switch kind {
	case service.FailureInvalidCredentials:
		return http.StatusUnauthorized
	case service.FailureAuthentication:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
