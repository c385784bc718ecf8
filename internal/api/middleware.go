package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/controller"
	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/service"
	"github.com/rryowa/sagra_admin/internal/storage"
)

// SessionMiddleware resolves the session cookie, refreshing the record when
// needed. Sessions that are gone or in the terminal error state are signed
// out and answered with 401 and a redirect to the login page. Otherwise the
// session is stored in the echo context and its ID in the request context.
func SessionMiddleware(cookies *controller.SessionCookies, observer *service.Observer, log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := cookies.SessionID(c)
			if err != nil {
				if !errors.Is(err, controller.ErrNoSessionCookie) {
					cookies.Clear(c)
				}
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Message:  service.MsgSessionExpired,
					Redirect: models.LoginPath,
				})
			}

			session, signedOut, err := observer.Inspect(c.Request().Context(), id)
			switch {
			case errors.Is(err, storage.ErrSessionNotFound):
				cookies.Clear(c)
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Message:  service.MsgSessionExpired,
					Redirect: models.LoginPath,
				})
			case signedOut:
				if err != nil {
					log.Warnw("forced sign-out incomplete", "sessionID", id, "error", err)
				}
				cookies.Clear(c)
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Message:  service.MsgSessionExpired,
					Error:    session.Error,
					Redirect: models.LoginPath,
				})
			case err != nil:
				return err
			}

			c.Set(models.MwSessionIDKey, id)
			c.Set(models.MwSessionKey, session)
			c.SetRequest(c.Request().WithContext(service.WithSessionID(c.Request().Context(), id)))

			return next(c)
		}
	}
}

func GetLoggerMiddlewareConfig(a *API) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,

		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status,
			}
			if id, ok := c.Get(models.MwSessionIDKey).(string); ok {
				fields = append(fields, "sessionID", id)
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
				a.log.Errorw("Request", fields...)
			} else {
				a.log.Infow("Request", fields...)
			}
			return nil
		},
	}
}
