package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/controller"
	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/service"
	"github.com/rryowa/sagra_admin/internal/storage"
	"github.com/rryowa/sagra_admin/internal/util"
)

func ErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Errorw("HTTP error", "error", err, "uri", c.Request().RequestURI)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Errorw("failed to write json response", "error", err)
		}
	}
}

func errorResponse(err error) (int, models.ErrorResponse) {
	var (
		apiErr  *service.APIError
		respErr util.ResponseError
		he      *echo.HTTPError
	)

	switch {
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return status, models.ErrorResponse{Message: apiErr.Message}
	case errors.As(err, &respErr):
		return respErr.Status, models.ErrorResponse{Message: respErr.Msg}
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, models.ErrorResponse{Message: err.Error()}
	case isUnauthorizedSessionError(err):
		return http.StatusUnauthorized, models.ErrorResponse{
			Message:  service.MsgSessionExpired,
			Redirect: models.LoginPath,
		}
	case errors.As(err, &he):
		return he.Code, models.ErrorResponse{Message: fmt.Sprint(he.Message)}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{Message: "internal server error"}
	}
}

func isUnauthorizedSessionError(err error) bool {
	return errors.Is(err, service.ErrTokenExpired) ||
		errors.Is(err, service.ErrTokenInvalid) ||
		errors.Is(err, storage.ErrSessionNotFound) ||
		errors.Is(err, controller.ErrNoSessionCookie)
}
