package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/service"
	"github.com/rryowa/sagra_admin/internal/util"
)

// Services groups the business actions the handlers dispatch to.
type Services struct {
	Categories    *service.CategoryService
	Foods         *service.FoodService
	Ingredients   *service.IngredientService
	Printers      *service.PrinterService
	CashRegisters *service.CashRegisterService
	Users         *service.UserService
	Orders        *service.OrderService
}

type Controller struct {
	zapLogger *zap.SugaredLogger
	sessions  *service.SessionManager
	observer  *service.Observer
	cookies   *SessionCookies
	services  Services
}

func NewController(
	logger *zap.SugaredLogger,
	sessions *service.SessionManager,
	observer *service.Observer,
	cookies *SessionCookies,
	services Services,
) *Controller {
	return &Controller{
		zapLogger: logger,
		sessions:  sessions,
		observer:  observer,
		cookies:   cookies,
		services:  services,
	}
}

// (GET /api/ping).
func (c *Controller) CheckServer(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, "ok")
}

func bindBody(ctx echo.Context, dest interface{}) error {
	if err := ctx.Bind(dest); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func orderID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, util.NewResponseError(http.StatusBadRequest, "invalid order id %q", ctx.Param("id"))
	}
	return id, nil
}

func noContent(ctx echo.Context, err error) error {
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
