package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
)

// (GET /api/v1/cash-registers).
func (c *Controller) ListCashRegisters(ctx echo.Context) error {
	out, err := c.services.CashRegisters.List(ctx.Request().Context(), ctx.QueryParam("include"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/cash-registers/{id}).
func (c *Controller) GetCashRegister(ctx echo.Context) error {
	out, err := c.services.CashRegisters.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (POST /api/v1/cash-registers).
func (c *Controller) CreateCashRegister(ctx echo.Context) error {
	var req models.CashRegisterRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.CashRegisters.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

// (PUT /api/v1/cash-registers/{id}).
func (c *Controller) UpdateCashRegister(ctx echo.Context) error {
	var req models.CashRegisterRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.CashRegisters.Update(ctx.Request().Context(), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (PATCH /api/v1/cash-registers/{id}).
func (c *Controller) SetCashRegisterEnabled(ctx echo.Context) error {
	var req models.EnabledPatch
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.CashRegisters.SetEnabled(ctx.Request().Context(), ctx.Param("id"), req.Enabled)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/cash-registers/{id}).
func (c *Controller) DeleteCashRegister(ctx echo.Context) error {
	return noContent(ctx, c.services.CashRegisters.Delete(ctx.Request().Context(), ctx.Param("id")))
}
