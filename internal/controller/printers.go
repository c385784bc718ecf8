package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
)

// (GET /api/v1/printers).
func (c *Controller) ListPrinters(ctx echo.Context) error {
	out, err := c.services.Printers.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/printers/{id}).
func (c *Controller) GetPrinter(ctx echo.Context) error {
	out, err := c.services.Printers.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (POST /api/v1/printers).
func (c *Controller) CreatePrinter(ctx echo.Context) error {
	var req models.PrinterRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Printers.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

// (PUT /api/v1/printers/{id}).
func (c *Controller) UpdatePrinter(ctx echo.Context) error {
	var req models.PrinterRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Printers.Update(ctx.Request().Context(), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (PATCH /api/v1/printers/{id}).
func (c *Controller) SetPrinterStatus(ctx echo.Context) error {
	var req models.PrinterStatusPatch
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Printers.SetStatus(ctx.Request().Context(), ctx.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/printers/{id}).
func (c *Controller) DeletePrinter(ctx echo.Context) error {
	return noContent(ctx, c.services.Printers.Delete(ctx.Request().Context(), ctx.Param("id")))
}
