package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/util"
)

// (GET /api/v1/orders).
func (c *Controller) ListOrders(ctx echo.Context) error {
	query, err := bindOrderQuery(ctx)
	if err != nil {
		return err
	}
	out, err := c.services.Orders.List(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/orders/{id}).
func (c *Controller) GetOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	out, err := c.services.Orders.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (PATCH /api/v1/orders/{id}).
func (c *Controller) SetOrderStatus(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	var req models.OrderStatusPatch
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	return noContent(ctx, c.services.Orders.SetStatus(ctx.Request().Context(), id, req.Status))
}

// (POST /api/v1/orders/{id}/confirm).
func (c *Controller) ConfirmOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	out, err := c.services.Orders.Confirm(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/orders/{id}).
func (c *Controller) DeleteOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, c.services.Orders.Delete(ctx.Request().Context(), id))
}

// ListOrdersParams mirrors the optional query parameters of the listing.
type ListOrdersParams struct {
	Search      *string   `form:"search,omitempty"`
	DisplayCode *string   `form:"displayCode,omitempty"`
	Page        *int      `form:"page,omitempty"`
	Limit       *int      `form:"limit,omitempty"`
	Status      *[]string `form:"status,omitempty"`
	DateFrom    *string   `form:"dateFrom,omitempty"`
	DateTo      *string   `form:"dateTo,omitempty"`
}

func bindOrderQuery(ctx echo.Context) (models.OrderQuery, error) {
	var params ListOrdersParams
	values := ctx.QueryParams()

	bindings := []struct {
		name string
		dest interface{}
	}{
		{"search", &params.Search},
		{"displayCode", &params.DisplayCode},
		{"page", &params.Page},
		{"limit", &params.Limit},
		{"status", &params.Status},
		{"dateFrom", &params.DateFrom},
		{"dateTo", &params.DateTo},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, values, b.dest); err != nil {
			return models.OrderQuery{}, util.NewResponseError(http.StatusBadRequest, "invalid format for parameter %s: %s", b.name, err)
		}
	}

	query := models.OrderQuery{
		Search:      deref(params.Search),
		DisplayCode: deref(params.DisplayCode),
		DateFrom:    deref(params.DateFrom),
		DateTo:      deref(params.DateTo),
	}
	if params.Page != nil {
		query.Page = *params.Page
	}
	if params.Limit != nil {
		query.Limit = *params.Limit
	}
	if params.Status != nil {
		for _, s := range *params.Status {
			query.Status = append(query.Status, models.OrderStatus(s))
		}
	}
	return query, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
