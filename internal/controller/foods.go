package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/util"
)

// (GET /api/v1/foods).
func (c *Controller) ListFoods(ctx echo.Context) error {
	var (
		query      models.FoodQuery
		include    *string
		categories *[]string
	)
	params := ctx.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "include", params, &include); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid format for parameter include: %s", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "available", params, &query.Available); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid format for parameter available: %s", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "category", params, &categories); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid format for parameter category: %s", err)
	}

	if include != nil {
		query.Include = *include
	}
	if categories != nil {
		query.Category = *categories
	}

	out, err := c.services.Foods.List(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/foods/{id}).
func (c *Controller) GetFood(ctx echo.Context) error {
	out, err := c.services.Foods.Get(ctx.Request().Context(), ctx.Param("id"), ctx.QueryParam("include"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (POST /api/v1/foods).
func (c *Controller) CreateFood(ctx echo.Context) error {
	var req models.FoodRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Foods.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

// (PUT /api/v1/foods/{id}).
func (c *Controller) UpdateFood(ctx echo.Context) error {
	var req models.FoodRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Foods.Update(ctx.Request().Context(), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (PATCH /api/v1/foods/{id}).
func (c *Controller) SetFoodAvailability(ctx echo.Context) error {
	var req models.AvailabilityPatch
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Foods.SetAvailability(ctx.Request().Context(), ctx.Param("id"), req.Available)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/foods/{id}).
func (c *Controller) DeleteFood(ctx echo.Context) error {
	return noContent(ctx, c.services.Foods.Delete(ctx.Request().Context(), ctx.Param("id")))
}
