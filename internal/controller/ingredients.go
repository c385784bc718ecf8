package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
)

// (GET /api/v1/ingredients).
func (c *Controller) ListIngredients(ctx echo.Context) error {
	out, err := c.services.Ingredients.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/ingredients/{id}).
func (c *Controller) GetIngredient(ctx echo.Context) error {
	out, err := c.services.Ingredients.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (POST /api/v1/ingredients).
func (c *Controller) CreateIngredient(ctx echo.Context) error {
	var req models.IngredientRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Ingredients.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

// (PUT /api/v1/ingredients/{id}).
func (c *Controller) UpdateIngredient(ctx echo.Context) error {
	var req models.IngredientRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Ingredients.Update(ctx.Request().Context(), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/ingredients/{id}).
func (c *Controller) DeleteIngredient(ctx echo.Context) error {
	return noContent(ctx, c.services.Ingredients.Delete(ctx.Request().Context(), ctx.Param("id")))
}
