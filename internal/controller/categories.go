package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
)

// (GET /api/v1/categories).
func (c *Controller) ListCategories(ctx echo.Context) error {
	out, err := c.services.Categories.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/categories/{id}).
func (c *Controller) GetCategory(ctx echo.Context) error {
	out, err := c.services.Categories.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (POST /api/v1/categories).
func (c *Controller) CreateCategory(ctx echo.Context) error {
	var req models.CategoryRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Categories.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

// (PUT /api/v1/categories/{id}).
func (c *Controller) UpdateCategory(ctx echo.Context) error {
	var req models.CategoryUpdate
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Categories.Update(ctx.Request().Context(), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (PATCH /api/v1/categories/{id}).
func (c *Controller) SetCategoryAvailability(ctx echo.Context) error {
	var req models.AvailabilityPatch
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Categories.SetAvailability(ctx.Request().Context(), ctx.Param("id"), req.Available)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (PUT /api/v1/category-positions).
func (c *Controller) ReorderCategories(ctx echo.Context) error {
	var req []models.CategoryPosition
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Categories.Reorder(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/categories/{id}).
func (c *Controller) DeleteCategory(ctx echo.Context) error {
	return noContent(ctx, c.services.Categories.Delete(ctx.Request().Context(), ctx.Param("id")))
}

// (PATCH /api/v1/categories/{id}/image).
func (c *Controller) UploadCategoryImage(ctx echo.Context) error {
	req := ctx.Request()
	err := c.services.Categories.UploadImage(req.Context(), ctx.Param("id"), req.Body, req.Header.Get(echo.HeaderContentType))
	return noContent(ctx, err)
}
