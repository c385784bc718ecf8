package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/sagra_admin/internal/models"
)

// (GET /api/v1/users).
func (c *Controller) ListUsers(ctx echo.Context) error {
	out, err := c.services.Users.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (GET /api/v1/users/{id}).
func (c *Controller) GetUser(ctx echo.Context) error {
	out, err := c.services.Users.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (POST /api/v1/users).
func (c *Controller) CreateUser(ctx echo.Context) error {
	var req models.UserRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Users.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

// (PUT /api/v1/users/{id}).
func (c *Controller) UpdateUser(ctx echo.Context) error {
	var req models.UserRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	out, err := c.services.Users.Update(ctx.Request().Context(), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

// (DELETE /api/v1/users/{id}).
func (c *Controller) DeleteUser(ctx echo.Context) error {
	return noContent(ctx, c.services.Users.Delete(ctx.Request().Context(), ctx.Param("id")))
}

// (GET /api/v1/roles).
func (c *Controller) ListRoles(ctx echo.Context) error {
	out, err := c.services.Users.Roles(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}
