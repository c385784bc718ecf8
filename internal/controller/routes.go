package controller

import (
	"github.com/labstack/echo/v4"
)

// RegisterHandlers wires every route onto e. requireSession guards the
// routes that act on behalf of a signed-in user.
func RegisterHandlers(e *echo.Echo, c *Controller, requireSession echo.MiddlewareFunc) {
	e.GET("/api/ping", c.CheckServer)

	auth := e.Group("/auth")
	auth.POST("/login", c.Login)
	auth.POST("/logout", c.Logout)
	auth.GET("/session", c.Session, requireSession)
	auth.GET("/session/events", c.SessionEvents, requireSession)

	v1 := e.Group("/api/v1", requireSession)

	v1.GET("/categories", c.ListCategories)
	v1.POST("/categories", c.CreateCategory)
	v1.GET("/categories/:id", c.GetCategory)
	v1.PUT("/categories/:id", c.UpdateCategory)
	v1.PATCH("/categories/:id", c.SetCategoryAvailability)
	v1.DELETE("/categories/:id", c.DeleteCategory)
	v1.PATCH("/categories/:id/image", c.UploadCategoryImage)
	v1.PUT("/category-positions", c.ReorderCategories)

	v1.GET("/foods", c.ListFoods)
	v1.POST("/foods", c.CreateFood)
	v1.GET("/foods/:id", c.GetFood)
	v1.PUT("/foods/:id", c.UpdateFood)
	v1.PATCH("/foods/:id", c.SetFoodAvailability)
	v1.DELETE("/foods/:id", c.DeleteFood)

	v1.GET("/ingredients", c.ListIngredients)
	v1.POST("/ingredients", c.CreateIngredient)
	v1.GET("/ingredients/:id", c.GetIngredient)
	v1.PUT("/ingredients/:id", c.UpdateIngredient)
	v1.DELETE("/ingredients/:id", c.DeleteIngredient)

	v1.GET("/printers", c.ListPrinters)
	v1.POST("/printers", c.CreatePrinter)
	v1.GET("/printers/:id", c.GetPrinter)
	v1.PUT("/printers/:id", c.UpdatePrinter)
	v1.PATCH("/printers/:id", c.SetPrinterStatus)
	v1.DELETE("/printers/:id", c.DeletePrinter)

	v1.GET("/cash-registers", c.ListCashRegisters)
	v1.POST("/cash-registers", c.CreateCashRegister)
	v1.GET("/cash-registers/:id", c.GetCashRegister)
	v1.PUT("/cash-registers/:id", c.UpdateCashRegister)
	v1.PATCH("/cash-registers/:id", c.SetCashRegisterEnabled)
	v1.DELETE("/cash-registers/:id", c.DeleteCashRegister)

	v1.GET("/users", c.ListUsers)
	v1.POST("/users", c.CreateUser)
	v1.GET("/users/:id", c.GetUser)
	v1.PUT("/users/:id", c.UpdateUser)
	v1.DELETE("/users/:id", c.DeleteUser)
	v1.GET("/roles", c.ListRoles)

	v1.GET("/orders", c.ListOrders)
	v1.GET("/orders/:id", c.GetOrder)
	v1.PATCH("/orders/:id", c.SetOrderStatus)
	v1.DELETE("/orders/:id", c.DeleteOrder)
	v1.POST("/orders/:id/confirm", c.ConfirmOrder)
}
