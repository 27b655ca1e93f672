package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/framelessmedia/payportal/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes, authenticated via the shared session
	v1 := api.Group("/v1")
	v1.Get("/account/purchases", controllers.HandleAPIPurchases)
	v1.Get("/account/owned", controllers.HandleAPIOwned)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
