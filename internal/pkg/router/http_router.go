package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/framelessmedia/payportal/app/controllers"
	"github.com/framelessmedia/payportal/internal/pkg/env"
	"github.com/framelessmedia/payportal/internal/pkg/middleware"
	"github.com/framelessmedia/payportal/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	controllers.InitializeAccountController()
	controllers.InitializeBillingPortalController()
	controllers.InitializeProfileController()

	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/account", middleware.RequireAuth, controllers.HandleAccount)
	group.Get("/account/logout", middleware.RequireAuth, controllers.HandleLogout)
	group.Get("/account/billing/:product", middleware.RequireAuth, controllers.HandleBillingPortal)
	group.Post("/account/profile", middleware.RequireAuth, controllers.HandleProfileUpdate)
}
