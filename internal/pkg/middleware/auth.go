package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/framelessmedia/payportal/internal/pkg/session"
	"github.com/framelessmedia/payportal/internal/pkg/usercontext"
)

// SessionKeyIntendedURL remembers where an anonymous visitor wanted to go
// so the CMS login flow can return there after sign-in.
const SessionKeyIntendedURL = "intended_url"

// RequireAuth gates a route to signed-in customers. Anonymous visitors are
// sent to the site root where the CMS shell opens its login modal.
func RequireAuth(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		return c.Next()
	}

	_ = session.SetSessionValue(c, SessionKeyIntendedURL, c.OriginalURL())
	return c.Redirect("/", fiber.StatusSeeOther)
}
