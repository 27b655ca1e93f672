package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/framelessmedia/payportal/internal/pkg/session"
	"github.com/framelessmedia/payportal/internal/pkg/usercontext"
)

// UserContextMiddleware derives the request's user context from the
// session. The login flow itself lives in the surrounding CMS; it stores
// user_id/username in the shared session and this service only reads them.
func UserContextMiddleware(c *fiber.Ctx) error {
	userCtx := usercontext.UserContext{}

	if raw := session.GetSessionValue(c, "user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			userCtx.UserID = uint(id)
			userCtx.Username = session.GetSessionValue(c, "username")
			userCtx.IsLoggedIn = true
		}
	}

	c.Locals(usercontext.ContextKey, userCtx)
	return c.Next()
}
