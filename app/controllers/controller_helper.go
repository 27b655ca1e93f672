package controllers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// sanitizeReturnURL only accepts same-origin return targets. Anything
// off-host (or unparseable) falls back to the account page, so redirects
// handed to us in form fields or query strings can never leave the site.
func sanitizeReturnURL(c *fiber.Ctx, raw string) string {
	fallback := c.BaseURL() + "/account"

	ret := strings.TrimSpace(raw)
	if ret == "" {
		return fallback
	}

	u, err := url.Parse(ret)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != string(c.Request().Host()) {
		return fallback
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fallback
	}
	return ret
}
