package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/framelessmedia/payportal/internal/pkg/entitlements"
	"github.com/framelessmedia/payportal/internal/pkg/usercontext"
)

// HandleAPIPurchases serves GET /api/v1/account/purchases: the full
// resolved purchase history as JSON, newest first.
func HandleAPIPurchases(c *fiber.Ctx) error {
	rows, err := apiResolveRows(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"purchases": rows})
}

// HandleAPIOwned serves GET /api/v1/account/owned: only the products the
// customer actively owns, one row per product.
func HandleAPIOwned(c *fiber.Ctx) error {
	rows, err := apiResolveRows(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"owned": entitlements.Owned(rows)})
}

// apiResolveRows authenticates the request against the session and runs
// the entitlement resolver. A non-nil error means a response was already
// written.
func apiResolveRows(c *fiber.Ctx) ([]entitlements.Row, error) {
	ctrl := accountController
	userCtx := usercontext.GetUserContext(c)

	if !userCtx.IsLoggedIn {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ctrl.tr.T("api.not_signed_in"),
		})
	}

	events, err := ctrl.events.ListEventsForUser(userCtx.UserID)
	if err != nil {
		log.Printf("api: loading purchases for user %d failed: %v", userCtx.UserID, err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load purchases",
		})
	}

	return entitlements.Resolve(events, ctrl.catalog, time.Now()), nil
}
