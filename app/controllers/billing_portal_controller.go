package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/framelessmedia/payportal/app/repository"
	"github.com/framelessmedia/payportal/internal/pkg/billing"
	"github.com/framelessmedia/payportal/internal/pkg/i18n"
	"github.com/framelessmedia/payportal/internal/pkg/usercontext"
)

// BillingPortalController hands a customer over to the Stripe billing
// portal for one of their purchased products.
type BillingPortalController struct {
	events repository.PurchaseEventRepository
	stripe *billing.StripeClient
	tr     *i18n.Translations
}

var billingPortalController *BillingPortalController

func InitializeBillingPortalController() {
	repos := repository.GetGlobalRepositories()
	billingPortalController = &BillingPortalController{
		events: repos.PurchaseEvent,
		stripe: billing.NewStripeClientFromEnv(),
		tr:     i18n.New(),
	}
}

// HandleBillingPortal serves /account/billing/:product. It correlates the
// customer's purchase history for the product to a Stripe customer id,
// creates a portal session and redirects there. Every failure path lands
// back on the account page with a flash message.
func HandleBillingPortal(c *fiber.Ctx) error {
	ctrl := billingPortalController
	userCtx := usercontext.GetUserContext(c)

	productID, err := c.ParamsInt("product")
	if err != nil || productID <= 0 {
		fm := fiber.Map{"type": "error", "message": ctrl.tr.T("billing.no_customer")}
		return flash.WithError(c, fm).Redirect("/account", fiber.StatusSeeOther)
	}

	events, err := ctrl.events.ListEventsForUser(userCtx.UserID)
	if err != nil {
		log.Printf("billing: loading purchases for user %d failed: %v", userCtx.UserID, err)
		fm := fiber.Map{"type": "error", "message": ctrl.tr.T("billing.session_failed")}
		return flash.WithError(c, fm).Redirect("/account", fiber.StatusSeeOther)
	}

	customerID, ok := billing.ResolveCustomerID(events, productID)
	if !ok {
		fm := fiber.Map{"type": "error", "message": ctrl.tr.T("billing.no_customer")}
		return flash.WithError(c, fm).Redirect("/account", fiber.StatusSeeOther)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	returnURL := sanitizeReturnURL(c, c.Query("return_url"))
	sess, err := ctrl.stripe.CreatePortalSession(ctx, customerID, returnURL)
	if err != nil {
		log.Printf("billing: portal session for user %d product %d failed: %v", userCtx.UserID, productID, err)
		fm := fiber.Map{"type": "error", "message": ctrl.tr.T("billing.session_failed")}
		return flash.WithError(c, fm).Redirect("/account", fiber.StatusSeeOther)
	}

	return c.Redirect(sess.URL, fiber.StatusSeeOther)
}
