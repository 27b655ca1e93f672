package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/framelessmedia/payportal/app/repository"
	"github.com/framelessmedia/payportal/internal/pkg/catalog"
	"github.com/framelessmedia/payportal/internal/pkg/entitlements"
	"github.com/framelessmedia/payportal/internal/pkg/i18n"
	"github.com/framelessmedia/payportal/internal/pkg/session"
	"github.com/framelessmedia/payportal/internal/pkg/usercontext"
	"github.com/framelessmedia/payportal/internal/pkg/viewmodel"
)

// AccountController renders the customer's purchase overview. All entitlement
// logic lives in the core packages; this layer only fetches, resolves and
// shapes view models.
type AccountController struct {
	events   repository.PurchaseEventRepository
	products repository.ProductRepository
	catalog  entitlements.ProductCatalog
	tr       *i18n.Translations
}

var accountController *AccountController

// InitializeAccountController wires the controller with repositories and the
// immutable translation resource.
func InitializeAccountController() {
	repos := repository.GetGlobalRepositories()
	accountController = &AccountController{
		events:   repos.PurchaseEvent,
		products: repos.Product,
		catalog:  catalog.NewService(repos.Product),
		tr:       i18n.New(),
	}
}

// HandleAccount serves /account in one of three views: a purchases table,
// a grid of owned products, or the default grid-all (owned products plus
// grayed-out gated products the customer does not own yet).
func HandleAccount(c *fiber.Ctx) error {
	ctrl := accountController
	userCtx := usercontext.GetUserContext(c)

	events, err := ctrl.events.ListEventsForUser(userCtx.UserID)
	if err != nil {
		log.Printf("account: loading purchases for user %d failed: %v", userCtx.UserID, err)
		events = nil
	}
	rows := entitlements.Resolve(events, ctrl.catalog, time.Now())

	view := c.Query("view", "grid-all")
	vm := viewmodel.Account{
		Layout: viewmodel.Layout{
			Page:       "account",
			IsLoggedIn: userCtx.IsLoggedIn,
			Username:   userCtx.Username,
			Msg:        flash.Get(c),
		},
		View:      view,
		Title:     ctrl.tr.T("ui.purchases.title"),
		HeadDate:  ctrl.tr.T("ui.table.head.date"),
		HeadName:  ctrl.tr.T("ui.table.head.product"),
		HeadState: ctrl.tr.T("ui.table.head.status"),
		Empty:     ctrl.tr.T("ui.table.no_purchases"),
	}

	switch view {
	case "table":
		vm.Rows = viewmodel.BuildAccountRows(rows, ctrl.tr)
	case "grid":
		vm.Cards = viewmodel.BuildOwnedCards(entitlements.Owned(rows), ctrl.tr)
	default:
		vm.View = "grid-all"
		owned := entitlements.Owned(rows)
		vm.Cards = append(viewmodel.BuildOwnedCards(owned, ctrl.tr), ctrl.unownedCards(owned)...)
	}

	return c.Render("account", vm)
}

// unownedCards lists gated catalog products the customer does not actively
// own, rendered grayed-out as upsell teasers below the owned grid.
func (ctrl *AccountController) unownedCards(owned []entitlements.Row) []viewmodel.AccountCard {
	gated, err := ctrl.products.GetAccessGated()
	if err != nil {
		log.Printf("account: loading gated products failed: %v", err)
		return nil
	}

	ownedIDs := make(map[int]struct{}, len(owned))
	for _, r := range owned {
		ownedIDs[r.ProductID] = struct{}{}
	}

	cards := make([]viewmodel.AccountCard, 0, len(gated))
	for _, p := range gated {
		if _, ok := ownedIDs[int(p.ID)]; ok {
			continue
		}
		entry := catalog.Entry(p)
		cards = append(cards, viewmodel.AccountCard{
			ProductID: entry.ID,
			Title:     entry.Title,
			URL:       p.PageURL,
			ThumbURL:  entry.ThumbURL,
			Grayed:    true,
		})
	}
	return cards
}

// HandleLogout clears the shared session and sends the customer home.
func HandleLogout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		log.Printf("account: logout failed: %v", err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
