package i18n

import "strings"

// Translations is the immutable UI text resource for the portal. It is
// constructed once at startup and passed to the components that need it;
// there is no lazy global table.
type Translations struct {
	texts map[string]string
}

// New builds the default (English) translation set. The key space mirrors
// the portal UI: headings, table columns, status labels with {date}
// placeholders, and API messages.
func New() *Translations {
	return &Translations{texts: map[string]string{
		"ui.purchases.title":    "Your purchases",
		"ui.table.no_purchases": "No purchases found.",
		"ui.table.head.date":    "Date",
		"ui.table.head.product": "Product",
		"ui.table.head.status":  "Status",

		"button.edit": "Edit my data",

		"profile.title":          "Edit my data",
		"profile.intro":          "Update your account information below.",
		"profile.save":           "Save",
		"profile.cancel":         "Cancel",
		"label.name":             "Full name",
		"label.password":         "Password",
		"label.password_confirm": "Confirm password",

		"status.active":         "Active",
		"status.active_until":   "Active until {date}",
		"status.expired_on":     "Expired on {date}",
		"status.paused":         "Paused",
		"status.canceled":       "Canceled",
		"status.canceled_until": "Canceled (until {date})",

		"billing.portal":         "Manage billing",
		"billing.no_customer":    "No billing record found for this product.",
		"billing.session_failed": "The billing portal is currently unavailable.",

		"api.csrf_invalid":       "Invalid CSRF",
		"api.not_signed_in":      "Not signed in.",
		"api.profile_updated":    "Profile updated.",
		"api.password.too_short": "Password must be at least 8 characters.",
		"api.password.mismatch":  "Passwords do not match.",

		"link.login":   "Customer Login",
		"link.logout":  "Logout",
		"link.account": "My Account",
	}}
}

// T returns the text for key, or "" for unknown keys.
func (tr *Translations) T(key string) string {
	return tr.texts[key]
}

// Fmt returns the text for key with {token} placeholders replaced.
func (tr *Translations) Fmt(key string, repl map[string]string) string {
	txt := tr.texts[key]
	for token, value := range repl {
		txt = strings.ReplaceAll(txt, token, value)
	}
	return txt
}
