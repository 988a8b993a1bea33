// Package view derives everything the pages display from the session
// and backend data. It holds no state and makes no calls.
package view

import "storefront/internal/domain"

// Tab is one dashboard section
type Tab struct {
	ID    string // Anchor and section id
	Label string // Nav label
}

// DefaultTab is active on every full page load
const DefaultTab = "products"

var (
	shopperTabs = []Tab{
		{ID: "products", Label: "Products"},
		{ID: "topup", Label: "Top Up"},
		{ID: "purchases", Label: "My Purchases"},
		{ID: "support", Label: "Support"},
		{ID: "blog", Label: "Blog"},
	}
	adminTab = Tab{ID: "admin", Label: "Admin"}
)

// Tabs lists the sections the user may see. Anonymous users get none.
func Tabs(u *domain.User) []Tab {
	if u == nil {
		return nil
	}
	tabs := make([]Tab, 0, len(shopperTabs)+1)
	tabs = append(tabs, shopperTabs...)
	if u.IsAdmin {
		tabs = append(tabs, adminTab)
	}
	return tabs
}

// HasTab reports whether id is among tabs
func HasTab(tabs []Tab, id string) bool {
	for _, t := range tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}
