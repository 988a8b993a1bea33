package view

import (
	"strconv" // Amount formatting

	"storefront/internal/domain"
)

// ProductCard is a product with its purchase control state
type ProductCard struct {
	Product domain.Product
	Price   string // e.g. "150 Coins"
	CanBuy  bool   // Purchase control enabled
}

// CanPurchase is false without a user or when the balance is below the price
func CanPurchase(u *domain.User, p domain.Product) bool {
	return u != nil && u.WalletBalance >= p.Price
}

// Cards pairs each product with its purchase state for u
func Cards(u *domain.User, products []domain.Product) []ProductCard {
	cards := make([]ProductCard, len(products))
	for i, p := range products {
		cards[i] = ProductCard{Product: p, Price: Coins(p.Price), CanBuy: CanPurchase(u, p)}
	}
	return cards
}

// Coins formats an amount the way the pages show balances and prices
func Coins(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64) + " Coins"
}
