package backend

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/domain"
)

// PurchaseReceipt acknowledges a purchase
type PurchaseReceipt struct {
	Message    string `json:"message"`
	PurchaseID string `json:"purchase_id"`
}

// ListProducts returns the active catalog; no authentication needed
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, nil, nil, &products)
	return products, err
}

// GetProduct returns one product by id
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, nil, &p)
	return p, err
}

// Purchase spends the caller's balance on a product
func (c *Client) Purchase(ctx context.Context, cred Credentials, productID string) (PurchaseReceipt, error) {
	var res PurchaseReceipt
	err := c.do(ctx, http.MethodPost, "/purchase/"+url.PathEscape(productID), nil, cred, nil, &res)
	return res, err
}

// ListPurchases returns the caller's purchase history
func (c *Client) ListPurchases(ctx context.Context, cred Credentials) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := c.do(ctx, http.MethodGet, "/purchases", nil, cred, nil, &purchases)
	return purchases, err
}

// CreateProduct adds a product; admin only
func (c *Client) CreateProduct(ctx context.Context, cred Credentials, p domain.NewProduct) (domain.Product, error) {
	var created domain.Product
	err := c.do(ctx, http.MethodPost, "/products", nil, cred, p, &created)
	return created, err
}
