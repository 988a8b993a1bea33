package domain

import "time"

// Product Model
type Product struct {
	ID          string    `json:"id"`                  // Opaque backend identifier
	Name        string    `json:"name"`                // Product name
	Description string    `json:"description"`         // Free text description
	Price       float64   `json:"price"`               // Price in coins
	ImageURL    string    `json:"image_url,omitempty"` // Optional image reference
	Category    string    `json:"category"`            // Free text label
	IsActive    bool      `json:"is_active"`           // Listed in the catalog
	CreatedAt   time.Time `json:"created_at"`          // Creation time
}

// NewProduct is the admin payload for adding a product to the catalog
type NewProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// Purchase is a completed product purchase
type Purchase struct {
	ID          string    `json:"id"`           // Purchase identifier
	UserID      string    `json:"user_id"`      // Buyer
	ProductID   string    `json:"product_id"`   // Bought product
	ProductName string    `json:"product_name"` // Product name at the time of purchase
	Amount      float64   `json:"amount"`       // Coins spent
	CreatedAt   time.Time `json:"created_at"`   // Purchase time
}
