package domain

// User Model, as resolved by the backend
type User struct {
	ID            string  `json:"id"`             // Opaque backend identifier
	Email         string  `json:"email"`          // Login email
	Username      string  `json:"username"`       // Display name
	IsAdmin       bool    `json:"is_admin"`       // Admin capability flag
	WalletBalance float64 `json:"wallet_balance"` // Spendable coins, authoritative on the backend
}

// Registration is the payload for creating an account.
// IsAdmin is forwarded as given; whether it is honored is up to the backend.
type Registration struct {
	Email    string `json:"email"`    // Login email
	Username string `json:"username"` // Display name
	Password string `json:"password"` // Plain password, hashed by the backend
	IsAdmin  bool   `json:"is_admin"` // Requested admin flag
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plain password
}
