package domain

import "time"

// TopUpStatus is the state of a top-up request
type TopUpStatus string

const (
	TopUpPending  TopUpStatus = "pending"  // Awaiting admin review
	TopUpApproved TopUpStatus = "approved" // Credited by the backend
	TopUpRejected TopUpStatus = "rejected" // Declined, terminal
)

// Terminal reports whether no further transition is possible
func (s TopUpStatus) Terminal() bool {
	return s == TopUpApproved || s == TopUpRejected
}

// TopUpRequest Model
type TopUpRequest struct {
	ID          string      `json:"id"`                     // Request identifier
	UserID      string      `json:"user_id"`                // Requesting user
	Amount      float64     `json:"amount"`                 // Requested coins
	ReceiptData string      `json:"receipt_data"`           // Receipt image as a data URL
	Status      TopUpStatus `json:"status"`                 // pending, approved, rejected
	AdminNotes  *string     `json:"admin_notes,omitempty"`  // Optional note from the reviewer
	CreatedAt   time.Time   `json:"created_at"`             // Submission time
	ProcessedAt *time.Time  `json:"processed_at,omitempty"` // Review time
}

// NewTopUp is the payload for requesting a top-up
type NewTopUp struct {
	Amount      float64 `json:"amount"`       // Requested coins
	ReceiptData string  `json:"receipt_data"` // Receipt image as a data URL
}
