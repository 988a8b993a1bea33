package domain

import "time"

// TicketStatus is the state of a support ticket
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

// SupportTicket Model
type SupportTicket struct {
	ID        string           `json:"id"`         // Ticket identifier
	UserID    string           `json:"user_id"`    // Author
	Subject   string           `json:"subject"`    // Short subject line
	Message   string           `json:"message"`    // Body
	Status    TicketStatus     `json:"status"`     // open, in_progress, closed
	CreatedAt time.Time        `json:"created_at"` // Creation time
	Responses []map[string]any `json:"responses"`  // Staff responses, opaque to the front-end
}

// NewTicket is the payload for opening a ticket
type NewTicket struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// BlogPost Model
type BlogPost struct {
	ID          string    `json:"id"`           // Post identifier
	Title       string    `json:"title"`        // Title
	Content     string    `json:"content"`      // Body
	AuthorID    string    `json:"author_id"`    // Admin who wrote it
	IsPublished bool      `json:"is_published"` // Visible on the blog
	CreatedAt   time.Time `json:"created_at"`   // Creation time
}

// NewBlogPost is the admin payload for publishing a post
type NewBlogPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
