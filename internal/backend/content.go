package backend

import (
	"context"
	"net/http"

	"storefront/internal/domain"
)

// CreateTicket opens a support ticket for the caller
func (c *Client) CreateTicket(ctx context.Context, cred Credentials, t domain.NewTicket) (domain.SupportTicket, error) {
	var ticket domain.SupportTicket
	err := c.do(ctx, http.MethodPost, "/tickets", nil, cred, t, &ticket)
	return ticket, err
}

// ListTickets returns the caller's tickets
func (c *Client) ListTickets(ctx context.Context, cred Credentials) ([]domain.SupportTicket, error) {
	var tickets []domain.SupportTicket
	err := c.do(ctx, http.MethodGet, "/tickets", nil, cred, nil, &tickets)
	return tickets, err
}

// ListBlogPosts returns published posts; no authentication needed
func (c *Client) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	err := c.do(ctx, http.MethodGet, "/blog", nil, nil, nil, &posts)
	return posts, err
}

// CreateBlogPost publishes a post; admin only
func (c *Client) CreateBlogPost(ctx context.Context, cred Credentials, p domain.NewBlogPost) (domain.BlogPost, error) {
	var post domain.BlogPost
	err := c.do(ctx, http.MethodPost, "/blog", nil, cred, p, &post)
	return post, err
}
