package backend

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/domain"
)

// TopUpReceipt acknowledges a submitted top-up request
type TopUpReceipt struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// SubmitTopUp files a pending top-up request for the caller
func (c *Client) SubmitTopUp(ctx context.Context, cred Credentials, t domain.NewTopUp) (TopUpReceipt, error) {
	var res TopUpReceipt
	err := c.do(ctx, http.MethodPost, "/topup", nil, cred, t, &res)
	return res, err
}

// ListMyTopUps returns the caller's own requests
func (c *Client) ListMyTopUps(ctx context.Context, cred Credentials) ([]domain.TopUpRequest, error) {
	var reqs []domain.TopUpRequest
	err := c.do(ctx, http.MethodGet, "/topup-requests", nil, cred, nil, &reqs)
	return reqs, err
}

// ListAllTopUps returns every request in every state; admin only
func (c *Client) ListAllTopUps(ctx context.Context, cred Credentials) ([]domain.TopUpRequest, error) {
	var reqs []domain.TopUpRequest
	err := c.do(ctx, http.MethodGet, "/admin/topup-requests", nil, cred, nil, &reqs)
	return reqs, err
}

// ApproveTopUp moves a pending request to approved; note is optional
func (c *Client) ApproveTopUp(ctx context.Context, cred Credentials, id, note string) (Message, error) {
	var q url.Values
	if note != "" {
		q = url.Values{"admin_notes": {note}}
	}
	var res Message
	err := c.do(ctx, http.MethodPost, "/admin/topup-requests/"+url.PathEscape(id)+"/approve", q, cred, nil, &res)
	return res, err
}

// RejectTopUp moves a pending request to rejected with an optional note
func (c *Client) RejectTopUp(ctx context.Context, cred Credentials, id, note string) (Message, error) {
	q := url.Values{"admin_notes": {note}}
	var res Message
	err := c.do(ctx, http.MethodPost, "/admin/topup-requests/"+url.PathEscape(id)+"/reject", q, cred, nil, &res)
	return res, err
}
