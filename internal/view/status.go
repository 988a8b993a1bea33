package view

import "storefront/internal/domain"

// Badge is the display form of a top-up status
type Badge struct {
	Icon  string // Status glyph
	Tone  string // neutral, success, failure
	Label string // Status text
}

// StatusBadge maps a status to its badge. Display only.
func StatusBadge(s domain.TopUpStatus) Badge {
	switch s {
	case domain.TopUpApproved:
		return Badge{Icon: "✅", Tone: "success", Label: "Approved"}
	case domain.TopUpRejected:
		return Badge{Icon: "❌", Tone: "failure", Label: "Rejected"}
	default:
		return Badge{Icon: "⏳", Tone: "neutral", Label: "Pending"}
	}
}

// TopUpRow is a top-up request ready for display
type TopUpRow struct {
	Request    domain.TopUpRequest
	Amount     string // e.g. "50 Coins"
	Badge      Badge
	Notes      string // Admin note, if any
	Actionable bool   // Approve and reject may be offered
}

// Rows converts requests for display
func Rows(reqs []domain.TopUpRequest) []TopUpRow {
	rows := make([]TopUpRow, len(reqs))
	for i, r := range reqs {
		rows[i] = TopUpRow{
			Request:    r,
			Amount:     Coins(r.Amount),
			Badge:      StatusBadge(r.Status),
			Actionable: r.Status == domain.TopUpPending,
		}
		if r.AdminNotes != nil {
			rows[i].Notes = *r.AdminNotes
		}
	}
	return rows
}

// PendingOnly keeps the requests still awaiting review
func PendingOnly(reqs []domain.TopUpRequest) []domain.TopUpRequest {
	out := make([]domain.TopUpRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == domain.TopUpPending {
			out = append(out, r)
		}
	}
	return out
}

// Processed keeps the requests that reached a terminal state
func Processed(reqs []domain.TopUpRequest) []domain.TopUpRequest {
	out := make([]domain.TopUpRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.Status.Terminal() {
			out = append(out, r)
		}
	}
	return out
}
