package domain

import "time"

// NoticeKind classifies a notice for display
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a one-shot message shown on the next rendered page
type Notice struct {
	Kind NoticeKind `json:"kind"` // success, error, info
	Text string     `json:"text"` // Human readable text
}

// Draft holds form values kept for a retry after a failed submission
type Draft map[string]string

// SessionRecord is the persisted part of a browser session.
// ID is a hash of the cookie value, never the cookie value itself.
type SessionRecord struct {
	ID        string           `gorm:"primaryKey;size:64" json:"id"`   // Hashed session id
	Token     string           `gorm:"type:text;not null" json:"token"` // Backend bearer token
	Notices   []Notice         `gorm:"serializer:json" json:"notices,omitempty"`
	Drafts    map[string]Draft `gorm:"serializer:json" json:"drafts,omitempty"`
	ExpiresAt time.Time        `gorm:"index;not null" json:"expires_at"` // Record is dropped after this
	CreatedAt time.Time        `json:"created_at"`                       // Login time
	UpdatedAt time.Time        `json:"updated_at"`                       // Last save
}

// TableName pins the table name used by gorm
func (SessionRecord) TableName() string {
	return "sessions"
}
