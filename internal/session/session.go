package session

import "storefront/internal/domain"

// Session is one browser's login as seen during a single request
type Session struct {
	ID     string                // Raw cookie value; empty once logged out
	Record *domain.SessionRecord // Persisted state; nil once logged out
	User   *domain.User          // Profile resolved for this request
}

// BearerToken makes a session usable as backend credentials.
// A logged out session yields no token.
func (s *Session) BearerToken() string {
	if s == nil || s.Record == nil {
		return ""
	}
	return s.Record.Token
}

// Authenticated reports whether s holds a token and a resolved user
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil && s.BearerToken() != ""
}

// IsAdmin reports whether the resolved user carries the admin flag
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.User.IsAdmin
}

// Notify queues a notice for the next rendered page
func (s *Session) Notify(kind domain.NoticeKind, text string) {
	if s == nil || s.Record == nil {
		return
	}
	s.Record.Notices = append(s.Record.Notices, domain.Notice{Kind: kind, Text: text})
}

// TakeNotices returns and clears the queued notices
func (s *Session) TakeNotices() []domain.Notice {
	if s == nil || s.Record == nil {
		return nil
	}
	n := s.Record.Notices
	s.Record.Notices = nil
	return n
}

// Draft returns the kept values of a form, or an empty draft
func (s *Session) Draft(form string) domain.Draft {
	if s == nil || s.Record == nil || s.Record.Drafts[form] == nil {
		return domain.Draft{}
	}
	return s.Record.Drafts[form]
}

// KeepDraft remembers form values for a retry
func (s *Session) KeepDraft(form string, d domain.Draft) {
	if s == nil || s.Record == nil {
		return
	}
	if s.Record.Drafts == nil {
		s.Record.Drafts = make(map[string]domain.Draft)
	}
	s.Record.Drafts[form] = d
}

// ClearDraft forgets a form's values after a successful submission
func (s *Session) ClearDraft(form string) {
	if s == nil || s.Record == nil {
		return
	}
	delete(s.Record.Drafts, form)
}
