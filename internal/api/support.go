package api

import (
	"strings" // Input trimming

	"github.com/gin-gonic/gin" // Gin web framework

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/view"
)

// CreateTicketHandler opens a support ticket
func CreateTicketHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)
		draft := domain.Draft{
			"subject": strings.TrimSpace(c.PostForm("subject")),
			"message": strings.TrimSpace(c.PostForm("message")),
		}
		s.KeepDraft(formTicket, draft)

		if err := view.Required(draft, "subject", "message"); err != nil {
			fail(c, env, s, err)
			return
		}
		if _, err := env.Backend.CreateTicket(ctx, s, domain.NewTicket{Subject: draft["subject"], Message: draft["message"]}); err != nil {
			fail(c, env, s, err)
			return
		}
		s.ClearDraft(formTicket)
		invalidate(ctx, env, ticketsKey(s.User.ID))
		s.Notify(domain.NoticeSuccess, "Ticket opened")
		finish(c, env, s)
	}
}
