package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/backend"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/view"
)

// finish persists the session's notices and drafts, then returns to the dashboard
func finish(c *gin.Context, env *Env, s *session.Session) {
	if err := env.Sessions.Save(c.Request.Context(), s); err != nil {
		logrus.WithError(err).Error("Failed to save session")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// fail shows err as a notice. A rejected token ends the session instead.
func fail(c *gin.Context, env *Env, s *session.Session, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		expire(c, env, s)
		return
	}
	var verr *view.ValidationError
	if !errors.As(err, &verr) {
		logrus.WithFields(logrus.Fields{
			"path":    c.Request.URL.Path,
			"user_id": s.User.ID,
			"error":   err.Error(),
		}).Warn("Backend request failed")
	}
	s.Notify(domain.NoticeError, view.ErrorText(err))
	finish(c, env, s)
}

// expire tears the session down and sends the browser to the login page
func expire(c *gin.Context, env *Env, s *session.Session) {
	_ = env.Sessions.Logout(c.Request.Context(), s)
	middleware.ClearSessionCookie(c, env.Cookies)
	c.Redirect(http.StatusSeeOther, "/auth?expired=1")
}
