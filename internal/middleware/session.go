package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Cookie lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/session"
)

// sessionKey is the gin context key holding *session.Session
const sessionKey = "session"

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string // Cookie name
	Secure bool   // Send over HTTPS only
}

// LoadSession resolves the session cookie on every request. An expired or
// rejected token tears the session down and sends the browser to the login page.
func LoadSession(m *session.Manager, cookies CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookies.Name)
		if err != nil || id == "" {
			c.Next() // Anonymous visitor
			return
		}
		s, err := m.Resume(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(sessionKey, s)
		case errors.Is(err, session.ErrSessionExpired):
			ClearSessionCookie(c, cookies)
			c.Redirect(http.StatusSeeOther, "/auth?expired=1")
			c.Abort()
			return
		case errors.Is(err, session.ErrNotFound):
			ClearSessionCookie(c, cookies) // Stale cookie, continue anonymously
		default:
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			}).Error("Failed to resume session")
			c.HTML(http.StatusBadGateway, "error.tmpl", gin.H{"Message": "Unable to reach the store, please try again"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the request's session, or nil for anonymous visitors
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// SetSessionCookie hands the session id to the browser
func SetSessionCookie(c *gin.Context, cookies CookieConfig, s *session.Session) {
	maxAge := int(time.Until(s.Record.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookies.Name, s.ID, maxAge, "/", "", cookies.Secure, true)
}

// ClearSessionCookie removes the session id from the browser
func ClearSessionCookie(c *gin.Context, cookies CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookies.Name, "", -1, "/", "", cookies.Secure, true)
}
