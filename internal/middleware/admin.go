package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// AdminOnly checks the freshly resolved profile's admin flag on each request.
// It only hides the admin surface; the backend enforces the real check.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		// Check if a user is logged in at all
		if !s.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/auth")
			c.Abort()
			return
		}
		// Check if the user carries the admin flag
		if !s.User.IsAdmin {
			logrus.WithFields(logrus.Fields{
				"user_id": s.User.ID,
				"path":    c.Request.URL.Path,
			}).Warn("Admin route refused")
			c.HTML(http.StatusForbidden, "error.tmpl", gin.H{"Message": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
