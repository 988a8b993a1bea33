package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireUser sends anonymous visitors to the login page
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, "/auth")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends logged in users away from the login page
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
