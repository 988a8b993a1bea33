package api

import (
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"github.com/gin-gonic/gin" // Gin web framework

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/view"
)

// loginFailedText is all a failed login reveals
const loginFailedText = "Login failed. Please check your email and password."

// authPage is the login/register page model
type authPage struct {
	Expired  bool   // Arrived after a forced logout
	Error    string // Reason of the last failed attempt
	Email    string // Kept input
	Username string // Kept input
}

// AuthPageHandler renders the login and registration forms
func AuthPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "auth.tmpl", authPage{Expired: c.Query("expired") == "1"})
	}
}

// LoginHandler exchanges credentials for a session
func LoginHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := domain.Draft{
			"email":    strings.TrimSpace(c.PostForm("email")),
			"password": c.PostForm("password"),
		}
		// Required fields are checked before anything is sent
		if err := view.Required(form, "email", "password"); err != nil {
			c.HTML(http.StatusBadRequest, "auth.tmpl", authPage{Error: view.ErrorText(err), Email: form["email"]})
			return
		}
		s, err := env.Sessions.Login(c.Request.Context(), form["email"], form["password"])
		if err != nil {
			c.HTML(http.StatusUnauthorized, "auth.tmpl", authPage{Error: loginFailedText, Email: form["email"]})
			return
		}
		replaceSession(c, env, s)
		s.Notify(domain.NoticeSuccess, "Welcome back, "+s.User.Username)
		finish(c, env, s)
	}
}

// RegisterHandler creates an account and logs it in
func RegisterHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := domain.Draft{
			"email":    strings.TrimSpace(c.PostForm("email")),
			"username": strings.TrimSpace(c.PostForm("username")),
			"password": c.PostForm("password"),
		}
		page := authPage{Email: form["email"], Username: form["username"]}
		if err := view.Required(form, "email", "username", "password"); err != nil {
			page.Error = view.ErrorText(err)
			c.HTML(http.StatusBadRequest, "auth.tmpl", page)
			return
		}
		s, err := env.Sessions.Register(c.Request.Context(), domain.Registration{
			Email:    form["email"],
			Username: form["username"],
			Password: form["password"],
			IsAdmin:  c.PostForm("is_admin") == "true",
		})
		if err != nil {
			page.Error = view.ErrorText(err)
			c.HTML(http.StatusBadRequest, "auth.tmpl", page)
			return
		}
		replaceSession(c, env, s)
		s.Notify(domain.NoticeSuccess, "Welcome, "+s.User.Username)
		finish(c, env, s)
	}
}

// replaceSession ends whatever session the browser held and hands it the new one
func replaceSession(c *gin.Context, env *Env, s *session.Session) {
	if prev := middleware.CurrentSession(c); prev.Authenticated() {
		_ = env.Sessions.Logout(c.Request.Context(), prev)
	}
	middleware.SetSessionCookie(c, env.Cookies, s)
}

// LogoutHandler ends the session behind the cookie without resolving it
func LogoutHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(env.Cookies.Name); err == nil {
			_ = env.Sessions.End(c.Request.Context(), id)
		}
		middleware.ClearSessionCookie(c, env.Cookies)
		c.Redirect(http.StatusSeeOther, "/auth")
	}
}
