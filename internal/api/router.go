package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"storefront/internal/middleware"
	"storefront/internal/web"
)

// NewRouter wires every page and form action
func NewRouter(env *Env) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(web.Templates())
	r.MaxMultipartMemory = uploadLimit(env.MaxReceiptBytes)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	// Local teardown only, reachable while the backend is down
	r.POST("/logout", LogoutHandler(env))

	// Everything below sees the resolved session
	site := r.Group("/", middleware.LoadSession(env.Sessions, env.Cookies))

	// Auth routes
	site.GET("/auth", middleware.RedirectIfAuthenticated(), AuthPageHandler())
	site.POST("/auth/login", LoginHandler(env))
	site.POST("/auth/register", RegisterHandler(env))

	// Shopper routes
	user := site.Group("/", middleware.RequireUser())
	user.GET("/", DashboardHandler(env))
	user.POST("/purchase/:id", PurchaseHandler(env))
	user.POST("/topup", TopUpHandler(env))
	user.POST("/tickets", CreateTicketHandler(env))

	// Admin routes
	admin := site.Group("/admin", middleware.AdminOnly())
	admin.POST("/topups/:id/approve", ApproveTopUpHandler(env))
	admin.POST("/topups/:id/reject", RejectTopUpHandler(env))
	admin.POST("/products", CreateProductHandler(env))
	admin.POST("/blog", CreatePostHandler(env))

	return r
}
