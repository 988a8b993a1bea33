package api

import (
	"context" // Backend calls
	"strings" // Input trimming

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/backend"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/view"
)

// reviewFunc is the backend's approve or reject call
type reviewFunc func(ctx context.Context, cred backend.Credentials, id, note string) (backend.Message, error)

// ApproveTopUpHandler approves a pending top-up request
func ApproveTopUpHandler(env *Env) gin.HandlerFunc {
	return reviewHandler(env, "approved", env.Backend.ApproveTopUp)
}

// RejectTopUpHandler rejects a pending top-up request with an optional note
func RejectTopUpHandler(env *Env) gin.HandlerFunc {
	return reviewHandler(env, "rejected", env.Backend.RejectTopUp)
}

// reviewHandler runs one review action. Two admins acting on the same
// request are not coordinated here; whatever the backend answers is shown.
func reviewHandler(env *Env, outcome string, review reviewFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)
		id := c.Param("id")
		owner := requestOwner(ctx, env, s, id)
		if owner == "" {
			owner = strings.TrimSpace(c.PostForm("user_id"))
		}
		note := strings.TrimSpace(c.PostForm("note"))

		res, err := review(ctx, s, id, note)

		// The request may have changed even on failure (e.g. already processed)
		keys := []string{adminTopUpsKey}
		if owner != "" {
			keys = append(keys, userTopUpsKey(owner))
		}
		invalidate(ctx, env, keys...)

		fields := logrus.Fields{
			"admin_id":   s.User.ID,
			"request_id": id,
			"owner_id":   owner,
			"outcome":    outcome,
		}
		if err != nil {
			fields["error"] = err.Error()
			logrus.WithFields(fields).Warn("Top-up review failed")
			fail(c, env, s, err)
			return
		}
		logrus.WithFields(fields).Info("Top-up reviewed")

		msg := res.Message
		if msg == "" {
			msg = "Top-up " + outcome
		}
		s.Notify(domain.NoticeSuccess, msg)
		finish(c, env, s)
	}
}

// requestOwner finds who filed top-up id in the admin listing, or "" when it is not there
func requestOwner(ctx context.Context, env *Env, s *session.Session, id string) string {
	all, err := cached(ctx, env, adminTopUpsKey, func(ctx context.Context) ([]domain.TopUpRequest, error) {
		return env.Backend.ListAllTopUps(ctx, s)
	})
	if err != nil {
		return ""
	}
	for _, r := range all {
		if r.ID == id {
			return r.UserID
		}
	}
	return ""
}

// CreateProductHandler adds a product to the catalog
func CreateProductHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)
		draft := domain.Draft{
			"name":        strings.TrimSpace(c.PostForm("name")),
			"description": strings.TrimSpace(c.PostForm("description")),
			"price":       strings.TrimSpace(c.PostForm("price")),
			"category":    strings.TrimSpace(c.PostForm("category")),
			"image_url":   strings.TrimSpace(c.PostForm("image_url")),
		}
		s.KeepDraft(formProduct, draft)

		if err := view.Required(draft, "name", "description", "price", "category"); err != nil {
			fail(c, env, s, err)
			return
		}
		price, err := view.ParseAmount(draft["price"])
		if err != nil {
			fail(c, env, s, view.Invalid("Please enter a positive price"))
			return
		}

		p, err := env.Backend.CreateProduct(ctx, s, domain.NewProduct{
			Name:        draft["name"],
			Description: draft["description"],
			Price:       price,
			ImageURL:    draft["image_url"],
			Category:    draft["category"],
		})
		if err != nil {
			fail(c, env, s, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id":   s.User.ID,
			"product_id": p.ID,
			"price":      p.Price,
		}).Info("Product created")

		s.ClearDraft(formProduct)
		invalidate(ctx, env, productsKey)
		s.Notify(domain.NoticeSuccess, "Product created: "+p.Name)
		finish(c, env, s)
	}
}

// CreatePostHandler publishes a blog post
func CreatePostHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)
		draft := domain.Draft{
			"title":   strings.TrimSpace(c.PostForm("title")),
			"content": strings.TrimSpace(c.PostForm("content")),
		}
		s.KeepDraft(formPost, draft)

		if err := view.Required(draft, "title", "content"); err != nil {
			fail(c, env, s, err)
			return
		}
		if _, err := env.Backend.CreateBlogPost(ctx, s, domain.NewBlogPost{Title: draft["title"], Content: draft["content"]}); err != nil {
			fail(c, env, s, err)
			return
		}
		s.ClearDraft(formPost)
		invalidate(ctx, env, blogKey)
		s.Notify(domain.NoticeSuccess, "Post published")
		finish(c, env, s)
	}
}
