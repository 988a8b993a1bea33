package api

import (
	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/view"
)

// PurchaseHandler buys a product with the wallet balance. The balance check
// here only guards the front-end; the backend makes the real decision.
func PurchaseHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)
		productID := c.Param("id")

		// Price and balance are both fresh: the profile was resolved for this request
		product, err := env.Backend.GetProduct(ctx, productID)
		if err != nil {
			fail(c, env, s, err)
			return
		}
		if !view.CanPurchase(s.User, product) {
			fail(c, env, s, view.ErrInsufficientBalance)
			return
		}

		res, err := env.Backend.Purchase(ctx, s, productID)
		if err != nil {
			fail(c, env, s, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     s.User.ID,
			"product_id":  productID,
			"purchase_id": res.PurchaseID,
			"amount":      product.Price,
		}).Info("Purchase completed")

		// Balance is re-fetched with the profile on the next request
		invalidate(ctx, env, purchasesKey(s.User.ID))
		s.Notify(domain.NoticeSuccess, "Purchased "+product.Name)
		finish(c, env, s)
	}
}
