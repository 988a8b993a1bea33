package api

import (
	"context" // Cache and backend calls
	"time"    // Cache TTL

	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/backend"
	"storefront/internal/middleware"
	"storefront/internal/session"
)

// ViewCache keeps fetched view sections between requests so a mutation
// only re-fetches the sections it affected.
type ViewCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Env carries the handlers' dependencies
type Env struct {
	Backend         *backend.Client         // Store backend
	Sessions        *session.Manager        // Session lifecycle
	Cache           ViewCache               // View sections
	Cookies         middleware.CookieConfig // Session cookie settings
	CacheTTL        time.Duration           // Lifetime of a cached section
	MaxReceiptBytes int64                   // Upload limit for receipts
}

// Form names used for drafts
const (
	formTopUp   = "topup"
	formProduct = "product"
	formTicket  = "ticket"
	formPost    = "post"
)

// View cache keys. User scoped sections are keyed by user id so an admin
// action can invalidate the affected user's view.
const (
	productsKey    = "products"
	blogKey        = "blog"
	adminTopUpsKey = "topups:admin"
)

func userTopUpsKey(userID string) string { return "topups:user:" + userID }
func purchasesKey(userID string) string  { return "purchases:user:" + userID }
func ticketsKey(userID string) string    { return "tickets:user:" + userID }

// cached returns the section under key, loading and storing it on a miss.
// Cache failures degrade to a direct load.
func cached[T any](ctx context.Context, env *Env, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	found, err := env.Cache.Get(ctx, key, &v)
	if err == nil && found {
		return v, nil
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("View cache read failed")
	}
	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := env.Cache.Set(ctx, key, v, env.CacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("View cache write failed")
	}
	return v, nil
}

// invalidate drops the sections a mutation affected
func invalidate(ctx context.Context, env *Env, keys ...string) {
	if err := env.Cache.Delete(ctx, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("View cache invalidation failed")
	}
}
