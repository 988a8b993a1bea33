package main

import (
	"context"   // Shutdown and Redis operations
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"storefront/internal/api"
	"storefront/internal/backend"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/utils"
)

// purgeInterval is how often expired MySQL sessions are dropped
const purgeInterval = 10 * time.Minute

func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis always backs the view cache, and sessions by default
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	var store session.Store
	switch cfg.SessionStore {
	case config.StoreMySQL:
		gdb, err := db.Open(cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err)
		}
		gormStore := session.NewGormStore(gdb)
		go purgeSessions(ctx, gormStore)
		store = gormStore
	case config.StoreRedis:
		store = session.NewRedisStore(redisClient)
	default:
		logrus.Fatalf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	env := &api.Env{
		Backend:         client,
		Sessions:        session.NewManager(store, client, cfg.SessionTTL),
		Cache:           utils.NewRedisCache(redisClient, "view:"),
		Cookies:         middleware.CookieConfig{Name: cfg.CookieName, Secure: cfg.IsProd},
		CacheTTL:        cfg.CacheTTL,
		MaxReceiptBytes: cfg.MaxReceiptBytes,
	}

	r := api.NewRouter(env)
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":          cfg.AppPort,
			"backend":       cfg.BackendURL,
			"session_store": cfg.SessionStore,
		}).Info("Storefront running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("could not listen on %s: %v", cfg.AppPort, err)
		}
	}()

	<-ctx.Done() // Wait for interrupt signal
	logrus.Info("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown failed: %v", err)
	}
	logrus.Info("Storefront stopped.")
}

// purgeSessions drops expired MySQL sessions until ctx ends
func purgeSessions(ctx context.Context, store *session.GormStore) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logrus.WithError(err).Warn("Session purge failed")
				continue
			}
			if n > 0 {
				logrus.WithField("count", n).Info("Expired sessions purged")
			}
		}
	}
}
