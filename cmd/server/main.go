package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"madaba-market-be/internal/cart"
	"madaba-market-be/internal/config"
	"madaba-market-be/internal/db"
	"madaba-market-be/internal/httpapi"
	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/logger"
	"madaba-market-be/internal/media"
	"madaba-market-be/internal/middleware"
	"madaba-market-be/internal/order"
	"madaba-market-be/internal/product"
	"madaba-market-be/internal/review"
	"madaba-market-be/internal/story"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	tokens := identity.NewTokenIssuer(cfg.JWTSecret)

	userRepo := identity.NewRepository(database)
	userSvc := identity.NewService(userRepo, tokens)
	resolver := identity.NewResolver(tokens, userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, userRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	cartMirror := cart.NewRepository(database)
	storyRepo := story.NewRepository(database)

	uploads := media.NewGateway(cfg.MediaBaseURL, cfg.MediaAPIKey)

	limiter := middleware.NewRateLimiter()
	defer limiter.Stop()

	router := httpapi.NewRouter(httpapi.Deps{
		Resolver: resolver,
		Users:    userSvc,
		Products: productSvc,
		Orders:   orderSvc,
		Reviews:  reviewSvc,
		CartsDB:  cartMirror,
		Stories:  storyRepo,
		Uploads:  uploads,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
