package httpapi

import (
	"time"

	"madaba-market-be/internal/cart"
	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/logger"
	"madaba-market-be/internal/media"
	"madaba-market-be/internal/middleware"
	"madaba-market-be/internal/order"
	"madaba-market-be/internal/product"
	"madaba-market-be/internal/review"
	"madaba-market-be/internal/story"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Resolver *identity.Resolver
	Users    identity.Service
	Products product.Service
	Orders   order.Service
	Reviews  review.Service
	CartsDB  cart.Mirror
	Stories  story.Repository
	Uploads  media.Gateway
	Limiter  *middleware.RateLimiter
}

// NewRouter assembles the middleware stack and the full API surface.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Recover)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(middleware.Auth(d.Resolver))
	r.Use(d.Limiter.Middleware)

	NewAuthHandler(d.Users).RegisterRoutes(r)
	NewProfileHandler(d.Users).RegisterRoutes(r)
	NewProductHandler(d.Products, d.Users, d.Uploads).RegisterRoutes(r)
	NewOrderHandler(d.Orders).RegisterRoutes(r)
	NewCartHandler(d.CartsDB).RegisterRoutes(r)
	NewReviewHandler(d.Reviews, d.Users).RegisterRoutes(r)
	NewStoryHandler(d.Stories, d.Users, d.Uploads).RegisterRoutes(r)
	NewUploadHandler(d.Uploads).RegisterRoutes(r)
	NewAdminHandler(d.Users, d.Products, d.Orders, d.Stories).RegisterRoutes(r)

	return r
}
