package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/domain/auth"
)

type Deps struct {
	Health         *Handler
	Loans          *LoanHandler
	Officers       *OfficerHandler
	Verifier       middleware.TokenVerifier
	Redis          redis.Cmdable
	IdempotencyTTL time.Duration
	Metrics        http.Handler
	Log            logrus.FieldLogger
}

// Register mounts every route on e. Mutating routes are idempotent when a
// Redis client is supplied.
func Register(e *echo.Echo, d Deps) {
	e.Validator = NewValidator()

	e.GET("/health", d.Health.Health)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	authn := middleware.Authenticate(d.Verifier)
	mutating := []echo.MiddlewareFunc{}
	if d.Redis != nil {
		mutating = append(mutating, middleware.Idempotency(d.Redis, d.IdempotencyTTL, d.Log))
	}

	loans := e.Group("/loans", authn)
	loans.POST("/apply", d.Loans.Apply, append([]echo.MiddlewareFunc{middleware.RequireRole(auth.RoleCustomer)}, mutating...)...)
	loans.POST("/quote", d.Loans.Quote, middleware.RequireRole(auth.RoleCustomer))
	loans.GET("/my-loans", d.Loans.MyLoans, middleware.RequireRole(auth.RoleCustomer))
	loans.GET("/:id", d.Loans.Get)
	loans.GET("/:id/status", d.Loans.Status)
	loans.GET("/:id/schedule", d.Loans.Schedule)

	officer := e.Group("/officer", authn, middleware.RequireRole(auth.RoleOfficer))
	officer.GET("/loans/pending", d.Officers.Pending)
	officer.GET("/loans", d.Officers.List)
	officer.POST("/loans/:id/review", d.Officers.Review, mutating...)
	officer.GET("/stats", d.Officers.Stats)
	officer.GET("/my-reviews", d.Officers.MyReviews)
}
