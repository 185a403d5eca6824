package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "loan-origination/internal/adapter/http"
	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/config"
	"loan-origination/internal/domain/evaluation"
	"loan-origination/internal/infrastructure/cache"
	"loan-origination/internal/infrastructure/db"
	"loan-origination/internal/infrastructure/logging"
	"loan-origination/internal/infrastructure/metrics"
	"loan-origination/internal/infrastructure/token"
	loanuc "loan-origination/internal/usecase/loan"
	"loan-origination/internal/usecase/review"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.Options{Log: log, LogLevel: cfg.DBLogLevel})
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	tokens, err := token.NewService(token.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL})
	if err != nil {
		return err
	}
	ev, err := evaluation.NewEvaluator(evaluation.DefaultConfig())
	if err != nil {
		return err
	}
	prom := metrics.NewPrometheus()

	loans := mysql.NewLoanRepository(gdb)
	customers := mysql.NewCustomerRepository(gdb)
	officers := mysql.NewOfficerRepository(gdb)

	loanUC := loanuc.NewUsecase(loans, customers, ev, loanuc.WithMetrics(prom), loanuc.WithLogger(log))
	reviewUC := review.NewUsecase(mysql.NewGormUoW(gdb), loans, officers, review.WithMetrics(prom), review.WithLogger(log))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover(), middleware.RequestLogger(log))

	httpadp.Register(e, httpadp.Deps{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "mysql", Fn: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Fn: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Loans:          httpadp.NewLoanHandler(loanUC, log),
		Officers:       httpadp.NewOfficerHandler(reviewUC, log),
		Verifier:       tokens,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		Metrics:        prom.Handler(),
		Log:            log,
	})

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
