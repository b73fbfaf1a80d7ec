package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/suPer8Hu/goldsmith-storefront/internal/app"
	"github.com/suPer8Hu/goldsmith-storefront/internal/config"
	"github.com/suPer8Hu/goldsmith-storefront/internal/db"
	"github.com/suPer8Hu/goldsmith-storefront/internal/httpapi"
	"github.com/suPer8Hu/goldsmith-storefront/internal/httpapi/handlers"
	"github.com/suPer8Hu/goldsmith-storefront/internal/httpapi/middleware"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/notify"
	"github.com/suPer8Hu/goldsmith-storefront/internal/seed"
	"github.com/suPer8Hu/goldsmith-storefront/internal/store/rabbitmq"
	"github.com/suPer8Hu/goldsmith-storefront/internal/store/redisstore"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Connect(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	if cfg.SeedOnStart {
		data, err := seed.Default()
		if err != nil {
			return err
		}
		if _, err := seed.Run(ctx, gdb, data, logger.Named("seed")); err != nil {
			return err
		}
	}

	// redis is optional: no cache and no throttle without it
	var rds *redisstore.Store
	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		rds = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rds.Close()
		if err := rds.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, continuing", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		limiter = rds
	}

	var queue notify.Enqueuer
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			logger.Warn("rabbitmq unavailable, notifications delivered in-process", zap.Error(err))
		} else {
			defer pub.Close()
			queue = pub
		}
	}

	svc := app.Build(ctx, cfg, gdb, rds, queue, logger)

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(handlers.NewHandler(handlers.Deps{
		Prices:    svc.Prices,
		Catalogue: svc.Catalogue,
		Profiles:  svc.Profiles,
		Inquiries: svc.Inquiries,
		Chat:      svc.Chat,
		Media:     svc.Media,
		Log:       logger.Named("http"),
	}), httpapi.Options{
		CORSOrigins:  cfg.CORSOrigins,
		Limiter:      limiter,
		SubmitLimit:  cfg.SubmitLimit,
		SubmitWindow: cfg.SubmitWindow,
		Log:          logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	logger.Info("api shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	svc.Dispatcher.Wait()
	return nil
}
