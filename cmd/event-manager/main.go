// cmd/event-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fruitcenter-events/internal/api"
	"fruitcenter-events/internal/common/config"
	"fruitcenter-events/internal/common/database"
	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/push"
	"fruitcenter-events/internal/events"

	purgenotifications "fruitcenter-events/internal/workers/admin/purge-notifications"
	verificationemail "fruitcenter-events/internal/workers/communication/verification-email"
	notifyadmins "fruitcenter-events/internal/workers/notifications/notify-admins"
	notifyuser "fruitcenter-events/internal/workers/notifications/notify-user"
	createorder "fruitcenter-events/internal/workers/payments/create-order"
	fruitadvisor "fruitcenter-events/internal/workers/suggestions/fruit-advisor"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting event manager...",
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init FCM client with retry ---
	var messaging push.MessagingService
	err = retryWithBackoff(func() error {
		var err error
		messaging, err = push.NewMessagingClient(ctx, cfg.Push)
		return err
	}, 5, 2*time.Second, zapLog, "FCM client initialization")
	if err != nil {
		zapLog.Fatal("fcm client failed after retries", zap.Error(err))
	}
	zapLog.Info("FCM client initialized successfully")

	dispatcher := push.NewDispatcher(messaging, log)

	// --- Event handlers ---
	userCfg := notifyuser.LoadConfig()
	userHandler := notifyuser.NewHandler(userCfg, pg.DB, dispatcher, log)

	adminCfg := notifyadmins.LoadConfig()
	adminCfg.SettleDelay = config.GetDuration(cfg.Events.SettleDelay)
	adminCfg.AdminTopic = cfg.Push.AdminTopic
	adminCfg.Timeout = adminCfg.SettleDelay + 30*time.Second
	adminHandler := notifyadmins.NewHandler(adminCfg, pg.DB, dispatcher, log)

	consumer := events.NewConsumer(rdb.GetClient(), cfg.Events, adminHandler, userHandler, log)

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- consumer.Run(ctx)
	}()

	// --- Request/response handlers ---
	advisorHandler := fruitadvisor.NewHandler(fruitadvisor.LoadConfig(cfg.APIs.OpenRouter), log)
	paymentHandler := createorder.NewHandler(createorder.LoadConfig(cfg.Integrations.Razorpay), log)
	verificationHandler, err := verificationemail.NewHandler(verificationemail.LoadConfig(cfg.Integrations.AWS), log)
	if err != nil {
		zapLog.Fatal("verification email handler init failed", zap.Error(err))
	}
	purgeHandler := purgenotifications.NewHandler(purgenotifications.LoadConfig(), pg.DB, log)

	engine := api.NewRouter(api.Services{
		Suggestions:  advisorHandler,
		Payments:     paymentHandler,
		Verification: verificationHandler,
		Purge:        purgeHandler,
	}, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		zapLog.Warn("consumer did not drain before shutdown deadline")
	}

	zapLog.Info("Event manager stopped")
}
