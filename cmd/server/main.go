package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/catalog"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/report"
	"storefront-be/internal/rest"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoDB, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		log.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoDB.Client().Disconnect(ctx)
	}()

	catalogRepo := catalog.NewRepository(mongoDB)
	catalogSvc := catalog.NewService(catalogRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, catalogRepo, cfg.CheckoutTimeout)

	reportRepo := report.NewRepository(database, mongoDB)
	reportSvc := report.NewService(reportRepo)

	checkoutMetrics := metrics.NewCheckout()

	router := rest.NewRouter(rest.Deps{
		Auth:     rest.NewAuthHandler(userSvc),
		Products: rest.NewProductHandler(catalogSvc),
		Orders:   rest.NewOrderHandler(orderSvc, checkoutMetrics),
		Reports:  rest.NewReportHandler(reportSvc),
		Users:    userRepo,
		Metrics:  checkoutMetrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	// In-flight checkouts resolve to commit or rollback server-side;
	// shutdown waits for them instead of severing connections.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
