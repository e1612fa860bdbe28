package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dwikikusuma/order-notify/internal/notify/app"
	"github.com/dwikikusuma/order-notify/internal/notify/infra/broadcast"
	"github.com/dwikikusuma/order-notify/internal/notify/infra/ingest"
	"github.com/dwikikusuma/order-notify/internal/notify/infra/shopify"
	"github.com/dwikikusuma/order-notify/internal/notify/webhook"
	"github.com/dwikikusuma/order-notify/pkg/config"
	"github.com/dwikikusuma/order-notify/pkg/logger"
	"github.com/dwikikusuma/order-notify/pkg/metrics"
	"github.com/dwikikusuma/order-notify/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "order-notify",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	reg := metrics.NewRegistry()

	publisher := ingest.NewClient(cfg.PublishURL, cfg.PublishAPIKey, reg)
	svc := app.NewService(publisher, cfg.PublishSource, 8, log)

	if cfg.ImagesEnabled() {
		svc.Images = shopify.NewImageClient(cfg.ShopifyAPIBase, cfg.ShopifyAdminToken, reg)
		log.Info("image enrichment enabled", slog.String("api_base", cfg.ShopifyAPIBase))
	} else {
		log.Info("image enrichment disabled")
	}

	if cfg.BroadcastAMQPURL != "" {
		forwarder, err := broadcast.NewForwarder(cfg.BroadcastAMQPURL, cfg.BroadcastExchange, reg)
		if err != nil {
			log.Error("broadcast forwarder init failed", slog.Any("err", err))
			os.Exit(1)
		}
		defer forwarder.Close()
		svc.Broadcast = forwarder
		log.Info("broadcast forwarding enabled", slog.String("exchange", cfg.BroadcastExchange))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", reg.Handler())

	webhook.NewHandler(svc, cfg.WebhookSecret, log, reg).Register(mux)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
