package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"orderdash/internal/config"
	"orderdash/internal/csvload"
	"orderdash/internal/database"
	"orderdash/internal/eventlog"
	"orderdash/internal/handler"
	"orderdash/internal/mw"
	"orderdash/internal/service"
	"orderdash/internal/store"
)

func main() {
	cfg := config.New()

	ordersLog := eventlog.Log(eventlog.NewFileLog(cfg.OrdersEventsFile))
	barcodeLog := eventlog.Log(eventlog.NewFileLog(cfg.BarcodeEventsFile))

	if cfg.DatabaseURI != "" {
		db, err := database.NewDB(cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}

		ordersLog = eventlog.NewPostgresLog(db, "orders")
		barcodeLog = eventlog.NewPostgresLog(db, "barcode")
	}

	ordersSchema := cfg.OrdersSchema()
	barcodeSchema := cfg.BarcodeSchema()

	ordersBootstrap, err := csvload.LoadFile(cfg.OrdersBootstrapCSV, ordersSchema)
	if err != nil {
		slog.Error("failed to load orders bootstrap CSV", "error", err)
		os.Exit(1)
	}
	barcodeBootstrap, err := csvload.LoadFile(cfg.BarcodeBootstrapCSV, barcodeSchema)
	if err != nil {
		slog.Error("failed to load barcode bootstrap CSV", "error", err)
		os.Exit(1)
	}

	ordersStore := store.New(ordersBootstrap)
	barcodeStore := store.New(barcodeBootstrap)

	// Services
	orderSvc := service.NewOrderService(ordersStore, ordersLog, ordersSchema, cfg.OrderRules(), cfg.OrdersBootstrapCSV)
	recordSvc := service.NewRecordService(barcodeStore, barcodeLog, barcodeSchema, cfg.BarcodeBootstrapCSV)

	ctx := context.Background()
	if err := orderSvc.Replay(ctx); err != nil {
		slog.Error("failed to replay orders event log", "error", err)
		os.Exit(1)
	}
	if err := recordSvc.Replay(ctx); err != nil {
		slog.Error("failed to replay barcode event log", "error", err)
		os.Exit(1)
	}

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Webhook-Secret"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", handler.HealthHandler(ordersStore, barcodeStore))
	r.Get("/api/orders", handler.OrdersHandler(orderSvc))
	r.Get("/api/barcode/records", handler.RecordsHandler(recordSvc))

	// Webhook routes behind the shared-secret check
	r.Group(func(r chi.Router) {
		r.Use(mw.WebhookSecret(cfg.WebhookSecret))

		r.Post("/api/orders/webhook", handler.OrdersWebhookHandler(orderSvc))
		r.Post("/api/barcode/webhook", handler.RecordsWebhookHandler(recordSvc))
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress,
		"orders_bootstrap_rows", len(ordersBootstrap), "barcode_bootstrap_rows", len(barcodeBootstrap),
		"webhook_secret_enabled", cfg.WebhookSecret != "")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
