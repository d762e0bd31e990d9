package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"front-of-house/internal/common/httpx"
	"front-of-house/internal/common/logger"
	"front-of-house/internal/common/metrics"
	"front-of-house/internal/config"
	"front-of-house/internal/connections/database"
	"front-of-house/internal/connections/rabbitmq"
	"front-of-house/internal/events"
	"front-of-house/internal/services/auth"
	"front-of-house/internal/services/catalog"
	"front-of-house/internal/services/history"
	"front-of-house/internal/services/kitchen"
	"front-of-house/internal/services/notify"
	"front-of-house/internal/services/orders"
)

func main() {
	mode := flag.String("mode", "", "order-service | kitchen-service | notification-subscriber")
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrationsDir := flag.String("migrations", "migrations", "path to migrations dir")
	port := flag.Int("port", 0, "override the configured HTTP port")
	flag.Parse()

	if *mode == "" {
		fmt.Fprintln(os.Stderr, "--mode is required: order-service | kitchen-service | notification-subscriber")
		os.Exit(2)
	}

	lg := logger.New(*mode)

	cfg, err := config.Load(*configPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "order-service":
		if *port == 0 {
			*port = cfg.HTTP.OrderPort
		}
		err = runOrderService(ctx, cfg, lg, *port, *migrationsDir)
	case "kitchen-service":
		if *port == 0 {
			*port = cfg.HTTP.KitchenPort
		}
		err = runKitchenService(ctx, cfg, lg, *port)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, lg)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
	if err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
	lg.Info("service_stopped", nil)
}

func runOrderService(ctx context.Context, cfg *config.Config, lg *logger.Logger, port int, migrationsDir string) error {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	lg.Info("db_connected", nil)

	if err := database.RunMigrations(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}
	lg.Info("rabbitmq_connected", nil)

	m := metrics.New("order_service")
	pub := events.NewPublisher(mq)

	authService := auth.NewService(auth.NewPGStaffRepository(db),
		time.Duration(cfg.Auth.SessionTTLHours)*time.Hour, lg)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalog.NewPGRepository(db), lg)
	catalogHandler := catalog.NewHandler(catalogService)

	orderRepo := orders.NewPGRepository(db)
	orderService := orders.NewService(orderRepo, catalogService, pub, lg, m)
	orderHandler := orders.NewHandler(orderService)

	historyService := history.NewService(orderRepo, time.Local)
	historyHandler := history.NewHandler(historyService)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", m.Middleware("register", authHandler.Register))
	mux.HandleFunc("POST /auth/login", m.Middleware("login", authHandler.Login))
	mux.HandleFunc("GET /auth/applications",
		m.Middleware("list_applications", authService.Require(auth.AdminOnly, authHandler.ListApplications)))
	mux.HandleFunc("POST /auth/applications/{id}/review",
		m.Middleware("review_application", authService.Require(auth.AdminOnly, authHandler.ReviewApplication)))

	mux.HandleFunc("GET /menu",
		m.Middleware("menu_list", authService.Require(auth.AnyEmployee, catalogHandler.List)))
	mux.HandleFunc("GET /menu/categories",
		m.Middleware("menu_categories", authService.Require(auth.AnyEmployee, catalogHandler.Categories)))
	mux.HandleFunc("POST /menu",
		m.Middleware("menu_create", authService.Require(auth.AdminOnly, catalogHandler.Create)))
	mux.HandleFunc("PUT /menu/{id}",
		m.Middleware("menu_update", authService.Require(auth.AdminOnly, catalogHandler.Update)))
	mux.HandleFunc("DELETE /menu/{id}",
		m.Middleware("menu_delete", authService.Require(auth.AdminOnly, catalogHandler.Delete)))

	mux.HandleFunc("POST /orders",
		m.Middleware("place_order", authService.Require(auth.WaiterOrAdmin, orderHandler.Place)))
	mux.HandleFunc("POST /orders/{id}/delivered",
		m.Middleware("mark_delivered", authService.Require(auth.WaiterOrAdmin, orderHandler.MarkDelivered)))

	mux.HandleFunc("GET /orders/history",
		m.Middleware("history_list", authService.Require(auth.AdminOnly, historyHandler.List)))
	mux.HandleFunc("GET /orders/history/{id}",
		m.Middleware("history_detail", authService.Require(auth.AdminOnly, historyHandler.Detail)))

	mux.HandleFunc("GET /health", healthHandler("order-service", db, mq))
	mux.Handle("GET /metrics", metrics.Handler())

	lg.Info("service_started", map[string]any{"port": port})
	return httpx.New(":"+strconv.Itoa(port), mux).Run(ctx)
}

func runKitchenService(ctx context.Context, cfg *config.Config, lg *logger.Logger, port int) error {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	lg.Info("db_connected", nil)

	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}
	lg.Info("rabbitmq_connected", nil)

	m := metrics.New("kitchen_service")
	pub := events.NewPublisher(mq)

	authService := auth.NewService(auth.NewPGStaffRepository(db),
		time.Duration(cfg.Auth.SessionTTLHours)*time.Hour, lg)

	kitchenService := kitchen.NewService(orders.NewPGRepository(db), pub, lg, m)
	kitchenHandler := kitchen.NewHandler(kitchenService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tickets",
		m.Middleware("tickets", authService.Require(auth.AnyEmployee, kitchenHandler.Tickets)))
	mux.HandleFunc("POST /tickets/{id}/ready",
		m.Middleware("mark_ready", authService.Require(auth.ChefOrAdmin, kitchenHandler.MarkReady)))
	mux.HandleFunc("GET /health", healthHandler("kitchen-service", db, mq))
	mux.Handle("GET /metrics", metrics.Handler())

	lg.Info("service_started", map[string]any{"port": port})
	return httpx.New(":"+strconv.Itoa(port), mux).Run(ctx)
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}
	lg.Info("rabbitmq_connected", nil)

	return notify.NewSubscriber(mq, lg).Run(ctx)
}

func healthHandler(service string, db *sql.DB, mq *rabbitmq.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := db.PingContext(ctx) == nil && mq.Ping() == nil
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, status, map[string]any{
			"service":   service,
			"healthy":   healthy,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
