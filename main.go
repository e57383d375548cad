package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"golang.org/x/time/rate"

	"ticket-store/internal/catalog"
	catalog_api "ticket-store/internal/catalog/api"
	"ticket-store/internal/checkout"
	checkout_api "ticket-store/internal/checkout/api"
	"ticket-store/internal/config"
	"ticket-store/internal/database/migrations"
	"ticket-store/internal/email"
	email_api "ticket-store/internal/email/api"
	"ticket-store/internal/forms"
	forms_api "ticket-store/internal/forms/api"
	"ticket-store/internal/kafka"
	"ticket-store/internal/logger"
	"ticket-store/internal/middleware"
	"ticket-store/internal/order"
	"ticket-store/internal/order/coupon"
	"ticket-store/internal/order/db"
	"ticket-store/internal/order/order_api"
	"ticket-store/internal/payment"
	payment_api "ticket-store/internal/payment/api"
	"ticket-store/internal/payment/xendit"
	"ticket-store/internal/session"
)

func connectDatabase(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err == nil {
			err = sqldb.Ping()
			if err == nil {
				break
			}
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unavailable at %s, option caching disabled: %v", cfg.Addr, err))
		return nil
	}
	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting ticket store initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg.Database, log)
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		log.Info("DATABASE", "Migrations applied")
	}

	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		topics := []string{
			cfg.Kafka.Topics.OrderCreated,
			cfg.Kafka.Topics.OrderPaid,
			cfg.Kafka.Topics.OrderCancelled,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics)
		defer producer.Close()
		log.Info("KAFKA", "Kafka producer initialized")
	}
	var orderEvents order.Publisher
	var paymentEvents payment.Publisher
	if producer != nil {
		orderEvents = producer
		paymentEvents = producer
	}

	storeDB := &db.DB{Bun: bunDB}
	sessions := session.NewManager(cfg.Session.SigningKey, cfg.Session.TTL)
	evaluator := coupon.NewEvaluator(storeDB)

	orderService := order.NewOrderService(storeDB, evaluator, sessions, orderEvents, log, cfg.Store.EventID)
	checkoutService := checkout.NewService(bunDB, log)
	paymentService := payment.NewService(
		xendit.NewClient(cfg.Payment.APIBaseURL, cfg.Payment.APIToken),
		storeDB, paymentEvents, log, cfg.Payment,
	)
	var upstreamCatalog catalog.ProductFetcher
	if cfg.Store.CatalogAPIURL != "" {
		upstreamCatalog = catalog.NewFetcher(cfg.Store.CatalogAPIURL)
	}
	catalogService := catalog.NewService(storeDB, upstreamCatalog, redisClient, log, cfg.Store.EventID, cfg.Store.CatalogCacheTTL)
	emailSender := email.NewSender(cfg.Email, log)
	formsService := forms.NewService(
		forms.NewHubSpotClient(cfg.Forms.APIBaseURL, cfg.Forms.APIToken),
		redisClient, log, cfg.Forms.FormID, cfg.Forms.CacheTTL,
	)

	orderHandler := order_api.NewHandler(orderService, log)
	catalogHandler := catalog_api.NewHandler(catalogService, log)
	checkoutHandler := checkout_api.NewHandler(checkoutService, orderService, log)
	paymentHandler := payment_api.NewHandler(paymentService, log, cfg.Payment.WebhookSecret)
	emailHandler := email_api.NewHandler(emailSender, log, cfg.Payment.SiteURL)
	formsHandler := forms_api.NewHandler(formsService)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)

	r.Route("/api/v1", func(r chi.Router) {
		orderHandler.RegisterRoutes(r)
		catalogHandler.RegisterRoutes(r)
		checkoutHandler.RegisterRoutes(r)
		r.Route("/store", func(r chi.Router) {
			formsHandler.RegisterRoutes(r)
		})
	})
	r.Route("/api/payments", func(r chi.Router) {
		r.Use(middleware.RateLimit(log, rate.Every(time.Second), 100))
		paymentHandler.RegisterRoutes(r)
	})
	r.Route("/api/emails", func(r chi.Router) {
		emailHandler.RegisterRoutes(r)
	})
	log.Info("ROUTER", "Routes registered under /api/v1, /api/payments and /api/emails")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Ticket store running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Ticket store shutdown complete")
	}
}
