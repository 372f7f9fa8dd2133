package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/admin"
	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/collection"
	"storefront-be/internal/config"
	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/event"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/review"
	"storefront-be/internal/router"
	"storefront-be/internal/tag"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

// swapped in tests
var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, handler http.Handler) error {
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, cleanup := newServer(ctx, cfg, database)
	defer cleanup()

	addr := ":" + cfg.AppPort
	logger.L().Info("server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, handler)
}

// newServer wires every domain package and returns the HTTP handler plus a
// cleanup func for the notification clients.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, func()) {
	log := logger.L()
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, issued tokens are not safe")
	}

	reg := metrics.NewRegistry()
	tokens := auth.NewTokens(cfg.JWTSecret)

	dispatcher := event.NewDispatcher(reg)
	dispatcher.Connect(event.OrderCreated, notification.LogListener())

	var closers []func() error
	if cfg.RedisAddr != "" {
		pub := notification.NewRedisPublisher(cfg.RedisAddr)
		dispatcher.Connect(event.OrderCreated, pub.Listener())
		closers = append(closers, pub.Close)
		log.Info("redis order events enabled", zap.String("addr", cfg.RedisAddr))
	}
	if cfg.SendGridAPIKey != "" {
		dispatcher.Connect(event.OrderCreated, notification.NewMailNotifier(cfg.SendGridAPIKey, cfg.MailFrom).Listener())
		log.Info("order confirmation mail enabled")
	}

	productRepo := product.NewRepository(database)
	customerSvc := customer.NewService(customer.NewRepository(database))

	handlers := router.Handlers{
		Products:    product.NewHandler(product.NewService(productRepo), cfg.PageSize),
		Reviews:     review.NewHandler(review.NewService(review.NewRepository(database), productRepo)),
		Collections: collection.NewHandler(collection.NewService(collection.NewRepository(database))),
		Carts:       cart.NewHandler(cart.NewService(cart.NewRepository(database), productRepo)),
		Customers:   customer.NewHandler(customerSvc),
		Addresses:   address.NewHandler(address.NewService(address.NewRepository(database), customerSvc)),
		Orders: order.NewHandler(
			order.NewService(order.NewRepository(database), customerSvc, dispatcher),
			customerSvc,
		),
		Users: user.NewHandler(
			user.NewService(user.NewRepository(database), tokens),
			cfg.AppEnv == config.EnvProduction,
		),
		Tags:  tag.NewHandler(tag.NewService(tag.NewRepository(database), productRepo)),
		Admin: admin.NewHandler(admin.NewService(admin.NewRepository(database)), reg),
	}

	handler := router.New(router.Routes(handlers), router.Options{
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     middleware.NewRateLimiter(ctx, cfg.InternalKey),
	})

	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn("close failed", zap.Error(err))
			}
		}
	}
	return handler, cleanup
}
