package main

import (
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/product-catalog/config"
	"example.com/product-catalog/internal/infra/messaging/kafka"
	"example.com/product-catalog/internal/infra/persistence/mysql"
	"example.com/product-catalog/internal/infra/security"
	httpapi "example.com/product-catalog/internal/interface/http"
	"example.com/product-catalog/internal/locks"
	authuc "example.com/product-catalog/internal/usecase/auth"
	cartuc "example.com/product-catalog/internal/usecase/cart"
	orderuc "example.com/product-catalog/internal/usecase/order"
	productuc "example.com/product-catalog/internal/usecase/product"
	useruc "example.com/product-catalog/internal/usecase/user"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("invalid LOG_LEVEL %q, using %s", cfg.LogLevel, level)
	}
	logger.SetLevel(level)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not configured")
	}

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to mysql")
	}
	defer db.Close()

	if err := mysql.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logger.WithError(err).Fatal("could not run migrations")
	}
	logger.Info("database ready")

	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	productRepo := mysql.NewProductRepository(db)
	userRepo := mysql.NewUserRepository(db)

	tokenSvc := security.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	passwordSvc := security.NewBcryptService(cfg.BcryptCost)

	var events orderuc.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		events = producer
		logger.WithField("topic", cfg.KafkaTopic).Info("order event producer ready")
	} else {
		logger.Info("KAFKA_BROKERS not set, order events disabled")
	}

	owners := locks.NewKeyed()

	authSvc := authuc.NewService(userRepo, passwordSvc, tokenSvc)
	userSvc := useruc.NewService(userRepo)
	productSvc := productuc.NewService(productRepo)
	cartSvc := cartuc.NewService(cartRepo, productRepo, owners)
	orderSvc := orderuc.NewService(cartRepo, productRepo, orderRepo, userRepo, events, owners, uuid.NewString, logger)

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:    authSvc,
		UserService:    userSvc,
		ProductService: productSvc,
		CartService:    cartSvc,
		OrderService:   orderSvc,
		TokenService:   tokenSvc,
	})

	addr := ":" + cfg.Port
	logger.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, api.Router()); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
