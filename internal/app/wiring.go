package app

import (
	"context"
	"fmt"

	"commerce-service/internal/audit"
	"commerce-service/internal/auth"
	"commerce-service/internal/config"
	"commerce-service/internal/http"
	"commerce-service/internal/repository/postgres"
	"commerce-service/internal/session"

	"github.com/redis/go-redis/v9"
)

const (
	errLoadConfigFmt   = "failed to load config: %w"
	errConnectDBFmt    = "failed to connect to database: %w"
	errConnectRedisFmt = "failed to connect to redis: %w"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(errLoadConfigFmt, err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf(errConnectDBFmt, err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf(errConnectRedisFmt, err)
	}

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	addressRepo := postgres.NewAddressRepository(db)
	resourceLoader := postgres.NewResourceLoader(db)

	codec := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	sessionStore := session.NewRedisStore(redisClient, codec.Expiry())
	sessions := auth.NewSessionValidator(codec, sessionStore)

	authMiddleware := auth.NewMiddleware(sessions)
	abilityMiddleware := auth.NewAbilityMiddleware(resourceLoader)
	auditLogger := audit.NewLogger(db.Pool)

	server := http.NewServer(&http.ServerDependencies{
		Config:            cfg,
		UserRepo:          userRepo,
		ProductRepo:       productRepo,
		CategoryRepo:      categoryRepo,
		TagRepo:           tagRepo,
		CartRepo:          cartRepo,
		OrderRepo:         orderRepo,
		InvoiceRepo:       invoiceRepo,
		AddressRepo:       addressRepo,
		Sessions:          sessions,
		AuthMiddleware:    authMiddleware,
		AbilityMiddleware: abilityMiddleware,
		AuditLogger:       auditLogger,
	})

	return &Service{
		config: cfg,
		db:     db,
		redis:  redisClient,
		server: server,
	}, nil
}
