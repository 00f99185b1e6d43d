package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/siddharth180703/NextHire/internal/auth"
	"github.com/siddharth180703/NextHire/internal/cache"
	"github.com/siddharth180703/NextHire/internal/config"
	"github.com/siddharth180703/NextHire/internal/database"
	"github.com/siddharth180703/NextHire/internal/handler"
	"github.com/siddharth180703/NextHire/internal/logger"
	"github.com/siddharth180703/NextHire/internal/repository"
	"github.com/siddharth180703/NextHire/pkg"
	"github.com/siddharth180703/NextHire/pkg/model"
	"go.uber.org/zap"
)

type revocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type userLookup interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type application struct {
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Logger      *zap.Logger
	Config      *config.Config
	Repository  *repository.Repository
	Handler     *handler.Handler
	Revocations revocationChecker
	Users       userLookup

	// closed on shutdown to stop background goroutines
	done chan struct{}
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, %s", cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		sugar.Fatal(err)
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		sugar.Fatal(err)
	}
	defer rdb.Close()
	redisCache := cache.New(rdb)

	crypto, err := pkg.NewCrypto(cfg.Crypto.Secret)
	if err != nil {
		sugar.Fatal(err)
	}

	repo := repository.NewRepository(pool, crypto)

	handlerApp := &handler.Handler{
		Logger:       log,
		Repository:   repo,
		TokenMaker:   auth.NewJWTMaker(cfg.JWT.Secret),
		TokenTTL:     cfg.JWT.AccessTokenTTL,
		Revoker:      redisCache,
		Events:       redisCache,
		SecureCookie: cfg.IsProduction(),
	}

	app := &application{
		DB:          pool,
		Redis:       rdb,
		Logger:      log,
		Config:      cfg,
		Repository:  repo,
		Handler:     handlerApp,
		Revocations: redisCache,
		Users:       repo,
		done:        make(chan struct{}),
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
