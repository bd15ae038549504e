package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/erenasiroglu/persona-backend/internal/cache"
	"github.com/erenasiroglu/persona-backend/internal/config"
	"github.com/erenasiroglu/persona-backend/internal/database"
	"github.com/erenasiroglu/persona-backend/internal/handler"
	"github.com/erenasiroglu/persona-backend/internal/mailer"
	"github.com/erenasiroglu/persona-backend/internal/queue"
	"github.com/erenasiroglu/persona-backend/internal/repository"
	"github.com/erenasiroglu/persona-backend/internal/router"
	"github.com/erenasiroglu/persona-backend/internal/service"
	"github.com/erenasiroglu/persona-backend/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, profile cache disabled")
	}
	profiles := cache.NewUserCache(rdb, cache.DefaultProfileTTL)

	users := repository.NewUserRepo(db)
	hasher := utils.BcryptHasher{}
	signer := utils.JWTSigner{Secret: cfg.JWTSecret}

	smtpMailer := mailer.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
	}
	var outbound service.Mailer = smtpMailer
	if cfg.MailDispatch == config.MailDispatchQueue {
		brokerURL := queue.BrokerURL()
		outbound = mailer.QueueMailer{URL: brokerURL}
		go queue.StartEmailConsumer(brokerURL, smtpMailer, logger)
		logger.Info("mail dispatch via queue", zap.String("queue", queue.EmailQueueName))
	}

	creds := service.NewCredentialService(users, hasher, signer)
	resets := service.NewResetService(users, hasher, utils.RandomTokenSource{}, outbound, cfg.FrontendURL)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(creds, resets, users, profiles, logger), cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	return logger
}
