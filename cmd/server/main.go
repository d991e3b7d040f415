package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"elitepainters/infrastructure/cache"
	"elitepainters/infrastructure/db"
	"elitepainters/infrastructure/mail"
	"elitepainters/infrastructure/storage"
	"elitepainters/infrastructure/ws"
	"elitepainters/internal/config"
	httpHandler "elitepainters/internal/delivery/http"
	"elitepainters/internal/delivery/websocket"
	"elitepainters/internal/repository"
	"elitepainters/internal/usecase"
	"elitepainters/pkg/jwt"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg)
	if cfg.UsesDefaultSecret() {
		logger.Warn().Msg("using default JWT secret, set JWT_SECRET outside development")
	}

	ctx := context.Background()

	mongoDb, err := db.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connection failed")
	}
	if err := mongoDb.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("mongodb index bootstrap failed")
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(*mongoDb.DB)
	customerRepo := repository.NewCustomerRepository(*mongoDb.DB)
	messageRepo := repository.NewMessageRepository(*mongoDb.DB)
	quoteRepo := repository.NewQuoteRepository(*mongoDb.DB)
	employeeRepo := repository.NewEmployeeRepository(*mongoDb.DB)
	galleryRepo := repository.NewGalleryRepository(*mongoDb.DB)

	var hub ws.IHub
	if cfg.RedisAddr != "" {
		redisHub, err := ws.NewRedisHub(ctx, cfg.RedisAddr, cfg.ServerID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisHub.Close()
		hub = redisHub
		logger.Info().Str("redis", cfg.RedisAddr).Str("server_id", cfg.ServerID).Msg("using Redis hub")
	} else {
		hub = ws.NewHub(logger)
		logger.Info().Msg("using in-memory hub (single server)")
	}
	go hub.Run()

	images, uploads := newImageStorage(ctx, cfg, logger)

	var notifier usecase.QuoteNotifier = mail.NoopMailer{}
	if cfg.SMTPHost != "" {
		smtpMailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Secure:   cfg.SMTPSecure,
			User:     cfg.SMTPUser,
			Pass:     cfg.SMTPPass,
			FromName: cfg.FromName,
			FromAddr: cfg.FromEmail,
			Admins:   cfg.AdminEmails,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("smtp mailer setup failed")
		}
		notifier = smtpMailer
		logger.Info().Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Bool("tls", cfg.SMTPSecure).Msg("mailing new quotes")
	}

	badge := cache.NewMemCache(10 * time.Minute)
	defer badge.Close()

	jwtManager := jwt.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Initialize use cases
	admins := usecase.NewAdminResolver(cfg.AdminID, adminRepo)
	authUc := usecase.NewAuthUsecase(adminRepo, customerRepo, jwtManager)
	chatUc := usecase.NewChatUsecase(messageRepo, admins, hub, logger)
	quoteUc := usecase.NewQuoteUsecase(quoteRepo, cfg.Pricing, badge, hub, notifier, logger)
	employeeUc := usecase.NewEmployeeUsecase(employeeRepo, images, logger)
	galleryUc := usecase.NewGalleryUsecase(galleryRepo, images, logger)
	dashboardUc := usecase.NewDashboardUsecase(customerRepo, quoteUc, employeeUc, chatUc)

	router := httpHandler.NewRouter(logger, cfg.CORSOrigins)
	httpHandler.MapHttpRoutes(router, httpHandler.Handlers{
		Http:      httpHandler.NewHttpHandler(chatUc, mongoDb, hub, logger),
		Auth:      httpHandler.NewAuthHandler(authUc, logger),
		Quote:     httpHandler.NewQuoteHandler(quoteUc, logger),
		Employee:  httpHandler.NewEmployeeHandler(employeeUc, logger),
		Gallery:   httpHandler.NewGalleryHandler(galleryUc, logger),
		Dashboard: httpHandler.NewDashboardHandler(dashboardUc, logger),
		Websocket: websocket.NewWebsocketHandler(hub, authUc, chatUc, cfg.CORSOrigins, logger),
		Uploads:   uploads,
	}, httpHandler.NewAuthMiddleware(authUc))

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := mongoDb.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongodb disconnect failed")
	}

	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// newImageStorage prefers S3 when a bucket is configured. Local files are
// served back under /uploads.
func newImageStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.ImageStorage, http.Handler) {
	if cfg.AWSS3Bucket != "" {
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("s3 client setup failed")
		}
		logger.Info().Str("bucket", cfg.AWSS3Bucket).Msg("storing images in S3")
		return s3Storage, nil
	}

	diskStorage, err := storage.NewDiskStorage(cfg.UploadDir, "/uploads/")
	if err != nil {
		logger.Fatal().Err(err).Msg("upload directory setup failed")
	}
	logger.Info().Str("dir", filepath.Clean(cfg.UploadDir)).Msg("storing images on disk")
	return diskStorage, diskStorage.Handler()
}
