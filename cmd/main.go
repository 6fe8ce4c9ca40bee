package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dkozyrev/sneakershop/internal/api/web"
	"github.com/dkozyrev/sneakershop/internal/api/web/handler"
	"github.com/dkozyrev/sneakershop/internal/api/web/middleware"
	"github.com/dkozyrev/sneakershop/internal/api/web/render"
	"github.com/dkozyrev/sneakershop/internal/api/web/webctx"
	"github.com/dkozyrev/sneakershop/internal/config"
	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/mail"
	"github.com/dkozyrev/sneakershop/internal/metrics"
	"github.com/dkozyrev/sneakershop/internal/repository/postgres"
	"github.com/dkozyrev/sneakershop/internal/service"
	storage "github.com/dkozyrev/sneakershop/internal/storage/minio"
	"github.com/dkozyrev/sneakershop/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, refreshTokenRepo, outboxRepo, tokenManager, logger)
	sessionService := service.NewSession(userRepo, refreshTokenRepo, tokenManager, logger)
	catalogService := service.NewCatalog(productRepo, storageClient, logger)
	cartService := service.NewCart(orderRepo, productRepo, logger)
	commentsService := service.NewComments(commentRepo, logger)

	renderer, err := render.New(logger)
	if err != nil {
		logger.Fatal("failed to initialize renderer", "error", err)
	}

	ctxMgr := webctx.NewManager()
	serverMetrics := metrics.NewServerMetrics("web")

	h := handler.New(authService, sessionService, catalogService, cartService, commentsService, ctxMgr, renderer, logger)
	router := web.NewRouter(h,
		middleware.NewAuthenticate(sessionService, ctxMgr, logger),
		middleware.NewLogging(logger, serverMetrics),
	)

	dispatcher := mail.NewDispatcher(
		outboxRepo,
		mail.NewSMTPSender(cfg.SMTP),
		cfg.HTTP.BaseURL,
		time.Duration(cfg.Outbox.SweepIntervalSeconds)*time.Second,
		cfg.Outbox.BatchSize,
		logger.With("component", "mail-dispatcher"),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", server.Addr)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
