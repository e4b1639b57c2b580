package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/bootstrap"
	"portfolio-api/internal/config"
	apphttp "portfolio-api/internal/http"
	"portfolio-api/internal/maintenance"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/repository/sqlite"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := cfg.NewLogger()

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatalf("setup token service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repos := sqlite.NewRepositories(db)
	accountService := service.NewAccountService(repos.Accounts, cfg.Auth.BcryptCost)

	if _, err := bootstrap.New(repos, accountService, logger).Run(ctx, bootstrap.Options{
		Seed: cfg.Database.Seed,
		Admin: service.AdminSpec{
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
			FullName: cfg.Auth.AdminName,
		},
	}); err != nil {
		logger.Fatalf("bootstrap database: %v", err)
	}

	files, staticDir, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	appMetrics := metrics.New()

	verifier, err := auth.NewVerifier(repos.Accounts, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatalf("setup credential verifier: %v", err)
	}
	gate := auth.NewGate(tokens, repos.Accounts,
		auth.WithLogger(logger.WithField("component", "gate")),
		auth.WithObserver(appMetrics),
	)

	compactor := maintenance.NewCompactor(repos.Maintenance, sqlite.SingletonTables,
		maintenance.WithLogger(logger.WithField("component", "maintenance")),
		maintenance.WithObserver(appMetrics),
	)
	scheduler := maintenance.NewScheduler(compactor, cfg.Maintenance.Schedule, logger.WithField("component", "scheduler"))
	if err := scheduler.Start(ctx); err != nil {
		logger.Fatalf("start maintenance scheduler: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	handler := apphttp.NewHandler(apphttp.Config{
		Verifier:       verifier,
		Tokens:         tokens,
		Gate:           gate,
		About:          service.NewAboutService(repos.About),
		Projects:       service.NewProjectService(repos.Projects),
		Technologies:   service.NewTechnologyService(repos.Technologies),
		Homepage:       service.NewHomepageService(repos.Homepage, files),
		Contact:        service.NewContactService(repos.Contact),
		Metrics:        appMetrics,
		Limiter:        apphttp.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window),
		Logger:         logger.WithField("component", "http"),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		BodyLimit:      cfg.Server.BodyLimit,
		StaticDir:      staticDir,
		StaticPath:     cfg.Storage.PublicPath,
		Port:           cfg.Server.Port,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	scheduler.Stop()

	logger.Info("bye")
}

// buildStorage returns the CV storage backend and, for local storage, the
// directory to serve statically.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, string, error) {
	if cfg.Storage.Driver != "s3" {
		local, err := storage.NewLocalService(cfg.Storage.LocalDir, cfg.Storage.PublicPath)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing uploads in %s (served at %s)", local.Root(), local.PublicPath())
		return local, local.Root(), nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, "", fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	svc, err := storage.NewS3Service(client, storage.S3Options{
		Bucket:        cfg.Storage.Bucket,
		KeyPrefix:     cfg.Storage.KeyPrefix,
		Region:        cfg.Storage.Region,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, "", err
	}
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return svc, "", nil
}
