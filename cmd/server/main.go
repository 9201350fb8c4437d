package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/lyricjournal/internal/api"
	"github.com/rohits-web03/lyricjournal/internal/api/services"
	"github.com/rohits-web03/lyricjournal/internal/backup"
	"github.com/rohits-web03/lyricjournal/internal/config"
	"github.com/rohits-web03/lyricjournal/internal/repositories"
)

const shutdownTimeout = 10 * time.Second

// @title Lyric Journal API
// @version 1.0
// @description Personal journal for song lyrics.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Bootstrap logger until .env has been read.
	logger := newLogger(config.Config{Environment: os.Getenv("ENV")}.IsProduction())

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	_ = logger.Sync()
	logger = newLogger(cfg.IsProduction())
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(production bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func run(cfg config.Config, logger *zap.Logger) error {
	backend, closeBackend, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()
	store := repositories.NewStore(backend)

	authService := services.NewAuthService(store, []byte(cfg.JWTSecret), cfg.TokenTTL)
	lyricService := services.NewLyricService(store)

	handler := api.SetupRouter(api.Deps{
		Auth:      authService,
		Lyrics:    lyricService,
		Logger:    logger,
		Cors:      cfg.CorsConfig,
		PublicDir: cfg.PublicDir,
	})

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	scheduler, err := newScheduler(cfg, store, logger)
	if err != nil {
		return err
	}

	ln, err := listen(cfg.Port, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting lyric journal server", zap.String("addr", ln.Addr().String()), zap.String("env", cfg.Environment))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if scheduler != nil {
		g.Go(func() error { return scheduler.Run(gctx) })
	}

	return g.Wait()
}

// newScheduler returns nil when no backup schedule is configured.
func newScheduler(cfg config.Config, store backup.Snapshotter, logger *zap.Logger) (*backup.Scheduler, error) {
	if cfg.BackupSchedule == "" {
		return nil, nil
	}
	bucket, err := repositories.NewR2Bucket(repositories.R2Options{
		AccountID:       cfg.R2.AccountID,
		AccessKeyID:     cfg.R2.AccessKeyID,
		SecretAccessKey: cfg.R2.SecretAccessKey,
		BucketName:      cfg.R2.BucketName,
		Region:          cfg.R2.Region,
		Endpoint:        cfg.R2.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("backup bucket: %w", err)
	}
	return backup.New(cfg.BackupSchedule, store, bucket, logger.Named("backup"))
}

// openBackend picks PostgreSQL when DB_URL is set and the JSON file otherwise.
func openBackend(cfg config.Config, logger *zap.Logger) (repositories.DocumentStore, func(), error) {
	if cfg.DB_URL != "" {
		db, err := repositories.ConnectDatabase(cfg.DB_URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("using postgres store")
		return db, func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database", zap.Error(err))
			}
		}, nil
	}

	fs, err := repositories.NewFileStore(cfg.DBFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open database file: %w", err)
	}
	logger.Info("using file store", zap.String("path", fs.Path()))
	return fs, func() {}, nil
}

// listen binds port, moving to port+1 once if it is already taken.
func listen(port int, logger *zap.Logger) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err == nil {
		return ln, nil
	}
	if !errors.Is(err, syscall.EADDRINUSE) || port >= 65535 {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	logger.Warn("port in use, trying the next one", zap.Int("port", port), zap.Int("next", port+1))
	ln, err = net.Listen("tcp", fmt.Sprintf(":%d", port+1))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port+1, err)
	}
	return ln, nil
}
