package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Skufu/GoRocky-symptoms/internal/config"
	"github.com/Skufu/GoRocky-symptoms/internal/details"
	"github.com/Skufu/GoRocky-symptoms/internal/knowledge"
	"github.com/Skufu/GoRocky-symptoms/internal/logging"
	"github.com/Skufu/GoRocky-symptoms/internal/predict"
	"github.com/Skufu/GoRocky-symptoms/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	var pool *pgxpool.Pool
	if cfg.NeedsDB() {
		pool, err = connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		defer pool.Close()
	}

	src, err := newSource(cfg, pool)
	if err != nil {
		logger.Fatal("knowledge base source", zap.Error(err))
	}
	kb, err := knowledge.LoadBase(ctx, src, logger)
	if err != nil {
		logger.Fatal("failed to load knowledge base", zap.Error(err))
	}

	deps := server.Deps{
		Scorer:   predict.NewScorer(kb, logger.Named("scorer")),
		Details:  details.NewAggregator(kb, logger.Named("details")),
		Diseases: kb,
		Logger:   logger.Named("http"),
	}
	if pool != nil {
		deps.DB = pool
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("kb_source", src.String()))
	waitForShutdown(srv, logger)
}

// newSource picks the knowledge-base backend named by KB_SOURCE.
func newSource(cfg *config.Config, pool *pgxpool.Pool) (knowledge.Source, error) {
	switch cfg.KBSource {
	case config.SourceCSV:
		return knowledge.DirSource{Dir: cfg.DatasetDir}, nil
	case config.SourceXLSX:
		return knowledge.WorkbookSource{Path: cfg.DatasetWorkbook}, nil
	case config.SourcePostgres:
		if pool == nil {
			return nil, fmt.Errorf("postgres source requires a database connection")
		}
		return knowledge.PostgresSource{DB: pool}, nil
	default:
		return nil, fmt.Errorf("unknown knowledge base source %q", cfg.KBSource)
	}
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func waitForShutdown(srv *http.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
