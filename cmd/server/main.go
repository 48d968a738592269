package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/opinionmap/api/internal/adapters/cache/redis"
	"github.com/opinionmap/api/internal/adapters/handler/http"
	"github.com/opinionmap/api/internal/adapters/repository/postgres"
	"github.com/opinionmap/api/internal/config"
	"github.com/opinionmap/api/internal/core/ports"
	"github.com/opinionmap/api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	questionRepo := postgres.NewQuestionRepository(db)
	answerRepo := postgres.NewAnswerRepository(db)

	var filter ports.ProximityFilter
	if cfg.ProximityFilter == config.FilterMemory {
		filter = services.NewMemoryProximityFilter(answerRepo)
	} else {
		filter = services.NewPushdownProximityFilter(answerRepo)
	}

	var cache ports.ResultCache
	if cfg.RedisAddr != "" {
		cache, err = redis.NewResultCache(cfg.RedisAddr, cfg.RedisPassword, cfg.ResultCacheTTL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.Info("result cache enabled", "addr", cfg.RedisAddr)
	}

	questionService := services.NewQuestionService(questionRepo)
	answerService := services.NewAnswerService(questionRepo, answerRepo)
	resultsService := services.NewResultsService(filter, cache)

	handler := http.NewHandler(
		http.NewQuestionHandler(questionService),
		http.NewAnswerHandler(answerService, filter),
		http.NewResultHandler(resultsService),
		http.NewSessionHandler(resultsService),
	)
	server := &stdhttp.Server{Addr: "0.0.0.0:" + cfg.Port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "port", cfg.Port, "proximity_filter", cfg.ProximityFilter)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
