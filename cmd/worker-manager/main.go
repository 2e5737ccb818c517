// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"legal-docs-workers/internal/common/aws"
	"legal-docs-workers/internal/common/camunda"
	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/database"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/common/observability"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/repository"
	"legal-docs-workers/internal/templates"

	gd "legal-docs-workers/internal/workers/documents/generate-document"
	pp "legal-docs-workers/internal/workers/documents/preview-placeholders"
)

// registryTTL bounds how long a registry edit takes to reach running workers.
const registryTTL = time.Minute

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

type workerHandler interface {
	Register() error
	Close()
	GetTaskType() string
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	log := logger.FromConfig(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint, log)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFromApp(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.CheckRecordsTable(ctx, cfg.Storage.RecordsTable); err != nil {
		zapLog.Fatal("records table check failed", zap.String("table", cfg.Storage.RecordsTable), zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Elasticsearch (optional) ---
	var index *repository.DocumentIndex
	if cfg.Database.Elasticsearch.GetURL() != "" {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}
			return es.EnsureIndex(ctx, cfg.Storage.IndexName)
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, generated documents will not be indexed", zap.Error(err))
		} else {
			index = repository.NewDocumentIndex(es.Client, cfg.Storage.IndexName)
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	notifier, err := aws.NewNotifierFromConfig(ctx, cfg, log)
	if err != nil {
		zapLog.Warn("notifications disabled", zap.Error(err))
	}

	// --- Domain wiring ---
	records := repository.NewCachedRecordRepository(
		repository.NewPostgresRecordRepository(pg.DB, cfg.Storage.RecordsTable),
		rdb.Client,
		time.Duration(cfg.Storage.RecordCacheTTL)*time.Second,
		log,
	)
	store := templates.NewStore(cfg.Templates.Dir, cfg.Templates.RegistryPath, registryTTL, log)
	generator := documents.NewGenerator(log, obs, cfg.Templates.MaxAgendaItems)
	outputs := repository.NewOutputCache(rdb.Client, time.Duration(cfg.Storage.OutputTTL)*time.Second)

	genDeps := gd.ServiceDependencies{
		Records:   records,
		Templates: store,
		Generator: generator,
		Outputs:   outputs,
	}
	// Assigned only when set so the interfaces stay nil otherwise.
	if index != nil {
		genDeps.Index = index
	}
	if notifier != nil {
		genDeps.Notifier = notifier
	}

	generateHandler, err := gd.NewHandler(gd.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       zeebe,
		Logger:        log,
		Observability: obs,
		Dependencies:  genDeps,
	})
	if err != nil {
		zapLog.Fatal("failed to create generate-document handler", zap.Error(err))
	}

	previewHandler, err := pp.NewHandler(pp.HandlerOptions{
		AppConfig:    cfg,
		Camunda:      zeebe,
		Logger:       log,
		Dependencies: pp.ServiceDependencies{Records: records},
	})
	if err != nil {
		zapLog.Fatal("failed to create preview-placeholders handler", zap.Error(err))
	}

	handlers := []workerHandler{generateHandler, previewHandler}
	for _, h := range handlers {
		if err := h.Register(); err != nil {
			zapLog.Fatal("worker registration failed", zap.String("taskType", h.GetTaskType()), zap.Error(err))
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(handlers)))

	// --- Health, Metrics & Download Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status, code := "ready", http.StatusOK
		failed, err := database.Ready(checkCtx,
			database.Check{Name: "zeebe", Ping: generateHandler.HealthCheck},
			database.Check{Name: "postgres", Ping: pg.Ping},
			database.Check{Name: "redis", Ping: rdb.Ping},
		)
		if err != nil {
			zapLog.Warn("readiness check failed", zap.String("dependency", failed), zap.Error(err))
			status, code = failed+" unavailable", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle(repository.DownloadPattern, repository.DownloadHandler(outputs, log))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HealthPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, h := range handlers {
		h.Close()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
