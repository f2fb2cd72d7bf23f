// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"medimatch-workers/internal/common/aws"
	"medimatch-workers/internal/common/camunda"
	"medimatch-workers/internal/common/config"
	"medimatch-workers/internal/common/database"
	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/common/observability"
	"medimatch-workers/internal/dispatch"
	"medimatch-workers/internal/lifecycle"
	"medimatch-workers/internal/matching"
	"medimatch-workers/internal/models"
	"medimatch-workers/internal/store/cache"
	"medimatch-workers/internal/store/elastic"
	"medimatch-workers/internal/store/postgres"
	"medimatch-workers/internal/transport"

	mad "medimatch-workers/internal/workers/matching/match-and-dispatch"
	sc "medimatch-workers/internal/workers/matching/score-candidates"
	da "medimatch-workers/internal/workers/response/decide-application"
	rr "medimatch-workers/internal/workers/response/record-response"
)

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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// activePool serves the candidate pool from the profile store when
// Elasticsearch is disabled. The engine applies the distance gate itself, so
// returning every active profile is correct, just less selective up front.
type activePool struct {
	profiles *cache.ProfileCache
}

func (p *activePool) CandidatesForMission(ctx context.Context, _ *models.Mission) ([]models.CandidateProfile, error) {
	return p.profiles.ListActive(ctx)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
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
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Stores ---
	missionStore := postgres.NewMissionStore(pg.DB)
	profileStore := postgres.NewProfileStore(pg.DB)
	notificationStore := postgres.NewNotificationStore(pg.DB)
	applicationStore := postgres.NewApplicationStore(pg.DB)

	profileCache := cache.NewProfileCache(
		profileStore,
		rdb.Client,
		time.Duration(cfg.Matching.ProfileCacheTTLSec)*time.Second,
		log,
	)

	// --- Candidate pool source ---
	var pool interface {
		CandidatesForMission(ctx context.Context, m *models.Mission) ([]models.CandidateProfile, error)
	}
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		pool = elastic.NewProfileSearch(esClient.Client, cfg.Database.Elasticsearch.ProfileIndex)
	} else {
		pool = &activePool{profiles: profileCache}
	}

	// --- Notification transport ---
	var push transport.PushTransport = transport.NewLogTransport(log)
	if cfg.Notifications.Push.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		push = transport.NewSNSTransport(snsClient, profileStore)

		if cfg.Notifications.Email.Enabled {
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			email := transport.NewSESTransport(sesClient, profileStore, cfg.Notifications.Email.FromEmail)
			push = transport.NewFallbackTransport(push, email, log)
		}
	} else if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		push = transport.NewSESTransport(sesClient, profileStore, cfg.Notifications.Email.FromEmail)
	}

	// --- Engine wiring ---
	engine := matching.NewEngine(cfg.Matching.Adjacency, cfg.Matching.ScoringConcurrency, log)
	dispatcher := dispatch.NewDispatcher(notificationStore, push, log)
	matcher := matching.NewMatcher(engine, dispatcher, log)
	lifecycleSvc := lifecycle.NewService(notificationStore, applicationStore, log)

	zapLog.Info("Engine and stores initialized")

	// --- Register Workers ---
	var workers []*camunda.Worker

	workers = append(workers, camunda.NewWorker(zeebeClient, mad.TaskType, cfg.Workers[mad.TaskType],
		mad.NewHandler(
			&mad.Config{
				Timeout: time.Duration(cfg.Workers[mad.TaskType].Timeout) * time.Millisecond,
			},
			matcher, missionStore, pool, log,
		), zapLog))

	workers = append(workers, camunda.NewWorker(zeebeClient, sc.TaskType, cfg.Workers[sc.TaskType],
		sc.NewHandler(
			&sc.Config{
				Timeout: time.Duration(cfg.Workers[sc.TaskType].Timeout) * time.Millisecond,
			},
			engine, missionStore, pool, log,
		), zapLog))

	workers = append(workers, camunda.NewWorker(zeebeClient, rr.TaskType, cfg.Workers[rr.TaskType],
		rr.NewHandler(
			&rr.Config{
				Timeout: time.Duration(cfg.Workers[rr.TaskType].Timeout) * time.Millisecond,
			},
			lifecycleSvc, log,
		), zapLog))

	workers = append(workers, camunda.NewWorker(zeebeClient, da.TaskType, cfg.Workers[da.TaskType],
		da.NewHandler(
			&da.Config{
				Timeout: time.Duration(cfg.Workers[da.TaskType].Timeout) * time.Millisecond,
			},
			lifecycleSvc, log,
		), zapLog))

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
