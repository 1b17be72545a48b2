package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"patent-batch-engine/internal/agent"
	"patent-batch-engine/internal/api"
	"patent-batch-engine/internal/api/handler"
	"patent-batch-engine/internal/engine"
	"patent-batch-engine/internal/store"
	"patent-batch-engine/pkg/router"
	"patent-batch-engine/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title Patent Batch Engine API
// @version 1.0
// @description Batch orchestration service for patent-analysis work items
// @host localhost:8080
// @BasePath /api/v1
func main() {
	log.Println("Initializing patent batch engine...")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batchStore, err := openStore(ctx)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	agentURL := os.Getenv("AGENT_URL")
	if agentURL == "" {
		agentURL = "http://localhost:9090"
	}

	cfg := engine.Config{
		Workers:            envInt("ENGINE_WORKERS", 4),
		DefaultConcurrency: envInt("ENGINE_DEFAULT_CONCURRENCY", 2),
		DefaultMaxRetries:  envInt("ENGINE_DEFAULT_MAX_RETRIES", 3),
		DefaultItemTimeout: utils.ParseDuration(os.Getenv("ENGINE_ITEM_TIMEOUT"), 30*time.Second),
		RetryBaseDelay:     utils.ParseDuration(os.Getenv("ENGINE_RETRY_BASE_DELAY"), 500*time.Millisecond),
		RetryMaxDelay:      utils.ParseDuration(os.Getenv("ENGINE_RETRY_MAX_DELAY"), 30*time.Second),
		SnapshotInterval:   utils.ParseDuration(os.Getenv("ENGINE_SNAPSHOT_INTERVAL"), 2*time.Second),
	}

	eng := engine.New(cfg, agent.NewHTTPAgent(agentURL), batchStore)
	eng.Start()
	defer eng.Stop()

	r := router.New()
	api.RegisterRoutes(r, handler.NewBatchHandler(eng))

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(addr) }()

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}
}

func openStore(ctx context.Context) (store.BatchStore, error) {
	if os.Getenv("BATCH_STORE") == "redis" {
		opts := &redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		}
		if opts.Addr == "" {
			opts.Addr = "localhost:6379"
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return store.NewRedisStore(client, os.Getenv("REDIS_PREFIX")), nil
	}

	dbPath := os.Getenv("BATCH_DB_PATH")
	if dbPath == "" {
		dbPath = "batch.db"
	}
	return store.OpenSQLite(dbPath)
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			return v
		}
	}
	return def
}
