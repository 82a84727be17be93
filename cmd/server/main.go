package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/conversion-monitor/internal/api"
	"github.com/ignite/conversion-monitor/internal/cache"
	"github.com/ignite/conversion-monitor/internal/config"
	"github.com/ignite/conversion-monitor/internal/engine"
	"github.com/ignite/conversion-monitor/internal/generator"
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

// buildDataset constructs the account dataset from the configured source.
func buildDataset(cfg config.DatasetConfig) (*engine.Dataset, error) {
	switch cfg.Source {
	case "file":
		snap, err := engine.LoadSnapshot(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Printf("[dataset] loaded %d accounts, %d usage rows from %s", len(snap.Accounts), len(snap.Usage), cfg.Path)
		return engine.NewDataset(snap.Accounts, snap.Usage), nil
	case "generated":
		ds := generator.Generate(rand.New(rand.NewSource(cfg.Seed)))
		log.Printf("[dataset] generated %d accounts, %d usage rows (seed %d)", len(ds.Accounts), len(ds.Usage), cfg.Seed)
		return engine.NewDataset(ds.Accounts, ds.Usage), nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

func main() {
	log.Println("Conversion Monitor API server starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	dataset, err := buildDataset(cfg.Dataset)
	if err != nil {
		log.Fatalf("Failed to build dataset: %v", err)
	}

	eng := engine.New(dataset, cfg.Scoring.Workers)

	// Optional Redis score cache
	var scoreCache *cache.ScoreCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Printf("[cache] redis unreachable at %s, running without cache: %v", cfg.Redis.Addr, err)
		} else {
			scoreCache = cache.New(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
			log.Printf("[cache] redis score cache enabled at %s (ttl %ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
		cancel()
	}

	server := api.NewServer(cfg.Server, eng, scoreCache)
	addr := fmt.Sprintf("%s:%d", host, port)

	go func() {
		log.Printf("Listening on http://%s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
