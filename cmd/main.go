package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/pkg/notify"
	"taxidesk/pkg/web"
	"taxidesk/service"
	"taxidesk/storage"
	"taxidesk/storage/memory"
	"taxidesk/storage/postgres"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName)

	// 3. Initialize Storage
	var stg storage.IStorage
	switch cfg.StorageDriver {
	case "memory":
		stg = newSeededMemoryStore()
		log.Info("running on in-memory storage")
	default:
		pgStore, err := postgres.New(context.Background(), cfg, log)
		if err != nil {
			log.Error("failed to connect to postgres", logger.Error(err))
			os.Exit(1)
		}
		stg = pgStore
	}
	defer stg.Close()

	// 4. Optional Redis cache
	var cache *redis.Client
	if cfg.CacheEnabled {
		cache = redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cache.Ping(ctx).Err(); err != nil {
			log.Warning("redis unavailable, continuing without cache", logger.Error(err))
			cache = nil
		} else {
			log.Info("redis connected")
			defer cache.Close()
		}
		cancel()
	}

	// 5. Seed the admin account
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash admin password", logger.Error(err))
		os.Exit(1)
	}
	if err := stg.Admin().Ensure(context.Background(), cfg.AdminUsername, string(hash)); err != nil {
		log.Error("failed to seed admin account", logger.Error(err))
		os.Exit(1)
	}

	// 6. Services, notifier, HTTP server
	svc := service.New(stg, cache, cfg, log)
	notifier := notify.New(cfg, log)
	server := web.NewServer(svc, notifier, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AppPort),
		Handler:      server.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", logger.Int("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	// 7. Graceful Shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutdown signal received, draining requests")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
	}
}

// newSeededMemoryStore mirrors the demo rows the postgres migrations insert,
// so the memory mode is usable out of the box.
func newSeededMemoryStore() *memory.Store {
	stg := memory.New()
	stg.SeedVehicles([]*models.Vehicle{
		{ID: 1, Name: "Maruti Dzire", Type: "Sedan", PricePerKm: 12, BaseFare: 50},
		{ID: 2, Name: "Toyota Innova", Type: "SUV", PricePerKm: 18, BaseFare: 100},
		{ID: 3, Name: "Bajaj Auto", Type: "Auto", PricePerKm: 8, BaseFare: 30},
	})
	stg.SeedDriver(models.Driver{Name: "Ramesh Kumar", Phone: "+919876543210", VehicleNumber: "KA-01-AB-1234", IsActive: true})
	stg.SeedDriver(models.Driver{Name: "Suresh Singh", Phone: "+919876543211", VehicleNumber: "KA-02-CD-5678", IsActive: true})
	return stg
}
