// jobscraper-ingest-service
//
// Scrapes raw job postings from the external job-search API on a daily cron
// sweep, deduplicates them by their (position, company, location, date)
// natural key, persists new postings to PostgreSQL, and then notifies the
// downstream maturation service.
//
// Also exposes a small HTTP API: ad hoc single-query fetch+store, raw-job
// listing, and mature-job management.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobscraper/ingest-service/internal/config"
	"jobscraper/ingest-service/internal/crawler"
	"jobscraper/ingest-service/internal/db"
	"jobscraper/ingest-service/internal/httpapi"
	"jobscraper/ingest-service/internal/ingest"
	"jobscraper/ingest-service/internal/maturation"
	"jobscraper/ingest-service/internal/scheduler"
	"jobscraper/ingest-service/internal/source"
	"jobscraper/ingest-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("[ingest-service] no .env file — using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ingest-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[ingest-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[ingest-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[ingest-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[ingest-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[ingest-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[ingest-service] Redis connected ✓")

	// ── Pipeline wiring ──────────────────────────────────────────────────────
	rawStore := store.NewRawJobStore(pool)
	matureStore := store.NewMatureJobStore(pool)

	trigger := maturation.NewTrigger(cfg.MatureJobURL)
	if trigger.Configured() {
		log.Printf("[ingest-service] Mature job endpoint configured: %s", cfg.MatureJobURL)
	} else {
		log.Println("[ingest-service] MATURE_JOB_URL is not set — sweeps will not reach the maturation pipeline")
	}

	crawl := crawler.New(
		source.NewClient(cfg.JobSourceURL),
		ingest.NewService(rawStore),
		trigger,
		crawler.NewRunLock(rdb),
		crawler.NewRedisPublisher(rdb),
		cfg.Keywords,
		cfg.Defaults,
	)

	sched := scheduler.New(crawl, cfg.CronSpec)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[ingest-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := httpapi.NewHandler(crawl, rawStore, matureStore)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // ad hoc searches hit the external source
	}

	go func() {
		log.Printf("[ingest-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[ingest-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[ingest-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ingest-service] Shutdown error: %v", err)
	}
	log.Println("[ingest-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "ingest-service",
		"version": version,
	})
}
