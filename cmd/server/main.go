package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"microblog/internal/cache"
	"microblog/internal/db"
	"microblog/internal/server"
	"microblog/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "microblog.db")
	templateDir := getEnv("TEMPLATE_DIR", "web/templates")
	cacheTTL := getEnvSeconds("CACHE_TTL", 20*time.Second)

	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("open database", "error", err, "path", dbPath)
		os.Exit(1)
	}
	defer database.Close()

	srv, err := server.New(database, templateDir, cache.NewMemory(cacheTTL))
	if err != nil {
		slog.Error("init server", "error", err)
		os.Exit(1)
	}
	srv.MediaDir = getEnv("MEDIA_DIR", srv.MediaDir)
	srv.StaticDir = getEnv("STATIC_DIR", srv.StaticDir)

	slog.Info("listening", "port", port, "db", dbPath, "cache_ttl", cacheTTL)
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
