package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/config"
	httpserver "github.com/Jwfathoni/kasir-pos/infrastructure/http"
	"github.com/Jwfathoni/kasir-pos/infrastructure/rbac"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// Empty MigrationsDir falls back to the embedded migration files.
	if err := sqlite.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	settingsCache := cache.NewSettingsCache()
	rbacSvc := rbac.New()
	auditSvc := audit.NewService()

	httpserver.ShutdownTimeout = cfg.ShutdownTimeout
	server := httpserver.NewServer(cfg.AppAddr, db, sessionCache, userCache, settingsCache, rbacSvc, auditSvc)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("kasir-pos listening on %s", cfg.AppAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
