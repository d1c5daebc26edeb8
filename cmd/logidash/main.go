package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logidash/frontend/login"
	"logidash/infrastructure/audit"
	"logidash/infrastructure/cache"
	"logidash/infrastructure/config"
	httpserver "logidash/infrastructure/http"
	"logidash/infrastructure/rbac"
	"logidash/infrastructure/sheets"
	"logidash/infrastructure/sqlite"
	"logidash/infrastructure/websocket"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sqlite.OpenDB(cfg.Server.SQLitePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, getenv("MIGRATIONS_DIR", "infrastructure/sqlite/migrations")); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	if n, err := login.DeleteExpiredSessions(context.Background(), db, time.Now()); err != nil {
		log.Printf("purge expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("purged %d expired sessions", n)
	}

	if cfg.Auth.GoogleClientID == "" {
		log.Printf("GOOGLE_CLIENT_ID is not set; Google sign-in is disabled")
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	rbacCache := cache.NewRbacRolesCache()
	rbacSvc := rbac.New(rbacCache)
	auditSvc := audit.NewService()

	store := sheets.NewStore()
	hub := websocket.NewHub()
	poller := sheets.NewPoller(
		sheets.NewClient(cfg.Sheets),
		sheets.SourcesFromConfig(cfg.Sheets),
		store,
		db,
		sheets.TenantFromConfig(cfg.Tenant),
		cfg.Sheets.PollSchedule,
	)
	poller.OnRefresh(websocket.RefreshListener(hub, func() string { return store.State().Connection() }))
	if err := poller.Start(); err != nil {
		log.Fatalf("start poller: %v", err)
	}

	server := httpserver.NewServer(cfg, db, sessionCache, userCache, rbacSvc, rbacCache, auditSvc, httpserver.Dashboard{
		Store:    store,
		Poller:   poller,
		Hub:      hub,
		Verifier: login.GoogleVerifier{ClientID: cfg.Auth.GoogleClientID},
	})
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("logidash listening on %s (tenant %s)", cfg.Server.Addr, cfg.Tenant.Name)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	poller.Stop()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
