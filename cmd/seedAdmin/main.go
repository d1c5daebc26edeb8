package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"logidash/frontend/login"
	"logidash/infrastructure/argon"
	"logidash/infrastructure/sqlite"
)

func main() {
	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	dbPath := getenv("SQLITE_PATH", defaultDBPath(migrationsDir))

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	adminEmail := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	if adminEmail != "" {
		if err := login.EnsureAdmin(context.Background(), db, adminEmail); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		fmt.Printf("seeded admin user (email=%s)\n", strings.ToLower(adminEmail))
	}

	if password := os.Getenv("SERVICE_ACCOUNT_PASSWORD"); password != "" {
		if err := login.ValidatePasswordPolicy(password); err != nil {
			log.Fatalf("service account password: %v", err)
		}
		hash, err := argon.CreateHash(password, argon.DefaultParams)
		if err != nil {
			log.Fatalf("hash service account password: %v", err)
		}
		fmt.Println("service_account_hash (set auth.service_account_hash or SERVICE_ACCOUNT_HASH):")
		fmt.Println(hash)
	}

	if adminEmail == "" && os.Getenv("SERVICE_ACCOUNT_PASSWORD") == "" {
		fmt.Println("nothing to do: set ADMIN_EMAIL and/or SERVICE_ACCOUNT_PASSWORD")
	}
}

// defaultDBPath is logidash.db at the repo root, three levels above
// infrastructure/sqlite/migrations.
func defaultDBPath(migrationsDir string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(migrationsDir))), "logidash.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
