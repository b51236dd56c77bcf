package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"shortlist/internal/config"
	"shortlist/internal/database/migration"
	dbpostgres "shortlist/internal/database/postgres"
	"shortlist/internal/database/seeder"
	"shortlist/internal/logger"
	"shortlist/internal/store"
)

// seed migrates the candidates schema and imports a JSON dataset into it,
// for running the server with DATA_SOURCE=postgres.
func main() {
	dataPath := flag.String("data", "", "candidate JSON file (default DATA_PATH)")
	replace := flag.Bool("replace", false, "delete existing rows before importing")
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := dbpostgres.Connect(connCtx, cfg.Database)
	connCancel()
	if err != nil {
		zl.Fatal("connecting to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Logger: zl.Named("migration")}).Run(migCtx, db.SQLDB()); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	if *migrateOnly {
		return
	}

	path := strings.TrimSpace(*dataPath)
	if path == "" {
		path = cfg.Data.Path
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer seedCancel()
	r := seeder.Runner{Seeders: []seeder.Seeder{
		seeder.CandidatesSeeder{Source: store.NewFileSource(path), Replace: *replace, Logger: zl.Named("seeder")},
	}}
	if err := r.Run(seedCtx, db); err != nil {
		zl.Fatal("seeding failed", zap.Error(err))
	}
}
