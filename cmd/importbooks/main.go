// Command importbooks loads a CSV catalog into the books table.
//
// Usage:
//
//	importbooks -file data/books.csv
//
// The CSV header must be title,author,price,stock,category. A row whose
// (title, author) already exists adds its stock to the stored stock and
// leaves the other columns untouched.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"bookstore/cmd"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "data/books.csv", "CSV file to import")
	migrate := flag.Bool("migrate", true, "create the books table when missing")
	flag.Parse()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	appLogger := logger.New(logger.Config{Production: configs.Production()}).Named("importbooks")
	defer func() { _ = appLogger.Sync() }()

	if *migrate {
		gormDB, err := postgres.Open(configs.DSN(), appLogger)
		if err != nil {
			appLogger.Fatal("failed to open database", zap.Error(err))
		}
		if err = postgres.Migrate(gormDB); err != nil {
			appLogger.Fatal("failed to migrate", zap.Error(err))
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	f, err := os.Open(*file)
	if err != nil {
		appLogger.Fatal("failed to open CSV", zap.String("file", *file), zap.Error(err))
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		appLogger.Fatal("invalid CSV", zap.String("file", *file), zap.Error(err))
	}

	db, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		appLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stats, err := Import(ctx, db, rows)
	if err != nil {
		appLogger.Fatal("import failed", zap.Error(err))
	}
	appLogger.Info("Imported books from CSV",
		zap.String("file", *file),
		zap.Int("inserted", stats.Inserted),
		zap.Int("restocked", stats.Restocked),
	)
}
