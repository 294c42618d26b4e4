package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/biovote/registry/internal/adapters/export"
	repo "github.com/biovote/registry/internal/adapters/repository/postgres"
	"github.com/biovote/registry/internal/core/services"
	"github.com/biovote/registry/internal/platform/config"
)

// Dumps the registry snapshot as CSV, to stdout or to -o <file>.
func main() {
	outPath := flag.String("o", "", "write CSV to this file instead of stdout")
	flag.Parse()

	_ = godotenv.Load()

	db, err := sql.Open("postgres", config.DatabaseURL())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	exportSvc := services.NewExportService(repo.NewVoterRepository(db))
	rows, err := exportSvc.Rows(context.Background())
	if err != nil {
		slog.Error("failed to snapshot registry", "error", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			slog.Error("failed to create output file", "error", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	if err := export.WriteCSV(out, rows); err != nil {
		slog.Error("failed to write CSV", "error", err)
		os.Exit(1)
	}
}
