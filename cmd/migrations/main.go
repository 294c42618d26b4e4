package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/biovote/registry/internal/platform/config"
)

// Applies migration files from the postgres adapter. With an argument, the
// first file whose name matches it runs; without one, every *.up.sql runs in
// name order.
func main() {
	_ = godotenv.Load()

	db, err := sql.Open("postgres", config.DatabaseURL())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")

	var files []string
	if len(os.Args) > 1 {
		file, err := migrationFilePath(basePath, os.Args[1])
		if err != nil {
			slog.Error("migration lookup failed", "error", err)
			os.Exit(1)
		}
		files = []string{file}
	} else {
		files, err = upMigrationFiles(basePath)
		if err != nil {
			slog.Error("failed to list migrations", "error", err)
			os.Exit(1)
		}
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(basePath, name))
		if err != nil {
			slog.Error("failed to read migration", "file", name, "error", err)
			os.Exit(1)
		}
		if _, err := db.Exec(string(content)); err != nil {
			slog.Error("failed to execute migration", "file", name, "error", err)
			os.Exit(1)
		}
		slog.Info("migration applied", "file", name)
	}
}

func upMigrationFiles(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

func migrationFilePath(basePath string, migrationName string) (string, error) {
	patternStr := fmt.Sprintf(`^.*%s.*\.sql`, regexp.QuoteMeta(migrationName))
	regex, err := regexp.Compile(patternStr)
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}

	files, _ := os.ReadDir(basePath)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if regex.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file not found")
}
