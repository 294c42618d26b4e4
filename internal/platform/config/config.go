package config

import (
	"fmt"
	"os"
)

// Server captures everything the service reads from the environment.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("REGISTRY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	if adminUser == "" {
		adminUser = "admin"
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   DatabaseURL(),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: adminUser,
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// DatabaseURL assembles the postgres connection string from the POSTGRES_*
// variables, unless DATABASE_URL overrides it outright.
func DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
