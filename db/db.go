package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the shared connection pool. Repositories use it directly; order
// confirmation and preparation open transactions on it.
var DB *sql.DB

const (
	defaultMaxOpenConns = 25
	connMaxIdleTime     = 5 * time.Minute
	pingTimeout         = 5 * time.Second
)

// InitDB opens the Postgres pool from DATABASE_URL, or from the DB_*
// variables when the URL is not set, and verifies connectivity.
func InitDB() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}

		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Confirmations hold row locks on products while they run, so the pool
	// is capped rather than unbounded.
	maxConns := defaultMaxOpenConns
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxConns = n
		}
	}
	DB.SetMaxOpenConns(maxConns)
	DB.SetMaxIdleConns(maxConns / 2)
	DB.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Database pool ready (max %d connections)", maxConns)
	return nil
}

// CloseDB closes the connection pool
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
