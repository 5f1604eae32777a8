package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"school-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for a small office deployment: payment transactions hold a
// summary row lock, so a modest cap keeps lock queues short.
const (
	poolMaxConns    = 10
	poolMinConns    = 2
	poolMaxConnLife = time.Hour
)

func Connect(cfg *config.Config) *pgxpool.Pool {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("db config invalid: %v", err)
	}
	poolCfg.MaxConns = poolMaxConns
	poolCfg.MinConns = poolMinConns
	poolCfg.MaxConnLifetime = poolMaxConnLife

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db unreachable: %v", err)
	}

	log.Printf("[DB] connected to %s/%s", cfg.Database.Host, cfg.Database.Name)
	return pool
}
