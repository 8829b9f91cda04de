// Package store adapts a pgx connection pool to core.Connector.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/SupplierImport/internal/config"
	"github.com/JonMunkholm/SupplierImport/internal/core"
)

// PoolConnector checks connections out of a pgxpool.Pool.
type PoolConnector struct {
	pool *pgxpool.Pool
}

// NewPoolConnector wraps pool.
func NewPoolConnector(pool *pgxpool.Pool) *PoolConnector {
	return &PoolConnector{pool: pool}
}

// Acquire returns a pooled connection; the caller must Release it.
func (c *PoolConnector) Acquire(ctx context.Context) (core.Conn, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// PoolConfig builds the pool configuration from cfg. When rowType is set,
// every new connection registers that composite type and its array so
// []core.SupplierRow can be bound directly.
func PoolConfig(cfg config.DatabaseConfig, rowType string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	if rowType != "" {
		poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			return RegisterTypes(ctx, conn, rowType)
		}
	}

	return poolConfig, nil
}

// Open creates the pool and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, rowType string) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(cfg, rowType)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// RegisterTypes loads the composite row type and its array type from the
// server and adds them to conn's type map.
func RegisterTypes(ctx context.Context, conn *pgx.Conn, rowType string) error {
	types, err := conn.LoadTypes(ctx, []string{rowType, ArrayTypeName(rowType)})
	if err != nil {
		return fmt.Errorf("load type %s: %w", rowType, err)
	}
	conn.TypeMap().RegisterTypes(types)
	return nil
}

// ArrayTypeName returns Postgres' array type name for a type, keeping any
// schema qualifier: "public.supplier_row" -> "public._supplier_row".
func ArrayTypeName(typeName string) string {
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		return typeName[:i+1] + "_" + typeName[i+1:]
	}
	return "_" + typeName
}
