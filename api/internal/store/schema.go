// Package store holds the relational schema. Nothing on the request path reads or
// writes it yet; lecturectl migrate applies it.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the part of pgxpool.Pool and pgx.Conn the migration needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Migration struct {
	Name string
	SQL  string
}

var Migrations = []Migration{
	{
		Name: "users",
		SQL: `create table if not exists users (
	id       serial primary key,
	username text not null unique,
	password text not null
)`,
	},
	{
		Name: "lectures",
		SQL: `create table if not exists lectures (
	id          serial primary key,
	title       text not null,
	subtitle    text not null,
	content     text not null,
	topic       text not null,
	grade_level text not null,
	created_at  text not null
)`,
	},
}

// Migrate applies every migration in order. Each statement is idempotent.
func Migrate(ctx context.Context, db Execer) ([]string, error) {
	applied := make([]string, 0, len(Migrations))
	for _, m := range Migrations {
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			return applied, fmt.Errorf("migrate %s: %w", m.Name, err)
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

// Open creates a small pool and pings it.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store: database url is empty")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}
