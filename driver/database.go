package driver

import (
	"context"

	"article-search/migrations"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PgxIface is the subset of *pgxpool.Pool the drivers use.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// querier is what a statement runs on: the pool, or the transaction carried
// by ctx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

func injectTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func extractTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

func conn(ctx context.Context, pool PgxIface) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return pool
}

// runInTx runs fn in a transaction whose handle travels in the ctx passed to
// fn. fn's error is returned as is; begin and commit failures become
// DriverErrors.
func runInTx(ctx context.Context, pool PgxIface, op string, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return &DriverError{Op: op, Err: "failed to begin transaction: " + err.Error()}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = &DriverError{Op: op, Err: "failed to commit transaction: " + commitErr.Error()}
		}
	}()

	return fn(injectTx(ctx, tx), tx)
}

// NewDatabasePool connects to Postgres and verifies the connection.
func NewDatabasePool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, &DriverError{
			Op:  "NewDatabasePool",
			Err: "failed to parse database config: " + err.Error(),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &DriverError{
			Op:  "NewDatabasePool",
			Err: "failed to create database pool: " + err.Error(),
		}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &DriverError{
			Op:  "NewDatabasePool",
			Err: "failed to ping database: " + err.Error(),
		}
	}

	return pool, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return &DriverError{Op: "RunMigrations", Err: err.Error()}
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return &DriverError{Op: "RunMigrations", Err: err.Error()}
	}
	return nil
}
