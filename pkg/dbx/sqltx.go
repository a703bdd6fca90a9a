package dbx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/jmoiron/sqlx"
)

type sqlTxKey struct{}

// SQLTxRunner opens a sqlx transaction per call.
type SQLTxRunner struct {
	db *sqlx.DB
}

func NewSQLTxRunner(db *sqlx.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

// WithinTx joins the transaction already in ctx, if any.
func (r *SQLTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(sqlTxKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, sqlTxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logx.Errorf("rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ext returns the transaction in ctx or db when there is none.
func Ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(sqlTxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
