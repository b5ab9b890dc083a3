// Package dbx содержит общие для репозиториев абстракции над database/sql.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX общее подмножество *sql.DB и *sql.Tx, которым пользуются репозитории.
// Позволяет одному и тому же запросу выполняться как внутри, так и вне транзакции.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx выполняет fn внутри транзакции.
// Ошибка fn приводит к ROLLBACK и возвращается вызывающему,
// паника приводит к ROLLBACK и пробрасывается дальше,
// иначе выполняется COMMIT.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(ctx, tx)
}
