package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/blog-store/internal/logger"
)

// TxGetter returns the transaction bound to ctx, or nil when there is none.
type TxGetter func(ctx context.Context) *sqlx.Tx

// unitOfWork runs each repository operation inside a single transaction.
type unitOfWork struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// run executes fn on the ambient transaction when ctx carries one; the owner
// of that transaction decides whether it commits. Otherwise fn runs in a fresh
// transaction that is committed when fn succeeds and rolled back on any other
// exit, including panics. Errors from fn are returned as is.
func (u unitOfWork) run(ctx context.Context, fn func(ext sqlx.ExtContext) error) error {
	if u.txGetter != nil {
		if tx := u.txGetter(ctx); tx != nil {
			return fn(tx)
		}
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Log.Errorw("failed to roll back transaction", "error", rbErr, "cause", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isNotFound reports whether err means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// rowsAffected returns the number of rows touched by res, or 0 when unknown.
func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
