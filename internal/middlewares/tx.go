package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/blog-store/internal/logger"
)

// TxMiddleware runs each request inside one database transaction. The
// response is held back until the transaction is finished: statuses below 400
// commit, anything else rolls back. A failed commit turns the response into a 500.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			bw := &bufferedWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(bw, r.WithContext(setTxToContext(r.Context(), tx)))

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to roll back transaction", "error", err)
				}
				bw.flush()
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			bw.flush()
		})
	}
}

// bufferedWriter keeps the status and body in memory until flush.
type bufferedWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.statusCode = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flush() {
	bw.ResponseWriter.WriteHeader(bw.statusCode)
	if bw.body.Len() > 0 {
		bw.ResponseWriter.Write(bw.body.Bytes())
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
