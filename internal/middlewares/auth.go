package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (int64, error)
}

type userIDKey struct{}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// AuthMiddleware returns a middleware that authenticates the request with a
// bearer token and stores the user id in the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			userID, err := tokener.GetUserID(ctx, tokenString)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Warnw("authorization failed",
		"request_id", RequestIDFromContext(r.Context()),
		"err", err,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: "unauthorized"})
}
