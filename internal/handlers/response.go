package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// Postgres SQLSTATE codes mapped to 409 Conflict.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// writeStoreError maps a repository error to a response. Constraint
// violations become 409, everything else is logged and becomes 500.
func writeStoreError(w http.ResponseWriter, err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			writeError(w, http.StatusConflict, "already exists")
			return
		case pgForeignKeyViolation:
			writeError(w, http.StatusConflict, "referenced entity is missing or still in use")
			return
		}
	}

	logger.Log.Errorw("internal server error", "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// decodeAndValidate reads a JSON body into v and runs struct validation.
func decodeAndValidate(r *http.Request, v any) error {
	if err := decodeJSON(r, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// queryPage reads skip and limit from the query string.
func queryPage(r *http.Request) (models.Page, error) {
	var page models.Page
	q := r.URL.Query()

	if s := q.Get("skip"); s != "" {
		skip, err := strconv.Atoi(s)
		if err != nil || skip < 0 {
			return page, errors.New("invalid skip")
		}
		page.Skip = skip
	}
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit <= 0 {
			return page, errors.New("invalid limit")
		}
		page.Limit = limit
	}
	return page.Normalize(), nil
}
