package handlers

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// UserStore is the user repository as seen by the handlers.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, req models.UserCreateRequest) (*models.UserCreated, error)
	Update(ctx context.Context, id int64, req models.UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NewCreateUserHandler returns an HTTP handler for signup.
// @Summary Register a new user
// @Description Creates a user. The password is hashed before it is stored and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UserCreateRequest true "Signup request"
// @Success 201 {object} models.UserCreated
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Username already exists"
// @Router /users [post]
func NewCreateUserHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UserCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, err := store.Create(r.Context(), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

// NewGetUserHandler returns an HTTP handler that fetches a user by id.
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func NewGetUserHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewGetUserByUsernameHandler returns an HTTP handler that fetches a user by username.
// @Summary Get user by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/by-username/{username} [get]
func NewGetUserByUsernameHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "invalid username")
			return
		}

		user, err := store.GetByUsername(r.Context(), username)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewUpdateUserHandler returns an HTTP handler for partial user updates.
// @Summary Update user
// @Description Only the fields present in the body are changed.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UserUpdateRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [patch]
func NewUpdateUserHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req models.UserUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, err := store.Update(r.Context(), id, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewDeleteUserHandler returns an HTTP handler that deletes a user.
// @Summary Delete user
// @Description Fails with 409 while the user still owns posts or comments.
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func NewDeleteUserHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ok, err := store.Delete(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
