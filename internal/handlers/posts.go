package handlers

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/blog-store/internal/middlewares"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// PostStore is the post repository as seen by the handlers.
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Post, error)
	Create(ctx context.Context, req models.PostCreateRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req models.PostUpdateRequest) (*models.Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NewCreatePostHandler returns an HTTP handler that creates a post owned by
// the authenticated user.
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PostCreateRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func NewCreatePostHandler(store PostStore, pub EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req models.PostCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.OwnerID = ownerID
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := store.Create(r.Context(), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		pub.Publish(r.Context(), models.EventPostCreated, post.ID, post.ID, post.OwnerID)
		writeJSON(w, http.StatusCreated, post)
	}
}

// NewGetPostHandler returns an HTTP handler that fetches a post.
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func NewGetPostHandler(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if post == nil {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// NewListUserPostsHandler returns an HTTP handler listing a user's posts, newest first.
// @Summary List posts of a user
// @Tags posts
// @Produce json
// @Param id path int true "Owner ID"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.Post
// @Router /users/{id}/posts [get]
func NewListUserPostsHandler(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		page, err := queryPage(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		posts, err := store.ListByOwner(r.Context(), ownerID, page)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if posts == nil {
			posts = []models.Post{}
		}

		writeJSON(w, http.StatusOK, posts)
	}
}

// NewUpdatePostHandler returns an HTTP handler for partial post updates.
// @Summary Update post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body models.PostUpdateRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [patch]
func NewUpdatePostHandler(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req models.PostUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := store.Update(r.Context(), id, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if post == nil {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// NewDeletePostHandler returns an HTTP handler that deletes a post and its comments.
// @Summary Delete post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func NewDeletePostHandler(store PostStore, pub EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		post, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if post == nil {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}

		ok, err := store.Delete(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}

		pub.Publish(r.Context(), models.EventPostDeleted, id, post.ID, post.OwnerID)
		w.WriteHeader(http.StatusNoContent)
	}
}
