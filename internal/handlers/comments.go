package handlers

//go:generate mockgen -source=comments.go -destination=comments_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/blog-store/internal/middlewares"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// CommentStore is the comment repository as seen by the handlers.
type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error)
	Create(ctx context.Context, postID, ownerID int64, req models.CommentCreateRequest) (*models.Comment, error)
	Update(ctx context.Context, id int64, req models.CommentUpdateRequest) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NewCreateCommentHandler returns an HTTP handler that adds a comment to a
// post on behalf of the authenticated user.
// @Summary Create comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body models.CommentCreateRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Post does not exist"
// @Router /posts/{id}/comments [post]
func NewCreateCommentHandler(store CommentStore, pub EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		postID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req models.CommentCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		comment, err := store.Create(r.Context(), postID, ownerID, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		pub.Publish(r.Context(), models.EventCommentCreated, comment.ID, comment.PostID, comment.OwnerID)
		writeJSON(w, http.StatusCreated, comment)
	}
}

// NewGetCommentHandler returns an HTTP handler that fetches a comment.
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [get]
func NewGetCommentHandler(store CommentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		comment, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if comment == nil {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		writeJSON(w, http.StatusOK, comment)
	}
}

// NewListPostCommentsHandler returns an HTTP handler listing a post's comments, newest first.
// @Summary List comments of a post
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func NewListPostCommentsHandler(store CommentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		page, err := queryPage(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		comments, err := store.ListByPost(r.Context(), postID, page)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if comments == nil {
			comments = []models.Comment{}
		}

		writeJSON(w, http.StatusOK, comments)
	}
}

// NewUpdateCommentHandler returns an HTTP handler that replaces a comment's content.
// An empty content leaves the comment unchanged.
// @Summary Update comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body models.CommentUpdateRequest true "New content"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [patch]
func NewUpdateCommentHandler(store CommentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req models.CommentUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		comment, err := store.Update(r.Context(), id, req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if comment == nil {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		writeJSON(w, http.StatusOK, comment)
	}
}

// NewDeleteCommentHandler returns an HTTP handler that deletes a comment.
// @Summary Delete comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func NewDeleteCommentHandler(store CommentStore, pub EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		comment, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if comment == nil {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		ok, err := store.Delete(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		pub.Publish(r.Context(), models.EventCommentDeleted, id, comment.PostID, comment.OwnerID)
		w.WriteHeader(http.StatusNoContent)
	}
}
