package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// CommentRepository handles comment reads and writes.
type CommentRepository struct {
	uow unitOfWork
}

func NewCommentRepository(db *sqlx.DB, txGetter TxGetter) *CommentRepository {
	return &CommentRepository{uow: unitOfWork{db: db, txGetter: txGetter}}
}

const commentColumns = `id, post_id, content, owner_id, created_at`

// GetByID returns the comment, or nil when there is none.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var row models.CommentDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, id)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{id},
		"result", row,
		"error", err,
	)

	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	comment := row.Projection()
	return &comment, nil
}

// ListByPost returns a page of the post's comments, newest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2
		LIMIT $3
	`

	page = page.Normalize()

	var rows []models.CommentDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.SelectContext(ctx, ext, &rows, query, postID, page.Skip, page.Limit)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{postID, page.Skip, page.Limit},
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.Projection())
	}
	return comments, nil
}

// Create inserts a comment under postID written by ownerID.
func (r *CommentRepository) Create(ctx context.Context, postID, ownerID int64, req models.CommentCreateRequest) (*models.Comment, error) {
	const query = `
		INSERT INTO comments (post_id, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	var row models.CommentDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, postID, req.Content, ownerID)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{postID, ownerID},
		"result", row.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	comment := row.Projection()
	return &comment, nil
}

// Update replaces the content of the comment. Nil or empty content keeps the
// stored content; the comment is still returned. Returns nil when the comment
// does not exist.
func (r *CommentRepository) Update(ctx context.Context, id int64, req models.CommentUpdateRequest) (*models.Comment, error) {
	const query = `
		UPDATE comments
		SET content = COALESCE(NULLIF($2::TEXT, ''), content)
		WHERE id = $1
		RETURNING ` + commentColumns

	var row models.CommentDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, id, req.Content)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{id},
		"result", row.ID,
		"error", err,
	)

	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	comment := row.Projection()
	return &comment, nil
}

// Delete removes the comment. It reports false when there was nothing to delete.
func (r *CommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.uow, `DELETE FROM comments WHERE id = $1`, id)
}
