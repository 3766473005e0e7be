package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// PostRepository handles post reads and writes.
type PostRepository struct {
	uow unitOfWork
}

func NewPostRepository(db *sqlx.DB, txGetter TxGetter) *PostRepository {
	return &PostRepository{uow: unitOfWork{db: db, txGetter: txGetter}}
}

const postColumns = `id, title, content, owner_id, created_at`

// GetByID returns the post, or nil when there is none.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var row models.PostDB
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
	post := row.Projection()
	return &post, nil
}

// ListByOwner returns a page of the owner's posts, newest first.
// An owner without posts yields an empty slice and no error.
func (r *PostRepository) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2
		LIMIT $3
	`

	page = page.Normalize()

	var rows []models.PostDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.SelectContext(ctx, ext, &rows, query, ownerID, page.Skip, page.Limit)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{ownerID, page.Skip, page.Limit},
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.Projection())
	}
	return posts, nil
}

// Create inserts a post and returns it as stored, with its id and creation time.
func (r *PostRepository) Create(ctx context.Context, req models.PostCreateRequest) (*models.Post, error) {
	const query = `
		INSERT INTO posts (title, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + postColumns

	var row models.PostDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, req.Title, req.Content, req.OwnerID)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{req.Title, req.OwnerID},
		"result", row.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	post := row.Projection()
	return &post, nil
}

// Update applies the non-nil fields of req. Returns nil when the post does not exist.
func (r *PostRepository) Update(ctx context.Context, id int64, req models.PostUpdateRequest) (*models.Post, error) {
	const query = `
		UPDATE posts
		SET title = COALESCE($2::TEXT, title),
		    content = COALESCE($3::TEXT, content)
		WHERE id = $1
		RETURNING ` + postColumns

	var row models.PostDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, id, req.Title, req.Content)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{id, req.Title != nil, req.Content != nil},
		"result", row.ID,
		"error", err,
	)

	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	post := row.Projection()
	return &post, nil
}

// Delete removes the post together with its comments.
// It reports false when there was nothing to delete.
func (r *PostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.uow, `DELETE FROM posts WHERE id = $1`, id)
}
