package models

import "time"

// CommentDB represents a comment row in the database
type CommentDB struct {
	ID        int64     `db:"id"`         // Primary key
	PostID    int64     `db:"post_id"`    // Parent post, cascades on delete
	Content   string    `db:"content"`    // Comment body
	OwnerID   int64     `db:"owner_id"`   // Author, references users.id
	CreatedAt time.Time `db:"created_at"` // Set by the database on insert (UTC)
}

// Comment is the outbound projection of a comment.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	PostID    int64     `json:"post_id"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Projection maps the row to its outbound shape.
func (c CommentDB) Projection() Comment {
	return Comment{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
	}
}

// CommentCreateRequest carries the body of a new comment.
// swagger:model CommentCreateRequest
type CommentCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentUpdateRequest replaces the content of a comment.
// A nil or empty Content leaves the comment as it is.
// swagger:model CommentUpdateRequest
type CommentUpdateRequest struct {
	Content *string `json:"content,omitempty"`
}
