package models

import "time"

// PostDB represents a post row in the database
type PostDB struct {
	ID        int64     `db:"id"`         // Primary key
	Title     string    `db:"title"`      // Post title
	Content   string    `db:"content"`    // Post body
	OwnerID   int64     `db:"owner_id"`   // Author, references users.id
	CreatedAt time.Time `db:"created_at"` // Set by the database on insert (UTC)
}

// Post is the outbound projection of a post.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Projection maps the row to its outbound shape.
func (p PostDB) Projection() Post {
	return Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
	}
}

// PostCreateRequest carries the fields of a new post.
// swagger:model PostCreateRequest
type PostCreateRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	OwnerID int64  `json:"owner_id" validate:"required,gt=0"`
}

// PostUpdateRequest is a partial update. Nil fields are left untouched.
// swagger:model PostUpdateRequest
type PostUpdateRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
